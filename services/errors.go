package services

import (
	"errors"
	"fmt"
)

// ConfigError means the catalog could not be loaded or validated.
// Entry names the offending record (its name, or "#<index>" when unnamed).
type ConfigError struct {
	Entry  string
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	msg := "catalog"
	if e.Entry != "" {
		msg += " entry " + e.Entry
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConfigError) Unwrap() error { return e.Err }

// NotFoundError means an operation named an item that is not in the catalog.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("menu item %q not found", e.Name)
}

// ValidationError rejects malformed input before any state changes.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func IsConfig(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
