package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MaxInputQty bounds quantities typed by users, well above any line cap.
const MaxInputQty = 100000

// ParseItemQty reads "<name> [qty]" from command arguments. Names may contain
// spaces; a trailing integer is the quantity. When optional is set a missing
// quantity means 1.
func ParseItemQty(args []string, optional bool) (string, int, error) {
	if len(args) == 0 {
		return "", 0, &ValidationError{Field: "item", Message: "item name is required"}
	}
	last := args[len(args)-1]
	if n, err := strconv.Atoi(last); (err == nil || errors.Is(err, strconv.ErrRange)) && len(args) > 1 {
		if err != nil || n > MaxInputQty || n < -MaxInputQty {
			return "", 0, &ValidationError{
				Field:   "quantity",
				Message: fmt.Sprintf("must be between %d and %d", -MaxInputQty, MaxInputQty),
			}
		}
		return strings.Join(args[:len(args)-1], " "), n, nil
	}
	if !optional {
		return "", 0, &ValidationError{Field: "quantity", Message: "quantity is required"}
	}
	return strings.Join(args, " "), 1, nil
}
