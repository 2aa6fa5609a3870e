// Package console is a line-oriented terminal front end over one order session.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"restaurant-pos/lang"
	"restaurant-pos/services"

	"go.uber.org/zap"
)

type Console struct {
	in      io.Reader
	out     io.Writer
	catalog *services.Catalog
	session *services.Session
	lang    string
	logger  *zap.Logger
}

func New(in io.Reader, out io.Writer, catalog *services.Catalog, session *services.Session, langCode string, logger *zap.Logger) *Console {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !lang.Valid(langCode) {
		langCode = lang.Zh
	}
	return &Console{
		in:      in,
		out:     out,
		catalog: catalog,
		session: session,
		lang:    langCode,
		logger:  logger.Named("console"),
	}
}

// Run reads commands until "q", end of input or ctx is done.
func (c *Console) Run(ctx context.Context) error {
	c.println(lang.T(c.lang, "welcome"))
	c.println(services.BuildMenuCard(c.catalog.Items(), c.lang).Text)
	c.println(lang.T(c.lang, "console_help"))

	scanner := bufio.NewScanner(c.in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(c.out, "> ")
		if !scanner.Scan() {
			break
		}
		if quit := c.Exec(scanner.Text()); quit {
			c.println(lang.T(c.lang, "bye"))
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return nil
}

// Exec runs one command line and reports whether the user asked to quit.
func (c *Console) Exec(line string) (quit bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]
	s := c.session

	switch cmd {
	case "q", "quit", "exit":
		return true
	case "help":
		c.println(lang.T(c.lang, "console_help"))
	case "menu":
		c.println(services.BuildMenuCard(c.catalog.Items(), c.lang).Text)
	case "cart":
		c.printCart()
	case "add", "set":
		name, qty, err := services.ParseItemQty(args, cmd == "add")
		if err == nil {
			if cmd == "add" {
				err = s.AddToCart(name, qty)
			} else {
				err = s.SetQuantity(name, qty)
			}
		}
		if err != nil {
			c.println(services.ErrorText(err, c.lang))
			return false
		}
		switch {
		case cmd == "add" && qty <= 0:
			c.println(lang.T(c.lang, "add_noop", name))
			return false
		case cmd == "add":
			c.println(lang.T(c.lang, "added", name, qty))
		default:
			c.println(lang.T(c.lang, "qty_set", name, qty))
		}
		c.printCart()
	case "rm", "remove":
		if len(args) == 0 {
			c.println(services.ErrorText(&services.ValidationError{Field: "item", Message: "item name is required"}, c.lang))
			return false
		}
		name := strings.Join(args, " ")
		s.RemoveOne(name)
		c.println(lang.T(c.lang, "removed", name))
		c.printCart()
	case "clear":
		s.ClearCart()
		c.println(lang.T(c.lang, "cleared"))
	case "checkout":
		r, ok, err := s.Checkout()
		switch {
		case err != nil:
			c.println(services.ErrorText(err, c.lang))
		case !ok:
			c.println(lang.T(c.lang, "checkout_empty"))
		default:
			c.println(lang.T(c.lang, "checkout_ok"))
			c.println(services.BuildReceiptCard(r, c.lang).Text)
		}
	case "receipt":
		r, ok := s.LastReceipt()
		if !ok {
			c.println(lang.T(c.lang, "receipt_none"))
			return false
		}
		c.println(services.BuildReceiptCard(r, c.lang).Text)
	case "history":
		c.println(services.BuildHistoryCard(s.ReceiptHistory(), c.lang).Text)
	default:
		// A bare item name adds one, like the original ordering prompt.
		if name := strings.TrimSpace(line); name != "" {
			if _, err := c.catalog.Lookup(name); err == nil {
				return c.Exec("add " + name)
			}
		}
		c.println(lang.T(c.lang, "unknown_command", cmd))
	}
	return false
}

func (c *Console) printCart() {
	c.println(services.BuildCartCard(c.session.CartView(), c.session.CartTotal(), c.lang).Text)
}

func (c *Console) println(s string) {
	if _, err := fmt.Fprintln(c.out, s); err != nil {
		c.logger.Warn("write output", zap.Error(err))
	}
}
