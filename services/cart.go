package services

import (
	"fmt"

	"restaurant-pos/models"
)

// DefaultMaxLineQty caps a single cart line.
const DefaultMaxLineQty = 99

// Cart is the pending order: item name -> quantity, kept in insertion order.
// Every stored quantity is >= 1; lines that drop to zero are deleted.
type Cart struct {
	menu   MenuLookup
	maxQty int
	qty    map[string]int
	order  []string
}

func NewCart(menu MenuLookup, maxQty int) *Cart {
	if maxQty <= 0 {
		maxQty = DefaultMaxLineQty
	}
	return &Cart{
		menu:   menu,
		maxQty: maxQty,
		qty:    make(map[string]int),
	}
}

// Add increments the line for name by qty. A non-positive qty is ignored.
func (c *Cart) Add(name string, qty int) error {
	if qty <= 0 {
		return nil
	}
	if err := c.resolve(name); err != nil {
		return err
	}
	// Compare against the remaining room so a huge qty cannot overflow.
	if cur := c.qty[name]; qty > c.maxQty-cur {
		return &ValidationError{
			Field:   "quantity",
			Message: fmt.Sprintf("%s has %d, adding %d exceeds limit %d", name, cur, qty, c.maxQty),
		}
	}
	c.put(name, c.qty[name]+qty)
	return nil
}

// SetQuantity overwrites the line for name. qty <= 0 removes it; removing an
// absent line is a no-op.
func (c *Cart) SetQuantity(name string, qty int) error {
	if err := c.resolve(name); err != nil {
		return err
	}
	if qty <= 0 {
		c.delete(name)
		return nil
	}
	if qty > c.maxQty {
		return &ValidationError{
			Field:   "quantity",
			Message: fmt.Sprintf("must be <= %d, got %d", c.maxQty, qty),
		}
	}
	c.put(name, qty)
	return nil
}

// RemoveOne decrements the line for name, deleting it at zero.
func (c *Cart) RemoveOne(name string) {
	q, ok := c.qty[name]
	if !ok {
		return
	}
	if q-1 <= 0 {
		c.delete(name)
		return
	}
	c.qty[name] = q - 1
}

func (c *Cart) Clear() {
	c.qty = make(map[string]int)
	c.order = nil
}

// Qty returns the quantity for name, 0 if absent.
func (c *Cart) Qty(name string) int {
	return c.qty[name]
}

func (c *Cart) Len() int {
	return len(c.order)
}

func (c *Cart) IsEmpty() bool {
	return len(c.order) == 0
}

// Total prices every line against the catalog at call time. Lines whose item
// is no longer in the catalog are skipped.
func (c *Cart) Total() int64 {
	var total int64
	for _, l := range c.Lines() {
		total += l.LineTotal
	}
	return total
}

// Lines returns a priced snapshot in insertion order.
func (c *Cart) Lines() []models.CartLine {
	lines := make([]models.CartLine, 0, len(c.order))
	for _, name := range c.order {
		q := c.qty[name]
		line := models.CartLine{Name: name, Qty: q}
		if item, err := c.menu.Lookup(name); err == nil {
			line.UnitPrice = item.Price
			line.LineTotal = item.Price * int64(q)
			line.Available = true
		}
		lines = append(lines, line)
	}
	return lines
}

// Snapshot returns a copy of name -> quantity.
func (c *Cart) Snapshot() map[string]int {
	out := make(map[string]int, len(c.qty))
	for k, v := range c.qty {
		out[k] = v
	}
	return out
}

func (c *Cart) resolve(name string) error {
	if name == "" {
		return &ValidationError{Field: "item", Message: "item name is required"}
	}
	_, err := c.menu.Lookup(name)
	return err
}

func (c *Cart) put(name string, qty int) {
	if _, ok := c.qty[name]; !ok {
		c.order = append(c.order, name)
	}
	c.qty[name] = qty
}

func (c *Cart) delete(name string) {
	if _, ok := c.qty[name]; !ok {
		return
	}
	delete(c.qty, name)
	for i, n := range c.order {
		if n == name {
			c.order = append(c.order[:i:i], c.order[i+1:]...)
			break
		}
	}
}
