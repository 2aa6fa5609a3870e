package models

import "time"

// ReceiptTimeLayout is how receipts print their creation time.
const ReceiptTimeLayout = "2006-01-02 15:04:05"

// ReceiptLine is a priced line frozen at checkout.
type ReceiptLine struct {
	Name      string
	Qty       int
	UnitPrice int64
	LineTotal int64
}

// Receipt is a finalized order. Fields are unexported so a receipt cannot be
// changed after NewReceipt; accessors hand out copies.
type Receipt struct {
	id        string
	createdAt time.Time
	lines     []ReceiptLine
	total     int64
}

// NewReceipt copies lines and sums their totals.
func NewReceipt(id string, createdAt time.Time, lines []ReceiptLine) Receipt {
	r := Receipt{
		id:        id,
		createdAt: createdAt,
		lines:     make([]ReceiptLine, len(lines)),
	}
	copy(r.lines, lines)
	for _, l := range r.lines {
		r.total += l.LineTotal
	}
	return r
}

func (r Receipt) ID() string           { return r.id }
func (r Receipt) CreatedAt() time.Time { return r.createdAt }
func (r Receipt) Total() int64         { return r.total }

// Time is CreatedAt formatted with ReceiptTimeLayout.
func (r Receipt) Time() string {
	return r.createdAt.Format(ReceiptTimeLayout)
}

// Lines returns a copy of the receipt lines in cart order.
func (r Receipt) Lines() []ReceiptLine {
	out := make([]ReceiptLine, len(r.lines))
	copy(out, r.lines)
	return out
}

// Items returns item name -> quantity.
func (r Receipt) Items() map[string]int {
	out := make(map[string]int, len(r.lines))
	for _, l := range r.lines {
		out[l.Name] = l.Qty
	}
	return out
}

// IsZero reports whether r was never built by NewReceipt.
func (r Receipt) IsZero() bool {
	return r.id == ""
}
