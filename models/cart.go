package models

// CartLine is a read-only view of one cart entry priced against the catalog.
// Available is false when the item has left the catalog; such lines carry
// zero price and are not counted in the total.
type CartLine struct {
	Name      string
	Qty       int
	UnitPrice int64
	LineTotal int64
	Available bool
}
