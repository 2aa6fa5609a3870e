package models

// MenuItem is one catalog entry. Display holds presentation-only fields
// (image path, description) that the order logic never reads.
type MenuItem struct {
	Name     string
	Price    int64
	Category string // "food", "drink", "dessert"
	Display  map[string]string
}

const (
	CategoryFood    = "food"
	CategoryDrink   = "drink"
	CategoryDessert = "dessert"
)

// Image returns the display image path, if any.
func (m MenuItem) Image() string {
	return m.Display["image"]
}

// Clone returns a copy that shares no maps with m.
func (m MenuItem) Clone() MenuItem {
	c := m
	if m.Display != nil {
		c.Display = make(map[string]string, len(m.Display))
		for k, v := range m.Display {
			c.Display[k] = v
		}
	}
	return c
}
