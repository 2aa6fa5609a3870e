package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"restaurant-pos/models"

	"github.com/jackc/pgx/v5"
	"gopkg.in/yaml.v3"
)

// MenuRecord is one raw entry from a catalog source, before validation.
// Price is a pointer so a missing price can be told apart from a zero one.
type MenuRecord struct {
	Name     string            `yaml:"name"`
	Price    *int64            `yaml:"price"`
	Category string            `yaml:"category"`
	Display  map[string]string `yaml:"display"`
}

type catalogFile struct {
	Items []MenuRecord `yaml:"items"`
}

// MenuLookup resolves item names to catalog entries.
type MenuLookup interface {
	Lookup(name string) (models.MenuItem, error)
}

// Catalog is the read-only menu. It is safe to share between sessions.
type Catalog struct {
	items []models.MenuItem
	index map[string]int
}

// LoadCatalog validates records and builds a Catalog. Any bad record fails the
// whole load; a partial catalog is never returned.
func LoadCatalog(records []MenuRecord) (*Catalog, error) {
	if len(records) == 0 {
		return nil, &ConfigError{Reason: "no menu items"}
	}
	c := &Catalog{
		items: make([]models.MenuItem, 0, len(records)),
		index: make(map[string]int, len(records)),
	}
	for i, rec := range records {
		entry := rec.Name
		if entry == "" {
			entry = "#" + strconv.Itoa(i)
		}
		if rec.Name == "" {
			return nil, &ConfigError{Entry: entry, Reason: "name is required"}
		}
		if rec.Price == nil {
			return nil, &ConfigError{Entry: entry, Reason: "price is required"}
		}
		if *rec.Price < 0 {
			return nil, &ConfigError{Entry: entry, Reason: fmt.Sprintf("price must be >= 0, got %d", *rec.Price)}
		}
		if _, dup := c.index[rec.Name]; dup {
			return nil, &ConfigError{Entry: entry, Reason: "duplicate name"}
		}
		category := rec.Category
		switch category {
		case "":
			category = models.CategoryFood
		case models.CategoryFood, models.CategoryDrink, models.CategoryDessert:
		default:
			return nil, &ConfigError{Entry: entry, Reason: fmt.Sprintf("invalid category: %s", category)}
		}
		item := models.MenuItem{
			Name:     rec.Name,
			Price:    *rec.Price,
			Category: category,
			Display:  rec.Display,
		}
		c.index[rec.Name] = len(c.items)
		c.items = append(c.items, item.Clone())
	}
	return c, nil
}

// LoadCatalogFile reads a YAML catalog of the form
//
//	items:
//	  - name: Beef Noodles
//	    price: 120
//	    category: food
//	    display: {image: images/beef-noodle.jpg}
func LoadCatalogFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigError{Reason: "read catalog file", Err: err}
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes YAML catalog bytes. Unknown keys are rejected.
func ParseCatalog(data []byte) (*Catalog, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var f catalogFile
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, &ConfigError{Reason: "decode catalog", Err: err}
	}
	return LoadCatalog(f.Items)
}

// Querier is the part of *pgxpool.Pool the catalog loader needs.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// LoadCatalogFromDB reads the menu_items table in display order.
func LoadCatalogFromDB(ctx context.Context, q Querier) (*Catalog, error) {
	rows, err := q.Query(ctx, `
		SELECT name, price, category, image, description FROM menu_items
		ORDER BY sort_order, id`,
	)
	if err != nil {
		return nil, &ConfigError{Reason: "query menu_items", Err: err}
	}
	defer rows.Close()

	var records []MenuRecord
	for rows.Next() {
		var name, category string
		var price *int64
		var image, description *string
		if err := rows.Scan(&name, &price, &category, &image, &description); err != nil {
			return nil, &ConfigError{Entry: "#" + strconv.Itoa(len(records)), Reason: "scan menu_items row", Err: err}
		}
		display := map[string]string{}
		if image != nil && *image != "" {
			display["image"] = *image
		}
		if description != nil && *description != "" {
			display["description"] = *description
		}
		records = append(records, MenuRecord{Name: name, Price: price, Category: category, Display: display})
	}
	if err := rows.Err(); err != nil {
		return nil, &ConfigError{Reason: "read menu_items", Err: err}
	}
	return LoadCatalog(records)
}

// Lookup returns a copy of the named item or a *NotFoundError.
func (c *Catalog) Lookup(name string) (models.MenuItem, error) {
	i, ok := c.index[name]
	if !ok {
		return models.MenuItem{}, &NotFoundError{Name: name}
	}
	return c.items[i].Clone(), nil
}

// Items returns copies of all items in source order.
func (c *Catalog) Items() []models.MenuItem {
	out := make([]models.MenuItem, len(c.items))
	for i, it := range c.items {
		out[i] = it.Clone()
	}
	return out
}

// ItemsByCategory returns items of one category in source order.
func (c *Catalog) ItemsByCategory(category string) []models.MenuItem {
	var out []models.MenuItem
	for _, it := range c.items {
		if it.Category == category {
			out = append(out, it.Clone())
		}
	}
	return out
}

func (c *Catalog) Len() int {
	return len(c.items)
}
