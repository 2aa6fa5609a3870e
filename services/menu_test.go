package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"restaurant-pos/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func price(p int64) *int64 { return &p }

func TestLoadCatalog(t *testing.T) {
	c, err := LoadCatalog([]MenuRecord{
		{Name: "A", Price: price(120), Display: map[string]string{"image": "a.jpg"}},
		{Name: "B", Price: price(80), Category: models.CategoryDrink},
		{Name: "Free", Price: price(0), Category: models.CategoryDessert},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, c.Len())

	a, err := c.Lookup("A")
	require.NoError(t, err)
	assert.Equal(t, int64(120), a.Price)
	assert.Equal(t, models.CategoryFood, a.Category)
	assert.Equal(t, "a.jpg", a.Image())

	names := []string{}
	for _, it := range c.Items() {
		names = append(names, it.Name)
	}
	assert.Equal(t, []string{"A", "B", "Free"}, names)
	assert.Len(t, c.ItemsByCategory(models.CategoryDrink), 1)
}

func TestLoadCatalog_Rejects(t *testing.T) {
	tests := []struct {
		name      string
		records   []MenuRecord
		wantEntry string
	}{
		{"empty", nil, ""},
		{"missing name", []MenuRecord{{Price: price(1)}}, "#0"},
		{"missing price", []MenuRecord{{Name: "A", Price: price(1)}, {Name: "B"}}, "B"},
		{"negative price", []MenuRecord{{Name: "A", Price: price(-1)}}, "A"},
		{"duplicate", []MenuRecord{{Name: "A", Price: price(1)}, {Name: "A", Price: price(2)}}, "A"},
		{"bad category", []MenuRecord{{Name: "A", Price: price(1), Category: "snack"}}, "A"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := LoadCatalog(tt.records)
			assert.Nil(t, c, "no partial catalog on failure")
			var ce *ConfigError
			require.True(t, errors.As(err, &ce), "want *ConfigError, got %v", err)
			assert.Equal(t, tt.wantEntry, ce.Entry)
		})
	}
}

func TestCatalog_LookupIsCopy(t *testing.T) {
	c, err := LoadCatalog([]MenuRecord{{Name: "A", Price: price(1), Display: map[string]string{"image": "a.jpg"}}})
	require.NoError(t, err)

	a, _ := c.Lookup("A")
	a.Display["image"] = "hacked.jpg"
	a.Price = 999

	again, _ := c.Lookup("A")
	assert.Equal(t, "a.jpg", again.Image())
	assert.Equal(t, int64(1), again.Price)

	_, err = c.Lookup("missing")
	assert.True(t, IsNotFound(err))
}

func TestParseCatalog(t *testing.T) {
	c, err := ParseCatalog([]byte(`
items:
  - name: 牛肉麵
    price: 120
    display:
      image: images/beef-noodle.jpg
  - name: 珍珠奶茶
    price: 60
    category: drink
`))
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())

	_, err = ParseCatalog([]byte("items:\n  - name: A\n    cost: 1\n"))
	assert.True(t, IsConfig(err), "unknown key must fail: %v", err)

	_, err = ParseCatalog([]byte("items:\n  - name: A\n"))
	assert.True(t, IsConfig(err))
	assert.Contains(t, err.Error(), "price is required")

	_, err = ParseCatalog(nil)
	assert.True(t, IsConfig(err))
}

func TestLoadCatalogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "menu.yaml")
	require.NoError(t, os.WriteFile(path, []byte("items:\n  - {name: A, price: 5}\n"), 0o644))

	c, err := LoadCatalogFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())

	_, err = LoadCatalogFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.True(t, IsConfig(err))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

type fakeRow struct {
	name, category     string
	price              *int64
	image, description *string
}

type fakeRows struct {
	rows []fakeRow
	pos  int
	err  error
}

func (r *fakeRows) Close()                                       {}
func (r *fakeRows) Err() error                                   { return r.err }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) Values() ([]any, error)                       { return nil, nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }

func (r *fakeRows) Next() bool {
	if r.pos >= len(r.rows) {
		return false
	}
	r.pos++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	row := r.rows[r.pos-1]
	*dest[0].(*string) = row.name
	*dest[1].(**int64) = row.price
	*dest[2].(*string) = row.category
	*dest[3].(**string) = row.image
	*dest[4].(**string) = row.description
	return nil
}

type fakeQuerier struct {
	rows *fakeRows
	err  error
}

func (q fakeQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if q.err != nil {
		return nil, q.err
	}
	return q.rows, nil
}

func TestLoadCatalogFromDB(t *testing.T) {
	img := "images/bubble-tea.jpg"
	q := fakeQuerier{rows: &fakeRows{rows: []fakeRow{
		{name: "A", price: price(120), category: models.CategoryFood},
		{name: "Tea", price: price(60), category: models.CategoryDrink, image: &img},
	}}}

	c, err := LoadCatalogFromDB(context.Background(), q)
	require.NoError(t, err)
	tea, err := c.Lookup("Tea")
	require.NoError(t, err)
	assert.Equal(t, img, tea.Image())
}

func TestLoadCatalogFromDB_Errors(t *testing.T) {
	_, err := LoadCatalogFromDB(context.Background(), fakeQuerier{err: errors.New("connection refused")})
	assert.True(t, IsConfig(err))

	_, err = LoadCatalogFromDB(context.Background(), fakeQuerier{rows: &fakeRows{rows: []fakeRow{
		{name: "A", category: models.CategoryFood},
	}}})
	var ce *ConfigError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "A", ce.Entry)

	_, err = LoadCatalogFromDB(context.Background(), fakeQuerier{rows: &fakeRows{err: errors.New("broken pipe")}})
	assert.True(t, IsConfig(err))
}

func TestShippedMenuLoads(t *testing.T) {
	c, err := LoadCatalogFile(filepath.Join("..", "menu.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 3, c.Len())
	item, err := c.Lookup("牛肉麵")
	require.NoError(t, err)
	assert.Equal(t, int64(120), item.Price)
}
