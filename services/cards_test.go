package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"restaurant-pos/lang"
	"restaurant-pos/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMenuCard(t *testing.T) {
	items := []models.MenuItem{{Name: "A", Price: 120}, {Name: strings.Repeat("x", 80), Price: 1}}
	c := BuildMenuCard(items, lang.En)

	assert.Contains(t, c.Text, "A: 120")
	require.Len(t, c.Buttons, 2, "overlong name gets no button, cart button is last")
	assert.Equal(t, "add:A", c.Buttons[0][0].CallbackData)
	assert.Equal(t, CallbackCart, c.Buttons[1][0].CallbackData)
}

func TestBuildCartCard(t *testing.T) {
	empty := BuildCartCard(nil, 0, lang.En)
	assert.Contains(t, empty.Text, lang.T(lang.En, "cart_empty"))
	require.Len(t, empty.Buttons, 1)
	assert.Equal(t, CallbackMenu, empty.Buttons[0][0].CallbackData)

	lines := []models.CartLine{
		{Name: "A", Qty: 1, UnitPrice: 120, LineTotal: 120, Available: true},
		{Name: "Gone", Qty: 2},
	}
	c := BuildCartCard(lines, 120, lang.En)
	assert.Contains(t, c.Text, "A × 1 (unit 120) — 120")
	assert.Contains(t, c.Text, "Gone × 2 (no longer on the menu")
	assert.Contains(t, c.Text, "Total: 120")

	var data []string
	for _, row := range c.Buttons {
		for _, b := range row {
			data = append(data, b.CallbackData)
		}
	}
	assert.Equal(t, []string{"rm:A", "rm:Gone", CallbackClear, CallbackCheckout, CallbackMenu}, data)
}

func TestBuildReceiptCard(t *testing.T) {
	r := models.NewReceipt("20261019123000-0001", time.Date(2026, 10, 19, 12, 30, 0, 0, time.UTC), []models.ReceiptLine{
		{Name: "A", Qty: 1, UnitPrice: 120, LineTotal: 120},
		{Name: "B", Qty: 2, UnitPrice: 80, LineTotal: 160},
	})
	c := BuildReceiptCard(r, lang.Zh)
	assert.Contains(t, c.Text, "收據編號：20261019123000-0001")
	assert.Contains(t, c.Text, "時間：2026-10-19 12:30:00")
	assert.Contains(t, c.Text, "- B × 2（單價 80 元）")
	assert.Contains(t, c.Text, "總金額：280 元")
}

func TestBuildHistoryCard(t *testing.T) {
	assert.Contains(t, BuildHistoryCard(nil, lang.En).Text, "No receipts yet.")

	at := time.Date(2026, 10, 19, 12, 30, 0, 0, time.UTC)
	rs := []models.Receipt{
		models.NewReceipt("r2", at, []models.ReceiptLine{{Name: "A", Qty: 1, LineTotal: 5}}),
		models.NewReceipt("r1", at, []models.ReceiptLine{{Name: "A", Qty: 2, LineTotal: 10}}),
	}
	text := BuildHistoryCard(rs, lang.En).Text
	assert.Less(t, strings.Index(text, "r2"), strings.Index(text, "r1"))
	assert.Contains(t, text, "r1 | 2026-10-19 12:30:00 | 10")
}

func TestErrorText(t *testing.T) {
	assert.Equal(t, "❌ No such item: Z", ErrorText(fmt.Errorf("checkout: %w", &NotFoundError{Name: "Z"}), lang.En))
	assert.Equal(t, "❌ Invalid input: quantity: too many", ErrorText(&ValidationError{Field: "quantity", Message: "too many"}, lang.En))
	assert.Contains(t, ErrorText(fmt.Errorf("boom"), lang.En), "boom")
}
