package services

import (
	"errors"
	"strings"

	"restaurant-pos/lang"
	"restaurant-pos/models"
)

// Callback data prefixes used on card buttons.
const (
	CallbackAdd      = "add:"
	CallbackRemove   = "rm:"
	CallbackClear    = "clear"
	CallbackCheckout = "checkout"
	CallbackCart     = "cart"
	CallbackMenu     = "menu"

	// Telegram rejects callback_data longer than this.
	maxCallbackData = 64
)

// CardButton is one inline button.
type CardButton struct {
	Text         string
	CallbackData string
}

// CardContent is the text and optional inline keyboard a presenter shows.
type CardContent struct {
	Text    string
	Buttons [][]CardButton
}

// BuildMenuCard lists the menu with one add button per item.
func BuildMenuCard(items []models.MenuItem, langCode string) CardContent {
	var sb strings.Builder
	sb.WriteString(lang.T(langCode, "menu_header"))
	sb.WriteString("\n")
	var rows [][]CardButton
	for _, it := range items {
		sb.WriteString("\n")
		sb.WriteString(lang.T(langCode, "menu_line", it.Name, it.Price))
		if data := CallbackAdd + it.Name; len(data) <= maxCallbackData {
			rows = append(rows, []CardButton{{Text: lang.T(langCode, "btn_add", it.Name, it.Price), CallbackData: data}})
		}
	}
	rows = append(rows, []CardButton{{Text: lang.T(langCode, "btn_cart"), CallbackData: CallbackCart}})
	return CardContent{Text: sb.String(), Buttons: rows}
}

// BuildCartCard shows cart lines and total. A non-empty cart gets remove,
// clear and checkout buttons.
func BuildCartCard(lines []models.CartLine, total int64, langCode string) CardContent {
	var sb strings.Builder
	sb.WriteString(lang.T(langCode, "cart_label"))
	sb.WriteString("\n\n")
	if len(lines) == 0 {
		sb.WriteString(lang.T(langCode, "cart_empty"))
		return CardContent{
			Text:    sb.String(),
			Buttons: [][]CardButton{{{Text: lang.T(langCode, "btn_menu"), CallbackData: CallbackMenu}}},
		}
	}

	var rows [][]CardButton
	for _, l := range lines {
		if l.Available {
			sb.WriteString(lang.T(langCode, "cart_line", l.Name, l.Qty, l.UnitPrice, l.LineTotal))
		} else {
			sb.WriteString(lang.T(langCode, "cart_line_gone", l.Name, l.Qty))
		}
		sb.WriteString("\n")
		if data := CallbackRemove + l.Name; len(data) <= maxCallbackData {
			rows = append(rows, []CardButton{{Text: lang.T(langCode, "btn_remove", l.Name), CallbackData: data}})
		}
	}
	sb.WriteString("\n")
	sb.WriteString(lang.T(langCode, "total", total))

	rows = append(rows,
		[]CardButton{
			{Text: lang.T(langCode, "btn_clear"), CallbackData: CallbackClear},
			{Text: lang.T(langCode, "btn_checkout"), CallbackData: CallbackCheckout},
		},
		[]CardButton{{Text: lang.T(langCode, "btn_menu"), CallbackData: CallbackMenu}},
	)
	return CardContent{Text: sb.String(), Buttons: rows}
}

// BuildReceiptCard renders a receipt using the unit prices frozen at checkout.
func BuildReceiptCard(r models.Receipt, langCode string) CardContent {
	var sb strings.Builder
	sb.WriteString(lang.T(langCode, "receipt_label"))
	sb.WriteString("\n")
	sb.WriteString(lang.T(langCode, "receipt_id", r.ID()))
	sb.WriteString("\n")
	sb.WriteString(lang.T(langCode, "receipt_time", r.Time()))
	sb.WriteString("\n---\n")
	for _, l := range r.Lines() {
		sb.WriteString(lang.T(langCode, "receipt_line", l.Name, l.Qty, l.UnitPrice))
		sb.WriteString("\n")
	}
	sb.WriteString("---\n")
	sb.WriteString(lang.T(langCode, "total", r.Total()))
	return CardContent{
		Text:    sb.String(),
		Buttons: [][]CardButton{{{Text: lang.T(langCode, "btn_menu"), CallbackData: CallbackMenu}}},
	}
}

// BuildHistoryCard lists receipts in the order given (newest first from a session).
func BuildHistoryCard(receipts []models.Receipt, langCode string) CardContent {
	var sb strings.Builder
	sb.WriteString(lang.T(langCode, "history_label"))
	sb.WriteString("\n\n")
	if len(receipts) == 0 {
		sb.WriteString(lang.T(langCode, "receipt_none"))
	}
	for _, r := range receipts {
		sb.WriteString(lang.T(langCode, "history_line", r.ID(), r.Time(), r.Total()))
		sb.WriteString("\n")
	}
	return CardContent{Text: strings.TrimRight(sb.String(), "\n")}
}

// ErrorText maps an order error to user-facing text.
func ErrorText(err error, langCode string) string {
	var nf *NotFoundError
	var ve *ValidationError
	switch {
	case errors.As(err, &nf):
		return lang.T(langCode, "not_found", nf.Name)
	case errors.As(err, &ve):
		return lang.T(langCode, "invalid", ve.Error())
	default:
		return lang.T(langCode, "checkout_failed", err.Error())
	}
}
