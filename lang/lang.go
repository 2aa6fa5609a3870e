package lang

import "fmt"

const (
	Zh = "zh"
	En = "en"
)

var texts = map[string]map[string]string{
	Zh: {
		"welcome":          "👋 歡迎光臨小餐廳！",
		"menu_header":      "📋 今日菜單",
		"menu_line":        "%s：%d 元",
		"cart_label":       "🛒 購物車",
		"cart_empty":       "購物車是空的，先選餐點吧！",
		"cart_line":        "• %s × %d（單價 %d 元）— %d 元",
		"cart_line_gone":   "• %s × %d（已下架，不計價）",
		"total":            "💰 總金額：%d 元",
		"added":            "已加入 %s × %d",
		"add_noop":         "數量需大於 0，%s 未加入",
		"removed":          "已移除 1 份 %s",
		"qty_set":          "%s 數量已設為 %d",
		"cleared":          "🧹 購物車已清空",
		"checkout_ok":      "結帳成功 ✅ 已產生收據！",
		"checkout_empty":   "⚠️ 購物車是空的，無法結帳。",
		"checkout_failed":  "❌ 結帳失敗：%s",
		"receipt_label":    "🧾 收據",
		"receipt_id":       "收據編號：%s",
		"receipt_time":     "時間：%s",
		"receipt_line":     "- %s × %d（單價 %d 元）",
		"receipt_none":     "目前尚無歷史收據。",
		"history_label":    "📜 歷史收據",
		"history_line":     "%s｜%s｜%d 元",
		"not_found":        "❌ 沒有這個餐點：%s",
		"invalid":          "❌ 輸入有誤：%s",
		"btn_add":          "➕ %s — %d",
		"btn_remove":       "➖ %s",
		"btn_clear":        "🧹 清空購物車",
		"btn_checkout":     "✅ 結帳",
		"btn_cart":         "🛒 購物車",
		"btn_menu":         "📋 菜單",
		"language_changed": "語言已切換為中文",
		"choose_lang":      "請選擇語言 / Choose language",
		"console_help":     "指令：menu｜add <品名> [數量]｜set <品名> <數量>｜rm <品名>｜clear｜cart｜checkout｜receipt｜history｜q",
		"unknown_command":  "不明指令：%s",
		"bye":              "謝謝光臨！",
	},
	En: {
		"welcome":          "👋 Welcome to our little restaurant!",
		"menu_header":      "📋 Today's menu",
		"menu_line":        "%s: %d",
		"cart_label":       "🛒 Cart",
		"cart_empty":       "Your cart is empty, pick something from the menu!",
		"cart_line":        "• %s × %d (unit %d) — %d",
		"cart_line_gone":   "• %s × %d (no longer on the menu, not charged)",
		"total":            "💰 Total: %d",
		"added":            "Added %s × %d",
		"add_noop":         "Quantity must be above 0, %s not added",
		"removed":          "Removed one %s",
		"qty_set":          "%s quantity set to %d",
		"cleared":          "🧹 Cart cleared",
		"checkout_ok":      "Checkout complete ✅ receipt issued!",
		"checkout_empty":   "⚠️ Your cart is empty, nothing to check out.",
		"checkout_failed":  "❌ Checkout failed: %s",
		"receipt_label":    "🧾 Receipt",
		"receipt_id":       "Receipt no.: %s",
		"receipt_time":     "Time: %s",
		"receipt_line":     "- %s × %d (unit %d)",
		"receipt_none":     "No receipts yet.",
		"history_label":    "📜 Receipt history",
		"history_line":     "%s | %s | %d",
		"not_found":        "❌ No such item: %s",
		"invalid":          "❌ Invalid input: %s",
		"btn_add":          "➕ %s — %d",
		"btn_remove":       "➖ %s",
		"btn_clear":        "🧹 Clear cart",
		"btn_checkout":     "✅ Checkout",
		"btn_cart":         "🛒 Cart",
		"btn_menu":         "📋 Menu",
		"language_changed": "Language switched to English",
		"choose_lang":      "請選擇語言 / Choose language",
		"console_help":     "commands: menu | add <item> [qty] | set <item> <qty> | rm <item> | clear | cart | checkout | receipt | history | q",
		"unknown_command":  "unknown command: %s",
		"bye":              "Thanks for visiting!",
	},
}

// Valid reports whether code is a supported language.
func Valid(code string) bool {
	_, ok := texts[code]
	return ok
}

// T returns the text for key in langCode, falling back to Zh and then to the
// key itself. args are applied with fmt.Sprintf when present.
func T(langCode, key string, args ...interface{}) string {
	table, ok := texts[langCode]
	if !ok {
		table = texts[Zh]
	}
	s, ok := table[key]
	if !ok {
		if s, ok = texts[Zh][key]; !ok {
			s = key
		}
	}
	if len(args) > 0 {
		return fmt.Sprintf(s, args...)
	}
	return s
}
