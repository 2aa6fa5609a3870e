package bot

import (
	"context"
	"strings"
	"sync"

	"restaurant-pos/config"
	"restaurant-pos/lang"
	"restaurant-pos/services"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Bot is the Telegram front end. Each chat gets its own order session from
// the registry; the bot only forwards intents and renders session state.
type Bot struct {
	api      *tgbotapi.BotAPI
	catalog  *services.Catalog
	sessions *services.Registry
	logger   *zap.Logger
	lang     string

	userLang   map[int64]string
	userLangMu sync.RWMutex
}

// reply is what one user action produces. When edit is set the card
// replaces the message the button was pressed on.
type reply struct {
	card  services.CardContent
	toast string
	edit  bool
}

func New(cfg *config.Config, catalog *services.Catalog, logger *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		return nil, err
	}
	b := newBot(catalog, logger, cfg.Telegram.Lang, services.WithMaxLineQty(cfg.Order.MaxLineQty))
	b.api = api
	return b, nil
}

func newBot(catalog *services.Catalog, logger *zap.Logger, defaultLang string, opts ...services.SessionOption) *Bot {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !lang.Valid(defaultLang) {
		defaultLang = lang.Zh
	}
	return &Bot{
		catalog:  catalog,
		sessions: services.NewRegistry(catalog, logger, opts...),
		logger:   logger.Named("bot"),
		lang:     defaultLang,
		userLang: make(map[int64]string),
	}
}

func (b *Bot) setBotCommands() error {
	cfg := tgbotapi.SetMyCommandsConfig{
		Commands: []tgbotapi.BotCommand{
			{Command: "start", Description: "Start / 開始"},
			{Command: "menu", Description: "Menu / 菜單"},
			{Command: "cart", Description: "Cart / 購物車"},
			{Command: "receipt", Description: "Last receipt / 收據"},
			{Command: "history", Description: "Receipts / 歷史收據"},
			{Command: "language", Description: "Language / 語言"},
		},
	}
	_, err := b.api.Request(cfg)
	return err
}

// Start polls for updates until ctx is cancelled. Updates are handled one at
// a time, so a chat's session never sees two actions interleaved.
func (b *Bot) Start(ctx context.Context) {
	if err := b.setBotCommands(); err != nil {
		b.logger.Warn("set bot commands", zap.Error(err))
	}
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	go func() {
		<-ctx.Done()
		b.api.StopReceivingUpdates()
	}()

	for update := range updates {
		if update.CallbackQuery != nil {
			b.onCallback(update.CallbackQuery)
			continue
		}
		if update.Message == nil || update.Message.From == nil {
			continue
		}
		msg := update.Message
		for _, card := range b.handleText(msg.Chat.ID, msg.From.ID, strings.TrimSpace(msg.Text)) {
			b.sendCard(msg.Chat.ID, card)
		}
	}
}

func (b *Bot) onCallback(cq *tgbotapi.CallbackQuery) {
	if cq.Message == nil {
		return
	}
	chatID := cq.Message.Chat.ID
	r := b.handleCallback(chatID, cq.From.ID, cq.Data)
	if _, err := b.api.Request(tgbotapi.NewCallback(cq.ID, r.toast)); err != nil {
		b.logger.Warn("answer callback", zap.Error(err))
	}
	if r.card.Text == "" {
		return
	}
	if r.edit {
		b.editCard(chatID, cq.Message.MessageID, r.card)
		return
	}
	b.sendCard(chatID, r.card)
}

// handleText maps a chat message to the cards to send back.
func (b *Bot) handleText(chatID, userID int64, text string) []services.CardContent {
	l := b.getLang(userID)
	s := b.sessions.Get(chatID)
	cmd, args := splitCommand(text)

	switch cmd {
	case "/start":
		return []services.CardContent{
			{Text: lang.T(l, "welcome")},
			services.BuildMenuCard(b.catalog.Items(), l),
		}
	case "/menu":
		return []services.CardContent{services.BuildMenuCard(b.catalog.Items(), l)}
	case "/cart":
		return []services.CardContent{services.BuildCartCard(s.CartView(), s.CartTotal(), l)}
	case "/receipt":
		r, ok := s.LastReceipt()
		if !ok {
			return []services.CardContent{{Text: lang.T(l, "receipt_none")}}
		}
		return []services.CardContent{services.BuildReceiptCard(r, l)}
	case "/history":
		return []services.CardContent{services.BuildHistoryCard(s.ReceiptHistory(), l)}
	case "/language":
		return []services.CardContent{{
			Text: lang.T(l, "choose_lang"),
			Buttons: [][]services.CardButton{{
				{Text: "中文", CallbackData: "lang:" + lang.Zh},
				{Text: "English", CallbackData: "lang:" + lang.En},
			}},
		}}
	case "/add", "/set":
		name, qty, err := services.ParseItemQty(args, cmd == "/add")
		if err != nil {
			return []services.CardContent{{Text: services.ErrorText(err, l)}}
		}
		if cmd == "/add" && qty <= 0 {
			return []services.CardContent{{Text: lang.T(l, "add_noop", name)}}
		}
		if cmd == "/add" {
			err = s.AddToCart(name, qty)
		} else {
			err = s.SetQuantity(name, qty)
		}
		if err != nil {
			return []services.CardContent{{Text: services.ErrorText(err, l)}}
		}
		return []services.CardContent{services.BuildCartCard(s.CartView(), s.CartTotal(), l)}
	case "/reset":
		b.sessions.Drop(chatID)
		return []services.CardContent{{Text: lang.T(l, "cleared")}}
	}
	return nil
}

// handleCallback maps an inline button press to a reply.
func (b *Bot) handleCallback(chatID, userID int64, data string) reply {
	l := b.getLang(userID)
	s := b.sessions.Get(chatID)
	cartCard := func() services.CardContent {
		return services.BuildCartCard(s.CartView(), s.CartTotal(), l)
	}

	switch {
	case strings.HasPrefix(data, "lang:"):
		code := strings.TrimPrefix(data, "lang:")
		if !lang.Valid(code) {
			return reply{}
		}
		b.setLang(userID, code)
		return reply{card: services.CardContent{Text: lang.T(code, "language_changed")}}
	case strings.HasPrefix(data, services.CallbackAdd):
		name := strings.TrimPrefix(data, services.CallbackAdd)
		if err := s.AddToCart(name, 1); err != nil {
			return reply{toast: services.ErrorText(err, l)}
		}
		return reply{toast: lang.T(l, "added", name, 1)}
	case strings.HasPrefix(data, services.CallbackRemove):
		name := strings.TrimPrefix(data, services.CallbackRemove)
		s.RemoveOne(name)
		return reply{card: cartCard(), toast: lang.T(l, "removed", name), edit: true}
	case data == services.CallbackClear:
		s.ClearCart()
		return reply{card: cartCard(), toast: lang.T(l, "cleared"), edit: true}
	case data == services.CallbackCart:
		return reply{card: cartCard(), edit: true}
	case data == services.CallbackMenu:
		return reply{card: services.BuildMenuCard(b.catalog.Items(), l), edit: true}
	case data == services.CallbackCheckout:
		r, ok, err := s.Checkout()
		switch {
		case err != nil:
			return reply{card: cartCard(), toast: services.ErrorText(err, l), edit: true}
		case !ok:
			return reply{toast: lang.T(l, "checkout_empty")}
		}
		return reply{card: services.BuildReceiptCard(r, l), toast: lang.T(l, "checkout_ok"), edit: true}
	}
	return reply{}
}

func (b *Bot) getLang(userID int64) string {
	b.userLangMu.RLock()
	defer b.userLangMu.RUnlock()
	if l, ok := b.userLang[userID]; ok {
		return l
	}
	return b.lang
}

func (b *Bot) setLang(userID int64, code string) {
	b.userLangMu.Lock()
	defer b.userLangMu.Unlock()
	b.userLang[userID] = code
}

// cardMarkup converts card buttons to an inline keyboard.
func cardMarkup(c services.CardContent) *tgbotapi.InlineKeyboardMarkup {
	if len(c.Buttons) == 0 {
		return nil
	}
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, row := range c.Buttons {
		var btns []tgbotapi.InlineKeyboardButton
		for _, btn := range row {
			btns = append(btns, tgbotapi.NewInlineKeyboardButtonData(btn.Text, btn.CallbackData))
		}
		rows = append(rows, btns)
	}
	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &kb
}

func (b *Bot) sendCard(chatID int64, c services.CardContent) {
	msg := tgbotapi.NewMessage(chatID, c.Text)
	if kb := cardMarkup(c); kb != nil {
		msg.ReplyMarkup = *kb
	}
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Warn("send error", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

// editCard replaces a message in place. "message is not modified" is ignored.
func (b *Bot) editCard(chatID int64, messageID int, c services.CardContent) {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, c.Text)
	edit.ReplyMarkup = cardMarkup(c)
	if _, err := b.api.Send(edit); err != nil && !strings.Contains(err.Error(), "message is not modified") {
		b.logger.Warn("edit error", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func splitCommand(text string) (cmd string, args []string) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return "", nil
	}
	cmd = fields[0]
	// "/menu@SomeBot" in group chats
	if i := strings.IndexByte(cmd, '@'); i > 0 {
		cmd = cmd[:i]
	}
	return strings.ToLower(cmd), fields[1:]
}
