package services

import (
	"fmt"
	"time"

	"restaurant-pos/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	receiptIDLayout = "20060102150405"
	// Zero-padded width of the per-session sequence. Ids compare correctly as
	// strings up to 999999 checkouts in one session.
	receiptSeqWidth = 6
)

// Session is one customer's ordering state: a cart and the receipts it has
// produced. It is not safe for concurrent use; callers handle one action at a
// time.
type Session struct {
	id     string
	menu   MenuLookup
	cart   *Cart
	log    ReceiptLog
	logger *zap.Logger
	now    func() time.Time
	maxQty int

	seq    int
	lastAt time.Time
}

type SessionOption func(*Session)

func WithLogger(l *zap.Logger) SessionOption {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock replaces time.Now for receipt timestamps.
func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

func WithMaxLineQty(n int) SessionOption {
	return func(s *Session) { s.maxQty = n }
}

func NewSession(menu MenuLookup, opts ...SessionOption) *Session {
	s := &Session{
		id:     uuid.NewString(),
		menu:   menu,
		logger: zap.NewNop(),
		now:    time.Now,
		maxQty: DefaultMaxLineQty,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.cart = NewCart(menu, s.maxQty)
	s.logger = s.logger.With(zap.String("session_id", s.id))
	return s
}

func (s *Session) ID() string { return s.id }

func (s *Session) AddToCart(name string, qty int) error {
	if err := s.cart.Add(name, qty); err != nil {
		s.logger.Debug("add to cart rejected", zap.String("item", name), zap.Int("qty", qty), zap.Error(err))
		return err
	}
	s.logger.Debug("add to cart", zap.String("item", name), zap.Int("qty", qty))
	return nil
}

func (s *Session) SetQuantity(name string, qty int) error {
	if err := s.cart.SetQuantity(name, qty); err != nil {
		s.logger.Debug("set quantity rejected", zap.String("item", name), zap.Int("qty", qty), zap.Error(err))
		return err
	}
	s.logger.Debug("set quantity", zap.String("item", name), zap.Int("qty", qty))
	return nil
}

func (s *Session) RemoveOne(name string) {
	s.cart.RemoveOne(name)
	s.logger.Debug("remove one", zap.String("item", name))
}

func (s *Session) ClearCart() {
	s.cart.Clear()
	s.logger.Debug("cart cleared")
}

// Checkout turns the cart into a receipt, appends it to the history and
// empties the cart. An empty cart returns ok=false and changes nothing. If
// any line can no longer be priced the cart and history are left untouched.
func (s *Session) Checkout() (receipt models.Receipt, ok bool, err error) {
	if s.cart.IsEmpty() {
		s.logger.Info("checkout skipped: cart is empty")
		return models.Receipt{}, false, nil
	}

	cartLines := s.cart.Lines()
	lines := make([]models.ReceiptLine, 0, len(cartLines))
	for _, cl := range cartLines {
		item, err := s.menu.Lookup(cl.Name)
		if err != nil {
			s.logger.Warn("checkout aborted", zap.String("item", cl.Name), zap.Error(err))
			return models.Receipt{}, false, fmt.Errorf("checkout: %w", err)
		}
		lines = append(lines, models.ReceiptLine{
			Name:      cl.Name,
			Qty:       cl.Qty,
			UnitPrice: item.Price,
			LineTotal: item.Price * int64(cl.Qty),
		})
	}

	createdAt := s.now()
	if createdAt.Before(s.lastAt) {
		createdAt = s.lastAt
	}
	seq := s.seq + 1
	id := fmt.Sprintf("%s-%0*d", createdAt.Format(receiptIDLayout), receiptSeqWidth, seq)
	receipt = models.NewReceipt(id, createdAt, lines)

	s.log.append(receipt)
	s.seq = seq
	s.lastAt = createdAt
	s.cart.Clear()

	s.logger.Info("checkout complete",
		zap.String("receipt_id", receipt.ID()),
		zap.Int64("total", receipt.Total()),
		zap.Int("lines", len(lines)),
	)
	return receipt, true, nil
}

// CartView returns the priced cart lines in the order items were added.
func (s *Session) CartView() []models.CartLine {
	return s.cart.Lines()
}

func (s *Session) CartTotal() int64 {
	return s.cart.Total()
}

// CartQty returns the quantity of name in the cart.
func (s *Session) CartQty(name string) int {
	return s.cart.Qty(name)
}

func (s *Session) CartEmpty() bool {
	return s.cart.IsEmpty()
}

func (s *Session) LastReceipt() (models.Receipt, bool) {
	return s.log.Last()
}

// ReceiptHistory returns all receipts, newest first.
func (s *Session) ReceiptHistory() []models.Receipt {
	return s.log.All()
}

// Revenue sums all receipts in this session.
func (s *Session) Revenue() int64 {
	return s.log.Total()
}
