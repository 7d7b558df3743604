package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/iudanet/koishop/internal/client/storage"
	"github.com/iudanet/koishop/pkg/api"
)

// Сообщения, которые получает пользователь после Add
const (
	MessageAdded  = "Product added to cart"
	MessageMerged = "Product is already in cart, quantity updated"
)

// ErrInvalidQuantity is returned by Add for quantities below one
var ErrInvalidQuantity = errors.New("quantity must be at least 1")

// Outcome reports what Add did with the product
type Outcome int

const (
	// Added - в корзину добавлена новая строка
	Added Outcome = iota + 1
	// Merged - количество добавлено к существующей строке
	Merged
)

func (o Outcome) String() string {
	switch o {
	case Added:
		return "added"
	case Merged:
		return "merged"
	default:
		return "unknown"
	}
}

// Notifier shows a short user-visible message
type Notifier interface {
	Notify(message string)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(message string)

// Notify calls f(message)
func (f NotifierFunc) Notify(message string) { f(message) }

// Line is one product in the cart. Product fields are a copy taken when the
// line was created; later catalog changes do not affect it.
type Line struct {
	ProductID string          `json:"_id"`
	Name      string          `json:"name"`
	Image     string          `json:"image,omitempty"`
	Type      string          `json:"type,omitempty"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

// Subtotal возвращает price * quantity
func (l Line) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Store is the cart state: an ordered list of lines, most recently added first,
// with at most one line per product. Every mutation writes the whole snapshot
// to storage before returning. Storage failures are logged and do not roll
// back the in-memory state.
type Store struct {
	storage  storage.CartStorage
	notifier Notifier
	logger   *slog.Logger
	lines    []Line
	mu       sync.Mutex
}

// New creates the cart and loads the persisted snapshot.
// A missing or unreadable snapshot yields an empty cart.
func New(ctx context.Context, st storage.CartStorage, notifier Notifier, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	if notifier == nil {
		notifier = NotifierFunc(func(string) {})
	}

	s := &Store{
		storage:  st,
		notifier: notifier,
		logger:   logger,
	}
	s.lines = s.load(ctx)
	return s
}

func (s *Store) load(ctx context.Context) []Line {
	snapshot, err := s.storage.LoadCart(ctx)
	if err != nil {
		if !errors.Is(err, storage.ErrCartNotFound) {
			s.logger.Warn("failed to load cart, starting empty", "error", err)
		}
		return nil
	}

	var stored []Line
	if err := json.Unmarshal(snapshot, &stored); err != nil {
		s.logger.Warn("corrupt cart snapshot, starting empty", "error", err)
		return nil
	}

	// Отбрасываем строки, нарушающие инварианты корзины
	lines := make([]Line, 0, len(stored))
	seen := make(map[string]struct{}, len(stored))
	for _, line := range stored {
		if line.ProductID == "" || line.Quantity < 1 {
			s.logger.Warn("dropping invalid cart line", "product_id", line.ProductID, "quantity", line.Quantity)
			continue
		}
		if _, dup := seen[line.ProductID]; dup {
			s.logger.Warn("dropping duplicate cart line", "product_id", line.ProductID)
			continue
		}
		seen[line.ProductID] = struct{}{}
		lines = append(lines, line)
	}
	return lines
}

// Add merges quantity into the line for product.ID or prepends a new line.
func (s *Store) Add(ctx context.Context, product api.Product, quantity int) (Outcome, error) {
	if quantity < 1 {
		return 0, ErrInvalidQuantity
	}
	if product.ID == "" {
		return 0, fmt.Errorf("product id is empty")
	}

	s.mu.Lock()
	outcome := Added
	if i := s.indexOf(product.ID); i >= 0 {
		updated := make([]Line, len(s.lines))
		copy(updated, s.lines)
		updated[i].Quantity += quantity
		s.lines = updated
		outcome = Merged
	} else {
		line := Line{
			ProductID: product.ID,
			Name:      product.Name,
			Image:     product.Image,
			Type:      product.Type,
			Price:     product.Price,
			Quantity:  quantity,
		}
		s.lines = append([]Line{line}, s.lines...)
	}
	s.persist(ctx)
	s.mu.Unlock()

	// уведомляем вне блокировки: обработчик может читать корзину
	if outcome == Merged {
		s.notifier.Notify(MessageMerged)
	} else {
		s.notifier.Notify(MessageAdded)
	}

	return outcome, nil
}

// Remove deletes the line for productID. Absent ids are not an error.
func (s *Store) Remove(ctx context.Context, productID string) {
	s.RemoveMany(ctx, []string{productID})
}

// RemoveMany deletes every line whose id is in productIDs in one pass and persists once.
func (s *Store) RemoveMany(ctx context.Context, productIDs []string) {
	drop := make(map[string]struct{}, len(productIDs))
	for _, id := range productIDs {
		drop[id] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]Line, 0, len(s.lines))
	for _, line := range s.lines {
		if _, ok := drop[line.ProductID]; !ok {
			kept = append(kept, line)
		}
	}
	s.lines = kept
	s.persist(ctx)
}

// Clear empties the cart and persists the empty snapshot
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = nil
	s.persist(ctx)
}

// Lines returns a copy of the cart lines, most recently added first
func (s *Store) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := make([]Line, len(s.lines))
	copy(lines, s.lines)
	return lines
}

// Line returns the line for productID
func (s *Store) Line(productID string) (Line, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(productID); i >= 0 {
		return s.lines[i], true
	}
	return Line{}, false
}

// Len возвращает количество строк
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines)
}

// Total returns the sum of price * quantity over all lines
func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, line := range s.lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

// Details converts the cart into order positions
func (s *Store) Details() []api.CartDetail {
	s.mu.Lock()
	defer s.mu.Unlock()

	details := make([]api.CartDetail, 0, len(s.lines))
	for _, line := range s.lines {
		details = append(details, api.CartDetail{KoiID: line.ProductID, Quantity: line.Quantity})
	}
	return details
}

func (s *Store) indexOf(productID string) int {
	for i, line := range s.lines {
		if line.ProductID == productID {
			return i
		}
	}
	return -1
}

// persist пишет снимок целиком. Вызывается под s.mu, ошибки только логируются.
func (s *Store) persist(ctx context.Context) {
	lines := s.lines
	if lines == nil {
		lines = []Line{}
	}

	snapshot, err := json.Marshal(lines)
	if err != nil {
		s.logger.Warn("failed to marshal cart", "error", err)
		return
	}

	if err := s.storage.SaveCart(ctx, snapshot); err != nil {
		s.logger.Warn("failed to persist cart", "error", err, "lines", len(lines))
	}
}
