package order

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/iudanet/koishop/internal/client/storage"
	"github.com/iudanet/koishop/internal/models"
	"github.com/iudanet/koishop/pkg/api"
)

var (
	// ErrEmptyCart is returned by Checkout when there is nothing to order
	ErrEmptyCart = errors.New("cart is empty")

	// ErrNoPaymentURL is returned when an online payment order came back
	// without a payment page. The cart is kept.
	ErrNoPaymentURL = errors.New("server returned no payment url")
)

// Client is the part of the server API the order service needs
type Client interface {
	CreateOrder(ctx context.Context, req api.OrderRequest, idempotencyKey string) (*api.OrderResponse, error)
	OrderHistory(ctx context.Context, userID string) ([]api.Order, error)
	OrdersByStatus(ctx context.Context, status string) ([]api.Order, error)
	CancelOrder(ctx context.Context, req api.CancelOrderRequest) error
	ConfirmOrder(ctx context.Context, orderID string) error
	CompleteOrder(ctx context.Context, orderID string) error
	AddComment(ctx context.Context, req api.CommentRequest) error
}

// Cart is the cart state the checkout reads and clears
type Cart interface {
	Details() []api.CartDetail
	Total() decimal.Decimal
	Clear(ctx context.Context)
}

// Sessions provides the signed-in user
type Sessions interface {
	Current(ctx context.Context) (*storage.Session, error)
	RequireRole(ctx context.Context, roles ...string) (*storage.Session, error)
	SavePoints(ctx context.Context, points int64) error
}

// Quote is the amount shown before payment.
// One loyalty point is worth one dong.
type Quote struct {
	Subtotal   decimal.Decimal
	Discount   decimal.Decimal
	Total      decimal.Decimal
	PointsUsed int64 // сколько баллов реально покрывает сумма
}

// NewQuote считает итог: Total = max(Subtotal - Discount, 0).
// Баллы применяются только при usePoint и положительном балансе.
func NewQuote(subtotal decimal.Decimal, points int64, usePoint bool) Quote {
	q := Quote{Subtotal: subtotal, Discount: decimal.Zero, Total: subtotal}
	if !usePoint || points <= 0 {
		return q
	}

	q.Discount = decimal.NewFromInt(points)
	q.Total = decimal.Max(subtotal.Sub(q.Discount), decimal.Zero)
	q.PointsUsed = decimal.Min(q.Discount, subtotal).Ceil().IntPart()
	return q
}

// Receipt describes a placed order
type Receipt struct {
	OrderID    string
	PaymentURL string // только для онлайн оплаты
	Quote      Quote
}

// Service оформляет заказы и управляет ими
type Service struct {
	client   Client
	cart     Cart
	sessions Sessions
	logger   *slog.Logger
}

// NewService создает сервис заказов
func NewService(client Client, cart Cart, sessions Sessions, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		client:   client,
		cart:     cart,
		sessions: sessions,
		logger:   logger,
	}
}

// Quote считает сумму к оплате по текущей корзине и балансу баллов
func (s *Service) Quote(ctx context.Context, usePoint bool) (Quote, error) {
	session, err := s.sessions.Current(ctx)
	if err != nil {
		return Quote{}, err
	}
	return NewQuote(s.cart.Total(), session.Point, usePoint), nil
}

// Checkout создает заказ из корзины.
// Корзина очищается только после успешного ответа сервера; для онлайн оплаты
// дополнительно требуется ссылка на платежную страницу.
func (s *Service) Checkout(ctx context.Context, form models.CheckoutForm) (*Receipt, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	session, err := s.sessions.Current(ctx)
	if err != nil {
		return nil, err
	}

	details := s.cart.Details()
	if len(details) == 0 {
		return nil, ErrEmptyCart
	}

	quote := NewQuote(s.cart.Total(), session.Point, form.UsePoint)
	req := api.OrderRequest{
		UserID:          session.UserID,
		AddressShipping: form.Address,
		PaymentMethod:   string(form.PaymentMethod),
		CartDetails:     details,
		UsePoint:        quote.PointsUsed > 0,
	}

	// Один ключ на попытку оформления: повтор после обновления токена его переиспользует
	key := uuid.NewString()
	resp, err := s.client.CreateOrder(ctx, req, key)
	if err != nil {
		return nil, err
	}

	if form.PaymentMethod == models.PaymentOnline && resp.OrderURL == "" {
		s.logger.Warn("online order without payment url, keeping cart", "order_id", resp.ID)
		return nil, ErrNoPaymentURL
	}

	s.cart.Clear(ctx)

	if quote.PointsUsed > 0 {
		if err := s.sessions.SavePoints(ctx, session.Point-quote.PointsUsed); err != nil {
			s.logger.Warn("failed to update local point balance", "error", err)
		}
	}

	s.logger.Info("order placed",
		"order_id", resp.ID,
		"payment_method", req.PaymentMethod,
		"lines", len(details),
		"total", quote.Total.String(),
	)

	return &Receipt{OrderID: resp.ID, PaymentURL: resp.OrderURL, Quote: quote}, nil
}

// History возвращает заказы текущего пользователя
func (s *Service) History(ctx context.Context) ([]api.Order, error) {
	session, err := s.sessions.Current(ctx)
	if err != nil {
		return nil, err
	}
	return s.client.OrderHistory(ctx, session.UserID)
}

// ByStatus возвращает заказы с указанным статусом (staff, admin)
func (s *Service) ByStatus(ctx context.Context, status string) ([]api.Order, error) {
	if _, err := s.sessions.RequireRole(ctx, models.RoleStaff, models.RoleAdmin); err != nil {
		return nil, err
	}
	if strings.TrimSpace(status) == "" {
		return nil, fmt.Errorf("order status is empty")
	}
	return s.client.OrdersByStatus(ctx, status)
}

// Cancel отменяет заказ покупателя с указанием причины
func (s *Service) Cancel(ctx context.Context, orderID, reason string) error {
	if _, err := s.sessions.Current(ctx); err != nil {
		return err
	}

	verr := &models.ValidationError{}
	if strings.TrimSpace(orderID) == "" {
		verr.Add("orderId", "is required")
	}
	if strings.TrimSpace(reason) == "" {
		verr.Add("reason", "is required")
	}
	if err := verr.Err(); err != nil {
		return err
	}

	return s.client.CancelOrder(ctx, api.CancelOrderRequest{OrderID: orderID, Reason: reason})
}

// Confirm подтверждает заказ (staff, admin)
func (s *Service) Confirm(ctx context.Context, orderID string) error {
	if err := s.staffOrder(ctx, orderID); err != nil {
		return err
	}
	return s.client.ConfirmOrder(ctx, orderID)
}

// Complete завершает заказ (staff, admin)
func (s *Service) Complete(ctx context.Context, orderID string) error {
	if err := s.staffOrder(ctx, orderID); err != nil {
		return err
	}
	return s.client.CompleteOrder(ctx, orderID)
}

// Comment оставляет отзыв о товаре от имени текущего пользователя
func (s *Service) Comment(ctx context.Context, form models.CommentForm) error {
	session, err := s.sessions.Current(ctx)
	if err != nil {
		return err
	}
	if err := form.Validate(); err != nil {
		return err
	}

	return s.client.AddComment(ctx, api.CommentRequest{
		KoiID:   form.KoiID,
		UserID:  session.UserID,
		OrderID: form.OrderID,
		Rating:  form.Rating,
		Content: form.Content,
	})
}

func (s *Service) staffOrder(ctx context.Context, orderID string) error {
	if _, err := s.sessions.RequireRole(ctx, models.RoleStaff, models.RoleAdmin); err != nil {
		return err
	}
	if strings.TrimSpace(orderID) == "" {
		return fmt.Errorf("order id is empty")
	}
	return nil
}
