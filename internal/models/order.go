package models

import (
	"fmt"

	"github.com/iudanet/koishop/internal/validation"
	"github.com/iudanet/koishop/pkg/api"
)

// PaymentMethod - способ оплаты заказа
type PaymentMethod string

const (
	// PaymentOnline - онлайн оплата, сервер возвращает ссылку на платежную страницу
	PaymentOnline PaymentMethod = "OP"
	// PaymentCOD - оплата при получении
	PaymentCOD PaymentMethod = "COD"
)

// Validate проверяет способ оплаты
func (m PaymentMethod) Validate() error {
	switch m {
	case PaymentOnline, PaymentCOD:
		return nil
	case "":
		return fmt.Errorf("is required")
	default:
		return fmt.Errorf("unknown payment method %q", string(m))
	}
}

// Статусы заказа
const (
	OrderProcessing = "Processing"
	OrderInTransit  = "In Transit"
	OrderCompleted  = "Completed"
	OrderCancelled  = "Cancelled"
)

// ValidateAddress требует все три части адреса
func ValidateAddress(address api.Address) error {
	verr := &ValidationError{}
	checkAddress(verr, address)
	return verr.Err()
}

func checkAddress(verr *ValidationError, address api.Address) {
	verr.Check("address.street", validation.Required(address.Street))
	verr.Check("address.district", validation.Required(address.District))
	verr.Check("address.city", validation.Required(address.City))
}

// CheckoutForm представляет данные экрана оформления заказа
type CheckoutForm struct {
	Address       api.Address
	PaymentMethod PaymentMethod
	UsePoint      bool
}

// Validate проверяет адрес и способ оплаты
func (f CheckoutForm) Validate() error {
	verr := &ValidationError{}
	checkAddress(verr, f.Address)
	verr.Check("paymentMethod", f.PaymentMethod.Validate())
	return verr.Err()
}

// Границы оценки в отзыве
const (
	MinRating = 1
	MaxRating = 5
)

// CommentForm is a customer review of a purchased koi
type CommentForm struct {
	KoiID   string
	OrderID string
	Content string
	Rating  int
}

// Validate проверяет отзыв
func (f CommentForm) Validate() error {
	verr := &ValidationError{}
	verr.Check("koiId", validation.Required(f.KoiID))
	verr.Check("content", validation.Required(f.Content))
	if f.Rating < MinRating || f.Rating > MaxRating {
		verr.Add("rating", fmt.Sprintf("must be between %d and %d", MinRating, MaxRating))
	}
	return verr.Err()
}
