package api

import "github.com/shopspring/decimal"

// CartDetail is one order position sent to the server.
type CartDetail struct {
	KoiID    string `json:"koiId"`
	Quantity int    `json:"quantity"`
}

// OrderRequest представляет запрос на создание заказа
type OrderRequest struct {
	UserID          string       `json:"userId"`
	AddressShipping Address      `json:"addressShipping"`
	PaymentMethod   string       `json:"paymentMethod"`
	CartDetails     []CartDetail `json:"cartDetails"`
	UsePoint        bool         `json:"usePoint"`
}

// OrderResponse представляет ответ на создание заказа.
// OrderURL заполняется только для онлайн оплаты.
type OrderResponse struct {
	ID       string `json:"_id,omitempty"`
	OrderURL string `json:"order_url,omitempty"`
}

// Order представляет заказ в истории
type Order struct {
	ID              string          `json:"_id"`
	UserID          string          `json:"userId"`
	Status          string          `json:"status"`
	PaymentMethod   string          `json:"paymentMethod"`
	TotalPrice      decimal.Decimal `json:"totalPrice"`
	AddressShipping Address         `json:"addressShipping"`
	CartDetails     []CartDetail    `json:"cartDetails"`
	CancelReason    string          `json:"reason,omitempty"`
	CreatedAt       string          `json:"createdAt,omitempty"`
}

// CancelOrderRequest представляет запрос на отмену заказа
type CancelOrderRequest struct {
	OrderID string `json:"orderId"`
	Reason  string `json:"reason"`
}

// OrderIDRequest is the body of staff confirm/complete calls.
type OrderIDRequest struct {
	OrderID string `json:"orderId"`
}

// CommentRequest представляет отзыв покупателя о товаре
type CommentRequest struct {
	KoiID   string `json:"koiId"`
	UserID  string `json:"userId"`
	OrderID string `json:"orderId,omitempty"`
	Rating  int    `json:"rating"`
	Content string `json:"content"`
}
