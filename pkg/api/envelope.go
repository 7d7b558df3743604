package api

import "encoding/json"

// Значения поля status в ответах сервера
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Envelope is the common shape of every server response body.
// On error Status is "error" and Message carries the human readable reason.
type Envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Address представляет адрес доставки / профиля
type Address struct {
	Street   string `json:"street"`
	District string `json:"district"`
	City     string `json:"city"`
}
