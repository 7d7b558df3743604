package api

import "github.com/shopspring/decimal"

// Revenue is one bucket of the admin revenue report (a day or a month).
type Revenue struct {
	Date    string          `json:"date,omitempty"`
	Month   int             `json:"month,omitempty"`
	Revenue decimal.Decimal `json:"revenue"`
	Orders  int             `json:"orders,omitempty"`
}
