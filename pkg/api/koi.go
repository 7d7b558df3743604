package api

import "github.com/shopspring/decimal"

// Product is a koi listing as returned by the catalog endpoints.
type Product struct {
	ID          string          `json:"_id"`
	Name        string          `json:"name"`
	Image       string          `json:"image,omitempty"`
	Description string          `json:"des,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Type        string          `json:"type,omitempty"`
	Quantity    int             `json:"quantity"` // остаток на складе
	Origin      string          `json:"origin,omitempty"`
	Sex         string          `json:"sex,omitempty"`
	Age         int             `json:"age,omitempty"`
	Size        string          `json:"size,omitempty"`
	Breed       string          `json:"breed,omitempty"`
	Character   string          `json:"character,omitempty"`
	Diet        string          `json:"diet,omitempty"`
}

// Category представляет категорию (разновидность) карпов
type Category struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// SearchParams задает параметры поиска по каталогу
type SearchParams struct {
	Name string
	Type string
	Sort string // например "asc" / "desc" по цене
}

// ProductRequest is the body of create and update calls made by staff.
type ProductRequest struct {
	Name        string          `json:"name"`
	Image       string          `json:"image"`
	Description string          `json:"des"`
	Price       decimal.Decimal `json:"price"`
	Type        string          `json:"type"`
	Quantity    int             `json:"quantity"`
	Origin      string          `json:"origin,omitempty"`
	Sex         string          `json:"sex,omitempty"`
	Age         int             `json:"age,omitempty"`
	Size        string          `json:"size,omitempty"`
	Breed       string          `json:"breed,omitempty"`
	Character   string          `json:"character,omitempty"`
	Diet        string          `json:"diet,omitempty"`
}
