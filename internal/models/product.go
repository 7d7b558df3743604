package models

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/iudanet/koishop/internal/validation"
	"github.com/iudanet/koishop/pkg/api"
)

// ProductForm is the staff form for creating or editing a koi listing.
// Name, image, description, price, type and stock are required;
// the remaining descriptive fields are optional.
type ProductForm struct {
	Name        string
	Image       string // URL изображения в хранилище
	Description string
	Price       decimal.Decimal
	Type        string
	Quantity    int
	Origin      string
	Sex         string
	Age         int
	Size        string
	Breed       string
	Character   string
	Diet        string
}

// Validate проверяет форму товара
func (f ProductForm) Validate() error {
	verr := &ValidationError{}
	verr.Check("name", validation.Required(f.Name))
	verr.Check("image", validation.Required(f.Image))
	verr.Check("des", validation.Required(f.Description))
	verr.Check("type", validation.Required(f.Type))

	if !f.Price.IsPositive() {
		verr.Add("price", "must be greater than zero")
	}
	if f.Quantity < 0 {
		verr.Add("quantity", "cannot be negative")
	}
	if f.Age < 0 {
		verr.Add("age", "cannot be negative")
	}
	if f.Sex != "" && f.Sex != "male" && f.Sex != "female" {
		verr.Add("sex", fmt.Sprintf("unknown value %q", f.Sex))
	}

	return verr.Err()
}

// Request converts the form into the wire request
func (f ProductForm) Request() api.ProductRequest {
	return api.ProductRequest{
		Name:        f.Name,
		Image:       f.Image,
		Description: f.Description,
		Price:       f.Price,
		Type:        f.Type,
		Quantity:    f.Quantity,
		Origin:      f.Origin,
		Sex:         f.Sex,
		Age:         f.Age,
		Size:        f.Size,
		Breed:       f.Breed,
		Character:   f.Character,
		Diet:        f.Diet,
	}
}
