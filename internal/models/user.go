package models

import (
	"github.com/iudanet/koishop/internal/validation"
	"github.com/iudanet/koishop/pkg/api"
)

// Роли пользователей, как их выдает сервер в claims
const (
	RoleCustomer = "CUSTOMER"
	RoleStaff    = "STAFF"
	RoleAdmin    = "ADMIN"
)

// RegistrationForm представляет данные формы регистрации
type RegistrationForm struct {
	Name     string
	Phone    string
	Email    string
	Password string
	Dob      string // YYYY-MM-DD
	Sex      string
}

// Validate проверяет все поля формы
func (f RegistrationForm) Validate() error {
	verr := &ValidationError{}
	verr.Check("name", validation.Required(f.Name))
	verr.Check("phone", validation.ValidatePhone(f.Phone))
	verr.Check("email", validation.ValidateEmail(f.Email))
	verr.Check("password", validation.ValidatePassword(f.Password))
	verr.Check("dob", validation.ValidateDate(f.Dob))
	verr.Check("sex", validation.Required(f.Sex))
	return verr.Err()
}

// Request converts the form into the wire request
func (f RegistrationForm) Request() api.RegisterRequest {
	return api.RegisterRequest{
		Name:     f.Name,
		Phone:    f.Phone,
		Email:    f.Email,
		Password: f.Password,
		Dob:      f.Dob,
		Sex:      f.Sex,
	}
}

// ProfileForm представляет изменяемые поля профиля
type ProfileForm struct {
	Name    string
	Phone   string
	Dob     string
	Sex     string
	Address api.Address
}

// Validate проверяет форму профиля, адрес обязателен целиком
func (f ProfileForm) Validate() error {
	verr := &ValidationError{}
	verr.Check("name", validation.Required(f.Name))
	verr.Check("phone", validation.ValidatePhone(f.Phone))
	verr.Check("dob", validation.ValidateDate(f.Dob))
	verr.Check("sex", validation.Required(f.Sex))
	checkAddress(verr, f.Address)
	return verr.Err()
}
