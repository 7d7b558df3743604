package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// EmailPattern - упрощенная проверка формата email
var EmailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// PhonePattern допускает 9-11 цифр с необязательным ведущим +
var PhonePattern = regexp.MustCompile(`^\+?[0-9]{9,11}$`)

// OTPPattern - одноразовый код из 6 цифр
var OTPPattern = regexp.MustCompile(`^[0-9]{6}$`)

const (
	// MinPasswordLen минимальная длина пароля
	MinPasswordLen = 6
)

// Required проверяет, что значение не пустое
func Required(value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("is required")
	}
	return nil
}

// ValidateEmail проверяет формат email
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}
	if !EmailPattern.MatchString(email) {
		return fmt.Errorf("email has invalid format")
	}
	return nil
}

// ValidatePassword проверяет минимальные требования к паролю
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}
	if len(password) < MinPasswordLen {
		return fmt.Errorf("password must be at least %d characters long", MinPasswordLen)
	}
	return nil
}

// ValidatePhone проверяет номер телефона
func ValidatePhone(phone string) error {
	if phone == "" {
		return fmt.Errorf("phone cannot be empty")
	}
	if !PhonePattern.MatchString(phone) {
		return fmt.Errorf("phone must contain 9-11 digits")
	}
	return nil
}

// ValidateDate expects a calendar date in YYYY-MM-DD form
func ValidateDate(value string) error {
	if value == "" {
		return fmt.Errorf("date cannot be empty")
	}
	if _, err := time.Parse(time.DateOnly, value); err != nil {
		return fmt.Errorf("date must be in YYYY-MM-DD format")
	}
	return nil
}

// ValidateOTP проверяет одноразовый код
func ValidateOTP(otp string) error {
	if !OTPPattern.MatchString(otp) {
		return fmt.Errorf("otp must be 6 digits")
	}
	return nil
}
