package storage

import "errors"

// Common client storage errors
var (
	// ErrAuthNotFound indicates that no authentication data exists
	ErrAuthNotFound = errors.New("authentication data not found")

	// ErrCartNotFound indicates that no cart snapshot has been persisted yet
	ErrCartNotFound = errors.New("cart snapshot not found")

	// ErrAddressNotFound indicates that no shipping address is cached
	ErrAddressNotFound = errors.New("address not found")
)
