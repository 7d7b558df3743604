package boltdb

import "github.com/iudanet/koishop/internal/client/storage"

// Compile-time checks
var (
	_ storage.SessionStorage  = (*Storage)(nil)
	_ storage.CartStorage     = (*Storage)(nil)
	_ storage.ProfileStorage  = (*Storage)(nil)
	_ storage.MetadataStorage = (*Storage)(nil)
	_ storage.Wiper           = (*Storage)(nil)
)
