package storage

import "context"

// CartStorage persists the serialized cart snapshot under a fixed key.
// Every save replaces the previous snapshot as a whole.
type CartStorage interface {
	SaveCart(ctx context.Context, snapshot []byte) error

	// LoadCart returns ErrCartNotFound if nothing was saved yet
	LoadCart(ctx context.Context) ([]byte, error)
}
