package storage

import (
	"context"

	"github.com/iudanet/koishop/pkg/api"
)

// ProfileStorage caches profile data that is not part of the token claims
type ProfileStorage interface {
	SaveAddress(ctx context.Context, address api.Address) error

	// GetAddress returns ErrAddressNotFound if no address is cached
	GetAddress(ctx context.Context) (*api.Address, error)

	// SavePoints overwrites the cached loyalty point balance of the session
	SavePoints(ctx context.Context, points int64) error
}

// MetadataStorage defines interface for device level metadata
type MetadataStorage interface {
	// SealingSalt returns the per-device salt used to derive the token sealing key,
	// generating and storing it on first use.
	SealingSalt(ctx context.Context) ([]byte, error)
}

// Wiper removes all local data (logout)
type Wiper interface {
	Wipe(ctx context.Context) error
}
