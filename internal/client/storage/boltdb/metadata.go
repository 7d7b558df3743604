package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/koishop/internal/client/storage"
	"github.com/iudanet/koishop/internal/crypto"
	"github.com/iudanet/koishop/pkg/api"
)

var (
	addressKey     = []byte("address")
	sealingSaltKey = []byte("sealing_salt")
)

// SaveAddress caches the shipping address as a JSON string
func (s *Storage) SaveAddress(ctx context.Context, address api.Address) error {
	data, err := json.Marshal(address)
	if err != nil {
		return fmt.Errorf("failed to marshal address: %w", err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketProfile)
		if bucket == nil {
			return fmt.Errorf("profile bucket not found")
		}
		if err := bucket.Put(addressKey, data); err != nil {
			return fmt.Errorf("failed to save address: %w", err)
		}
		return nil
	})
}

// GetAddress returns the cached shipping address
func (s *Storage) GetAddress(ctx context.Context) (*api.Address, error) {
	var address *api.Address

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketProfile)
		if bucket == nil {
			return fmt.Errorf("profile bucket not found")
		}

		data := bucket.Get(addressKey)
		if data == nil {
			return storage.ErrAddressNotFound
		}

		address = &api.Address{}
		if err := json.Unmarshal(data, address); err != nil {
			return fmt.Errorf("failed to unmarshal address: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return address, nil
}

// SealingSalt returns the device salt, creating it on first use
func (s *Storage) SealingSalt(ctx context.Context) ([]byte, error) {
	var salt []byte

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}

		if existing := bucket.Get(sealingSaltKey); existing != nil {
			salt = append([]byte(nil), existing...)
			return nil
		}

		generated, err := crypto.GenerateSalt()
		if err != nil {
			return err
		}
		if err := bucket.Put(sealingSaltKey, generated); err != nil {
			return fmt.Errorf("failed to save sealing salt: %w", err)
		}
		salt = generated
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get sealing salt: %w", err)
	}

	return salt, nil
}
