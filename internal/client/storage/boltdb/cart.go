package boltdb

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/koishop/internal/client/storage"
)

var cartKey = []byte("cartItems")

// SaveCart replaces the persisted cart snapshot
func (s *Storage) SaveCart(ctx context.Context, snapshot []byte) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketCart)
		if bucket == nil {
			return fmt.Errorf("cart bucket not found")
		}
		if err := bucket.Put(cartKey, snapshot); err != nil {
			return fmt.Errorf("failed to save cart: %w", err)
		}
		return nil
	})
}

// LoadCart returns a copy of the persisted cart snapshot
func (s *Storage) LoadCart(ctx context.Context) ([]byte, error) {
	var snapshot []byte

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketCart)
		if bucket == nil {
			return fmt.Errorf("cart bucket not found")
		}

		data := bucket.Get(cartKey)
		if data == nil {
			return storage.ErrCartNotFound
		}

		// Данные bbolt валидны только внутри транзакции
		snapshot = append([]byte(nil), data...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return snapshot, nil
}
