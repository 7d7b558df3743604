package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/koishop/internal/client/storage"
)

var sessionKey = []byte("current")

// SaveSession stores the signed-in session
func (s *Storage) SaveSession(ctx context.Context, session *storage.Session) error {
	if session == nil {
		return fmt.Errorf("session is nil")
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketAuth)
		if bucket == nil {
			return fmt.Errorf("auth bucket not found")
		}
		return putSession(bucket, session)
	})
}

// GetSession retrieves the stored session
func (s *Storage) GetSession(ctx context.Context) (*storage.Session, error) {
	var session *storage.Session

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketAuth)
		if bucket == nil {
			return fmt.Errorf("auth bucket not found")
		}

		var err error
		session, err = getSession(bucket)
		return err
	})
	if err != nil {
		return nil, err
	}

	return session, nil
}

// UpdateTokens replaces both tokens in one transaction: either both are written or none
func (s *Storage) UpdateTokens(ctx context.Context, accessToken, refreshToken string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketAuth)
		if bucket == nil {
			return fmt.Errorf("auth bucket not found")
		}

		session, err := getSession(bucket)
		if err != nil {
			return err
		}

		session.AccessToken = accessToken
		session.RefreshToken = refreshToken

		return putSession(bucket, session)
	})
}

// SavePoints обновляет баланс баллов в сохраненной сессии
func (s *Storage) SavePoints(ctx context.Context, points int64) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketAuth)
		if bucket == nil {
			return fmt.Errorf("auth bucket not found")
		}

		session, err := getSession(bucket)
		if err != nil {
			return err
		}
		session.Point = points

		return putSession(bucket, session)
	})
}

// UpdateProfile меняет поля профиля в сохраненной сессии, токены не трогает
func (s *Storage) UpdateProfile(ctx context.Context, profile storage.Profile) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketAuth)
		if bucket == nil {
			return fmt.Errorf("auth bucket not found")
		}

		session, err := getSession(bucket)
		if err != nil {
			return err
		}
		session.Name = profile.Name
		session.Phone = profile.Phone
		session.Dob = profile.Dob
		session.Sex = profile.Sex

		return putSession(bucket, session)
	})
}

// DeleteSession removes the stored session (logout)
func (s *Storage) DeleteSession(ctx context.Context) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketAuth)
		if bucket == nil {
			return fmt.Errorf("auth bucket not found")
		}

		if bucket.Get(sessionKey) == nil {
			return storage.ErrAuthNotFound
		}

		if err := bucket.Delete(sessionKey); err != nil {
			return fmt.Errorf("failed to delete session: %w", err)
		}

		return nil
	})
}

func getSession(bucket *bbolt.Bucket) (*storage.Session, error) {
	data := bucket.Get(sessionKey)
	if data == nil {
		return nil, storage.ErrAuthNotFound
	}

	session := &storage.Session{}
	if err := json.Unmarshal(data, session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return session, nil
}

func putSession(bucket *bbolt.Bucket, session *storage.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := bucket.Put(sessionKey, data); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}
