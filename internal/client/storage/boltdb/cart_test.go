package boltdb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/koishop/internal/client/storage"
)

func TestStorage_SaveLoadCart(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	_, err := store.LoadCart(ctx)
	assert.ErrorIs(t, err, storage.ErrCartNotFound)

	require.NoError(t, store.SaveCart(ctx, []byte(`[{"_id":"k1","quantity":2}]`)))
	require.NoError(t, store.SaveCart(ctx, []byte(`[{"_id":"k2","quantity":1}]`)))

	// каждый SaveCart полностью заменяет снимок
	snapshot, err := store.LoadCart(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"_id":"k2","quantity":1}]`, string(snapshot))
}
