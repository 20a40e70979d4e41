package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID int
}

func TestDocumentStore_LoadReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := NewDocumentStore("items", item{ID: 1})

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	loaded[0].ID = 99

	again, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []item{{ID: 1}}, again)
	assert.Equal(t, "items", store.Name())
}

func TestDocumentStore_Replace(t *testing.T) {
	ctx := context.Background()
	store := NewDocumentStore[item]("items")

	empty, err := store.Load(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	require.NoError(t, store.Replace(ctx, []item{{ID: 2}, {ID: 3}}))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, loaded, 2)
}

func TestDocumentStore_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	store := NewDocumentStore[item]("items")

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, store.Replace(ctx, nil), context.Canceled)
}
