package sqlstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"graphstore"
	"graphstore/sql/adapter"
)

func TestStoreOperationsBeforeConnectReportClosed(t *testing.T) {
	// A store that was never connected (or already closed) must fail
	// with ErrClosed instead of panicking on a nil connection.
	config := graphstore.NewConfig(graphstore.SQLiteOptions("")...)
	store := NewStore(adapter.NewSQLiteAdapter(), &config)
	ctx := context.Background()

	_, err := store.Count(ctx)
	assert.ErrorIs(t, err, graphstore.ErrClosed)

	_, err = store.FindAll(ctx)
	assert.ErrorIs(t, err, graphstore.ErrClosed)

	_, err = store.FindByID(ctx, 1)
	assert.ErrorIs(t, err, graphstore.ErrClosed)

	assert.ErrorIs(t, store.DeleteNode(ctx, rowState{id: 1, kind: graphstore.KindNode}), graphstore.ErrClosed)
	assert.ErrorIs(t, store.DeleteRelationship(ctx, rowState{id: 1, kind: graphstore.KindRelationship}), graphstore.ErrClosed)

	_, err = store.CreateNode(ctx, nil)
	assert.ErrorIs(t, err, graphstore.ErrClosed)

	assert.ErrorIs(t, store.CreateIndex(ctx, "person"), graphstore.ErrClosed)
	assert.ErrorIs(t, store.AddToIndex(ctx, "person", rowState{id: 1}, "name", "x"), graphstore.ErrClosed)

	_, err = store.Index(ctx, "person", "name")
	assert.ErrorIs(t, err, graphstore.ErrClosed)

	_, err = store.Properties(ctx, 1)
	assert.ErrorIs(t, err, graphstore.ErrClosed)

	// Close on an unconnected store is a no-op.
	require.NoError(t, store.Close())
}

func TestIndexQueryAfterCloseReportsClosed(t *testing.T) {
	config := graphstore.NewConfig(graphstore.SQLiteOptions("")...)
	store := NewStore(adapter.NewSQLiteAdapter(), &config)

	// A resolved index handle outliving its store must fail the same way.
	idx := &Index{store: store, name: "person"}
	_, err := idx.Get(context.Background(), "name", "x")
	assert.ErrorIs(t, err, graphstore.ErrClosed)
}
