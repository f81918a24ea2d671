package graphstore_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"graphstore"
)

func TestErrorClassification(t *testing.T) {
	assert.True(t, graphstore.IsNotFound(graphstore.ErrNotFound))
	assert.True(t, graphstore.IsNotFound(fmt.Errorf("node 7: %w", graphstore.ErrNotFound)))
	assert.False(t, graphstore.IsNotFound(errors.New("other")))

	assert.True(t, graphstore.IsNoSuchIndex(fmt.Errorf("index person: %w", graphstore.ErrNoSuchIndex)))
	assert.False(t, graphstore.IsNoSuchIndex(graphstore.ErrNotFound))
}

func TestRetrievalError(t *testing.T) {
	cause := errors.New("bad id")
	err := graphstore.NewRetrievalError(cause, "find_by_id", -1)

	assert.True(t, graphstore.IsRetrievalError(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "find_by_id")
	assert.Contains(t, err.Error(), "-1")

	// Wrapping keeps the classification.
	wrapped := fmt.Errorf("lookup: %w", err)
	assert.True(t, graphstore.IsRetrievalError(wrapped))
}

func TestQueryError(t *testing.T) {
	cause := errors.New("syntax")
	err := graphstore.WrapQueryError(cause, "index_query", "person", "name")

	assert.True(t, graphstore.IsQueryError(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "person")
	assert.Contains(t, err.Error(), "name")

	assert.NoError(t, graphstore.WrapQueryError(nil, "x", "", ""))
}

func TestConnectionError(t *testing.T) {
	cause := errors.New("refused")
	err := graphstore.WrapConnectionError(cause, "connect", "neo4j", "localhost:7687")

	assert.True(t, graphstore.IsConnectionError(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "neo4j")

	assert.NoError(t, graphstore.WrapConnectionError(nil, "connect", "neo4j", ""))
}

func TestConfigErrorMessages(t *testing.T) {
	err := graphstore.NewConfigErrorForField("port", 0, "port is required")
	assert.True(t, graphstore.IsConfigError(err))
	assert.Contains(t, err.Error(), "port")

	plain := graphstore.NewConfigError("broken")
	assert.Equal(t, "config error: broken", plain.Error())
}
