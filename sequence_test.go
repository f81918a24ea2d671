package graphstore_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"graphstore"
)

// stubState is a minimal backend state for sequence and paging tests.
type stubState struct {
	id   int64
	kind graphstore.StateKind
}

func (s stubState) GraphID() int64             { return s.id }
func (s stubState) Kind() graphstore.StateKind { return s.kind }

// stubCursor yields a fixed set of states and records how often it was
// closed.
type stubCursor struct {
	states []graphstore.State
	pos    int
	closes int
	err    error
}

func (c *stubCursor) Next() (graphstore.State, bool) {
	if c.pos >= len(c.states) {
		return nil, false
	}
	s := c.states[c.pos]
	c.pos++
	return s, true
}

func (c *stubCursor) Err() error { return c.err }

func (c *stubCursor) Close() error {
	c.closes++
	return nil
}

func nodeStates(ids ...int64) []graphstore.State {
	states := make([]graphstore.State, len(ids))
	for i, id := range ids {
		states[i] = stubState{id: id, kind: graphstore.KindNode}
	}
	return states
}

// idMapper hydrates a state to its id, counting hydrations and optionally
// failing on one id.
type idMapper struct {
	hydrated int
	failID   int64
	failErr  error
}

func (m *idMapper) Hydrate(ctx context.Context, st graphstore.State) (int64, error) {
	m.hydrated++
	if m.failErr != nil && st.GraphID() == m.failID {
		return 0, m.failErr
	}
	return st.GraphID(), nil
}

func (m *idMapper) StateOf(id int64) (graphstore.State, bool) {
	return stubState{id: id, kind: graphstore.KindNode}, true
}

func TestWrapCursorHydratesLazily(t *testing.T) {
	cur := &stubCursor{states: nodeStates(1, 2, 3, 4, 5)}
	mapper := &idMapper{}
	seq := graphstore.WrapCursor[int64](context.Background(), cur, mapper)

	// Nothing hydrates until an element is consumed.
	assert.Equal(t, 0, mapper.hydrated)

	v, ok := seq.Next()
	require.True(t, ok)
	assert.Equal(t, int64(1), v)
	assert.Equal(t, 1, mapper.hydrated)

	seq.Next()
	assert.Equal(t, 2, mapper.hydrated)

	require.NoError(t, seq.Close())
	assert.Equal(t, 1, cur.closes)
}

func TestCollectDrainsAndCloses(t *testing.T) {
	cur := &stubCursor{states: nodeStates(1, 2, 3)}
	seq := graphstore.WrapCursor[int64](context.Background(), cur, &idMapper{})

	out, err := graphstore.Collect(seq)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, out)
	assert.Equal(t, 1, cur.closes)
}

func TestCollectClosesOnHydrationError(t *testing.T) {
	boom := errors.New("boom")
	cur := &stubCursor{states: nodeStates(1, 2, 3)}
	mapper := &idMapper{failID: 2, failErr: boom}
	seq := graphstore.WrapCursor[int64](context.Background(), cur, mapper)

	out, err := graphstore.Collect(seq)
	assert.Nil(t, out)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, cur.closes)
}

func TestSequenceStopsAfterError(t *testing.T) {
	boom := errors.New("boom")
	cur := &stubCursor{states: nodeStates(1, 2, 3)}
	mapper := &idMapper{failID: 1, failErr: boom}
	seq := graphstore.WrapCursor[int64](context.Background(), cur, mapper)

	_, ok := seq.Next()
	assert.False(t, ok)
	assert.ErrorIs(t, seq.Err(), boom)

	// Iteration stays stopped; the cursor is not advanced further.
	_, ok = seq.Next()
	assert.False(t, ok)
	assert.Equal(t, 1, mapper.hydrated)
}

func TestSequencePropagatesCursorError(t *testing.T) {
	cursorErr := fmt.Errorf("cursor failed")
	cur := &stubCursor{states: nodeStates(1), err: cursorErr}
	seq := graphstore.WrapCursor[int64](context.Background(), cur, &idMapper{})

	_, ok := seq.Next()
	require.True(t, ok)
	_, ok = seq.Next()
	assert.False(t, ok)
	assert.ErrorIs(t, seq.Err(), cursorErr)
}

func TestEmptySequence(t *testing.T) {
	seq := graphstore.Empty[string]()

	_, ok := seq.Next()
	assert.False(t, ok)
	assert.NoError(t, seq.Err())
	assert.NoError(t, seq.Close())
}
