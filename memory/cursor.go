package memory

import (
	"graphstore"
)

// sliceCursor iterates over a snapshot of states. Close marks the cursor
// released; the CloseCount accessor exists so tests can assert the
// exactly-once release discipline.
type sliceCursor struct {
	states []graphstore.State
	pos    int
	closes int
}

var _ graphstore.Cursor = (*sliceCursor)(nil)

func newSliceCursor(states []graphstore.State) *sliceCursor {
	return &sliceCursor{states: states}
}

func (c *sliceCursor) Next() (graphstore.State, bool) {
	if c.closes > 0 || c.pos >= len(c.states) {
		return nil, false
	}
	s := c.states[c.pos]
	c.pos++
	return s, true
}

func (c *sliceCursor) Err() error { return nil }

func (c *sliceCursor) Close() error {
	c.closes++
	return nil
}

// CloseCount returns how many times Close was called.
func (c *sliceCursor) CloseCount() int { return c.closes }
