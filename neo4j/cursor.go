package neo4jstore

import (
	"github.com/neo4j/neo4j-go-driver/v6/neo4j"

	"graphstore"
)

// stateCursor iterates over states extracted from an eager query result.
// The driver materializes records up front, so the cursor holds plain
// states and Close only marks the cursor exhausted.
type stateCursor struct {
	states []graphstore.State
	pos    int
	closed bool
}

var _ graphstore.Cursor = (*stateCursor)(nil)

// newStateCursor extracts element ids from the result records under the
// given column, all with the same kind.
func newStateCursor(result *neo4j.EagerResult, column string, kind graphstore.StateKind) (*stateCursor, error) {
	states := make([]graphstore.State, 0, len(result.Records))
	for _, record := range result.Records {
		id, _, err := neo4j.GetRecordValue[int64](record, column)
		if err != nil {
			return nil, err
		}
		states = append(states, elementState{id: id, kind: kind})
	}
	return &stateCursor{states: states}, nil
}

func (c *stateCursor) Next() (graphstore.State, bool) {
	if c.closed || c.pos >= len(c.states) {
		return nil, false
	}
	s := c.states[c.pos]
	c.pos++
	return s, true
}

func (c *stateCursor) Err() error { return nil }

func (c *stateCursor) Close() error {
	c.closed = true
	return nil
}
