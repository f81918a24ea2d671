package sqlstore

import (
	"database/sql"

	"graphstore"
)

// rowCursor adapts *sql.Rows to the graphstore.Cursor contract. When
// scanKind is set each row carries an element_kind column; otherwise every
// state gets fixedKind.
type rowCursor struct {
	rows      *sql.Rows
	scanKind  bool
	fixedKind graphstore.StateKind
	err       error
	closed    bool
}

var _ graphstore.Cursor = (*rowCursor)(nil)

func newNodeCursor(rows *sql.Rows) *rowCursor {
	return &rowCursor{rows: rows, fixedKind: graphstore.KindNode}
}

func newEntryCursor(rows *sql.Rows) *rowCursor {
	return &rowCursor{rows: rows, scanKind: true}
}

func (c *rowCursor) Next() (graphstore.State, bool) {
	if c.closed || c.err != nil {
		return nil, false
	}
	if !c.rows.Next() {
		return nil, false
	}

	state := rowState{kind: c.fixedKind}
	if c.scanKind {
		var kind int16
		if err := c.rows.Scan(&state.id, &kind); err != nil {
			c.err = err
			return nil, false
		}
		state.kind = graphstore.StateKind(kind)
	} else {
		if err := c.rows.Scan(&state.id); err != nil {
			c.err = err
			return nil, false
		}
	}
	return state, true
}

func (c *rowCursor) Err() error {
	if c.err != nil {
		return c.err
	}
	return c.rows.Err()
}

func (c *rowCursor) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	return c.rows.Close()
}
