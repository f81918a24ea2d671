package sqlstore

import (
	"graphstore"
)

// rowState is the backend state for a row-backed graph element. It carries
// only the id and shape; properties stay in the database until a mapper
// asks for them.
type rowState struct {
	id   int64
	kind graphstore.StateKind
}

var _ graphstore.State = rowState{}

func (s rowState) GraphID() int64 {
	return s.id
}

func (s rowState) Kind() graphstore.StateKind {
	return s.kind
}
