package neo4jstore

import (
	"graphstore"
)

// elementState is the backend state for a Neo4j graph element. Only the
// internal id and shape cross the wire; mappers hydrate properties on
// demand.
type elementState struct {
	id   int64
	kind graphstore.StateKind
}

var _ graphstore.State = elementState{}

func (s elementState) GraphID() int64 {
	return s.id
}

func (s elementState) Kind() graphstore.StateKind {
	return s.kind
}
