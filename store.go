// Package graphstore provides a typed repository layer over graph databases.
//
// The package owns only the glue between a domain type and a graph backend:
// translating property values into index queries, wrapping index cursors
// into closable lazy sequences, and slicing a sequence into a page with a
// total-count estimate. Storage, indexing and transactions belong to the
// backend collaborators declared here and implemented in the sub-packages
// (memory, sql, neo4j).
package graphstore

import (
	"context"
	"time"
)

// StateKind identifies the shape of a persisted graph element.
type StateKind uint8

const (
	// KindUnknown is the zero value; states of unknown shape are ignored
	// by shape-dispatched operations such as Delete.
	KindUnknown StateKind = iota
	// KindNode marks a node-shaped state.
	KindNode
	// KindRelationship marks a relationship-shaped state.
	KindRelationship
)

// String returns the kind name.
func (k StateKind) String() string {
	switch k {
	case KindNode:
		return "node"
	case KindRelationship:
		return "relationship"
	default:
		return "unknown"
	}
}

// State is an opaque handle to a persisted graph element (node or
// relationship) owned by the backend. The repository never owns its
// lifetime; it only reads and queries it.
type State interface {
	// GraphID returns the backend-assigned element id.
	GraphID() int64

	// Kind reports whether the state is node- or relationship-shaped.
	Kind() StateKind
}

// Cursor is a live, resource-holding handle to an in-progress result set.
// Close must be called exactly once after consumption, on both the success
// and the early-exit path; calling it twice is undefined backend behavior.
type Cursor interface {
	// Next advances to the next state. It returns false when the cursor is
	// exhausted or a traversal error occurred; Err distinguishes the two.
	Next() (State, bool)

	// Err returns the first error encountered while iterating.
	Err() error

	// Close releases the underlying result set.
	Close() error
}

// Index is a named, property-scoped query surface over a backend index.
type Index interface {
	// Get performs an exact-match lookup for value under property.
	Get(ctx context.Context, property string, value any) (Cursor, error)

	// Query executes a query descriptor. A nil cursor with a nil error
	// means the index cannot serve the query; callers treat it as an
	// empty result.
	Query(ctx context.Context, q Query) (Cursor, error)
}

// IndexProvider resolves named indexes. Resolving an index that was never
// created returns ErrNoSuchIndex; the repository maps that to empty-result
// semantics rather than failing the operation, since indexes are created
// lazily and optionally.
type IndexProvider interface {
	Index(ctx context.Context, indexName, property string) (Index, error)
}

// Template is the persistence collaborator backing a repository. It exposes
// the handful of primitives the repository delegates to; everything else
// (consistency, transactions, index maintenance) stays inside the backend.
type Template interface {
	// Count returns the number of entities of the repository's type.
	Count(ctx context.Context) (int64, error)

	// FindAll returns a cursor over all entities of the repository's type.
	FindAll(ctx context.Context) (Cursor, error)

	// FindByID resolves a single state by element id. It returns
	// ErrNotFound when no such element exists and a *RetrievalError for
	// malformed ids or backend read failures.
	FindByID(ctx context.Context, id int64) (State, error)

	// DeleteNode removes a node-shaped state.
	DeleteNode(ctx context.Context, s State) error

	// DeleteRelationship removes a relationship-shaped state.
	DeleteRelationship(ctx context.Context, s State) error
}

// Mapper hydrates domain entities from states and recovers the persistent
// state backing an entity. Construction of T belongs entirely to the
// implementation; Hydrate may return ErrNotFound if the backing element was
// concurrently removed.
type Mapper[T any] interface {
	Hydrate(ctx context.Context, s State) (T, error)
	StateOf(entity T) (State, bool)
}

// Service defines the common interface for backend services. Backends
// (memory, sql, neo4j) implement this interface.
type Service interface {
	// Connect establishes the connection to the backend.
	Connect(ctx context.Context) error

	// Close closes the connection and releases resources.
	Close() error

	// Stats returns backend-specific statistics.
	Stats() interface{}

	// WithTimeout creates a context with timeout for operations.
	WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc)
}
