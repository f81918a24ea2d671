// Package memory provides an in-memory graph backend.
//
// It implements the graphstore collaborator contracts without any external
// database, which makes it both a usable embedded backend and the test
// double for repository behavior. All operations are guarded by a single
// RWMutex; cursors iterate over snapshots, so deleting while iterating is
// safe.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"graphstore"
)

// Element is the in-memory graph element state.
type Element struct {
	id    int64
	kind  graphstore.StateKind
	props map[string]any

	// relationship endpoints, zero for nodes
	startID int64
	endID   int64
	relType string
}

// GraphID returns the element id.
func (e *Element) GraphID() int64 { return e.id }

// Kind returns the element shape.
func (e *Element) Kind() graphstore.StateKind { return e.kind }

// Property returns a property value.
func (e *Element) Property(name string) (any, bool) {
	v, ok := e.props[name]
	return v, ok
}

// Stats tracks graph statistics.
type Stats struct {
	Nodes         int64
	Relationships int64
	Indexes       int64
	LastAccessed  time.Time
}

// Graph is an in-memory graph database. It implements graphstore.Template,
// graphstore.IndexProvider and graphstore.Service.
type Graph struct {
	mu      sync.RWMutex
	nodes   map[int64]*Element
	rels    map[int64]*Element
	indexes map[string]*Index
	nextID  int64
	stats   Stats
}

var (
	_ graphstore.Template      = (*Graph)(nil)
	_ graphstore.IndexProvider = (*Graph)(nil)
	_ graphstore.Service       = (*Graph)(nil)
)

// New creates an empty in-memory graph.
func New() *Graph {
	return &Graph{
		nodes:   make(map[int64]*Element),
		rels:    make(map[int64]*Element),
		indexes: make(map[string]*Index),
	}
}

// CreateNode creates a node with the given properties.
func (g *Graph) CreateNode(props map[string]any) *Element {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.nextID++
	e := &Element{id: g.nextID, kind: graphstore.KindNode, props: copyProps(props)}
	g.nodes[e.id] = e
	g.stats.Nodes++
	return e
}

// CreateRelationship creates a relationship between two nodes.
func (g *Graph) CreateRelationship(start, end graphstore.State, relType string, props map[string]any) (*Element, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.nodes[start.GraphID()]; !ok {
		return nil, fmt.Errorf("start node %d: %w", start.GraphID(), graphstore.ErrNotFound)
	}
	if _, ok := g.nodes[end.GraphID()]; !ok {
		return nil, fmt.Errorf("end node %d: %w", end.GraphID(), graphstore.ErrNotFound)
	}

	g.nextID++
	e := &Element{
		id:      g.nextID,
		kind:    graphstore.KindRelationship,
		props:   copyProps(props),
		startID: start.GraphID(),
		endID:   end.GraphID(),
		relType: relType,
	}
	g.rels[e.id] = e
	g.stats.Relationships++
	return e, nil
}

// CreateIndex creates (or returns) the named index.
func (g *Graph) CreateIndex(name string) *Index {
	g.mu.Lock()
	defer g.mu.Unlock()

	if idx, ok := g.indexes[name]; ok {
		return idx
	}
	idx := &Index{graph: g, name: name}
	g.indexes[name] = idx
	g.stats.Indexes++
	return idx
}

// Index resolves a named index. Missing indexes signal ErrNoSuchIndex.
func (g *Graph) Index(ctx context.Context, indexName, property string) (graphstore.Index, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	idx, ok := g.indexes[indexName]
	if !ok {
		return nil, fmt.Errorf("index %s: %w", indexName, graphstore.ErrNoSuchIndex)
	}
	return idx, nil
}

// Template implementation

// Count returns the number of nodes.
func (g *Graph) Count(ctx context.Context) (int64, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return int64(len(g.nodes)), nil
}

// FindAll returns a cursor over all nodes in id order.
func (g *Graph) FindAll(ctx context.Context) (graphstore.Cursor, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	states := make([]graphstore.State, 0, len(g.nodes))
	for _, e := range g.nodes {
		states = append(states, e)
	}
	sort.Slice(states, func(i, j int) bool {
		return states[i].GraphID() < states[j].GraphID()
	})
	return newSliceCursor(states), nil
}

// FindByID resolves a node or relationship by id.
func (g *Graph) FindByID(ctx context.Context, id int64) (graphstore.State, error) {
	if id <= 0 {
		return nil, graphstore.NewRetrievalError(
			fmt.Errorf("id must be positive, got %d", id), "find_by_id", id)
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	if e, ok := g.nodes[id]; ok {
		return e, nil
	}
	if e, ok := g.rels[id]; ok {
		return e, nil
	}
	return nil, fmt.Errorf("element %d: %w", id, graphstore.ErrNotFound)
}

// DeleteNode removes a node, its incident relationships and its index
// entries.
func (g *Graph) DeleteNode(ctx context.Context, s graphstore.State) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := s.GraphID()
	if _, ok := g.nodes[id]; !ok {
		return fmt.Errorf("node %d: %w", id, graphstore.ErrNotFound)
	}

	for relID, rel := range g.rels {
		if rel.startID == id || rel.endID == id {
			delete(g.rels, relID)
			g.stats.Relationships--
			g.removeFromIndexes(relID)
		}
	}

	delete(g.nodes, id)
	g.stats.Nodes--
	g.removeFromIndexes(id)
	return nil
}

// DeleteRelationship removes a relationship and its index entries.
func (g *Graph) DeleteRelationship(ctx context.Context, s graphstore.State) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := s.GraphID()
	if _, ok := g.rels[id]; !ok {
		return fmt.Errorf("relationship %d: %w", id, graphstore.ErrNotFound)
	}

	delete(g.rels, id)
	g.stats.Relationships--
	g.removeFromIndexes(id)
	return nil
}

// removeFromIndexes drops all index entries for the element. Caller holds
// the write lock.
func (g *Graph) removeFromIndexes(id int64) {
	for _, idx := range g.indexes {
		idx.remove(id)
	}
}

// Service implementation

// Connect is a no-op for the in-memory backend.
func (g *Graph) Connect(ctx context.Context) error {
	return nil
}

// Close clears the graph.
func (g *Graph) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.nodes = make(map[int64]*Element)
	g.rels = make(map[int64]*Element)
	g.indexes = make(map[string]*Index)
	g.stats = Stats{}
	return nil
}

// Stats returns graph statistics.
func (g *Graph) Stats() interface{} {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.stats
}

// WithTimeout creates a context with timeout for operations.
func (g *Graph) WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout)
}

func copyProps(props map[string]any) map[string]any {
	out := make(map[string]any, len(props))
	for k, v := range props {
		out[k] = v
	}
	return out
}
