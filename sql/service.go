// Package sqlstore implements a relational graph backend. Nodes,
// relationships, properties and index entries live in plain SQL tables,
// with dialect differences handled by pluggable adapters.
package sqlstore

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"graphstore"
	"graphstore/sql/adapter"
)

// Store is a graph database backed by a relational database. It implements
// graphstore.Template, graphstore.IndexProvider and graphstore.Service.
type Store struct {
	adapter adapter.Adapter
	db      *sql.DB
	config  *graphstore.Config
	logger  *graphstore.Logger

	idMu   sync.Mutex
	nextID int64
}

var (
	_ graphstore.Template      = (*Store)(nil)
	_ graphstore.IndexProvider = (*Store)(nil)
	_ graphstore.Service       = (*Store)(nil)
)

// NewStore creates a new store with the given adapter. The store is not
// connected until Connect is called.
func NewStore(adpt adapter.Adapter, config *graphstore.Config) *Store {
	return &Store{
		adapter: adpt,
		config:  config,
		logger:  graphstore.NoopLogger(),
	}
}

// SetLogger replaces the store's logger.
func (s *Store) SetLogger(logger *graphstore.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// Connect establishes the database connection, creates the schema if
// needed and seeds the id counter.
func (s *Store) Connect(ctx context.Context) error {
	connectCtx := ctx
	var cancel context.CancelFunc
	if s.config.ConnectTimeout > 0 {
		connectCtx, cancel = context.WithTimeout(ctx, s.config.ConnectTimeout)
		defer cancel()
	}

	db, err := s.adapter.Connect(connectCtx, s.config)
	s.logger.LogConnect(ctx, s.adapter.Name(), s.config.Address(), err)
	if err != nil {
		return err
	}
	s.db = db

	if err := s.initSchema(ctx); err != nil {
		db.Close()
		s.db = nil
		return err
	}

	return s.loadNextID(ctx)
}

// initSchema creates the graph tables when they do not exist yet.
func (s *Store) initSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return graphstore.WrapQueryError(err, "init_schema", "", "")
		}
	}
	return nil
}

// loadNextID seeds the id counter from the highest id in use. Nodes and
// relationships share a single id space.
func (s *Store) loadNextID(ctx context.Context) error {
	const query = `SELECT COALESCE(MAX(id), 0) FROM (
		SELECT id FROM nodes
		UNION ALL
		SELECT id FROM relationships
	) AS ids`

	var max int64
	if err := s.db.QueryRowContext(ctx, query).Scan(&max); err != nil {
		return graphstore.WrapQueryError(err, "load_next_id", "", "")
	}

	s.idMu.Lock()
	s.nextID = max
	s.idMu.Unlock()
	return nil
}

// ready reports ErrClosed when the store has no live connection, so
// operations fail cleanly instead of dereferencing a nil handle.
func (s *Store) ready() error {
	if s.db == nil {
		return graphstore.ErrClosed
	}
	return nil
}

// allocateID returns the next free element id.
func (s *Store) allocateID() int64 {
	s.idMu.Lock()
	defer s.idMu.Unlock()
	s.nextID++
	return s.nextID
}

// DB returns the underlying database connection.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Adapter returns the underlying adapter.
func (s *Store) Adapter() adapter.Adapter {
	return s.adapter
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

// Stats returns database connection statistics.
func (s *Store) Stats() interface{} {
	if s.db != nil {
		return s.db.Stats()
	}
	return sql.DBStats{}
}

// WithTimeout creates a context with timeout for operations.
func (s *Store) WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout)
}

// Open creates and connects a store using the adapter registered for
// config.Type.
func Open(ctx context.Context, config *graphstore.Config, opts ...graphstore.Option) (*Store, error) {
	config.Apply(opts...)
	if err := config.Validate(); err != nil {
		return nil, err
	}

	adpt, err := adapter.Get(config.Type)
	if err != nil {
		return nil, graphstore.NewConfigErrorForField("type", config.Type, err.Error())
	}

	store := NewStore(adpt, config)
	if err := store.Connect(ctx); err != nil {
		return nil, err
	}
	return store, nil
}
