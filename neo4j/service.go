// Package neo4jstore implements the graph backend on a Neo4j server using
// the official Go driver. Elements map directly onto Neo4j nodes and
// relationships; named indexes map onto node labels, with raw queries
// routed to fulltext indexes.
package neo4jstore

import (
	"context"
	"time"

	"github.com/neo4j/neo4j-go-driver/v6/neo4j"

	"graphstore"
)

// Store is a Neo4j-backed graph database. It implements
// graphstore.Template, graphstore.IndexProvider and graphstore.Service.
type Store struct {
	driver neo4j.Driver
	config *graphstore.Config
	logger *graphstore.Logger
}

var (
	_ graphstore.Template      = (*Store)(nil)
	_ graphstore.IndexProvider = (*Store)(nil)
	_ graphstore.Service       = (*Store)(nil)
)

// NewStore creates a new store for the given configuration. The store is
// not connected until Connect is called.
func NewStore(config *graphstore.Config) *Store {
	return &Store{
		config: config,
		logger: graphstore.NoopLogger(),
	}
}

// SetLogger replaces the store's logger.
func (s *Store) SetLogger(logger *graphstore.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// Connect creates the driver and verifies connectivity.
func (s *Store) Connect(ctx context.Context) error {
	driver, err := neo4j.NewDriver(s.config.Address(),
		neo4j.BasicAuth(s.config.Username, s.config.Password, ""))
	if err != nil {
		err = graphstore.WrapConnectionError(err, "connect", "neo4j", s.config.Address())
		s.logger.LogConnect(ctx, "neo4j", s.config.Address(), err)
		return err
	}

	verifyCtx := ctx
	var cancel context.CancelFunc
	if s.config.ConnectTimeout > 0 {
		verifyCtx, cancel = context.WithTimeout(ctx, s.config.ConnectTimeout)
		defer cancel()
	}

	if err := driver.VerifyConnectivity(verifyCtx); err != nil {
		driver.Close(ctx)
		err = graphstore.WrapConnectionError(err, "verify", "neo4j", s.config.Address())
		s.logger.LogConnect(ctx, "neo4j", s.config.Address(), err)
		return err
	}

	s.driver = driver
	s.logger.LogConnect(ctx, "neo4j", s.config.Address(), nil)
	return nil
}

// Driver returns the underlying driver.
func (s *Store) Driver() neo4j.Driver {
	return s.driver
}

// Close closes the underlying driver.
func (s *Store) Close() error {
	if s.driver != nil {
		err := s.driver.Close(context.Background())
		s.driver = nil
		return err
	}
	return nil
}

// Stats reports the connection target and whether a driver is open. The
// driver does not expose pool statistics.
func (s *Store) Stats() interface{} {
	return struct {
		Target    string
		Connected bool
	}{
		Target:    s.config.Address(),
		Connected: s.driver != nil,
	}
}

// WithTimeout creates a context with timeout for operations.
func (s *Store) WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout)
}

// Open creates and connects a store.
func Open(ctx context.Context, config *graphstore.Config, opts ...graphstore.Option) (*Store, error) {
	config.Apply(opts...)
	if err := config.Validate(); err != nil {
		return nil, err
	}

	store := NewStore(config)
	if err := store.Connect(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

// run executes a Cypher statement and returns the eager result.
func (s *Store) run(ctx context.Context, cypher string, params map[string]any) (*neo4j.EagerResult, error) {
	if s.driver == nil {
		return nil, graphstore.ErrClosed
	}
	return neo4j.ExecuteQuery(ctx, s.driver, cypher,
		params,
		neo4j.EagerResultTransformer,
		neo4j.ExecuteQueryWithDatabase(s.config.Database),
	)
}
