// Package adapter provides pluggable SQL database adapters for the
// relational graph backend. Adapters encapsulate driver selection,
// connection string construction and dialect differences.
package adapter

import (
	"context"
	"database/sql"

	"graphstore"
)

// Adapter represents a SQL database adapter (PostgreSQL, MySQL, SQLite).
type Adapter interface {
	// Name returns the adapter's unique identifier.
	Name() string

	// Connect establishes a connection to the database.
	Connect(ctx context.Context, config *graphstore.Config) (*sql.DB, error)

	// ConnectionString builds the connection string from config.
	ConnectionString(config *graphstore.Config) string

	// Placeholder returns the dialect's bind placeholder for the
	// one-based parameter position ("$1" for PostgreSQL, "?" otherwise).
	Placeholder(position int) string

	// DefaultTxOptions returns the dialect's transaction options.
	DefaultTxOptions() *sql.TxOptions

	// IsConnectionError reports whether err indicates a lost or
	// unusable connection.
	IsConnectionError(err error) bool

	// Close releases any resources held by the adapter.
	Close() error
}
