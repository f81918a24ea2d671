package adapter

import (
	"context"
	"database/sql"
	"strings"

	"graphstore"
)

// BaseSQLAdapter provides common functionality for all SQL adapters.
type BaseSQLAdapter struct {
	db         *sql.DB
	driverName string
	name       string
}

// NewBaseSQLAdapter creates a new base SQL adapter.
func NewBaseSQLAdapter(driverName, name string) *BaseSQLAdapter {
	return &BaseSQLAdapter{
		driverName: driverName,
		name:       name,
	}
}

// Name returns the adapter name.
func (a *BaseSQLAdapter) Name() string {
	return a.name
}

// Connect establishes a database connection with common configuration.
func (a *BaseSQLAdapter) Connect(ctx context.Context, config *graphstore.Config, connectionString string) (*sql.DB, error) {
	db, err := sql.Open(a.driverName, connectionString)
	if err != nil {
		return nil, graphstore.WrapConnectionError(
			err, "connect", a.driverName, config.Address())
	}

	a.configureConnectionPool(db, config)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, graphstore.WrapConnectionError(
			err, "ping", a.driverName, config.Address())
	}

	a.db = db
	return db, nil
}

// configureConnectionPool sets up connection pooling.
func (a *BaseSQLAdapter) configureConnectionPool(db *sql.DB, config *graphstore.Config) {
	if config.MaxOpenConns > 0 {
		db.SetMaxOpenConns(config.MaxOpenConns)
	}
	if config.MaxIdleConns > 0 {
		db.SetMaxIdleConns(config.MaxIdleConns)
	}
	if config.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(config.ConnMaxLifetime)
	}
	if config.ConnMaxIdleTime > 0 {
		db.SetConnMaxIdleTime(config.ConnMaxIdleTime)
	}
}

// Placeholder returns the default bind placeholder. PostgreSQL overrides
// this with positional placeholders.
func (a *BaseSQLAdapter) Placeholder(position int) string {
	return "?"
}

// DefaultTxOptions returns read-committed transaction options.
func (a *BaseSQLAdapter) DefaultTxOptions() *sql.TxOptions {
	return &sql.TxOptions{
		Isolation: sql.LevelReadCommitted,
		ReadOnly:  false,
	}
}

// IsConnectionError reports whether err matches common connection error
// patterns shared across databases.
func (a *BaseSQLAdapter) IsConnectionError(err error) bool {
	if err == nil {
		return false
	}

	errStr := strings.ToLower(err.Error())
	connectionErrors := []string{
		"connection refused",
		"connection reset",
		"connection closed",
		"network is unreachable",
		"timeout",
		"driver: bad connection",
	}

	for _, pattern := range connectionErrors {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}
	return false
}

// Close closes the database connection.
func (a *BaseSQLAdapter) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

// DB returns the underlying database connection.
func (a *BaseSQLAdapter) DB() *sql.DB {
	return a.db
}
