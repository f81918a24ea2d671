package adapter

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	"graphstore"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteAdapter implements the Adapter interface for SQLite.
type SQLiteAdapter struct {
	*BaseSQLAdapter
}

// NewSQLiteAdapter creates a new SQLite adapter.
func NewSQLiteAdapter() *SQLiteAdapter {
	return &SQLiteAdapter{
		BaseSQLAdapter: NewBaseSQLAdapter("sqlite3", "sqlite"),
	}
}

// Connect establishes a connection to SQLite.
func (a *SQLiteAdapter) Connect(ctx context.Context, config *graphstore.Config) (*sql.DB, error) {
	connStr := a.ConnectionString(config)

	db, err := a.BaseSQLAdapter.Connect(ctx, config, connStr)
	if err != nil {
		return nil, err
	}

	// SQLite works best with a single connection for writes.
	if config.MaxOpenConns <= 0 {
		db.SetMaxOpenConns(1)
	}

	// Foreign keys are disabled by default in SQLite.
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, graphstore.WrapConnectionError(
			err, "pragma", "sqlite3", connStr)
	}

	return db, nil
}

// ConnectionString constructs a SQLite connection string. FilePath is the
// database file; empty means an in-memory database.
func (a *SQLiteAdapter) ConnectionString(config *graphstore.Config) string {
	dbPath := config.FilePath
	if dbPath == "" {
		dbPath = ":memory:"
	} else if !filepath.IsAbs(dbPath) && !strings.HasPrefix(dbPath, ":") {
		dbPath = filepath.Clean(dbPath)
	}

	var params []string
	for key, value := range config.Options {
		params = append(params, fmt.Sprintf("%s=%s", key, value))
	}

	if len(params) > 0 {
		return fmt.Sprintf("%s?%s", dbPath, strings.Join(params, "&"))
	}
	return dbPath
}

// DefaultTxOptions returns SQLite-specific transaction options.
func (a *SQLiteAdapter) DefaultTxOptions() *sql.TxOptions {
	return &sql.TxOptions{
		Isolation: sql.LevelSerializable, // SQLite default
		ReadOnly:  false,
	}
}

// IsConnectionError checks SQLite-specific error patterns in addition to
// the common ones.
func (a *SQLiteAdapter) IsConnectionError(err error) bool {
	if err == nil {
		return false
	}
	if a.BaseSQLAdapter.IsConnectionError(err) {
		return true
	}

	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "database is locked") ||
		strings.Contains(errStr, "no such file") ||
		strings.Contains(errStr, "unable to open database")
}
