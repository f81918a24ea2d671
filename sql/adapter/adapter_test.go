package adapter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"graphstore"
)

func TestPostgreSQLConnectionString(t *testing.T) {
	a := NewPostgreSQLAdapter()
	config := &graphstore.Config{
		Host:     "db.internal",
		Port:     5433,
		Database: "graph",
		Username: "svc",
		Password: "secret",
		SSLMode:  "require",
	}

	connStr := a.ConnectionString(config)
	assert.Contains(t, connStr, "host=db.internal")
	assert.Contains(t, connStr, "port=5433")
	assert.Contains(t, connStr, "dbname=graph")
	assert.Contains(t, connStr, "user=svc")
	assert.Contains(t, connStr, "password=secret")
	assert.Contains(t, connStr, "sslmode=require")

	// SSL mode defaults to disable.
	connStr = a.ConnectionString(&graphstore.Config{Database: "graph"})
	assert.Contains(t, connStr, "sslmode=disable")
}

func TestMySQLConnectionString(t *testing.T) {
	a := NewMySQLAdapter()
	config := &graphstore.Config{
		Host:     "db.internal",
		Port:     3307,
		Database: "graph",
		Username: "svc",
		Password: "secret",
	}

	connStr := a.ConnectionString(config)
	assert.Contains(t, connStr, "svc:secret@tcp(db.internal:3307)/graph")
	assert.Contains(t, connStr, "parseTime=true")
	assert.Contains(t, connStr, "charset=utf8mb4")

	// A configured charset is not overridden.
	config.Options = map[string]string{"charset": "latin1"}
	connStr = a.ConnectionString(config)
	assert.Contains(t, connStr, "charset=latin1")
	assert.NotContains(t, connStr, "utf8mb4")
}

func TestSQLiteConnectionString(t *testing.T) {
	a := NewSQLiteAdapter()

	connStr := a.ConnectionString(&graphstore.Config{})
	assert.Equal(t, ":memory:", connStr, "empty path falls back to in-memory")

	connStr = a.ConnectionString(&graphstore.Config{FilePath: "/var/lib/graph.db"})
	assert.Equal(t, "/var/lib/graph.db", connStr)

	connStr = a.ConnectionString(&graphstore.Config{
		FilePath: "graph.db",
		Options:  map[string]string{"cache": "shared"},
	})
	assert.Equal(t, "graph.db?cache=shared", connStr)
}

func TestPlaceholders(t *testing.T) {
	pg := NewPostgreSQLAdapter()
	assert.Equal(t, "$1", pg.Placeholder(1))
	assert.Equal(t, "$4", pg.Placeholder(4))

	assert.Equal(t, "?", NewMySQLAdapter().Placeholder(2))
	assert.Equal(t, "?", NewSQLiteAdapter().Placeholder(2))
}

func TestRegistry(t *testing.T) {
	for _, name := range []string{"postgres", "postgresql", "mysql", "sqlite", "sqlite3"} {
		assert.True(t, Exists(name), "built-in adapter %q", name)
		a, err := Get(name)
		require.NoError(t, err)
		assert.NotNil(t, a)
	}

	_, err := Get("oracle")
	assert.Error(t, err)
	assert.ErrorContains(t, err, "sqlite")
	assert.False(t, Exists("oracle"))

	names := NewRegistry().List()
	assert.Equal(t, []string{"mysql", "postgres", "postgresql", "sqlite", "sqlite3"}, names)
}

func TestRegistryCustomAdapter(t *testing.T) {
	r := NewRegistry()
	r.Register("custom", func() Adapter { return NewSQLiteAdapter() })

	a, err := r.Get("custom")
	require.NoError(t, err)
	assert.Equal(t, "sqlite", a.Name())
}

func TestConnectionErrorDetection(t *testing.T) {
	base := NewBaseSQLAdapter("postgres", "postgresql")
	assert.False(t, base.IsConnectionError(nil))
	assert.False(t, base.IsConnectionError(errors.New("syntax error")))
	assert.True(t, base.IsConnectionError(errors.New("dial tcp: connection refused")))
	assert.True(t, base.IsConnectionError(errors.New("driver: bad connection")))

	sqlite := NewSQLiteAdapter()
	assert.True(t, sqlite.IsConnectionError(errors.New("database is locked")))
	assert.True(t, sqlite.IsConnectionError(errors.New("dial tcp: connection reset")))
	assert.False(t, sqlite.IsConnectionError(errors.New("UNIQUE constraint failed")))
}
