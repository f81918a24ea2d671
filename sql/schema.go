package sqlstore

// schemaStatements creates the graph tables. The DDL sticks to types that
// PostgreSQL, MySQL and SQLite all accept, so one schema serves every
// registered adapter.
//
// Nodes and relationships share a single id space; ids are assigned by the
// store, not by the database, which sidesteps the dialects' incompatible
// auto-increment syntax.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS nodes (
		id BIGINT PRIMARY KEY
	)`,
	`CREATE TABLE IF NOT EXISTS relationships (
		id BIGINT PRIMARY KEY,
		start_id BIGINT NOT NULL,
		end_id BIGINT NOT NULL,
		rel_type VARCHAR(255) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS element_properties (
		element_id BIGINT NOT NULL,
		name VARCHAR(255) NOT NULL,
		str_value TEXT,
		num_value DOUBLE PRECISION
	)`,
	`CREATE TABLE IF NOT EXISTS graph_indexes (
		name VARCHAR(255) PRIMARY KEY
	)`,
	`CREATE TABLE IF NOT EXISTS index_entries (
		index_name VARCHAR(255) NOT NULL,
		element_id BIGINT NOT NULL,
		element_kind SMALLINT NOT NULL,
		property VARCHAR(255) NOT NULL,
		str_value TEXT,
		num_value DOUBLE PRECISION
	)`,
}
