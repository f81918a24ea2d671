package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"graphstore"
)

// Index is a named property index over the index_entries table.
type Index struct {
	store *Store
	name  string
}

var _ graphstore.Index = (*Index)(nil)

// Index resolves a named index. Missing indexes signal ErrNoSuchIndex.
func (s *Store) Index(ctx context.Context, indexName, property string) (graphstore.Index, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	query := fmt.Sprintf("SELECT name FROM graph_indexes WHERE name = %s", s.adapter.Placeholder(1))

	var found string
	err := s.db.QueryRowContext(ctx, query, indexName).Scan(&found)
	switch {
	case err == sql.ErrNoRows:
		return nil, fmt.Errorf("index %s: %w", indexName, graphstore.ErrNoSuchIndex)
	case err != nil:
		return nil, graphstore.WrapQueryError(err, "resolve_index", indexName, property)
	}

	return &Index{store: s, name: indexName}, nil
}

// Name returns the index name.
func (i *Index) Name() string { return i.name }

// Get performs an exact-match lookup.
func (i *Index) Get(ctx context.Context, property string, value any) (graphstore.Cursor, error) {
	return i.Query(ctx, graphstore.Exact(property, value))
}

// Query executes a query descriptor. Raw expressions have no SQL
// rendering and yield a nil cursor.
func (i *Index) Query(ctx context.Context, q graphstore.Query) (graphstore.Cursor, error) {
	if err := i.store.ready(); err != nil {
		return nil, err
	}

	property, condition, args, ok := indexCondition(q, i.store.adapter.Placeholder, 3)
	if !ok {
		return nil, nil
	}

	query := fmt.Sprintf(
		"SELECT element_id, element_kind FROM index_entries WHERE index_name = %s AND property = %s AND %s ORDER BY element_id",
		i.store.adapter.Placeholder(1), i.store.adapter.Placeholder(2), condition)

	queryArgs := append([]any{i.name, property}, args...)
	rows, err := i.store.db.QueryContext(ctx, query, queryArgs...)
	if err != nil {
		return nil, graphstore.WrapQueryError(err, "index_query", i.name, property)
	}
	return newEntryCursor(rows), nil
}

// indexCondition renders a query descriptor as a WHERE condition over the
// index_entries value columns. The placeholder function supplies the
// dialect's bind syntax; firstPos is the position of the first bind this
// condition may use. Descriptors with no SQL rendering report ok false.
func indexCondition(q graphstore.Query, placeholder func(int) string, firstPos int) (property, condition string, args []any, ok bool) {
	switch qt := q.(type) {
	case graphstore.ExactMatch:
		_, numVal := splitValue(qt.Value)
		if numVal.Valid {
			return qt.Property,
				fmt.Sprintf("num_value = %s", placeholder(firstPos)),
				[]any{numVal.Float64}, true
		}
		strVal, _ := splitValue(qt.Value)
		return qt.Property,
			fmt.Sprintf("str_value = %s", placeholder(firstPos)),
			[]any{strVal.String}, true

	case graphstore.NumericRange:
		var condition strings.Builder
		fmt.Fprintf(&condition, "num_value >= %s AND num_value <= %s",
			placeholder(firstPos), placeholder(firstPos+1))

		if qt.Kind.IsFloat() {
			from, to := qt.Float64Bounds()
			return qt.Property, condition.String(), []any{from, to}, true
		}
		from, to := qt.Int64Bounds()
		return qt.Property, condition.String(), []any{from, to}, true

	default:
		// RawQuery expressions target backend-native query languages.
		return "", "", nil, false
	}
}
