package neo4jstore

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v6/neo4j"

	"graphstore"
)

// Index is a named node index. Exact and range lookups scan the label
// named after the index; raw queries go to the fulltext index of the same
// name.
type Index struct {
	store *Store
	name  string
}

var _ graphstore.Index = (*Index)(nil)

// Index resolves a named index. An index exists when a label or a
// fulltext index with that name does. Missing indexes signal
// ErrNoSuchIndex.
func (s *Store) Index(ctx context.Context, indexName, property string) (graphstore.Index, error) {
	exists, err := s.indexExists(ctx, indexName)
	if err != nil {
		return nil, graphstore.WrapQueryError(err, "resolve_index", indexName, property)
	}
	if !exists {
		return nil, fmt.Errorf("index %s: %w", indexName, graphstore.ErrNoSuchIndex)
	}
	return &Index{store: s, name: indexName}, nil
}

func (s *Store) indexExists(ctx context.Context, indexName string) (bool, error) {
	result, err := s.run(ctx, "CALL db.labels() YIELD label RETURN label", nil)
	if err != nil {
		return false, err
	}
	for _, record := range result.Records {
		label, _, err := neo4j.GetRecordValue[string](record, "label")
		if err != nil {
			return false, err
		}
		if label == indexName {
			return true, nil
		}
	}

	// SHOW INDEXES does not accept parameters, so filter client-side.
	result, err = s.run(ctx, "SHOW INDEXES YIELD name RETURN name", nil)
	if err != nil {
		return false, err
	}
	for _, record := range result.Records {
		name, _, err := neo4j.GetRecordValue[string](record, "name")
		if err != nil {
			return false, err
		}
		if name == indexName {
			return true, nil
		}
	}
	return false, nil
}

// Name returns the index name.
func (i *Index) Name() string { return i.name }

// Get performs an exact-match lookup.
func (i *Index) Get(ctx context.Context, property string, value any) (graphstore.Cursor, error) {
	return i.Query(ctx, graphstore.Exact(property, value))
}

// Query executes a query descriptor.
func (i *Index) Query(ctx context.Context, q graphstore.Query) (graphstore.Cursor, error) {
	var (
		cypher   string
		params   map[string]any
		property string
	)

	switch qt := q.(type) {
	case graphstore.ExactMatch:
		cypher = exactMatchCypher(i.name)
		params = map[string]any{"property": qt.Property, "value": qt.Value}
		property = qt.Property

	case graphstore.NumericRange:
		cypher = rangeCypher(i.name)
		params = map[string]any{"property": qt.Property}
		if qt.Kind.IsFloat() {
			params["from"], params["to"] = qt.Float64Bounds()
		} else {
			from, to := qt.Int64Bounds()
			params["from"], params["to"] = from, to
		}
		property = qt.Property

	case graphstore.RawQuery:
		cypher = fulltextCypher
		params = map[string]any{"index": i.name, "query": qt.Expr}
		property = qt.Property

	default:
		return nil, nil
	}

	result, err := i.store.run(ctx, cypher, params)
	if err != nil {
		err = graphstore.WrapQueryError(err, "index_query", i.name, property)
		i.store.logger.LogQuery(ctx, i.name, property, 0, err)
		return nil, err
	}

	cursor, err := newStateCursor(result, "id", graphstore.KindNode)
	if err != nil {
		err = graphstore.WrapQueryError(err, "index_query", i.name, property)
		i.store.logger.LogQuery(ctx, i.name, property, 0, err)
		return nil, err
	}

	i.store.logger.LogQuery(ctx, i.name, property, len(result.Records), nil)
	return cursor, nil
}
