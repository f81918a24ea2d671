package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"graphstore"
)

// Write operations. These are not part of the repository read contracts but
// applications need them to populate the graph.

// CreateNode creates a node with the given properties and returns its
// state.
func (s *Store) CreateNode(ctx context.Context, props map[string]any) (graphstore.State, error) {
	id := s.allocateID()
	ph := s.adapter.Placeholder

	err := s.inTx(ctx, func(tx *sql.Tx) error {
		query := fmt.Sprintf("INSERT INTO nodes (id) VALUES (%s)", ph(1))
		if _, err := tx.ExecContext(ctx, query, id); err != nil {
			return err
		}
		return s.insertProperties(ctx, tx, id, props)
	})
	if err != nil {
		return nil, graphstore.WrapQueryError(err, "create_node", "", "")
	}
	return rowState{id: id, kind: graphstore.KindNode}, nil
}

// CreateRelationship creates a relationship between two nodes.
func (s *Store) CreateRelationship(ctx context.Context, start, end graphstore.State, relType string, props map[string]any) (graphstore.State, error) {
	id := s.allocateID()
	ph := s.adapter.Placeholder

	err := s.inTx(ctx, func(tx *sql.Tx) error {
		for _, endpoint := range []int64{start.GraphID(), end.GraphID()} {
			query := fmt.Sprintf("SELECT id FROM nodes WHERE id = %s", ph(1))
			var found int64
			if err := tx.QueryRowContext(ctx, query, endpoint).Scan(&found); err != nil {
				if err == sql.ErrNoRows {
					return fmt.Errorf("node %d: %w", endpoint, graphstore.ErrNotFound)
				}
				return err
			}
		}

		query := fmt.Sprintf(
			"INSERT INTO relationships (id, start_id, end_id, rel_type) VALUES (%s, %s, %s, %s)",
			ph(1), ph(2), ph(3), ph(4))
		if _, err := tx.ExecContext(ctx, query, id, start.GraphID(), end.GraphID(), relType); err != nil {
			return err
		}
		return s.insertProperties(ctx, tx, id, props)
	})
	if err != nil {
		if graphstore.IsNotFound(err) {
			return nil, err
		}
		return nil, graphstore.WrapQueryError(err, "create_relationship", "", "")
	}
	return rowState{id: id, kind: graphstore.KindRelationship}, nil
}

// CreateIndex registers the named index. Creating an existing index is a
// no-op.
func (s *Store) CreateIndex(ctx context.Context, name string) error {
	if err := s.ready(); err != nil {
		return err
	}
	ph := s.adapter.Placeholder

	query := fmt.Sprintf("SELECT name FROM graph_indexes WHERE name = %s", ph(1))
	var found string
	err := s.db.QueryRowContext(ctx, query, name).Scan(&found)
	if err == nil {
		return nil
	}
	if err != sql.ErrNoRows {
		return graphstore.WrapQueryError(err, "create_index", name, "")
	}

	query = fmt.Sprintf("INSERT INTO graph_indexes (name) VALUES (%s)", ph(1))
	if _, err := s.db.ExecContext(ctx, query, name); err != nil {
		return graphstore.WrapQueryError(err, "create_index", name, "")
	}
	return nil
}

// AddToIndex indexes an element under property with the given value.
// Numeric values land in num_value so range queries can compare them;
// everything else is stored as text.
func (s *Store) AddToIndex(ctx context.Context, indexName string, state graphstore.State, property string, value any) error {
	if err := s.ready(); err != nil {
		return err
	}
	ph := s.adapter.Placeholder

	strVal, numVal := splitValue(value)
	query := fmt.Sprintf(
		"INSERT INTO index_entries (index_name, element_id, element_kind, property, str_value, num_value) VALUES (%s, %s, %s, %s, %s, %s)",
		ph(1), ph(2), ph(3), ph(4), ph(5), ph(6))
	_, err := s.db.ExecContext(ctx, query,
		indexName, state.GraphID(), int16(state.Kind()), property, strVal, numVal)
	if err != nil {
		return graphstore.WrapQueryError(err, "add_to_index", indexName, property)
	}
	return nil
}

// insertProperties stores the element's properties.
func (s *Store) insertProperties(ctx context.Context, tx *sql.Tx, elementID int64, props map[string]any) error {
	if len(props) == 0 {
		return nil
	}
	ph := s.adapter.Placeholder

	query := fmt.Sprintf(
		"INSERT INTO element_properties (element_id, name, str_value, num_value) VALUES (%s, %s, %s, %s)",
		ph(1), ph(2), ph(3), ph(4))
	for name, value := range props {
		strVal, numVal := splitValue(value)
		if _, err := tx.ExecContext(ctx, query, elementID, name, strVal, numVal); err != nil {
			return err
		}
	}
	return nil
}

// Properties loads an element's properties. Numeric values come back as
// float64.
func (s *Store) Properties(ctx context.Context, elementID int64) (map[string]any, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(
		"SELECT name, str_value, num_value FROM element_properties WHERE element_id = %s",
		s.adapter.Placeholder(1))
	rows, err := s.db.QueryContext(ctx, query, elementID)
	if err != nil {
		return nil, graphstore.WrapQueryError(err, "properties", "", "")
	}
	defer rows.Close()

	props := make(map[string]any)
	for rows.Next() {
		var name string
		var strVal sql.NullString
		var numVal sql.NullFloat64
		if err := rows.Scan(&name, &strVal, &numVal); err != nil {
			return nil, graphstore.WrapQueryError(err, "properties", "", "")
		}
		switch {
		case numVal.Valid:
			props[name] = numVal.Float64
		case strVal.Valid:
			props[name] = strVal.String
		}
	}
	if err := rows.Err(); err != nil {
		return nil, graphstore.WrapQueryError(err, "properties", "", "")
	}
	return props, nil
}

// splitValue routes a property value to the str_value or num_value column.
func splitValue(value any) (sql.NullString, sql.NullFloat64) {
	switch v := value.(type) {
	case int:
		return sql.NullString{}, sql.NullFloat64{Float64: float64(v), Valid: true}
	case int32:
		return sql.NullString{}, sql.NullFloat64{Float64: float64(v), Valid: true}
	case int64:
		return sql.NullString{}, sql.NullFloat64{Float64: float64(v), Valid: true}
	case uint:
		return sql.NullString{}, sql.NullFloat64{Float64: float64(v), Valid: true}
	case uint64:
		return sql.NullString{}, sql.NullFloat64{Float64: float64(v), Valid: true}
	case float32:
		return sql.NullString{}, sql.NullFloat64{Float64: float64(v), Valid: true}
	case float64:
		return sql.NullString{}, sql.NullFloat64{Float64: v, Valid: true}
	case string:
		return sql.NullString{String: v, Valid: true}, sql.NullFloat64{}
	case fmt.Stringer:
		return sql.NullString{String: v.String(), Valid: true}, sql.NullFloat64{}
	default:
		return sql.NullString{String: fmt.Sprintf("%v", v), Valid: true}, sql.NullFloat64{}
	}
}
