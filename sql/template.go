package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"graphstore"
)

// Template implementation

// Count returns the number of nodes.
func (s *Store) Count(ctx context.Context) (int64, error) {
	if err := s.ready(); err != nil {
		return 0, err
	}

	var count int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM nodes").Scan(&count)
	if err != nil {
		return 0, graphstore.WrapQueryError(err, "count", "", "")
	}
	return count, nil
}

// FindAll returns a cursor over all nodes in id order.
func (s *Store) FindAll(ctx context.Context) (graphstore.Cursor, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, "SELECT id FROM nodes ORDER BY id")
	if err != nil {
		return nil, graphstore.WrapQueryError(err, "find_all", "", "")
	}
	return newNodeCursor(rows), nil
}

// FindByID resolves a node or relationship by id.
func (s *Store) FindByID(ctx context.Context, id int64) (graphstore.State, error) {
	if id <= 0 {
		return nil, graphstore.NewRetrievalError(
			fmt.Errorf("id must be positive, got %d", id), "find_by_id", id)
	}
	if err := s.ready(); err != nil {
		return nil, err
	}

	query := fmt.Sprintf("SELECT id FROM nodes WHERE id = %s", s.adapter.Placeholder(1))
	var found int64
	err := s.db.QueryRowContext(ctx, query, id).Scan(&found)
	switch {
	case err == nil:
		return rowState{id: found, kind: graphstore.KindNode}, nil
	case err != sql.ErrNoRows:
		return nil, graphstore.NewRetrievalError(err, "find_by_id", id)
	}

	query = fmt.Sprintf("SELECT id FROM relationships WHERE id = %s", s.adapter.Placeholder(1))
	err = s.db.QueryRowContext(ctx, query, id).Scan(&found)
	switch {
	case err == nil:
		return rowState{id: found, kind: graphstore.KindRelationship}, nil
	case err == sql.ErrNoRows:
		return nil, fmt.Errorf("element %d: %w", id, graphstore.ErrNotFound)
	default:
		return nil, graphstore.NewRetrievalError(err, "find_by_id", id)
	}
}

// DeleteNode removes a node, its incident relationships and all associated
// properties and index entries, in one transaction.
func (s *Store) DeleteNode(ctx context.Context, state graphstore.State) error {
	id := state.GraphID()
	ph := s.adapter.Placeholder

	return s.inTx(ctx, func(tx *sql.Tx) error {
		query := fmt.Sprintf("SELECT id FROM nodes WHERE id = %s", ph(1))
		var found int64
		if err := tx.QueryRowContext(ctx, query, id).Scan(&found); err != nil {
			if err == sql.ErrNoRows {
				return fmt.Errorf("node %d: %w", id, graphstore.ErrNotFound)
			}
			return err
		}

		// Incident relationships cascade.
		query = fmt.Sprintf(
			"SELECT id FROM relationships WHERE start_id = %s OR end_id = %s", ph(1), ph(2))
		rows, err := tx.QueryContext(ctx, query, id, id)
		if err != nil {
			return err
		}
		var relIDs []int64
		for rows.Next() {
			var relID int64
			if err := rows.Scan(&relID); err != nil {
				rows.Close()
				return err
			}
			relIDs = append(relIDs, relID)
		}
		if err := rows.Close(); err != nil {
			return err
		}

		for _, relID := range relIDs {
			if err := s.deleteElement(ctx, tx, "relationships", relID); err != nil {
				return err
			}
		}
		return s.deleteElement(ctx, tx, "nodes", id)
	})
}

// DeleteRelationship removes a relationship and its properties and index
// entries.
func (s *Store) DeleteRelationship(ctx context.Context, state graphstore.State) error {
	id := state.GraphID()
	ph := s.adapter.Placeholder

	return s.inTx(ctx, func(tx *sql.Tx) error {
		query := fmt.Sprintf("SELECT id FROM relationships WHERE id = %s", ph(1))
		var found int64
		if err := tx.QueryRowContext(ctx, query, id).Scan(&found); err != nil {
			if err == sql.ErrNoRows {
				return fmt.Errorf("relationship %d: %w", id, graphstore.ErrNotFound)
			}
			return err
		}
		return s.deleteElement(ctx, tx, "relationships", id)
	})
}

// deleteElement removes an element row plus its properties and index
// entries. table is "nodes" or "relationships".
func (s *Store) deleteElement(ctx context.Context, tx *sql.Tx, table string, id int64) error {
	ph := s.adapter.Placeholder

	statements := []string{
		fmt.Sprintf("DELETE FROM element_properties WHERE element_id = %s", ph(1)),
		fmt.Sprintf("DELETE FROM index_entries WHERE element_id = %s", ph(1)),
		fmt.Sprintf("DELETE FROM %s WHERE id = %s", table, ph(1)),
	}
	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt, id); err != nil {
			return err
		}
	}
	return nil
}

// inTx runs fn inside a transaction using the adapter's default options.
func (s *Store) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	if err := s.ready(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, s.adapter.DefaultTxOptions())
	if err != nil {
		return graphstore.WrapQueryError(err, "begin_tx", "", "")
	}

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}
