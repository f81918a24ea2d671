package neo4jstore

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v6/neo4j"

	"graphstore"
)

// Template implementation

// Count returns the number of nodes.
func (s *Store) Count(ctx context.Context) (int64, error) {
	result, err := s.run(ctx, "MATCH (n) RETURN count(n) AS cnt", nil)
	if err != nil {
		return 0, graphstore.WrapQueryError(err, "count", "", "")
	}
	if len(result.Records) == 0 {
		return 0, nil
	}

	cnt, _, err := neo4j.GetRecordValue[int64](result.Records[0], "cnt")
	if err != nil {
		return 0, graphstore.WrapQueryError(err, "count", "", "")
	}
	return cnt, nil
}

// FindAll returns a cursor over all nodes in id order.
func (s *Store) FindAll(ctx context.Context) (graphstore.Cursor, error) {
	result, err := s.run(ctx, "MATCH (n) RETURN id(n) AS id ORDER BY id", nil)
	if err != nil {
		return nil, graphstore.WrapQueryError(err, "find_all", "", "")
	}

	cursor, err := newStateCursor(result, "id", graphstore.KindNode)
	if err != nil {
		return nil, graphstore.WrapQueryError(err, "find_all", "", "")
	}
	return cursor, nil
}

// FindByID resolves a node or relationship by its internal id.
func (s *Store) FindByID(ctx context.Context, id int64) (graphstore.State, error) {
	if id < 0 {
		return nil, graphstore.NewRetrievalError(
			fmt.Errorf("id must not be negative, got %d", id), "find_by_id", id)
	}

	params := map[string]any{"id": id}

	result, err := s.run(ctx, "MATCH (n) WHERE id(n) = $id RETURN id(n) AS id", params)
	if err != nil {
		return nil, graphstore.NewRetrievalError(err, "find_by_id", id)
	}
	if len(result.Records) > 0 {
		return elementState{id: id, kind: graphstore.KindNode}, nil
	}

	result, err = s.run(ctx, "MATCH ()-[r]->() WHERE id(r) = $id RETURN id(r) AS id", params)
	if err != nil {
		return nil, graphstore.NewRetrievalError(err, "find_by_id", id)
	}
	if len(result.Records) > 0 {
		return elementState{id: id, kind: graphstore.KindRelationship}, nil
	}

	return nil, fmt.Errorf("element %d: %w", id, graphstore.ErrNotFound)
}

// DeleteNode removes a node together with its incident relationships.
func (s *Store) DeleteNode(ctx context.Context, state graphstore.State) error {
	_, err := s.run(ctx, "MATCH (n) WHERE id(n) = $id DETACH DELETE n",
		map[string]any{"id": state.GraphID()})
	if err != nil {
		return graphstore.WrapQueryError(err, "delete_node", "", "")
	}
	return nil
}

// DeleteRelationship removes a relationship.
func (s *Store) DeleteRelationship(ctx context.Context, state graphstore.State) error {
	_, err := s.run(ctx, "MATCH ()-[r]->() WHERE id(r) = $id DELETE r",
		map[string]any{"id": state.GraphID()})
	if err != nil {
		return graphstore.WrapQueryError(err, "delete_relationship", "", "")
	}
	return nil
}
