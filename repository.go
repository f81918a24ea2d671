package graphstore

import (
	"context"
	"fmt"
	"reflect"
)

// Repository defines the typed repository contract over a graph backend.
//
// Plural finders return lazy sequences that the caller must close (Collect
// and ExtractPage do so on the caller's behalf). Single finders report
// absence through their bool return rather than an error.
type Repository[T any] interface {
	EntityName() string

	Count(ctx context.Context) (int64, error)
	FindAll(ctx context.Context) (Sequence[T], error)
	FindOne(ctx context.Context, id int64) (T, bool, error)
	Exists(ctx context.Context, id int64) (bool, error)

	FindByPropertyValue(ctx context.Context, indexName, property string, value any) (T, bool, error)
	FindAllByPropertyValue(ctx context.Context, indexName, property string, value any) (Sequence[T], error)
	FindAllByRange(ctx context.Context, indexName, property string, from, to any) (Sequence[T], error)
	FindAllByQuery(ctx context.Context, indexName, property string, q Query) (Sequence[T], error)
	FindWithinBoundingBox(ctx context.Context, indexName string, lowerLeftLat, lowerLeftLon, upperRightLat, upperRightLon float64) (Sequence[T], error)

	FindAllSorted(ctx context.Context, sort Sort) (Sequence[T], error)
	FindPage(ctx context.Context, req PageRequest) (Page[T], error)

	Delete(ctx context.Context, entity T) error
	DeleteByID(ctx context.Context, id int64) error
	DeleteMany(ctx context.Context, entities []T) error
	DeleteAll(ctx context.Context) error
}

// GraphRepository implements Repository over the backend collaborators.
type GraphRepository[T any] struct {
	template   Template
	indexes    IndexProvider
	mapper     Mapper[T]
	entityName string
	logger     *Logger
}

var _ Repository[any] = (*GraphRepository[any])(nil)

// RepositoryOption configures a GraphRepository.
type RepositoryOption[T any] func(*GraphRepository[T])

// WithEntityName overrides the entity name derived from T. The entity name
// doubles as the default index name.
func WithEntityName[T any](name string) RepositoryOption[T] {
	return func(r *GraphRepository[T]) {
		r.entityName = name
	}
}

// WithRepositoryLogger sets the logger used for operation logging.
func WithRepositoryLogger[T any](logger *Logger) RepositoryOption[T] {
	return func(r *GraphRepository[T]) {
		r.logger = logger
	}
}

// NewRepository creates a repository over the given collaborators. The
// default index name is the short name of T, mirroring how indexes are
// conventionally registered per entity type.
func NewRepository[T any](tmpl Template, indexes IndexProvider, mapper Mapper[T], opts ...RepositoryOption[T]) *GraphRepository[T] {
	r := &GraphRepository[T]{
		template:   tmpl,
		indexes:    indexes,
		mapper:     mapper,
		entityName: entityName[T](),
		logger:     NoopLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// entityName derives the short type name of T, following pointers.
func entityName[T any]() string {
	t := reflect.TypeOf((*T)(nil)).Elem()
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if name := t.Name(); name != "" {
		return name
	}
	return t.String()
}

// EntityName returns the name of the entity type this repository manages.
func (r *GraphRepository[T]) EntityName() string {
	return r.entityName
}

// Count returns the number of entities of the target type.
func (r *GraphRepository[T]) Count(ctx context.Context) (int64, error) {
	return r.template.Count(ctx)
}

// FindAll returns a lazy sequence over all entities of the target type.
func (r *GraphRepository[T]) FindAll(ctx context.Context) (Sequence[T], error) {
	cur, err := r.template.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return WrapCursor(ctx, cur, r.mapper), nil
}

// FindOne resolves a single entity by element id. Missing entities and
// generic retrieval failures (e.g. malformed ids) both report absence.
func (r *GraphRepository[T]) FindOne(ctx context.Context, id int64) (T, bool, error) {
	var zero T

	st, err := r.template.FindByID(ctx, id)
	if err != nil {
		if IsNotFound(err) || IsRetrievalError(err) {
			return zero, false, nil
		}
		return zero, false, err
	}

	entity, err := r.mapper.Hydrate(ctx, st)
	if err != nil {
		if IsNotFound(err) {
			return zero, false, nil
		}
		return zero, false, err
	}
	return entity, true, nil
}

// Exists reports whether an entity with the given id exists. Retrieval
// failures report false rather than an error.
func (r *GraphRepository[T]) Exists(ctx context.Context, id int64) (bool, error) {
	_, err := r.template.FindByID(ctx, id)
	if err != nil {
		if IsNotFound(err) || IsRetrievalError(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// FindByPropertyValue resolves the single entity whose indexed property
// equals value. indexName "" uses the default index for the entity type.
// A concurrently removed backing element reports absence; more than one
// match returns ErrNotUnique.
func (r *GraphRepository[T]) FindByPropertyValue(ctx context.Context, indexName, property string, value any) (T, bool, error) {
	var zero T

	idx, ok, err := r.index(ctx, indexName, property)
	if err != nil {
		return zero, false, err
	}
	if !ok {
		return zero, false, nil
	}

	cur, err := r.pointCursor(ctx, idx, property, value)
	if err != nil {
		return zero, false, WrapQueryError(err, "find_by_property", indexName, property)
	}
	if cur == nil {
		return zero, false, nil
	}
	return r.single(ctx, cur)
}

// FindAllByPropertyValue returns all entities whose indexed property equals
// value. indexName "" uses the default index for the entity type.
func (r *GraphRepository[T]) FindAllByPropertyValue(ctx context.Context, indexName, property string, value any) (Sequence[T], error) {
	idx, ok, err := r.index(ctx, indexName, property)
	if err != nil {
		return nil, err
	}
	if !ok {
		return Empty[T](), nil
	}

	cur, err := r.pointCursor(ctx, idx, property, value)
	if err != nil {
		return nil, WrapQueryError(err, "find_all_by_property", indexName, property)
	}
	if cur == nil {
		return Empty[T](), nil
	}
	return WrapCursor(ctx, cur, r.mapper), nil
}

// FindAllByRange returns all entities whose numeric property lies in the
// inclusive range [from, to]. See InclusiveRange for the kind and coercion
// policy applied to the bounds.
func (r *GraphRepository[T]) FindAllByRange(ctx context.Context, indexName, property string, from, to any) (Sequence[T], error) {
	return r.FindAllByQuery(ctx, indexName, property, InclusiveRange(property, from, to))
}

// FindAllByQuery executes a query descriptor against the named index.
// indexName "" uses the default index for the entity type.
func (r *GraphRepository[T]) FindAllByQuery(ctx context.Context, indexName, property string, q Query) (Sequence[T], error) {
	idx, ok, err := r.index(ctx, indexName, property)
	if err != nil {
		return nil, err
	}
	if !ok {
		return Empty[T](), nil
	}

	cur, err := idx.Query(ctx, q)
	if err != nil {
		return nil, WrapQueryError(err, "find_all_by_query", indexName, property)
	}
	if cur == nil {
		return Empty[T](), nil
	}
	return WrapCursor(ctx, cur, r.mapper), nil
}

// FindWithinBoundingBox returns all entities whose spatially indexed
// location lies inside the box. The box is handed to the index as a raw
// bbox expression over [minLon, maxLon, minLat, maxLat].
func (r *GraphRepository[T]) FindWithinBoundingBox(ctx context.Context, indexName string, lowerLeftLat, lowerLeftLon, upperRightLat, upperRightLon float64) (Sequence[T], error) {
	expr := fmt.Sprintf("[%f, %f, %f, %f]", lowerLeftLon, upperRightLon, lowerLeftLat, upperRightLat)
	return r.FindAllByQuery(ctx, indexName, "bbox", Raw("bbox", expr))
}

// FindAllSorted returns all entities of the target type.
//
// TODO: apply the sort once backends expose ordered scans; until then the
// sort argument is ignored and the unsorted sequence is returned.
func (r *GraphRepository[T]) FindAllSorted(ctx context.Context, sort Sort) (Sequence[T], error) {
	return r.FindAll(ctx)
}

// FindPage returns one page of entities with a total-count estimate, per
// the ExtractPage contract.
func (r *GraphRepository[T]) FindPage(ctx context.Context, req PageRequest) (Page[T], error) {
	seq, err := r.FindAllSorted(ctx, req.Sort)
	if err != nil {
		return Page[T]{}, err
	}
	return ExtractPage(seq, req)
}

// Delete removes the entity's backing graph element, dispatching on its
// shape. An entity backed by neither a node nor a relationship is a no-op.
func (r *GraphRepository[T]) Delete(ctx context.Context, entity T) error {
	st, ok := r.mapper.StateOf(entity)
	if !ok {
		return nil
	}

	var err error
	switch st.Kind() {
	case KindNode:
		err = r.template.DeleteNode(ctx, st)
	case KindRelationship:
		err = r.template.DeleteRelationship(ctx, st)
	default:
		return nil
	}

	r.logger.LogDelete(ctx, r.entityName, st.GraphID(), err)
	return err
}

// DeleteByID removes the entity with the given id. A missing entity is not
// an error.
func (r *GraphRepository[T]) DeleteByID(ctx context.Context, id int64) error {
	entity, ok, err := r.FindOne(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	return r.Delete(ctx, entity)
}

// DeleteMany removes each entity in turn.
func (r *GraphRepository[T]) DeleteMany(ctx context.Context, entities []T) error {
	for _, entity := range entities {
		if err := r.Delete(ctx, entity); err != nil {
			return err
		}
	}
	return nil
}

// DeleteAll removes every entity of the target type.
func (r *GraphRepository[T]) DeleteAll(ctx context.Context) error {
	seq, err := r.FindAll(ctx)
	if err != nil {
		return err
	}
	entities, err := Collect(seq)
	if err != nil {
		return err
	}
	return r.DeleteMany(ctx, entities)
}

// index resolves the named index, falling back to the default index name
// for the entity type. The bool return is false when no such index is
// configured; the caller supplies empty-result semantics. This is the only
// place index-resolution failures are absorbed.
func (r *GraphRepository[T]) index(ctx context.Context, indexName, property string) (Index, bool, error) {
	name := indexName
	if name == "" {
		name = r.entityName
	}

	idx, err := r.indexes.Index(ctx, name, property)
	if err != nil {
		if IsNoSuchIndex(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return idx, true, nil
}

// pointCursor runs a property = value lookup: numeric values go through the
// range-query path, everything else through the exact-match path.
func (r *GraphRepository[T]) pointCursor(ctx context.Context, idx Index, property string, value any) (Cursor, error) {
	if q := PointQuery(property, value); !isExact(q) {
		return idx.Query(ctx, q)
	}
	return idx.Get(ctx, property, value)
}

func isExact(q Query) bool {
	_, ok := q.(ExactMatch)
	return ok
}

// single consumes a cursor expected to hold at most one state, closing it
// exactly once. Absence of a hit, or a hit whose backing element vanished
// concurrently, reports (zero, false, nil).
func (r *GraphRepository[T]) single(ctx context.Context, cur Cursor) (T, bool, error) {
	var zero T
	defer cur.Close()

	st, ok := cur.Next()
	if !ok {
		if err := cur.Err(); err != nil {
			return zero, false, err
		}
		return zero, false, nil
	}

	if _, more := cur.Next(); more {
		return zero, false, ErrNotUnique
	}

	entity, err := r.mapper.Hydrate(ctx, st)
	if err != nil {
		if IsNotFound(err) {
			return zero, false, nil
		}
		return zero, false, err
	}
	return entity, true, nil
}
