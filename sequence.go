package graphstore

import "context"

// Sequence is a lazily-produced sequence of entities backed by an open
// backend resource. Close releases that resource and must be called exactly
// once after consumption, regardless of whether iteration completed.
type Sequence[T any] interface {
	// Next returns the next entity. It returns false when the sequence is
	// exhausted or an error occurred; Err distinguishes the two.
	Next() (T, bool)

	// Err returns the first error encountered while iterating or
	// hydrating.
	Err() error

	// Close releases the underlying resource.
	Close() error
}

// emptySequence is the zero-result sequence used for absent indexes and
// unsupported queries. Its Close is a no-op.
type emptySequence[T any] struct{}

func (emptySequence[T]) Next() (T, bool) {
	var zero T
	return zero, false
}

func (emptySequence[T]) Err() error   { return nil }
func (emptySequence[T]) Close() error { return nil }

// Empty returns a sequence that yields no entities.
func Empty[T any]() Sequence[T] {
	return emptySequence[T]{}
}

// hydratingSequence adapts a raw cursor into a sequence of hydrated
// entities. Hydration happens exactly when an element is consumed, never
// eagerly for the whole cursor.
type hydratingSequence[T any] struct {
	ctx    context.Context
	cursor Cursor
	mapper Mapper[T]
	err    error
}

// WrapCursor wraps a cursor into a lazily-hydrating sequence. Closing the
// sequence closes the cursor.
func WrapCursor[T any](ctx context.Context, c Cursor, m Mapper[T]) Sequence[T] {
	return &hydratingSequence[T]{ctx: ctx, cursor: c, mapper: m}
}

func (s *hydratingSequence[T]) Next() (T, bool) {
	var zero T
	if s.err != nil {
		return zero, false
	}

	st, ok := s.cursor.Next()
	if !ok {
		s.err = s.cursor.Err()
		return zero, false
	}

	entity, err := s.mapper.Hydrate(s.ctx, st)
	if err != nil {
		s.err = err
		return zero, false
	}

	return entity, true
}

func (s *hydratingSequence[T]) Err() error {
	return s.err
}

func (s *hydratingSequence[T]) Close() error {
	return s.cursor.Close()
}

// Collect drains the sequence into a slice and closes it. The sequence's
// resource is released on both the success and the error path.
func Collect[T any](seq Sequence[T]) ([]T, error) {
	defer seq.Close()

	var out []T
	for {
		entity, ok := seq.Next()
		if !ok {
			break
		}
		out = append(out, entity)
	}

	if err := seq.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
