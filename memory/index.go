package memory

import (
	"context"
	"strconv"
	"strings"

	"graphstore"
)

// Point is a spatially indexable latitude/longitude pair.
type Point struct {
	Lat float64
	Lon float64
}

type entry struct {
	state    graphstore.State
	property string
	value    any
}

// Index is an in-memory property index. Entries are kept in insertion
// order; queries scan linearly, which is plenty for an embedded backend.
type Index struct {
	graph   *Graph
	name    string
	entries []entry
}

var _ graphstore.Index = (*Index)(nil)

// Name returns the index name.
func (i *Index) Name() string { return i.name }

// Add indexes a state under property with the given value. Point values
// become queryable through bbox raw queries.
func (i *Index) Add(s graphstore.State, property string, value any) {
	i.graph.mu.Lock()
	defer i.graph.mu.Unlock()
	i.entries = append(i.entries, entry{state: s, property: property, value: value})
}

// remove drops all entries for the element. Caller holds the write lock.
func (i *Index) remove(id int64) {
	kept := i.entries[:0]
	for _, e := range i.entries {
		if e.state.GraphID() != id {
			kept = append(kept, e)
		}
	}
	i.entries = kept
}

// Get performs an exact-match lookup.
func (i *Index) Get(ctx context.Context, property string, value any) (graphstore.Cursor, error) {
	return i.match(func(e entry) bool {
		return e.property == property && valueEqual(e.value, value)
	}), nil
}

// Query executes a query descriptor. Raw expressions other than bbox are
// unsupported and yield a nil cursor.
func (i *Index) Query(ctx context.Context, q graphstore.Query) (graphstore.Cursor, error) {
	switch qt := q.(type) {
	case graphstore.ExactMatch:
		return i.Get(ctx, qt.Property, qt.Value)

	case graphstore.NumericRange:
		return i.match(func(e entry) bool {
			return e.property == qt.Property && inRange(e.value, qt)
		}), nil

	case graphstore.RawQuery:
		box, ok := parseBBox(qt.Expr)
		if !ok {
			return nil, nil
		}
		// A box applies to every Point entry in the index, whatever
		// property it was stored under.
		return i.match(func(e entry) bool {
			p, isPoint := e.value.(Point)
			return isPoint && box.contains(p)
		}), nil

	default:
		return nil, nil
	}
}

func (i *Index) match(pred func(entry) bool) graphstore.Cursor {
	i.graph.mu.RLock()
	defer i.graph.mu.RUnlock()

	var states []graphstore.State
	for _, e := range i.entries {
		if pred(e) {
			states = append(states, e.state)
		}
	}
	return newSliceCursor(states)
}

// valueEqual compares index values, treating numerics of different widths
// as equal when they represent the same quantity.
func valueEqual(a, b any) bool {
	af, aNum := asFloat64(a)
	bf, bNum := asFloat64(b)
	if aNum && bNum {
		return af == bf
	}
	return a == b
}

// inRange reports whether value lies in the inclusive range, comparing in
// the range's numeric kind.
func inRange(value any, q graphstore.NumericRange) bool {
	if q.Kind.IsFloat() {
		v, ok := asFloat64(value)
		if !ok {
			return false
		}
		from, to := q.Float64Bounds()
		return v >= from && v <= to
	}

	v, ok := asInt64(value)
	if !ok {
		return false
	}
	from, to := q.Int64Bounds()
	return v >= from && v <= to
}

func asInt64(value any) (int64, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		return int64(v), true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		return int64(v), true
	case float32:
		return int64(v), true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}

func asFloat64(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	default:
		return 0, false
	}
}

// bbox is an inclusive bounding box.
type bbox struct {
	minLon, maxLon float64
	minLat, maxLat float64
}

func (b bbox) contains(p Point) bool {
	return p.Lon >= b.minLon && p.Lon <= b.maxLon &&
		p.Lat >= b.minLat && p.Lat <= b.maxLat
}

// parseBBox parses the "[minLon, maxLon, minLat, maxLat]" expression
// produced by FindWithinBoundingBox.
func parseBBox(expr string) (bbox, bool) {
	trimmed := strings.TrimSpace(expr)
	if !strings.HasPrefix(trimmed, "[") || !strings.HasSuffix(trimmed, "]") {
		return bbox{}, false
	}

	parts := strings.Split(trimmed[1:len(trimmed)-1], ",")
	if len(parts) != 4 {
		return bbox{}, false
	}

	coords := make([]float64, 4)
	for n, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return bbox{}, false
		}
		coords[n] = f
	}

	return bbox{
		minLon: coords[0],
		maxLon: coords[1],
		minLat: coords[2],
		maxLat: coords[3],
	}, true
}
