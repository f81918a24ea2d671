package graphstore

// NumericKind selects the numeric width of a range query. Backends use it to
// pick the matching storage comparison (integer vs. floating point).
type NumericKind uint8

const (
	// KindInt64 compares bounds as 64-bit integers.
	KindInt64 NumericKind = iota + 1
	// KindInt32 compares bounds as 32-bit integers.
	KindInt32
	// KindFloat64 compares bounds as 64-bit floats.
	KindFloat64
	// KindFloat32 compares bounds as 32-bit floats.
	KindFloat32
)

// String returns the kind name.
func (k NumericKind) String() string {
	switch k {
	case KindInt64:
		return "int64"
	case KindInt32:
		return "int32"
	case KindFloat64:
		return "float64"
	case KindFloat32:
		return "float32"
	default:
		return "invalid"
	}
}

// IsFloat reports whether the kind compares as floating point.
func (k NumericKind) IsFloat() bool {
	return k == KindFloat64 || k == KindFloat32
}

// Query describes an index query. It is a closed union over ExactMatch,
// NumericRange and RawQuery; backends type-switch on the concrete type.
type Query interface {
	isQuery()
}

// ExactMatch matches entities whose property equals Value verbatim.
// Used for strings, booleans and other non-numeric values.
type ExactMatch struct {
	Property string
	Value    any
}

func (ExactMatch) isQuery() {}

// NumericRange matches entities whose numeric property lies in the inclusive
// range [from, to]. The bounds are carried in both integer and float form;
// Kind selects which pair is authoritative.
type NumericRange struct {
	Property string
	Kind     NumericKind

	FromInt int64
	ToInt   int64

	FromFloat float64
	ToFloat   float64
}

func (NumericRange) isQuery() {}

// Int64Bounds returns the integer bounds. Valid when Kind is an integer kind.
func (q NumericRange) Int64Bounds() (from, to int64) {
	return q.FromInt, q.ToInt
}

// Float64Bounds returns the float bounds. Valid when Kind is a float kind.
func (q NumericRange) Float64Bounds() (from, to float64) {
	return q.FromFloat, q.ToFloat
}

// RawQuery carries a backend-interpreted query expression, e.g. a fulltext
// query string or the bounding-box expression produced by
// FindWithinBoundingBox. Backends that cannot interpret the expression
// return a nil cursor, which callers treat as an empty result.
type RawQuery struct {
	Property string
	Expr     string
}

func (RawQuery) isQuery() {}

// Exact builds an exact-match descriptor carrying value verbatim.
func Exact(property string, value any) ExactMatch {
	return ExactMatch{Property: property, Value: value}
}

// Raw builds a raw query descriptor for backend-specific query expressions.
func Raw(property, expr string) RawQuery {
	return RawQuery{Property: property, Expr: expr}
}

// PointQuery builds the descriptor for a property = value lookup.
//
// Numeric values are translated to a degenerate inclusive range with
// from = to = value, because index backends store numerics in
// range-queryable form rather than as exact tokens. Everything else becomes
// an ExactMatch carrying the value verbatim.
func PointQuery(property string, value any) Query {
	if isNumeric(value) {
		return InclusiveRange(property, value, value)
	}
	return Exact(property, value)
}

// InclusiveRange builds a numeric range descriptor inclusive on both bounds.
//
// The numeric kind is selected from the runtime type of from, in order:
// int64 (and Go-native int/uint widths), int32, float64, float32; anything
// else falls back to a 32-bit integer range. to is coerced to from's kind,
// with floats truncating toward zero when the kind is integral. Mismatched
// bound types therefore never fail, they narrow; callers that care about
// precision must pass bounds of the same kind.
func InclusiveRange(property string, from, to any) NumericRange {
	q := NumericRange{Property: property}

	switch v := from.(type) {
	case int64:
		q.Kind = KindInt64
		q.FromInt = v
	case int:
		q.Kind = KindInt64
		q.FromInt = int64(v)
	case uint, uint64:
		q.Kind = KindInt64
		q.FromInt, _ = toInt64(from)
	case int32:
		q.Kind = KindInt32
		q.FromInt = int64(v)
	case float64:
		q.Kind = KindFloat64
		q.FromFloat = v
	case float32:
		q.Kind = KindFloat32
		q.FromFloat = float64(v)
	default:
		q.Kind = KindInt32
		q.FromInt, _ = toInt64(from)
	}

	if q.Kind.IsFloat() {
		q.ToFloat, _ = toFloat64(to)
	} else {
		q.ToInt, _ = toInt64(to)
	}

	return q
}

// isNumeric reports whether value is of a numeric runtime type.
func isNumeric(value any) bool {
	switch value.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	default:
		return false
	}
}

// toInt64 converts any numeric value to int64, truncating floats toward
// zero. The second return reports whether value was numeric at all.
func toInt64(value any) (int64, bool) {
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

// toFloat64 converts any numeric value to float64. The second return
// reports whether value was numeric at all.
func toFloat64(value any) (float64, bool) {
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
