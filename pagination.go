package graphstore

// Order defines ordering on a property.
type Order struct {
	Property string
	Desc     bool
}

// Asc orders ascending on property.
func Asc(property string) Order {
	return Order{Property: property}
}

// Desc orders descending on property.
func Desc(property string) Order {
	return Order{Property: property, Desc: true}
}

// Sort is an ordered list of property orderings. A nil Sort means unsorted.
type Sort []Order

// PageRequest describes one requested page: a zero-based page number, a page
// size and an optional sort.
type PageRequest struct {
	Page int
	Size int
	Sort Sort
}

// PageOf builds a request for the given zero-based page number and size.
func PageOf(page, size int) PageRequest {
	return PageRequest{Page: page, Size: size}
}

// Offset returns the number of leading elements the request skips.
func (r PageRequest) Offset() int {
	return r.Page * r.Size
}

// Next returns the request for the following page.
func (r PageRequest) Next() PageRequest {
	return PageRequest{Page: r.Page + 1, Size: r.Size, Sort: r.Sort}
}

// Page holds one page of entities plus a total-count estimate.
//
// Total is exact when the source sequence was exhausted while filling the
// page; otherwise it is offset + len(Items) + 1, a lower bound that flags
// "at least one more element exists". An exact count would require a second
// full scan, which the backends cannot afford on lazy cursors.
type Page[T any] struct {
	Items  []T
	Number int
	Size   int
	Total  int64
}

// HasNext reports whether more elements exist past this page.
func (p Page[T]) HasNext() bool {
	return int64(p.Number+1)*int64(p.Size) < p.Total
}

// ExtractPage consumes seq and produces the page described by req.
//
// The source is walked linearly from its start: the first Offset elements
// are discarded, up to Size elements are collected in order, then one more
// element is pulled to decide whether the total is exact or a lower bound.
// The sequence's resource is released exactly once on every path, including
// early stops and errors. A non-positive Size yields an empty page.
func ExtractPage[T any](seq Sequence[T], req PageRequest) (Page[T], error) {
	defer seq.Close()

	skip := req.Offset()
	limit := req.Size
	if limit < 0 {
		limit = 0
	}

	items := make([]T, 0, limit)
	var total int64

	for skip+limit > 0 {
		entity, ok := seq.Next()
		if !ok {
			break
		}
		total++
		if skip > 0 {
			skip--
		} else {
			items = append(items, entity)
			limit--
		}
	}

	// Peek by consuming: when the page filled exactly at the source's end
	// this pull fails and no +1 is added, so the total stays exact.
	if _, ok := seq.Next(); ok {
		total++
	}

	if err := seq.Err(); err != nil {
		return Page[T]{}, err
	}

	return Page[T]{
		Items:  items,
		Number: req.Page,
		Size:   req.Size,
		Total:  total,
	}, nil
}
