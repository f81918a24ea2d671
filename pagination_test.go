package graphstore_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"graphstore"
)

// sliceSeq is a sequence over a fixed slice that records reads and closes.
type sliceSeq struct {
	items  []int
	pos    int
	reads  int
	closes int
	err    error
}

func (s *sliceSeq) Next() (int, bool) {
	if s.pos >= len(s.items) {
		return 0, false
	}
	v := s.items[s.pos]
	s.pos++
	s.reads++
	return v, true
}

func (s *sliceSeq) Err() error { return s.err }

func (s *sliceSeq) Close() error {
	s.closes++
	return nil
}

func intsUpTo(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func TestExtractPageFirstPage(t *testing.T) {
	seq := &sliceSeq{items: intsUpTo(10)}

	page, err := graphstore.ExtractPage[int](seq, graphstore.PageOf(0, 3))
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 3}, page.Items)
	assert.Equal(t, 0, page.Number)
	assert.Equal(t, 3, page.Size)
	assert.Equal(t, int64(4), page.Total, "total is a lower bound: consumed + peek")
	assert.True(t, page.HasNext())

	// The source is read exactly size+1 times, never drained.
	assert.Equal(t, 4, seq.reads)
	assert.Equal(t, 1, seq.closes)
}

func TestExtractPageMiddlePage(t *testing.T) {
	seq := &sliceSeq{items: intsUpTo(10)}

	page, err := graphstore.ExtractPage[int](seq, graphstore.PageOf(1, 3))
	require.NoError(t, err)

	assert.Equal(t, []int{4, 5, 6}, page.Items)
	assert.Equal(t, int64(7), page.Total)
	assert.True(t, page.HasNext())
	assert.Equal(t, 7, seq.reads)
}

func TestExtractPageLastPartialPage(t *testing.T) {
	seq := &sliceSeq{items: intsUpTo(10)}

	page, err := graphstore.ExtractPage[int](seq, graphstore.PageOf(3, 3))
	require.NoError(t, err)

	assert.Equal(t, []int{10}, page.Items)
	assert.Equal(t, int64(10), page.Total, "exhausted source makes the total exact")
	assert.False(t, page.HasNext())
	assert.Equal(t, 1, seq.closes)
}

func TestExtractPageEndsExactlyAtBoundary(t *testing.T) {
	seq := &sliceSeq{items: intsUpTo(6)}

	page, err := graphstore.ExtractPage[int](seq, graphstore.PageOf(1, 3))
	require.NoError(t, err)

	assert.Equal(t, []int{4, 5, 6}, page.Items)
	assert.Equal(t, int64(6), page.Total, "failed peek must not add one")
	assert.False(t, page.HasNext())
}

func TestExtractPageOffsetPastEnd(t *testing.T) {
	seq := &sliceSeq{items: intsUpTo(4)}

	page, err := graphstore.ExtractPage[int](seq, graphstore.PageOf(5, 3))
	require.NoError(t, err)

	assert.Empty(t, page.Items)
	assert.Equal(t, int64(4), page.Total)
	assert.False(t, page.HasNext())
	assert.Equal(t, 1, seq.closes)
}

func TestExtractPageNonPositiveSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		seq := &sliceSeq{items: intsUpTo(5)}

		page, err := graphstore.ExtractPage[int](seq, graphstore.PageOf(0, size))
		require.NoError(t, err)
		assert.Empty(t, page.Items)
		assert.Equal(t, 1, seq.closes)
	}
}

func TestExtractPageEmptySource(t *testing.T) {
	seq := &sliceSeq{}

	page, err := graphstore.ExtractPage[int](seq, graphstore.PageOf(0, 3))
	require.NoError(t, err)

	assert.Empty(t, page.Items)
	assert.Equal(t, int64(0), page.Total)
	assert.False(t, page.HasNext())
	assert.Equal(t, 1, seq.closes)
}

func TestExtractPagePropagatesSequenceError(t *testing.T) {
	boom := errors.New("boom")
	seq := &sliceSeq{items: intsUpTo(2), err: boom}

	_, err := graphstore.ExtractPage[int](seq, graphstore.PageOf(0, 5))
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, seq.closes, "resource released on the error path too")
}

func TestExtractPageWalkAllPages(t *testing.T) {
	// Walking page by page reassembles the source in order.
	const n = 10
	req := graphstore.PageOf(0, 4)

	var all []int
	for {
		seq := &sliceSeq{items: intsUpTo(n)}
		page, err := graphstore.ExtractPage[int](seq, req)
		require.NoError(t, err)
		all = append(all, page.Items...)
		if !page.HasNext() {
			break
		}
		req = req.Next()
	}

	assert.Equal(t, intsUpTo(n), all)
}

func TestPageRequestOffset(t *testing.T) {
	assert.Equal(t, 0, graphstore.PageOf(0, 20).Offset())
	assert.Equal(t, 40, graphstore.PageOf(2, 20).Offset())
	assert.Equal(t, 6, graphstore.PageOf(1, 3).Next().Offset(), "Next advances one page")
}

func TestSortHelpers(t *testing.T) {
	s := graphstore.Sort{graphstore.Asc("name"), graphstore.Desc("age")}
	assert.False(t, s[0].Desc)
	assert.True(t, s[1].Desc)
	assert.Equal(t, "name", s[0].Property)
}
