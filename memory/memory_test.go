package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"graphstore"
)

func TestCreateAndFindByID(t *testing.T) {
	g := New()
	ctx := context.Background()

	node := g.CreateNode(map[string]any{"name": "a"})
	assert.Equal(t, graphstore.KindNode, node.Kind())

	st, err := g.FindByID(ctx, node.GraphID())
	require.NoError(t, err)
	assert.Equal(t, node.GraphID(), st.GraphID())

	_, err = g.FindByID(ctx, 99)
	assert.ErrorIs(t, err, graphstore.ErrNotFound)

	_, err = g.FindByID(ctx, 0)
	assert.True(t, graphstore.IsRetrievalError(err))
}

func TestCreateRelationshipValidatesEndpoints(t *testing.T) {
	g := New()
	a := g.CreateNode(nil)
	b := g.CreateNode(nil)

	rel, err := g.CreateRelationship(a, b, "KNOWS", map[string]any{"since": 2020})
	require.NoError(t, err)
	assert.Equal(t, graphstore.KindRelationship, rel.Kind())

	_, err = g.CreateRelationship(a, &Element{id: 77}, "KNOWS", nil)
	assert.ErrorIs(t, err, graphstore.ErrNotFound)
}

func TestIndexResolution(t *testing.T) {
	g := New()
	ctx := context.Background()

	_, err := g.Index(ctx, "person", "name")
	assert.ErrorIs(t, err, graphstore.ErrNoSuchIndex)

	created := g.CreateIndex("person")
	resolved, err := g.Index(ctx, "person", "name")
	require.NoError(t, err)
	assert.Same(t, created, resolved)

	// Creating again returns the same index.
	assert.Same(t, created, g.CreateIndex("person"))
}

func TestDeleteNodeCascades(t *testing.T) {
	g := New()
	ctx := context.Background()

	a := g.CreateNode(nil)
	b := g.CreateNode(nil)
	rel, err := g.CreateRelationship(a, b, "KNOWS", nil)
	require.NoError(t, err)

	idx := g.CreateIndex("person")
	idx.Add(a, "name", "a")
	idx.Add(rel, "since", 2020)

	require.NoError(t, g.DeleteNode(ctx, a))

	_, err = g.FindByID(ctx, a.GraphID())
	assert.ErrorIs(t, err, graphstore.ErrNotFound)
	_, err = g.FindByID(ctx, rel.GraphID())
	assert.ErrorIs(t, err, graphstore.ErrNotFound, "incident relationships cascade")

	// Index entries for both elements are gone.
	cur, err := idx.Get(ctx, "name", "a")
	require.NoError(t, err)
	_, ok := cur.Next()
	assert.False(t, ok)
	cur.Close()

	assert.ErrorIs(t, g.DeleteNode(ctx, a), graphstore.ErrNotFound)
}

func TestDeleteRelationship(t *testing.T) {
	g := New()
	ctx := context.Background()

	a := g.CreateNode(nil)
	b := g.CreateNode(nil)
	rel, err := g.CreateRelationship(a, b, "KNOWS", nil)
	require.NoError(t, err)

	require.NoError(t, g.DeleteRelationship(ctx, rel))
	assert.ErrorIs(t, g.DeleteRelationship(ctx, rel), graphstore.ErrNotFound)

	// Endpoints survive.
	_, err = g.FindByID(ctx, a.GraphID())
	assert.NoError(t, err)
}

func TestFindAllOrderedSnapshot(t *testing.T) {
	g := New()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		g.CreateNode(nil)
	}

	cur, err := g.FindAll(ctx)
	require.NoError(t, err)

	var ids []int64
	for {
		st, ok := cur.Next()
		if !ok {
			break
		}
		ids = append(ids, st.GraphID())
	}
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, ids)

	sc := cur.(*sliceCursor)
	require.NoError(t, cur.Close())
	assert.Equal(t, 1, sc.CloseCount())

	// A closed cursor yields nothing.
	_, ok := cur.Next()
	assert.False(t, ok)
}

func TestIndexNumericWidthCoercion(t *testing.T) {
	g := New()
	ctx := context.Background()
	idx := g.CreateIndex("person")

	node := g.CreateNode(nil)
	idx.Add(node, "age", int32(30))

	// An int64 range still matches an int32-valued entry.
	cur, err := idx.Query(ctx, graphstore.InclusiveRange("age", int64(30), int64(30)))
	require.NoError(t, err)
	_, ok := cur.Next()
	assert.True(t, ok)
	cur.Close()

	// Exact lookup with a different width matches too.
	cur, err = idx.Get(ctx, "age", int64(30))
	require.NoError(t, err)
	_, ok = cur.Next()
	assert.True(t, ok)
	cur.Close()
}

func TestIndexFloatRange(t *testing.T) {
	g := New()
	ctx := context.Background()
	idx := g.CreateIndex("readings")

	for _, v := range []float64{1.5, 2.5, 3.5} {
		node := g.CreateNode(nil)
		idx.Add(node, "value", v)
	}

	cur, err := idx.Query(ctx, graphstore.InclusiveRange("value", 1.5, 2.5))
	require.NoError(t, err)
	var hits int
	for {
		if _, ok := cur.Next(); !ok {
			break
		}
		hits++
	}
	cur.Close()
	assert.Equal(t, 2, hits)
}

func TestParseBBox(t *testing.T) {
	tests := []struct {
		expr string
		want bbox
		ok   bool
	}{
		{"[1, 2, 3, 4]", bbox{minLon: 1, maxLon: 2, minLat: 3, maxLat: 4}, true},
		{" [1.5, 2.5, -3.5, 4.5] ", bbox{minLon: 1.5, maxLon: 2.5, minLat: -3.5, maxLat: 4.5}, true},
		{"[1, 2, 3]", bbox{}, false},
		{"1, 2, 3, 4", bbox{}, false},
		{"[a, 2, 3, 4]", bbox{}, false},
		{"", bbox{}, false},
	}

	for _, tt := range tests {
		got, ok := parseBBox(tt.expr)
		assert.Equal(t, tt.ok, ok, "expr %q", tt.expr)
		if tt.ok {
			assert.Equal(t, tt.want, got)
		}
	}
}

func TestBBoxQueryMatchesPoints(t *testing.T) {
	g := New()
	ctx := context.Background()
	idx := g.CreateIndex("places")

	inside := g.CreateNode(nil)
	outside := g.CreateNode(nil)
	idx.Add(inside, "location", Point{Lat: 1, Lon: 1})
	idx.Add(outside, "location", Point{Lat: 9, Lon: 9})

	cur, err := idx.Query(ctx, graphstore.Raw("bbox", "[0, 2, 0, 2]"))
	require.NoError(t, err)
	st, ok := cur.Next()
	require.True(t, ok)
	assert.Equal(t, inside.GraphID(), st.GraphID())
	_, ok = cur.Next()
	assert.False(t, ok)
	cur.Close()

	// Non-bbox raw expressions are unsupported: nil cursor, no error.
	cur, err = idx.Query(ctx, graphstore.Raw("name", "name:x*"))
	require.NoError(t, err)
	assert.Nil(t, cur)
}

func TestServiceLifecycle(t *testing.T) {
	g := New()
	ctx := context.Background()

	require.NoError(t, g.Connect(ctx))

	g.CreateNode(nil)
	g.CreateIndex("x")

	stats := g.Stats().(Stats)
	assert.Equal(t, int64(1), stats.Nodes)
	assert.Equal(t, int64(1), stats.Indexes)

	require.NoError(t, g.Close())

	count, err := g.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}
