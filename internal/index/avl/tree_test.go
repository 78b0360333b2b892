package avl

import (
	"math"
	"math/rand"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/leengari/tabledb/internal/domain/data"
	"github.com/leengari/tabledb/internal/domain/schema"
	"github.com/leengari/tabledb/internal/testutil"
)

// verify walks the subtree checking stored heights and the balance bound.
// It returns the recomputed height.
func verify(t *testing.T, n *Node) int {
	t.Helper()
	if n == nil {
		return 0
	}
	lh := verify(t, n.left)
	rh := verify(t, n.right)

	want := 1 + max(lh, rh)
	assert.Equal(t, n.height, want, "stored height of key %s", n.Key)
	assert.Assert(t, lh-rh <= 1 && rh-lh <= 1, "unbalanced at key %s: left=%d right=%d", n.Key, lh, rh)
	return want
}

func assertStrictlyAscending(t *testing.T, keys []data.Cell) {
	t.Helper()
	for i := 1; i < len(keys); i++ {
		assert.Assert(t, keys[i-1].Compare(keys[i]) < 0, "keys[%d]=%s keys[%d]=%s", i-1, keys[i-1], i, keys[i])
	}
}

func intKeys(keys []data.Cell) []int64 {
	out := make([]int64, len(keys))
	for i, k := range keys {
		out[i] = k.Int()
	}
	return out
}

func insertInts(tree *Tree, values ...int64) {
	for i, v := range values {
		tree.Insert(data.Int(v), nil, i+1)
	}
}

func TestEmptyTree(t *testing.T) {
	tree := New(schema.KindInteger)
	assert.Equal(t, tree.Height(), 0)
	assert.Equal(t, tree.Len(), 0)
	assert.Assert(t, tree.Min() == nil)
	assert.Assert(t, tree.Max() == nil)
	assert.Assert(t, tree.Equal(data.Int(1)) == nil)
	assert.Equal(t, len(tree.GreaterOrEqual(data.Int(0))), 0)
	assert.Equal(t, len(tree.Top(3)), 0)
}

func TestLeafHeight(t *testing.T) {
	tree := New(schema.KindInteger)
	insertInts(tree, 42)
	assert.Equal(t, tree.Height(), 1)
	assert.Equal(t, tree.Root().Height(), 1)
}

func TestRotations(t *testing.T) {
	tests := []struct {
		name   string
		values []int64
	}{
		{"left-left", []int64{3, 2, 1}},
		{"right-right", []int64{1, 2, 3}},
		{"left-right", []int64{3, 1, 2}},
		{"right-left", []int64{1, 3, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := New(schema.KindInteger)
			insertInts(tree, tt.values...)

			root := tree.Root()
			assert.Equal(t, root.Key.Int(), int64(2))
			assert.Equal(t, root.Left().Key.Int(), int64(1))
			assert.Equal(t, root.Right().Key.Int(), int64(3))
			assert.Equal(t, tree.Height(), 2)
			verify(t, root)
		})
	}
}

func TestScenarioBuildFromTable(t *testing.T) {
	tbl := testutil.IntTable(t, 5, 3, 8, 1, 4)
	tree, err := Build(tbl, 0)
	assert.NilError(t, err)
	defer tree.Release()

	bound := int(math.Ceil(math.Log2(6)))
	assert.Assert(t, tree.Height() <= bound, "height %d > %d", tree.Height(), bound)
	assert.DeepEqual(t, intKeys(tree.Keys()), []int64{1, 3, 4, 5, 8})
	verify(t, tree.Root())
}

func TestRandomInsertionsStayBalanced(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	tree := New(schema.KindInteger)
	distinct := make(map[int64]struct{})

	for i := 0; i < 3000; i++ {
		v := rng.Int63n(1000) - 500
		inserted := tree.Insert(data.Int(v), nil, i+1)
		_, seen := distinct[v]
		assert.Equal(t, inserted, !seen)
		distinct[v] = struct{}{}

		if i%250 == 0 {
			verify(t, tree.Root())
		}
	}

	verify(t, tree.Root())
	assert.Equal(t, tree.Len(), len(distinct))
	assertStrictlyAscending(t, tree.Keys())

	limit := 1.45 * math.Log2(float64(tree.Len()+2))
	assert.Assert(t, float64(tree.Height()) <= limit, "height %d exceeds AVL bound %.2f", tree.Height(), limit)
}

func TestSequentialInsertionsStayBalanced(t *testing.T) {
	asc := New(schema.KindInteger)
	desc := New(schema.KindInteger)
	for i := int64(0); i < 1024; i++ {
		asc.Insert(data.Int(i), nil, int(i)+1)
		desc.Insert(data.Int(1023-i), nil, int(i)+1)
	}
	verify(t, asc.Root())
	verify(t, desc.Root())
	assert.Equal(t, asc.Height(), 11)
	assert.Equal(t, desc.Height(), 11)
}

func TestDuplicateKeysKeepFirstRow(t *testing.T) {
	tbl := testutil.IntTable(t, 7, 3, 7, 7)
	tree, err := Build(tbl, 0)
	assert.NilError(t, err)

	assert.Equal(t, tree.Len(), 2)
	n := tree.Equal(data.Int(7))
	assert.Assert(t, n != nil)
	assert.Equal(t, n.Position, 1)
	assert.Equal(t, n.Record, tbl.GetAt(1))

	assert.Assert(t, !tree.Insert(data.Int(3), tbl.GetAt(4), 4))
	assert.Equal(t, tree.Equal(data.Int(3)).Position, 2)
}

func TestQueries(t *testing.T) {
	tbl := testutil.IntTable(t, 50, 20, 80, 10, 30, 70, 90, 60, 40)
	tree, err := Build(tbl, 0)
	assert.NilError(t, err)
	defer tree.Release()

	assert.Equal(t, tree.Min().Key.Int(), int64(10))
	assert.Equal(t, tree.Min().Position, 4)
	assert.Equal(t, tree.Max().Key.Int(), int64(90))
	assert.Equal(t, tree.Max().Position, 7)

	assert.Equal(t, tree.Equal(data.Int(30)).Position, 5)
	assert.Assert(t, tree.Equal(data.Int(35)) == nil)

	keysOf := func(nodes []*Node) []int64 {
		out := make([]int64, len(nodes))
		for i, n := range nodes {
			out[i] = n.Key.Int()
		}
		return out
	}

	assert.DeepEqual(t, keysOf(tree.GreaterOrEqual(data.Int(55))), []int64{60, 70, 80, 90})
	assert.DeepEqual(t, keysOf(tree.GreaterOrEqual(data.Int(60))), []int64{60, 70, 80, 90})
	assert.DeepEqual(t, keysOf(tree.LessOrEqual(data.Int(30))), []int64{10, 20, 30})
	assert.Equal(t, len(tree.GreaterOrEqual(data.Int(91))), 0)
	assert.Equal(t, len(tree.LessOrEqual(data.Int(9))), 0)

	assert.DeepEqual(t, keysOf(tree.Top(3)), []int64{90, 80, 70})
	assert.DeepEqual(t, keysOf(tree.Bottom(4)), []int64{10, 20, 30, 40})
	assert.Equal(t, len(tree.Top(100)), 9)
	assert.Equal(t, len(tree.Bottom(0)), 0)
}

func TestTextKeys(t *testing.T) {
	tbl := testutil.NewIDNameTable(t,
		testutil.Row(1, "pear"),
		testutil.Row(2, "apple"),
		testutil.Row(3, "fig"),
		testutil.Row(4, "Zebra"),
		testutil.Row(5, "apple"),
	)
	tree, err := Build(tbl, 1)
	assert.NilError(t, err)

	assert.Equal(t, tree.Kind(), schema.KindText)
	keys := tree.Keys()
	assertStrictlyAscending(t, keys)
	assert.Equal(t, len(keys), 4)
	// byte order puts upper case first
	assert.Equal(t, keys[0].Text(), "Zebra")
	assert.Equal(t, tree.Equal(data.Text("apple")).Position, 2)
}

func TestBuildRejectsBadColumn(t *testing.T) {
	tbl := testutil.IntTable(t, 1)
	_, err := Build(tbl, 2)
	assert.ErrorContains(t, err, "out of range")
}

func TestReleaseLeavesRecords(t *testing.T) {
	tbl := testutil.IntTable(t, 2, 1, 3)
	tree, err := Build(tbl, 0)
	assert.NilError(t, err)

	tree.Release()
	assert.Assert(t, tree.Root() == nil)
	assert.Equal(t, tree.Len(), 0)
	testutil.AssertRowCount(t, tbl, 3, "after release")
	testutil.AssertRowAt(t, tbl, 2, testutil.Row(1, "r2"), "after release")
}
