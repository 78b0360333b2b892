// Package avl implements the transient balanced index built over one column.
//
// A Tree maps each distinct key of the column to the first record seen with
// that key. Records with a repeated key are not represented, so an index
// lookup returns at most one record per value. The tree never owns the
// records it points to; it must be released before the table is mutated.
package avl

import (
	"fmt"

	"github.com/leengari/tabledb/internal/domain/data"
	"github.com/leengari/tabledb/internal/domain/schema"
	"github.com/leengari/tabledb/internal/domain/table"
)

// Node is one entry of the tree
type Node struct {
	Key      data.Cell
	Record   *table.Record // non-owning
	Position int           // 1-based position of Record when the tree was built

	left   *Node
	right  *Node
	height int
}

// Left returns the left child
func (n *Node) Left() *Node { return n.left }

// Right returns the right child
func (n *Node) Right() *Node { return n.right }

// Height returns the stored height of the node (1 for a leaf)
func (n *Node) Height() int { return n.height }

// Tree is an AVL tree keyed by cells of a single kind
type Tree struct {
	root *Node
	kind schema.Kind
	size int
}

// New returns an empty tree for keys of the given kind
func New(kind schema.Kind) *Tree {
	return &Tree{kind: kind}
}

// Build indexes column col of t in a single pass, in positional order.
// For duplicate keys only the first record survives.
func Build(t *table.Table, col int) (*Tree, error) {
	s := t.Schema()
	if col < 0 || col >= s.NumColumns() {
		return nil, fmt.Errorf("build index: column index %d out of range", col)
	}

	tree := New(s.Columns[col].Kind)
	t.Each(func(pos int, rec *table.Record) bool {
		tree.Insert(rec.Cell(col), rec, pos)
		return true
	})
	return tree, nil
}

// Root returns the root node, nil for an empty tree
func (t *Tree) Root() *Node { return t.root }

// Kind returns the key kind
func (t *Tree) Kind() schema.Kind { return t.kind }

// Len returns the number of distinct keys
func (t *Tree) Len() int { return t.size }

// Height returns the height of the tree, 0 when empty
func (t *Tree) Height() int { return height(t.root) }

// Insert adds key → rec. It returns false and leaves the tree unchanged
// when key is already present.
func (t *Tree) Insert(key data.Cell, rec *table.Record, pos int) bool {
	var inserted bool
	t.root = insert(t.root, key, rec, pos, &inserted)
	if inserted {
		t.size++
	}
	return inserted
}

// Release drops every node. Referenced records are left untouched.
func (t *Tree) Release() {
	release(t.root)
	t.root = nil
	t.size = 0
}

func release(n *Node) {
	if n == nil {
		return
	}
	release(n.left)
	release(n.right)
	n.left, n.right, n.Record = nil, nil, nil
}

func height(n *Node) int {
	if n == nil {
		return 0
	}
	return n.height
}

func updateHeight(n *Node) {
	n.height = 1 + max(height(n.left), height(n.right))
}

// getBalance is left height minus right height
func getBalance(n *Node) int {
	if n == nil {
		return 0
	}
	return height(n.left) - height(n.right)
}

//	    y          x
//	   / \        / \
//	  x   C  →   A   y
//	 / \            / \
//	A   B          B   C
func rotateRight(y *Node) *Node {
	x := y.left
	y.left = x.right
	x.right = y

	updateHeight(y)
	updateHeight(x)
	return x
}

//	  x              y
//	 / \            / \
//	A   y    →     x   C
//	   / \        / \
//	  B   C      A   B
func rotateLeft(x *Node) *Node {
	y := x.right
	x.right = y.left
	y.left = x

	updateHeight(x)
	updateHeight(y)
	return y
}

func insert(n *Node, key data.Cell, rec *table.Record, pos int, inserted *bool) *Node {
	if n == nil {
		*inserted = true
		return &Node{Key: key, Record: rec, Position: pos, height: 1}
	}

	switch c := key.Compare(n.Key); {
	case c < 0:
		n.left = insert(n.left, key, rec, pos, inserted)
	case c > 0:
		n.right = insert(n.right, key, rec, pos, inserted)
	default:
		return n
	}

	updateHeight(n)
	return rebalance(n, key)
}

func rebalance(n *Node, key data.Cell) *Node {
	balance := getBalance(n)

	// left-left
	if balance > 1 && key.Compare(n.left.Key) < 0 {
		return rotateRight(n)
	}
	// right-right
	if balance < -1 && key.Compare(n.right.Key) > 0 {
		return rotateLeft(n)
	}
	// left-right
	if balance > 1 && key.Compare(n.left.Key) > 0 {
		n.left = rotateLeft(n.left)
		return rotateRight(n)
	}
	// right-left
	if balance < -1 && key.Compare(n.right.Key) < 0 {
		n.right = rotateRight(n.right)
		return rotateLeft(n)
	}
	return n
}
