package avl

import "github.com/leengari/tabledb/internal/domain/data"

// Min returns the node with the smallest key, nil for an empty tree
func (t *Tree) Min() *Node {
	n := t.root
	if n == nil {
		return nil
	}
	for n.left != nil {
		n = n.left
	}
	return n
}

// Max returns the node with the largest key, nil for an empty tree
func (t *Tree) Max() *Node {
	n := t.root
	if n == nil {
		return nil
	}
	for n.right != nil {
		n = n.right
	}
	return n
}

// Equal returns the node holding key, or nil
func (t *Tree) Equal(key data.Cell) *Node {
	n := t.root
	for n != nil {
		switch c := key.Compare(n.Key); {
		case c < 0:
			n = n.left
		case c > 0:
			n = n.right
		default:
			return n
		}
	}
	return nil
}

// GreaterOrEqual returns, in ascending key order, every node with key >= bound.
// Left subtrees of nodes below the bound are skipped.
func (t *Tree) GreaterOrEqual(bound data.Cell) []*Node {
	var out []*Node
	collectGE(t.root, bound, &out)
	return out
}

func collectGE(n *Node, bound data.Cell, out *[]*Node) {
	if n == nil {
		return
	}
	if n.Key.Compare(bound) >= 0 {
		collectGE(n.left, bound, out)
		*out = append(*out, n)
		collectGE(n.right, bound, out)
		return
	}
	collectGE(n.right, bound, out)
}

// LessOrEqual returns, in ascending key order, every node with key <= bound.
// Right subtrees of nodes above the bound are skipped.
func (t *Tree) LessOrEqual(bound data.Cell) []*Node {
	var out []*Node
	collectLE(t.root, bound, &out)
	return out
}

func collectLE(n *Node, bound data.Cell, out *[]*Node) {
	if n == nil {
		return
	}
	if n.Key.Compare(bound) <= 0 {
		collectLE(n.left, bound, out)
		*out = append(*out, n)
		collectLE(n.right, bound, out)
		return
	}
	collectLE(n.left, bound, out)
}

// Top returns up to n nodes with the largest keys, largest first
func (t *Tree) Top(n int) []*Node {
	if n <= 0 {
		return nil
	}
	out := make([]*Node, 0, min(n, t.size))
	collectTop(t.root, n, &out)
	return out
}

func collectTop(node *Node, n int, out *[]*Node) {
	if node == nil || len(*out) >= n {
		return
	}
	collectTop(node.right, n, out)
	if len(*out) < n {
		*out = append(*out, node)
	}
	collectTop(node.left, n, out)
}

// Bottom returns up to n nodes with the smallest keys, smallest first
func (t *Tree) Bottom(n int) []*Node {
	if n <= 0 {
		return nil
	}
	out := make([]*Node, 0, min(n, t.size))
	collectBottom(t.root, n, &out)
	return out
}

func collectBottom(node *Node, n int, out *[]*Node) {
	if node == nil || len(*out) >= n {
		return
	}
	collectBottom(node.left, n, out)
	if len(*out) < n {
		*out = append(*out, node)
	}
	collectBottom(node.right, n, out)
}

// Walk visits nodes in ascending key order until fn returns false
func (t *Tree) Walk(fn func(*Node) bool) {
	walk(t.root, fn)
}

func walk(n *Node, fn func(*Node) bool) bool {
	if n == nil {
		return true
	}
	return walk(n.left, fn) && fn(n) && walk(n.right, fn)
}

// Keys returns the keys in ascending order
func (t *Tree) Keys() []data.Cell {
	keys := make([]data.Cell, 0, t.size)
	t.Walk(func(n *Node) bool {
		keys = append(keys, n.Key)
		return true
	})
	return keys
}
