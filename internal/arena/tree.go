// Package arena provides an ordered binary search tree whose nodes live in a
// single growable slice and reference each other by index.
//
// OrderedTree is the storage behind the draw-call queue. Nodes are never
// pointed to from outside the tree; parent and child links are integer
// indices into the arena, with none marking an absent link. Removing a node
// moves the last arena entry into the vacated slot, so the arena stays dense
// and removal never shifts unrelated entries.
//
// The tree performs no rotations. Its height depends on insertion order and
// degrades to linear for sorted input.
package arena

import (
	"cmp"
	"iter"
)

// none marks an absent parent, child, root, or extreme.
const none = -1

type node[T any] struct {
	value  T
	parent int
	left   int
	right  int
}

func (n *node[T]) isLeaf() bool { return n.left == none && n.right == none }

func (n *node[T]) hasOneChild() bool { return (n.left == none) != (n.right == none) }

func (n *node[T]) onlyChild() int {
	if n.left != none {
		return n.left
	}
	return n.right
}

// OrderedTree is an arena-backed binary search tree ordered by a comparison
// function. Values comparing equal share a key: pushing an equal value
// replaces the stored one.
//
// OrderedTree is not safe for concurrent use.
type OrderedTree[T any] struct {
	buf   []node[T]
	root  int
	first int
	last  int
	cmp   func(a, b T) int
}

// New creates an empty tree ordered by compare, which must return a negative
// number when a < b, zero when a == b, and a positive number when a > b.
// Capacity preallocates room for that many nodes.
func New[T any](compare func(a, b T) int, capacity int) *OrderedTree[T] {
	if compare == nil {
		panic("arena: nil compare function")
	}
	return &OrderedTree[T]{
		buf:   make([]node[T], 0, max(capacity, 0)),
		root:  none,
		first: none,
		last:  none,
		cmp:   compare,
	}
}

// NewOrdered creates an empty tree of naturally ordered values.
func NewOrdered[T cmp.Ordered](capacity int) *OrderedTree[T] {
	return New(cmp.Compare[T], capacity)
}

// Len returns the number of stored values.
func (t *OrderedTree[T]) Len() int { return len(t.buf) }

// IsEmpty reports whether the tree holds no values.
func (t *OrderedTree[T]) IsEmpty() bool { return t.root == none }

// Push inserts v. If a value comparing equal to v is already stored, it is
// overwritten in place and the length is unchanged.
func (t *OrderedTree[T]) Push(v T) {
	at, side := t.find(v)
	switch side {
	case sideEqual:
		t.buf[at].value = v
	case sideEmpty:
		t.buf = append(t.buf, node[T]{value: v, parent: none, left: none, right: none})
		t.root, t.first, t.last = 0, 0, 0
	default:
		i := len(t.buf)
		t.buf = append(t.buf, node[T]{value: v, parent: at, left: none, right: none})
		t.link(at, side, i)
	}
}

// Remove deletes the value comparing equal to v and returns it.
// The boolean is false if no such value is stored.
func (t *OrderedTree[T]) Remove(v T) (T, bool) {
	at, side := t.find(v)
	if side != sideEqual {
		var zero T
		return zero, false
	}

	tail := len(t.buf) - 1
	t.swap(at, tail)
	t.unlink(tail)

	removed := t.buf[tail].value
	t.buf[tail] = node[T]{}
	t.buf = t.buf[:tail]

	if t.root == none {
		t.first, t.last = none, none
	} else {
		if t.first == tail || t.first == none {
			t.first = t.leftmost(t.root)
		}
		if t.last == tail || t.last == none {
			t.last = t.rightmost(t.root)
		}
	}
	return removed, true
}

// Contains reports whether a value comparing equal to v is stored.
func (t *OrderedTree[T]) Contains(v T) bool {
	_, side := t.find(v)
	return side == sideEqual
}

// Min returns the smallest stored value.
func (t *OrderedTree[T]) Min() (T, bool) {
	if t.first == none {
		var zero T
		return zero, false
	}
	return t.buf[t.first].value, true
}

// Max returns the largest stored value.
func (t *OrderedTree[T]) Max() (T, bool) {
	if t.last == none {
		var zero T
		return zero, false
	}
	return t.buf[t.last].value, true
}

// Drain discards every value and releases the backing store.
func (t *OrderedTree[T]) Drain() {
	t.buf = nil
	t.root, t.first, t.last = none, none, none
}

// Iter returns an iterator positioned at the smallest value.
// The iterator is invalidated by any Push, Remove, or Drain.
func (t *OrderedTree[T]) Iter() *Iterator[T] {
	return &Iterator[T]{tree: t, index: t.first}
}

// All yields the stored values in ascending order.
func (t *OrderedTree[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := t.first; i != none; i = t.successor(i) {
			if !yield(t.buf[i].value) {
				return
			}
		}
	}
}

type side uint8

const (
	sideEmpty side = iota
	sideEqual
	sideLeft
	sideRight
)

// find walks from the root toward v. It returns the matching node with
// sideEqual, or the node under which v would be attached and the side.
func (t *OrderedTree[T]) find(v T) (int, side) {
	if t.root == none {
		return none, sideEmpty
	}
	at := t.root
	for {
		n := &t.buf[at]
		c := t.cmp(v, n.value)
		switch {
		case c == 0:
			return at, sideEqual
		case c < 0:
			if n.left == none {
				return at, sideLeft
			}
			at = n.left
		default:
			if n.right == none {
				return at, sideRight
			}
			at = n.right
		}
	}
}

// link attaches child under parent on the given side and keeps the extreme
// trackers current.
func (t *OrderedTree[T]) link(parent int, s side, child int) {
	t.buf[child].parent = parent
	if s == sideLeft {
		t.buf[parent].left = child
		if t.first == parent {
			t.first = t.leftmost(child)
		}
		return
	}
	t.buf[parent].right = child
	if t.last == parent {
		t.last = t.rightmost(child)
	}
}

// reattach links an already allocated subtree root back into the tree by
// walking from the root with its value.
func (t *OrderedTree[T]) reattach(i int) {
	at, s := t.find(t.buf[i].value)
	switch s {
	case sideEqual:
		panic("arena: reattached subtree collides with a stored key")
	case sideEmpty:
		t.buf[i].parent = none
		t.root = i
		t.first = t.leftmost(i)
		t.last = t.rightmost(i)
	default:
		t.link(at, s, i)
	}
}

// replaceChild points whichever link of parent referenced old at repl.
// A parent of none means old was the root.
func (t *OrderedTree[T]) replaceChild(parent, old, repl int) {
	if parent == none {
		t.root = repl
		return
	}
	if t.buf[parent].left == old {
		t.buf[parent].left = repl
	} else {
		t.buf[parent].right = repl
	}
}

// unlink detaches node i from the tree without releasing its arena slot.
// A node with two children is replaced by its left child and its right
// subtree is reattached through the insertion path.
func (t *OrderedTree[T]) unlink(i int) {
	n := t.buf[i]
	switch {
	case n.isLeaf():
		t.replaceChild(n.parent, i, none)
	case n.hasOneChild():
		c := n.onlyChild()
		t.replaceChild(n.parent, i, c)
		t.buf[c].parent = n.parent
	default:
		t.replaceChild(n.parent, i, n.left)
		t.buf[n.left].parent = n.parent
		t.buf[n.right].parent = none
		if t.last == i {
			t.last = none
		}
		if t.first == i {
			t.first = none
		}
		t.reattach(n.right)
	}
	t.buf[i].parent, t.buf[i].left, t.buf[i].right = none, none, none
}

// swap exchanges the arena positions of nodes a and b, rewriting every link
// that referenced either of them. The logical tree is unchanged.
func (t *OrderedTree[T]) swap(a, b int) {
	if a == b {
		return
	}
	remap := func(x int) int {
		switch x {
		case a:
			return b
		case b:
			return a
		}
		return x
	}

	na, nb := t.buf[a], t.buf[b]
	neighbours := [6]int{na.parent, na.left, na.right, nb.parent, nb.left, nb.right}
	for k, x := range neighbours {
		if x == none || x == a || x == b || seenBefore(neighbours[:k], x) {
			continue
		}
		n := &t.buf[x]
		n.parent, n.left, n.right = remap(n.parent), remap(n.left), remap(n.right)
	}

	na.parent, na.left, na.right = remap(na.parent), remap(na.left), remap(na.right)
	nb.parent, nb.left, nb.right = remap(nb.parent), remap(nb.left), remap(nb.right)
	t.buf[a], t.buf[b] = nb, na

	t.root, t.first, t.last = remap(t.root), remap(t.first), remap(t.last)
}

func seenBefore(xs []int, x int) bool {
	for _, y := range xs {
		if y == x {
			return true
		}
	}
	return false
}

func (t *OrderedTree[T]) leftmost(i int) int {
	for t.buf[i].left != none {
		i = t.buf[i].left
	}
	return i
}

func (t *OrderedTree[T]) rightmost(i int) int {
	for t.buf[i].right != none {
		i = t.buf[i].right
	}
	return i
}

// successor returns the in-order successor of i, climbing parent links when
// the right subtree is exhausted.
func (t *OrderedTree[T]) successor(i int) int {
	if r := t.buf[i].right; r != none {
		return t.leftmost(r)
	}
	p := t.buf[i].parent
	for p != none && t.buf[p].right == i {
		i, p = p, t.buf[p].parent
	}
	return p
}
