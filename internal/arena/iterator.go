package arena

// Iterator walks an OrderedTree in ascending order without recursion or an
// explicit stack. It holds only the index of the next value to yield.
type Iterator[T any] struct {
	tree  *OrderedTree[T]
	index int
	taken int
}

// Next returns the next value and advances. The boolean is false once the
// tree is exhausted.
func (it *Iterator[T]) Next() (T, bool) {
	if it.index == none {
		var zero T
		return zero, false
	}
	v := it.tree.buf[it.index].value
	it.index = it.tree.successor(it.index)
	it.taken++
	return v, true
}

// Peek returns the next value without advancing.
func (it *Iterator[T]) Peek() (T, bool) {
	if it.index == none {
		var zero T
		return zero, false
	}
	return it.tree.buf[it.index].value, true
}

// Done reports whether every value has been yielded.
func (it *Iterator[T]) Done() bool { return it.index == none }

// Taken returns how many values Next has yielded.
func (it *Iterator[T]) Taken() int { return it.taken }

// Remaining returns how many values are left to yield.
func (it *Iterator[T]) Remaining() int { return it.tree.Len() - it.taken }
