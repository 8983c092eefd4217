package batch

import (
	"iter"

	"github.com/gogpu/batch/internal/arena"
)

// Queue holds the frame's pending draw calls in batching order.
//
// The collection phase pushes into the queue; the render pass consumes it
// through a Consumer. The two phases never overlap. Queue is not safe for
// concurrent use.
type Queue struct {
	tree *arena.OrderedTree[DrawCall]
}

// NewQueue creates an empty queue with room for capacity calls.
func NewQueue(capacity int) *Queue {
	return &Queue{tree: arena.New(CompareDrawCalls, capacity)}
}

// Push adds a call. A call equal to one already queued replaces it.
func (q *Queue) Push(dc DrawCall) { q.tree.Push(dc) }

// Remove deletes a queued call. The boolean is false if it was not queued.
func (q *Queue) Remove(dc DrawCall) (DrawCall, bool) { return q.tree.Remove(dc) }

// Len returns the number of queued calls.
func (q *Queue) Len() int { return q.tree.Len() }

// IsEmpty reports whether no call is queued.
func (q *Queue) IsEmpty() bool { return q.tree.IsEmpty() }

// Drain empties the queue ahead of the next collection phase.
func (q *Queue) Drain() { q.tree.Drain() }

// All yields the queued calls in batching order.
func (q *Queue) All() iter.Seq[DrawCall] { return q.tree.All() }

// Consume returns a Consumer positioned at the first call in batching order.
// Each call returns a fresh consumer; the queue itself is not modified.
func (q *Queue) Consume() *Consumer {
	return &Consumer{it: q.tree.Iter()}
}

// Consumer yields a queue's calls exactly once, in batching order.
type Consumer struct {
	it *arena.Iterator[DrawCall]
}

// Next pops the next call. The boolean is false once the queue is exhausted.
func (c *Consumer) Next() (DrawCall, bool) { return c.it.Next() }

// Peek returns the next call without popping it.
func (c *Consumer) Peek() (DrawCall, bool) { return c.it.Peek() }

// PopIf pops the next call only if pred accepts it.
func (c *Consumer) PopIf(pred func(DrawCall) bool) (DrawCall, bool) {
	dc, ok := c.it.Peek()
	if !ok || !pred(dc) {
		return DrawCall{}, false
	}
	return c.it.Next()
}

// Done reports whether every call has been popped.
func (c *Consumer) Done() bool { return c.it.Done() }

// Consumed returns how many calls have been popped.
func (c *Consumer) Consumed() int { return c.it.Taken() }

// Remaining returns how many calls are left.
func (c *Consumer) Remaining() int { return c.it.Remaining() }
