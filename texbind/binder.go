// Package texbind maps texture identities to hardware texture units.
//
// A TextureBinder is a fixed-capacity cache ordered by recency. Each slot
// remembers the generation in which it was last requested; only slots
// from an older generation may be evicted, so a texture bound during the
// current generation stays resident until the generation advances.
package texbind

import (
	"iter"

	"github.com/gogpu/batch"
)

const none = -1

type slot struct {
	texture    batch.TextureID
	generation uint64
	prev, next int
	used       bool
}

// TextureBinder is a generational LRU cache of texture units.
//
// Unit 0 is never handed out. Units 1..capacity are allocated on demand.
// TextureBinder is not safe for concurrent use.
type TextureBinder struct {
	slots      []slot
	oldest     int
	newest     int
	generation uint64
	top        int
	free       []int
	bound      int
}

// New creates a binder with capacity allocatable units.
func New(capacity int) *TextureBinder {
	if capacity < 1 {
		capacity = 1
	}
	b := &TextureBinder{slots: make([]slot, capacity+1)}
	b.reset()
	return b
}

func (b *TextureBinder) reset() {
	clear(b.slots)
	b.oldest, b.newest = none, none
	b.top = 1
	b.free = b.free[:0]
	b.bound = 0
}

// Capacity returns the number of allocatable units.
func (b *TextureBinder) Capacity() int { return len(b.slots) - 1 }

// Len returns the number of occupied units.
func (b *TextureBinder) Len() int { return b.bound }

// Generation returns the current generation.
func (b *TextureBinder) Generation() uint64 { return b.generation }

// GetSlot returns the unit holding tex, binding it if needed. The boolean
// is true when the texture was not already resident and must be uploaded
// to the returned unit.
//
// GetSlot panics with a FaultSlotsExhausted fault when every unit was
// already requested during the current generation.
func (b *TextureBinder) GetSlot(tex batch.TextureID) (uint32, bool) {
	for i := 1; i < b.top; i++ {
		s := &b.slots[i]
		if s.used && s.texture == tex {
			s.generation = b.generation
			b.moveToNewest(i)
			return uint32(i), false
		}
	}

	if i, ok := b.allocate(); ok {
		b.slots[i] = slot{texture: tex, generation: b.generation, prev: none, next: none, used: true}
		b.pushNewest(i)
		b.bound++
		return uint32(i), true
	}

	if b.oldest != none && b.slots[b.oldest].generation < b.generation {
		i := b.oldest
		slogger().Debug("texbind: evict", "unit", i, "texture", b.slots[i].texture, "for", tex)
		b.slots[i].texture = tex
		b.slots[i].generation = b.generation
		b.moveToNewest(i)
		return uint32(i), true
	}

	batch.Throw(&batch.Fault{
		Kind:    batch.FaultSlotsExhausted,
		Texture: tex,
		Detail:  "every texture unit is in use by the current generation",
	})
	panic("unreachable")
}

func (b *TextureBinder) allocate() (int, bool) {
	if len(b.free) > 0 {
		i := b.free[0]
		b.free = b.free[1:]
		return i, true
	}
	if b.top < len(b.slots) {
		i := b.top
		b.top++
		return i, true
	}
	return none, false
}

// FreeSlot releases the unit holding tex so it can be reused immediately.
// It reports whether tex was bound.
func (b *TextureBinder) FreeSlot(tex batch.TextureID) bool {
	for i := 1; i < b.top; i++ {
		if b.slots[i].used && b.slots[i].texture == tex {
			b.detach(i)
			b.slots[i] = slot{}
			b.free = append(b.free, i)
			b.bound--
			return true
		}
	}
	slogger().Warn("texbind: free of unbound texture", "texture", tex)
	return false
}

// Refresh empties every unit and resets the generation counter.
func (b *TextureBinder) Refresh() {
	b.reset()
	b.generation = 0
}

// IncrementGeneration makes every currently bound unit evictable.
func (b *TextureBinder) IncrementGeneration() {
	b.generation++
}

// BoundSlots yields the occupied units in ascending order.
func (b *TextureBinder) BoundSlots() iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		for i := 1; i < b.top; i++ {
			if b.slots[i].used && !yield(uint32(i)) {
				return
			}
		}
	}
}

// Texture returns the texture held by unit.
func (b *TextureBinder) Texture(unit uint32) (batch.TextureID, bool) {
	i := int(unit)
	if i < 1 || i >= b.top || !b.slots[i].used {
		return 0, false
	}
	return b.slots[i].texture, true
}

func (b *TextureBinder) pushNewest(i int) {
	b.slots[i].prev = b.newest
	b.slots[i].next = none
	if b.newest != none {
		b.slots[b.newest].next = i
	}
	b.newest = i
	if b.oldest == none {
		b.oldest = i
	}
}

func (b *TextureBinder) detach(i int) {
	s := &b.slots[i]
	if s.prev != none {
		b.slots[s.prev].next = s.next
	} else {
		b.oldest = s.next
	}
	if s.next != none {
		b.slots[s.next].prev = s.prev
	} else {
		b.newest = s.prev
	}
	s.prev, s.next = none, none
}

func (b *TextureBinder) moveToNewest(i int) {
	if b.newest == i {
		return
	}
	b.detach(i)
	b.pushNewest(i)
}
