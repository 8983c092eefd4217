package instancing

import "github.com/gogpu/batch"

// Table assigns each entity a fixed position in a packed instance buffer.
//
// Offsets are measured in 4-byte words. Positions released by Remove are
// handed out again, oldest first, before the buffer grows.
type Table struct {
	layout    Layout
	stride    int
	positions map[batch.EntityID]int
	holes     []int
	next      int
}

// NewTable creates an empty table for instances shaped by layout.
func NewTable(layout Layout) *Table {
	return &Table{
		layout:    layout,
		stride:    layout.Stride(),
		positions: make(map[batch.EntityID]int),
	}
}

// Layout returns the instance layout.
func (t *Table) Layout() Layout { return t.layout }

// Stride returns the size of one instance in words.
func (t *Table) Stride() int { return t.stride }

// Upsert returns the offset of e's instance, assigning a position if e has
// none yet.
func (t *Table) Upsert(e batch.EntityID) int {
	if pos, ok := t.positions[e]; ok {
		return pos * t.stride
	}
	var pos int
	if len(t.holes) > 0 {
		pos = t.holes[0]
		t.holes = t.holes[1:]
	} else {
		pos = t.next
		t.next++
	}
	t.positions[e] = pos
	return pos * t.stride
}

// Remove releases e's position and returns the offset it occupied.
func (t *Table) Remove(e batch.EntityID) (int, bool) {
	pos, ok := t.positions[e]
	if !ok {
		return 0, false
	}
	delete(t.positions, e)
	t.holes = append(t.holes, pos)
	return pos * t.stride, true
}

// Offset returns the offset of e's instance without assigning one.
func (t *Table) Offset(e batch.EntityID) (int, bool) {
	pos, ok := t.positions[e]
	return pos * t.stride, ok
}

// Len returns the number of live instances.
func (t *Table) Len() int { return len(t.positions) }

// Count returns the number of instance positions an instanced draw must
// cover, holes included.
func (t *Table) Count() int { return t.next }

// Words returns the buffer size in words needed to hold Count instances.
func (t *Table) Words() int { return t.next * t.stride }
