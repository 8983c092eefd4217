// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"iter"

	"github.com/gogpu/batch"
)

// Drawable is a visible entity and the state it is drawn with.
type Drawable struct {
	Entity batch.EntityID
	Shader batch.ShaderID
	Mesh   batch.MeshID
}

// Call returns the draw call for d.
func (d Drawable) Call(cmd batch.Command) batch.DrawCall {
	return batch.DrawCall{Shader: d.Shader, Mesh: d.Mesh, Entity: d.Entity, Command: cmd}
}

// Collect drains q and queues one Draw call per drawable. It returns the
// number of calls queued.
//
// Draining discards every call already in q, Free calls included, so
// Release must be called after Collect for the frame it should affect.
func Collect(q *batch.Queue, drawables iter.Seq[Drawable]) int {
	q.Drain()
	for d := range drawables {
		q.Push(d.Call(batch.CommandDraw))
	}
	return q.Len()
}

// Release queues a Free call for d, releasing its per-instance resources
// during the next pass. Call it after Collect.
func Release(q *batch.Queue, d Drawable) {
	q.Push(d.Call(batch.CommandFree))
}
