package assets

import "github.com/gogpu/batch"

// Store maps entities to per-entity components.
type Store[V any] struct {
	m map[batch.EntityID]V
}

// NewStore creates an empty store.
func NewStore[V any]() *Store[V] {
	return &Store[V]{m: make(map[batch.EntityID]V)}
}

// Set stores v for e.
func (s *Store[V]) Set(e batch.EntityID, v V) { s.m[e] = v }

// Get returns the value stored for e.
func (s *Store[V]) Get(e batch.EntityID) (V, bool) {
	v, ok := s.m[e]
	return v, ok
}

// Delete removes e.
func (s *Store[V]) Delete(e batch.EntityID) { delete(s.m, e) }

// Len returns the number of stored entities.
func (s *Store[V]) Len() int { return len(s.m) }

// Materials stores entity materials. It implements pipeline.MaterialStore.
type Materials struct{ *Store[batch.Material] }

// NewMaterials creates an empty material store.
func NewMaterials() Materials { return Materials{NewStore[batch.Material]()} }

// Material implements pipeline.MaterialStore.
func (m Materials) Material(e batch.EntityID) (batch.Material, bool) { return m.Get(e) }

// Transforms stores entity model matrices. It implements
// pipeline.TransformStore.
type Transforms struct{ *Store[batch.Mat4] }

// NewTransforms creates an empty transform store.
func NewTransforms() Transforms { return Transforms{NewStore[batch.Mat4]()} }

// Transform implements pipeline.TransformStore.
func (t Transforms) Transform(e batch.EntityID) (batch.Mat4, bool) { return t.Get(e) }
