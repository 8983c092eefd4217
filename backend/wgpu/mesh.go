// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/batch/instancing"
)

// ErrEmptyMesh is returned when a mesh description has no vertices.
var ErrEmptyMesh = errors.New("wgpu: mesh has no vertices")

// MeshDesc describes a vertex buffer. The vertex format must match the
// Vertex layout of the shaders that draw it.
type MeshDesc struct {
	Label       string
	Vertices    []byte
	VertexCount uint32

	// Polygons defaults to VertexCount/3.
	Polygons int

	// Instance makes the mesh instanced with this per-instance layout.
	Instance instancing.Layout
}

// Mesh is an uploaded vertex buffer. It implements pipeline.Mesh.
type Mesh struct {
	dev      *Device
	label    string
	vertices hal.Buffer
	count    uint32
	polygons int
}

// NewMesh uploads desc's vertices. desc.Instance is ignored; use
// NewInstancedMesh for instanced meshes.
func NewMesh(dev *Device, desc MeshDesc) (*Mesh, error) {
	if len(desc.Vertices) == 0 || desc.VertexCount == 0 {
		return nil, ErrEmptyMesh
	}
	buf, err := dev.device.CreateBuffer(&hal.BufferDescriptor{
		Label: desc.Label + "_vertices",
		Size:  uint64(len(desc.Vertices)),
		Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create vertex buffer %q: %w", desc.Label, err)
	}
	dev.queue.WriteBuffer(buf, 0, desc.Vertices)
	polys := desc.Polygons
	if polys == 0 {
		polys = int(desc.VertexCount / 3)
	}
	return &Mesh{dev: dev, label: desc.Label, vertices: buf, count: desc.VertexCount, polygons: polys}, nil
}

// Label returns the mesh's label.
func (m *Mesh) Label() string { return m.label }

// VertexCount returns the number of vertices drawn per instance.
func (m *Mesh) VertexCount() uint32 { return m.count }

// Bind makes m the active mesh.
func (m *Mesh) Bind() {
	m.dev.mesh = m
	if m.dev.pass != nil {
		m.dev.pass.SetVertexBuffer(0, m.vertices, 0)
	}
}

// Unbind deactivates m if it is active.
func (m *Mesh) Unbind() {
	if m.dev.mesh == m {
		m.dev.mesh = nil
	}
}

// Draw draws the mesh once with the active shader.
func (m *Mesh) Draw() { m.dev.draw(m.count, 1) }

// PolyCount returns the number of triangles in the mesh.
func (m *Mesh) PolyCount() int { return m.polygons }

// Release destroys the vertex buffer. It implements assets.Releaser.
func (m *Mesh) Release() {
	if m.dev.mesh == m {
		m.dev.mesh = nil
	}
	if m.vertices != nil {
		m.dev.device.DestroyBuffer(m.vertices)
		m.vertices = nil
	}
}

// InstancedMesh is a mesh with a per-instance attribute buffer at vertex
// slot 1. It implements pipeline.InstancedMesh.
type InstancedMesh struct {
	*Mesh

	table  *instancing.Table
	shadow []float32
	bytes  []byte
	dirty  bool

	instances hal.Buffer
	capacity  int
}

// NewInstancedMesh uploads desc's vertices and prepares an instance table
// for desc.Instance.
func NewInstancedMesh(dev *Device, desc MeshDesc) (*InstancedMesh, error) {
	if len(desc.Instance) == 0 {
		return nil, fmt.Errorf("wgpu: mesh %q has no instance layout", desc.Label)
	}
	m, err := NewMesh(dev, desc)
	if err != nil {
		return nil, err
	}
	return &InstancedMesh{Mesh: m, table: instancing.NewTable(desc.Instance)}, nil
}

// InstanceTable returns the entity to offset table.
func (m *InstancedMesh) InstanceTable() *instancing.Table { return m.table }

// WriteInstance stores data at offset words of the instance buffer.
func (m *InstancedMesh) WriteInstance(offset int, data []float32) {
	if end := offset + len(data); end > len(m.shadow) {
		m.shadow = append(m.shadow, make([]float32, end-len(m.shadow))...)
	}
	copy(m.shadow[offset:], data)
	m.dirty = true
}

// ClearInstance zeroes the instance at offset.
func (m *InstancedMesh) ClearInstance(offset int) {
	end := min(offset+m.table.Stride(), len(m.shadow))
	if offset >= end {
		return
	}
	clear(m.shadow[offset:end])
	m.dirty = true
}

// DrawInstanced uploads pending instance data and draws count instances.
func (m *InstancedMesh) DrawInstanced(count int) {
	if count <= 0 {
		return
	}
	if err := m.upload(); err != nil {
		slogger().Error("wgpu: instance upload", "mesh", m.label, "err", err)
		m.dev.stats.Dropped++
		return
	}
	if m.dev.pass != nil && m.instances != nil {
		m.dev.pass.SetVertexBuffer(1, m.instances, 0)
	}
	m.dev.draw(m.count, uint32(count))
}

func (m *InstancedMesh) upload() error {
	if !m.dirty || len(m.shadow) == 0 {
		return nil
	}
	m.bytes = m.bytes[:0]
	for _, f := range m.shadow {
		m.bytes = binary.LittleEndian.AppendUint32(m.bytes, math.Float32bits(f))
	}
	if len(m.bytes) > m.capacity {
		if err := m.grow(len(m.bytes)); err != nil {
			return err
		}
	}
	m.dev.queue.WriteBuffer(m.instances, 0, m.bytes)
	m.dirty = false
	return nil
}

func (m *InstancedMesh) grow(need int) error {
	size := max(need, m.capacity*2, 256)
	buf, err := m.dev.device.CreateBuffer(&hal.BufferDescriptor{
		Label: m.label + "_instances",
		Size:  uint64(size),
		Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create instance buffer: %w", err)
	}
	if m.instances != nil {
		m.dev.device.DestroyBuffer(m.instances)
	}
	m.instances, m.capacity = buf, size
	return nil
}

// Release destroys the vertex and instance buffers.
func (m *InstancedMesh) Release() {
	if m.instances != nil {
		m.dev.device.DestroyBuffer(m.instances)
		m.instances = nil
	}
	m.Mesh.Release()
}
