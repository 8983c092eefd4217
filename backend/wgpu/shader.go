// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/batch"
	"github.com/gogpu/batch/instancing"
)

// ErrEmptyShader is returned when a shader description has no source.
var ErrEmptyShader = errors.New("wgpu: shader has no WGSL source")

// ShaderDesc describes a render pipeline.
type ShaderDesc struct {
	Label string
	WGSL  string

	// VertexEntry and FragmentEntry default to vs_main and fs_main.
	VertexEntry   string
	FragmentEntry string

	// Vertex is the per-vertex buffer layout at slot 0.
	Vertex gputypes.VertexBufferLayout

	// Instance is the per-instance layout at slot 1 for instanced meshes.
	// Its attributes follow the vertex attributes' shader locations.
	Instance instancing.Layout

	Uniforms UniformLayout

	// Format is the color target format, BGRA8Unorm by default.
	Format gputypes.TextureFormat
}

// CompileWGSL compiles WGSL source to SPIR-V words.
func CompileWGSL(src string) ([]uint32, error) {
	spirv, err := naga.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("wgpu: compile shader: %w", err)
	}
	words := make([]uint32, len(spirv)/4)
	for i := range words {
		words[i] = uint32(spirv[i*4]) |
			uint32(spirv[i*4+1])<<8 |
			uint32(spirv[i*4+2])<<16 |
			uint32(spirv[i*4+3])<<24
	}
	return words, nil
}

// Shader is a render pipeline with its uniform ring. It implements
// pipeline.Shader.
type Shader struct {
	dev    *Device
	label  string
	layout UniformLayout

	module         hal.ShaderModule
	groupLayout    hal.BindGroupLayout
	pipelineLayout hal.PipelineLayout
	pipeline       hal.RenderPipeline

	block []byte
	ring  uniformRing
}

// NewShader compiles desc and creates its pipeline and uniform ring.
func NewShader(dev *Device, desc ShaderDesc) (*Shader, error) {
	if desc.WGSL == "" {
		return nil, ErrEmptyShader
	}
	spirv, err := CompileWGSL(desc.WGSL)
	if err != nil {
		return nil, err
	}
	s := &Shader{
		dev:    dev,
		label:  desc.Label,
		layout: desc.Uniforms,
		block:  make([]byte, desc.Uniforms.Size()),
	}
	if err := s.create(desc, spirv); err != nil {
		s.Release()
		return nil, err
	}
	dev.track(s)
	slogger().Debug("wgpu: shader created", "label", desc.Label, "uniform_bytes", len(s.block))
	return s, nil
}

func (s *Shader) create(desc ShaderDesc, spirv []uint32) error {
	device := s.dev.device
	var err error

	s.module, err = device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  desc.Label,
		Source: hal.ShaderSource{SPIRV: spirv},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create shader module %q: %w", desc.Label, err)
	}

	s.groupLayout, err = device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: desc.Label + "_uniforms",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create bind group layout: %w", err)
	}

	s.pipelineLayout, err = device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            desc.Label + "_layout",
		BindGroupLayouts: []hal.BindGroupLayout{s.groupLayout},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create pipeline layout: %w", err)
	}

	format := desc.Format
	if format == gputypes.TextureFormatUndefined {
		format = gputypes.TextureFormatBGRA8Unorm
	}
	s.pipeline, err = device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  desc.Label,
		Layout: s.pipelineLayout,
		Vertex: hal.VertexState{
			Module:     s.module,
			EntryPoint: entry(desc.VertexEntry, "vs_main"),
			Buffers:    vertexBuffers(desc.Vertex, desc.Instance),
		},
		Fragment: &hal.FragmentState{
			Module:     s.module,
			EntryPoint: entry(desc.FragmentEntry, "fs_main"),
			Targets: []gputypes.ColorTargetState{
				{Format: format, WriteMask: gputypes.ColorWriteMaskAll},
			},
		},
		Multisample: gputypes.MultisampleState{Count: 1, Mask: 0xFFFFFFFF},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create render pipeline %q: %w", desc.Label, err)
	}

	return s.ring.init(s.dev, desc.Label, s.groupLayout, len(s.block))
}

func entry(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}

// vertexBuffers appends the instance layout, if any, after the vertex
// layout.
func vertexBuffers(vertex gputypes.VertexBufferLayout, instance instancing.Layout) []gputypes.VertexBufferLayout {
	vertex.StepMode = gputypes.VertexStepModeVertex
	buffers := []gputypes.VertexBufferLayout{vertex}
	if len(instance) == 0 {
		return buffers
	}
	var loc uint32
	for _, a := range vertex.Attributes {
		loc = max(loc, a.ShaderLocation+1)
	}
	return append(buffers, gputypes.VertexBufferLayout{
		ArrayStride: uint64(instance.Stride() * 4),
		StepMode:    gputypes.VertexStepModeInstance,
		Attributes:  instanceAttributes(instance, loc),
	})
}

// instanceAttributes maps instance attributes to vertex formats starting
// at shader location loc. Matrices take one location per column. Int
// attributes carry their bits in a float32 and are read with bitcast.
func instanceAttributes(l instancing.Layout, loc uint32) []gputypes.VertexAttribute {
	var attrs []gputypes.VertexAttribute
	var off uint64
	add := func(format gputypes.VertexFormat, words int) {
		attrs = append(attrs, gputypes.VertexAttribute{Format: format, Offset: off, ShaderLocation: loc})
		loc++
		off += uint64(words * 4)
	}
	for _, a := range l {
		switch a.Type {
		case instancing.Int, instancing.Float:
			add(gputypes.VertexFormatFloat32, 1)
		case instancing.Float2:
			add(gputypes.VertexFormatFloat32x2, 2)
		case instancing.Float3:
			add(gputypes.VertexFormatFloat32x3, 3)
		case instancing.Float4:
			add(gputypes.VertexFormatFloat32x4, 4)
		case instancing.Mat3:
			for range 3 {
				add(gputypes.VertexFormatFloat32x3, 3)
			}
		case instancing.Mat4:
			for range 4 {
				add(gputypes.VertexFormatFloat32x4, 4)
			}
		}
	}
	return attrs
}

// Label returns the shader's label.
func (s *Shader) Label() string { return s.label }

// Layout returns the uniform layout.
func (s *Shader) Layout() UniformLayout { return s.layout }

// Bind makes s the active pipeline.
func (s *Shader) Bind() {
	s.dev.shader = s
	if s.dev.pass != nil {
		s.dev.pass.SetPipeline(s.pipeline)
	}
}

// Unbind deactivates s if it is active.
func (s *Shader) Unbind() {
	if s.dev.shader == s {
		s.dev.shader = nil
	}
}

// SetUniform stores u in the uniform block. Names the shader does not
// declare are ignored.
func (s *Shader) SetUniform(name string, u batch.Uniform) {
	if err := s.layout.write(s.block, name, u); err != nil {
		slogger().Warn("wgpu: uniform rejected", "shader", s.label, "err", err)
	}
}

// SetTexture stores tex in the unit table.
func (s *Shader) SetTexture(unit uint32, tex batch.TextureID) {
	if !s.layout.setUnit(s.block, unit, tex) {
		slogger().Warn("wgpu: texture unit out of range", "shader", s.label, "unit", unit, "units", s.layout.Units())
	}
}

// ClearTexture empties a unit of the unit table.
func (s *Shader) ClearTexture(unit uint32) {
	s.layout.setUnit(s.block, unit, 0)
}

// Uniforms returns the current uniform block.
func (s *Shader) Uniforms() []byte { return s.block }

// flush uploads the uniform block to the next ring slot and returns its
// bind group.
func (s *Shader) flush() (hal.BindGroup, bool) {
	slot, grown, err := s.ring.next()
	if err != nil {
		slogger().Error("wgpu: uniform ring", "shader", s.label, "err", err)
		return nil, false
	}
	if grown {
		s.dev.stats.Grows++
		slogger().Debug("wgpu: uniform ring grown", "shader", s.label, "slots", s.ring.slots)
	}
	group, err := s.ring.group(slot)
	if err != nil {
		slogger().Error("wgpu: bind group", "shader", s.label, "err", err)
		return nil, false
	}
	s.dev.queue.WriteBuffer(s.ring.buffer, s.ring.offset(slot), s.block)
	s.dev.stats.Uploads++
	return group, true
}

// Release destroys the shader's GPU resources. It implements
// assets.Releaser.
func (s *Shader) Release() {
	device := s.dev.device
	s.dev.untrack(s)
	s.ring.release()
	if s.pipeline != nil {
		device.DestroyRenderPipeline(s.pipeline)
		s.pipeline = nil
	}
	if s.pipelineLayout != nil {
		device.DestroyPipelineLayout(s.pipelineLayout)
		s.pipelineLayout = nil
	}
	if s.groupLayout != nil {
		device.DestroyBindGroupLayout(s.groupLayout)
		s.groupLayout = nil
	}
	if s.module != nil {
		device.DestroyShaderModule(s.module)
		s.module = nil
	}
}
