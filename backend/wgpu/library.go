// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/batch"
	"github.com/gogpu/batch/pipeline"
)

// Library errors.
var (
	ErrUndefinedShader = errors.New("wgpu: shader not defined")
	ErrUndefinedMesh   = errors.New("wgpu: mesh not defined")
)

// Library maps identities to descriptions and builds GPU handles from
// them. It implements assets.Builder.
type Library struct {
	dev     *Device
	shaders map[batch.ShaderID]ShaderDesc
	meshes  map[batch.MeshID]MeshDesc
}

// NewLibrary creates an empty library on dev.
func NewLibrary(dev *Device) *Library {
	return &Library{
		dev:     dev,
		shaders: make(map[batch.ShaderID]ShaderDesc),
		meshes:  make(map[batch.MeshID]MeshDesc),
	}
}

// Device returns the library's device.
func (l *Library) Device() *Device { return l.dev }

// DefineShader registers the description built for id.
func (l *Library) DefineShader(id batch.ShaderID, desc ShaderDesc) {
	if desc.Label == "" {
		desc.Label = fmt.Sprintf("shader_%d", id)
	}
	l.shaders[id] = desc
}

// DefineMesh registers the description built for id.
func (l *Library) DefineMesh(id batch.MeshID, desc MeshDesc) {
	if desc.Label == "" {
		desc.Label = fmt.Sprintf("mesh_%d", id)
	}
	l.meshes[id] = desc
}

// BuildShader compiles the shader defined for id.
func (l *Library) BuildShader(id batch.ShaderID) (pipeline.Shader, error) {
	desc, ok := l.shaders[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUndefinedShader, id)
	}
	return NewShader(l.dev, desc)
}

// BuildMesh uploads the mesh defined for id.
func (l *Library) BuildMesh(id batch.MeshID) (pipeline.Mesh, error) {
	desc, ok := l.meshes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUndefinedMesh, id)
	}
	if len(desc.Instance) > 0 {
		return NewInstancedMesh(l.dev, desc)
	}
	return NewMesh(l.dev, desc)
}
