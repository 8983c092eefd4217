package pipeline

import (
	"github.com/gogpu/batch"
	"github.com/gogpu/batch/instancing"
)

// Shader is a built shader program.
type Shader interface {
	Bind()
	Unbind()
	SetUniform(name string, u batch.Uniform)
	SetTexture(unit uint32, tex batch.TextureID)
	ClearTexture(unit uint32)
}

// Mesh is a built vertex array.
type Mesh interface {
	Bind()
	Unbind()
	Draw()
	PolyCount() int
}

// InstancedMesh is a mesh drawn from a per-instance attribute buffer.
// Offsets are in 4-byte words, as returned by its instance table.
type InstancedMesh interface {
	Mesh
	InstanceTable() *instancing.Table
	WriteInstance(offset int, data []float32)
	ClearInstance(offset int)
	DrawInstanced(count int)
}

// AssetRegistry resolves identities to built handles.
type AssetRegistry interface {
	Shader(id batch.ShaderID) (Shader, bool)
	Mesh(id batch.MeshID) (Mesh, bool)
}

// MaterialStore returns an entity's material.
type MaterialStore interface {
	Material(e batch.EntityID) (batch.Material, bool)
}

// TransformStore returns an entity's model matrix.
type TransformStore interface {
	Transform(e batch.EntityID) (batch.Mat4, bool)
}
