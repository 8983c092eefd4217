package pipeline

import (
	"maps"
	"slices"

	"github.com/gogpu/batch"
	"github.com/gogpu/batch/texbind"
)

// ModelUniform receives the entity's transform on the non-instanced path.
const ModelUniform = "model"

// gpuState is the mutable session shared by the steps of one render pass.
type gpuState struct {
	assets   AssetRegistry
	textures *texbind.TextureBinder

	shaderID  batch.ShaderID
	meshID    batch.MeshID
	shader    Shader
	mesh      Mesh
	instanced InstancedMesh

	// globals are the texture uniforms of the active shader's global sets.
	globals []globalTexture

	// drawPending is set when the saturated call must issue a draw.
	drawPending bool
	scratch     []float32
	stats       batch.FrameStats
}

func (s *gpuState) bindShader(dc batch.DrawCall) {
	sh, ok := s.assets.Shader(dc.Shader)
	if !ok {
		batch.ThrowCall(batch.FaultMissingShader, dc, "shader not registered")
	}
	if s.shader != nil {
		s.shader.Unbind()
	}
	s.shaderID, s.shader = dc.Shader, sh
	sh.Bind()
	s.stats.ShaderBinds++
	slogger().Debug("pipeline: bind shader", "shader", dc.Shader)
}

func (s *gpuState) bindMesh(dc batch.DrawCall) {
	m, ok := s.assets.Mesh(dc.Mesh)
	if !ok {
		batch.ThrowCall(batch.FaultMissingMesh, dc, "mesh not registered")
	}
	if s.mesh != nil {
		s.mesh.Unbind()
	}
	s.meshID, s.mesh = dc.Mesh, m
	s.instanced, _ = m.(InstancedMesh)
	m.Bind()
	s.stats.MeshBinds++
}

// clearTextures empties every texture unit on the bound shader and resets
// the binder.
func (s *gpuState) clearTextures() {
	for unit := range s.textures.BoundSlots() {
		s.shader.ClearTexture(unit)
	}
	s.textures.Refresh()
}

type globalTexture struct {
	name string
	tex  batch.TextureID
}

func (s *gpuState) uploadGlobals(sets []batch.UniformSet) {
	s.globals = s.globals[:0]
	for _, set := range sets {
		for _, name := range slices.Sorted(maps.Keys(set)) {
			u := set[name]
			if tex, ok := batch.TextureOf(u); ok {
				s.globals = append(s.globals, globalTexture{name, tex})
			}
			s.uploadUniform(name, u)
		}
	}
}

// nextGeneration makes textures of earlier calls evictable. Global
// textures are requested again so they stay resident for the rest of the
// shader run, and their samplers are pointed at their current units.
func (s *gpuState) nextGeneration() {
	s.textures.IncrementGeneration()
	for _, g := range s.globals {
		s.textures.Bind(s, g.name, g.tex)
	}
}

func (s *gpuState) uploadUniform(name string, u batch.Uniform) {
	if tex, ok := batch.TextureOf(u); ok {
		s.textures.Bind(s, name, tex)
		return
	}
	s.shader.SetUniform(name, u)
}

// SetTexture implements texbind.TextureSetter.
func (s *gpuState) SetTexture(unit uint32, tex batch.TextureID) {
	s.shader.SetTexture(unit, tex)
	s.stats.TextureBinds++
}

// SetUniform implements texbind.TextureSetter.
func (s *gpuState) SetUniform(name string, u batch.Uniform) {
	s.shader.SetUniform(name, u)
}

// resolveUnit places tex in a unit for the instance payload.
func (s *gpuState) resolveUnit(_ string, tex batch.TextureID) uint32 {
	unit, fresh := s.textures.GetSlot(tex)
	if fresh {
		s.SetTexture(unit, tex)
	}
	return unit
}

func (s *gpuState) lookup(dc batch.DrawCall, materials MaterialStore, transforms TransformStore) (batch.Mat4, batch.Material) {
	model, ok := transforms.Transform(dc.Entity)
	if !ok {
		batch.ThrowCall(batch.FaultMissingTransform, dc, "")
	}
	mtl, ok := materials.Material(dc.Entity)
	if !ok {
		batch.ThrowCall(batch.FaultMissingMaterial, dc, "")
	}
	return model, mtl
}

func (s *gpuState) intakeCall(dc batch.DrawCall, materials MaterialStore, transforms TransformStore) {
	if dc.Command == batch.CommandFree {
		return
	}
	model, mtl := s.lookup(dc, materials, transforms)
	s.shader.SetUniform(ModelUniform, model)
	for _, nu := range mtl {
		s.uploadUniform(nu.Name, nu.Value)
	}
	s.drawPending = true
}

func (s *gpuState) intakeInstance(dc batch.DrawCall, materials MaterialStore, transforms TransformStore) {
	table := s.instanced.InstanceTable()
	if dc.Command == batch.CommandFree {
		if off, ok := table.Remove(dc.Entity); ok {
			s.instanced.ClearInstance(off)
		}
		return
	}
	model, mtl := s.lookup(dc, materials, transforms)
	off := table.Upsert(dc.Entity)
	if cap(s.scratch) < table.Stride() {
		s.scratch = make([]float32, table.Stride())
	}
	buf := s.scratch[:table.Stride()]
	table.Pack(buf, model, mtl, s.resolveUnit)
	s.instanced.WriteInstance(off, buf)
	s.drawPending = true
}

func (s *gpuState) draw() {
	if !s.drawPending {
		return
	}
	s.drawPending = false
	polys := s.mesh.PolyCount()
	if s.instanced != nil {
		table := s.instanced.InstanceTable()
		s.instanced.DrawInstanced(table.Count())
		s.stats.Instances += table.Len()
		s.stats.Polygons += polys * table.Len()
	} else {
		s.mesh.Draw()
		s.stats.Polygons += polys
	}
	s.stats.DrawCalls++
}

func (s *gpuState) finish() batch.FrameStats {
	if s.mesh != nil {
		s.mesh.Unbind()
	}
	if s.shader != nil {
		s.shader.Unbind()
	}
	s.textures.IncrementGeneration()
	slogger().Debug("pipeline: pass finished", "stats", s.stats.String())
	return s.stats
}
