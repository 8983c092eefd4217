package recording

import (
	"errors"
	"fmt"
	"slices"

	"github.com/gogpu/batch"
	"github.com/gogpu/batch/instancing"
	"github.com/gogpu/batch/pipeline"
)

// Errors returned by the recorder and by Playback.
var (
	ErrUnknownShader = errors.New("recording: unknown shader")
	ErrUnknownMesh   = errors.New("recording: unknown mesh")
	ErrNotInstanced  = errors.New("recording: mesh is not instanced")
)

// Recorder builds shader and mesh handles that append their operations to
// a shared command list. Handles must be defined before they are built.
//
// The Recorder is not safe for concurrent use.
type Recorder struct {
	commands []Command
	shaders  map[batch.ShaderID]*Shader
	meshes   map[batch.MeshID]pipeline.Mesh

	// autoPolygons, when positive, lets Build* define unknown identities
	// as plain meshes of that many polygons.
	autoPolygons int
}

// NewRecorder creates a recorder with no defined handles.
func NewRecorder() *Recorder {
	return &Recorder{
		commands: make([]Command, 0, 256),
		shaders:  make(map[batch.ShaderID]*Shader),
		meshes:   make(map[batch.MeshID]pipeline.Mesh),
	}
}

func (r *Recorder) record(c Command) {
	r.commands = append(r.commands, c)
}

// DefineShader makes a shader identity buildable.
func (r *Recorder) DefineShader(id batch.ShaderID) *Shader {
	s := &Shader{rec: r, id: id}
	r.shaders[id] = s
	return s
}

// DefineMesh makes a non-instanced mesh identity buildable.
func (r *Recorder) DefineMesh(id batch.MeshID, polygons int) *Mesh {
	m := &Mesh{rec: r, id: id, polygons: polygons}
	r.meshes[id] = m
	return m
}

// DefineInstancedMesh makes an instanced mesh identity buildable.
func (r *Recorder) DefineInstancedMesh(id batch.MeshID, polygons int, layout instancing.Layout) *InstancedMesh {
	m := &InstancedMesh{
		Mesh:  Mesh{rec: r, id: id, polygons: polygons},
		table: instancing.NewTable(layout),
	}
	r.meshes[id] = m
	return m
}

// AutoDefine makes BuildShader and BuildMesh define unknown identities on
// demand. Meshes defined this way are non-instanced with polygons
// polygons. Shader and Mesh stay strict.
func (r *Recorder) AutoDefine(polygons int) {
	r.autoPolygons = max(polygons, 1)
}

// Shader implements pipeline.AssetRegistry.
func (r *Recorder) Shader(id batch.ShaderID) (pipeline.Shader, bool) {
	s, ok := r.shaders[id]
	if !ok {
		return nil, false
	}
	return s, true
}

// Mesh implements pipeline.AssetRegistry.
func (r *Recorder) Mesh(id batch.MeshID) (pipeline.Mesh, bool) {
	m, ok := r.meshes[id]
	return m, ok
}

// BuildShader returns the defined shader for id.
func (r *Recorder) BuildShader(id batch.ShaderID) (pipeline.Shader, error) {
	s, ok := r.Shader(id)
	if !ok {
		if r.autoPolygons == 0 {
			return nil, fmt.Errorf("%w: %d", ErrUnknownShader, id)
		}
		s = r.DefineShader(id)
	}
	return s, nil
}

// BuildMesh returns the defined mesh for id.
func (r *Recorder) BuildMesh(id batch.MeshID) (pipeline.Mesh, error) {
	m, ok := r.Mesh(id)
	if !ok {
		if r.autoPolygons == 0 {
			return nil, fmt.Errorf("%w: %d", ErrUnknownMesh, id)
		}
		m = r.DefineMesh(id, r.autoPolygons)
	}
	return m, nil
}

// Len returns the number of commands recorded since the last Finish.
func (r *Recorder) Len() int { return len(r.commands) }

// Finish returns the commands recorded since the last Finish and starts a
// new list. Defined handles are kept.
func (r *Recorder) Finish() *Recording {
	rec := &Recording{commands: r.commands}
	r.commands = make([]Command, 0, cap(rec.commands))
	return rec
}

// --------------------------------------------------------------------------
// Handles
// --------------------------------------------------------------------------

// Shader is a recorded shader handle.
type Shader struct {
	rec *Recorder
	id  batch.ShaderID
}

// ID returns the shader identity.
func (s *Shader) ID() batch.ShaderID { return s.id }

// Bind implements pipeline.Shader.
func (s *Shader) Bind() { s.rec.record(BindShaderCommand{Shader: s.id}) }

// Unbind implements pipeline.Shader.
func (s *Shader) Unbind() { s.rec.record(UnbindShaderCommand{Shader: s.id}) }

// SetUniform implements pipeline.Shader.
func (s *Shader) SetUniform(name string, u batch.Uniform) {
	s.rec.record(SetUniformCommand{Shader: s.id, Name: name, Value: u})
}

// SetTexture implements pipeline.Shader.
func (s *Shader) SetTexture(unit uint32, tex batch.TextureID) {
	s.rec.record(SetTextureCommand{Shader: s.id, Unit: unit, Texture: tex})
}

// ClearTexture implements pipeline.Shader.
func (s *Shader) ClearTexture(unit uint32) {
	s.rec.record(ClearTextureCommand{Shader: s.id, Unit: unit})
}

// Mesh is a recorded mesh handle.
type Mesh struct {
	rec      *Recorder
	id       batch.MeshID
	polygons int
}

// ID returns the mesh identity.
func (m *Mesh) ID() batch.MeshID { return m.id }

// Bind implements pipeline.Mesh.
func (m *Mesh) Bind() { m.rec.record(BindMeshCommand{Mesh: m.id}) }

// Unbind implements pipeline.Mesh.
func (m *Mesh) Unbind() { m.rec.record(UnbindMeshCommand{Mesh: m.id}) }

// Draw implements pipeline.Mesh.
func (m *Mesh) Draw() { m.rec.record(DrawCommand{Mesh: m.id, Polygons: m.polygons}) }

// PolyCount implements pipeline.Mesh.
func (m *Mesh) PolyCount() int { return m.polygons }

// InstancedMesh is a recorded mesh with an instance buffer. The buffer
// contents are kept so tests can inspect them.
type InstancedMesh struct {
	Mesh
	table  *instancing.Table
	buffer []float32
}

// InstanceTable implements pipeline.InstancedMesh.
func (m *InstancedMesh) InstanceTable() *instancing.Table { return m.table }

// WriteInstance implements pipeline.InstancedMesh.
func (m *InstancedMesh) WriteInstance(offset int, data []float32) {
	if need := offset + len(data); need > len(m.buffer) {
		m.buffer = slices.Grow(m.buffer, need-len(m.buffer))[:need]
	}
	copy(m.buffer[offset:], data)
	m.rec.record(WriteInstanceCommand{Mesh: m.id, Offset: offset, Data: slices.Clone(data)})
}

// ClearInstance implements pipeline.InstancedMesh.
func (m *InstancedMesh) ClearInstance(offset int) {
	end := min(offset+m.table.Stride(), len(m.buffer))
	if offset < end {
		clear(m.buffer[offset:end])
	}
	m.rec.record(ClearInstanceCommand{Mesh: m.id, Offset: offset})
}

// DrawInstanced implements pipeline.InstancedMesh.
func (m *InstancedMesh) DrawInstanced(count int) {
	m.rec.record(DrawInstancedCommand{Mesh: m.id, Count: count})
}

// Buffer returns the instance buffer contents.
func (m *InstancedMesh) Buffer() []float32 { return m.buffer }
