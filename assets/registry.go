package assets

import (
	"errors"
	"fmt"

	"github.com/gogpu/batch"
	"github.com/gogpu/batch/internal/cache"
	"github.com/gogpu/batch/pipeline"
)

// Registry lazily builds and caches shader and mesh handles. It implements
// pipeline.AssetRegistry.
//
// With a soft limit, least recently used handles are released when a new
// handle is built past the limit. The limit must be at least the number of
// shaders (or meshes) a single frame uses.
type Registry struct {
	builder Builder
	shaders *cache.Cache[batch.ShaderID, pipeline.Shader]
	meshes  *cache.Cache[batch.MeshID, pipeline.Mesh]
}

// RegistryOption configures a Registry.
type RegistryOption func(*registryOptions)

type registryOptions struct {
	shaderLimit int
	meshLimit   int
}

// WithShaderLimit sets the soft limit on cached shaders. 0 means unlimited.
func WithShaderLimit(n int) RegistryOption {
	return func(o *registryOptions) { o.shaderLimit = n }
}

// WithMeshLimit sets the soft limit on cached meshes. 0 means unlimited.
func WithMeshLimit(n int) RegistryOption {
	return func(o *registryOptions) { o.meshLimit = n }
}

// NewRegistry creates a registry over b.
func NewRegistry(b Builder, opts ...RegistryOption) *Registry {
	var o registryOptions
	for _, opt := range opts {
		opt(&o)
	}
	r := &Registry{
		builder: b,
		shaders: cache.New[batch.ShaderID, pipeline.Shader](o.shaderLimit),
		meshes:  cache.New[batch.MeshID, pipeline.Mesh](o.meshLimit),
	}
	r.shaders.OnEvict(func(id batch.ShaderID, s pipeline.Shader) {
		slogger().Debug("assets: release shader", "shader", id)
		release(s)
	})
	r.meshes.OnEvict(func(id batch.MeshID, m pipeline.Mesh) {
		slogger().Debug("assets: release mesh", "mesh", id)
		release(m)
	})
	return r
}

func release(h any) {
	if rel, ok := h.(Releaser); ok {
		rel.Release()
	}
}

// Shader implements pipeline.AssetRegistry. A build failure is logged and
// reported as a miss.
func (r *Registry) Shader(id batch.ShaderID) (pipeline.Shader, bool) {
	s, err := r.BuildShader(id)
	if err != nil {
		slogger().Error("assets: build shader", "shader", id, "err", err)
		return nil, false
	}
	return s, true
}

// Mesh implements pipeline.AssetRegistry. A build failure is logged and
// reported as a miss.
func (r *Registry) Mesh(id batch.MeshID) (pipeline.Mesh, bool) {
	m, err := r.BuildMesh(id)
	if err != nil {
		slogger().Error("assets: build mesh", "mesh", id, "err", err)
		return nil, false
	}
	return m, true
}

// BuildShader returns the cached shader for id, building it on first use.
func (r *Registry) BuildShader(id batch.ShaderID) (pipeline.Shader, error) {
	return r.shaders.GetOrCreate(id, func() (pipeline.Shader, error) {
		slogger().Debug("assets: build shader", "shader", id)
		return r.builder.BuildShader(id)
	})
}

// BuildMesh returns the cached mesh for id, building it on first use.
func (r *Registry) BuildMesh(id batch.MeshID) (pipeline.Mesh, error) {
	return r.meshes.GetOrCreate(id, func() (pipeline.Mesh, error) {
		slogger().Debug("assets: build mesh", "mesh", id)
		return r.builder.BuildMesh(id)
	})
}

// Preload builds every listed handle ahead of the first frame, so that a
// missing asset surfaces as an error instead of a render fault.
func (r *Registry) Preload(shaders []batch.ShaderID, meshes []batch.MeshID) error {
	var errs []error
	for _, id := range shaders {
		if _, err := r.BuildShader(id); err != nil {
			errs = append(errs, fmt.Errorf("shader %d: %w", id, err))
		}
	}
	for _, id := range meshes {
		if _, err := r.BuildMesh(id); err != nil {
			errs = append(errs, fmt.Errorf("mesh %d: %w", id, err))
		}
	}
	return errors.Join(errs...)
}

// ReleaseShader drops and releases a cached shader.
func (r *Registry) ReleaseShader(id batch.ShaderID) bool { return r.shaders.Delete(id) }

// ReleaseMesh drops and releases a cached mesh.
func (r *Registry) ReleaseMesh(id batch.MeshID) bool { return r.meshes.Delete(id) }

// Clear releases every cached handle, e.g. on context loss.
func (r *Registry) Clear() {
	r.shaders.Clear()
	r.meshes.Clear()
}

// Stats returns the shader and mesh cache statistics.
func (r *Registry) Stats() (shaders, meshes cache.Stats) {
	return r.shaders.Stats(), r.meshes.Stats()
}
