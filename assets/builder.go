package assets

import (
	"fmt"
	"sort"
	"sync"

	"github.com/gogpu/batch"
	"github.com/gogpu/batch/pipeline"
)

// Builder creates GPU handles for identities. Implementations are GPU
// backends.
type Builder interface {
	BuildShader(id batch.ShaderID) (pipeline.Shader, error)
	BuildMesh(id batch.MeshID) (pipeline.Mesh, error)
}

// Releaser is implemented by handles that own GPU resources. The registry
// calls Release when a handle leaves its cache.
type Releaser interface {
	Release()
}

// BuilderFactory is a function that creates a new builder instance.
// Factories are registered via RegisterBuilder and called by NewBuilder.
type BuilderFactory func() Builder

// Registry state - protected by mutex for thread-safe access.
var (
	buildersMu sync.RWMutex
	builders   = make(map[string]BuilderFactory)
)

// RegisterBuilder registers a builder factory with the given name.
// This function is typically called from init() in backend packages.
//
// RegisterBuilder panics if factory is nil or if a builder with the same
// name is already registered.
func RegisterBuilder(name string, factory BuilderFactory) {
	buildersMu.Lock()
	defer buildersMu.Unlock()

	if factory == nil {
		panic("assets: RegisterBuilder factory is nil")
	}
	if _, dup := builders[name]; dup {
		panic("assets: RegisterBuilder called twice for " + name)
	}
	builders[name] = factory
}

// UnregisterBuilder removes a builder from the registry.
// If the builder is not registered, this is a no-op.
func UnregisterBuilder(name string) {
	buildersMu.Lock()
	defer buildersMu.Unlock()
	delete(builders, name)
}

// NewBuilder creates a new builder instance by name.
// Returns an error if the builder is not registered.
func NewBuilder(name string) (Builder, error) {
	buildersMu.RLock()
	factory, ok := builders[name]
	buildersMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("assets: unknown builder %q (forgotten import?)", name)
	}
	return factory(), nil
}

// Builders returns a sorted list of registered builder names.
func Builders() []string {
	buildersMu.RLock()
	defer buildersMu.RUnlock()

	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
