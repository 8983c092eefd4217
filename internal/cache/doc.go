// Package cache provides a generic LRU cache for built GPU handles.
//
// Entries are created on first use through GetOrCreate and evicted, oldest
// first, once the cache grows past its soft limit. An eviction callback
// lets owners release the GPU resources behind an evicted value.
//
//	c := cache.New[batch.ShaderID, pipeline.Shader](64)
//	c.OnEvict(func(id batch.ShaderID, s pipeline.Shader) { release(s) })
//	s, err := c.GetOrCreate(id, func() (pipeline.Shader, error) { return build(id) })
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
