// Package batch is the draw-call batching and GPU state-binding core of a
// real-time 3D renderer.
//
// # Overview
//
// Producers push one DrawCall per visible entity into a Queue. The queue keeps
// calls ordered by shader, then mesh, then entity, then command, so that calls
// sharing GPU state sit next to each other. At render time the pipeline
// package walks the queue once through a Consumer and issues only the binds
// that changed since the previous call. The texbind package tracks which
// texture sits in which hardware unit so resident textures are not rebound.
//
// # Architecture
//
//   - batch: identities, DrawCall ordering, Queue, Uniform values, faults
//   - internal/arena: index-linked binary search tree backing the Queue
//   - texbind: generational LRU cache of texture units
//   - instancing: entity to instance-buffer offset tables
//   - pipeline: typestate render session (ReadyToDraw → ActivatedShader →
//     SaturatedDrawCall → FlushedDrawCall)
//   - render: per-frame driver holding global uniform sets and configuration
//   - assets: lazily populated shader/mesh registry and component stores
//   - recording, backend/wgpu: GPU backends
//
// # Faults
//
// Violated invariants (an empty queue inside a session, an oversubscribed
// texture cache, an identity missing from the asset registry) panic with a
// *Fault. They are not recoverable inside the core; the render driver may
// recover them at the frame boundary.
//
// # Concurrency
//
// Nothing in the core is safe for concurrent use. A frame is collected by a
// single producer phase and consumed by a single render pass.
package batch
