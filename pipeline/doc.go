// Package pipeline walks an ordered draw-call queue once per frame and
// issues the minimum set of GPU state changes.
//
// A render pass is a strict cycle of steps. Each step is its own type and
// only exposes the transition that is legal from it:
//
//	ReadyToDraw     --BindGlobalUniforms--> ActivatedShader
//	ActivatedShader --IntakeNextCall------> SaturatedDrawCall
//	SaturatedDrawCall --Flush-------------> FlushedDrawCall
//	FlushedDrawCall --Proceed-------------> ActivatedShader | ReadyToDraw | Finished
//
// A step is spent once it transitions; calling any method on a spent step
// panics with a FaultStaleStep fault. A typical driver:
//
//	ready := pipeline.New(consumer, assets, textures)
//	for ready != nil {
//		active := ready.BindGlobalUniforms(frame, config)
//		ready = nil
//	loop:
//		for {
//			flushed := active.IntakeNextCall(consumer, materials, transforms).Flush()
//			switch next := flushed.Proceed(consumer).(type) {
//			case *pipeline.ActivatedShader:
//				active = next
//			case *pipeline.ReadyToDraw:
//				ready = next
//				break loop
//			case *pipeline.Finished:
//				stats = next.Stats
//				break loop
//			}
//		}
//	}
//
// Meshes implementing InstancedMesh take the instanced path: every queued
// call sharing the active shader and mesh is folded into the mesh's
// instance buffer and drawn with one instanced draw.
package pipeline
