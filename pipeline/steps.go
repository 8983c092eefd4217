package pipeline

import (
	"github.com/gogpu/batch"
	"github.com/gogpu/batch/texbind"
)

// Step is the result of FlushedDrawCall.Proceed: a *ReadyToDraw, an
// *ActivatedShader or a *Finished.
type Step interface {
	isStep()
}

// session is embedded by every live step. It hands the shared state to
// exactly one successor.
type session struct {
	state *gpuState
}

func (*session) isStep() {}

func (s *session) take(step string) *gpuState {
	if s.state == nil {
		batch.Throw(&batch.Fault{Kind: batch.FaultStaleStep, Detail: step + " already transitioned"})
	}
	st := s.state
	s.state = nil
	return st
}

// ReadyToDraw has the shader and mesh of the next call bound, but no
// uniforms uploaded.
type ReadyToDraw struct{ session }

// ActivatedShader has global uniforms uploaded and accepts draw calls.
type ActivatedShader struct{ session }

// SaturatedDrawCall has every uniform of the next draw uploaded.
type SaturatedDrawCall struct{ session }

// FlushedDrawCall has issued its draw.
type FlushedDrawCall struct{ session }

// Finished is the terminal step of a pass.
type Finished struct {
	Stats batch.FrameStats
}

func (*Finished) isStep() {}

// New opens a render pass over c. It returns nil when the queue has
// nothing left to draw. Otherwise the first call's shader and mesh are
// bound and every texture unit is cleared.
func New(c *batch.Consumer, assets AssetRegistry, textures *texbind.TextureBinder) *ReadyToDraw {
	dc, ok := c.Peek()
	if !ok {
		return nil
	}
	s := &gpuState{assets: assets, textures: textures}
	s.bindShader(dc)
	s.bindMesh(dc)
	s.clearTextures()
	return &ReadyToDraw{session{s}}
}

// BindGlobalUniforms uploads frame-global uniform sets to the bound
// shader. Within a set, uniforms are uploaded in name order; texture
// uniforms are placed through the texture binder and stay resident until
// the shader is deactivated.
func (r *ReadyToDraw) BindGlobalUniforms(sets ...batch.UniformSet) *ActivatedShader {
	s := r.take("ReadyToDraw")
	s.uploadGlobals(sets)
	return &ActivatedShader{session{s}}
}

// IntakeNextCall pops the next call and uploads its model matrix and
// material. On an instanced mesh it instead writes the entity's instance
// and keeps popping calls for the same shader and mesh.
//
// Popping an exhausted queue panics with a FaultEmptyQueue fault.
func (a *ActivatedShader) IntakeNextCall(c *batch.Consumer, materials MaterialStore, transforms TransformStore) *SaturatedDrawCall {
	s := a.take("ActivatedShader")
	dc, ok := c.Next()
	if !ok {
		batch.Throw(&batch.Fault{Kind: batch.FaultEmptyQueue, Detail: "IntakeNextCall on an exhausted queue"})
	}
	if s.instanced == nil {
		s.intakeCall(dc, materials, transforms)
		return &SaturatedDrawCall{session{s}}
	}
	s.intakeInstance(dc, materials, transforms)
	for {
		next, ok := c.PopIf(dc.SameState)
		if !ok {
			break
		}
		s.intakeInstance(next, materials, transforms)
	}
	return &SaturatedDrawCall{session{s}}
}

// Flush issues the draw for the saturated call. Free commands on a
// non-instanced mesh draw nothing.
func (sd *SaturatedDrawCall) Flush() *FlushedDrawCall {
	s := sd.take("SaturatedDrawCall")
	s.draw()
	return &FlushedDrawCall{session{s}}
}

// Proceed looks at the next queued call. When the queue is exhausted the
// pass ends with *Finished. A call for the active shader continues with
// *ActivatedShader; its mesh is bound if it differs and textures from
// earlier calls become evictable, except those of the global uniform sets.
// Any other shader clears the texture
// units, binds the new shader and mesh, and continues with *ReadyToDraw.
func (f *FlushedDrawCall) Proceed(c *batch.Consumer) Step {
	s := f.take("FlushedDrawCall")
	next, ok := c.Peek()
	if !ok {
		return &Finished{Stats: s.finish()}
	}
	if next.Shader == s.shaderID {
		if next.Mesh != s.meshID {
			s.bindMesh(next)
		}
		s.nextGeneration()
		return &ActivatedShader{session{s}}
	}
	s.clearTextures()
	s.bindShader(next)
	s.bindMesh(next)
	return &ReadyToDraw{session{s}}
}
