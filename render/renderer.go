// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"
	"log/slog"
	"maps"

	"github.com/gogpu/batch"
	"github.com/gogpu/batch/pipeline"
	"github.com/gogpu/batch/texbind"
)

// UniformLifecycle says how long a submitted uniform stays in effect.
type UniformLifecycle uint8

const (
	// LifecycleFrame uniforms are cleared after the next RenderScene.
	LifecycleFrame UniformLifecycle = iota
	// LifecycleRuntime uniforms persist until replaced.
	LifecycleRuntime
)

// Names of the uniforms the renderer fills itself.
const (
	UniformLorentzFlag    = "lorentzFlag"
	UniformView           = "view"
	UniformProjection     = "projection"
	UniformBeta           = "beta"
	UniformGamma          = "gamma"
	UniformChangeOfBasis  = "changeOfBasis"
	UniformInverseBasis   = "changeOfBasisInverse"
	UniformDebugFlag      = "debugFlag"
	UniformPolygonMode    = "polygonMode"
	UniformCameraPosition = "camera_position"
	UniformLightPosition  = "light_position"
	UniformLightAmbient   = "light_ambient"
	UniformLightDiffuse   = "light_diffuse"
	UniformLightSpecular  = "light_specular"
)

// Renderer drives one render pass per frame over a draw-call queue.
//
// Renderer is not safe for concurrent use.
type Renderer struct {
	config   Config
	log      *slog.Logger
	textures *texbind.TextureBinder

	runtime batch.UniformSet
	frame   batch.UniformSet

	width, height int
	light         Light
	last          batch.FrameStats
	frames        uint64
}

// New creates a renderer. It returns an error if the resulting
// configuration is invalid.
func New(opts ...Option) (*Renderer, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.config.Validate(); err != nil {
		return nil, err
	}
	r := &Renderer{
		log:     o.logger,
		runtime: batch.UniformSet{},
		frame:   batch.UniformSet{},
		width:   1600,
		height:  1200,
		light:   DefaultLight(),
	}
	if r.log == nil {
		r.log = batch.Logger()
	}
	r.applyConfig(o.config)
	return r, nil
}

// Config returns the active configuration.
func (r *Renderer) Config() Config { return r.config }

// Textures returns the texture binder shared by every pass.
func (r *Renderer) Textures() *texbind.TextureBinder { return r.textures }

// LastStats returns the statistics of the most recent completed pass.
func (r *Renderer) LastStats() batch.FrameStats { return r.last }

// Frames returns the number of completed passes.
func (r *Renderer) Frames() uint64 { return r.frames }

// SubmitUniform stores a uniform uploaded on every shader activation.
func (r *Renderer) SubmitUniform(name string, u batch.Uniform, lifecycle UniformLifecycle) {
	switch lifecycle {
	case LifecycleRuntime:
		r.runtime[name] = u
	default:
		r.frame[name] = u
	}
}

// SubmitConfig replaces the configuration. A change in texture unit budget
// replaces the texture binder.
func (r *Renderer) SubmitConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	r.applyConfig(cfg)
	return nil
}

func (r *Renderer) applyConfig(cfg Config) {
	if r.textures == nil || cfg.BinderCapacity() != r.config.BinderCapacity() {
		r.textures = texbind.New(cfg.BinderCapacity())
	}
	r.config = cfg
	r.SubmitUniform(UniformLorentzFlag, batch.Int(cfg.Mode), LifecycleRuntime)
	r.SubmitUniform(UniformDebugFlag, batch.Bool(cfg.Debug), LifecycleRuntime)
	r.SubmitUniform(UniformPolygonMode, batch.Int(cfg.PolygonMode), LifecycleRuntime)
	r.log.Info("render: config applied",
		"mode", cfg.Mode.String(),
		"polygon_mode", cfg.PolygonMode.String(),
		"debug", cfg.Debug,
		"texture_units", cfg.BinderCapacity())
}

// CycleMode switches to the next shading mode.
func (r *Renderer) CycleMode() {
	cfg := r.config
	cfg.Mode = cfg.Mode.Next()
	r.applyConfig(cfg)
}

// ToggleDebug flips the debug flag.
func (r *Renderer) ToggleDebug() {
	cfg := r.config
	cfg.Debug = !cfg.Debug
	r.applyConfig(cfg)
}

// SetLight replaces the scene light used by StartScene.
func (r *Renderer) SetLight(l Light) { r.light = l }

// SetDims resizes the viewport. Texture units are reset because resizing
// recreates the framebuffer attachments.
func (r *Renderer) SetDims(width, height int) {
	r.width, r.height = width, height
	r.textures.Refresh()
	r.log.Debug("render: resized", "width", width, "height", height)
}

// Dims returns the viewport size.
func (r *Renderer) Dims() (width, height int) { return r.width, r.height }

// StartScene fills the frame uniforms from the camera and the light.
func (r *Renderer) StartScene(cam Camera) {
	r.frame[UniformView] = cam.ViewMatrix()
	r.frame[UniformProjection] = cam.ProjectionMatrix(r.width, r.height)
	r.frame[UniformBeta] = batch.Float(cam.Beta())
	r.frame[UniformGamma] = batch.Float(cam.Gamma())
	r.frame[UniformChangeOfBasis] = cam.VelocityBasis()
	r.frame[UniformInverseBasis] = cam.VelocityInverseBasis()
	r.frame[UniformCameraPosition] = cam.Position
	r.frame[UniformLightPosition] = r.light.Position
	r.frame[UniformLightAmbient] = r.light.Ambient
	r.frame[UniformLightDiffuse] = r.light.Diffuse
	r.frame[UniformLightSpecular] = r.light.Specular
}

// FrameUniforms returns a copy of the pending frame uniforms.
func (r *Renderer) FrameUniforms() batch.UniformSet { return maps.Clone(r.frame) }

// RenderScene consumes q in one render pass and returns its statistics.
// Frame uniforms are cleared afterwards.
//
// A render fault panics unless Config.RecoverFaults is set, in which case
// the pass is abandoned, the texture binder is reset and the fault is
// returned as an error. Other panics are never recovered.
func (r *Renderer) RenderScene(q *batch.Queue, materials pipeline.MaterialStore, transforms pipeline.TransformStore, assets pipeline.AssetRegistry) (stats batch.FrameStats, err error) {
	defer clear(r.frame)
	if r.config.RecoverFaults {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			f, ok := batch.AsFault(v)
			if !ok {
				panic(v)
			}
			r.log.Error("render: frame aborted", "err", f.Error())
			r.textures.Refresh()
			stats, err = batch.FrameStats{}, fmt.Errorf("render: frame aborted: %w", f)
		}()
	}

	stats = r.pass(q.Consume(), materials, transforms, assets)
	r.last = stats
	r.frames++
	r.log.Debug("render: frame", "n", r.frames, "stats", stats.String())
	return stats, nil
}

func (r *Renderer) pass(c *batch.Consumer, materials pipeline.MaterialStore, transforms pipeline.TransformStore, assets pipeline.AssetRegistry) batch.FrameStats {
	ready := pipeline.New(c, assets, r.textures)
	for ready != nil {
		active := ready.BindGlobalUniforms(r.runtime, r.frame)
		ready = nil
		for ready == nil {
			flushed := active.IntakeNextCall(c, materials, transforms).Flush()
			switch next := flushed.Proceed(c).(type) {
			case *pipeline.ActivatedShader:
				active = next
			case *pipeline.ReadyToDraw:
				ready = next
			case *pipeline.Finished:
				return next.Stats
			}
		}
	}
	return batch.FrameStats{}
}

// Reset clears every texture unit and the frame uniforms, e.g. after the
// graphics context was lost.
func (r *Renderer) Reset() {
	r.textures.Refresh()
	clear(r.frame)
	r.log.Info("render: reset")
}
