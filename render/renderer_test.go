// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render_test

import (
	"errors"
	"io"
	"log/slog"
	"slices"
	"testing"

	"github.com/gogpu/batch"
	"github.com/gogpu/batch/assets"
	"github.com/gogpu/batch/recording"
	"github.com/gogpu/batch/render"
)

func quietRenderer(t *testing.T, opts ...render.Option) *render.Renderer {
	t.Helper()
	opts = append([]render.Option{render.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))}, opts...)
	r, err := render.New(opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return r
}

type world struct {
	rec        *recording.Recorder
	assets     *assets.Registry
	queue      *batch.Queue
	materials  assets.Materials
	transforms assets.Transforms
}

func newWorld() *world {
	w := &world{
		rec:        recording.NewRecorder(),
		queue:      batch.NewQueue(0),
		materials:  assets.NewMaterials(),
		transforms: assets.NewTransforms(),
	}
	w.rec.AutoDefine(4)
	w.assets = assets.NewRegistry(w.rec)
	return w
}

func (w *world) drawables(n int) []render.Drawable {
	var out []render.Drawable
	for i := range n {
		e := batch.EntityID(i + 1)
		w.transforms.Set(e, batch.Translate(float32(i), 0, 0))
		w.materials.Set(e, batch.Material{{Name: "diffuse", Value: batch.TextureRef(i + 1)}})
		out = append(out, render.Drawable{Entity: e, Shader: batch.ShaderID(i % 2), Mesh: batch.MeshID(i % 3)})
	}
	return out
}

func (w *world) render(t *testing.T, r *render.Renderer) (batch.FrameStats, error) {
	t.Helper()
	return r.RenderScene(w.queue, w.materials, w.transforms, w.assets)
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	_, err := render.New(render.WithTextureUnits(1))
	if !errors.Is(err, render.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestRenderSceneDrawsEveryDrawable(t *testing.T) {
	r := quietRenderer(t)
	w := newWorld()
	if n := render.Collect(w.queue, slices.Values(w.drawables(6))); n != 6 {
		t.Fatalf("expected 6 queued calls, got %d", n)
	}

	r.StartScene(render.DefaultCamera())
	stats, err := w.render(t, r)
	if err != nil {
		t.Fatalf("RenderScene: %v", err)
	}
	if stats.DrawCalls != 6 {
		t.Errorf("expected 6 draws, got %d", stats.DrawCalls)
	}
	if stats.ShaderBinds != 2 {
		t.Errorf("expected 2 shader binds, got %d", stats.ShaderBinds)
	}
	if stats.Polygons != 24 {
		t.Errorf("expected 24 polygons, got %d", stats.Polygons)
	}
	if r.LastStats() != stats {
		t.Errorf("expected LastStats %v, got %v", stats, r.LastStats())
	}
	if r.Frames() != 1 {
		t.Errorf("expected 1 frame, got %d", r.Frames())
	}
	if w.queue.Len() != 6 {
		t.Errorf("rendering must not remove calls, queue has %d", w.queue.Len())
	}
}

func TestRenderSceneUploadsGlobalUniformsPerShader(t *testing.T) {
	r := quietRenderer(t)
	w := newWorld()
	render.Collect(w.queue, slices.Values(w.drawables(4)))
	r.SubmitUniform("time", batch.Float(1.5), render.LifecycleFrame)
	r.StartScene(render.DefaultCamera())

	if _, err := w.render(t, r); err != nil {
		t.Fatal(err)
	}
	rec := w.rec.Finish()

	counts := map[string]int{}
	for _, c := range rec.Filter(recording.CmdSetUniform) {
		counts[c.(recording.SetUniformCommand).Name]++
	}
	for _, name := range []string{
		render.UniformLorentzFlag, render.UniformDebugFlag, render.UniformPolygonMode,
		render.UniformView, render.UniformGamma, render.UniformChangeOfBasis, "time",
	} {
		if counts[name] != 2 {
			t.Errorf("expected %s uploaded once per shader (2), got %d", name, counts[name])
		}
	}
	if counts["model"] != 4 {
		t.Errorf("expected model uploaded per call (4), got %d", counts["model"])
	}
}

func TestRenderSceneClearsFrameUniforms(t *testing.T) {
	r := quietRenderer(t)
	w := newWorld()
	r.SubmitUniform("runtime", batch.Int(3), render.LifecycleRuntime)
	r.SubmitUniform("frame", batch.Int(4), render.LifecycleFrame)
	r.StartScene(render.DefaultCamera())

	if _, err := w.render(t, r); err != nil {
		t.Fatal(err)
	}
	if n := len(r.FrameUniforms()); n != 0 {
		t.Errorf("expected frame uniforms cleared, %d left", n)
	}

	render.Collect(w.queue, slices.Values(w.drawables(1)))
	if _, err := w.render(t, r); err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, c := range w.rec.Finish().Filter(recording.CmdSetUniform) {
		names = append(names, c.(recording.SetUniformCommand).Name)
	}
	if !slices.Contains(names, "runtime") {
		t.Error("expected runtime uniform to persist across frames")
	}
	if slices.Contains(names, "frame") {
		t.Error("expected frame uniform to be dropped after the first frame")
	}
}

func TestEmptyQueueRendersNothing(t *testing.T) {
	r := quietRenderer(t)
	w := newWorld()
	stats, err := w.render(t, r)
	if err != nil {
		t.Fatal(err)
	}
	if stats != (batch.FrameStats{}) {
		t.Errorf("expected zero stats, got %v", stats)
	}
	if w.rec.Len() != 0 {
		t.Errorf("expected no commands, got %d", w.rec.Len())
	}
}

func TestRecoverFaults(t *testing.T) {
	w := newWorld()
	w.queue.Push(batch.DrawCall{Shader: 1, Mesh: 1, Entity: 99})

	cfg := render.DefaultConfig()
	cfg.RecoverFaults = true
	r := quietRenderer(t, render.WithConfig(cfg))
	r.Textures().GetSlot(5)

	_, err := w.render(t, r)
	var f *batch.Fault
	if !errors.As(err, &f) {
		t.Fatalf("expected a fault error, got %v", err)
	}
	if f.Kind != batch.FaultMissingTransform {
		t.Errorf("expected missing transform, got %v", f.Kind)
	}
	if r.Textures().Len() != 0 {
		t.Errorf("expected texture units reset after fault, %d bound", r.Textures().Len())
	}
	if r.Frames() != 0 {
		t.Errorf("expected aborted frame not counted, got %d", r.Frames())
	}
}

func TestFaultPanicsWithoutRecovery(t *testing.T) {
	w := newWorld()
	w.queue.Push(batch.DrawCall{Shader: 1, Mesh: 1, Entity: 99})
	r := quietRenderer(t)

	defer func() {
		f, ok := batch.AsFault(recover())
		if !ok || f.Kind != batch.FaultMissingTransform {
			t.Fatalf("expected missing transform panic, got %v", f)
		}
	}()
	w.render(t, r)
}

func TestSubmitConfig(t *testing.T) {
	r := quietRenderer(t)
	before := r.Textures()

	cfg := r.Config()
	cfg.Mode = render.ShadingLorentz
	if err := r.SubmitConfig(cfg); err != nil {
		t.Fatal(err)
	}
	if r.Textures() != before {
		t.Error("expected binder kept when capacity is unchanged")
	}

	cfg.TextureUnits = 8
	if err := r.SubmitConfig(cfg); err != nil {
		t.Fatal(err)
	}
	if got := r.Textures().Capacity(); got != 7 {
		t.Errorf("expected binder capacity 7, got %d", got)
	}

	cfg.ReservedUnits = 0
	if err := r.SubmitConfig(cfg); !errors.Is(err, render.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
	if r.Config().ReservedUnits != 1 {
		t.Error("invalid config must not be applied")
	}
}

func TestCycleModeAndToggleDebug(t *testing.T) {
	r := quietRenderer(t)
	r.CycleMode()
	r.CycleMode()
	if r.Config().Mode != render.ShadingRelativistic {
		t.Errorf("expected relativistic, got %v", r.Config().Mode)
	}
	r.CycleMode()
	if r.Config().Mode != render.ShadingClassical {
		t.Errorf("expected wrap to classical, got %v", r.Config().Mode)
	}
	r.ToggleDebug()
	if !r.Config().Debug {
		t.Error("expected debug enabled")
	}
}

func TestToggleDebugReachesShaders(t *testing.T) {
	r := quietRenderer(t)
	w := newWorld()
	r.ToggleDebug()
	render.Collect(w.queue, slices.Values(w.drawables(1)))
	r.StartScene(render.DefaultCamera())
	if _, err := w.render(t, r); err != nil {
		t.Fatal(err)
	}

	var last batch.Uniform
	for _, c := range w.rec.Finish().Filter(recording.CmdSetUniform) {
		if u := c.(recording.SetUniformCommand); u.Name == render.UniformDebugFlag {
			last = u.Value
		}
	}
	if last != batch.Bool(true) {
		t.Errorf("expected debugFlag true, got %v", last)
	}
}

func TestSetDimsResetsTextures(t *testing.T) {
	r := quietRenderer(t)
	r.Textures().GetSlot(1)
	r.Textures().GetSlot(2)
	r.SetDims(800, 600)
	if w, h := r.Dims(); w != 800 || h != 600 {
		t.Errorf("expected 800x600, got %dx%d", w, h)
	}
	if r.Textures().Len() != 0 {
		t.Errorf("expected no bound textures, got %d", r.Textures().Len())
	}
}

func TestStartSceneFillsCameraUniforms(t *testing.T) {
	r := quietRenderer(t)
	cam := render.DefaultCamera()
	cam.Velocity = batch.Vec3{0.6, 0, 0}
	r.StartScene(cam)

	u := r.FrameUniforms()
	if got, ok := u[render.UniformBeta].(batch.Float); !ok || got < 0.5999 || got > 0.6001 {
		t.Errorf("expected beta 0.6, got %v", u[render.UniformBeta])
	}
	if _, ok := u[render.UniformProjection].(batch.Mat4); !ok {
		t.Errorf("expected projection Mat4, got %T", u[render.UniformProjection])
	}
	if got := u[render.UniformChangeOfBasis]; got != cam.VelocityBasis() {
		t.Errorf("expected velocity basis, got %v", got)
	}
	if got := u[render.UniformInverseBasis]; got != cam.VelocityInverseBasis() {
		t.Errorf("expected inverse velocity basis, got %v", got)
	}
	if got := u[render.UniformLightPosition]; got != render.DefaultLight().Position {
		t.Errorf("expected default light position, got %v", got)
	}
}

func TestReleaseQueuesFree(t *testing.T) {
	q := batch.NewQueue(0)
	d := render.Drawable{Entity: 7, Shader: 1, Mesh: 2}
	render.Release(q, d)
	dc, ok := q.Consume().Next()
	if !ok || dc.Command != batch.CommandFree || dc.Entity != 7 {
		t.Errorf("expected Free for entity 7, got %v", dc)
	}
}

func TestCollectDiscardsEarlierRelease(t *testing.T) {
	q := batch.NewQueue(0)
	gone := render.Drawable{Entity: 7, Shader: 1, Mesh: 2}
	kept := render.Drawable{Entity: 8, Shader: 1, Mesh: 2}

	render.Release(q, gone)
	render.Collect(q, slices.Values([]render.Drawable{{Entity: 1, Shader: 1, Mesh: 2}}))
	render.Release(q, kept)

	var frees []batch.EntityID
	for dc := range q.All() {
		if dc.Command == batch.CommandFree {
			frees = append(frees, dc.Entity)
		}
	}
	if !slices.Equal(frees, []batch.EntityID{8}) {
		t.Errorf("expected only the Free queued after Collect, got %v", frees)
	}
	if q.Len() != 2 {
		t.Errorf("expected 2 queued calls, got %d", q.Len())
	}
}
