// Command batchdemo renders a synthetic scene through the batching
// pipeline against the recording backend and reports what the GPU would
// have been asked to do.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math/rand/v2"
	"os"
	"slices"

	"github.com/schollz/progressbar/v3"

	"github.com/gogpu/batch"
	"github.com/gogpu/batch/assets"
	"github.com/gogpu/batch/instancing"
	"github.com/gogpu/batch/recording"
	"github.com/gogpu/batch/render"
)

// instancedMesh is the mesh identity drawn through the instanced path.
const instancedMesh batch.MeshID = 0

func main() {
	var (
		configPath = flag.String("config", "", "renderer config file (.yaml or .toml)")
		frames     = flag.Int("frames", 120, "number of frames to render")
		entities   = flag.Int("entities", 2000, "number of drawable entities")
		shaders    = flag.Int("shaders", 6, "number of distinct shaders")
		meshes     = flag.Int("meshes", 24, "number of distinct meshes")
		textures   = flag.Int("textures", 64, "number of distinct textures")
		churn      = flag.Float64("churn", 0.01, "fraction of entities replaced per frame")
		seed       = flag.Uint64("seed", 1, "random seed")
		verbose    = flag.Bool("v", false, "log at debug level")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	batch.SetLogger(logger)

	cfg := render.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = render.LoadConfig(*configPath); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}
	cfg.RecoverFaults = true

	r, err := render.New(render.WithConfig(cfg), render.WithLogger(logger))
	if err != nil {
		log.Fatalf("Failed to create renderer: %v", err)
	}

	builder, err := assets.NewBuilder(recording.BuilderName)
	if err != nil {
		log.Fatalf("Failed to create builder: %v", err)
	}
	rec := builder.(*recording.Recorder)
	rec.AutoDefine(12)
	rec.DefineInstancedMesh(instancedMesh, 12, instancing.Layout{
		{Name: instancing.ModelAttribute, Type: instancing.Mat4},
		{Name: "diffuse", Type: instancing.Int},
	})
	reg := assets.NewRegistry(rec, assets.WithShaderLimit(*shaders), assets.WithMeshLimit(*meshes))

	s := newScene(rand.New(rand.NewPCG(*seed, *seed^0x9e3779b97f4a7c15)), *shaders, *meshes, *textures)
	for range *entities {
		s.spawn()
	}

	queue := batch.NewQueue(*entities)
	cam := render.DefaultCamera()
	cam.Position = batch.Vec3{0, 5, 40}

	var total batch.FrameStats
	aborted := 0
	bar := progressbar.Default(int64(*frames), "rendering")
	for frame := range *frames {
		released := s.step(*churn)
		render.Collect(queue, slices.Values(s.drawables()))
		for _, d := range released {
			render.Release(queue, d)
		}

		cam.Velocity = batch.Vec3{0, 0, 0.5 * float32(frame%10) / 10}
		r.StartScene(cam)
		r.SubmitUniform("frame", batch.Int(frame), render.LifecycleFrame)
		stats, err := r.RenderScene(queue, s.materials, s.transforms, reg)
		if err != nil {
			aborted++
			logger.Warn("frame skipped", "frame", frame, "err", err)
		}
		total.Add(stats)
		if frame%30 == 29 {
			r.CycleMode()
		}
		_ = bar.Add(1)
	}
	_ = bar.Finish()

	cmds := rec.Finish()
	shaderStats, meshStats := reg.Stats()
	fmt.Printf("frames:    %d (%d aborted)\n", *frames, aborted)
	fmt.Printf("totals:    %s\n", total.String())
	fmt.Printf("per frame: %.1f draws, %.1f shader binds, %.1f texture binds\n",
		float64(total.DrawCalls)/float64(*frames),
		float64(total.ShaderBinds)/float64(*frames),
		float64(total.TextureBinds)/float64(*frames))
	fmt.Printf("commands:  %d recorded\n", cmds.Len())
	fmt.Printf("assets:    shaders hit %.0f%%, meshes hit %.0f%%\n",
		100*shaderStats.HitRate, 100*meshStats.HitRate)
}

// scene is a population of entities with random state.
type scene struct {
	rng                       *rand.Rand
	shaders, meshes, textures int
	next                      batch.EntityID
	live                      []render.Drawable
	materials                 assets.Materials
	transforms                assets.Transforms
}

func newScene(rng *rand.Rand, shaders, meshes, textures int) *scene {
	return &scene{
		rng:        rng,
		shaders:    max(shaders, 1),
		meshes:     max(meshes, 1),
		textures:   max(textures, 1),
		next:       1,
		materials:  assets.NewMaterials(),
		transforms: assets.NewTransforms(),
	}
}

func (s *scene) spawn() {
	e := s.next
	s.next++
	d := render.Drawable{
		Entity: e,
		Shader: batch.ShaderID(s.rng.IntN(s.shaders)),
		Mesh:   batch.MeshID(s.rng.IntN(s.meshes)),
	}
	if d.Mesh == instancedMesh {
		// Instance tables belong to the mesh, so one shader draws them all.
		d.Shader = 0
	}
	s.live = append(s.live, d)

	palette := s.textures
	if d.Mesh == instancedMesh {
		// One instanced draw binds every instance's texture at once.
		palette = min(palette, 8)
	}
	var mtl batch.Material
	mtl.Set("diffuse", batch.TextureRef(s.rng.IntN(palette)+1))
	mtl.Set("color", batch.Vec4{s.rng.Float32(), s.rng.Float32(), s.rng.Float32(), 1})
	s.materials.Set(e, mtl)
	s.transforms.Set(e, s.place())
}

func (s *scene) place() batch.Mat4 {
	x := s.rng.Float32()*80 - 40
	z := s.rng.Float32()*80 - 40
	return batch.Translate(x, 0, z).Mul(batch.RotateY(s.rng.Float32() * 6.2831855))
}

// step replaces a fraction of the entities and returns the removed ones
// that hold an instance slot.
func (s *scene) step(churn float64) []render.Drawable {
	var released []render.Drawable
	n := int(churn * float64(len(s.live)))
	for range n {
		i := s.rng.IntN(len(s.live))
		d := s.live[i]
		s.live[i] = s.live[len(s.live)-1]
		s.live = s.live[:len(s.live)-1]
		if d.Mesh == instancedMesh {
			released = append(released, d)
		}
		s.materials.Delete(d.Entity)
		s.transforms.Delete(d.Entity)
		s.spawn()
	}
	return released
}

func (s *scene) drawables() []render.Drawable { return s.live }
