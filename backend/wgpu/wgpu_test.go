// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"

	"github.com/gogpu/batch"
	"github.com/gogpu/batch/instancing"
)

// createNoopDevice creates a noop device and queue for testing.
func createNoopDevice(t *testing.T, opts ...DeviceOption) *Device {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		openDev.Device.Destroy()
		instance.Destroy()
	})
	dev, err := NewDevice(openDev.Device, openDev.Queue, opts...)
	if err != nil {
		t.Fatalf("NewDevice failed: %v", err)
	}
	return dev
}

// fakePass records the render pass calls the backend makes.
type fakePass struct {
	hal.RenderPassEncoder
	pipelines int
	groups    []hal.BindGroup
	vertex    map[uint32]hal.Buffer
	draws     [][2]uint32
}

func newFakePass() *fakePass { return &fakePass{vertex: map[uint32]hal.Buffer{}} }

func (p *fakePass) SetPipeline(hal.RenderPipeline) { p.pipelines++ }

func (p *fakePass) SetBindGroup(_ uint32, g hal.BindGroup, _ []uint32) {
	p.groups = append(p.groups, g)
}

func (p *fakePass) SetVertexBuffer(slot uint32, b hal.Buffer, _ uint64) { p.vertex[slot] = b }

func (p *fakePass) Draw(vertices, instances, _, _ uint32) {
	p.draws = append(p.draws, [2]uint32{vertices, instances})
}

func basicLibrary(t *testing.T, dev *Device) *Library {
	t.Helper()
	lib := NewLibrary(dev)
	lib.DefineShader(1, ShaderDesc{WGSL: BasicWGSL, Vertex: BasicVertexLayout(), Uniforms: BasicUniforms()})
	lib.DefineMesh(10, MeshDesc{Vertices: CubeVertices(), VertexCount: 36})
	return lib
}

func f32At(b []byte, off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b[off:]))
}

func TestNewDeviceRejectsNil(t *testing.T) {
	if _, err := NewDevice(nil, nil); !errors.Is(err, ErrNilDevice) {
		t.Errorf("expected ErrNilDevice, got %v", err)
	}
}

func TestNewDeviceFromProviderWithoutHAL(t *testing.T) {
	if _, err := NewDeviceFromProvider(nil); !errors.Is(err, ErrNoHAL) {
		t.Errorf("expected ErrNoHAL, got %v", err)
	}
}

func TestUniformLayoutOffsets(t *testing.T) {
	l := BasicUniforms()
	tests := []struct {
		name string
		want int
	}{
		{"view", 0},
		{"projection", 64},
		{"model", 128},
		{"color", 192},
		{"gamma", 208},
	}
	for _, tt := range tests {
		got, ok := l.Offset(tt.name)
		if !ok || got != tt.want {
			t.Errorf("%s: expected offset %d, got %d (%v)", tt.name, tt.want, got, ok)
		}
	}
	if l.UnitOffset() != 224 {
		t.Errorf("expected unit table at 224, got %d", l.UnitOffset())
	}
	if l.Size() != 352 {
		t.Errorf("expected size 352, got %d", l.Size())
	}
}

func TestUniformLayoutAlignment(t *testing.T) {
	l, err := NewUniformLayout(0,
		UniformField{Name: "a", Kind: batch.KindFloat},
		UniformField{Name: "b", Kind: batch.KindVec3},
		UniformField{Name: "c", Kind: batch.KindFloat},
		UniformField{Name: "d", Kind: batch.KindVec2},
		UniformField{Name: "e", Kind: batch.KindIntArray, Len: 2},
		UniformField{Name: "f", Kind: batch.KindMat3},
	)
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]int{"a": 0, "b": 16, "c": 28, "d": 32, "e": 48, "f": 80}
	for name, off := range want {
		if got, _ := l.Offset(name); got != off {
			t.Errorf("%s: expected offset %d, got %d", name, off, got)
		}
	}
	if l.Size() != 128 {
		t.Errorf("expected size 128, got %d", l.Size())
	}
}

func TestUniformLayoutErrors(t *testing.T) {
	if _, err := NewUniformLayout(0, UniformField{Name: "x", Kind: batch.KindIntArray}); err == nil {
		t.Error("expected error for zero-length array")
	}
	if _, err := NewUniformLayout(0,
		UniformField{Name: "x", Kind: batch.KindFloat},
		UniformField{Name: "x", Kind: batch.KindInt},
	); err == nil {
		t.Error("expected error for duplicate field")
	}
}

func TestUniformWrite(t *testing.T) {
	l, err := NewUniformLayout(4,
		UniformField{Name: "m3", Kind: batch.KindMat3},
		UniformField{Name: "tex", Kind: batch.KindTexture},
		UniformField{Name: "flag", Kind: batch.KindBool},
	)
	if err != nil {
		t.Fatal(err)
	}
	block := make([]byte, l.Size())

	m := batch.Mat3{1, 2, 3, 4, 5, 6, 7, 8, 9}
	if err := l.write(block, "m3", m); err != nil {
		t.Fatal(err)
	}
	if got := f32At(block, 16); got != 4 {
		t.Errorf("expected second column to start at 16, got %v", got)
	}
	if got := f32At(block, 12); got != 0 {
		t.Errorf("expected column padding to stay zero, got %v", got)
	}

	if err := l.write(block, "tex", batch.Int(3)); err != nil {
		t.Errorf("expected sampler to accept Int, got %v", err)
	}
	if err := l.write(block, "flag", batch.Float(1)); err == nil {
		t.Error("expected kind mismatch error")
	}
	if err := l.write(block, "unknown", batch.Float(1)); err != nil {
		t.Errorf("expected unknown names ignored, got %v", err)
	}

	if !l.setUnit(block, 2, 77) {
		t.Fatal("expected unit 2 in range")
	}
	if got := binary.LittleEndian.Uint32(block[l.UnitOffset()+8:]); got != 77 {
		t.Errorf("expected unit 2 to hold 77, got %d", got)
	}
	if l.setUnit(block, 4, 1) {
		t.Error("expected unit 4 out of range")
	}
}

func TestLibraryBuildUndefined(t *testing.T) {
	lib := NewLibrary(createNoopDevice(t))
	if _, err := lib.BuildShader(9); !errors.Is(err, ErrUndefinedShader) {
		t.Errorf("expected ErrUndefinedShader, got %v", err)
	}
	if _, err := lib.BuildMesh(9); !errors.Is(err, ErrUndefinedMesh) {
		t.Errorf("expected ErrUndefinedMesh, got %v", err)
	}
}

func TestShaderUniformsAndTextures(t *testing.T) {
	dev := createNoopDevice(t)
	h, err := basicLibrary(t, dev).BuildShader(1)
	if err != nil {
		t.Fatalf("BuildShader: %v", err)
	}
	s := h.(*Shader)
	defer s.Release()

	s.SetUniform("gamma", batch.Float(1.25))
	s.SetTexture(3, 42)
	if got := f32At(s.Uniforms(), 208); got != 1.25 {
		t.Errorf("expected gamma 1.25, got %v", got)
	}
	unit := s.Layout().UnitOffset() + 3*4
	if got := binary.LittleEndian.Uint32(s.Uniforms()[unit:]); got != 42 {
		t.Errorf("expected unit 3 to hold 42, got %d", got)
	}
	s.ClearTexture(3)
	if got := binary.LittleEndian.Uint32(s.Uniforms()[unit:]); got != 0 {
		t.Errorf("expected unit 3 cleared, got %d", got)
	}
}

func TestDrawWithoutPassIsDropped(t *testing.T) {
	dev := createNoopDevice(t)
	lib := basicLibrary(t, dev)
	s, _ := lib.BuildShader(1)
	m, err := lib.BuildMesh(10)
	if err != nil {
		t.Fatalf("BuildMesh: %v", err)
	}
	s.Bind()
	m.Bind()
	m.Draw()
	if st := dev.Stats(); st.Dropped != 1 || st.Draws != 0 {
		t.Errorf("expected 1 dropped draw, got %+v", st)
	}
}

func TestDrawRecordsIntoPass(t *testing.T) {
	dev := createNoopDevice(t, WithRingSlots(2))
	lib := basicLibrary(t, dev)
	s, _ := lib.BuildShader(1)
	m, _ := lib.BuildMesh(10)
	if m.PolyCount() != 12 {
		t.Errorf("expected 12 polygons, got %d", m.PolyCount())
	}

	pass := newFakePass()
	dev.BeginFrame(pass)
	s.Bind()
	m.Bind()
	for range 3 {
		m.Draw()
	}
	st := dev.EndFrame()

	if st.Draws != 3 || st.Uploads != 3 {
		t.Errorf("expected 3 draws and uploads, got %+v", st)
	}
	if st.Grows != 1 {
		t.Errorf("expected ring of 2 to grow once, got %d", st.Grows)
	}
	if pass.pipelines != 1 {
		t.Errorf("expected 1 pipeline bind, got %d", pass.pipelines)
	}
	if len(pass.draws) != 3 || pass.draws[0] != [2]uint32{36, 1} {
		t.Errorf("expected 3 draws of 36 vertices, got %v", pass.draws)
	}
	if len(pass.groups) != 3 {
		t.Errorf("expected a bind group per draw, got %d", len(pass.groups))
	}
	ring := &s.(*Shader).ring
	if ring.slots != 4 || len(ring.retired) != 1 {
		t.Errorf("expected a ring of 4 slots and 1 retired buffer, got %d and %d", ring.slots, len(ring.retired))
	}
	if pass.vertex[0] == nil {
		t.Error("expected vertex buffer at slot 0")
	}

	dev.BeginFrame(newFakePass())
	if len(ring.retired) != 0 || ring.cursor != 0 {
		t.Errorf("expected BeginFrame to free retired buffers, got %d", len(ring.retired))
	}
	s.Bind()
	m.Bind()
	for range 4 {
		m.Draw()
	}
	if st := dev.EndFrame(); st.Grows != 0 || st.Draws != 4 {
		t.Errorf("expected 4 draws without growth, got %+v", st)
	}
}

func TestInstancedMesh(t *testing.T) {
	dev := createNoopDevice(t)
	layout := instancing.Layout{
		{Name: instancing.ModelAttribute, Type: instancing.Mat4},
		{Name: "tint", Type: instancing.Float4},
	}
	lib := basicLibrary(t, dev)
	lib.DefineShader(2, ShaderDesc{WGSL: BasicWGSL, Vertex: BasicVertexLayout(), Instance: layout, Uniforms: BasicUniforms()})
	lib.DefineMesh(11, MeshDesc{Vertices: CubeVertices(), VertexCount: 36, Instance: layout})

	s, err := lib.BuildShader(2)
	if err != nil {
		t.Fatalf("BuildShader: %v", err)
	}
	h, err := lib.BuildMesh(11)
	if err != nil {
		t.Fatalf("BuildMesh: %v", err)
	}
	m, ok := h.(*InstancedMesh)
	if !ok {
		t.Fatalf("expected *InstancedMesh, got %T", h)
	}
	defer m.Release()

	table := m.InstanceTable()
	data := make([]float32, table.Stride())
	for e := range batch.EntityID(3) {
		off := table.Upsert(e)
		table.Pack(data, batch.Translate(float32(e), 0, 0), nil, nil)
		m.WriteInstance(off, data)
	}
	m.ClearInstance(0)

	pass := newFakePass()
	dev.BeginFrame(pass)
	s.Bind()
	m.Bind()
	m.DrawInstanced(table.Count())
	dev.EndFrame()

	if len(pass.draws) != 1 || pass.draws[0] != [2]uint32{36, 3} {
		t.Errorf("expected one draw of 3 instances, got %v", pass.draws)
	}
	if pass.vertex[1] == nil {
		t.Error("expected instance buffer at slot 1")
	}
	if m.capacity < 3*table.Stride()*4 {
		t.Errorf("expected capacity for 3 instances, got %d bytes", m.capacity)
	}
}

func TestInstanceAttributes(t *testing.T) {
	layout := instancing.Layout{
		{Name: "id", Type: instancing.Int},
		{Name: "m", Type: instancing.Mat3},
	}
	attrs := instanceAttributes(layout, 2)
	if len(attrs) != 4 {
		t.Fatalf("expected 4 attributes, got %d", len(attrs))
	}
	if attrs[0].ShaderLocation != 2 || attrs[3].ShaderLocation != 5 {
		t.Errorf("expected locations 2..5, got %d..%d", attrs[0].ShaderLocation, attrs[3].ShaderLocation)
	}
	if attrs[3].Offset != 28 {
		t.Errorf("expected last column at byte 28, got %d", attrs[3].Offset)
	}
}

func TestReleaseUntracksShader(t *testing.T) {
	dev := createNoopDevice(t)
	s, err := NewShader(dev, ShaderDesc{WGSL: BasicWGSL, Vertex: BasicVertexLayout(), Uniforms: BasicUniforms()})
	if err != nil {
		t.Fatal(err)
	}
	s.Bind()
	s.Release()
	if len(dev.shaders) != 0 || dev.shader != nil {
		t.Error("expected released shader to be forgotten by the device")
	}
}

func TestCubeVertices(t *testing.T) {
	v := CubeVertices()
	if len(v) != 36*24 {
		t.Fatalf("expected %d bytes, got %d", 36*24, len(v))
	}
	for i := 0; i < len(v); i += 4 {
		if f := f32At(v, i); f < -1 || f > 1 {
			t.Fatalf("component %d out of range: %v", i/4, f)
		}
	}
}
