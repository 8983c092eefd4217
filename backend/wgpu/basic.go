// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/batch"
)

// BasicUnits is the size of the unit table of BasicWGSL.
const BasicUnits = 32

// BasicWGSL is a flat shaded pipeline over BasicVertexLayout. Its uniform
// block matches BasicUniforms.
const BasicWGSL = `
struct Uniforms {
    view: mat4x4<f32>,
    projection: mat4x4<f32>,
    model: mat4x4<f32>,
    color: vec4<f32>,
    gamma: f32,
    units: array<vec4<u32>, 8>,
};

@group(0) @binding(0) var<uniform> u: Uniforms;

struct VertexOut {
    @builtin(position) position: vec4<f32>,
    @location(0) shade: f32,
};

@vertex
fn vs_main(@location(0) position: vec3<f32>, @location(1) normal: vec3<f32>) -> VertexOut {
    var out: VertexOut;
    let world = u.model * vec4<f32>(position, 1.0);
    out.position = u.projection * u.view * world;
    let n = normalize((u.model * vec4<f32>(normal, 0.0)).xyz);
    out.shade = max(dot(n, normalize(vec3<f32>(0.3, 1.0, 0.5))), 0.2);
    return out;
}

@fragment
fn fs_main(v: VertexOut) -> @location(0) vec4<f32> {
    return vec4<f32>(u.color.rgb * v.shade, u.color.a);
}
`

// BasicUniforms returns the uniform layout of BasicWGSL.
func BasicUniforms() UniformLayout {
	l, err := NewUniformLayout(BasicUnits,
		UniformField{Name: "view", Kind: batch.KindMat4},
		UniformField{Name: "projection", Kind: batch.KindMat4},
		UniformField{Name: "model", Kind: batch.KindMat4},
		UniformField{Name: "color", Kind: batch.KindVec4},
		UniformField{Name: "gamma", Kind: batch.KindFloat},
	)
	if err != nil {
		panic(err)
	}
	return l
}

// BasicVertexLayout is a position and normal per vertex.
func BasicVertexLayout() gputypes.VertexBufferLayout {
	return gputypes.VertexBufferLayout{
		ArrayStride: 24,
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes: []gputypes.VertexAttribute{
			{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
			{Format: gputypes.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
		},
	}
}

// CubeVertices returns a unit cube in BasicVertexLayout, 36 vertices.
func CubeVertices() []byte {
	faces := [6]struct{ normal, u, v batch.Vec3 }{
		{batch.Vec3{1, 0, 0}, batch.Vec3{0, 1, 0}, batch.Vec3{0, 0, 1}},
		{batch.Vec3{-1, 0, 0}, batch.Vec3{0, 0, 1}, batch.Vec3{0, 1, 0}},
		{batch.Vec3{0, 1, 0}, batch.Vec3{0, 0, 1}, batch.Vec3{1, 0, 0}},
		{batch.Vec3{0, -1, 0}, batch.Vec3{1, 0, 0}, batch.Vec3{0, 0, 1}},
		{batch.Vec3{0, 0, 1}, batch.Vec3{1, 0, 0}, batch.Vec3{0, 1, 0}},
		{batch.Vec3{0, 0, -1}, batch.Vec3{0, 1, 0}, batch.Vec3{1, 0, 0}},
	}
	corners := [6][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, -1}, {1, 1}, {-1, 1}}
	buf := make([]byte, 0, 36*24)
	for _, f := range faces {
		for _, c := range corners {
			for i := range 3 {
				p := 0.5*f.normal[i] + 0.5*c[0]*f.u[i] + 0.5*c[1]*f.v[i]
				buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(p))
			}
			for i := range 3 {
				buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(f.normal[i]))
			}
		}
	}
	return buf
}
