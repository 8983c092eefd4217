// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package wgpu implements batch shaders and meshes on a gogpu/wgpu HAL
// device.
//
// A Library holds shader and mesh descriptions and builds GPU handles on
// demand, so it can back an assets.Registry:
//
//	dev, err := wgpu.NewDeviceFromProvider(provider)
//	lib := wgpu.NewLibrary(dev)
//	lib.DefineShader(1, wgpu.ShaderDesc{WGSL: wgpu.BasicWGSL, Uniforms: wgpu.BasicUniforms()})
//	lib.DefineMesh(10, wgpu.MeshDesc{Vertices: data, VertexCount: 36})
//	reg := assets.NewRegistry(lib)
//
// WebGPU has no texture units. Each shader carries a unit table in its
// uniform block: SetTexture stores the texture identity at the unit's
// index and the shader resolves sampler uniforms through it. The table
// only records identities. No texture view or sampler is bound, so
// shaders built on this package cannot sample the textures the binder
// places; texture bindings stay bookkeeping until a texture bind group is
// added.
//
// Uniforms are written to a per-shader ring of 256-byte aligned slots,
// one slot per draw, each with its own bind group. A ring that runs out of
// slots doubles; the outgrown buffer is destroyed at the next BeginFrame.
// Call Device.BeginFrame
// with the frame's render pass before drawing; draws without a pass are
// dropped and counted.
package wgpu
