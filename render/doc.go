// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render drives the batching core once per frame.
//
// A Renderer owns the texture binder and the two uniform sets the pipeline
// uploads on every shader activation: runtime uniforms, which change only
// when the configuration changes, and frame uniforms, which StartScene
// fills from the camera and which are cleared once the frame is drawn.
//
// A frame looks like:
//
//	r, err := render.New(render.WithConfig(cfg))
//	...
//	render.Collect(queue, drawables)
//	r.StartScene(camera)
//	stats, err := r.RenderScene(queue, materials, transforms, assets)
//
// Configuration can be loaded from YAML or TOML with LoadConfig.
package render
