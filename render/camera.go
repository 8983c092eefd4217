// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"github.com/chewxy/math32"

	"github.com/gogpu/batch"
)

// Camera describes the viewpoint of a scene.
type Camera struct {
	Position batch.Vec3
	// Velocity is measured in units of the speed of light.
	Velocity batch.Vec3
	Front    batch.Vec3
	Up       batch.Vec3

	// FovY is the vertical field of view in radians.
	FovY      float32
	Near, Far float32
}

// DefaultCamera returns a camera at the origin looking down -Z.
func DefaultCamera() Camera {
	return Camera{
		Front: batch.Vec3{0, 0, -1},
		Up:    batch.Vec3{0, 1, 0},
		FovY:  math32.Pi / 4,
		Near:  0.1,
		Far:   10000,
	}
}

// ViewMatrix returns the world-to-view transform.
func (c Camera) ViewMatrix() batch.Mat4 {
	p := c.Position
	center := batch.Vec3{p[0] + c.Front[0], p[1] + c.Front[1], p[2] + c.Front[2]}
	return batch.LookAt(p, center, c.Up)
}

// ProjectionMatrix returns the perspective projection for a viewport of
// the given size.
func (c Camera) ProjectionMatrix(width, height int) batch.Mat4 {
	aspect := float32(1)
	if height > 0 {
		aspect = float32(width) / float32(height)
	}
	return batch.Perspective(c.FovY, aspect, c.Near, c.Far)
}

// maxBeta keeps gamma finite.
const maxBeta = 0.9999

// Beta returns the camera speed as a fraction of the speed of light.
func (c Camera) Beta() float32 {
	return min(c.Velocity.Len(), maxBeta)
}

// Gamma returns the Lorentz factor of the camera speed.
func (c Camera) Gamma() float32 {
	b := c.Beta()
	return 1 / math32.Sqrt(1-b*b)
}

// VelocityBasis returns the rotation taking world coordinates into the
// camera's velocity frame, whose first axis is the direction of motion.
// It is the identity for a camera at rest.
func (c Camera) VelocityBasis() batch.Mat3 {
	v, r, u, ok := c.velocityAxes()
	if !ok {
		return identity3()
	}
	// Rows are the velocity frame axes.
	return batch.Mat3{
		v[0], r[0], u[0],
		v[1], r[1], u[1],
		v[2], r[2], u[2],
	}
}

// VelocityInverseBasis returns the inverse of VelocityBasis.
func (c Camera) VelocityInverseBasis() batch.Mat3 {
	v, r, u, ok := c.velocityAxes()
	if !ok {
		return identity3()
	}
	return batch.Mat3{
		v[0], v[1], v[2],
		r[0], r[1], r[2],
		u[0], u[1], u[2],
	}
}

// velocityAxes returns an orthonormal frame with v along the velocity.
func (c Camera) velocityAxes() (v, r, u batch.Vec3, ok bool) {
	if c.Beta() == 0 {
		return v, r, u, false
	}
	v = c.Velocity.Normalize()
	side := v.Cross(batch.Vec3{0, 1, 0})
	if side.Len() < 1e-6 {
		// Motion along Y.
		side = v.Cross(batch.Vec3{0, 0, 1})
	}
	r = side.Normalize()
	u = r.Cross(v)
	return v, r, u, true
}

func identity3() batch.Mat3 {
	return batch.Mat3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// Light is the scene's point light.
type Light struct {
	Position batch.Vec3
	Ambient  batch.Vec3
	Diffuse  batch.Vec3
	Specular batch.Vec3
}

// DefaultLight returns a white light above the scene.
func DefaultLight() Light {
	return Light{
		Position: batch.Vec3{200, 200, -200},
		Ambient:  batch.Vec3{1, 1, 1},
		Diffuse:  batch.Vec3{1, 1, 1},
		Specular: batch.Vec3{1, 1, 1},
	}
}
