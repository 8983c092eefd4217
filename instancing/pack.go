package instancing

import (
	"math"

	"github.com/gogpu/batch"
)

// ModelAttribute is the attribute filled from the entity's transform.
const ModelAttribute = "model"

// TextureResolver returns the texture unit a texture uniform is bound to.
type TextureResolver func(name string, tex batch.TextureID) uint32

// Pack writes one instance payload into dst, which must hold at least
// Stride words. Attributes missing from the material are zeroed. Texture
// uniforms are stored as the unit returned by units; integer values keep
// their bit pattern.
func (t *Table) Pack(dst []float32, model batch.Mat4, mtl batch.Material, units TextureResolver) {
	dst = dst[:t.stride]
	clear(dst)
	off := 0
	for _, a := range t.layout {
		w := a.Type.Width()
		field := dst[off : off+w]
		off += w

		if a.Name == ModelAttribute {
			copy(field, model[:])
			continue
		}
		u, ok := mtl.Get(a.Name)
		if !ok {
			continue
		}
		if tex, isTex := batch.TextureOf(u); isTex {
			if units != nil {
				field[0] = math.Float32frombits(units(a.Name, tex))
			}
			continue
		}
		packUniform(field, u)
	}
}

func packUniform(field []float32, u batch.Uniform) {
	switch v := u.(type) {
	case batch.Int:
		field[0] = math.Float32frombits(uint32(v))
	case batch.Uint:
		field[0] = math.Float32frombits(uint32(v))
	case batch.Bool:
		if v {
			field[0] = math.Float32frombits(1)
		}
	case batch.Float:
		field[0] = float32(v)
	case batch.Vec2:
		copy(field, v[:])
	case batch.Vec3:
		copy(field, v[:])
	case batch.Vec4:
		copy(field, v[:])
	case batch.Mat3:
		copy(field, v[:])
	case batch.Mat4:
		copy(field, v[:])
	case batch.IntArray:
		for i := 0; i < len(v) && i < len(field); i++ {
			field[i] = math.Float32frombits(uint32(v[i]))
		}
	}
}
