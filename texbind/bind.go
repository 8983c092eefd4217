package texbind

import "github.com/gogpu/batch"

// TextureSetter is the part of a shader handle that Bind drives.
type TextureSetter interface {
	SetTexture(unit uint32, tex batch.TextureID)
	SetUniform(name string, u batch.Uniform)
}

// Bind places tex in a unit and points the sampler uniform name at it.
// The texture is only uploaded when it was not already resident.
func (b *TextureBinder) Bind(s TextureSetter, name string, tex batch.TextureID) uint32 {
	unit, fresh := b.GetSlot(tex)
	if fresh {
		s.SetTexture(unit, tex)
	}
	s.SetUniform(name, batch.Int(unit))
	return unit
}
