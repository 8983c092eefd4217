// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gogpu/batch"
)

// uniformAlign is the minimum dynamic uniform offset alignment of the
// default WebGPU limits.
const uniformAlign = 256

// UniformField declares one member of a shader's uniform block.
// Sampler uniforms use KindTexture or KindCubeMap and hold the texture
// unit as an i32. Len is the element count of a KindIntArray member.
type UniformField struct {
	Name string
	Kind batch.UniformKind
	Len  int
}

type fieldSlot struct {
	offset int
	kind   batch.UniformKind
	len    int
}

// UniformLayout places uniform fields using WGSL uniform address space
// rules, followed by the texture unit table.
type UniformLayout struct {
	fields map[string]fieldSlot
	units  int
	unitAt int
	size   int
}

// NewUniformLayout lays out fields in order and appends a table of units
// texture units, packed four to an array<vec4<u32>> element.
func NewUniformLayout(units int, fields ...UniformField) (UniformLayout, error) {
	l := UniformLayout{fields: make(map[string]fieldSlot, len(fields)), units: units}
	off := 0
	for _, f := range fields {
		size, align, err := fieldSize(f)
		if err != nil {
			return UniformLayout{}, err
		}
		if _, dup := l.fields[f.Name]; dup {
			return UniformLayout{}, fmt.Errorf("wgpu: duplicate uniform %q", f.Name)
		}
		off = alignUp(off, align)
		l.fields[f.Name] = fieldSlot{offset: off, kind: f.Kind, len: f.Len}
		off += size
	}
	l.unitAt = alignUp(off, 16)
	l.size = alignUp(l.unitAt+alignUp(units, 4)*4, 16)
	if l.size == 0 {
		l.size = 16
	}
	return l, nil
}

// Size returns the size of the uniform block in bytes.
func (l UniformLayout) Size() int { return l.size }

// Units returns the number of texture units in the unit table.
func (l UniformLayout) Units() int { return l.units }

// Offset returns the byte offset of the named field.
func (l UniformLayout) Offset(name string) (int, bool) {
	f, ok := l.fields[name]
	return f.offset, ok
}

// UnitOffset returns the byte offset of the unit table.
func (l UniformLayout) UnitOffset() int { return l.unitAt }

func fieldSize(f UniformField) (size, align int, err error) {
	switch f.Kind {
	case batch.KindInt, batch.KindUint, batch.KindFloat, batch.KindBool,
		batch.KindTexture, batch.KindCubeMap:
		return 4, 4, nil
	case batch.KindVec2:
		return 8, 8, nil
	case batch.KindVec3:
		return 12, 16, nil
	case batch.KindVec4:
		return 16, 16, nil
	case batch.KindMat3:
		return 48, 16, nil
	case batch.KindMat4:
		return 64, 16, nil
	case batch.KindIntArray:
		if f.Len <= 0 {
			return 0, 0, fmt.Errorf("wgpu: uniform %q: array length %d", f.Name, f.Len)
		}
		return 16 * f.Len, 16, nil
	}
	return 0, 0, fmt.Errorf("wgpu: uniform %q: unsupported kind %v", f.Name, f.Kind)
}

func alignUp(n, align int) int {
	return (n + align - 1) / align * align
}

// accepts reports whether a value of kind v may be stored in field kind f.
func accepts(f, v batch.UniformKind) bool {
	if f == v {
		return true
	}
	return (f == batch.KindTexture || f == batch.KindCubeMap) && v == batch.KindInt
}

// write encodes u into block. Names absent from the layout are ignored.
func (l UniformLayout) write(block []byte, name string, u batch.Uniform) error {
	f, ok := l.fields[name]
	if !ok {
		return nil
	}
	if !accepts(f.kind, u.Kind()) {
		return fmt.Errorf("wgpu: uniform %q is %v, got %v", name, f.kind, u.Kind())
	}
	b := block[f.offset:]
	switch v := u.(type) {
	case batch.Int:
		putI32(b, int32(v))
	case batch.Uint:
		binary.LittleEndian.PutUint32(b, uint32(v))
	case batch.Bool:
		var x uint32
		if v {
			x = 1
		}
		binary.LittleEndian.PutUint32(b, x)
	case batch.Float:
		putF32s(b, float32(v))
	case batch.Vec2:
		putF32s(b, v[:]...)
	case batch.Vec3:
		putF32s(b, v[:]...)
	case batch.Vec4:
		putF32s(b, v[:]...)
	case batch.Mat3:
		for col := range 3 {
			putF32s(b[col*16:], v[col*3:col*3+3]...)
		}
	case batch.Mat4:
		putF32s(b, v[:]...)
	case batch.IntArray:
		for i := range min(len(v), f.len) {
			putI32(b[i*16:], v[i])
		}
	}
	return nil
}

// setUnit stores tex in the unit table.
func (l UniformLayout) setUnit(block []byte, unit uint32, tex batch.TextureID) bool {
	if int(unit) >= l.units {
		return false
	}
	binary.LittleEndian.PutUint32(block[l.unitAt+int(unit)*4:], uint32(tex))
	return true
}

func putI32(b []byte, v int32) {
	binary.LittleEndian.PutUint32(b, uint32(v))
}

func putF32s(b []byte, vs ...float32) {
	for i, v := range vs {
		binary.LittleEndian.PutUint32(b[i*4:], math.Float32bits(v))
	}
}
