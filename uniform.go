package batch

import "fmt"

// UniformKind tags the variant held by a Uniform.
type UniformKind uint8

const (
	KindInt UniformKind = iota
	KindUint
	KindIntArray
	KindFloat
	KindVec2
	KindVec3
	KindVec4
	KindMat3
	KindMat4
	KindBool
	KindTexture
	KindCubeMap
)

var uniformKindNames = [...]string{
	KindInt:      "Int",
	KindUint:     "Uint",
	KindIntArray: "IntArray",
	KindFloat:    "Float",
	KindVec2:     "Vec2",
	KindVec3:     "Vec3",
	KindVec4:     "Vec4",
	KindMat3:     "Mat3",
	KindMat4:     "Mat4",
	KindBool:     "Bool",
	KindTexture:  "Texture",
	KindCubeMap:  "CubeMap",
}

// String returns the string representation of the kind.
func (k UniformKind) String() string {
	if int(k) < len(uniformKindNames) {
		return uniformKindNames[k]
	}
	return fmt.Sprintf("UniformKind(%d)", uint8(k))
}

// Uniform is a value uploaded to a shader uniform. The concrete types below
// are the only implementations.
type Uniform interface {
	Kind() UniformKind
}

type (
	// Int is a signed integer uniform. Sampler uniforms are set as Int.
	Int int32
	// Uint is an unsigned integer uniform.
	Uint uint32
	// IntArray is an array of signed integers.
	IntArray []int32
	// Float is a 32-bit float uniform.
	Float float32
	// Bool is a boolean uniform.
	Bool bool
	// TextureRef refers to a 2D texture to be placed in a texture unit.
	TextureRef TextureID
	// CubeMapRef refers to a cube map to be placed in a texture unit.
	CubeMapRef TextureID
)

func (Int) Kind() UniformKind        { return KindInt }
func (Uint) Kind() UniformKind       { return KindUint }
func (IntArray) Kind() UniformKind   { return KindIntArray }
func (Float) Kind() UniformKind      { return KindFloat }
func (Vec2) Kind() UniformKind       { return KindVec2 }
func (Vec3) Kind() UniformKind       { return KindVec3 }
func (Vec4) Kind() UniformKind       { return KindVec4 }
func (Mat3) Kind() UniformKind       { return KindMat3 }
func (Mat4) Kind() UniformKind       { return KindMat4 }
func (Bool) Kind() UniformKind       { return KindBool }
func (TextureRef) Kind() UniformKind { return KindTexture }
func (CubeMapRef) Kind() UniformKind { return KindCubeMap }

// TextureOf returns the texture referenced by a texture or cube map uniform.
func TextureOf(u Uniform) (TextureID, bool) {
	switch v := u.(type) {
	case TextureRef:
		return TextureID(v), true
	case CubeMapRef:
		return TextureID(v), true
	}
	return 0, false
}

// NamedUniform pairs a uniform name with its value.
type NamedUniform struct {
	Name  string
	Value Uniform
}

// Material is an ordered list of uniforms bound for one entity.
type Material []NamedUniform

// Set replaces the uniform called name, or appends it when absent.
func (m *Material) Set(name string, u Uniform) {
	for i := range *m {
		if (*m)[i].Name == name {
			(*m)[i].Value = u
			return
		}
	}
	*m = append(*m, NamedUniform{Name: name, Value: u})
}

// Get returns the uniform called name.
func (m Material) Get(name string) (Uniform, bool) {
	for _, nu := range m {
		if nu.Name == name {
			return nu.Value, true
		}
	}
	return nil, false
}

// UniformSet is a named collection of frame-global uniforms.
type UniformSet map[string]Uniform
