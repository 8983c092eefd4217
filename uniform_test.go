package batch

import "testing"

func TestUniformKinds(t *testing.T) {
	tests := []struct {
		u    Uniform
		want UniformKind
	}{
		{Int(1), KindInt},
		{Uint(1), KindUint},
		{IntArray{1, 2}, KindIntArray},
		{Float(1), KindFloat},
		{Vec2{}, KindVec2},
		{Vec3{}, KindVec3},
		{Vec4{}, KindVec4},
		{Mat3{}, KindMat3},
		{Identity(), KindMat4},
		{Bool(true), KindBool},
		{TextureRef(3), KindTexture},
		{CubeMapRef(4), KindCubeMap},
	}
	for _, tt := range tests {
		if got := tt.u.Kind(); got != tt.want {
			t.Errorf("%T: expected %v, got %v", tt.u, tt.want, got)
		}
	}
}

func TestTextureOf(t *testing.T) {
	if id, ok := TextureOf(TextureRef(7)); !ok || id != 7 {
		t.Errorf("expected texture 7, got (%d, %v)", id, ok)
	}
	if id, ok := TextureOf(CubeMapRef(9)); !ok || id != 9 {
		t.Errorf("expected cube map 9, got (%d, %v)", id, ok)
	}
	if _, ok := TextureOf(Int(7)); ok {
		t.Error("Int must not be treated as a texture")
	}
}

func TestMaterialSetKeepsOrder(t *testing.T) {
	var m Material
	m.Set("albedo", TextureRef(1))
	m.Set("roughness", Float(0.5))
	m.Set("albedo", TextureRef(2))

	if len(m) != 2 {
		t.Fatalf("expected 2 uniforms, got %d", len(m))
	}
	if m[0].Name != "albedo" || m[0].Value != TextureRef(2) {
		t.Errorf("expected albedo replaced in place, got %+v", m[0])
	}
	if _, ok := m.Get("metallic"); ok {
		t.Error("expected missing uniform")
	}
}
