package batch

import (
	"cmp"
	"fmt"
)

// DrawCall is one pending render instruction.
//
// At most one DrawCall per (Entity, Command) pair may be queued in a frame.
// Submitting a duplicate is a caller error; the queue keeps the last one.
type DrawCall struct {
	Shader  ShaderID
	Mesh    MeshID
	Entity  EntityID
	Command Command
}

// String returns a compact description used in logs and faults.
func (dc DrawCall) String() string {
	return fmt.Sprintf("DrawCall{shader=%d mesh=%d entity=%d %s}", dc.Shader, dc.Mesh, dc.Entity, dc.Command)
}

// CompareDrawCalls orders draw calls by shader, then mesh, then entity, then
// command, each field descending. Runs of equal shaders are therefore
// contiguous in queue order, and within a shader run so are runs of equal
// meshes.
func CompareDrawCalls(a, b DrawCall) int {
	if c := cmp.Compare(b.Shader, a.Shader); c != 0 {
		return c
	}
	if c := cmp.Compare(b.Mesh, a.Mesh); c != 0 {
		return c
	}
	if c := cmp.Compare(b.Entity, a.Entity); c != 0 {
		return c
	}
	return cmp.Compare(b.Command, a.Command)
}

// SameState reports whether two calls bind the same shader and mesh.
func (dc DrawCall) SameState(other DrawCall) bool {
	return dc.Shader == other.Shader && dc.Mesh == other.Mesh
}
