package batch

import "fmt"

// ShaderID identifies a shader program. It is only compared, never resolved
// by the core itself.
type ShaderID uint32

// MeshID identifies a vertex array: the vertex and index buffers of a mesh.
type MeshID uint32

// EntityID identifies the scene entity that owns a draw call.
type EntityID uint64

// TextureID identifies a texture or cube map.
type TextureID uint32

// Command is the action a DrawCall requests.
type Command uint8

const (
	// CommandDraw issues a draw call for the entity.
	CommandDraw Command = iota

	// CommandFree releases the entity's per-instance resources without drawing.
	CommandFree
)

// String returns the string representation of the command.
func (c Command) String() string {
	switch c {
	case CommandDraw:
		return "Draw"
	case CommandFree:
		return "Free"
	default:
		return fmt.Sprintf("Command(%d)", uint8(c))
	}
}
