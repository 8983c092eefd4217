package recording

import "github.com/gogpu/batch"

// CommandType identifies the type of a command.
type CommandType uint8

const (
	// Shader commands
	CmdBindShader   CommandType = iota // Make a shader current
	CmdUnbindShader                    // Release the current shader
	CmdSetUniform                      // Upload one uniform
	CmdSetTexture                      // Place a texture in a unit
	CmdClearTexture                    // Empty a texture unit

	// Mesh commands
	CmdBindMesh      // Make a vertex array current
	CmdUnbindMesh    // Release the current vertex array
	CmdDraw          // Draw the mesh once
	CmdDrawInstanced // Draw every instance of the mesh
	CmdWriteInstance // Write one instance payload
	CmdClearInstance // Zero one instance payload
)

var commandTypeNames = [...]string{
	CmdBindShader:    "BindShader",
	CmdUnbindShader:  "UnbindShader",
	CmdSetUniform:    "SetUniform",
	CmdSetTexture:    "SetTexture",
	CmdClearTexture:  "ClearTexture",
	CmdBindMesh:      "BindMesh",
	CmdUnbindMesh:    "UnbindMesh",
	CmdDraw:          "Draw",
	CmdDrawInstanced: "DrawInstanced",
	CmdWriteInstance: "WriteInstance",
	CmdClearInstance: "ClearInstance",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is the interface implemented by all command types.
type Command interface {
	// Type returns the CommandType for this command.
	Type() CommandType
}

// --------------------------------------------------------------------------
// Shader Commands
// --------------------------------------------------------------------------

// BindShaderCommand makes a shader current.
type BindShaderCommand struct {
	Shader batch.ShaderID
}

// Type implements Command.
func (BindShaderCommand) Type() CommandType { return CmdBindShader }

// UnbindShaderCommand releases a shader.
type UnbindShaderCommand struct {
	Shader batch.ShaderID
}

// Type implements Command.
func (UnbindShaderCommand) Type() CommandType { return CmdUnbindShader }

// SetUniformCommand uploads one uniform to a shader.
type SetUniformCommand struct {
	Shader batch.ShaderID
	Name   string
	Value  batch.Uniform
}

// Type implements Command.
func (SetUniformCommand) Type() CommandType { return CmdSetUniform }

// SetTextureCommand places a texture in a unit.
type SetTextureCommand struct {
	Shader  batch.ShaderID
	Unit    uint32
	Texture batch.TextureID
}

// Type implements Command.
func (SetTextureCommand) Type() CommandType { return CmdSetTexture }

// ClearTextureCommand empties a texture unit.
type ClearTextureCommand struct {
	Shader batch.ShaderID
	Unit   uint32
}

// Type implements Command.
func (ClearTextureCommand) Type() CommandType { return CmdClearTexture }

// --------------------------------------------------------------------------
// Mesh Commands
// --------------------------------------------------------------------------

// BindMeshCommand makes a vertex array current.
type BindMeshCommand struct {
	Mesh batch.MeshID
}

// Type implements Command.
func (BindMeshCommand) Type() CommandType { return CmdBindMesh }

// UnbindMeshCommand releases a vertex array.
type UnbindMeshCommand struct {
	Mesh batch.MeshID
}

// Type implements Command.
func (UnbindMeshCommand) Type() CommandType { return CmdUnbindMesh }

// DrawCommand draws a mesh once.
type DrawCommand struct {
	Mesh     batch.MeshID
	Polygons int
}

// Type implements Command.
func (DrawCommand) Type() CommandType { return CmdDraw }

// DrawInstancedCommand draws Count instances of a mesh.
type DrawInstancedCommand struct {
	Mesh  batch.MeshID
	Count int
}

// Type implements Command.
func (DrawInstancedCommand) Type() CommandType { return CmdDrawInstanced }

// WriteInstanceCommand writes one instance payload at a word offset.
type WriteInstanceCommand struct {
	Mesh   batch.MeshID
	Offset int
	// Data is a copy of the payload.
	Data []float32
}

// Type implements Command.
func (WriteInstanceCommand) Type() CommandType { return CmdWriteInstance }

// ClearInstanceCommand zeroes one instance payload at a word offset.
type ClearInstanceCommand struct {
	Mesh   batch.MeshID
	Offset int
}

// Type implements Command.
func (ClearInstanceCommand) Type() CommandType { return CmdClearInstance }
