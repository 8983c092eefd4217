package recording

import (
	"fmt"

	"github.com/gogpu/batch"
	"github.com/gogpu/batch/pipeline"
)

// Recording is an immutable list of recorded commands.
type Recording struct {
	commands []Command
}

// Commands returns the recorded commands.
func (r *Recording) Commands() []Command {
	return r.commands
}

// Len returns the number of recorded commands.
func (r *Recording) Len() int { return len(r.commands) }

// Count returns how many commands of type t were recorded.
func (r *Recording) Count(t CommandType) int {
	n := 0
	for _, c := range r.commands {
		if c.Type() == t {
			n++
		}
	}
	return n
}

// Filter returns the commands of the given types, in recorded order.
func (r *Recording) Filter(types ...CommandType) []Command {
	var out []Command
	for _, c := range r.commands {
		for _, t := range types {
			if c.Type() == t {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// Playback replays the recording onto handles resolved from reg.
func (r *Recording) Playback(reg pipeline.AssetRegistry) error {
	for i, cmd := range r.commands {
		if err := replay(reg, cmd); err != nil {
			return fmt.Errorf("recording: command %d (%s): %w", i, cmd.Type(), err)
		}
	}
	return nil
}

func replay(reg pipeline.AssetRegistry, cmd Command) error {
	switch c := cmd.(type) {
	case BindShaderCommand:
		return withShader(reg, c.Shader, pipeline.Shader.Bind)
	case UnbindShaderCommand:
		return withShader(reg, c.Shader, pipeline.Shader.Unbind)
	case SetUniformCommand:
		return withShader(reg, c.Shader, func(s pipeline.Shader) { s.SetUniform(c.Name, c.Value) })
	case SetTextureCommand:
		return withShader(reg, c.Shader, func(s pipeline.Shader) { s.SetTexture(c.Unit, c.Texture) })
	case ClearTextureCommand:
		return withShader(reg, c.Shader, func(s pipeline.Shader) { s.ClearTexture(c.Unit) })
	case BindMeshCommand:
		m, ok := reg.Mesh(c.Mesh)
		if !ok {
			return fmt.Errorf("%w: %d", ErrUnknownMesh, c.Mesh)
		}
		m.Bind()
	case UnbindMeshCommand:
		m, ok := reg.Mesh(c.Mesh)
		if !ok {
			return fmt.Errorf("%w: %d", ErrUnknownMesh, c.Mesh)
		}
		m.Unbind()
	case DrawCommand:
		m, ok := reg.Mesh(c.Mesh)
		if !ok {
			return fmt.Errorf("%w: %d", ErrUnknownMesh, c.Mesh)
		}
		m.Draw()
	case DrawInstancedCommand:
		m, err := instanced(reg, c.Mesh)
		if err != nil {
			return err
		}
		m.DrawInstanced(c.Count)
	case WriteInstanceCommand:
		m, err := instanced(reg, c.Mesh)
		if err != nil {
			return err
		}
		m.WriteInstance(c.Offset, c.Data)
	case ClearInstanceCommand:
		m, err := instanced(reg, c.Mesh)
		if err != nil {
			return err
		}
		m.ClearInstance(c.Offset)
	}
	return nil
}

func withShader(reg pipeline.AssetRegistry, id batch.ShaderID, fn func(pipeline.Shader)) error {
	s, ok := reg.Shader(id)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownShader, id)
	}
	fn(s)
	return nil
}

func instanced(reg pipeline.AssetRegistry, id batch.MeshID) (pipeline.InstancedMesh, error) {
	m, ok := reg.Mesh(id)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMesh, id)
	}
	im, ok := m.(pipeline.InstancedMesh)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrNotInstanced, id)
	}
	return im, nil
}
