package batch

import "fmt"

// FrameStats counts the GPU work issued by one render pass.
type FrameStats struct {
	DrawCalls    int
	Polygons     int
	Instances    int
	ShaderBinds  int
	MeshBinds    int
	TextureBinds int
}

// Add accumulates o into s.
func (s *FrameStats) Add(o FrameStats) {
	s.DrawCalls += o.DrawCalls
	s.Polygons += o.Polygons
	s.Instances += o.Instances
	s.ShaderBinds += o.ShaderBinds
	s.MeshBinds += o.MeshBinds
	s.TextureBinds += o.TextureBinds
}

// String returns a one-line summary.
func (s FrameStats) String() string {
	return fmt.Sprintf("draws=%d polys=%d instances=%d shader_binds=%d mesh_binds=%d texture_binds=%d",
		s.DrawCalls, s.Polygons, s.Instances, s.ShaderBinds, s.MeshBinds, s.TextureBinds)
}
