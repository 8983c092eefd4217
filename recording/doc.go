// Package recording provides a GPU backend that records state changes
// instead of executing them.
//
// A Recorder builds shader and mesh handles whose every bind, uniform
// upload, texture placement and draw is appended to one command list as a
// typed command struct. The list can be inspected directly, which is how
// the render pipeline is tested, or replayed onto real handles with
// Recording.Playback.
//
// # Example
//
//	rec := recording.NewRecorder()
//	rec.DefineMesh(10, 12)
//	rec.DefineInstancedMesh(20, 2, layout)
//	assets := assets.NewRegistry(rec)
//	...render a frame...
//	r := rec.Finish()
//	fmt.Println(r.Count(recording.CmdBindShader))
//
// The recorder registers itself as the "recording" builder in package
// assets.
package recording
