// Package assets resolves shader and mesh identities to built GPU handles
// and stores per-entity materials and transforms.
//
// A Registry builds handles lazily through a Builder and caches them, so
// the render pipeline only ever asks for handles by identity. Builders are
// GPU backends; they can be registered by name, following the
// database/sql driver pattern:
//
//	import _ "github.com/gogpu/batch/recording" // registers "recording"
//
//	b, err := assets.NewBuilder("recording")
//	reg := assets.NewRegistry(b)
package assets
