package recording

import "github.com/gogpu/batch/assets"

// BuilderName is the name the recorder is registered under in package
// assets.
const BuilderName = "recording"

func init() {
	assets.RegisterBuilder(BuilderName, func() assets.Builder {
		rec := NewRecorder()
		rec.AutoDefine(1)
		return rec
	})
}
