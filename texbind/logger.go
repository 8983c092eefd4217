package texbind

import (
	"log/slog"

	"github.com/gogpu/batch"
)

// slogger returns the logger configured through batch.SetLogger.
func slogger() *slog.Logger { return batch.Logger() }
