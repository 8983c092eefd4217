// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"log/slog"

	"github.com/gogpu/batch"
)

// slogger returns the logger configured through batch.SetLogger.
func slogger() *slog.Logger { return batch.Logger() }
