// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"log/slog"

	"github.com/gogpu/batch"
)

func slogger() *slog.Logger { return batch.Logger() }
