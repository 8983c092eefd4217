// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "log/slog"

// Option configures a Renderer during creation.
//
// Example:
//
//	r, err := render.New(
//		render.WithConfig(cfg),
//		render.WithTextureUnits(16),
//	)
type Option func(*options)

type options struct {
	config Config
	logger *slog.Logger
}

func defaultOptions() options {
	return options{config: DefaultConfig()}
}

// WithConfig replaces the whole configuration. Options applied after it
// override individual fields.
func WithConfig(cfg Config) Option {
	return func(o *options) {
		o.config = cfg
	}
}

// WithTextureUnits sets the number of hardware texture units.
func WithTextureUnits(n int) Option {
	return func(o *options) {
		o.config.TextureUnits = n
	}
}

// WithReservedUnits sets the number of texture units kept out of the
// binder.
func WithReservedUnits(n int) Option {
	return func(o *options) {
		o.config.ReservedUnits = n
	}
}

// WithLogger sets the logger for frame-level diagnostics. By default the
// renderer logs through batch.Logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
