// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Errors returned by configuration loading and validation.
var (
	ErrInvalidConfig     = errors.New("render: invalid config")
	ErrUnsupportedFormat = errors.New("render: unsupported config format")
)

// ShadingMode selects the shading model. Its index is uploaded as the
// lorentzFlag runtime uniform.
type ShadingMode int

const (
	// ShadingClassical renders without relativistic effects.
	ShadingClassical ShadingMode = iota
	// ShadingLorentz applies Lorentz contraction.
	ShadingLorentz
	// ShadingRelativistic applies contraction and Doppler shading.
	ShadingRelativistic

	shadingModeCount
)

var shadingModeNames = [...]string{
	ShadingClassical:    "classical",
	ShadingLorentz:      "lorentz",
	ShadingRelativistic: "relativistic",
}

// String returns the string representation of the mode.
func (m ShadingMode) String() string {
	if m >= 0 && m < shadingModeCount {
		return shadingModeNames[m]
	}
	return fmt.Sprintf("ShadingMode(%d)", int(m))
}

// Next returns the mode after m, wrapping around.
func (m ShadingMode) Next() ShadingMode {
	return (m + 1) % shadingModeCount
}

// MarshalText implements encoding.TextMarshaler.
func (m ShadingMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *ShadingMode) UnmarshalText(text []byte) error {
	for i, name := range shadingModeNames {
		if strings.EqualFold(string(text), name) {
			*m = ShadingMode(i)
			return nil
		}
	}
	return fmt.Errorf("%w: unknown shading mode %q", ErrInvalidConfig, text)
}

// PolygonMode selects how polygons are rasterized.
type PolygonMode int

const (
	// PolygonFill fills polygons.
	PolygonFill PolygonMode = iota
	// PolygonLine draws polygon edges only.
	PolygonLine
)

// String returns the string representation of the mode.
func (m PolygonMode) String() string {
	switch m {
	case PolygonFill:
		return "fill"
	case PolygonLine:
		return "line"
	default:
		return fmt.Sprintf("PolygonMode(%d)", int(m))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m PolygonMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *PolygonMode) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "fill":
		*m = PolygonFill
	case "line":
		*m = PolygonLine
	default:
		return fmt.Errorf("%w: unknown polygon mode %q", ErrInvalidConfig, text)
	}
	return nil
}

// Config holds the renderer settings.
type Config struct {
	// Mode is the shading model.
	Mode ShadingMode `yaml:"mode" toml:"mode"`

	// Debug enables debug overlays in shaders that support them.
	Debug bool `yaml:"debug" toml:"debug"`

	// PolygonMode selects filled or wireframe rasterization.
	PolygonMode PolygonMode `yaml:"polygon_mode" toml:"polygon_mode"`

	// TextureUnits is the number of hardware texture units.
	TextureUnits int `yaml:"texture_units" toml:"texture_units"`

	// ReservedUnits is the number of units kept out of the texture binder
	// for framebuffer and global textures. Unit 0 is always reserved; the
	// rest are taken from the top of the range.
	ReservedUnits int `yaml:"reserved_units" toml:"reserved_units"`

	// RecoverFaults makes RenderScene turn a render fault into an error
	// and skip the frame instead of panicking.
	RecoverFaults bool `yaml:"recover_faults" toml:"recover_faults"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Mode:          ShadingClassical,
		PolygonMode:   PolygonFill,
		TextureUnits:  32,
		ReservedUnits: 1,
	}
}

// BinderCapacity returns the number of units the texture binder manages.
func (c Config) BinderCapacity() int {
	return c.TextureUnits - c.ReservedUnits
}

// Validate reports whether the configuration is usable.
func (c Config) Validate() error {
	switch {
	case c.Mode < 0 || c.Mode >= shadingModeCount:
		return fmt.Errorf("%w: shading mode %d", ErrInvalidConfig, int(c.Mode))
	case c.PolygonMode != PolygonFill && c.PolygonMode != PolygonLine:
		return fmt.Errorf("%w: polygon mode %d", ErrInvalidConfig, int(c.PolygonMode))
	case c.ReservedUnits < 1:
		return fmt.Errorf("%w: reserved_units must be at least 1, got %d", ErrInvalidConfig, c.ReservedUnits)
	case c.TextureUnits <= c.ReservedUnits:
		return fmt.Errorf("%w: texture_units (%d) must exceed reserved_units (%d)",
			ErrInvalidConfig, c.TextureUnits, c.ReservedUnits)
	}
	return nil
}

// LoadConfig reads a YAML (.yaml, .yml) or TOML (.toml) configuration file.
// Fields absent from the file keep their DefaultConfig values.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("render: read config: %w", err)
	}
	cfg, err := ParseConfig(data, filepath.Ext(path))
	if err != nil {
		return Config{}, fmt.Errorf("render: load %s: %w", path, err)
	}
	slogger().Info("render: config loaded", "path", path, "mode", cfg.Mode.String())
	return cfg, nil
}

// ParseConfig decodes a configuration in the given format: "yaml", "yml"
// or "toml", with or without a leading dot.
func ParseConfig(data []byte, format string) (Config, error) {
	cfg := DefaultConfig()
	var err error
	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "yaml", "yml":
		err = yaml.Unmarshal(data, &cfg)
	case "toml":
		err = toml.Unmarshal(data, &cfg)
	default:
		return Config{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return Config{}, fmt.Errorf("render: decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
