// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestParseConfig(t *testing.T) {
	tests := []struct {
		name   string
		format string
		data   string
		want   Config
	}{
		{
			name:   "yaml",
			format: "yaml",
			data:   "mode: lorentz\npolygon_mode: line\ntexture_units: 16\n",
			want: Config{
				Mode:          ShadingLorentz,
				PolygonMode:   PolygonLine,
				TextureUnits:  16,
				ReservedUnits: 1,
			},
		},
		{
			name:   "toml",
			format: ".toml",
			data:   "mode = \"relativistic\"\ndebug = true\nreserved_units = 4\nrecover_faults = true\n",
			want: Config{
				Mode:          ShadingRelativistic,
				Debug:         true,
				PolygonMode:   PolygonFill,
				TextureUnits:  32,
				ReservedUnits: 4,
				RecoverFaults: true,
			},
		},
		{
			name:   "empty yaml keeps defaults",
			format: "yml",
			data:   "",
			want:   DefaultConfig(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseConfig([]byte(tt.data), tt.format)
			if err != nil {
				t.Fatalf("ParseConfig: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name   string
		format string
		data   string
		want   error
	}{
		{"unknown format", "json", "{}", ErrUnsupportedFormat},
		{"unknown mode", "yaml", "mode: quantum\n", ErrInvalidConfig},
		{"unknown polygon mode", "toml", "polygon_mode = \"point\"\n", ErrInvalidConfig},
		{"no reserved unit", "yaml", "reserved_units: 0\n", ErrInvalidConfig},
		{"reserved exceeds units", "yaml", "texture_units: 4\nreserved_units: 4\n", ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.data), tt.format)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "render.yaml")
	if err := os.WriteFile(path, []byte("mode: lorentz\ntexture_units: 8\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Mode != ShadingLorentz {
		t.Errorf("expected mode lorentz, got %v", cfg.Mode)
	}
	if cfg.BinderCapacity() != 7 {
		t.Errorf("expected binder capacity 7, got %d", cfg.BinderCapacity())
	}

	if _, err := LoadConfig(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestShadingModeNext(t *testing.T) {
	m := ShadingClassical
	want := []ShadingMode{ShadingLorentz, ShadingRelativistic, ShadingClassical}
	for i, w := range want {
		m = m.Next()
		if m != w {
			t.Errorf("step %d: expected %v, got %v", i, w, m)
		}
	}
}

func TestModeStrings(t *testing.T) {
	if got := ShadingMode(9).String(); got != "ShadingMode(9)" {
		t.Errorf("expected ShadingMode(9), got %q", got)
	}
	if got := PolygonMode(3).String(); got != "PolygonMode(3)" {
		t.Errorf("expected PolygonMode(3), got %q", got)
	}
	text, err := ShadingRelativistic.MarshalText()
	if err != nil || string(text) != "relativistic" {
		t.Errorf("expected relativistic, got %q (%v)", text, err)
	}
}
