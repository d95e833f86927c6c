package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"shader-preview/internal/lighting"
	"shader-preview/internal/mesh"
)

// DefaultPath is the preview config file, relative to the process working
// directory.
const DefaultPath = "config/preview.json"

// Prefs holds preview preferences persisted across runs. Author content
// (shader text, model URLs) is deliberately not persisted here; only the
// viewing setup is.
type Prefs struct {
	WindowWidth   int32   `json:"window_width"`
	WindowHeight  int32   `json:"window_height"`
	StartKind     string  `json:"start_kind"`
	ReferenceLit  bool    `json:"reference_lit"`
	LightAngle    float32 `json:"light_angle"`
	ModelCacheDir string  `json:"model_cache_dir"`
	ShowFPS       bool    `json:"show_fps"`
	GridVisible   bool    `json:"grid_visible"`
}

// Default returns default preview preferences: a 1280x720 window, box
// primitive, shader-driven lighting, grid on.
func Default() Prefs {
	return Prefs{
		WindowWidth:   1280,
		WindowHeight:  720,
		StartKind:     mesh.Box.String(),
		ReferenceLit:  false,
		LightAngle:    lighting.DefaultLightAngle,
		ModelCacheDir: "cache/models",
		ShowFPS:       false,
		GridVisible:   true,
	}
}

// Kind resolves the configured start primitive, falling back to box for
// unknown names.
func (p Prefs) Kind() mesh.Kind {
	k, err := mesh.ParseKind(p.StartKind)
	if err != nil {
		return mesh.Box
	}
	return k
}

// Mode returns the configured lighting mode.
func (p Prefs) Mode() lighting.Mode {
	if p.ReferenceLit {
		return lighting.ReferenceLit
	}
	return lighting.ShaderDriven
}

// Load reads preferences from path. If the file is missing or invalid,
// returns Default() and does not create a file.
func Load(path string) (Prefs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), nil
	}
	var p Prefs
	if err := json.Unmarshal(data, &p); err != nil {
		return Default(), nil
	}
	return p, nil
}

// Save writes preferences to path, creating the directory if needed.
func Save(path string, p Prefs) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
