package main

import (
	"flag"
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"shader-preview/internal/assets"
	"shader-preview/internal/config"
	"shader-preview/internal/graphics"
	"shader-preview/internal/lighting"
	"shader-preview/internal/logger"
	"shader-preview/internal/mesh"
	"shader-preview/internal/overlay"
	"shader-preview/internal/program"
	"shader-preview/internal/session"
	"shader-preview/internal/watch"
)

// lightAngleStep is degrees per frame while an arrow key is held.
const lightAngleStep = float32(1.5)

func main() {
	fragPath := flag.String("fragment", "", "fragment shader file to preview (watched for edits)")
	vertPath := flag.String("vertex", "", "optional vertex shader file (watched for edits)")
	modelURL := flag.String("model", "", "custom model URL or path (.glb/.gltf/.obj) instead of a primitive")
	flag.Parse()

	prefs, _ := config.Load(config.DefaultPath)
	log := logger.New(logger.DefaultPath)
	loader := assets.NewLoader(prefs.ModelCacheDir)

	var (
		s  *session.Session
		r  *graphics.Renderer
		ov *overlay.Overlay
		w  *watch.Watcher
	)

	setup := func() {
		dev := graphics.NewDevice()
		var err error
		s, err = session.New(dev, loader, log)
		if err != nil {
			// Built-in programs failed to bind: the backend is unusable.
			fmt.Fprintf(os.Stderr, "session init: %v\n", err)
			os.Exit(1)
		}
		if *modelURL != "" {
			s.SetMesh(mesh.CustomModel(*modelURL))
		} else {
			s.SetMesh(mesh.Primitive(prefs.Kind()))
		}
		s.SetLightingMode(prefs.Mode())
		s.SetLightAngle(prefs.LightAngle)
		loadSource(s, log, *vertPath, *fragPath)

		r = graphics.NewRenderer()
		r.GridVisible = prefs.GridVisible
		ov = overlay.New()
		ov.SetShowFPS(prefs.ShowFPS)

		w = startWatcher(log, *vertPath, *fragPath)
	}

	update := func() {
		if w != nil {
			if _, ok := w.Changed(); ok {
				loadSource(s, log, *vertPath, *fragPath)
			}
		}
		handleKeys(s, r, ov)
		r.Update(s)
		s.Tick()
	}

	draw := func() {
		r.Draw(s)
		ov.Draw(s)
	}

	graphics.Run(prefs.WindowWidth, prefs.WindowHeight, "shader preview", setup, update, draw)

	if w != nil {
		_ = w.Close()
	}
	if s != nil {
		s.Close()
	}
	if r != nil {
		r.Release()
	}
}

// loadSource reads the watched files and replaces the session's program.
// A missing or empty fragment file leaves the flat-color fallback bound.
func loadSource(s *session.Session, log *logger.Logger, vertPath, fragPath string) {
	read := func(path string) string {
		if path == "" {
			return ""
		}
		data, err := os.ReadFile(path)
		if err != nil {
			log.Log(fmt.Sprintf("read %s: %v", path, err))
			return ""
		}
		return string(data)
	}
	s.SetSource(program.New(read(vertPath), read(fragPath)))
}

func startWatcher(log *logger.Logger, paths ...string) *watch.Watcher {
	var existing []string
	for _, p := range paths {
		if p != "" {
			existing = append(existing, p)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	w, err := watch.New(existing...)
	if err != nil {
		log.Log(fmt.Sprintf("watch: %v", err))
		return nil
	}
	return w
}

// handleKeys maps input for the session: N/P cycle primitive kinds, L
// toggles lighting mode, left/right arrows rotate the environment light,
// F and G toggle the FPS counter and grid.
func handleKeys(s *session.Session, r *graphics.Renderer, ov *overlay.Overlay) {
	if rl.IsKeyPressed(rl.KeyN) || rl.IsKeyPressed(rl.KeyP) {
		d := s.Descriptor()
		if !d.IsCustom() {
			step := 1
			if rl.IsKeyPressed(rl.KeyP) {
				step = -1
			}
			n := len(mesh.Kinds())
			next := (int(d.Kind) + step + n) % n
			s.SetMesh(mesh.Primitive(mesh.Kind(next)))
		}
	}
	if rl.IsKeyPressed(rl.KeyL) {
		if s.Lighting().Mode() == lighting.ShaderDriven {
			s.SetLightingMode(lighting.ReferenceLit)
		} else {
			s.SetLightingMode(lighting.ShaderDriven)
		}
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		s.SetLightAngle(s.Lighting().LightAngle() - lightAngleStep)
	}
	if rl.IsKeyDown(rl.KeyRight) {
		s.SetLightAngle(s.Lighting().LightAngle() + lightAngleStep)
	}
	if rl.IsKeyPressed(rl.KeyF) {
		ov.SetShowFPS(!ov.ShowFPS)
	}
	if rl.IsKeyPressed(rl.KeyG) {
		r.GridVisible = !r.GridVisible
	}
}
