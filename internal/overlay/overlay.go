package overlay

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"shader-preview/internal/fault"
	"shader-preview/internal/session"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// updateInterval: only refresh FPS text every N frames to reduce
	// allocations.
	updateInterval = 30
)

// Overlay draws the preview's 2D status layer: FPS counter, the active
// selection and lighting mode, load placeholder notices, and the diagnostic
// text for the current fault.
type Overlay struct {
	ShowFPS     bool
	frameCount  uint32
	lastFpsText string
}

// New returns an overlay with the FPS counter hidden.
func New() *Overlay {
	return &Overlay{}
}

// SetShowFPS sets whether the FPS counter is drawn (top-right, green).
func (o *Overlay) SetShowFPS(show bool) {
	o.ShowFPS = show
}

// Draw renders the overlay for s. Call after the 3D pass, inside the frame.
func (o *Overlay) Draw(s *session.Session) {
	o.frameCount++
	screenW := int32(rl.GetScreenWidth())

	if o.ShowFPS {
		if o.frameCount%updateInterval == 0 || o.lastFpsText == "" {
			o.lastFpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		w := rl.MeasureText(o.lastFpsText, fontSize)
		rl.DrawText(o.lastFpsText, screenW-w-padding, padding, fontSize, rl.Green)
	}

	status := s.Descriptor().Key() + "  |  " + s.Lighting().Mode().String()
	rl.DrawText(status, padding, padding, fontSize, rl.RayWhite)

	y := int32(padding + lineHeight)
	switch {
	case s.LoadPending():
		rl.DrawText("loading model...", padding, y, fontSize, rl.SkyBlue)
	case s.LoadErr() != nil:
		rl.DrawText(s.LoadErr().Error(), padding, y, fontSize, rl.Orange)
	}

	if s.FaultState() == fault.Faulted && s.FaultReason() != nil {
		msg := "shader fault: " + s.FaultReason().Error()
		rl.DrawText(msg, padding, int32(rl.GetScreenHeight())-lineHeight-padding, fontSize, rl.Red)
	}
}
