package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

// Run starts the window and main loop. setup runs once after the window and
// GL context exist, so it may compile shaders and upload meshes. Each frame
// the loop calls update (input, session tick), then clears the screen and
// calls draw (3D pass plus overlay). Pausing the host loop pauses
// everything driven from it; there are no timers outside this loop.
func Run(width, height int32, title string, setup, update, draw func()) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(width, height, title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(60)
	setup()

	for !rl.WindowShouldClose() {
		update()

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(18, 18, 22, 255))
		draw()
		rl.EndDrawing()
	}
}
