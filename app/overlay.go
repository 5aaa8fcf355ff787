package app

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/kingfisher/ecs/debugui"
	"github.com/plus3/kingfisher/game"
)

// attachOverlay adds the built-in debug panels to the world plus an
// ImguiItem drawing render.
func attachOverlay(world *game.World, render func()) {
	debugui.RegisterComponents(world.Storage().Registry())
	debugui.SpawnDebugUI(world.Scheduler())
	world.Storage().Spawn(debugui.ImguiItem{Render: render})
}

// renderBirdPanel shows the bird's live state and the persisted settings.
func (g *Game) renderBirdPanel() {
	if !imgui.BeginV("Bird", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	defer imgui.End()

	player := g.world.Player()
	imgui.Text(fmt.Sprintf("State: %s", player.BirdState.State))
	imgui.Text(fmt.Sprintf("Position: (%.1f, %.1f)", player.Position.X, player.Position.Y))
	imgui.Text(fmt.Sprintf("Velocity: (%.1f, %.1f)", player.Velocity.X, player.Velocity.Y))
	imgui.Text(fmt.Sprintf("Camera: (%.1f, %.1f)", g.world.Camera.X, g.world.Camera.Y))
	imgui.Separator()

	prefs := g.settings.Settings()
	imgui.Text(fmt.Sprintf("Distance: %.0f  Best: %.0f", g.world.Distance(), prefs.BestDistance))

	muted := prefs.Muted
	if imgui.Checkbox("Muted", &muted) {
		g.settings.SetMuted(muted)
		g.music.setVolume(g.settings.Settings().EffectiveVolume())
	}
}
