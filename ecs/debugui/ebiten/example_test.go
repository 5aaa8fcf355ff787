package ebiten_test

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/kingfisher/ecs/debugui"
	debugui_ebiten "github.com/plus3/kingfisher/ecs/debugui/ebiten"
	"github.com/plus3/kingfisher/game"
)

// Game steps a kingfisher world inside an ImGui frame.
type Game struct {
	world *game.World
	imgui *debugui_ebiten.ImguiBackend
}

func (g *Game) Update() error {
	g.imgui.BeginFrame()
	g.world.Step(1.0/60.0, game.Controls{})
	g.imgui.EndFrame()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.imgui.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.imgui.Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func Example() {
	backend := debugui_ebiten.NewImguiBackend("Kingfisher debug", 1280, 720)

	world := game.NewWorld(game.DefaultOptions())
	debugui.RegisterComponents(world.Storage().Registry())
	debugui.SpawnDebugUI(world.Scheduler())

	if err := ebiten.RunGame(&Game{world: world, imgui: backend}); err != nil {
		panic(err)
	}
}
