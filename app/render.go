package app

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/plus3/kingfisher/game"
	"github.com/plus3/kingfisher/settings"
)

// drawScene draws background, branch and bird through the camera, then the
// HUD line.
func (g *Game) drawScene(screen *ebiten.Image) {
	screen.Fill(skyColor)

	bgWidth := float64(g.sprites.background.Bounds().Dx())
	g.drawAt(screen, g.sprites.background, -bgWidth/2, 0)

	branch := g.world.Branch()
	g.drawAt(screen, g.sprites.branch, branch.Position.X, branch.Position.Y)

	player := g.world.Player()
	g.drawAt(screen, g.sprites.player, player.Position.X, player.Position.Y)

	ebitenutil.DebugPrint(screen, hudText(g.world, g.settings.Settings()))
}

// drawAt draws img with its bottom-left corner at world (x, y).
func (g *Game) drawAt(screen, img *ebiten.Image, x, y float64) {
	h := float64(img.Bounds().Dy())
	sx, sy := g.world.Camera.Project(g.world.Viewport, x, y, h)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(sx, sy)
	screen.DrawImage(img, op)
}

func hudText(world *game.World, s settings.Settings) string {
	text := fmt.Sprintf("%s  distance %.0f  best %.0f",
		world.Player().BirdState.State, world.Distance(), max(s.BestDistance, world.Distance()))
	if s.Muted {
		text += "  [muted]"
	}
	return text
}
