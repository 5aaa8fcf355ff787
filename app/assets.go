package app

import (
	"image/color"
	_ "image/png"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/plus3/kingfisher/config"
	"go.uber.org/zap"
)

const playerSize = 100

var (
	skyColor        = color.RGBA{R: 77, G: 77, B: 255, A: 255}
	playerColor     = color.RGBA{R: 255, A: 255}
	backgroundColor = color.RGBA{R: 60, G: 140, B: 70, A: 255}
	branchColor     = color.RGBA{R: 110, G: 70, B: 30, A: 255}
)

type sprites struct {
	background *ebiten.Image
	branch     *ebiten.Image
	player     *ebiten.Image
}

func loadSprites(assets config.AssetsConfig, log *zap.Logger) sprites {
	player := ebiten.NewImage(playerSize, playerSize)
	player.Fill(playerColor)

	return sprites{
		background: loadImage(assets.Dir, assets.Background, 1280, 480, backgroundColor, log),
		branch:     loadImage(assets.Dir, assets.Branch, 200, 24, branchColor, log),
		player:     player,
	}
}

// loadImage reads dir/name, or returns a flat w x h placeholder in fallback
// colour when the file cannot be decoded.
func loadImage(dir, name string, w, h int, fallback color.Color, log *zap.Logger) *ebiten.Image {
	path := assetPath(dir, name)
	img, _, err := ebitenutil.NewImageFromFile(path)
	if err == nil {
		log.Debug("image loaded", zap.String("path", path),
			zap.Int("width", img.Bounds().Dx()), zap.Int("height", img.Bounds().Dy()))
		return img
	}

	log.Warn("image missing, using placeholder", zap.String("path", path), zap.Error(err))
	placeholder := ebiten.NewImage(w, h)
	placeholder.Fill(fallback)
	return placeholder
}

func assetPath(dir, name string) string {
	if filepath.IsAbs(name) || dir == "" {
		return name
	}
	return filepath.Join(dir, name)
}
