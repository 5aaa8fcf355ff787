// Package app drives a game.World from ebiten: it polls input, steps the
// world once per tick, draws the scene and loops the music.
package app

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/kingfisher/config"
	"github.com/plus3/kingfisher/ecs/debugui"
	debugui_ebiten "github.com/plus3/kingfisher/ecs/debugui/ebiten"
	"github.com/plus3/kingfisher/game"
	"github.com/plus3/kingfisher/settings"
	"go.uber.org/zap"
)

// Options are the collaborators of a Game.
type Options struct {
	Config   *config.Config
	Settings *settings.Manager
	Logger   *zap.Logger
	// Overlay enables the ImGui debug overlay when non-nil.
	Overlay *debugui_ebiten.ImguiBackend
}

// Game implements ebiten.Game.
type Game struct {
	cfg      *config.Config
	log      *zap.Logger
	settings *settings.Manager
	overlay  *debugui_ebiten.ImguiBackend

	world   *game.World
	sprites sprites
	music   *music
}

// New builds the world and loads assets. Missing images and music are logged
// and replaced, they never fail startup.
func New(opts Options) (*Game, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("app: config is required")
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	store := opts.Settings
	if store == nil {
		store = settings.NewManager(nil, settings.Defaults(opts.Config.Audio.Volume), log)
	}

	g := &Game{
		cfg:      opts.Config,
		log:      log,
		settings: store,
		overlay:  opts.Overlay,
		world:    game.NewWorld(opts.Config.WorldOptions()),
	}

	g.sprites = loadSprites(opts.Config.Assets, log)

	m, err := newMusic(opts.Config.Assets, opts.Config.Audio.SampleRate)
	if err != nil {
		log.Warn("music disabled", zap.Error(err))
	} else {
		g.music = m
		g.music.play(store.Settings().EffectiveVolume())
	}

	if g.overlay != nil {
		attachOverlay(g.world, g.renderBirdPanel)
		log.Info("debug overlay enabled")
	}

	player := g.world.Player()
	log.Info("world ready",
		zap.Float64("player_x", player.Position.X),
		zap.Float64("player_y", player.Position.Y),
		zap.Int("entities", g.world.Storage().CollectStats().TotalEntityCount))
	return g, nil
}

// World returns the simulated world.
func (g *Game) World() *game.World {
	return g.world
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		muted := g.settings.ToggleMute()
		g.music.setVolume(g.settings.Settings().EffectiveVolume())
		g.log.Debug("mute toggled", zap.Bool("muted", muted))
	}

	var controls game.Controls
	if !g.overlayWantsKeyboard() {
		controls = readControls(inpututil.IsKeyJustPressed)
	}

	dt := 1.0 / float64(ebiten.TPS())
	if g.overlay != nil {
		g.overlay.BeginFrame()
		g.world.Step(dt, controls)
		g.overlay.EndFrame()
	} else {
		g.world.Step(dt, controls)
	}

	if g.settings.RecordDistance(g.world.Distance()) {
		g.log.Debug("new best distance", zap.Float64("distance", g.world.Distance()))
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.drawScene(screen)
	if g.overlay != nil {
		g.overlay.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := g.cfg.Window.Width, g.cfg.Window.Height
	if g.overlay != nil {
		// The overlay shares the logical screen so its cursor coordinates
		// line up with ebiten's.
		g.overlay.Layout(w, h)
	}
	return w, h
}

// Close stops the music.
func (g *Game) Close() error {
	return g.music.close()
}

func (g *Game) overlayWantsKeyboard() bool {
	if g.overlay == nil {
		return false
	}
	var state *debugui.ImguiInputState
	return g.world.Storage().ReadSingleton(&state) && state.WantCaptureKeyboard
}

// readControls maps this frame's key presses to bird controls.
func readControls(justPressed func(ebiten.Key) bool) game.Controls {
	return game.Controls{
		Left:  justPressed(ebiten.KeyArrowLeft),
		Right: justPressed(ebiten.KeyArrowRight),
		Flap:  justPressed(ebiten.KeySpace),
	}
}
