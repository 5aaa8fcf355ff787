// Command kingfisher opens the game window.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/kingfisher/app"
	"github.com/plus3/kingfisher/config"
	debugui_ebiten "github.com/plus3/kingfisher/ecs/debugui/ebiten"
	"github.com/plus3/kingfisher/settings"
	"github.com/quasilyte/gdata/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const appName = "kingfisher"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "kingfisher.toml", "Path to the TOML config file.")
	debug := flag.Bool("debug", false, "Show the ImGui debug overlay.")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *debug {
		cfg.Debug.Overlay = true
	}

	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer log.Sync()
	log = log.With(zap.String("session", uuid.NewString()))

	log.Info("starting",
		zap.String("config", *configPath),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
		zap.Bool("overlay", cfg.Debug.Overlay))

	store, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Warn("open settings storage", zap.Error(err))
		store = nil
	}
	prefs := settings.NewManager(store, settings.Defaults(cfg.Audio.Volume), log.Named("settings"))

	var overlay *debugui_ebiten.ImguiBackend
	if cfg.Debug.Overlay {
		overlay = debugui_ebiten.NewImguiBackend(cfg.Window.Title,
			cfg.Window.Width*cfg.Window.Scale, cfg.Window.Height*cfg.Window.Scale)
	} else {
		ebiten.SetWindowTitle(cfg.Window.Title)
		ebiten.SetWindowSize(cfg.Window.Width*cfg.Window.Scale, cfg.Window.Height*cfg.Window.Scale)
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	g, err := app.New(app.Options{
		Config:   cfg,
		Settings: prefs,
		Logger:   log.Named("app"),
		Overlay:  overlay,
	})
	if err != nil {
		return err
	}
	defer g.Close()

	runErr := ebiten.RunGame(g)
	if errors.Is(runErr, ebiten.Termination) {
		runErr = nil
	}

	if err := prefs.Save(); err != nil {
		log.Warn("save settings", zap.Error(err))
	}
	log.Info("shutdown",
		zap.Float64("distance", g.World().Distance()),
		zap.Float64("best_distance", prefs.Settings().BestDistance))

	if runErr != nil {
		return fmt.Errorf("run game: %w", runErr)
	}
	return nil
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
