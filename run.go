package engine2d

import (
	"errors"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// Run opens a window and runs the engine until it is closed. Assets, the
// optional spawn script and the optional playback script are loaded from the
// paths in cfg.
func Run(cfg *Config, log *zap.Logger) error {
	assets := LoadAssets(cfg.Assets.AtlasPath, log)
	e := NewEngine(cfg, log, assets)

	if path := cfg.Scripting.SpawnScript; path != "" {
		script, err := LoadSpawnScript(path, log)
		if err != nil {
			return err
		}
		defer script.Close()
		e.SetSpawnScript(script)
	}

	if path := cfg.Scripting.Playback; path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read playback %s: %w", path, err)
		}
		pb, err := LoadPlayback(data)
		if err != nil {
			return fmt.Errorf("playback %s: %w", path, err)
		}
		e.SetPlayback(pb)
		log.Info("playback attached", zap.String("file", path))
	}

	e.windowed = true
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	if cfg.Window.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	// One Update per displayed frame; the Clock decides how many fixed
	// steps each frame runs.
	ebiten.SetTPS(ebiten.SyncWithFPS)

	log.Info("engine started",
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
		zap.Float64("fixed_dt", cfg.Sim.FixedDT),
		zap.String("atlas", cfg.Assets.AtlasPath))

	if err := ebiten.RunGame(e); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run game: %w", err)
	}
	log.Info("engine stopped")
	return nil
}
