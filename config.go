package engine2d

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the full engine configuration, loaded from TOML.
type Config struct {
	Window    WindowConfig    `toml:"window"`
	Sim       SimConfig       `toml:"sim"`
	Camera    CameraConfig    `toml:"camera"`
	Player    PlayerConfig    `toml:"player"`
	Assets    AssetsConfig    `toml:"assets"`
	Scripting ScriptingConfig `toml:"scripting"`
	Logging   LoggingConfig   `toml:"logging"`
	Debug     DebugConfig     `toml:"debug"`
}

type WindowConfig struct {
	Title      string    `toml:"title"`
	Width      int       `toml:"width"`
	Height     int       `toml:"height"`
	Resizable  bool      `toml:"resizable"`
	ClearColor []float64 `toml:"clear_color"` // r, g, b, a in [0, 1]
}

type SimConfig struct {
	FixedDT float64 `toml:"fixed_dt"` // seconds per fixed step
	MaxDT   float64 `toml:"max_dt"`   // cap on real time credited per frame
	BoundsX float64 `toml:"bounds_x"` // half-width of the physics rectangle
	BoundsY float64 `toml:"bounds_y"` // half-height of the physics rectangle
}

type CameraConfig struct {
	MoveSpeed     float64 `toml:"move_speed"`
	ZoomSpeed     float64 `toml:"zoom_speed"`
	MinZoom       float64 `toml:"min_zoom"`
	MaxZoom       float64 `toml:"max_zoom"`
	ResetDuration float32 `toml:"reset_duration"` // seconds; 0 snaps
}

type PlayerConfig struct {
	MoveSpeed   float64 `toml:"move_speed"`
	RotateSpeed float64 `toml:"rotate_speed"`
	SpriteSize  float64 `toml:"sprite_size"`
	SpawnTween  float32 `toml:"spawn_tween"` // seconds of pop-in scale tween; 0 disables
}

type AssetsConfig struct {
	AtlasPath string `toml:"atlas_path"`
	HotReload bool   `toml:"hot_reload"`
}

type ScriptingConfig struct {
	SpawnScript string `toml:"spawn_script"` // optional Lua file
	Playback    string `toml:"playback"`     // optional playback script
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

type DebugConfig struct {
	Enabled       bool   `toml:"enabled"`
	ScreenshotDir string `toml:"screenshot_dir"`
}

// Load reads a TOML config file on top of Defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects settings the frame loop cannot run with.
func (c *Config) Validate() error {
	if c.Sim.FixedDT <= 0 {
		return fmt.Errorf("sim.fixed_dt must be positive, got %v", c.Sim.FixedDT)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Camera.MinZoom <= 0 || c.Camera.MaxZoom < c.Camera.MinZoom {
		return fmt.Errorf("camera zoom range [%v, %v] is invalid", c.Camera.MinZoom, c.Camera.MaxZoom)
	}
	if n := len(c.Window.ClearColor); n != 0 && n != 4 {
		return fmt.Errorf("window.clear_color needs 4 components, got %d", n)
	}
	return nil
}

// Bounds returns the physics rectangle half-extents.
func (c *Config) Bounds() Vec2 {
	return Vec2{c.Sim.BoundsX, c.Sim.BoundsY}
}

// ClearColor returns the configured background color.
func (c *Config) ClearColor() Color {
	if len(c.Window.ClearColor) != 4 {
		return Color{}
	}
	cc := c.Window.ClearColor
	return Color{cc[0], cc[1], cc[2], cc[3]}
}

// Defaults returns the built-in configuration.
func Defaults() *Config {
	return &Config{
		Window: WindowConfig{
			Title:      "engine2d",
			Width:      1280,
			Height:     720,
			Resizable:  true,
			ClearColor: []float64{0.08, 0.08, 0.1, 1},
		},
		Sim: SimConfig{
			FixedDT: 1.0 / 60.0,
			MaxDT:   DefaultMaxDT,
			BoundsX: 520,
			BoundsY: 320,
		},
		Camera: CameraConfig{
			MoveSpeed:     300,
			ZoomSpeed:     1.5,
			MinZoom:       0.25,
			MaxZoom:       4,
			ResetDuration: 0,
		},
		Player: PlayerConfig{
			MoveSpeed:   300,
			RotateSpeed: 2.4,
			SpriteSize:  128,
			SpawnTween:  0.25,
		},
		Assets: AssetsConfig{
			AtlasPath: DefaultAtlasPath,
			HotReload: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Debug: DebugConfig{
			ScreenshotDir: "screenshots",
		},
	}
}
