package engine2d

import (
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"io/fs"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// DefaultAtlasPath is where the atlas descriptor is looked up by default.
const DefaultAtlasPath = "assets/atlas.json"

// atlasColors are the tile colors of the procedural fallback texture.
var atlasColors = [6][4]uint8{
	{235, 70, 70, 255},
	{70, 200, 90, 255},
	{70, 120, 235, 255},
	{235, 210, 70, 255},
	{200, 90, 200, 255},
	{60, 180, 200, 255},
}

// Assets owns the current atlas geometry and texture. Both may change at
// runtime when ReloadIfChanged picks up edits on disk.
type Assets struct {
	Atlas Atlas
	// Texture is nil until a texture has been loaded or generated.
	Texture *ebiten.Image

	configPath   string
	texturePath  string
	configMtime  time.Time
	textureMtime time.Time
	log          *zap.Logger

	// loadTexture is replaced in tests to avoid touching the GPU.
	loadTexture func(path string, atlas Atlas) *ebiten.Image
}

// LoadAssets reads the atlas descriptor at configPath and its texture. Missing
// or broken files never fail the load: defaults and a procedural texture are
// used instead and a warning is logged.
func LoadAssets(configPath string, log *zap.Logger) *Assets {
	a := &Assets{configPath: configPath, log: log}
	a.loadTexture = a.textureOrProcedural
	a.load()
	return a
}

func (a *Assets) load() {
	cfg, mtime := a.readConfig()
	a.Atlas = cfg.Atlas()
	a.configMtime = mtime
	a.texturePath = cfg.TexturePath()
	a.textureMtime = fileMtime(a.texturePath)
	a.Texture = a.loadTexture(a.texturePath, a.Atlas)
}

// TexturePath returns the path of the current texture.
func (a *Assets) TexturePath() string {
	return a.texturePath
}

// ReloadIfChanged polls the descriptor and texture modification times and
// reloads whatever changed. It reports whether the texture was replaced.
// A descriptor change updates the atlas immediately and reloads the texture
// only when the texture path changed.
func (a *Assets) ReloadIfChanged() bool {
	reloadTexture := false

	if mtime := fileMtime(a.configPath); !mtime.Equal(a.configMtime) {
		cfg, mtime := a.readConfig()
		a.Atlas = cfg.Atlas()
		a.configMtime = mtime
		if path := cfg.TexturePath(); path != a.texturePath {
			a.texturePath = path
			reloadTexture = true
		}
		a.log.Info("atlas descriptor reloaded",
			zap.String("path", a.configPath),
			zap.Uint32("columns", a.Atlas.Columns),
			zap.Uint32("rows", a.Atlas.Rows))
	}

	if mtime := fileMtime(a.texturePath); !mtime.Equal(a.textureMtime) {
		reloadTexture = true
	}

	if reloadTexture {
		a.Texture = a.loadTexture(a.texturePath, a.Atlas)
		a.textureMtime = fileMtime(a.texturePath)
	}
	return reloadTexture
}

// readConfig loads the descriptor, falling back to defaults.
func (a *Assets) readConfig() (AtlasConfig, time.Time) {
	mtime := fileMtime(a.configPath)
	data, err := os.ReadFile(a.configPath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			a.log.Warn("read atlas descriptor", zap.String("path", a.configPath), zap.Error(err))
		}
		return DefaultAtlasConfig(), mtime
	}
	cfg, err := ParseAtlasConfig(data)
	if err != nil {
		a.log.Warn("atlas descriptor invalid, using defaults", zap.String("path", a.configPath), zap.Error(err))
	}
	return cfg, mtime
}

func (a *Assets) textureOrProcedural(path string, atlas Atlas) *ebiten.Image {
	img, err := loadImage(path)
	if err == nil {
		a.log.Info("loaded texture", zap.String("path", path))
		return img
	}
	a.log.Warn("falling back to procedural atlas texture", zap.String("path", path), zap.Error(err))
	texels, w, h := proceduralTexels(atlas)
	tex := ebiten.NewImage(w, h)
	tex.WritePixels(texels)
	return tex
}

func loadImage(path string) (*ebiten.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return ebiten.NewImageFromImage(img), nil
}

// maxProceduralSide bounds the longer side of the procedural texture. UVs are
// normalized, so shrinking its tiles leaves lookups unchanged.
const maxProceduralSide = 2048

// proceduralTexels fills every atlas tile with a solid color from
// atlasColors, cycling by tile index. The result is RGBA, row-major, with
// its pixel size.
func proceduralTexels(atlas Atlas) (texels []byte, w, h int) {
	atlas = NewAtlas(atlas.Columns, atlas.Rows, atlas.TileSize)
	side := int(max(atlas.Columns, atlas.Rows))
	ts := max(min(int(atlas.TileSize), maxProceduralSide/side), 1)
	w, h = int(atlas.Columns)*ts, int(atlas.Rows)*ts
	texels = make([]byte, w*h*4)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			tile := (y/ts)*int(atlas.Columns) + x/ts
			c := atlasColors[tile%len(atlasColors)]
			copy(texels[(y*w+x)*4:], c[:])
		}
	}
	return texels, w, h
}

// fileMtime returns the modification time of path, or the zero time if it
// cannot be read.
func fileMtime(path string) time.Time {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}
