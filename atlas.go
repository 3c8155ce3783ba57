package engine2d

import (
	"fmt"
	"math"

	"gopkg.in/yaml.v3"
)

// Defaults used when the atlas descriptor is missing or leaves a field out.
const (
	DefaultAtlasColumns  = 2
	DefaultAtlasRows     = 2
	DefaultAtlasTileSize = 32
	DefaultTexturePath   = "assets/sprites.png"

	// MaxAtlasDimension caps columns, rows and tile size.
	MaxAtlasDimension = 4096
)

// Atlas describes a texture split into a uniform grid of square tiles,
// numbered left to right, top to bottom.
type Atlas struct {
	Columns  uint32
	Rows     uint32
	TileSize uint32
}

// NewAtlas returns an atlas with every dimension clamped to
// [1, MaxAtlasDimension], so lookups never divide by zero and the tile count
// fits in a uint32.
func NewAtlas(columns, rows, tileSize uint32) Atlas {
	return Atlas{
		Columns:  clampDimension(columns),
		Rows:     clampDimension(rows),
		TileSize: clampDimension(tileSize),
	}
}

func clampDimension(v uint32) uint32 {
	return min(max(v, 1), MaxAtlasDimension)
}

// TileCount returns the number of tiles in the atlas, at least 1.
func (a Atlas) TileCount() uint32 {
	return uint32(min(a.tileCount(), math.MaxUint32))
}

func (a Atlas) tileCount() uint64 {
	return max(uint64(a.Columns)*uint64(a.Rows), 1)
}

// UV returns the normalized texture rectangle of tile. Tile indices wrap
// modulo the tile count.
func (a Atlas) UV(tile uint32) (uvMin, uvMax Vec2) {
	columns := max(a.Columns, 1)
	rows := max(a.Rows, 1)
	idx := uint64(tile) % a.tileCount()
	tx := idx % uint64(columns)
	ty := idx / uint64(columns)
	w := 1.0 / float64(columns)
	h := 1.0 / float64(rows)
	uvMin = Vec2{float64(tx) * w, float64(ty) * h}
	uvMax = Vec2{float64(tx+1) * w, float64(ty+1) * h}
	return uvMin, uvMax
}

// Size returns the texture size in pixels implied by the grid.
func (a Atlas) Size() (width, height int) {
	return int(a.Columns) * int(a.TileSize), int(a.Rows) * int(a.TileSize)
}

// AtlasConfig is the on-disk atlas descriptor. Both JSON and YAML
// descriptors are accepted.
type AtlasConfig struct {
	Texture  string `yaml:"texture"`
	Columns  uint32 `yaml:"columns"`
	Rows     uint32 `yaml:"rows"`
	TileSize uint32 `yaml:"tile_size"`
}

// DefaultAtlasConfig returns the descriptor used when none is available.
func DefaultAtlasConfig() AtlasConfig {
	return AtlasConfig{
		Columns:  DefaultAtlasColumns,
		Rows:     DefaultAtlasRows,
		TileSize: DefaultAtlasTileSize,
	}
}

// ParseAtlasConfig decodes an atlas descriptor. Fields absent from data keep
// their default values.
func ParseAtlasConfig(data []byte) (AtlasConfig, error) {
	cfg := DefaultAtlasConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultAtlasConfig(), fmt.Errorf("parse atlas descriptor: %w", err)
	}
	return cfg, nil
}

// Atlas returns the grid described by the descriptor.
func (c AtlasConfig) Atlas() Atlas {
	return NewAtlas(c.Columns, c.Rows, c.TileSize)
}

// TexturePath returns the configured texture path or the default one.
func (c AtlasConfig) TexturePath() string {
	if c.Texture == "" {
		return DefaultTexturePath
	}
	return c.Texture
}
