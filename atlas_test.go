package engine2d

import (
	"testing"
)

const atlasJSON = `{
  "texture": "art/tiles.png",
  "columns": 4,
  "rows": 2,
  "tile_size": 16
}`

const atlasYAML = `
texture: art/tiles.png
columns: 4
rows: 2
tile_size: 16
`

func TestNewAtlasFloorsToOne(t *testing.T) {
	a := NewAtlas(0, 0, 0)
	if a.Columns != 1 || a.Rows != 1 || a.TileSize != 1 {
		t.Errorf("NewAtlas(0,0,0) = %+v, want all 1", a)
	}
	if a.TileCount() != 1 {
		t.Errorf("TileCount = %d, want 1", a.TileCount())
	}
}

func TestAtlasUV(t *testing.T) {
	a := NewAtlas(2, 2, 32)
	tests := []struct {
		tile     uint32
		min, max Vec2
	}{
		{0, Vec2{0, 0}, Vec2{0.5, 0.5}},
		{1, Vec2{0.5, 0}, Vec2{1, 0.5}},
		{2, Vec2{0, 0.5}, Vec2{0.5, 1}},
		{3, Vec2{0.5, 0.5}, Vec2{1, 1}},
		{4, Vec2{0, 0}, Vec2{0.5, 0.5}}, // wraps
		{7, Vec2{0.5, 0.5}, Vec2{1, 1}},
	}
	for _, tt := range tests {
		gotMin, gotMax := a.UV(tt.tile)
		if gotMin != tt.min || gotMax != tt.max {
			t.Errorf("UV(%d) = %v, %v, want %v, %v", tt.tile, gotMin, gotMax, tt.min, tt.max)
		}
	}
}

func TestAtlasUVZeroValue(t *testing.T) {
	var a Atlas
	gotMin, gotMax := a.UV(5)
	if gotMin != (Vec2{}) || gotMax != Vec2One {
		t.Errorf("zero atlas UV = %v, %v, want full texture", gotMin, gotMax)
	}
}

func TestAtlasOversizedDescriptor(t *testing.T) {
	cfg, err := ParseAtlasConfig([]byte(`{"columns": 65536, "rows": 65536, "tile_size": 100000}`))
	if err != nil {
		t.Fatal(err)
	}
	a := cfg.Atlas()
	if a.Columns != MaxAtlasDimension || a.Rows != MaxAtlasDimension || a.TileSize != MaxAtlasDimension {
		t.Errorf("Atlas = %+v, want every dimension clamped to %d", a, MaxAtlasDimension)
	}
	if got := a.TileCount(); got != MaxAtlasDimension*MaxAtlasDimension {
		t.Errorf("TileCount = %d, want %d", got, MaxAtlasDimension*MaxAtlasDimension)
	}
	gotMin, gotMax := a.UV(3)
	w := 1.0 / MaxAtlasDimension
	if gotMin != (Vec2{3 * w, 0}) || gotMax != (Vec2{4 * w, w}) {
		t.Errorf("UV(3) = %v, %v", gotMin, gotMax)
	}
	if sw, sh := a.Size(); sw != MaxAtlasDimension*MaxAtlasDimension || sh != sw {
		t.Errorf("Size = %dx%d", sw, sh)
	}
}

// An Atlas built directly may hold dimensions whose product overflows uint32.
func TestAtlasUVProductOverflow(t *testing.T) {
	a := Atlas{Columns: 65536, Rows: 65536, TileSize: 1}
	if a.TileCount() == 0 {
		t.Fatal("TileCount wrapped to 0")
	}
	gotMin, gotMax := a.UV(65537)
	w := 1.0 / 65536
	if gotMin != (Vec2{w, w}) || gotMax != (Vec2{2 * w, 2 * w}) {
		t.Errorf("UV(65537) = %v, %v", gotMin, gotMax)
	}
}

func TestAtlasSize(t *testing.T) {
	w, h := NewAtlas(4, 2, 16).Size()
	if w != 64 || h != 32 {
		t.Errorf("Size = %dx%d, want 64x32", w, h)
	}
}

func TestParseAtlasConfig(t *testing.T) {
	for name, data := range map[string]string{"json": atlasJSON, "yaml": atlasYAML} {
		cfg, err := ParseAtlasConfig([]byte(data))
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		want := AtlasConfig{Texture: "art/tiles.png", Columns: 4, Rows: 2, TileSize: 16}
		if cfg != want {
			t.Errorf("%s: cfg = %+v, want %+v", name, cfg, want)
		}
		if cfg.TexturePath() != "art/tiles.png" {
			t.Errorf("%s: TexturePath = %q", name, cfg.TexturePath())
		}
		if cfg.Atlas().TileCount() != 8 {
			t.Errorf("%s: TileCount = %d, want 8", name, cfg.Atlas().TileCount())
		}
	}
}

func TestParseAtlasConfigPartial(t *testing.T) {
	cfg, err := ParseAtlasConfig([]byte(`{"columns": 3}`))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Columns != 3 || cfg.Rows != DefaultAtlasRows || cfg.TileSize != DefaultAtlasTileSize {
		t.Errorf("cfg = %+v, want defaults for missing fields", cfg)
	}
	if cfg.TexturePath() != DefaultTexturePath {
		t.Errorf("TexturePath = %q, want %q", cfg.TexturePath(), DefaultTexturePath)
	}
}

func TestParseAtlasConfigZeroDimensions(t *testing.T) {
	cfg, err := ParseAtlasConfig([]byte(`{"columns": 0, "rows": 0, "tile_size": 0}`))
	if err != nil {
		t.Fatal(err)
	}
	a := cfg.Atlas()
	if a.Columns != 1 || a.Rows != 1 || a.TileSize != 1 {
		t.Errorf("Atlas = %+v, want dimensions floored to 1", a)
	}
}

func TestParseAtlasConfigInvalid(t *testing.T) {
	cfg, err := ParseAtlasConfig([]byte(`{"columns": "many"`))
	if err == nil {
		t.Fatal("expected error for malformed descriptor")
	}
	if cfg != DefaultAtlasConfig() {
		t.Errorf("cfg = %+v, want defaults on error", cfg)
	}
}
