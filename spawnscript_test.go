package engine2d

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"
)

func TestDefaultSpawnParams(t *testing.T) {
	p := DefaultSpawnParams(7, 4)
	assertVec(t, "position", p.Position, Vec2{1*110 - 220, 1*110 - 160})
	sin, cos := math.Sincos(7 * 0.7)
	assertVec(t, "velocity", p.Velocity, Vec2{cos * 120, sin * 120})
	if p.Tile != 3 {
		t.Errorf("Tile = %d, want 3", p.Tile)
	}
	if p.Spin != -0.3 {
		t.Errorf("Spin = %v, want -0.3 for odd counters", p.Spin)
	}
	if p.ColorIndex != 7 {
		t.Errorf("ColorIndex = %d, want 7", p.ColorIndex)
	}

	if DefaultSpawnParams(2, 0).Tile != 0 {
		t.Error("zero tile count should not divide by zero")
	}
	if DefaultSpawnParams(2, 4).Spin != 0.4 {
		t.Error("even counters spin 0.4")
	}
}

func TestSpawnScriptParams(t *testing.T) {
	s, err := NewSpawnScript(`
function spawn(counter, tile_count)
  return { x = counter * 10, y = -5, vx = 1, vy = 2, spin = 0.5, tile = tile_count - 1, color = 3 }
end
`, zaptest.NewLogger(t))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	p, err := s.Params(4, 8)
	if err != nil {
		t.Fatal(err)
	}
	want := SpawnParams{Position: Vec2{40, -5}, Velocity: Vec2{1, 2}, Tile: 7, Spin: 0.5, ColorIndex: 3}
	if p != want {
		t.Errorf("Params = %+v, want %+v", p, want)
	}
}

func TestSpawnScriptPartialTable(t *testing.T) {
	s, err := NewSpawnScript(`function spawn(c, n) return { x = 1, tile = -2 } end`, zaptest.NewLogger(t))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	p, err := s.Params(5, 4)
	if err != nil {
		t.Fatal(err)
	}
	def := DefaultSpawnParams(5, 4)
	if p.Position.X != 1 || p.Position.Y != def.Position.Y {
		t.Errorf("Position = %v, want x overridden only", p.Position)
	}
	if p.Tile != def.Tile {
		t.Errorf("Tile = %d, want default %d for a negative value", p.Tile, def.Tile)
	}
	if p.Velocity != def.Velocity || p.ColorIndex != def.ColorIndex {
		t.Errorf("Params = %+v, want defaults for missing fields", p)
	}
}

func TestSpawnScriptLargeIndices(t *testing.T) {
	s, err := NewSpawnScript(`function spawn(c, n) return { tile = 2^40 + 5, color = 2^40 + 3 } end`, zaptest.NewLogger(t))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	p, err := s.Params(0, 4)
	if err != nil {
		t.Fatal(err)
	}
	if p.Tile != 1 {
		t.Errorf("Tile = %d, want (2^40+5) mod 4 = 1", p.Tile)
	}
	if p.ColorIndex < 0 || p.ColorIndex >= math.MaxInt32 {
		t.Errorf("ColorIndex = %d, want reduced into int32 range", p.ColorIndex)
	}
}

func TestSpawnScriptNonFiniteTile(t *testing.T) {
	s, err := NewSpawnScript(`function spawn(c, n) return { tile = 1/0, color = 0/0 } end`, zaptest.NewLogger(t))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	p, err := s.Params(6, 4)
	if err != nil {
		t.Fatal(err)
	}
	def := DefaultSpawnParams(6, 4)
	if p.Tile != def.Tile || p.ColorIndex != def.ColorIndex {
		t.Errorf("Params = %+v, want default tile and color for non-finite values", p)
	}
}

func TestSpawnScriptErrors(t *testing.T) {
	tests := []struct {
		name, src, want string
	}{
		{"no function", `spawn = 3`, "not a function"},
		{"runtime error", `function spawn() error("boom") end`, "boom"},
		{"not a table", `function spawn() return 5 end`, "not a table"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSpawnScript(tt.src, zaptest.NewLogger(t))
			if err != nil {
				t.Fatal(err)
			}
			defer s.Close()
			p, err := s.Params(1, 4)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want containing %q", err, tt.want)
			}
			if p != DefaultSpawnParams(1, 4) {
				t.Errorf("Params on error = %+v, want defaults", p)
			}
		})
	}
}

func TestSpawnScriptSyntaxError(t *testing.T) {
	if _, err := NewSpawnScript(`function spawn(`, zaptest.NewLogger(t)); err == nil {
		t.Error("expected syntax error")
	}
}

func TestLoadSpawnScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spawn.lua")
	if err := os.WriteFile(path, []byte(`function spawn(c, n) return { spin = API_VERSION } end`), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := LoadSpawnScript(path, zaptest.NewLogger(t))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	p, err := s.Params(0, 1)
	if err != nil {
		t.Fatal(err)
	}
	if p.Spin != 1 {
		t.Errorf("Spin = %v, want API_VERSION 1", p.Spin)
	}

	if _, err := LoadSpawnScript(filepath.Join(t.TempDir(), "missing.lua"), zaptest.NewLogger(t)); err == nil {
		t.Error("expected error for missing script")
	}
}
