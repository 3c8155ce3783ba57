package engine2d

import (
	"fmt"
	"math"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// SpawnParams describes an entity created by the spawn key.
type SpawnParams struct {
	Position   Vec2
	Velocity   Vec2
	Tile       uint32
	Spin       float64
	ColorIndex int
}

// DefaultSpawnParams lays spawned entities out on a six-wide grid, cycles
// tiles and palette colors, alternates spin direction and launches each one
// at 120 units/s in a direction that turns 0.7 rad per spawn.
func DefaultSpawnParams(counter, tileCount uint32) SpawnParams {
	gx := float64(counter % 6)
	gy := float64(counter / 6)
	spin := 0.4
	if counter%2 != 0 {
		spin = -0.3
	}
	sin, cos := math.Sincos(float64(counter) * 0.7)
	return SpawnParams{
		Position:   Vec2{gx*110 - 220, gy*110 - 160},
		Velocity:   Vec2{cos * 120, sin * 120},
		Tile:       counter % max(tileCount, 1),
		Spin:       spin,
		ColorIndex: int(counter),
	}
}

// SpawnScript wraps a gopher-lua VM exposing a global function
//
//	spawn(counter, tile_count) -> { x=, y=, vx=, vy=, tile=, spin=, color= }
//
// Fields left out of the returned table keep their DefaultSpawnParams value.
// tile wraps modulo tile_count.
// Single-goroutine access only (frame loop).
type SpawnScript struct {
	vm  *lua.LState
	log *zap.Logger
}

// LoadSpawnScript creates a VM and runs the script file at path.
func LoadSpawnScript(path string, log *zap.Logger) (*SpawnScript, error) {
	s := newSpawnScript(log)
	if err := s.vm.DoFile(path); err != nil {
		s.vm.Close()
		return nil, fmt.Errorf("load spawn script %s: %w", path, err)
	}
	log.Debug("loaded lua script", zap.String("file", path))
	return s, nil
}

// NewSpawnScript creates a VM and runs source.
func NewSpawnScript(source string, log *zap.Logger) (*SpawnScript, error) {
	s := newSpawnScript(log)
	if err := s.vm.DoString(source); err != nil {
		s.vm.Close()
		return nil, fmt.Errorf("load spawn script: %w", err)
	}
	return s, nil
}

func newSpawnScript(log *zap.Logger) *SpawnScript {
	vm := lua.NewState(lua.Options{SkipOpenLibs: false})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))
	return &SpawnScript{vm: vm, log: log}
}

// Close releases the VM.
func (s *SpawnScript) Close() {
	s.vm.Close()
}

// Params calls the script's spawn function.
func (s *SpawnScript) Params(counter, tileCount uint32) (SpawnParams, error) {
	p := DefaultSpawnParams(counter, tileCount)

	fn := s.vm.GetGlobal("spawn")
	if fn.Type() != lua.LTFunction {
		return p, fmt.Errorf("spawn script: global spawn is %s, not a function", fn.Type())
	}
	if err := s.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, lua.LNumber(counter), lua.LNumber(tileCount)); err != nil {
		return p, fmt.Errorf("spawn script: %w", err)
	}
	result := s.vm.Get(-1)
	s.vm.Pop(1)

	rt, ok := result.(*lua.LTable)
	if !ok {
		return p, fmt.Errorf("spawn script: spawn returned %s, not a table", result.Type())
	}

	number := func(key string, dst *float64) {
		if n, ok := rt.RawGetString(key).(lua.LNumber); ok {
			*dst = float64(n)
		}
	}
	number("x", &p.Position.X)
	number("y", &p.Position.Y)
	number("vx", &p.Velocity.X)
	number("vy", &p.Velocity.Y)
	number("spin", &p.Spin)
	if n, ok := rt.RawGetString("tile").(lua.LNumber); ok {
		if tile, ok := wrapIndex(n, max(tileCount, 1)); ok {
			p.Tile = tile
		}
	}
	if n, ok := rt.RawGetString("color").(lua.LNumber); ok {
		if color, ok := wrapIndex(n, math.MaxInt32); ok {
			p.ColorIndex = int(color)
		}
	}
	return p, nil
}

// wrapIndex truncates a Lua number and reduces it modulo count. Negative,
// NaN and infinite values are rejected.
func wrapIndex(n lua.LNumber, count uint32) (uint32, bool) {
	f := float64(n)
	if f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return uint32(math.Mod(math.Trunc(f), float64(count))), true
}
