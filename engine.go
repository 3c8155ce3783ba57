package engine2d

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
	"go.uber.org/zap"
)

// palette is the tint cycle for the player and spawned sprites.
var palette = [6]Color{
	{1.0, 1.0, 1.0, 1.0},
	{0.95, 0.75, 0.65, 1.0},
	{0.65, 0.9, 0.7, 1.0},
	{0.6, 0.7, 0.95, 1.0},
	{0.95, 0.85, 0.5, 1.0},
	{0.85, 0.7, 0.95, 1.0},
}

const controlsHelp = "arrows move sprite, WASD pan, Q/E zoom, Z/X rotate, C tint, N spawn, Space reset, P pause, F12 screenshot"

// Engine is the frame orchestrator. It owns the World and drives it from an
// ebiten game loop: input, fixed steps, asset reload, instance upload, draw.
// All of its methods run on the ebiten game goroutine.
type Engine struct {
	cfg   *Config
	log   *zap.Logger
	debug bool

	world    *World
	assets   *Assets
	renderer *SpriteRenderer
	sinks    []InstanceSink
	input    *InputState
	clock    *Clock
	camera   *Camera

	playback    *Playback
	spawnScript *SpawnScript

	player       Entity
	tweens       []*TweenGroup
	instances    []Instance
	paused       bool
	playerColor  int
	spawnCounter uint32

	screenshotQueue []string

	// windowed is set by Run; it enables ebiten input polling and window
	// title updates.
	windowed bool
}

// NewEngine creates an engine with the demo scene populated. assets supplies
// the atlas and texture; its texture may be nil.
func NewEngine(cfg *Config, log *zap.Logger, assets *Assets) *Engine {
	renderer := NewSpriteRenderer()
	renderer.ClearColor = cfg.ClearColor()
	renderer.SetTexture(assets.Texture)

	e := &Engine{
		cfg:      cfg,
		log:      log,
		debug:    cfg.Debug.Enabled,
		world:    NewWorld(),
		assets:   assets,
		renderer: renderer,
		sinks:    []InstanceSink{renderer},
		input:    NewInputState(),
		clock:    NewClock(cfg.Sim.FixedDT, cfg.Sim.MaxDT),
		camera:   NewCamera(Vec2{float64(cfg.Window.Width), float64(cfg.Window.Height)}),
	}
	e.populate()
	return e
}

// populate spawns the demo scene: the player with an orbiting child and three
// bouncing bodies, one of them animated.
func (e *Engine) populate() {
	size := e.cfg.Player.SpriteSize
	w := e.world

	player := NewSprite(Splat(size), 0)
	player.Color = palette[0]
	e.player = w.Spawn(NewTransform(Vec2{}), player, nil)

	moon := NewSprite(Splat(size*0.35), 1)
	moon.Color = palette[5]
	moon.Spin = 1.2
	child := w.Spawn(NewTransform(Vec2{0, size * 0.7}), moon, nil)
	e.attach(child, e.player)

	bouncers := []struct {
		pos, vel Vec2
		scale    float64
		tile     uint32
		color    int
		spin     float64
		anim     *Animation
	}{
		{Vec2{220, -80}, Vec2{80, 140}, 0.75, 1, 2, 0.6, NewAnimation([]uint32{0, 1, 2, 3}, 6)},
		{Vec2{-240, 140}, Vec2{-120, 60}, 0.9, 2, 3, -0.4, nil},
		{Vec2{-100, -200}, Vec2{140, -90}, 0.6, 3, 4, 0.2, nil},
	}
	for _, b := range bouncers {
		s := NewSprite(Splat(size*b.scale), b.tile)
		s.Color = palette[b.color]
		s.Spin = b.spin
		s.Animation = b.anim
		body := NewBody(b.vel)
		w.Spawn(NewTransform(b.pos), s, &body)
	}
	e.spawnCounter = 4
}

// attach parents child under parent.
func (e *Engine) attach(child, parent Entity) {
	e.world.SetParent(child, parent)
	e.debugCheckTreeDepth(child)
}

// World returns the engine's entity store.
func (e *Engine) World() *World { return e.world }

// Camera returns the engine's camera.
func (e *Engine) Camera() *Camera { return e.camera }

// Input returns the engine's input state.
func (e *Engine) Input() *InputState { return e.input }

// Player returns the player entity.
func (e *Engine) Player() Entity { return e.player }

// Paused reports whether fixed updates are suspended.
func (e *Engine) Paused() bool { return e.paused }

// Renderer returns the ebiten sprite renderer.
func (e *Engine) Renderer() *SpriteRenderer { return e.renderer }

// AddSink registers an additional receiver of the per-frame instance set.
func (e *Engine) AddSink(sink InstanceSink) {
	e.sinks = append(e.sinks, sink)
}

// SetSpawnScript sets the Lua hook that chooses spawn parameters.
func (e *Engine) SetSpawnScript(s *SpawnScript) {
	e.spawnScript = s
}

// SetPlayback attaches a playback script, stepped once per frame.
func (e *Engine) SetPlayback(p *Playback) {
	e.playback = p
}

// Update implements ebiten.Game. It runs one frame.
func (e *Engine) Update() error {
	dt := e.clock.Advance()
	if fps, ok := e.clock.UpdateFPS(dt); ok && e.windowed {
		ebiten.SetWindowTitle(e.windowTitle(fps))
	}
	if e.windowed {
		e.input.Poll()
	}
	e.frame(dt)
	return nil
}

// frame runs everything after input polling: playback, fixed steps, camera
// animation, asset reload and the instance upload.
func (e *Engine) frame(dt float64) {
	var stats frameStats
	var t0 time.Time
	if e.debug {
		t0 = time.Now()
	}

	if e.playback != nil {
		e.playback.step(e.input, e.Screenshot)
	}
	stats.steps = e.clock.ConsumeFixedSteps()
	for i := range stats.steps {
		e.fixedUpdate(e.clock.FixedDT(), i == 0)
	}
	e.camera.Update(float32(dt))

	if e.cfg.Assets.HotReload && e.assets.ReloadIfChanged() {
		e.renderer.SetTexture(e.assets.Texture)
	}

	if e.debug {
		stats.stepTime = time.Since(t0)
		t0 = time.Now()
	}

	e.instances = AppendInstances(e.instances, e.world, e.assets.Atlas)

	if e.debug {
		stats.buildTime = time.Since(t0)
		t0 = time.Now()
	}

	for _, sink := range e.sinks {
		sink.UploadInstances(e.instances)
	}

	if e.debug {
		stats.uploadTime = time.Since(t0)
		stats.instances = len(e.instances)
		stats.live = e.world.LiveCount()
		e.debugLog(stats)
	}

	// Transitions survive frames that ran no fixed step.
	if stats.steps > 0 {
		e.input.FinishFrame()
	}
}

// fixedUpdate advances the simulation by one fixed step. Held keys act on
// every step; key presses act once per frame, on its first step.
func (e *Engine) fixedUpdate(dt float64, first bool) {
	if first {
		e.applyActions()
	}
	if e.paused {
		return
	}

	e.applyPlayerInput(dt)
	e.applyCameraInput(dt)

	e.world.StepPhysics(dt, e.cfg.Bounds())
	e.world.UpdateAnimations(dt)
	e.updateTweens(float32(dt))
}

// applyActions handles the keys that trigger one-shot actions.
func (e *Engine) applyActions() {
	in := e.input

	if in.IsJustPressed(ebiten.KeyP) {
		e.paused = !e.paused
		e.log.Info("pause toggled", zap.Bool("paused", e.paused))
	}
	if in.IsJustPressed(ebiten.KeyH) {
		e.log.Info("controls: " + controlsHelp)
	}
	if in.IsJustPressed(ebiten.KeyF12) {
		e.Screenshot("manual")
	}
	if e.paused {
		return
	}

	if in.IsJustPressed(ebiten.KeySpace) {
		e.camera.ScrollTo(Vec2{}, e.cfg.Camera.ResetDuration, ease.OutCubic)
		e.camera.Zoom = 1
		if t := e.world.Transform(e.player); t != nil {
			t.Position = Vec2{}
			t.Rotation = 0
		}
	}
	if in.IsJustPressed(ebiten.KeyC) {
		e.playerColor = (e.playerColor + 1) % len(palette)
		if s := e.world.Sprite(e.player); s != nil {
			s.Color = palette[e.playerColor]
		}
	}
	if in.IsJustPressed(ebiten.KeyN) {
		e.spawnNext()
	}
}

func (e *Engine) applyPlayerInput(dt float64) {
	in := e.input
	t := e.world.Transform(e.player)
	if t == nil {
		return
	}
	dir := Vec2{
		in.axis(ebiten.KeyArrowLeft, ebiten.KeyArrowRight),
		in.axis(ebiten.KeyArrowDown, ebiten.KeyArrowUp),
	}
	if dir.LengthSquared() > 0 {
		t.Position = t.Position.Add(dir.Normalize().Scale(e.cfg.Player.MoveSpeed * dt))
	}
	if in.IsPressed(ebiten.KeyZ) {
		t.Rotation -= e.cfg.Player.RotateSpeed * dt
	}
	if in.IsPressed(ebiten.KeyX) {
		t.Rotation += e.cfg.Player.RotateSpeed * dt
	}
}

func (e *Engine) applyCameraInput(dt float64) {
	in := e.input
	cam := e.camera
	cc := e.cfg.Camera

	dir := Vec2{in.axis(ebiten.KeyA, ebiten.KeyD), in.axis(ebiten.KeyS, ebiten.KeyW)}
	if dir.LengthSquared() > 0 {
		cam.CancelScroll()
		cam.Position = cam.Position.Add(dir.Normalize().Scale(cc.MoveSpeed * dt))
	}
	if in.IsPressed(ebiten.KeyQ) {
		cam.Zoom = min(cam.Zoom*(1+cc.ZoomSpeed*dt), cc.MaxZoom)
	}
	if in.IsPressed(ebiten.KeyE) {
		cam.Zoom = max(cam.Zoom*(1-cc.ZoomSpeed*dt), cc.MinZoom)
	}
}

// spawnNext creates the next bouncing sprite, asking the spawn script for
// its parameters when one is set.
func (e *Engine) spawnNext() Entity {
	tileCount := e.assets.Atlas.TileCount()
	params := DefaultSpawnParams(e.spawnCounter, tileCount)
	if e.spawnScript != nil {
		p, err := e.spawnScript.Params(e.spawnCounter, tileCount)
		if err != nil {
			e.log.Warn("spawn script failed, using defaults", zap.Uint32("counter", e.spawnCounter), zap.Error(err))
		} else {
			params = p
		}
	}

	s := NewSprite(Splat(e.cfg.Player.SpriteSize*0.6), params.Tile)
	s.Color = palette[params.ColorIndex%len(palette)]
	s.Spin = params.Spin
	body := NewBody(params.Velocity)

	t := NewTransform(params.Position)
	popIn := e.cfg.Player.SpawnTween > 0
	if popIn {
		t.Scale = Vec2{}
	}
	ent := e.world.Spawn(t, s, &body)
	if popIn {
		e.tweens = append(e.tweens, TweenScale(e.world, ent, Vec2One, e.cfg.Player.SpawnTween, ease.OutBack))
	}

	e.log.Debug("spawned", zap.Stringer("entity", ent), zap.Uint32("counter", e.spawnCounter))
	e.spawnCounter++
	return ent
}

// updateTweens advances active tween groups and drops finished ones.
func (e *Engine) updateTweens(dt float32) {
	live := e.tweens[:0]
	for _, g := range e.tweens {
		g.Update(dt)
		if !g.Done {
			live = append(live, g)
		}
	}
	clear(e.tweens[len(live):])
	e.tweens = live
}

func (e *Engine) windowTitle(fps float64) string {
	marker := ""
	if e.paused {
		marker = " [paused]"
	}
	return fmt.Sprintf("%s - %.0f fps%s", e.cfg.Window.Title, fps, marker)
}

// Draw implements ebiten.Game.
func (e *Engine) Draw(screen *ebiten.Image) {
	e.renderer.Draw(screen, e.camera)
	e.flushScreenshots(screen)
}

// Layout implements ebiten.Game. The viewport follows the window size.
func (e *Engine) Layout(outsideWidth, outsideHeight int) (int, int) {
	e.camera.Viewport = Vec2{float64(max(outsideWidth, 1)), float64(max(outsideHeight, 1))}
	return max(outsideWidth, 1), max(outsideHeight, 1)
}
