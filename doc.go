// Package engine2d is a minimal 2D sprite engine for [Ebitengine].
//
// The core is [World], a flat entity store of parallel slot arrays with a
// free list. Entities are generational handles: destroying one frees its
// slot for reuse and invalidates every copy of the old handle.
//
//	w := engine2d.NewWorld()
//	body := engine2d.NewBody(engine2d.Vec2{X: 80, Y: 140})
//	ball := w.Spawn(engine2d.NewTransform(engine2d.Vec2{}), engine2d.NewSprite(engine2d.Splat(64), 1), &body)
//	moon := w.Spawn(engine2d.NewTransform(engine2d.Vec2{Y: 90}), engine2d.NewSprite(engine2d.Splat(24), 2), nil)
//	w.SetParent(moon, ball)
//
// # Frame pipeline
//
// Each fixed step runs [World.StepPhysics] then [World.UpdateAnimations].
// Rendering resolves world transforms with [World.ResolveWorldTransforms],
// visits every renderable entity in ascending slot order with
// [World.EachSprite], and packs the result into [Instance] values for an
// [InstanceSink]. [SpriteRenderer] draws instances with ebiten; the termview
// package draws them into a terminal.
//
// Hierarchy resolution never fails. A missing, stale or self-referential
// parent link, or a link that closes a cycle, makes the entity resolve as a
// root.
//
// # Engine
//
// [Engine] implements [ebiten.Game] around a World with the demo scene,
// keyboard controls, a fixed-step [Clock], a [Camera] and hot-reloaded
// [Assets]. [Run] opens a window for it:
//
//	cfg, err := engine2d.Load("config.toml")
//	if err != nil { ... }
//	log, _ := engine2d.NewLogger(cfg.Logging)
//	engine2d.Run(cfg, log)
//
// Spawn parameters can be scripted in Lua ([SpawnScript]) and input can be
// replayed from YAML ([LoadPlayback]). Lifecycle events can be forwarded to a
// [Donburi] world with the engine2d/ecs adapter.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package engine2d
