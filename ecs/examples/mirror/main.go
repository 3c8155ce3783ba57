// Mirror runs a headless engine2d world and keeps a Donburi world in sync
// with it through the lifecycle event bridge: every live engine2d entity has
// one Donburi entity holding its handle and current parent.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/yohamta/donburi"
	"go.uber.org/zap"

	"github.com/phanxgames/engine2d"
	"github.com/phanxgames/engine2d/ecs"
)

// Mirrored is the Donburi-side view of an engine2d entity.
type Mirrored struct {
	Handle engine2d.Entity
	Parent engine2d.Entity
}

var MirroredType = donburi.NewComponentType[Mirrored]()

type mirror struct {
	world    donburi.World
	entities map[engine2d.Entity]donburi.Entity
	counts   [4]int
	log      *zap.Logger
}

func newMirror(world donburi.World, log *zap.Logger) *mirror {
	m := &mirror{
		world:    world,
		entities: make(map[engine2d.Entity]donburi.Entity),
		log:      log,
	}
	ecs.LifecycleEventType.Subscribe(world, m.apply)
	return m
}

func (m *mirror) apply(w donburi.World, ev engine2d.LifecycleEvent) {
	if int(ev.Type) < len(m.counts) {
		m.counts[ev.Type]++
	}
	switch ev.Type {
	case engine2d.EventSpawned:
		de := w.Create(MirroredType)
		MirroredType.SetValue(w.Entry(de), Mirrored{Handle: ev.Entity})
		m.entities[ev.Entity] = de
	case engine2d.EventDestroyed:
		if de, ok := m.entities[ev.Entity]; ok {
			w.Remove(de)
			delete(m.entities, ev.Entity)
		}
	case engine2d.EventReparented, engine2d.EventUnparented:
		de, ok := m.entities[ev.Entity]
		if !ok {
			m.log.Warn("event for unmirrored entity", zap.Stringer("entity", ev.Entity))
			return
		}
		MirroredType.Get(w.Entry(de)).Parent = ev.Parent
	}
}

func main() {
	frames := flag.Int("frames", 600, "fixed steps to simulate")
	churn := flag.Int("churn", 30, "destroy and respawn one entity every N steps")
	flag.Parse()

	log, err := engine2d.NewLogger(engine2d.LoggingConfig{Level: "info", Format: "console"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(*frames, max(*churn, 1), log); err != nil {
		log.Fatal("mirror failed", zap.Error(err))
	}
}

func run(frames, churn int, log *zap.Logger) error {
	const dt = 1.0 / 60.0
	bounds := engine2d.Vec2{X: 520, Y: 320}
	atlas := engine2d.NewAtlas(engine2d.DefaultAtlasColumns, engine2d.DefaultAtlasRows, engine2d.DefaultAtlasTileSize)

	dw := donburi.NewWorld()
	m := newMirror(dw, log)

	w := engine2d.NewWorld()
	w.SetEventSink(ecs.NewDonburiSink(dw))

	root := w.SpawnContainer(engine2d.NewTransform(engine2d.Vec2{}), nil)
	var live []engine2d.Entity
	var counter uint32
	spawn := func() {
		p := engine2d.DefaultSpawnParams(counter, atlas.TileCount())
		body := engine2d.NewBody(p.Velocity)
		s := engine2d.NewSprite(engine2d.Splat(48), p.Tile)
		s.Spin = p.Spin
		e := w.Spawn(engine2d.NewTransform(p.Position), s, &body)
		if counter%3 == 0 {
			w.SetParent(e, root)
		}
		live = append(live, e)
		counter++
	}
	for range 12 {
		spawn()
	}

	var instances []engine2d.Instance
	for step := 1; step <= frames; step++ {
		w.StepPhysics(dt, bounds)
		w.UpdateAnimations(dt)
		if step%churn == 0 && len(live) > 0 {
			victim := live[0]
			live = live[1:]
			w.Destroy(victim)
			spawn()
		}
		instances = engine2d.AppendInstances(instances, w, atlas)
		ecs.LifecycleEventType.ProcessEvents(dw)
	}

	if got, want := dw.Len(), w.LiveCount(); got != want {
		return fmt.Errorf("donburi world holds %d entities, engine2d world %d", got, want)
	}
	for e, de := range m.entities {
		if !w.Alive(e) {
			return fmt.Errorf("mirror kept destroyed entity %v", e)
		}
		parent, _ := w.Parent(e)
		if got := MirroredType.Get(dw.Entry(de)).Parent; got != parent {
			return fmt.Errorf("entity %v mirrored parent %v, want %v", e, got, parent)
		}
	}

	log.Info("mirror in sync",
		zap.Int("steps", frames),
		zap.Int("live", w.LiveCount()),
		zap.Int("instances", len(instances)),
		zap.Int("spawned", m.counts[engine2d.EventSpawned]),
		zap.Int("destroyed", m.counts[engine2d.EventDestroyed]),
		zap.Int("reparented", m.counts[engine2d.EventReparented]))
	return nil
}
