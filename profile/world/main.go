// Profiling:
// go build ./profile/world
// go tool pprof -http=":8000" -nodefraction=0.001 ./world cpu.pprof

package main

import (
	"math"

	"github.com/pkg/profile"

	"github.com/phanxgames/engine2d"
)

func main() {
	rounds := 20
	frames := 600
	entities := 10000
	p := profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook)
	run(rounds, frames, entities)
	p.Stop()
}

func run(rounds, frames, numEntities int) {
	atlas := engine2d.NewAtlas(4, 4, 32)
	bounds := engine2d.Vec2{X: 1000, Y: 1000}
	var buf []engine2d.Instance
	for range rounds {
		w := engine2d.NewWorld()
		ents := make([]engine2d.Entity, 0, numEntities)
		for i := range numEntities {
			sin, cos := math.Sincos(float64(i))
			body := engine2d.NewBody(engine2d.Vec2{X: cos * 200, Y: sin * 200})
			s := engine2d.NewSprite(engine2d.Splat(16), uint32(i))
			s.Spin = 0.5
			e := w.Spawn(engine2d.NewTransform(engine2d.Vec2{X: float64(i%200) * 5, Y: float64(i/200) * 5}), s, &body)
			// Chains of four: every entity not starting a chain follows the previous one.
			if i%4 != 0 {
				w.SetParent(e, ents[i-1])
			}
			ents = append(ents, e)
		}
		for f := range frames {
			w.StepPhysics(1.0/60.0, bounds)
			w.UpdateAnimations(1.0 / 60.0)
			buf = engine2d.AppendInstances(buf, w, atlas)
			// Churn: recycle a slice of entities every frame.
			if f%10 == 0 {
				for j := f % 4; j < len(ents); j += 97 {
					w.Destroy(ents[j])
					ents[j] = w.Spawn(engine2d.NewTransform(engine2d.Vec2{}), engine2d.NewSprite(engine2d.Splat(16), 0), nil)
				}
			}
		}
	}
}
