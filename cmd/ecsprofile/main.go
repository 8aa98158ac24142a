// Command ecsprofile drives a synthetic world under CPU or heap profiling:
// each round builds a world, fills it with moving entities, runs a fixed
// number of ticks of family iteration and component access, and disposes
// it.
//
// Usage:
//
//	go build ./cmd/ecsprofile
//	./ecsprofile -mode=cpu
//	go tool pprof -http=":8000" ./cpu.pprof
package main

import (
	"flag"

	"github.com/aspectecs/ecs"
	"github.com/pkg/profile"
)

type position struct{ X, Y float64 }
type velocity struct{ DX, DY float64 }

type movement struct {
	ecs.IteratingSystem
	positions  *ecs.ComponentMapper[position]
	velocities *ecs.ComponentMapper[velocity]
}

func (s *movement) OnTickEntity(w *ecs.World, e ecs.Entity) {
	pos := s.positions.GetPtr(e)
	vel := s.velocities.Get(e)
	pos.X += vel.DX
	pos.Y += vel.DY
}

func main() {
	mode := flag.String("mode", "cpu", "cpu or mem")
	rounds := flag.Int("rounds", 20, "number of world rebuild rounds")
	ticks := flag.Int("ticks", 500, "ticks per round")
	entities := flag.Int("entities", 5000, "entities per round")
	flag.Parse()

	var p interface{ Stop() }
	if *mode == "mem" {
		p = profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook)
	} else {
		p = profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook)
	}
	run(*rounds, *ticks, *entities)
	p.Stop()
}

func run(rounds, ticks, numEntities int) {
	for r := 0; r < rounds; r++ {
		w := ecs.NewWorld()
		positions, positionType := ecs.RegisterComponent[position](w)
		velocities, velocityType := ecs.RegisterComponent[velocity](w)

		moving := w.Family(ecs.NewFamilySpec(ecs.AllOf(positionType.ID(), velocityType.ID())))
		ecs.AddSystem(w, "movement", &movement{
			IteratingSystem: ecs.NewIteratingSystem("movement", moving),
			positions:       positions,
			velocities:      velocities,
		})

		for i := 0; i < numEntities; i++ {
			w.Create(func(e ecs.Entity) {
				positions.Add(e, position{})
				velocities.Add(e, velocity{DX: 1, DY: 1})
			})
		}

		for t := 0; t < ticks; t++ {
			w.Update(1.0 / 60.0)
		}

		w.Dispose()
	}
}
