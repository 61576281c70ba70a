package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/lightcycle/components"
	"github.com/pthm-cable/lightcycle/geom"
)

// Spawner creates cycle entities.
type Spawner struct {
	mapper *ecs.Map4[components.Position, components.Motion, components.Cycle, components.Trail]
}

// NewSpawner creates a spawner for w.
func NewSpawner(w *ecs.World) *Spawner {
	return &Spawner{
		mapper: ecs.NewMap4[components.Position, components.Motion, components.Cycle, components.Trail](w),
	}
}

// Spawn adds a live cycle in slot index with an empty trail starting at pos.
func (s *Spawner) Spawn(index int, pos geom.Vec, h geom.Heading, speed float64, human bool) ecs.Entity {
	p := components.Position{X: pos.X, Y: pos.Y}
	m := components.Motion{Heading: h, Speed: speed}
	c := components.Cycle{
		Index:       index,
		Human:       human,
		Alive:       true,
		TrailActive: true,
		CrashTick:   -1,
	}
	t := components.Trail{Segments: make([]geom.Segment, 1, 16)}
	t.Segments[0] = geom.Seg(pos, geom.Vec{})
	return s.mapper.NewEntity(&p, &m, &c, &t)
}
