package systems

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/lightcycle/geom"
)

// Spark is a short-lived crash particle in arena units.
type Spark struct {
	X, Y       float32
	VelX, VelY float32 // units per tick
	Life       int32
	MaxLife    int32
	Slot       int // cycle slot, for color
	Size       float32
}

// SparkSystem manages crash bursts for the viewer. It owns its random source
// so effects never perturb the simulation's draws.
type SparkSystem struct {
	Sparks    []Spark
	maxSparks int
	rng       *rand.Rand
}

// NewSparkSystem creates a spark system holding at most maxSparks.
func NewSparkSystem(maxSparks int, rng *rand.Rand) *SparkSystem {
	return &SparkSystem{
		Sparks:    make([]Spark, 0, maxSparks),
		maxSparks: maxSparks,
		rng:       rng,
	}
}

// Update ages, drags and moves every spark, dropping expired ones.
func (s *SparkSystem) Update() {
	alive := 0
	for i := range s.Sparks {
		p := &s.Sparks[i]

		p.Life--
		if p.Life <= 0 {
			continue
		}

		// Drag
		p.VelX *= 0.92
		p.VelY *= 0.92

		p.X += p.VelX
		p.Y += p.VelY

		s.Sparks[alive] = s.Sparks[i]
		alive++
	}
	s.Sparks = s.Sparks[:alive]
}

// EmitCrash emits a burst of 12-19 sparks at pos, biased away from the
// heading the cycle was travelling on.
func (s *SparkSystem) EmitCrash(pos geom.Vec, h geom.Heading, slot int) {
	back := h.Unit().Scale(-0.15)
	count := 12 + s.rng.Intn(8)
	for i := 0; i < count; i++ {
		if len(s.Sparks) >= s.maxSparks {
			return
		}
		a := s.rng.Float64() * 2 * math.Pi
		v := 0.1 + s.rng.Float64()*0.4
		life := 30 + s.rng.Int31n(30)
		s.Sparks = append(s.Sparks, Spark{
			X:       float32(pos.X),
			Y:       float32(pos.Y),
			VelX:    float32(math.Cos(a)*v + back.X),
			VelY:    float32(math.Sin(a)*v + back.Y),
			Life:    life,
			MaxLife: life,
			Slot:    slot,
			Size:    0.4 + s.rng.Float32()*0.4,
		})
	}
}

// Clear drops every spark.
func (s *SparkSystem) Clear() {
	s.Sparks = s.Sparks[:0]
}
