package navigation

import (
	"math"

	"github.com/pthm-cable/lightcycle/geom"
)

// cellKey is a quantized grid coordinate.
type cellKey struct {
	x, y int32
}

// Estimator scores how boxed-in a heading is with a bounded breadth-first
// fill over a coarse grid. Its queue and visited set are reused across calls.
type Estimator struct {
	params  Params
	queue   []geom.Vec // ring buffer
	head    int
	size    int
	visited map[cellKey]struct{}

	lastExplored int
}

// NewEstimator creates an estimator sized from p.
func NewEstimator(p Params) *Estimator {
	capacity := p.EnclosureQueueCap
	if capacity < 1 {
		capacity = 1
	}
	return &Estimator{
		params:  p,
		queue:   make([]geom.Vec, capacity),
		visited: make(map[cellKey]struct{}, capacity),
	}
}

// LastExplored returns the node count expanded by the most recent Penalty call.
func (e *Estimator) LastExplored() int {
	return e.lastExplored
}

func (e *Estimator) reset() {
	e.head = 0
	e.size = 0
	clear(e.visited)
}

func (e *Estimator) push(p geom.Vec) bool {
	if e.size == len(e.queue) {
		return false
	}
	e.queue[(e.head+e.size)%len(e.queue)] = p
	e.size++
	return true
}

func (e *Estimator) pop() geom.Vec {
	p := e.queue[e.head]
	e.head = (e.head + 1) % len(e.queue)
	e.size--
	return p
}

func (e *Estimator) key(p geom.Vec) cellKey {
	return cellKey{
		x: int32(math.Floor(p.X / e.params.EnclosureCell)),
		y: int32(math.Floor(p.Y / e.params.EnclosureCell)),
	}
}

// open reports whether p is inside the arena and free.
func (e *Estimator) open(w World, self int, p geom.Vec) bool {
	side := w.ArenaSize()
	if p.X <= 0 || p.Y <= 0 || p.X >= side || p.Y >= side {
		return false
	}
	return !blocked(w, self, p)
}

// Penalty returns max(0, MaxNodes-explored) * PenaltyK for the region reached
// from EnclosureStart ahead of pos along h. Zero means open space.
func (e *Estimator) Penalty(w World, self int, pos geom.Vec, h geom.Heading) float64 {
	e.reset()
	p := e.params

	explored := 0
	start := pos.Add(h.Unit().Scale(p.EnclosureStart))
	if e.open(w, self, start) {
		e.visited[e.key(start)] = struct{}{}
		e.push(start)
	}

	for e.size > 0 && explored < p.EnclosureMaxNodes {
		cur := e.pop()
		explored++
		for dir := geom.Heading(0); dir < geom.NumHeadings; dir++ {
			next := cur.Add(dir.Unit().Scale(p.EnclosureCell))
			k := e.key(next)
			if _, seen := e.visited[k]; seen {
				continue
			}
			if !e.open(w, self, next) {
				continue
			}
			e.visited[k] = struct{}{}
			if !e.push(next) {
				break
			}
		}
	}

	e.lastExplored = explored
	return float64(max(0, p.EnclosureMaxNodes-explored)) * p.EnclosurePenaltyK
}
