package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/lightcycle/components"
	"github.com/pthm-cable/lightcycle/geom"
)

// CrashCause identifies what stopped a cycle.
type CrashCause uint8

const (
	CauseWall CrashCause = iota
	CauseTrail
	CauseHeadOn
)

func (c CrashCause) String() string {
	switch c {
	case CauseWall:
		return "wall"
	case CauseTrail:
		return "trail"
	case CauseHeadOn:
		return "head_on"
	default:
		return "unknown"
	}
}

// Crash describes one cycle stopped during a movement step.
type Crash struct {
	Entity ecs.Entity
	Index  int
	Pos    geom.Vec
	Cause  CrashCause
	Tick   int32
}

type step struct {
	e     ecs.Entity
	index int
	seg   geom.Segment

	hit   bool
	at    geom.Vec
	dist  float64
	cause CrashCause
}

type ownedSeg struct {
	owner int
	seg   geom.Segment
}

// MovementSystem advances live cycles and detects crashes. All cycles move
// simultaneously: every step is tested against the trails as they stood at
// the start of the tick and against the other steps.
type MovementSystem struct {
	filter    ecs.Filter4[components.Position, components.Motion, components.Cycle, components.Trail]
	posMap    *ecs.Map[components.Position]
	motionMap *ecs.Map[components.Motion]
	cycleMap  *ecs.Map[components.Cycle]
	trailMap  *ecs.Map[components.Trail]

	side   float64
	bounds [4]geom.Segment

	steps []step
	walls []ownedSeg
}

// NewMovementSystem creates a movement system for a square arena.
func NewMovementSystem(w *ecs.World, side float64) *MovementSystem {
	return &MovementSystem{
		filter:    *ecs.NewFilter4[components.Position, components.Motion, components.Cycle, components.Trail](w),
		posMap:    ecs.NewMap[components.Position](w),
		motionMap: ecs.NewMap[components.Motion](w),
		cycleMap:  ecs.NewMap[components.Cycle](w),
		trailMap:  ecs.NewMap[components.Trail](w),
		side:      side,
		bounds: [4]geom.Segment{
			geom.SegTo(geom.V(0, 0), geom.V(side, 0)),
			geom.SegTo(geom.V(side, 0), geom.V(side, side)),
			geom.SegTo(geom.V(side, side), geom.V(0, side)),
			geom.SegTo(geom.V(0, side), geom.V(0, 0)),
		},
	}
}

// Update moves every live cycle by speed*dt and returns the crashes of this
// tick. Crashed cycles stop at the impact point; their trails stay in the
// arena.
func (s *MovementSystem) Update(dt float64, tick int32) []Crash {
	s.steps = s.steps[:0]
	s.walls = s.walls[:0]

	query := s.filter.Query()
	for query.Next() {
		pos, motion, cyc, trail := query.Get()
		for _, seg := range trail.Segments {
			if seg.Dir != (geom.Vec{}) {
				s.walls = append(s.walls, ownedSeg{owner: cyc.Index, seg: seg})
			}
		}
		if !cyc.Alive || motion.Speed <= 0 {
			continue
		}
		s.steps = append(s.steps, step{
			e:     query.Entity(),
			index: cyc.Index,
			seg:   geom.Seg(pos.Vec(), motion.Heading.Unit().Scale(motion.Speed*dt)),
		})
	}

	for i := range s.steps {
		st := &s.steps[i]
		for _, b := range s.bounds {
			if p, ok := st.seg.Intersect(b); ok {
				st.record(p, CauseWall)
			}
		}
		if end := st.seg.End(); end.X < 0 || end.Y < 0 || end.X > s.side || end.Y > s.side {
			st.record(end, CauseWall)
		}
		for _, w := range s.walls {
			if p, ok := touch(st.seg, w.seg); ok {
				st.record(p, CauseTrail)
			}
		}
		for j := range s.steps {
			if j == i {
				continue
			}
			if p, ok := touch(st.seg, s.steps[j].seg); ok {
				st.record(p, CauseHeadOn)
			}
		}
	}

	var crashes []Crash
	for i := range s.steps {
		st := &s.steps[i]
		pos := s.posMap.Get(st.e)
		trail := s.trailMap.Get(st.e)
		if !st.hit {
			pos.X, pos.Y = st.seg.End().X, st.seg.End().Y
			trail.Extend(st.seg.Dir)
			continue
		}

		trail.Extend(st.at.Sub(st.seg.Start))
		pos.X, pos.Y = st.at.X, st.at.Y
		s.motionMap.Get(st.e).Speed = 0
		cyc := s.cycleMap.Get(st.e)
		cyc.Alive = false
		cyc.TrailActive = false
		cyc.CrashTick = tick

		crashes = append(crashes, Crash{
			Entity: st.e,
			Index:  st.index,
			Pos:    st.at,
			Cause:  st.cause,
			Tick:   tick,
		})
	}
	return crashes
}

// onLine is the distance under which a point counts as lying on a segment.
const onLine = 1e-6

// touch returns the first point where step s meets segment w. Crossings use
// the half-open segment rule; parallel segments meet when they overlap on one
// line ahead of the step's start.
func touch(s, w geom.Segment) (geom.Vec, bool) {
	if p, ok := s.Intersect(w); ok {
		return p, true
	}
	if math.Abs(s.Dir.Cross(w.Dir)) >= geom.ParallelEpsilon {
		return geom.Vec{}, false
	}

	best, found := geom.Vec{}, false
	consider := func(q geom.Vec) {
		if q.Dist(s.Start) <= onLine || geom.PointSegmentDist(q, s) > onLine {
			return
		}
		if !found || q.DistSq(s.Start) < best.DistSq(s.Start) {
			best, found = q, true
		}
	}
	consider(w.Start)
	consider(w.End())
	if !found && geom.PointSegmentDist(s.Start, w) <= onLine && geom.PointSegmentDist(s.End(), w) <= onLine {
		return s.Start, true
	}
	return best, found
}

// record keeps the impact nearest to the step's start.
func (st *step) record(p geom.Vec, cause CrashCause) {
	d := p.DistSq(st.seg.Start)
	if st.hit && d >= st.dist {
		return
	}
	st.hit = true
	st.at = p
	st.dist = d
	st.cause = cause
}
