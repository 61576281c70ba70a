package geom

import "math"

// ParallelEpsilon is the cross product magnitude below which two segments are
// treated as parallel.
const ParallelEpsilon = 1e-4

// Segment is a directed span from Start to Start+Dir, e.g. a wall edge or one
// straight piece of a light trail.
type Segment struct {
	Start Vec
	Dir   Vec
}

// Seg builds a segment from its start point and direction.
func Seg(start, dir Vec) Segment {
	return Segment{Start: start, Dir: dir}
}

// SegTo builds a segment running from a to b.
func SegTo(a, b Vec) Segment {
	return Segment{Start: a, Dir: b.Sub(a)}
}

// End returns the point Start+Dir.
func (s Segment) End() Vec {
	return s.Start.Add(s.Dir)
}

// Params solves s.Start + t1*s.Dir = o.Start + t2*o.Dir.
// ok is false for parallel or nearly parallel segments.
func (s Segment) Params(o Segment) (t1, t2 float64, ok bool) {
	cross := s.Dir.Cross(o.Dir)
	if math.Abs(cross) < ParallelEpsilon {
		return 0, 0, false
	}
	d := o.Start.Sub(s.Start)
	t1 = d.Cross(o.Dir) / cross
	t2 = d.Cross(s.Dir) / cross
	return t1, t2, true
}

// Intersect returns the intersection point of s and o.
//
// Both parametric coordinates must lie in the half-open range [0, 1), so a
// shared endpoint is counted once: on the segment that starts there.
// Collinear overlap is never reported.
func (s Segment) Intersect(o Segment) (Vec, bool) {
	t1, t2, ok := s.Params(o)
	if !ok {
		return Vec{}, false
	}
	if t1 < 0 || t1 >= 1 || t2 < 0 || t2 >= 1 {
		return Vec{}, false
	}
	return s.Start.Add(s.Dir.Scale(t1)), true
}

// PointSegmentDist returns the distance from p to the closest point of s.
func PointSegmentDist(p Vec, s Segment) float64 {
	lenSq := s.Dir.Dot(s.Dir)
	if lenSq == 0 {
		return p.Dist(s.Start)
	}
	t := p.Sub(s.Start).Dot(s.Dir) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return p.Dist(s.Start.Add(s.Dir.Scale(t)))
}
