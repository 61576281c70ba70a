package navigation

import "github.com/pthm-cable/lightcycle/geom"

// CorridorWidth estimates the free lateral space ahead of heading h.
//
// At each forward depth it walks outward perpendicular to h on both sides,
// crediting CorridorUnit per free probe and stopping a side at its first
// blocked probe. The result is the mean total width over all depths.
func (p Params) CorridorWidth(w World, self int, pos geom.Vec, h geom.Heading) float64 {
	if len(p.CorridorDepths) == 0 || p.CorridorStep <= 0 {
		return 0
	}
	fwd := h.Unit()
	sides := [2]geom.Vec{h.Left().Unit(), h.Right().Unit()}

	total := 0.0
	for _, depth := range p.CorridorDepths {
		center := pos.Add(fwd.Scale(depth))
		for _, side := range sides {
			for off := p.CorridorStep; off <= p.CorridorMaxOffset+1e-9; off += p.CorridorStep {
				if blocked(w, self, center.Add(side.Scale(off))) {
					break
				}
				total += p.CorridorUnit
			}
		}
	}
	return total / float64(len(p.CorridorDepths))
}
