package geom

// Heading is one of the four cardinal directions a light cycle can travel.
type Heading int

const (
	Up    Heading = iota // -Y
	Right                // +X
	Down                 // +Y
	Left                 // -X

	NumHeadings = 4
)

var headingUnits = [NumHeadings]Vec{
	Up:    {X: 0, Y: -1},
	Right: {X: 1, Y: 0},
	Down:  {X: 0, Y: 1},
	Left:  {X: -1, Y: 0},
}

var headingNames = [NumHeadings]string{"up", "right", "down", "left"}

// Valid reports whether h is in [0, 4).
func (h Heading) Valid() bool {
	return h >= 0 && h < NumHeadings
}

// Left returns the heading after a 90 degree counter-clockwise turn.
func (h Heading) Left() Heading {
	return (h + 3) % NumHeadings
}

// Right returns the heading after a 90 degree clockwise turn.
func (h Heading) Right() Heading {
	return (h + 1) % NumHeadings
}

// Unit returns the unit direction vector for h.
func (h Heading) Unit() Vec {
	if !h.Valid() {
		return Vec{}
	}
	return headingUnits[h]
}

func (h Heading) String() string {
	if !h.Valid() {
		return "invalid"
	}
	return headingNames[h]
}
