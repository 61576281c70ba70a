package navigation

import (
	"math/rand"

	"github.com/pthm-cable/lightcycle/geom"
)

// Reason identifies which branch of the policy produced a decision.
type Reason uint8

const (
	ReasonSkip      Reason = iota // not evaluated (index, human, idle, uninitialized)
	ReasonCooldown                // turned too recently
	ReasonEmergency               // forward lane short or narrow
	ReasonSeek                    // steering toward the target opponent
	ReasonStraight                // forward lane long and wide
	ReasonWeighted                // side lane outscored forward
	ReasonHold                    // weighted scoring kept the heading
	ReasonFault                   // evaluation panicked and was recovered

	NumReasons
)

var reasonNames = [NumReasons]string{
	"skip", "cooldown", "emergency", "seek", "straight", "weighted", "hold", "fault",
}

func (r Reason) String() string {
	if r >= NumReasons {
		return "unknown"
	}
	return reasonNames[r]
}

// Lane holds the sampled measurements for one candidate heading.
type Lane struct {
	Heading  geom.Heading
	Distance float64
	Width    float64
	Penalty  float64
}

// Assessment holds the lanes for turning left, keeping straight and turning right.
type Assessment struct {
	Left, Forward, Right Lane
}

// Decision is the outcome of one policy evaluation.
type Decision struct {
	Player     int
	Turn       Turn
	Reason     Reason
	Assessment Assessment
}

// Assess measures the three candidate lanes for a cycle.
func (p Params) Assess(w World, self int, est *Estimator, v View) Assessment {
	lane := func(h geom.Heading) Lane {
		return Lane{
			Heading:  h,
			Distance: p.CastDistance(w, self, v.Pos, h),
			Width:    p.CorridorWidth(w, self, v.Pos, h),
			Penalty:  est.Penalty(w, self, v.Pos, h),
		}
	}
	return Assessment{
		Left:    lane(v.Heading.Left()),
		Forward: lane(v.Heading),
		Right:   lane(v.Heading.Right()),
	}
}

// Emergency reports whether the forward lane forces an evasive turn.
func (p Params) Emergency(a Assessment) bool {
	return a.Forward.Distance < p.EvasiveDistance || a.Forward.Width < p.EvasiveWidth
}

// Clear reports whether the forward lane is long and wide enough to hold.
func (p Params) Clear(a Assessment) bool {
	return a.Forward.Distance >= p.SafeDistance && a.Forward.Width >= p.SafeWidth
}

// Evade picks a side when the forward lane is unsafe. It never returns NoTurn.
func (p Params) Evade(a Assessment, rng *rand.Rand) Turn {
	score := func(l Lane) float64 {
		return l.Distance + l.Width*p.EmergencyWidthWeight - l.Penalty
	}
	left, right := score(a.Left), score(a.Right)

	switch {
	case left > right+p.EmergencyMargin:
		return TurnLeft
	case right > left+p.EmergencyMargin:
		return TurnRight
	case a.Left.Distance > a.Right.Distance:
		return TurnLeft
	case a.Right.Distance > a.Left.Distance:
		return TurnRight
	}
	return randomSide(rng)
}

// Weigh compares the side lanes against the forward lane with the enclosure
// penalty discounted for the current heading.
func (p Params) Weigh(a Assessment, rng *rand.Rand) Turn {
	score := func(l Lane, penaltyWeight float64) float64 {
		return l.Distance + l.Width*p.WidthWeight - l.Penalty*penaltyWeight
	}
	fwd := score(a.Forward, p.ForwardPenaltyWeight)
	left := score(a.Left, p.SidePenaltyWeight)
	right := score(a.Right, p.SidePenaltyWeight)

	if max(left, right) <= fwd+p.TurnMargin {
		return NoTurn
	}
	switch {
	case left > right:
		return TurnLeft
	case right > left:
		return TurnRight
	}
	return randomSide(rng)
}

// Seek returns a turn toward target, or NoTurn when the target is straight
// ahead or the lane on its side is too short to enter safely.
func (p Params) Seek(a Assessment, v View, target geom.Vec, rng *rand.Rand) Turn {
	rel := target.Sub(v.Pos)
	toward := rel.Dot(v.Heading.Left().Unit())

	var turn Turn
	var lane Lane
	switch {
	case toward > 0:
		turn, lane = TurnLeft, a.Left
	case toward < 0:
		turn, lane = TurnRight, a.Right
	case rel.Dot(v.Heading.Unit()) < 0:
		// Directly behind: either side works.
		turn = randomSide(rng)
		lane = a.Left
		if turn == TurnRight {
			lane = a.Right
		}
	default:
		return NoTurn
	}

	if lane.Distance < p.EvasiveDistance {
		return NoTurn
	}
	return turn
}

// Choose runs the policy branches in priority order. target is nil when
// there is no opponent to seek.
func (p Params) Choose(a Assessment, v View, target *geom.Vec, rng *rand.Rand) (Turn, Reason) {
	if p.Emergency(a) {
		return p.Evade(a, rng), ReasonEmergency
	}

	if target != nil && p.Clear(a) && v.Pos.Dist(*target) > p.SeekDistance && rng.Float64() < p.SeekProbability {
		if turn := p.Seek(a, v, *target, rng); turn != NoTurn {
			return turn, ReasonSeek
		}
	}

	if p.Clear(a) {
		return NoTurn, ReasonStraight
	}

	if turn := p.Weigh(a, rng); turn != NoTurn {
		return turn, ReasonWeighted
	}
	return NoTurn, ReasonHold
}

func randomSide(rng *rand.Rand) Turn {
	if rng.Intn(2) == 0 {
		return TurnLeft
	}
	return TurnRight
}
