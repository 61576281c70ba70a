package telemetry

import "github.com/pthm-cable/lightcycle/navigation"

// Crash causes as reported by the movement step.
const (
	CauseWall   = "wall"
	CauseTrail  = "trail"
	CauseHeadOn = "head_on"
)

// Collector accumulates engine decisions and crashes within a round and
// produces RoundStats.
type Collector struct {
	round   int
	players int
	human   int

	reasons [navigation.NumReasons]int
	turns   int
	causes  map[string]int
	crashed []int32 // crash tick per slot, -1 while riding
}

// NewCollector creates a collector.
func NewCollector() *Collector {
	return &Collector{causes: make(map[string]int)}
}

// StartRound resets the counters for a new round.
func (c *Collector) StartRound(round, players, human int) {
	c.round = round
	c.players = players
	c.human = human
	c.reasons = [navigation.NumReasons]int{}
	c.turns = 0
	clear(c.causes)
	c.crashed = c.crashed[:0]
	for i := 0; i < players; i++ {
		c.crashed = append(c.crashed, -1)
	}
}

// RecordDecision records one engine decision.
func (c *Collector) RecordDecision(d navigation.Decision) {
	if d.Reason < navigation.NumReasons {
		c.reasons[d.Reason]++
	}
	if d.Turn != navigation.NoTurn {
		c.turns++
	}
}

// RecordCrash records a cycle stopping at tick. Repeated reports for a slot
// are ignored.
func (c *Collector) RecordCrash(slot int, tick int32, cause string) {
	if slot < 0 || slot >= len(c.crashed) || c.crashed[slot] >= 0 {
		return
	}
	c.crashed[slot] = tick
	c.causes[cause]++
}

// Alive returns the slots without a recorded crash.
func (c *Collector) Alive() []int {
	var alive []int
	for i, t := range c.crashed {
		if t < 0 {
			alive = append(alive, i)
		}
	}
	return alive
}

// Finish produces the round's stats. Cycles still riding survive until
// endTick.
func (c *Collector) Finish(endTick int32) RoundStats {
	s := RoundStats{
		Round:         c.round,
		Ticks:         endTick,
		Winner:        -1,
		WallCrashes:   c.causes[CauseWall],
		TrailCrashes:  c.causes[CauseTrail],
		HeadOnCrashes: c.causes[CauseHeadOn],
		Turns:         c.turns,
		Cooldown:      c.reasons[navigation.ReasonCooldown],
		Emergency:     c.reasons[navigation.ReasonEmergency],
		Seek:          c.reasons[navigation.ReasonSeek],
		Straight:      c.reasons[navigation.ReasonStraight],
		Weighted:      c.reasons[navigation.ReasonWeighted],
		Hold:          c.reasons[navigation.ReasonHold],
		Faults:        c.reasons[navigation.ReasonFault],
		HumanSurvival: -1,
	}
	for _, n := range c.reasons {
		s.Decisions += n
	}
	for _, n := range c.causes {
		s.Crashes += n
	}

	alive := c.Alive()
	s.Survivors = len(alive)
	if len(alive) == 1 && c.players > 1 {
		s.Winner = alive[0]
	}

	var sum float64
	var ai int
	for i, t := range c.crashed {
		survived := t
		if survived < 0 {
			survived = endTick
		}
		if i == c.human {
			s.HumanSurvival = survived
			continue
		}
		if ai == 0 || survived < s.AISurvivalMin {
			s.AISurvivalMin = survived
		}
		sum += float64(survived)
		ai++
	}
	if ai > 0 {
		s.AISurvivalMean = sum / float64(ai)
	}
	return s
}
