package navigation

import "time"

// Params holds every tunable constant of the engine.
type Params struct {
	// Ray caster
	RayStep      float64
	MaxLookahead float64
	RayBias      float64 // collision assumed this far before the sampled hit

	// Corridor analyzer
	CorridorDepths    []float64
	CorridorStep      float64
	CorridorMaxOffset float64
	CorridorUnit      float64 // width credited per free probe

	// Enclosure estimator
	EnclosureCell     float64
	EnclosureStart    float64
	EnclosureQueueCap int
	EnclosureMaxNodes int
	EnclosurePenaltyK float64 // penalty per unexplored node

	// Decision policy
	Cooldown             time.Duration
	EvasiveDistance      float64
	EvasiveWidth         float64
	EmergencyWidthWeight float64
	EmergencyMargin      float64
	SafeDistance         float64
	SafeWidth            float64
	WidthWeight          float64
	ForwardPenaltyWeight float64
	SidePenaltyWeight    float64
	TurnMargin           float64

	// Seek
	SeekDistance    float64
	SeekProbability float64
}

// DefaultParams returns the shipped tuning.
func DefaultParams() Params {
	return Params{
		RayStep:      1.0,
		MaxLookahead: 28.0,
		RayBias:      0.5,

		CorridorDepths:    []float64{2, 4, 6},
		CorridorStep:      1.0,
		CorridorMaxOffset: 4.0,
		CorridorUnit:      0.5,

		EnclosureCell:     2.0,
		EnclosureStart:    2.0,
		EnclosureQueueCap: 96,
		EnclosureMaxNodes: 40,
		EnclosurePenaltyK: 0.2,

		Cooldown:             250 * time.Millisecond,
		EvasiveDistance:      12.0,
		EvasiveWidth:         2.5,
		EmergencyWidthWeight: 2.0,
		EmergencyMargin:      0.5,
		SafeDistance:         20.0,
		SafeWidth:            3.0,
		WidthWeight:          2.5,
		ForwardPenaltyWeight: 0.5,
		SidePenaltyWeight:    1.0,
		TurnMargin:           2.0,

		SeekDistance:    25.0,
		SeekProbability: 0.18,
	}
}
