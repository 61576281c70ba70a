package navigation

import (
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/pthm-cable/lightcycle/geom"
)

// Session is the per-round state of the navigation engine: the world it
// queries, the fed clock and each opponent's last turn time. It is driven
// from a single game loop and is not safe for concurrent use.
type Session struct {
	params    Params
	rng       *rand.Rand
	logger    *zap.Logger
	estimator *Estimator

	world    World
	now      time.Duration
	lastTurn map[int]time.Duration
}

// NewSession creates a session. rng drives tie-breaks and seeking; pass a
// seeded source for reproducible decisions. A nil logger disables logging.
func NewSession(p Params, rng *rand.Rand, logger *zap.Logger) *Session {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		params:    p,
		rng:       rng,
		logger:    logger.Named("navigation"),
		estimator: NewEstimator(p),
		lastTurn:  make(map[int]time.Duration),
	}
}

// Params returns the session's tuning.
func (s *Session) Params() Params {
	return s.params
}

// Initialize binds the session to a world. Until it is called, Decide is a
// no-op.
func (s *Session) Initialize(w World) {
	s.world = w
	s.lastTurn = make(map[int]time.Duration)
	if w != nil {
		s.logger.Info("initialized",
			zap.Int("players", w.NumPlayers()),
			zap.Float64("arena", w.ArenaSize()),
		)
	}
}

// Reset clears the cooldowns, e.g. between rounds.
func (s *Session) Reset() {
	clear(s.lastTurn)
}

// UpdateClock feeds the simulation time for this tick. The clock never runs
// backwards: a now earlier than the last fed time advances the clock by dt
// instead, so cooldowns keep expiring.
func (s *Session) UpdateClock(dt, now time.Duration) {
	if now < s.now {
		now = s.now + max(dt, 0)
	}
	s.now = now
}

// Decide evaluates one opponent and, when the policy turns, applies the turn
// through the world. Indices that are out of range or belong to the human
// player are skipped silently, as are idle cycles and views whose position is
// not finite.
func (s *Session) Decide(player, human int) Decision {
	skip := Decision{Player: player, Reason: ReasonSkip}
	if s.world == nil {
		return skip
	}
	if player < 0 || player >= s.world.NumPlayers() || player == human {
		return skip
	}
	v, ok := s.world.Player(player)
	if !ok || v.Speed <= 0 || !v.Pos.Finite() {
		return skip
	}

	if last, turned := s.lastTurn[player]; turned && s.now-last < s.params.Cooldown {
		return Decision{Player: player, Reason: ReasonCooldown}
	}

	return s.evaluate(player, human, v)
}

// DecideAll runs Decide for every player and returns the evaluated decisions.
func (s *Session) DecideAll(human int) []Decision {
	if s.world == nil {
		return nil
	}
	n := s.world.NumPlayers()
	out := make([]Decision, 0, n)
	for i := 0; i < n; i++ {
		if d := s.Decide(i, human); d.Reason != ReasonSkip {
			out = append(out, d)
		}
	}
	return out
}

// evaluate scores one opponent. A panic anywhere in scoring or applying the
// turn is contained to this opponent's tick.
func (s *Session) evaluate(player, human int, v View) (d Decision) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("evaluation fault",
				zap.Int("player", player),
				zap.Duration("now", s.now),
				zap.Error(fmt.Errorf("panic: %v", r)),
			)
			d = Decision{Player: player, Reason: ReasonFault}
		}
	}()

	a := s.params.Assess(s.world, player, s.estimator, v)
	turn, reason := s.params.Choose(a, v, s.target(player, human), s.rng)
	d = Decision{Player: player, Turn: turn, Reason: reason, Assessment: a}

	if turn != NoTurn {
		s.lastTurn[player] = s.now
		s.world.ApplyTurn(player, turn, s.now)
		s.logger.Debug("turn",
			zap.Int("player", player),
			zap.Stringer("turn", turn),
			zap.Stringer("reason", reason),
			zap.Float64("x", v.Pos.X),
			zap.Float64("y", v.Pos.Y),
			zap.Float64("forward", a.Forward.Distance),
		)
	}
	return d
}

// target picks the position to seek: the human player when it is moving,
// otherwise the nearest live opponent.
func (s *Session) target(player, human int) *geom.Vec {
	if hv, ok := s.world.Player(human); ok && human != player && hv.Speed > 0 {
		return &hv.Pos
	}
	i, ok := s.NearestOpponent(player, player)
	if !ok {
		return nil
	}
	ov, _ := s.world.Player(i)
	return &ov.Pos
}

// NearestOpponent returns the index of the moving player closest to player,
// ignoring player itself and exclude.
func (s *Session) NearestOpponent(player, exclude int) (int, bool) {
	if s.world == nil {
		return 0, false
	}
	me, ok := s.world.Player(player)
	if !ok {
		return 0, false
	}

	best, bestDist := -1, 0.0
	for i := 0; i < s.world.NumPlayers(); i++ {
		if i == player || i == exclude {
			continue
		}
		v, ok := s.world.Player(i)
		if !ok || v.Speed <= 0 {
			continue
		}
		if d := me.Pos.DistSq(v.Pos); best < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, best >= 0
}
