package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/lightcycle/config"
	"github.com/pthm-cable/lightcycle/navigation"
)

func TestCollectorRound(t *testing.T) {
	c := NewCollector()
	c.StartRound(2, 4, 0)

	c.RecordDecision(navigation.Decision{Player: 1, Turn: navigation.TurnLeft, Reason: navigation.ReasonEmergency})
	c.RecordDecision(navigation.Decision{Player: 2, Reason: navigation.ReasonStraight})
	c.RecordDecision(navigation.Decision{Player: 3, Turn: navigation.TurnRight, Reason: navigation.ReasonSeek})
	c.RecordDecision(navigation.Decision{Player: 3, Reason: navigation.ReasonCooldown})
	c.RecordDecision(navigation.Decision{Player: 1, Reason: navigation.ReasonFault})

	c.RecordCrash(0, 100, CauseWall)
	c.RecordCrash(2, 300, CauseTrail)
	c.RecordCrash(2, 310, CauseWall) // repeated report is ignored
	c.RecordCrash(9, 310, CauseWall)
	assert.Equal(t, []int{1, 3}, c.Alive())
	c.RecordCrash(3, 400, CauseHeadOn)

	s := c.Finish(500)

	assert.Equal(t, 2, s.Round)
	assert.Equal(t, int32(500), s.Ticks)
	assert.Equal(t, 1, s.Winner)
	assert.Equal(t, 1, s.Survivors)
	assert.Equal(t, 3, s.Crashes)
	assert.Equal(t, 1, s.WallCrashes)
	assert.Equal(t, 1, s.TrailCrashes)
	assert.Equal(t, 1, s.HeadOnCrashes)
	assert.Equal(t, 5, s.Decisions)
	assert.Equal(t, 2, s.Turns)
	assert.Equal(t, 1, s.Emergency)
	assert.Equal(t, 1, s.Seek)
	assert.Equal(t, 1, s.Straight)
	assert.Equal(t, 1, s.Cooldown)
	assert.Equal(t, 1, s.Faults)
	assert.Equal(t, int32(100), s.HumanSurvival)
	assert.Equal(t, int32(300), s.AISurvivalMin)
	assert.InDelta(t, (500.0+300+400)/3, s.AISurvivalMean, 1e-9)

	c.StartRound(3, 2, -1)
	s = c.Finish(50)
	assert.Equal(t, -1, s.Winner, "two riders left is a draw")
	assert.Equal(t, int32(-1), s.HumanSurvival)
	assert.Zero(t, s.Crashes)
	assert.Equal(t, 50.0, s.AISurvivalMean)
}

func TestSummarize(t *testing.T) {
	assert.Equal(t, Summary{}, Summarize(nil))

	var rounds []RoundStats
	for i := 1; i <= 10; i++ {
		rounds = append(rounds, RoundStats{
			Round:          i,
			Winner:         i % 2, // odd rounds won by slot 1
			AISurvivalMean: float64(i * 100),
			Turns:          10,
			Emergency:      4,
		})
	}
	rounds[0].Winner = -1

	s := Summarize(rounds)
	assert.Equal(t, 10, s.Rounds)
	assert.InDelta(t, 550.0, s.SurvivalMean, 1e-9)
	assert.InDelta(t, 302.765, s.SurvivalStd, 1e-3)
	assert.Equal(t, 100.0, s.SurvivalP10)
	assert.Equal(t, 500.0, s.SurvivalP50)
	assert.Equal(t, 900.0, s.SurvivalP90)
	assert.InDelta(t, 0.1, s.DrawRate, 1e-9)
	assert.Equal(t, 10.0, s.TurnsPerRound)
	assert.InDelta(t, 0.4, s.EmergencyShare, 1e-9)

	one := Summarize(rounds[:1])
	assert.Zero(t, one.SurvivalStd)
	assert.Equal(t, 100.0, one.SurvivalP50)
}

func TestOutputManager(t *testing.T) {
	om, err := NewOutputManager("")
	require.NoError(t, err)
	assert.Nil(t, om)
	assert.NoError(t, om.WriteRound(RoundStats{}))
	assert.NoError(t, om.Close())

	dir := filepath.Join(t.TempDir(), "run")
	om, err = NewOutputManager(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, om.Dir())

	require.NoError(t, om.WriteRound(RoundStats{Round: 1, Ticks: 42, Winner: 2}))
	require.NoError(t, om.WriteRound(RoundStats{Round: 2, Ticks: 43, Winner: -1}))
	require.NoError(t, om.WritePerf(PerfStats{}, 1, 42))
	require.NoError(t, om.WriteConfig(config.Default()))
	require.NoError(t, om.Close())

	data, err := os.ReadFile(filepath.Join(dir, "rounds.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "round,ticks,winner,survivors,"))
	assert.True(t, strings.HasPrefix(lines[1], "1,42,2,"))
	assert.True(t, strings.HasPrefix(lines[2], "2,43,-1,"))

	data, err = os.ReadFile(filepath.Join(dir, "perf.csv"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "round,window_end,avg_tick_us"))

	_, err = config.Load(filepath.Join(dir, "config.yaml"))
	assert.NoError(t, err)
}
