package stopwatch_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wandb/lapwatch/internal/stopwatch"
)

type recordingObserver struct {
	states  []stopwatch.RunState
	advance int64
	laps    []stopwatch.Lap
	resets  int
}

func (o *recordingObserver) OnStateChange(s stopwatch.RunState) { o.states = append(o.states, s) }
func (o *recordingObserver) OnAdvance(delta, _ int64)           { o.advance += delta }
func (o *recordingObserver) OnLap(lap stopwatch.Lap)            { o.laps = append(o.laps, lap) }
func (o *recordingObserver) OnReset()                           { o.resets++ }

func TestStopwatch_Scenario(t *testing.T) {
	sw := stopwatch.New(nil)

	sw.ToggleRun()
	for range 100 {
		sw.Advance(10)
	}
	require.Equal(t, int64(1000), sw.Elapsed())

	assert.True(t, sw.RecordLap())
	laps := sw.Laps()
	require.Len(t, laps, 1)
	assert.Equal(t, 1, laps[0].Number)
	assert.Equal(t, int64(1000), laps[0].Elapsed)
	assert.True(t, laps[0].IsLatest)

	sw.Pause()
	assert.False(t, sw.RecordLap())
	assert.Equal(t, 1, sw.LapCount())

	sw.Reset()
	assert.Equal(t, int64(0), sw.Elapsed())
	assert.Equal(t, stopwatch.Stopped, sw.State())
	assert.Equal(t, 0, sw.LapCount())
}

func TestStopwatch_LapBeforeFirstTick(t *testing.T) {
	sw := stopwatch.New(nil)
	sw.Start()

	assert.True(t, sw.CanLap())
	assert.False(t, sw.RecordLap())
	assert.Equal(t, 0, sw.LapCount())
}

func TestStopwatch_CanLapFollowsState(t *testing.T) {
	sw := stopwatch.New(nil)
	assert.False(t, sw.CanLap())

	sw.ToggleRun()
	assert.True(t, sw.CanLap())

	sw.ToggleRun()
	assert.False(t, sw.CanLap())
}

func TestStopwatch_ResetClearsLapsAndRestartsNumbering(t *testing.T) {
	sw := stopwatch.New(nil)
	sw.Start()
	sw.Advance(10)
	sw.RecordLap()
	sw.Advance(10)
	sw.RecordLap()

	sw.Reset()
	sw.Start()
	sw.Advance(30)
	sw.RecordLap()

	laps := sw.Laps()
	require.Len(t, laps, 1)
	assert.Equal(t, 1, laps[0].Number)
	assert.Equal(t, "00:00.03", laps[0].Time)
}

func TestStopwatch_ObserverSeesEveryChange(t *testing.T) {
	obs := &recordingObserver{}
	sw := stopwatch.New(obs)

	sw.Advance(10) // stopped, not reported
	sw.Start()
	sw.Start() // already running, not reported
	sw.Advance(10)
	sw.Advance(15)
	sw.RecordLap()
	sw.Pause()
	sw.RecordLap() // stopped, not reported
	sw.Reset()

	assert.Equal(t, []stopwatch.RunState{stopwatch.Running, stopwatch.Stopped}, obs.states)
	assert.Equal(t, int64(25), obs.advance)
	require.Len(t, obs.laps, 1)
	assert.Equal(t, int64(25), obs.laps[0].Elapsed)
	assert.Equal(t, 1, obs.resets)
}

func TestStopwatch_ResetWhileRunningReportsStop(t *testing.T) {
	obs := &recordingObserver{}
	sw := stopwatch.New(obs)

	sw.ToggleRun()
	sw.Advance(10)
	sw.Reset()
	sw.Reset() // already stopped, only the reset is reported

	assert.Equal(t, stopwatch.Stopped, sw.State())
	assert.Equal(t, []stopwatch.RunState{stopwatch.Running, stopwatch.Stopped}, obs.states)
	assert.Equal(t, 2, obs.resets)
}

func TestStopwatch_Report(t *testing.T) {
	sw := stopwatch.New(nil)
	sw.Start()
	sw.Advance(61_234)
	sw.RecordLap()

	report := sw.Report()

	assert.Equal(t, "running", report.State)
	assert.Equal(t, int64(61_234), report.Elapsed)
	assert.Equal(t, "01:01.23", report.ElapsedText)
	require.Len(t, report.Laps, 1)
	assert.Equal(t, "01:01.23", report.Laps[0].Time)
}
