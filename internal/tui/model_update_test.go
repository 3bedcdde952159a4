package tui_test

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wandb/lapwatch/internal/observability"
	"github.com/wandb/lapwatch/internal/stopwatch"
	"github.com/wandb/lapwatch/internal/ticker/tickertest"
	"github.com/wandb/lapwatch/internal/tui"
)

func newTestModel(t *testing.T) (*tui.Model, *tickertest.ManualClock) {
	t.Helper()
	clock := tickertest.NewManualClock()
	m := tui.NewModel(tui.Params{
		Stopwatch:    stopwatch.New(nil),
		TickInterval: 10 * time.Millisecond,
		Clock:        clock,
		LapRows:      5,
		Logger:       observability.NewNoOpLogger(),
	})
	t.Cleanup(m.Close)
	return m, clock
}

func press(m *tui.Model, key string) tea.Cmd {
	_, cmd := m.Update(tui.TestKey(key))
	return cmd
}

func TestModel_Scenario(t *testing.T) {
	m, clock := newTestModel(t)
	sw := m.Stopwatch()

	press(m, "space")
	require.Equal(t, stopwatch.Running, sw.State())
	require.True(t, m.TestTickerRunning())

	clock.Advance(time.Second)
	assert.Equal(t, 100, m.TestPumpTicks())
	assert.Equal(t, int64(1000), sw.Elapsed())

	press(m, "l")
	laps := sw.Laps()
	require.Len(t, laps, 1)
	assert.Equal(t, 1, laps[0].Number)
	assert.Equal(t, int64(1000), laps[0].Elapsed)

	press(m, "space")
	assert.Equal(t, stopwatch.Stopped, sw.State())
	assert.False(t, m.TestTickerRunning())

	press(m, "l")
	assert.Equal(t, 1, sw.LapCount())

	press(m, "r")
	assert.Equal(t, int64(0), sw.Elapsed())
	assert.Equal(t, stopwatch.Stopped, sw.State())
	assert.Equal(t, 0, sw.LapCount())
}

func TestModel_PauseCreditsQueuedTicks(t *testing.T) {
	m, clock := newTestModel(t)
	sw := m.Stopwatch()

	press(m, "s")
	clock.Advance(35 * time.Millisecond)

	// Pause before the queued ticks reach Update.
	press(m, "s")
	assert.Equal(t, int64(35), sw.Elapsed())

	// The queued ticks are now stale and must not be credited again.
	m.TestPumpTicks()
	assert.Equal(t, int64(35), sw.Elapsed())
}

func TestModel_NoTicksWhileStopped(t *testing.T) {
	m, clock := newTestModel(t)
	sw := m.Stopwatch()

	press(m, "space")
	clock.Advance(50 * time.Millisecond)
	m.TestPumpTicks()
	press(m, "space")

	clock.Advance(time.Second)
	assert.Equal(t, 0, m.TestPumpTicks())
	assert.Equal(t, int64(50), sw.Elapsed())
}

func TestModel_ResetDiscardsRunningTime(t *testing.T) {
	m, clock := newTestModel(t)
	sw := m.Stopwatch()

	press(m, "space")
	clock.Advance(20 * time.Millisecond)
	press(m, "r")
	m.TestPumpTicks()

	assert.Equal(t, int64(0), sw.Elapsed())
	assert.False(t, m.TestTickerRunning())

	clock.Advance(time.Second)
	assert.Equal(t, 0, m.TestPumpTicks())
}

func TestModel_LapsRenderNewestFirst(t *testing.T) {
	m, clock := newTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})

	press(m, "space")
	for range 3 {
		clock.Advance(time.Second)
		m.TestPumpTicks()
		press(m, "enter")
	}

	content := m.TestLapListContent()
	lines := strings.Split(content, "\n")
	require.GreaterOrEqual(t, len(lines), 3)
	assert.Contains(t, lines[0], "#3")
	assert.Contains(t, lines[0], "Latest")
	assert.Contains(t, lines[0], "00:03.00")
	assert.Contains(t, lines[0], "+00:01.00")
	assert.Contains(t, lines[2], "#1")
	assert.NotContains(t, lines[2], "Latest")
}

func TestModel_ViewShowsStateDependentControls(t *testing.T) {
	m, clock := newTestModel(t)

	view := m.View()
	assert.Contains(t, view, "00:00.00")
	assert.Contains(t, view, "Start")
	assert.NotContains(t, view, "Record Lap")
	assert.NotContains(t, view, "Lap Times")

	press(m, "space")
	clock.Advance(1230 * time.Millisecond)
	m.TestPumpTicks()
	press(m, "l")

	view = m.View()
	assert.Contains(t, view, "00:01.23")
	assert.Contains(t, view, "Pause")
	assert.Contains(t, view, "Record Lap")
	assert.Contains(t, view, "Lap Times")
}

func TestModel_HelpCapturesKeys(t *testing.T) {
	m, _ := newTestModel(t)

	press(m, "?")
	require.True(t, m.TestHelpVisible())
	assert.Contains(t, m.View(), "Record lap")

	// Stopwatch keys are ignored while help is open.
	press(m, "space")
	assert.Equal(t, stopwatch.Stopped, m.Stopwatch().State())

	press(m, "esc")
	assert.False(t, m.TestHelpVisible())
}

func TestModel_QuitStopsTicker(t *testing.T) {
	m, clock := newTestModel(t)

	press(m, "space")
	clock.Advance(15 * time.Millisecond)

	cmd := press(m, "q")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	assert.False(t, m.TestTickerRunning())
	assert.Equal(t, int64(15), m.Stopwatch().Elapsed())

	// Start is refused once closed.
	press(m, "space")
	assert.False(t, m.TestTickerRunning())
}

func TestKeyBindings_EveryHandlerIsReachable(t *testing.T) {
	seen := map[string]bool{}
	for _, category := range tui.KeyBindings() {
		for _, binding := range category.Bindings {
			require.NotEmpty(t, binding.Keys)
			for _, k := range binding.Keys {
				assert.False(t, seen[k], "key %q bound twice", k)
				seen[k] = true
			}
		}
	}
}
