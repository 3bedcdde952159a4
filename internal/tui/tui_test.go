package tui_test

import (
	"bytes"
	"regexp"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wandb/lapwatch/internal/observability"
	"github.com/wandb/lapwatch/internal/stopwatch"
	"github.com/wandb/lapwatch/internal/tui"
)

// containsTTY checks for want in terminal output, ignoring escape sequences,
// box-drawing glyphs and whitespace.
func containsTTY(b []byte, want string) bool {
	normalize := func(s string) string {
		csi := regexp.MustCompile(`\x1b\[[0-9;?]*[A-Za-z]`)
		osc := regexp.MustCompile(`\x1b\].*?\x07`)
		esc := regexp.MustCompile(`\x1b.`)
		s = csi.ReplaceAllString(s, "")
		s = osc.ReplaceAllString(s, "")
		s = esc.ReplaceAllString(s, "")

		replacer := strings.NewReplacer(
			"│", "", "─", "", "╭", "", "╮", "", "╰", "", "╯", "",
		)
		s = replacer.Replace(s)

		ws := regexp.MustCompile(`\s+`)
		return strings.ToLower(ws.ReplaceAllString(s, ""))
	}
	return strings.Contains(normalize(string(b)), normalize(want))
}

func TestTUI_InitialScreenAndQuit_Teatest(t *testing.T) {
	m := tui.NewModel(tui.Params{
		Stopwatch: stopwatch.New(nil),
		Logger:    observability.NewNoOpLogger(),
	})

	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(80, 30))
	tm.Send(tea.WindowSizeMsg{Width: 80, Height: 30})

	teatest.WaitFor(t, tm.Output(),
		func(b []byte) bool { return containsTTY(b, "00:00.00") && containsTTY(b, "Start") },
		teatest.WithDuration(2*time.Second),
	)

	tm.Type("q")
	tm.WaitFinished(t, teatest.WithFinalTimeout(2*time.Second))
}

func TestTUI_RunLapPause_Teatest(t *testing.T) {
	sw := stopwatch.New(nil)
	m := tui.NewModel(tui.Params{
		Stopwatch:    sw,
		TickInterval: 5 * time.Millisecond,
		Logger:       observability.NewNoOpLogger(),
	})

	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(80, 30))
	tm.Send(tea.WindowSizeMsg{Width: 80, Height: 30})

	tm.Send(tui.TestKey("space"))
	teatest.WaitFor(t, tm.Output(),
		func(b []byte) bool { return containsTTY(b, "Pause") },
		teatest.WithDuration(2*time.Second),
	)

	// Wait until at least one tick has been credited, then lap.
	time.Sleep(100 * time.Millisecond)
	tm.Type("l")
	teatest.WaitFor(t, tm.Output(),
		func(b []byte) bool { return bytes.Contains(b, []byte("Latest")) },
		teatest.WithDuration(2*time.Second),
	)

	tm.Send(tui.TestKey("space"))
	tm.Type("q")
	tm.WaitFinished(t, teatest.WithFinalTimeout(2*time.Second))

	final := tm.FinalModel(t).(*tui.Model)
	require.Same(t, sw, final.Stopwatch())
	assert.Equal(t, stopwatch.Stopped, sw.State())
	assert.Equal(t, 1, sw.LapCount())
	assert.Positive(t, sw.Elapsed())
	assert.GreaterOrEqual(t, sw.Elapsed(), sw.Laps()[0].Elapsed)
}
