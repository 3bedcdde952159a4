// Package tui is the terminal user interface of lapwatch.
package tui

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wandb/lapwatch/internal/observability"
	"github.com/wandb/lapwatch/internal/stopwatch"
	"github.com/wandb/lapwatch/internal/ticker"
)

// tickBuffer is the capacity of the tick channel.
const tickBuffer = 256

type Params struct {
	// Stopwatch is the timing state shown and controlled by the model.
	Stopwatch *stopwatch.Stopwatch

	// TickInterval is how often elapsed time is credited while running.
	TickInterval time.Duration

	// Clock schedules ticks. Defaults to ticker.SystemClock.
	Clock ticker.Clock

	// LapRows is the height of the lap list.
	LapRows int

	Logger *observability.CoreLogger
}

// Model is the stopwatch screen.
//
// Implements tea.Model.
//
// Every stopwatch operation runs on the Bubble Tea update loop. The only
// other goroutine involved is the ticker's, which talks to the model through
// the tick channel.
type Model struct {
	sw *stopwatch.Stopwatch

	ticker *ticker.Manager
	ticks  chan ticker.Tick

	closeOnce sync.Once
	closed    bool

	keyMap map[string]func(*Model, tea.KeyMsg) tea.Cmd

	// laps is the scrollable lap list.
	laps    viewport.Model
	lapRows int

	showHelp bool

	width, height int

	logger *observability.CoreLogger
}

func NewModel(params Params) *Model {
	logger := params.Logger
	if logger == nil {
		logger = observability.NewNoOpLogger()
	}
	sw := params.Stopwatch
	if sw == nil {
		sw = stopwatch.New(nil)
	}
	lapRows := params.LapRows
	if lapRows <= 0 {
		lapRows = 8
	}

	ticks := make(chan ticker.Tick, tickBuffer)
	mgr := ticker.NewManager(params.TickInterval, ticks, params.Clock, logger)
	logger.Info(fmt.Sprintf("tui: tick interval set to %v", mgr.Interval()))

	m := &Model{
		sw:      sw,
		ticker:  mgr,
		ticks:   ticks,
		keyMap:  buildKeyMap(KeyBindings()),
		laps:    viewport.New(MinLapListWidth, lapRows),
		lapRows: lapRows,
		logger:  logger,
	}
	m.refreshLaps()
	return m
}

// Init returns the initial command for the application to run.
//
// Implements tea.Model.Init.
func (m *Model) Init() tea.Cmd {
	m.logger.Debug("tui: Init called")
	return tea.Batch(windowTitleCmd(), m.waitForTick())
}

// Update handles incoming events and updates the model accordingly.
//
// Implements tea.Model.Update.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	defer m.logger.Reraise("where", "Update")

	switch t := msg.(type) {
	case TickMsg:
		m.onTick(ticker.Tick(t))
		return m, m.waitForTick()

	case tickerClosedMsg:
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKeyMsg(t)

	case tea.WindowSizeMsg:
		m.width, m.height = t.Width, t.Height
		m.laps.Width = lapListWidth(t.Width)
		m.refreshLaps()
		return m, nil
	}

	var cmd tea.Cmd
	m.laps, cmd = m.laps.Update(msg)
	return m, cmd
}

// onTick credits a tick unless it predates the last start, pause or reset.
// Time of such ticks was already credited, or discarded, when the ticker
// was stopped.
func (m *Model) onTick(t ticker.Tick) {
	if !m.ticker.Claim(t) {
		m.logger.Debug("tui: dropping stale tick", "gen", t.Gen)
		return
	}
	m.sw.Advance(t.Delta)
}

// waitForTick blocks until the ticker emits or the model is closed.
func (m *Model) waitForTick() tea.Cmd {
	return func() tea.Msg {
		t, ok := <-m.ticks
		if !ok {
			return tickerClosedMsg{}
		}
		return TickMsg(t)
	}
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	if msg.Type == tea.KeySpace {
		key = " "
	}

	if m.showHelp {
		switch key {
		case "h", "?", "esc":
			m.showHelp = false
			return nil
		case "q", "ctrl+c":
			return m.handleQuit(msg)
		}
		return nil
	}

	if handler, ok := m.keyMap[key]; ok {
		return handler(m, msg)
	}

	var cmd tea.Cmd
	m.laps, cmd = m.laps.Update(msg)
	return cmd
}

func (m *Model) handleToggle(tea.KeyMsg) tea.Cmd {
	if m.closed {
		return nil
	}

	if m.sw.State() == stopwatch.Running {
		// Credit queued ticks and the time since the last one.
		m.sw.Advance(m.ticker.Stop())
		m.sw.Pause()
		m.logger.Debug("tui: paused", "elapsed_ms", m.sw.Elapsed())
		return nil
	}

	m.sw.Start()
	m.ticker.Start()
	m.logger.Debug("tui: started", "elapsed_ms", m.sw.Elapsed())
	return nil
}

func (m *Model) handleLap(tea.KeyMsg) tea.Cmd {
	if !m.sw.CanLap() {
		return nil
	}
	if m.sw.RecordLap() {
		m.refreshLaps()
		m.laps.GotoTop()
		m.logger.Debug("tui: lap recorded", "laps", m.sw.LapCount())
	}
	return nil
}

func (m *Model) handleReset(tea.KeyMsg) tea.Cmd {
	m.ticker.Stop()
	m.sw.Reset()
	m.refreshLaps()
	m.logger.Debug("tui: reset")
	return nil
}

func (m *Model) handleToggleHelp(tea.KeyMsg) tea.Cmd {
	m.showHelp = !m.showHelp
	return nil
}

func (m *Model) handleQuit(tea.KeyMsg) tea.Cmd {
	m.Close()
	return tea.Quit
}

// Close stops the ticker and releases the tick reader. Safe to call more
// than once; the model does not start ticking again afterwards.
func (m *Model) Close() {
	m.closeOnce.Do(func() {
		m.closed = true
		// Credit the final partial tick so the summary is exact.
		m.sw.Advance(m.ticker.Stop())
		close(m.ticks)
		m.logger.Debug("tui: closed")
	})
}

// Stopwatch returns the stopwatch driven by the model.
func (m *Model) Stopwatch() *stopwatch.Stopwatch {
	return m.sw
}

func (m *Model) refreshLaps() {
	m.laps.Height = m.lapRows
	m.laps.SetContent(renderLapList(m.sw.Laps(), m.laps.Width))
}

func lapListWidth(termWidth int) int {
	w := termWidth - 4
	if w < MinLapListWidth {
		return MinLapListWidth
	}
	if w > MaxLapListWidth {
		return MaxLapListWidth
	}
	return w
}
