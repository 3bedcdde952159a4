// Test<API> provides a controlled interface for testing internal model state.
// These methods are only exposed for tests in the tui_test package.
package tui

import tea "github.com/charmbracelet/bubbletea"

// TestPumpTicks feeds every queued tick through Update and returns how many
// were delivered.
func (m *Model) TestPumpTicks() int {
	n := 0
	for {
		select {
		case t, ok := <-m.ticks:
			if !ok {
				return n
			}
			m.Update(TickMsg(t))
			n++
		default:
			return n
		}
	}
}

// TestTickerRunning reports whether the ticker has an active schedule.
func (m *Model) TestTickerRunning() bool {
	return m.ticker.Running()
}

// TestLapListContent returns the rendered lap list.
func (m *Model) TestLapListContent() string {
	return m.laps.View()
}

// TestHelpVisible reports whether the help screen is shown.
func (m *Model) TestHelpVisible() bool {
	return m.showHelp
}

// TestKey builds a key message for a key name such as "r" or "enter".
func TestKey(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "space", " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}
