package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wandb/lapwatch/internal/stopwatch"
)

// View renders the UI based on the data in the model.
//
// Implements tea.Model.View.
func (m *Model) View() string {
	defer m.logger.Reraise("where", "View")

	var content string
	if m.showHelp {
		content = renderHelp()
	} else {
		content = m.renderStopwatch()
	}

	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) renderStopwatch() string {
	sections := []string{
		titleStyle.Render("⏱  Stopwatch"),
		subtitleStyle.Render("Precision timing at your fingertips"),
		"",
		clockStyle.Render(lipgloss.JoinVertical(
			lipgloss.Center,
			m.sw.ElapsedText(),
			captionStyle.Render("MM:SS.CS"),
		)),
		"",
		m.renderControls(),
	}

	if m.sw.LapCount() > 0 {
		sections = append(sections,
			"",
			lapHeaderStyle.Render("● Lap Times"),
			m.laps.View(),
		)
	}

	sections = append(sections, "", m.renderStatusBar())
	return lipgloss.JoinVertical(lipgloss.Center, sections...)
}

// renderControls shows the actions available in the current state.
func (m *Model) renderControls() string {
	var toggle string
	if m.sw.State() == stopwatch.Running {
		toggle = pauseStyle.Render("[space] Pause")
	} else {
		toggle = startStyle.Render("[space] Start")
	}

	parts := []string{toggle, controlStyle.Render("[r] Reset")}
	if m.sw.CanLap() {
		parts = append(parts, controlStyle.Render("[l] Record Lap"))
	}
	return strings.Join(parts, "   ")
}

func (m *Model) renderStatusBar() string {
	return statusBarStyle.Render(fmt.Sprintf(
		"%s · %d laps · h: help · q: quit",
		m.sw.State(),
		m.sw.LapCount(),
	))
}

// renderLapList renders laps newest first, one per line.
func renderLapList(laps []stopwatch.LapView, width int) string {
	lines := make([]string, 0, len(laps))
	for _, lap := range laps {
		lines = append(lines, renderLap(lap, width))
	}
	return strings.Join(lines, "\n")
}

func renderLap(lap stopwatch.LapView, width int) string {
	number := lapNumberStyle.Render(fmt.Sprintf("#%d", lap.Number))
	badge := ""
	if lap.IsLatest {
		number = latestNumberStyle.Render(fmt.Sprintf("#%d", lap.Number))
		badge = latestBadgeStyle.Render("Latest")
	}

	left := lipgloss.JoinHorizontal(lipgloss.Top, number, badge)
	right := lipgloss.JoinHorizontal(
		lipgloss.Top,
		splitStyle.Render("+"+lap.SplitTime+"  "),
		lapTimeStyle.Render(lap.Time),
	)

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

// renderHelp lists the key bindings by category.
func renderHelp() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("lapwatch key bindings"))
	b.WriteString("\n")

	for _, category := range KeyBindings() {
		b.WriteString(helpSectionStyle.Render(category.Name))
		b.WriteString("\n")
		for _, binding := range category.Bindings {
			b.WriteString(lipgloss.JoinHorizontal(
				lipgloss.Top,
				helpKeyStyle.Render(keyLabel(binding.Keys)),
				helpDescStyle.Render(binding.Description),
			))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(statusBarStyle.Render("h, ?, esc: close help"))
	return b.String()
}
