package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// KeyBinding defines a key binding for the model.
//
// If Handler is nil, the binding is shown in the help screen but is not
// dispatched through the key map (the lap list viewport handles scrolling).
type KeyBinding struct {
	Keys        []string
	Description string
	Handler     func(*Model, tea.KeyMsg) tea.Cmd
}

// BindingCategory groups related key bindings for the help screen.
type BindingCategory struct {
	Name     string
	Bindings []KeyBinding
}

// KeyBindings returns every key binding of the stopwatch view.
func KeyBindings() []BindingCategory {
	return []BindingCategory{
		{
			Name: "Stopwatch",
			Bindings: []KeyBinding{
				{
					Keys:        []string{" ", "s"},
					Description: "Start / pause",
					Handler:     (*Model).handleToggle,
				},
				{
					Keys:        []string{"l", "enter"},
					Description: "Record lap (while running)",
					Handler:     (*Model).handleLap,
				},
				{
					Keys:        []string{"r"},
					Description: "Reset time and laps",
					Handler:     (*Model).handleReset,
				},
			},
		},
		{
			Name: "Laps",
			Bindings: []KeyBinding{
				{
					Keys:        []string{"up", "down"},
					Description: "Scroll lap list",
				},
				{
					Keys:        []string{"pgup", "pgdown"},
					Description: "Scroll lap list by page",
				},
			},
		},
		{
			Name: "General",
			Bindings: []KeyBinding{
				{
					Keys:        []string{"h", "?"},
					Description: "Toggle this help screen",
					Handler:     (*Model).handleToggleHelp,
				},
				{
					Keys:        []string{"q", "ctrl+c"},
					Description: "Quit",
					Handler:     (*Model).handleQuit,
				},
			},
		},
	}
}

// buildKeyMap maps each bound key to its handler.
func buildKeyMap(categories []BindingCategory) map[string]func(*Model, tea.KeyMsg) tea.Cmd {
	keyMap := make(map[string]func(*Model, tea.KeyMsg) tea.Cmd)
	for _, category := range categories {
		for _, binding := range category.Bindings {
			if binding.Handler == nil {
				continue
			}
			for _, key := range binding.Keys {
				keyMap[key] = binding.Handler
			}
		}
	}
	return keyMap
}

// keyLabel returns the help text for a list of keys.
func keyLabel(keys []string) string {
	labels := make([]string, len(keys))
	for i, k := range keys {
		if k == " " {
			k = "space"
		}
		labels[i] = k
	}
	return strings.Join(labels, ", ")
}
