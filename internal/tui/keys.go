package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/recywise/recywise-tui/internal/wizard"
)

// keyMap holds the bindings that apply regardless of step. Step-specific
// choices come from the screen's action list instead.
type keyMap struct {
	Quit      key.Binding
	ForceQuit key.Binding
	Back      key.Binding
	NextField key.Binding
	PrevField key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		NextField: key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		PrevField: key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev field")),
	}
}

// actionBindings converts a screen's actions into footer help bindings.
// Disabled actions keep their binding so the footer can show them dimmed.
func actionBindings(actions []wizard.Action) []key.Binding {
	out := make([]key.Binding, 0, len(actions))
	for _, a := range actions {
		b := key.NewBinding(key.WithKeys(a.Key), key.WithHelp(a.Key, a.Label))
		b.SetEnabled(a.Enabled)
		out = append(out, b)
	}
	return out
}

// footerBindings assembles the footer for one screen: its own actions plus
// whichever global bindings apply on that step. Typing steps leave out quit
// because the letter would land in the input.
func (m Model) footerBindings(sc wizard.Screen) []key.Binding {
	bindings := actionBindings(sc.Actions)
	switch sc.Step {
	case wizard.StepManualEntry, wizard.StepMaterialEntry:
		bindings = append(bindings, m.keys.NextField)
	case wizard.StepVINEntry, wizard.StepGenerating:
	default:
		bindings = append(bindings, m.keys.Quit)
	}
	return bindings
}
