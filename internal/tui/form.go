package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// formField describes one labelled text input
type formField struct {
	label       string
	placeholder string
	width       int
	limit       int
}

// form is a vertical stack of text inputs with one focused at a time
type form struct {
	labels []string
	inputs []textinput.Model
	focus  int
}

type formAction int

const (
	formNone formAction = iota
	formSubmit
	formCancel
)

func newForm(fields []formField, values []string) form {
	f := form{
		labels: make([]string, len(fields)),
		inputs: make([]textinput.Model, len(fields)),
	}
	for i, field := range fields {
		in := textinput.New()
		in.Placeholder = field.placeholder
		in.Width = field.width
		in.CharLimit = field.limit
		if i < len(values) {
			in.SetValue(values[i])
		}
		f.labels[i] = field.label
		f.inputs[i] = in
	}
	f.inputs[0].Focus()
	return f
}

func (f *form) value(i int) string {
	return f.inputs[i].Value()
}

func (f *form) focusCmd() tea.Cmd {
	return f.inputs[f.focus].Focus()
}

func (f *form) move(delta int) tea.Cmd {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + len(f.inputs)) % len(f.inputs)
	return f.focusCmd()
}

// update handles navigation keys and forwards the rest to the focused input.
// enter on the last field and ctrl+s submit; esc cancels.
func (f *form) update(msg tea.Msg) (formAction, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			return formCancel, nil
		case "tab", "down":
			return formNone, f.move(1)
		case "shift+tab", "up":
			return formNone, f.move(-1)
		case "ctrl+s":
			return formSubmit, nil
		case "enter":
			if f.focus == len(f.inputs)-1 {
				return formSubmit, nil
			}
			return formNone, f.move(1)
		}
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return formNone, cmd
}

func (f *form) view() string {
	var s string
	for i, label := range f.labels {
		indicator := "  "
		labelStyle := subtitleStyle
		if i == f.focus {
			indicator = "> "
			labelStyle = focusStyle
		}
		s += fmt.Sprintf("%s%s\n  %s\n\n", indicator, labelStyle.Render(label), f.inputs[i].View())
	}
	return s
}

const formHelp = "  tab/shift+tab: navigate fields  ctrl+s: save  enter: next/save  esc: cancel"
