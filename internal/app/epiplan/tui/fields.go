package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"epiplan/internal/app/epiplan/form"
)

// FieldSet is the planner form, one text input per bound field
type FieldSet struct {
	order  []form.Field
	inputs map[form.Field]*textinput.Model
	focus  int
}

// NewFieldSet makes inputs for every form field, the first one focused
func NewFieldSet() *FieldSet {
	fs := &FieldSet{order: form.Fields(), inputs: map[form.Field]*textinput.Model{}}
	for _, f := range fs.order {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = form.Label(f)
		in.Width = 60
		fs.inputs[f] = &in
	}
	fs.inputs[fs.order[0]].Focus()
	return fs
}

// Value of field, false if there is no input for it
func (fs *FieldSet) Value(f form.Field) (string, bool) {
	in, ok := fs.inputs[f]
	if !ok {
		return "", false
	}
	return in.Value(), true
}

// SetValue of field, false if there is no input for it
func (fs *FieldSet) SetValue(f form.Field, value string) bool {
	in, ok := fs.inputs[f]
	if !ok {
		return false
	}
	in.SetValue(value)
	return true
}

// Focused field
func (fs *FieldSet) Focused() form.Field {
	return fs.order[fs.focus]
}

// Move focus by delta, wrapping around
func (fs *FieldSet) Move(delta int) {
	fs.inputs[fs.Focused()].Blur()
	n := len(fs.order)
	fs.focus = ((fs.focus+delta)%n + n) % n
	fs.inputs[fs.Focused()].Focus()
}

// SetWidth of all inputs
func (fs *FieldSet) SetWidth(w int) {
	for _, in := range fs.inputs {
		in.Width = w
	}
}

// update passes msg to the focused input, reports whether its value changed
func (fs *FieldSet) update(msg tea.Msg) (bool, tea.Cmd) {
	in := fs.inputs[fs.Focused()]
	before := in.Value()
	var cmd tea.Cmd
	*in, cmd = in.Update(msg)
	return in.Value() != before, cmd
}
