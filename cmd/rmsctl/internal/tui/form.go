package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// field is one row of a form: a text input, or a fixed set of options
// cycled with left/right when options is set.
type field struct {
	label   string
	input   textinput.Model
	options []string
	choice  int
}

func newInput(placeholder, value string) textinput.Model {
	input := textinput.New()
	input.Prompt = ""
	input.Placeholder = placeholder
	input.CharLimit = 256
	input.Width = 40
	input.Cursor.SetMode(cursor.CursorStatic)
	input.SetValue(value)
	return input
}

func textField(label, placeholder, value string) field {
	return field{label: label, input: newInput(placeholder, value)}
}

func passwordField(label string) field {
	f := textField(label, "", "")
	f.input.EchoMode = textinput.EchoPassword
	f.input.EchoCharacter = '•'
	return f
}

func choiceField(label string, options []string, selected int) field {
	if selected < 0 || selected >= len(options) {
		selected = 0
	}
	return field{label: label, options: options, choice: selected}
}

func (f field) value() string {
	if f.options != nil {
		if len(f.options) == 0 {
			return ""
		}
		return f.options[f.choice]
	}
	return strings.TrimSpace(f.input.Value())
}

// form is a column of fields with a single focused row. submitting is set
// while a request started from the form is in flight; further submits are
// ignored until it is cleared.
type form struct {
	title      string
	fields     []field
	focus      int
	active     bool
	submitting bool
	err        string
}

func newForm(title string, fields ...field) form {
	f := form{title: title, fields: fields}
	f.setFocus(0)
	return f
}

func (f *form) setFocus(index int) {
	if len(f.fields) == 0 {
		return
	}
	index = (index + len(f.fields)) % len(f.fields)
	f.active = true
	for i := range f.fields {
		if f.fields[i].options != nil {
			continue
		}
		if i == index {
			f.fields[i].input.Focus()
		} else {
			f.fields[i].input.Blur()
		}
	}
	f.focus = index
}

// blur leaves the form without discarding its values.
func (f *form) blur() {
	f.active = false
	for i := range f.fields {
		f.fields[i].input.Blur()
	}
}

// Value returns the trimmed value of field i. Password fields are not
// trimmed.
func (f form) Value(i int) string {
	if f.fields[i].input.EchoMode == textinput.EchoPassword {
		return f.fields[i].input.Value()
	}
	return f.fields[i].value()
}

// Update handles a key press and reports whether the form was submitted.
// A submit while another is in flight is swallowed.
func (f *form) Update(msg tea.KeyMsg, keys KeyMap) (submitted bool, cmd tea.Cmd) {
	current := &f.fields[f.focus]
	switch {
	case key.Matches(msg, keys.Submit):
		if f.submitting {
			return false, nil
		}
		return true, nil
	case key.Matches(msg, keys.NextField):
		f.setFocus(f.focus + 1)
		return false, nil
	case key.Matches(msg, keys.PrevField):
		f.setFocus(f.focus - 1)
		return false, nil
	}

	if current.options != nil {
		switch {
		case key.Matches(msg, keys.Left):
			current.choice = (current.choice - 1 + len(current.options)) % len(current.options)
		case key.Matches(msg, keys.Right), msg.String() == " ":
			current.choice = (current.choice + 1) % len(current.options)
		}
		return false, nil
	}

	current.input, cmd = current.input.Update(msg)
	return false, cmd
}

// View renders the form with the focused row highlighted.
func (f form) View(theme Theme) string {
	var b strings.Builder
	if f.title != "" {
		b.WriteString(theme.Title.Render(f.title))
		b.WriteString("\n\n")
	}
	for i, fld := range f.fields {
		label := theme.Label
		marker := "  "
		if f.active && i == f.focus {
			label = theme.Focused
			marker = "> "
		}
		b.WriteString(marker)
		b.WriteString(label.Render(fld.label))
		if fld.options != nil {
			b.WriteString(renderOptions(fld, theme))
		} else {
			b.WriteString(fld.input.View())
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	switch {
	case f.submitting:
		b.WriteString(theme.Faint.Render("Submitting..."))
	case f.err != "":
		b.WriteString(theme.Error.Render(f.err))
	}
	return b.String()
}

func renderOptions(f field, theme Theme) string {
	parts := make([]string, len(f.options))
	for i, option := range f.options {
		if i == f.choice {
			parts[i] = theme.NavActive.Render(option)
		} else {
			parts[i] = theme.NavItem.Render(option)
		}
	}
	return strings.Join(parts, " ")
}

// confirmation is a pending yes/no question.
type confirmation struct {
	question string
	onYes    func() tea.Cmd
}

// update resolves the question. It returns done when the prompt should close.
func (c *confirmation) update(msg tea.KeyMsg, keys KeyMap) (done bool, cmd tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Confirm):
		return true, c.onYes()
	case key.Matches(msg, keys.Deny):
		return true, nil
	}
	return false, nil
}

func (c confirmation) View(theme Theme) string {
	return theme.Notice.Render(c.question + " (y/n)")
}
