package tui

import (
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const listHeight = 12

// newTable builds a focused table with the given columns.
func newTable(columns ...table.Column) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(listHeight),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("255")).
		Background(lipgloss.Color("236")).
		Bold(false)
	t.SetStyles(styles)
	return t
}

// setRows replaces the rows and keeps the cursor in range.
func setRows(t *table.Model, rows []table.Row) {
	t.SetRows(rows)
	if t.Cursor() >= len(rows) {
		t.SetCursor(max(len(rows)-1, 0))
	}
}

// moveTable forwards navigation keys to the table.
func moveTable(t *table.Model, msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	*t, cmd = t.Update(msg)
	return cmd
}
