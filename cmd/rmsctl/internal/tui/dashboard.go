package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Syam115/Resource-Management-System/pkg/sdk"
)

type dashboardView struct {
	env     *env
	summary *sdk.Dashboard
	table   table.Model
	loading bool
	err     string
}

func newDashboardView(e *env) *dashboardView {
	return &dashboardView{env: e, table: newTable(bookingColumns(true)...)}
}

func (v *dashboardView) Init() tea.Cmd {
	v.loading = true
	return fetch(v.env, func(ctx context.Context, c *sdk.Client) (*sdk.Dashboard, error) {
		return c.Dashboard(ctx)
	})
}

func (v *dashboardView) Capturing() bool { return false }

func (v *dashboardView) Help() []key.Binding {
	return []key.Binding{v.env.keys.Refresh}
}

func (v *dashboardView) Update(msg tea.Msg) (view, tea.Cmd) {
	switch msg := msg.(type) {
	case resultMsg[*sdk.Dashboard]:
		v.loading = false
		if msg.err != nil {
			v.err = sdk.UserMessage(msg.err)
			return v, nil
		}
		v.err = ""
		v.summary = msg.value
		setRows(&v.table, bookingRows(v.summary.PendingRequests, true))
	case tea.KeyMsg:
		if key.Matches(msg, v.env.keys.Refresh) {
			return v, v.Init()
		}
		return v, moveTable(&v.table, msg)
	}
	return v, nil
}

func (v *dashboardView) View() string {
	theme := v.env.theme
	var b strings.Builder

	title := "Dashboard"
	if session := v.env.session(); session != nil {
		title = fmt.Sprintf("Welcome back, %s", session.Identity.Name)
	}
	b.WriteString(theme.Title.Render(title))
	b.WriteString("\n\n")

	if v.err != "" {
		b.WriteString(theme.Error.Render(v.err))
		return b.String()
	}
	if v.summary == nil {
		b.WriteString(theme.Faint.Render("Loading..."))
		return b.String()
	}

	stat := func(value int, label string) string {
		return theme.Box.Render(theme.Stat.Render(fmt.Sprint(value)) + "\n" + theme.Faint.Render(label))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		stat(v.summary.Categories, "Categories"),
		stat(v.summary.Resources, "Resources"),
		stat(v.summary.Pending, "Pending requests"),
		stat(v.summary.Bookings, "Total bookings"),
	))
	b.WriteString("\n\n")

	if v.summary.Pending == 0 {
		b.WriteString(theme.Success.Render("No requests awaiting a decision."))
		return b.String()
	}
	b.WriteString(theme.Title.Render("Pending requests"))
	b.WriteString("\n")
	b.WriteString(v.table.View())
	b.WriteString("\n")
	b.WriteString(theme.Faint.Render("Approve or reject them under Bookings."))
	return b.String()
}
