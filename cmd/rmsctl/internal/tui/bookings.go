package tui

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Syam115/Resource-Management-System/cmd/rmsctl/internal/output"
	"github.com/Syam115/Resource-Management-System/pkg/sdk"
)

func bookingColumns(withRequester bool) []table.Column {
	columns := []table.Column{
		{Title: "ID", Width: 5},
		{Title: "Resource", Width: 22},
		{Title: "When", Width: 24},
		{Title: "Status", Width: 10},
		{Title: "Purpose", Width: 20},
	}
	if withRequester {
		columns = append(columns, table.Column{Title: "Requested by", Width: 22})
	}
	return columns
}

func bookingRows(bookings []sdk.Booking, withRequester bool) []table.Row {
	rows := make([]table.Row, 0, len(bookings))
	for _, b := range bookings {
		row := table.Row{
			strconv.FormatInt(b.ID, 10),
			b.ResourceName,
			output.Span(b.StartTime.Time, b.EndTime.Time),
			string(b.Status),
			b.Purpose,
		}
		if withRequester {
			row = append(row, b.UserName)
		}
		rows = append(rows, row)
	}
	return rows
}

// myBookingsView lists the user's bookings and cancels them after
// confirmation.
type myBookingsView struct {
	env      *env
	table    table.Model
	bookings []sdk.Booking
	loading  bool
	busy     bool
	confirm  *confirmation
	err      string
	status   string
}

func newMyBookingsView(e *env) *myBookingsView {
	return &myBookingsView{env: e, table: newTable(bookingColumns(false)...)}
}

func (v *myBookingsView) Init() tea.Cmd {
	v.loading = true
	return fetch(v.env, func(ctx context.Context, c *sdk.Client) ([]sdk.Booking, error) {
		return c.MyBookings(ctx)
	})
}

func (v *myBookingsView) Capturing() bool { return v.confirm != nil }

func (v *myBookingsView) Help() []key.Binding {
	keys := v.env.keys
	if v.confirm != nil {
		return []key.Binding{keys.Confirm, keys.Deny}
	}
	return []key.Binding{keys.Cancel, keys.Refresh}
}

func (v *myBookingsView) Update(msg tea.Msg) (view, tea.Cmd) {
	switch msg := msg.(type) {
	case resultMsg[[]sdk.Booking]:
		v.loading = false
		if msg.err != nil {
			v.err = sdk.UserMessage(msg.err)
			return v, nil
		}
		v.bookings = msg.value
		sort.SliceStable(v.bookings, func(i, j int) bool {
			return v.bookings[i].StartTime.After(v.bookings[j].StartTime.Time)
		})
		setRows(&v.table, bookingRows(v.bookings, false))

	case doneMsg:
		v.busy = false
		if msg.err != nil {
			v.err = sdk.UserMessage(msg.err)
			return v, nil
		}
		v.err = ""
		v.status = msg.text
		return v, v.Init()

	case tea.KeyMsg:
		keys := v.env.keys
		if v.confirm != nil {
			done, cmd := v.confirm.update(msg, keys)
			if done {
				v.confirm = nil
			}
			return v, cmd
		}
		switch {
		case key.Matches(msg, keys.Cancel):
			v.askCancel()
			return v, nil
		case key.Matches(msg, keys.Refresh):
			v.status = ""
			return v, v.Init()
		}
		return v, moveTable(&v.table, msg)
	}
	return v, nil
}

func (v *myBookingsView) askCancel() {
	index := v.table.Cursor()
	if v.busy || index < 0 || index >= len(v.bookings) {
		return
	}
	booking := v.bookings[index]
	if !booking.Status.Cancellable() {
		v.err = fmt.Sprintf("Booking %d is %s; only pending or approved bookings can be cancelled.", booking.ID, booking.Status)
		return
	}
	v.err = ""
	v.confirm = &confirmation{
		question: fmt.Sprintf("Cancel booking %d for %s?", booking.ID, booking.ResourceName),
		onYes: func() tea.Cmd {
			v.busy = true
			id := booking.ID
			return mutate(v.env, fmt.Sprintf("Booking %d cancelled.", id), func(ctx context.Context, c *sdk.Client) error {
				_, err := c.CancelBooking(ctx, id)
				return err
			})
		},
	}
}

func (v *myBookingsView) View() string {
	theme := v.env.theme
	var b strings.Builder
	b.WriteString(theme.Title.Render("My bookings"))
	b.WriteString("\n\n")
	switch {
	case v.loading && len(v.bookings) == 0:
		b.WriteString(theme.Faint.Render("Loading bookings..."))
	case len(v.bookings) == 0:
		b.WriteString(theme.Faint.Render("You have no bookings yet. Find a resource under Browse."))
	default:
		b.WriteString(v.table.View())
		if index := v.table.Cursor(); index >= 0 && index < len(v.bookings) {
			selected := v.bookings[index]
			b.WriteString("\n")
			b.WriteString(theme.Faint.Render(fmt.Sprintf("%s · %s · ", selected.ResourceName, output.When(selected.StartTime.Time))))
			b.WriteString(theme.Status(selected.Status))
		}
	}
	b.WriteString("\n")
	if v.confirm != nil {
		b.WriteString("\n" + v.confirm.View(theme) + "\n")
	}
	if v.err != "" {
		b.WriteString("\n" + theme.Error.Render(v.err) + "\n")
	}
	if v.status != "" {
		b.WriteString("\n" + theme.Success.Render(v.status) + "\n")
	}
	return b.String()
}
