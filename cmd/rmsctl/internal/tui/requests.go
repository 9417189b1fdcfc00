package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Syam115/Resource-Management-System/pkg/sdk"
)

// requestsView lists bookings of the servicer's resources and records
// decisions on pending ones.
type requestsView struct {
	env         *env
	table       table.Model
	bookings    []sdk.Booking
	pendingOnly bool
	loading     bool
	busy        bool
	err         string
	status      string
}

func newRequestsView(e *env) *requestsView {
	return &requestsView{env: e, table: newTable(bookingColumns(true)...), pendingOnly: true}
}

func (v *requestsView) Init() tea.Cmd {
	v.loading = true
	pendingOnly := v.pendingOnly
	return fetch(v.env, func(ctx context.Context, c *sdk.Client) ([]sdk.Booking, error) {
		return c.BookingRequests(ctx, pendingOnly)
	})
}

func (v *requestsView) Capturing() bool { return false }

func (v *requestsView) Help() []key.Binding {
	keys := v.env.keys
	return []key.Binding{keys.Approve, keys.Reject, keys.Pending, keys.Refresh}
}

func (v *requestsView) Update(msg tea.Msg) (view, tea.Cmd) {
	switch msg := msg.(type) {
	case resultMsg[[]sdk.Booking]:
		v.loading = false
		if msg.err != nil {
			v.err = sdk.UserMessage(msg.err)
			return v, nil
		}
		v.bookings = msg.value
		setRows(&v.table, bookingRows(v.bookings, true))

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
		switch {
		case key.Matches(msg, keys.Approve):
			return v, v.decide("approved", (*sdk.Client).ApproveBooking)
		case key.Matches(msg, keys.Reject):
			return v, v.decide("rejected", (*sdk.Client).RejectBooking)
		case key.Matches(msg, keys.Pending):
			v.pendingOnly = !v.pendingOnly
			v.status = ""
			return v, v.Init()
		case key.Matches(msg, keys.Refresh):
			v.status = ""
			return v, v.Init()
		}
		return v, moveTable(&v.table, msg)
	}
	return v, nil
}

func (v *requestsView) decide(verb string, action func(*sdk.Client, context.Context, int64) (*sdk.Booking, error)) tea.Cmd {
	index := v.table.Cursor()
	if v.busy || index < 0 || index >= len(v.bookings) {
		return nil
	}
	booking := v.bookings[index]
	if !booking.Status.Decidable() {
		v.err = fmt.Sprintf("Booking %d is already %s.", booking.ID, booking.Status)
		return nil
	}
	v.busy = true
	v.err = ""
	return mutate(v.env, fmt.Sprintf("Booking %d %s.", booking.ID, verb), func(ctx context.Context, c *sdk.Client) error {
		_, err := action(c, ctx, booking.ID)
		return err
	})
}

func (v *requestsView) View() string {
	theme := v.env.theme
	var b strings.Builder
	title := "Booking requests"
	if v.pendingOnly {
		title += " (pending)"
	}
	b.WriteString(theme.Title.Render(title))
	b.WriteString("\n\n")

	switch {
	case v.loading && len(v.bookings) == 0:
		b.WriteString(theme.Faint.Render("Loading requests..."))
	case len(v.bookings) == 0 && v.pendingOnly:
		b.WriteString(theme.Faint.Render("No pending requests. Press p to show all bookings."))
	case len(v.bookings) == 0:
		b.WriteString(theme.Faint.Render("No bookings for your resources yet."))
	default:
		b.WriteString(v.table.View())
	}
	b.WriteString("\n")

	if v.err != "" {
		b.WriteString("\n" + theme.Error.Render(v.err) + "\n")
	}
	if v.status != "" {
		b.WriteString("\n" + theme.Success.Render(v.status) + "\n")
	}
	return b.String()
}
