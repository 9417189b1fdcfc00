package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Syam115/Resource-Management-System/pkg/sdk"
)

// catalogue is the first load of the browse view.
type catalogue struct {
	categories []sdk.Category
	resources  []sdk.Resource
}

type browseView struct {
	env        *env
	table      table.Model
	resources  []sdk.Resource
	categories []sdk.Category
	category   int // index into categories, -1 for all
	search     textinput.Model
	searching  bool
	loading    bool
	err        string
	status     string

	// booking is the open booking form, for resource bookFor.
	booking *form
	bookFor sdk.Resource
}

func newBrowseView(e *env) *browseView {
	return &browseView{
		env:      e,
		category: -1,
		search:   newInput("name or description", ""),
		table: newTable(
			table.Column{Title: "ID", Width: 5},
			table.Column{Title: "Name", Width: 24},
			table.Column{Title: "Category", Width: 16},
			table.Column{Title: "Location", Width: 18},
			table.Column{Title: "Seats", Width: 6},
			table.Column{Title: "Status", Width: 12},
		),
	}
}

func (v *browseView) filter() sdk.ResourceFilter {
	filter := sdk.ResourceFilter{Search: v.search.Value()}
	if v.category >= 0 && v.category < len(v.categories) {
		filter.Category = sdk.CategoryByID(v.categories[v.category].ID)
	}
	return filter
}

func (v *browseView) Init() tea.Cmd {
	v.loading = true
	filter := v.filter()
	return fetch(v.env, func(ctx context.Context, c *sdk.Client) (catalogue, error) {
		categories, err := c.ListCategories(ctx)
		if err != nil {
			return catalogue{}, err
		}
		resources, err := c.ListResources(ctx, filter)
		return catalogue{categories: categories, resources: resources}, err
	})
}

func (v *browseView) reload() tea.Cmd {
	v.loading = true
	filter := v.filter()
	return fetch(v.env, func(ctx context.Context, c *sdk.Client) ([]sdk.Resource, error) {
		return c.ListResources(ctx, filter)
	})
}

func (v *browseView) Capturing() bool {
	return v.searching || v.booking != nil
}

func (v *browseView) Help() []key.Binding {
	keys := v.env.keys
	switch {
	case v.booking != nil:
		return []key.Binding{keys.NextField, keys.Submit, keys.Back}
	case v.searching:
		return []key.Binding{keys.Submit, keys.Back}
	}
	return []key.Binding{keys.Select, keys.Search, keys.PrevCat, keys.NextCat, keys.Refresh}
}

func (v *browseView) Update(msg tea.Msg) (view, tea.Cmd) {
	switch msg := msg.(type) {
	case resultMsg[catalogue]:
		v.loading = false
		if msg.err != nil {
			v.err = sdk.UserMessage(msg.err)
			return v, nil
		}
		v.categories = msg.value.categories
		v.showResources(msg.value.resources)

	case resultMsg[[]sdk.Resource]:
		v.loading = false
		if msg.err != nil {
			v.err = sdk.UserMessage(msg.err)
			return v, nil
		}
		v.showResources(msg.value)

	case resultMsg[*sdk.Booking]:
		if v.booking == nil {
			return v, nil
		}
		v.booking.submitting = false
		if msg.err != nil {
			v.booking.err = sdk.UserMessage(msg.err)
			return v, nil
		}
		v.booking = nil
		v.status = fmt.Sprintf("Booking %d requested for %s; it is %s until the servicer decides.",
			msg.value.ID, msg.value.ResourceName, msg.value.Status)
		return v, v.reload()

	case tea.KeyMsg:
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *browseView) showResources(resources []sdk.Resource) {
	v.err = ""
	v.resources = resources
	rows := make([]table.Row, 0, len(resources))
	for _, r := range resources {
		seats := "-"
		if r.Capacity != nil {
			seats = strconv.Itoa(*r.Capacity)
		}
		status := "Available"
		if !r.IsAvailable {
			status = "Unavailable"
		}
		rows = append(rows, table.Row{strconv.FormatInt(r.ID, 10), r.Name, r.CategoryName, r.Location, seats, status})
	}
	setRows(&v.table, rows)
}

func (v *browseView) handleKey(msg tea.KeyMsg) (view, tea.Cmd) {
	keys := v.env.keys

	if v.booking != nil {
		if key.Matches(msg, keys.Back) {
			v.booking = nil
			return v, nil
		}
		submitted, cmd := v.booking.Update(msg, keys)
		if submitted {
			return v, v.submitBooking()
		}
		return v, cmd
	}

	if v.searching {
		switch {
		case key.Matches(msg, keys.Submit):
			v.searching = false
			v.search.Blur()
			return v, v.reload()
		case key.Matches(msg, keys.Back):
			v.searching = false
			v.search.Blur()
			return v, nil
		}
		var cmd tea.Cmd
		v.search, cmd = v.search.Update(msg)
		return v, cmd
	}

	switch {
	case key.Matches(msg, keys.Search):
		v.searching = true
		v.search.Focus()
		return v, nil
	case key.Matches(msg, keys.NextCat):
		v.category = cycle(v.category, len(v.categories), 1)
		return v, v.reload()
	case key.Matches(msg, keys.PrevCat):
		v.category = cycle(v.category, len(v.categories), -1)
		return v, v.reload()
	case key.Matches(msg, keys.Refresh):
		v.status = ""
		return v, v.reload()
	case key.Matches(msg, keys.Select):
		v.openBooking()
		return v, nil
	}
	return v, moveTable(&v.table, msg)
}

// cycle steps through -1 (all) and 0..n-1.
func cycle(current, n, step int) int {
	if n == 0 {
		return -1
	}
	next := current + step
	if next >= n {
		return -1
	}
	if next < -1 {
		return n - 1
	}
	return next
}

func (v *browseView) selected() (sdk.Resource, bool) {
	index := v.table.Cursor()
	if index < 0 || index >= len(v.resources) {
		return sdk.Resource{}, false
	}
	return v.resources[index], true
}

func (v *browseView) openBooking() {
	resource, ok := v.selected()
	if !ok {
		return
	}
	if !resource.IsAvailable {
		v.err = "This resource is not available for booking."
		return
	}
	v.err = ""
	v.status = ""
	f := newForm(fmt.Sprintf("Book %s", resource.Name),
		textField("Start", "2026-03-02 09:00", ""),
		textField("End", "2026-03-02 10:00", ""),
		textField("Purpose", "optional", ""),
	)
	v.booking = &f
	v.bookFor = resource
}

func (v *browseView) submitBooking() tea.Cmd {
	f := v.booking
	input := sdk.BookingInput{ResourceID: v.bookFor.ID, Purpose: f.Value(2)}

	start, err := sdk.ParseBookingTime(f.Value(0), time.Local)
	if err != nil {
		f.err = "Start: " + err.Error()
		return nil
	}
	end, err := sdk.ParseBookingTime(f.Value(1), time.Local)
	if err != nil {
		f.err = "End: " + err.Error()
		return nil
	}
	input.StartTime, input.EndTime = start, end
	if err := input.Validate(); err != nil {
		f.err = sdk.UserMessage(err)
		return nil
	}

	f.submitting = true
	f.err = ""
	return fetch(v.env, func(ctx context.Context, c *sdk.Client) (*sdk.Booking, error) {
		return c.CreateBooking(ctx, input)
	})
}

func (v *browseView) View() string {
	theme := v.env.theme
	var b strings.Builder
	b.WriteString(theme.Title.Render("Browse resources"))
	b.WriteString("\n\n")

	category := "All categories"
	if v.category >= 0 && v.category < len(v.categories) {
		category = v.categories[v.category].Name
	}
	b.WriteString(theme.Label.Render("Category"))
	b.WriteString(category)
	b.WriteString("\n")
	if v.searching {
		b.WriteString(theme.Focused.Render("Search"))
	} else {
		b.WriteString(theme.Label.Render("Search"))
	}
	b.WriteString(v.search.View())
	b.WriteString("\n\n")

	switch {
	case v.loading && len(v.resources) == 0:
		b.WriteString(theme.Faint.Render("Loading resources..."))
	case len(v.resources) == 0:
		b.WriteString(theme.Faint.Render("No resources found. Try adjusting your search criteria."))
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
	if v.booking != nil {
		details := fmt.Sprintf("%s · %s", v.bookFor.Location, v.bookFor.CategoryName)
		b.WriteString("\n")
		b.WriteString(theme.Box.Render(theme.Faint.Render(details) + "\n\n" + v.booking.View(theme)))
	}
	return b.String()
}
