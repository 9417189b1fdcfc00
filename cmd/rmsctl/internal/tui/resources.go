package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Syam115/Resource-Management-System/pkg/sdk"
)

const (
	resourceName = iota
	resourceDescription
	resourceCategory
	resourceLocation
	resourceCapacity
	resourceAvailable
)

var availability = []string{"yes", "no"}

// inventory is what the servicer's resource view loads.
type inventory struct {
	categories []sdk.Category
	resources  []sdk.Resource
}

// resourcesView manages the servicer's own resources.
type resourcesView struct {
	env        *env
	table      table.Model
	categories []sdk.Category
	resources  []sdk.Resource
	loading    bool
	err        string
	status     string

	editor  *form
	editing int64
	confirm *confirmation
}

func newResourcesView(e *env) *resourcesView {
	return &resourcesView{
		env: e,
		table: newTable(
			table.Column{Title: "ID", Width: 5},
			table.Column{Title: "Name", Width: 22},
			table.Column{Title: "Category", Width: 16},
			table.Column{Title: "Location", Width: 18},
			table.Column{Title: "Seats", Width: 6},
			table.Column{Title: "Available", Width: 10},
		),
	}
}

func (v *resourcesView) Init() tea.Cmd {
	v.loading = true
	return fetch(v.env, func(ctx context.Context, c *sdk.Client) (inventory, error) {
		categories, err := c.MyCategories(ctx)
		if err != nil {
			return inventory{}, err
		}
		resources, err := c.MyResources(ctx)
		return inventory{categories: categories, resources: resources}, err
	})
}

func (v *resourcesView) Capturing() bool {
	return v.editor != nil || v.confirm != nil
}

func (v *resourcesView) Help() []key.Binding {
	keys := v.env.keys
	switch {
	case v.confirm != nil:
		return []key.Binding{keys.Confirm, keys.Deny}
	case v.editor != nil:
		return []key.Binding{keys.NextField, keys.Left, keys.Right, keys.Submit, keys.Back}
	}
	return []key.Binding{keys.New, keys.Edit, keys.Delete, keys.Refresh}
}

func (v *resourcesView) Update(msg tea.Msg) (view, tea.Cmd) {
	switch msg := msg.(type) {
	case resultMsg[inventory]:
		v.loading = false
		if msg.err != nil {
			v.err = sdk.UserMessage(msg.err)
			return v, nil
		}
		v.err = ""
		v.categories = msg.value.categories
		v.resources = msg.value.resources
		rows := make([]table.Row, 0, len(v.resources))
		for _, r := range v.resources {
			seats := "-"
			if r.Capacity != nil {
				seats = strconv.Itoa(*r.Capacity)
			}
			available := "yes"
			if !r.IsAvailable {
				available = "no"
			}
			rows = append(rows, table.Row{
				strconv.FormatInt(r.ID, 10), r.Name, r.CategoryName, r.Location, seats, available,
			})
		}
		setRows(&v.table, rows)

	case doneMsg:
		if v.editor != nil && v.editor.submitting {
			v.editor.submitting = false
			if msg.err != nil {
				v.editor.err = sdk.UserMessage(msg.err)
				return v, nil
			}
			v.editor = nil
		} else if msg.err != nil {
			v.err = sdk.UserMessage(msg.err)
			return v, nil
		}
		v.err = ""
		v.status = msg.text
		return v, v.Init()

	case tea.KeyMsg:
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *resourcesView) handleKey(msg tea.KeyMsg) (view, tea.Cmd) {
	keys := v.env.keys

	if v.confirm != nil {
		done, cmd := v.confirm.update(msg, keys)
		if done {
			v.confirm = nil
		}
		return v, cmd
	}

	if v.editor != nil {
		if key.Matches(msg, keys.Back) {
			v.editor = nil
			return v, nil
		}
		submitted, cmd := v.editor.Update(msg, keys)
		if submitted {
			return v, v.save()
		}
		return v, cmd
	}

	switch {
	case key.Matches(msg, keys.New):
		v.open(sdk.Resource{IsAvailable: true})
		return v, nil
	case key.Matches(msg, keys.Edit):
		if selected, ok := v.selected(); ok {
			v.open(selected)
		}
		return v, nil
	case key.Matches(msg, keys.Delete):
		v.askDelete()
		return v, nil
	case key.Matches(msg, keys.Refresh):
		v.status = ""
		return v, v.Init()
	}
	return v, moveTable(&v.table, msg)
}

func (v *resourcesView) selected() (sdk.Resource, bool) {
	index := v.table.Cursor()
	if index < 0 || index >= len(v.resources) {
		return sdk.Resource{}, false
	}
	return v.resources[index], true
}

func (v *resourcesView) open(resource sdk.Resource) {
	v.status = ""
	if len(v.categories) == 0 {
		v.err = "Create a category before adding resources."
		return
	}
	v.err = ""

	names := make([]string, len(v.categories))
	selected := 0
	for i, c := range v.categories {
		names[i] = c.Name
		if c.ID == resource.CategoryID {
			selected = i
		}
	}
	capacity := ""
	if resource.Capacity != nil {
		capacity = strconv.Itoa(*resource.Capacity)
	}
	available := 0
	if !resource.IsAvailable {
		available = 1
	}

	title := "New resource"
	if resource.ID != 0 {
		title = fmt.Sprintf("Edit resource %d", resource.ID)
	}
	f := newForm(title,
		textField("Name", "Board room", resource.Name),
		textField("Description", "optional", resource.Description),
		choiceField("Category", names, selected),
		textField("Location", "optional", resource.Location),
		textField("Capacity", "optional", capacity),
		choiceField("Available", availability, available),
	)
	v.editor = &f
	v.editing = resource.ID
}

// input reads the editor into a ResourceInput.
func (v *resourcesView) input() (sdk.ResourceInput, error) {
	f := v.editor
	available := f.Value(resourceAvailable) == "yes"
	input := sdk.ResourceInput{
		Name:        f.Value(resourceName),
		Description: f.Value(resourceDescription),
		CategoryID:  v.categories[f.fields[resourceCategory].choice].ID,
		Location:    f.Value(resourceLocation),
		IsAvailable: &available,
	}
	if raw := f.Value(resourceCapacity); raw != "" {
		capacity, err := strconv.Atoi(raw)
		if err != nil {
			return input, &sdk.ValidationError{Field: "capacity", Message: "capacity must be a whole number"}
		}
		input.Capacity = &capacity
	}
	return input, input.Validate()
}

func (v *resourcesView) save() tea.Cmd {
	input, err := v.input()
	if err != nil {
		v.editor.err = sdk.UserMessage(err)
		return nil
	}
	v.editor.submitting = true
	v.editor.err = ""

	id := v.editing
	if id == 0 {
		return mutate(v.env, fmt.Sprintf("Resource %q created.", input.Name), func(ctx context.Context, c *sdk.Client) error {
			_, err := c.CreateResource(ctx, input)
			return err
		})
	}
	return mutate(v.env, fmt.Sprintf("Resource %q updated.", input.Name), func(ctx context.Context, c *sdk.Client) error {
		_, err := c.UpdateResource(ctx, id, input)
		return err
	})
}

func (v *resourcesView) askDelete() {
	resource, ok := v.selected()
	if !ok {
		return
	}
	v.confirm = &confirmation{
		question: fmt.Sprintf("Delete resource %q? Its bookings are removed too.", resource.Name),
		onYes: func() tea.Cmd {
			return mutate(v.env, fmt.Sprintf("Resource %q deleted.", resource.Name), func(ctx context.Context, c *sdk.Client) error {
				return c.DeleteResource(ctx, resource.ID)
			})
		},
	}
}

func (v *resourcesView) View() string {
	theme := v.env.theme
	var b strings.Builder
	b.WriteString(theme.Title.Render("Resources"))
	b.WriteString("\n\n")

	switch {
	case v.loading && len(v.resources) == 0:
		b.WriteString(theme.Faint.Render("Loading resources..."))
	case len(v.resources) == 0:
		b.WriteString(theme.Faint.Render("No resources yet. Press n to add one."))
	default:
		b.WriteString(v.table.View())
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
	if v.editor != nil {
		b.WriteString("\n" + theme.Box.Render(v.editor.View(theme)))
	}
	return b.String()
}
