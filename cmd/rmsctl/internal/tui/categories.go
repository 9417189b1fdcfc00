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
	categoryName = iota
	categoryDescription
)

// categoriesView manages the servicer's own categories.
type categoriesView struct {
	env        *env
	table      table.Model
	categories []sdk.Category
	loading    bool
	err        string
	status     string

	// editor is the open create or edit form; editing is the category
	// being edited, zero when creating.
	editor  *form
	editing int64
	confirm *confirmation
}

func newCategoriesView(e *env) *categoriesView {
	return &categoriesView{
		env: e,
		table: newTable(
			table.Column{Title: "ID", Width: 5},
			table.Column{Title: "Name", Width: 22},
			table.Column{Title: "Description", Width: 36},
			table.Column{Title: "Resources", Width: 10},
		),
	}
}

func (v *categoriesView) Init() tea.Cmd {
	v.loading = true
	return fetch(v.env, func(ctx context.Context, c *sdk.Client) ([]sdk.Category, error) {
		return c.MyCategories(ctx)
	})
}

func (v *categoriesView) Capturing() bool {
	return v.editor != nil || v.confirm != nil
}

func (v *categoriesView) Help() []key.Binding {
	keys := v.env.keys
	switch {
	case v.confirm != nil:
		return []key.Binding{keys.Confirm, keys.Deny}
	case v.editor != nil:
		return []key.Binding{keys.NextField, keys.Submit, keys.Back}
	}
	return []key.Binding{keys.New, keys.Edit, keys.Delete, keys.Refresh}
}

func (v *categoriesView) Update(msg tea.Msg) (view, tea.Cmd) {
	switch msg := msg.(type) {
	case resultMsg[[]sdk.Category]:
		v.loading = false
		if msg.err != nil {
			v.err = sdk.UserMessage(msg.err)
			return v, nil
		}
		v.err = ""
		v.categories = msg.value
		rows := make([]table.Row, 0, len(v.categories))
		for _, c := range v.categories {
			rows = append(rows, table.Row{
				strconv.FormatInt(c.ID, 10), c.Name, c.Description, strconv.Itoa(c.ResourceCount),
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

func (v *categoriesView) handleKey(msg tea.KeyMsg) (view, tea.Cmd) {
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
		v.open(sdk.Category{})
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

func (v *categoriesView) selected() (sdk.Category, bool) {
	index := v.table.Cursor()
	if index < 0 || index >= len(v.categories) {
		return sdk.Category{}, false
	}
	return v.categories[index], true
}

func (v *categoriesView) open(category sdk.Category) {
	title := "New category"
	if category.ID != 0 {
		title = fmt.Sprintf("Edit category %d", category.ID)
	}
	f := newForm(title,
		textField("Name", "Meeting rooms", category.Name),
		textField("Description", "optional", category.Description),
	)
	v.editor = &f
	v.editing = category.ID
	v.status = ""
	v.err = ""
}

func (v *categoriesView) save() tea.Cmd {
	input := sdk.CategoryInput{
		Name:        v.editor.Value(categoryName),
		Description: v.editor.Value(categoryDescription),
	}
	if err := input.Validate(); err != nil {
		v.editor.err = sdk.UserMessage(err)
		return nil
	}
	v.editor.submitting = true
	v.editor.err = ""

	id := v.editing
	if id == 0 {
		return mutate(v.env, fmt.Sprintf("Category %q created.", input.Name), func(ctx context.Context, c *sdk.Client) error {
			_, err := c.CreateCategory(ctx, input)
			return err
		})
	}
	return mutate(v.env, fmt.Sprintf("Category %q updated.", input.Name), func(ctx context.Context, c *sdk.Client) error {
		_, err := c.UpdateCategory(ctx, id, input)
		return err
	})
}

func (v *categoriesView) askDelete() {
	category, ok := v.selected()
	if !ok {
		return
	}
	question := fmt.Sprintf("Delete category %q?", category.Name)
	if category.ResourceCount > 0 {
		question = fmt.Sprintf("Delete category %q and its %d resources?", category.Name, category.ResourceCount)
	}
	v.confirm = &confirmation{
		question: question,
		onYes: func() tea.Cmd {
			return mutate(v.env, fmt.Sprintf("Category %q deleted.", category.Name), func(ctx context.Context, c *sdk.Client) error {
				return c.DeleteCategory(ctx, category.ID)
			})
		},
	}
}

func (v *categoriesView) View() string {
	theme := v.env.theme
	var b strings.Builder
	b.WriteString(theme.Title.Render("Categories"))
	b.WriteString("\n\n")

	switch {
	case v.loading && len(v.categories) == 0:
		b.WriteString(theme.Faint.Render("Loading categories..."))
	case len(v.categories) == 0:
		b.WriteString(theme.Faint.Render("No categories yet. Press n to create one."))
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
