// Package tui is the interactive terminal interface of rmsctl. An App owns
// the router and the mounted view; every navigation mounts a fresh view
// under a new generation, and results of commands started by an earlier
// generation are discarded.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Syam115/Resource-Management-System/cmd/rmsctl/internal/client"
	"github.com/Syam115/Resource-Management-System/pkg/nav"
	"github.com/Syam115/Resource-Management-System/pkg/sdk"
)

// view is a mounted screen.
type view interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (view, tea.Cmd)
	View() string
	// Capturing reports whether keystrokes belong to a text field, in
	// which case global shortcuts are not applied.
	Capturing() bool
	Help() []key.Binding
}

// Options configures New.
type Options struct {
	Gateway *sdk.Gateway
	Clients *client.Provider
	Router  *nav.Router
	Logger  *slog.Logger
	// Start is the first path to open. Empty means the root.
	Start string
}

// App is the root bubbletea model.
type App struct {
	env    *env
	router *nav.Router
	store  *sdk.SessionStore
	help   help.Model

	prompt    textinput.Model
	prompting bool

	path     string
	route    nav.Route
	current  view
	gen      int
	signedIn bool
	notice   string
	width    int
}

// New builds the App and mounts the start path.
func New(ctx context.Context, opts Options) App {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	router := opts.Router
	if router == nil {
		router = nav.NewRouter(opts.Gateway.Store(), nil)
	}

	app := App{
		env: &env{
			ctx:     ctx,
			gateway: opts.Gateway,
			clients: opts.Clients,
			logger:  logger,
			keys:    DefaultKeyMap,
			theme:   DefaultTheme,
		},
		router: router,
		store:  opts.Gateway.Store(),
		help:   help.New(),
		prompt: newInput("/user/browse", ""),
	}
	start := opts.Start
	if start == "" {
		start = nav.RootPath
	}
	app.goTo(start, "")
	return app
}

// Run starts the program and blocks until the user quits.
func Run(ctx context.Context, opts Options) error {
	app := New(ctx, opts)
	_, err := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return fmt.Errorf("terminal UI: %w", err)
	}
	return nil
}

// Path returns the path of the mounted view.
func (app App) Path() string {
	return app.path
}

// Init implements tea.Model.
func (app App) Init() tea.Cmd {
	return app.scope(app.current.Init())
}

// goTo resolves path through the router and mounts the resulting view.
// The command it returns is the new view's Init, already scoped.
func (app *App) goTo(path, notice string) tea.Cmd {
	resolution, err := app.router.Resolve(path)
	if err != nil {
		app.env.logger.Warn("navigation failed", "path", path, "error", err)
		resolution, _ = app.router.Resolve(nav.RootPath)
		notice = "That page could not be opened."
	}
	if notice == "" && resolution.Reason == nav.ReasonUnauthenticated {
		notice = sdk.UserMessage(sdk.ErrNotAuthenticated)
	}

	app.gen++
	app.path = resolution.Route.Path
	app.route = resolution.Route
	app.notice = notice
	app.signedIn = app.store.IsAuthenticated()
	app.current = app.mount(resolution.Route.View)
	app.env.logger.Debug("navigated",
		"requested", path,
		"path", app.path,
		"redirects", resolution.Redirects,
		"generation", app.gen)
	return app.scope(app.current.Init())
}

func (app *App) mount(v nav.View) view {
	switch v {
	case nav.ViewLogin:
		return newLoginView(app.env)
	case nav.ViewRegister:
		return newRegisterView(app.env)
	case nav.ViewBrowse:
		return newBrowseView(app.env)
	case nav.ViewMyBookings:
		return newMyBookingsView(app.env)
	case nav.ViewDashboard:
		return newDashboardView(app.env)
	case nav.ViewCategories:
		return newCategoriesView(app.env)
	case nav.ViewResources:
		return newResourcesView(app.env)
	case nav.ViewBookingRequests:
		return newRequestsView(app.env)
	default:
		return newLandingView(app.env)
	}
}

// scope tags cmd's result with the current generation.
func (app *App) scope(cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	gen := app.gen
	return func() tea.Msg {
		return scopedMsg{gen: gen, msg: cmd()}
	}
}

// Update implements tea.Model.
func (app App) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		app.width = message.Width
		app.help.Width = message.Width
		return app, nil

	case navigateMsg:
		return app, app.goTo(message.path, message.notice)

	case scopedMsg:
		if message.gen != app.gen {
			app.env.logger.Debug("dropping stale result", "generation", message.gen, "current", app.gen)
			return app, nil
		}
		switch inner := message.msg.(type) {
		case nil:
			return app, nil
		case navigateMsg:
			return app, app.goTo(inner.path, inner.notice)
		case tea.BatchMsg:
			cmds := make([]tea.Cmd, 0, len(inner))
			for _, cmd := range inner {
				cmds = append(cmds, app.scope(cmd))
			}
			return app, tea.Batch(cmds...)
		}
		return app.updateView(message.msg)

	case tea.KeyMsg:
		return app.handleKey(message)
	}
	return app, nil
}

func (app App) handleKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := app.env.keys
	if key.Matches(message, keys.ForceQuit) {
		return app, tea.Quit
	}
	if app.prompting {
		return app.handlePromptKey(message)
	}

	if !app.current.Capturing() {
		switch {
		case key.Matches(message, keys.Quit):
			return app, tea.Quit

		case key.Matches(message, keys.GoTo):
			app.prompting = true
			app.prompt.SetValue("")
			app.prompt.Focus()
			return app, nil

		case key.Matches(message, keys.Logout):
			if !app.store.IsAuthenticated() {
				return app, nil
			}
			app.env.gateway.Logout()
			app.signedIn = false
			return app, app.goTo(nav.LoginPath, "You have been logged out.")

		case key.Matches(message, keys.Jump):
			links := app.router.Links()
			index := int(message.Runes[0] - '1')
			if index >= 0 && index < len(links) {
				return app, app.goTo(links[index].Path, "")
			}
			return app, nil
		}
	}

	app.notice = ""
	return app.updateView(message)
}

func (app App) handlePromptKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch message.Type {
	case tea.KeyEsc:
		app.prompting = false
		app.prompt.Blur()
		return app, nil
	case tea.KeyEnter:
		app.prompting = false
		app.prompt.Blur()
		path := strings.TrimSpace(app.prompt.Value())
		if path == "" {
			return app, nil
		}
		return app, app.goTo(path, "")
	}
	var cmd tea.Cmd
	app.prompt, cmd = app.prompt.Update(message)
	return app, cmd
}

// updateView forwards msg to the mounted view, then re-applies the guard in
// case the session changed underneath it.
func (app App) updateView(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := app.current.Update(msg)
	app.current = next
	cmd = app.scope(cmd)

	if redirect, moved := app.recheck(); moved {
		return app, redirect
	}
	return app, cmd
}

// recheck navigates away when the mounted route is no longer allowed,
// typically because a request found the session expired.
func (app *App) recheck() (tea.Cmd, bool) {
	if app.router.Decide(app.path).Outcome == nav.Render {
		app.signedIn = app.store.IsAuthenticated()
		return nil, false
	}
	notice := ""
	if app.signedIn && !app.store.IsAuthenticated() {
		notice = sdk.UserMessage(sdk.ErrSessionExpired)
	}
	return app.goTo(app.path, notice), true
}

// View implements tea.Model.
func (app App) View() string {
	theme := app.env.theme
	var b strings.Builder

	b.WriteString(app.navbar())
	b.WriteString("\n\n")
	if app.notice != "" {
		b.WriteString(theme.Notice.Render(app.notice))
		b.WriteString("\n\n")
	}
	b.WriteString(app.current.View())
	b.WriteString("\n")

	if app.prompting {
		b.WriteString("\n")
		b.WriteString(theme.Focused.UnsetWidth().Render("go to: "))
		b.WriteString(app.prompt.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(app.help.ShortHelpView(app.bindings()))
	return b.String()
}

func (app App) navbar() string {
	theme := app.env.theme
	items := []string{theme.Brand.Render("Resource Booking")}
	for i, link := range app.router.Links() {
		label := fmt.Sprintf("%d %s", i+1, link.Title)
		if link.Path == app.path {
			items = append(items, theme.NavActive.Render(label))
		} else {
			items = append(items, theme.NavItem.Render(label))
		}
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, items...)

	who := theme.Faint.Render("signed out")
	if session := app.store.Current(); session != nil {
		who = theme.Faint.Render(fmt.Sprintf("%s (%s)", session.Identity.Name, session.Identity.Role))
	}
	gap := app.width - lipgloss.Width(bar) - lipgloss.Width(who)
	if gap < 2 {
		gap = 2
	}
	return bar + strings.Repeat(" ", gap) + who
}

func (app App) bindings() []key.Binding {
	keys := app.env.keys
	bindings := app.current.Help()
	if app.current.Capturing() {
		return append(bindings, keys.ForceQuit)
	}
	bindings = append(bindings, keys.Jump, keys.GoTo)
	if app.store.IsAuthenticated() {
		bindings = append(bindings, keys.Logout)
	}
	return append(bindings, keys.Quit)
}
