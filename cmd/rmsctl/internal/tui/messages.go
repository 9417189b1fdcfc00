package tui

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Syam115/Resource-Management-System/cmd/rmsctl/internal/client"
	"github.com/Syam115/Resource-Management-System/pkg/sdk"
)

// scopedMsg carries the result of a command started by the view mounted at
// generation gen. Results from earlier generations are dropped.
type scopedMsg struct {
	gen int
	msg tea.Msg
}

// navigateMsg asks the App to move to path.
type navigateMsg struct {
	path   string
	notice string
}

func navigate(path, notice string) tea.Cmd {
	return func() tea.Msg {
		return navigateMsg{path: path, notice: notice}
	}
}

// resultMsg delivers the outcome of a backend call.
type resultMsg[T any] struct {
	value T
	err   error
}

// doneMsg reports a finished mutation; text is shown on success.
type doneMsg struct {
	text string
	err  error
}

// env is what views need from the App to talk to the backend.
type env struct {
	ctx     context.Context
	gateway *sdk.Gateway
	clients *client.Provider
	logger  *slog.Logger
	keys    KeyMap
	theme   Theme
}

// session returns the signed-in session, or nil.
func (e *env) session() *sdk.Session {
	return e.gateway.Store().Current()
}

// fetch runs fn with an authenticated client and wraps its result.
func fetch[T any](e *env, fn func(context.Context, *sdk.Client) (T, error)) tea.Cmd {
	return func() tea.Msg {
		c, err := e.clients.SDKClient()
		if err != nil {
			var zero T
			return resultMsg[T]{value: zero, err: err}
		}
		value, err := fn(e.ctx, c)
		return resultMsg[T]{value: value, err: err}
	}
}

// mutate runs fn with an authenticated client and reports text on success.
func mutate(e *env, text string, fn func(context.Context, *sdk.Client) error) tea.Cmd {
	return func() tea.Msg {
		c, err := e.clients.SDKClient()
		if err == nil {
			err = fn(e.ctx, c)
		}
		if err != nil {
			e.logger.Debug("mutation failed", "error", err)
		}
		return doneMsg{text: text, err: err}
	}
}
