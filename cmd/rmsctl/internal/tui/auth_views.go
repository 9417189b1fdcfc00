package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Syam115/Resource-Management-System/pkg/nav"
	"github.com/Syam115/Resource-Management-System/pkg/sdk"
)

type landingView struct {
	env *env
}

func newLandingView(e *env) *landingView {
	return &landingView{env: e}
}

func (v *landingView) Init() tea.Cmd { return nil }
func (v *landingView) Update(tea.Msg) (view, tea.Cmd) { return v, nil }
func (v *landingView) Capturing() bool { return false }
func (v *landingView) Help() []key.Binding { return nil }

func (v *landingView) View() string {
	theme := v.env.theme
	var b strings.Builder
	b.WriteString(theme.Title.Render("Book rooms, equipment and more"))
	b.WriteString("\n\n")
	b.WriteString("Users browse the catalogue and request time slots.\n")
	b.WriteString("Servicers publish resources and approve or reject requests.\n\n")
	b.WriteString(theme.Faint.Render("Press 1 to log in or 2 to create an account."))
	return b.String()
}

// authView is the login or registration form. Authentication runs as a
// command; the resulting session is only established if the view is still
// mounted when the result arrives.
type authView struct {
	env      *env
	form     form
	register bool
}

const (
	fieldName = iota
	fieldEmail
	fieldPassword
	fieldRole
)

func newLoginView(e *env) *authView {
	return &authView{
		env: e,
		form: newForm("Log in",
			textField("Email", "you@example.com", ""),
			passwordField("Password"),
		),
	}
}

func newRegisterView(e *env) *authView {
	roles := make([]string, 0, len(sdk.Roles))
	for _, role := range sdk.Roles {
		roles = append(roles, role.String())
	}
	return &authView{
		env:      e,
		register: true,
		form: newForm("Create an account",
			textField("Name", "Full name", ""),
			textField("Email", "you@example.com", ""),
			passwordField("Password"),
			choiceField("Account type", roles, 0),
		),
	}
}

func (v *authView) Init() tea.Cmd { return nil }
func (v *authView) Capturing() bool { return v.form.active }

func (v *authView) Help() []key.Binding {
	keys := v.env.keys
	if !v.form.active {
		return []key.Binding{keys.Interact}
	}
	help := []key.Binding{keys.NextField, keys.Submit, keys.Back}
	if v.register {
		help = append(help, keys.Right)
	}
	return help
}

func (v *authView) Update(msg tea.Msg) (view, tea.Cmd) {
	keys := v.env.keys
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !v.form.active {
			if key.Matches(msg, keys.Interact, keys.Select) {
				v.form.setFocus(v.form.focus)
			}
			return v, nil
		}
		if key.Matches(msg, keys.Back) {
			v.form.blur()
			return v, nil
		}
		submitted, cmd := v.form.Update(msg, keys)
		if submitted {
			return v, v.submit()
		}
		return v, cmd

	case resultMsg[*sdk.Session]:
		return v, v.establish(msg)
	}
	return v, nil
}

func (v *authView) credentials() sdk.Credentials {
	if !v.register {
		return sdk.Credentials{Email: v.form.Value(0), Password: v.form.Value(1)}
	}
	return sdk.Credentials{
		Name:     v.form.Value(fieldName),
		Email:    v.form.Value(fieldEmail),
		Password: v.form.Value(fieldPassword),
		Role:     sdk.Role(v.form.Value(fieldRole)),
	}
}

func (v *authView) submit() tea.Cmd {
	creds := v.credentials()
	if err := creds.Validate(v.register); err != nil {
		v.form.err = sdk.UserMessage(err)
		return nil
	}
	v.form.submitting = true
	v.form.err = ""

	gateway, ctx, register := v.env.gateway, v.env.ctx, v.register
	return func() tea.Msg {
		session, err := gateway.Authenticate(ctx, creds, register)
		return resultMsg[*sdk.Session]{value: session, err: err}
	}
}

func (v *authView) establish(result resultMsg[*sdk.Session]) tea.Cmd {
	v.form.submitting = false
	if result.err != nil {
		v.form.err = sdk.UserMessage(result.err)
		return nil
	}
	if err := v.env.gateway.Establish(result.value); err != nil {
		v.form.err = sdk.UserMessage(err)
		return nil
	}
	return navigate(nav.HomeFor(result.value.Identity.Role), "")
}

func (v *authView) View() string {
	body := v.form.View(v.env.theme)
	if !v.form.active {
		body += "\n" + v.env.theme.Faint.Render("Press i to edit the form.")
	}
	return body
}
