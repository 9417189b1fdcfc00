package output

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pterm/pterm"
	"golang.org/x/term"
)

// ErrNonInteractive is returned when a prompt would be needed but prompts
// are disabled or stdin is not a terminal.
var ErrNonInteractive = errors.New("input required but prompts are disabled")

// Prompter asks for missing command input on the terminal.
type Prompter struct {
	NonInteractive bool
}

func (p Prompter) check(what string) error {
	if p.NonInteractive || !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("%w: pass %s as a flag", ErrNonInteractive, what)
	}
	return nil
}

// Text returns value when set, otherwise prompts for it.
func (p Prompter) Text(value, label, flag string) (string, error) {
	if strings.TrimSpace(value) != "" {
		return value, nil
	}
	if err := p.check("--" + flag); err != nil {
		return "", err
	}
	answer, err := pterm.DefaultInteractiveTextInput.Show(label)
	if err != nil {
		return "", fmt.Errorf("failed to show interactive prompt: %w", err)
	}
	return strings.TrimSpace(answer), nil
}

// Password returns value when set, otherwise reads it without echo.
func (p Prompter) Password(value, label, flag string) (string, error) {
	if value != "" {
		return value, nil
	}
	if err := p.check("--" + flag); err != nil {
		return "", err
	}
	fmt.Fprintf(os.Stderr, "%s: ", label)
	secret, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(secret), nil
}

// Select returns value when set, otherwise lets the user pick an option.
func (p Prompter) Select(value, label, flag string, options []string) (string, error) {
	if value != "" {
		return value, nil
	}
	if err := p.check("--" + flag); err != nil {
		return "", err
	}
	choice, err := pterm.DefaultInteractiveSelect.WithOptions(options).Show(label)
	if err != nil {
		return "", fmt.Errorf("failed to show interactive prompt: %w", err)
	}
	return choice, nil
}

// Confirm asks a yes/no question. assumeYes skips the prompt; in
// non-interactive mode a confirmation is required up front.
func (p Prompter) Confirm(question string, assumeYes bool) (bool, error) {
	if assumeYes {
		return true, nil
	}
	if err := p.check("--yes"); err != nil {
		return false, err
	}
	ok, err := pterm.DefaultInteractiveConfirm.Show(question)
	if err != nil {
		return false, fmt.Errorf("failed to show interactive prompt: %w", err)
	}
	return ok, nil
}
