package cli

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/taebin/travelsay/internal/cli/formatter"
)

var errNotInteractive = errors.New("no terminal attached; pass the value as a flag")

func travelsayHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func notBlank(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(field + " is required")
		}
		return nil
	}
}

// loginForm asks for whichever of login id and password is still empty.
func loginForm(loginID, password *string) *huh.Form {
	var fields []huh.Field
	if *loginID == "" {
		fields = append(fields, huh.NewInput().
			Title("Login ID").
			Value(loginID).
			Validate(notBlank("login id")))
	}
	fields = append(fields, huh.NewInput().
		Title("Password").
		EchoMode(huh.EchoModePassword).
		Value(password).
		Validate(notBlank("password")))

	return huh.NewForm(huh.NewGroup(fields...)).
		WithTheme(travelsayHuhTheme()).
		WithShowHelp(false)
}

// confirmForm is a yes/no question defaulting to no.
func confirmForm(title, description string, ok *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Delete").
				Negative("Keep").
				Value(ok),
		),
	).WithTheme(travelsayHuhTheme()).WithShowHelp(false)
}

// confirmDelete returns true when yes is set, or after an interactive
// confirmation. Without a terminal the caller must pass --yes.
func confirmDelete(app *App, yes bool, title, description string) (bool, error) {
	if yes {
		return true, nil
	}
	if !app.interactive() {
		return false, errors.New("refusing to delete without confirmation; pass --yes")
	}
	var ok bool
	if err := confirmForm(title, description, &ok).Run(); err != nil {
		return false, err
	}
	return ok, nil
}
