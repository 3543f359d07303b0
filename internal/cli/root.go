package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/taebin/travelsay/internal/contract"
	"github.com/taebin/travelsay/internal/editor"
	"github.com/taebin/travelsay/internal/service"
)

// MemberAPI is the profile lookup used by whoami.
type MemberAPI interface {
	Me(ctx context.Context) (*contract.MeResponse, error)
}

// App holds everything the commands need. Backend is the authenticated
// client; each command that edits builds its own editor.Controller over it.
type App struct {
	Server  string
	Session service.SessionService
	Plans   service.PlanService
	Backend editor.Backend
	Members MemberAPI

	// IsInteractive reports whether prompts and the TUI may run.
	IsInteractive func() bool
	// RunProgram runs a bubbletea model to completion. Tests replace it.
	RunProgram func(m tea.Model) error
	Now        func() time.Time
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// NewRootCmd creates the top-level "travelsay" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "travelsay",
		Short:         "Plan trips day by day from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newLoginCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
		newUseCmd(app),
		newPlanCmd(app),
		newDayCmd(app),
		newItemCmd(app),
		newEditCmd(app),
	)

	return root
}

// DescribeError turns a command failure into the line shown to the user.
func DescribeError(err error) string {
	var rejected *service.LoginRejectedError
	if errors.As(err, &rejected) {
		return fmt.Sprintf("%v\nCheck the login id and password, then try again.", rejected.Cause)
	}
	switch editor.Classify(err) {
	case editor.FailureAuth:
		return fmt.Sprintf("%v\nRun `travelsay login` to sign in again.", err)
	case editor.FailureConflict:
		var conflict *editor.ConflictError
		if errors.As(err, &conflict) {
			return conflict.Message
		}
		return "Rejected by server: " + err.Error()
	default:
		return err.Error()
	}
}
