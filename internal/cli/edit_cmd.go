package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/taebin/travelsay/internal/editor"
)

func runProgram(m tea.Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func newEditCmd(app *App) *cobra.Command {
	var planFlag int64

	cmd := &cobra.Command{
		Use:   "edit [plan-id]",
		Short: "Open the interactive schedule editor",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !app.interactive() {
				return fmt.Errorf("edit needs a terminal: %w", errNotInteractive)
			}
			planID, err := planIDArg(ctx, app, args, planFlag)
			if err != nil {
				return err
			}

			run := app.RunProgram
			if run == nil {
				run = runProgram
			}
			return run(newEditorView(ctx, editor.New(app.Backend), planID))
		},
	}

	cmd.Flags().Int64Var(&planFlag, "plan", 0, "Plan id (defaults to the active plan)")

	return cmd
}
