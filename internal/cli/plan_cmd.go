package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taebin/travelsay/internal/cli/formatter"
	"github.com/taebin/travelsay/internal/domain"
	"github.com/taebin/travelsay/internal/editor"
)

func newPlanCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "List, show and manage trip plans",
	}

	cmd.AddCommand(
		newPlanListCmd(app),
		newPlanShowCmd(app),
		newPlanCreateCmd(app),
		newPlanUpdateCmd(app),
		newPlanDeleteCmd(app),
	)

	return cmd
}

func newPlanListCmd(app *App) *cobra.Command {
	var page int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your plans, newest trip first",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Plans.Page(cmd.Context(), page-1)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPlanPage(result, app.now()))
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number, starting at 1")

	return cmd
}

func newPlanShowCmd(app *App) *cobra.Command {
	var planFlag int64

	cmd := &cobra.Command{
		Use:   "show [plan-id]",
		Short: "Show a plan with every day and item",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			planID, err := planIDArg(ctx, app, args, planFlag)
			if err != nil {
				return err
			}
			detail, err := app.Plans.Detail(ctx, planID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPlanDetail(detail))
			return nil
		},
	}

	cmd.Flags().Int64Var(&planFlag, "plan", 0, "Plan id (defaults to the active plan)")

	return cmd
}

func newPlanCreateCmd(app *App) *cobra.Command {
	var title, firstDate string
	var public, noUse bool

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a plan together with its first day",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctl := editor.New(app.Backend)
			if err := ctl.SavePlan(ctx, domain.Plan{Title: title, IsPublic: public}, firstDate); err != nil {
				// A plan saved before the first day failed still exists.
				if snap := ctl.Snapshot(); snap.Plan.Saved() {
					return fmt.Errorf("plan #%d created but its first day was not: %w", snap.Plan.ID, err)
				}
				return err
			}

			snap := ctl.Snapshot()
			if !noUse {
				if err := app.Session.UseActivePlan(ctx, snap.Plan.ID); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Created plan %s %s\n",
				formatter.StyleGreen.Render(fmt.Sprintf("#%d", snap.Plan.ID)), formatter.Bold(snap.Plan.Title))
			if day, ok := snap.CurrentDay(); ok {
				fmt.Fprintf(out, "First day %s (id %d)\n", day.Label(), day.ID)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Plan title")
	cmd.Flags().StringVar(&firstDate, "date", "", "First day YYYY-MM-DD (defaults to today)")
	cmd.Flags().BoolVar(&public, "public", false, "Make the plan public")
	cmd.Flags().BoolVar(&noUse, "no-use", false, "Do not make the new plan active")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newPlanUpdateCmd(app *App) *cobra.Command {
	var planFlag int64
	var title string
	var public, completed bool

	cmd := &cobra.Command{
		Use:   "update [plan-id]",
		Short: "Change a plan's title, visibility or completion",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			flags := cmd.Flags()
			if !flags.Changed("title") && !flags.Changed("public") && !flags.Changed("completed") {
				return errors.New("nothing to update: pass --title, --public or --completed")
			}
			planID, err := planIDArg(ctx, app, args, planFlag)
			if err != nil {
				return err
			}
			ctl, err := openPlan(ctx, app, planID, 0)
			if err != nil {
				return err
			}

			draft := ctl.Snapshot().Plan
			if flags.Changed("title") {
				draft.Title = strings.TrimSpace(title)
			}
			if flags.Changed("public") {
				draft.IsPublic = public
			}
			if flags.Changed("completed") {
				draft.IsCompleted = completed
			}
			if err := ctl.SavePlan(ctx, draft, ""); err != nil {
				return err
			}

			saved := ctl.Snapshot().Plan
			fmt.Fprintf(cmd.OutOrStdout(), "Updated plan %s %s %s",
				formatter.StyleGreen.Render(fmt.Sprintf("#%d", saved.ID)),
				formatter.Bold(saved.Title), formatter.VisibilityBadge(saved.IsPublic))
			if saved.IsCompleted {
				fmt.Fprintf(cmd.OutOrStdout(), " %s", formatter.StatusPill(domain.PlanCompleted))
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}

	cmd.Flags().Int64Var(&planFlag, "plan", 0, "Plan id (defaults to the active plan)")
	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().BoolVar(&public, "public", false, "Public visibility (--public=false to hide)")
	cmd.Flags().BoolVar(&completed, "completed", false, "Mark the trip completed (--completed=false to reopen)")

	return cmd
}

func newPlanDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <plan-id>",
		Short: "Delete a plan with all its days and items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			planID, err := parseID("plan", args[0])
			if err != nil {
				return err
			}

			ok, err := confirmDelete(app, yes, fmt.Sprintf("Delete plan #%d?", planID), "Every day and item goes with it.")
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Kept.")
				return nil
			}

			if err := app.Plans.Delete(ctx, planID); err != nil {
				return err
			}
			if active, err := app.Session.ActivePlan(ctx); err == nil && active == planID {
				_ = app.Session.UseActivePlan(ctx, 0)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted plan #%d\n", planID)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}
