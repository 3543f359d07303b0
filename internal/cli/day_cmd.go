package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taebin/travelsay/internal/cli/formatter"
)

func newDayCmd(app *App) *cobra.Command {
	var planFlag int64

	cmd := &cobra.Command{
		Use:   "day",
		Short: "Manage the days of a plan",
	}
	cmd.PersistentFlags().Int64Var(&planFlag, "plan", 0, "Plan id (defaults to the active plan)")

	cmd.AddCommand(
		newDayListCmd(app, &planFlag),
		newDayAddCmd(app, &planFlag),
		newDayRemoveCmd(app, &planFlag),
	)

	return cmd
}

func newDayListCmd(app *App, planFlag *int64) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the days of a plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			planID, err := resolvePlanID(ctx, app, *planFlag)
			if err != nil {
				return err
			}
			ctl, err := openPlan(ctx, app, planID, 0)
			if err != nil {
				return err
			}
			snap := ctl.Snapshot()
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n\n%s", formatter.Bold(snap.Plan.Title),
				formatter.StagePill(snap.Stage), formatter.FormatDayList(snap.Days, 0))
			return nil
		},
	}
}

func newDayAddCmd(app *App, planFlag *int64) *cobra.Command {
	return &cobra.Command{
		Use:   "add <YYYY-MM-DD>",
		Short: "Add a day to a plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			planID, err := resolvePlanID(ctx, app, *planFlag)
			if err != nil {
				return err
			}
			ctl, err := openPlan(ctx, app, planID, 0)
			if err != nil {
				return err
			}
			if err := ctl.AddDay(ctx, args[0]); err != nil {
				return err
			}
			snap := ctl.Snapshot()
			day, _ := snap.CurrentDay()
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (id %s)\n\n%s", formatter.Bold(day.Label()),
				formatter.StyleGreen.Render(fmt.Sprint(day.ID)), formatter.FormatDayList(snap.Days, day.ID))
			return nil
		},
	}
}

func newDayRemoveCmd(app *App, planFlag *int64) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove <day-id>",
		Short: "Remove a day and all of its items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			dayID, err := parseID("day", args[0])
			if err != nil {
				return err
			}
			planID, err := resolvePlanID(ctx, app, *planFlag)
			if err != nil {
				return err
			}
			ctl, err := openPlan(ctx, app, planID, 0)
			if err != nil {
				return err
			}

			ok, err := confirmDelete(app, yes, fmt.Sprintf("Remove day %d?", dayID), "Its items are deleted too.")
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Kept.")
				return nil
			}

			if err := ctl.RemoveDay(ctx, dayID); err != nil {
				return err
			}
			snap := ctl.Snapshot()
			fmt.Fprintf(cmd.OutOrStdout(), "Removed day %d\n\n%s", dayID, formatter.FormatDayList(snap.Days, 0))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}
