package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/taebin/travelsay/internal/cli/formatter"
	"github.com/taebin/travelsay/internal/domain"
	"github.com/taebin/travelsay/internal/editor"
)

// itemScope is the --plan/--day pair shared by every item subcommand.
type itemScope struct {
	plan int64
	day  int64
}

func (s *itemScope) open(ctx context.Context, app *App) (*editor.Controller, error) {
	planID, err := resolvePlanID(ctx, app, s.plan)
	if err != nil {
		return nil, err
	}
	ctl, err := openPlan(ctx, app, planID, s.day)
	if err != nil {
		return nil, err
	}
	if _, ok := ctl.Snapshot().CurrentDay(); !ok {
		return nil, fmt.Errorf("plan %d has no days yet: %w", planID, editor.ErrNoCurrentDay)
	}
	return ctl, nil
}

func (s *itemScope) openFor(ctx context.Context, app *App, itemID int64) (*editor.Controller, error) {
	planID, err := resolvePlanID(ctx, app, s.plan)
	if err != nil {
		return nil, err
	}
	return openForItem(ctx, app, planID, s.day, itemID)
}

func printDay(w io.Writer, snap editor.Snapshot) {
	day, _ := snap.CurrentDay()
	fmt.Fprintf(w, "%s  %s\n\n%s", formatter.Bold(day.Label()),
		formatter.Dim(fmt.Sprintf("day %d, %d items", day.ID, len(snap.Items))),
		formatter.FormatItemTable(snap.Items))
}

func newItemCmd(app *App) *cobra.Command {
	scope := &itemScope{}

	cmd := &cobra.Command{
		Use:   "item",
		Short: "Manage the schedule items of a day",
	}
	cmd.PersistentFlags().Int64Var(&scope.plan, "plan", 0, "Plan id (defaults to the active plan)")
	cmd.PersistentFlags().Int64Var(&scope.day, "day", 0, "Day id (defaults to the first day)")

	cmd.AddCommand(
		newItemListCmd(app, scope),
		newItemAddCmd(app, scope),
		newItemUpdateCmd(app, scope),
		newItemMoveCmd(app, scope),
		newItemRelocateCmd(app, scope),
		newItemRemoveCmd(app, scope),
		newItemShiftCmd(app, scope),
	)

	return cmd
}

func newItemListCmd(app *App, scope *itemScope) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List a day's items in order",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctl, err := scope.open(cmd.Context(), app)
			if err != nil {
				return err
			}
			printDay(cmd.OutOrStdout(), ctl.Snapshot())
			return nil
		},
	}
}

func newItemAddCmd(app *App, scope *itemScope) *cobra.Command {
	var flags itemFlags
	var at positionFlag

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an item, appended unless --at is given",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctl, err := scope.open(ctx, app)
			if err != nil {
				return err
			}
			if err := ctl.AddItem(ctx, flags.fields(), at.value); err != nil {
				return err
			}
			printDay(cmd.OutOrStdout(), ctl.Snapshot())
			return nil
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().Var(&at, "at", "Insert at this 1-based position")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newItemUpdateCmd(app *App, scope *itemScope) *cobra.Command {
	var flags itemFlags

	cmd := &cobra.Command{
		Use:   "update <item-id>",
		Short: "Change some fields of an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			itemID, err := parseID("item", args[0])
			if err != nil {
				return err
			}
			patch := flags.patch(cmd.Flags())
			if patch.Empty() {
				return errors.New("nothing to update: pass at least one of --title, --start, --amount, --merchant, --memo")
			}
			ctl, err := scope.openFor(ctx, app, itemID)
			if err != nil {
				return err
			}
			if err := ctl.UpdateItem(ctx, itemID, patch); err != nil {
				return err
			}
			for _, it := range ctl.Snapshot().Items {
				if it.ID == itemID {
					fmt.Fprint(cmd.OutOrStdout(), formatter.FormatItem(it))
				}
			}
			return nil
		},
	}

	flags.register(cmd.Flags())

	return cmd
}

func newItemMoveCmd(app *App, scope *itemScope) *cobra.Command {
	return &cobra.Command{
		Use:   "move <item-id> <up|down>",
		Short: "Move an item one position up or down",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			itemID, err := parseID("item", args[0])
			if err != nil {
				return err
			}
			dir, err := domain.ParseDirection(args[1])
			if err != nil {
				return err
			}
			ctl, err := scope.openFor(ctx, app, itemID)
			if err != nil {
				return err
			}
			if err := ctl.MoveItem(ctx, itemID, dir); err != nil {
				return err
			}
			printDay(cmd.OutOrStdout(), ctl.Snapshot())
			return nil
		},
	}
}

func newItemRelocateCmd(app *App, scope *itemScope) *cobra.Command {
	var target int64
	var at positionFlag

	cmd := &cobra.Command{
		Use:   "relocate <item-id>",
		Short: "Move an item to another day of the same plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			itemID, err := parseID("item", args[0])
			if err != nil {
				return err
			}
			ctl, err := scope.openFor(ctx, app, itemID)
			if err != nil {
				return err
			}
			if err := ctl.RelocateItem(ctx, itemID, target, at.value); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved item %d to day %d\n\n", itemID, target)
			printDay(cmd.OutOrStdout(), ctl.Snapshot())
			return nil
		},
	}

	cmd.Flags().Int64Var(&target, "to", 0, "Target day id")
	cmd.Flags().Var(&at, "at", "Insert at this 1-based position of the target day")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func newItemRemoveCmd(app *App, scope *itemScope) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove <item-id>",
		Short: "Delete an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			itemID, err := parseID("item", args[0])
			if err != nil {
				return err
			}
			ctl, err := scope.openFor(ctx, app, itemID)
			if err != nil {
				return err
			}

			ok, err := confirmDelete(app, yes, fmt.Sprintf("Delete item %d?", itemID), "")
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Kept.")
				return nil
			}

			if err := ctl.DeleteItem(ctx, itemID); err != nil {
				return err
			}
			printDay(cmd.OutOrStdout(), ctl.Snapshot())
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func newItemShiftCmd(app *App, scope *itemScope) *cobra.Command {
	var offset string

	cmd := &cobra.Command{
		Use:   "shift",
		Short: "Shift every timed item of a day by an offset",
		Example: "  travelsay item shift --by 01:30\n" +
			"  travelsay item shift --by=-00:30 --day 12",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctl, err := scope.open(ctx, app)
			if err != nil {
				return err
			}
			if err := ctl.ShiftAll(ctx, offset); err != nil {
				return err
			}
			printDay(cmd.OutOrStdout(), ctl.Snapshot())
			return nil
		},
	}

	cmd.Flags().StringVar(&offset, "by", editor.DefaultShiftOffset, "Offset HH:MM, optionally signed")

	return cmd
}
