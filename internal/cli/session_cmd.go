package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/taebin/travelsay/internal/api"
	"github.com/taebin/travelsay/internal/cli/formatter"
)

func newLoginCmd(app *App) *cobra.Command {
	var loginID, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and remember the access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			loginID = strings.TrimSpace(loginID)
			if loginID == "" || password == "" {
				if !app.interactive() {
					return fmt.Errorf("--id and --password are required: %w", errNotInteractive)
				}
				if err := loginForm(&loginID, &password).Run(); err != nil {
					return err
				}
			}

			cred, err := app.Session.Login(cmd.Context(), loginID, password)
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Signed in as %s\n", formatter.Bold(cred.LoginID))
			if cred.ExpiresAt != nil {
				fmt.Fprintln(out, formatter.Dim("Token valid until "+cred.ExpiresAt.Local().Format(time.DateTime)))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&loginID, "id", "", "Login id")
	cmd.Flags().StringVar(&password, "password", "", "Password (prompted when omitted)")

	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Session.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
			return nil
		},
	}
}

func newWhoamiCmd(app *App) *cobra.Command {
	var offline bool

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in member",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cred, err := app.Session.Current(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			name := cred.LoginID
			if !offline && app.Members != nil {
				me, err := app.Members.Me(ctx)
				if err != nil {
					return err
				}
				name = me.LoginID
				if me.Name != "" {
					name += " (" + me.Name + ")"
				}
			}
			fmt.Fprintf(out, "%s %s\n", formatter.Bold(name), formatter.Dim("@ "+cred.Server))
			if cred.ExpiresAt != nil {
				fmt.Fprintln(out, formatter.Dim("Token valid until "+cred.ExpiresAt.Local().Format(time.DateTime)))
			}

			planID, err := app.Session.ActivePlan(ctx)
			if err == nil {
				fmt.Fprintf(out, "Active plan: %s\n", formatter.StyleGreen.Render(fmt.Sprintf("#%d", planID)))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&offline, "offline", false, "Only read the stored credential")

	return cmd
}

func newUseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "use <plan-id>",
		Short: "Select the plan that day and item commands act on",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			planID, err := parseID("plan", args[0])
			if err != nil {
				return err
			}

			plan, err := app.Backend.GetPlan(ctx, planID)
			if err != nil {
				var apiErr *api.Error
				if errors.As(err, &apiErr) && !errors.Is(err, api.ErrUnauthorized) {
					return fmt.Errorf("plan %d is not available: %w", planID, err)
				}
				return err
			}
			if err := app.Session.UseActivePlan(ctx, plan.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Now using plan %s %s\n",
				formatter.StyleGreen.Render(fmt.Sprintf("#%d", plan.ID)), formatter.Bold(plan.Title))
			return nil
		},
	}
}
