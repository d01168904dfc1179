package cli

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/coachdesk/internal/models"
	"github.com/terraincognita07/coachdesk/internal/services"
	"github.com/terraincognita07/coachdesk/internal/session"
)

func newFlagsCommand(options *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flags",
		Short: "Inspect and toggle feature flags (admin)",
	}
	cmd.AddCommand(newFlagsListCommand(options), newFlagsToggleCommand(options))
	return cmd
}

func newFlagsListCommand(options *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List feature flags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withAuthenticatedEnv(cmd.Context(), options, cmd.ErrOrStderr(), func(ctx context.Context, env *commandEnv, current session.Session) error {
				flags, err := env.services.FeatureFlags.List(ctx, current.Token)
				if err != nil {
					return err
				}
				return renderFlags(cmd, options, flags)
			})
		},
	}
}

func newFlagsToggleCommand(options *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <key>",
		Short: "Flip a feature flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withAuthenticatedEnv(cmd.Context(), options, cmd.ErrOrStderr(), func(ctx context.Context, env *commandEnv, current session.Session) error {
				flags, err := env.services.FeatureFlags.List(ctx, current.Token)
				if err != nil {
					return err
				}
				enabled := true
				for _, flag := range flags {
					if flag.Key == args[0] {
						enabled = !flag.Enabled
					}
				}

				updated, err := env.services.FeatureFlags.Toggle(ctx, current.Token, flags, args[0], enabled)
				if errors.Is(err, services.ErrFeatureFlagNotFound) {
					return fmt.Errorf("unknown feature flag %q", args[0])
				}
				if renderErr := renderFlags(cmd, options, updated); renderErr != nil {
					return renderErr
				}
				if err != nil {
					return fmt.Errorf("toggle %s: %w", args[0], err)
				}
				return nil
			})
		},
	}
}

func renderFlags(cmd *cobra.Command, options *rootOptions, flags []models.FeatureFlag) error {
	services.SortFeatureFlags(flags)
	return render(cmd.OutOrStdout(), options.output, flags, func(w *tabwriter.Writer) {
		if len(flags) == 0 {
			fmt.Fprintln(w, "No feature flags defined.")
			return
		}
		fmt.Fprintln(w, "KEY\tTIER\tSTATE\tUPDATED")
		for _, flag := range flags {
			state := "off"
			if flag.Enabled {
				state = "on"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", flag.Key, flag.Tier, state, flag.UpdatedAt.Format("2006-01-02 15:04"))
		}
	})
}
