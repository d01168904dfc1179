package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/coachdesk/internal/services"
	"github.com/terraincognita07/coachdesk/internal/session"
)

func newExportCommand(options *rootOptions) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:       "export json|pdf",
		Short:     "Download a data export",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{string(services.ExportJSON), string(services.ExportPDF)},
		RunE: func(cmd *cobra.Command, args []string) error {
			format := services.ExportFormat(strings.ToLower(args[0]))
			return withAuthenticatedEnv(cmd.Context(), options, cmd.ErrOrStderr(), func(ctx context.Context, env *commandEnv, current session.Session) error {
				download, err := env.services.Export.Fetch(ctx, current.Token, format)
				if err != nil {
					return err
				}

				target := outPath
				if target == "" {
					target = filepath.Base(download.Filename)
				}
				if err := os.WriteFile(target, download.Body, 0o600); err != nil {
					return fmt.Errorf("write export: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved %s (%d bytes)\n", target, len(download.Body))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&outPath, "out", "", "Destination file (defaults to the export's file name)")
	return cmd
}
