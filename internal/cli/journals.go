package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/coachdesk/internal/logging"
	"github.com/terraincognita07/coachdesk/internal/services"
	"github.com/terraincognita07/coachdesk/internal/session"
	"go.uber.org/zap"
)

type journalOutput struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Markdown string `json:"markdown"`
}

func newJournalsCommand(options *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "journals",
		Short: "Print journal entries as markdown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withAuthenticatedEnv(cmd.Context(), options, cmd.ErrOrStderr(), func(ctx context.Context, env *commandEnv, current session.Session) error {
				entries, err := env.services.Journals.List(ctx, current.Token)
				if err != nil {
					return err
				}

				output := make([]journalOutput, 0, len(entries))
				for _, entry := range entries {
					markdown, err := services.JournalMarkdown(entry)
					if err != nil {
						logging.L().Warn("render journal markdown", zap.String("entry", entry.ID), zap.Error(err))
						markdown = entry.Body
					}
					output = append(output, journalOutput{ID: entry.ID, Title: entry.Title, Markdown: markdown})
				}

				return render(cmd.OutOrStdout(), options.output, output, func(w *tabwriter.Writer) {
					if len(output) == 0 {
						fmt.Fprintln(w, "No journal entries yet.")
						return
					}
					for index, entry := range output {
						if index > 0 {
							fmt.Fprintln(w, "\n---")
						}
						fmt.Fprintln(w, entry.Markdown)
					}
				})
			})
		},
	}
}
