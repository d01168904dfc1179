package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/coachdesk/internal/services"
	"github.com/terraincognita07/coachdesk/internal/session"
)

type logFlags struct {
	actor     string
	eventType string
	from      string
	to        string
	sort      string
	page      int
}

type logListing struct {
	Kind  services.LogKind  `json:"kind"`
	Table services.LogTable `json:"table"`
}

func newLogsCommand(options *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Browse admin audit and agent orchestration logs",
		Long: `Browse admin logs. The most recent records are fetched once and filtered,
sorted and paginated locally.`,
	}
	cmd.AddCommand(
		newLogKindCommand(options, services.LogKindAudit, "audit", "Show the audit log"),
		newLogKindCommand(options, services.LogKindOrchestration, "orchestration", "Show the agent orchestration log"),
	)
	return cmd
}

func newLogKindCommand(options *rootOptions, kind services.LogKind, use string, short string) *cobra.Command {
	flags := &logFlags{}

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withAuthenticatedEnv(cmd.Context(), options, cmd.ErrOrStderr(), func(ctx context.Context, env *commandEnv, current session.Session) error {
				from, to, err := services.ParseLogWindow(flags.from, flags.to, env.cfg.Location)
				if err != nil {
					return fmt.Errorf("invalid date window: %w", err)
				}
				records, err := env.services.Logs.List(ctx, current.Token, kind, env.cfg.LogFetchCap)
				if err != nil {
					return err
				}

				filter := services.LogFilter{Actor: flags.actor, Type: flags.eventType, From: from, To: to}
				listing := logListing{
					Kind:  kind,
					Table: services.BuildLogTable(records, filter, services.ParseSortDirection(flags.sort), flags.page, env.cfg.PageSize),
				}
				return render(cmd.OutOrStdout(), options.output, listing, func(w *tabwriter.Writer) {
					writeLogTable(w, listing.Table)
				})
			})
		},
	}

	cmd.Flags().StringVar(&flags.actor, "actor", "", "Only records for this user id")
	cmd.Flags().StringVar(&flags.eventType, "type", "", "Only records of this event type")
	cmd.Flags().StringVar(&flags.from, "from", "", "Earliest day, YYYY-MM-DD")
	cmd.Flags().StringVar(&flags.to, "to", "", "Latest day, YYYY-MM-DD")
	cmd.Flags().StringVar(&flags.sort, "sort", string(services.SortDescending), "Timestamp order: asc or desc")
	cmd.Flags().IntVar(&flags.page, "page", 1, "Page number")
	return cmd
}

func writeLogTable(w *tabwriter.Writer, table services.LogTable) {
	page := table.Page
	if page.Total == 0 {
		fmt.Fprintln(w, "No log entries match.")
		return
	}
	fmt.Fprintln(w, "TIME\tUSER\tEVENT\tDETAILS")
	for _, record := range page.Items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			record.Timestamp.Format("2006-01-02 15:04:05"),
			record.UserID,
			record.EventType,
			services.ParseLogDetails(record.Details).Summary(),
		)
	}
	fmt.Fprintf(w, "\nPage %d of %d (%d entries, %s)\n", page.Page, page.TotalPages, page.Total, table.Direction)
}
