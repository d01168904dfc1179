package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/coachdesk/internal/services"
	"github.com/terraincognita07/coachdesk/internal/session"
)

type moodSummary struct {
	services.MoodTrends
	Streak int `json:"streak"`
}

func newMoodsCommand(options *rootOptions) *cobra.Command {
	var granularity string

	cmd := &cobra.Command{
		Use:   "moods",
		Short: "Summarize logged moods",
		Long: `Summarize the mood history: average score, most common mood, the current
streak and per-week or per-month buckets with the best and worst period.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withAuthenticatedEnv(cmd.Context(), options, cmd.ErrOrStderr(), func(ctx context.Context, env *commandEnv, current session.Session) error {
				records, err := env.services.Moods.History(ctx, current.Token)
				if err != nil {
					return err
				}
				summary := moodSummary{
					MoodTrends: services.BuildMoodTrends(records, services.ParseMoodGranularity(granularity)),
					Streak:     services.MoodStreak(records, env.now().In(env.cfg.Location)),
				}
				return render(cmd.OutOrStdout(), options.output, summary, func(w *tabwriter.Writer) {
					writeMoodSummary(w, summary)
				})
			})
		},
	}
	cmd.Flags().StringVarP(&granularity, "granularity", "g", string(services.GranularityWeek), "Bucket size: week or month")
	return cmd
}

func writeMoodSummary(w *tabwriter.Writer, summary moodSummary) {
	if !summary.HasData {
		fmt.Fprintln(w, "No moods logged yet.")
		return
	}
	fmt.Fprintf(w, "Average:\t%.2f\n", summary.Average)
	fmt.Fprintf(w, "Most common:\t%s (%d)\n", summary.MostCommonMood, summary.MostCommonCount)
	fmt.Fprintf(w, "Streak:\t%d days\n", summary.Streak)
	if summary.Best != nil {
		fmt.Fprintf(w, "Best %s:\t%s (%.2f)\n", summary.Granularity, summary.Best.Key, summary.Best.Average)
	}
	if summary.Worst != nil {
		fmt.Fprintf(w, "Worst %s:\t%s (%.2f)\n", summary.Granularity, summary.Worst.Key, summary.Worst.Average)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s\tENTRIES\tAVERAGE\n", bucketHeader(summary.Granularity))
	for _, bucket := range summary.Buckets {
		fmt.Fprintf(w, "%s\t%d\t%.2f\n", bucket.Key, len(bucket.Scores), bucket.Average)
	}
}

func bucketHeader(granularity services.MoodGranularity) string {
	if granularity == services.GranularityMonth {
		return "MONTH"
	}
	return "WEEK"
}
