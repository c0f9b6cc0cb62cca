package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/learnloop/internal/store"
)

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "List completed quizzes",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		topic, _ := cmd.Flags().GetString("topic")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		results, err := st.EventRepo().QueryQuizResults(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query results: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(results) == 0 {
			fmt.Fprintln(out, "No quiz results found.")
			return nil
		}

		fmt.Fprintf(out, "%-5s  %-19s  %-24s  %-7s  %-5s  %s\n",
			"ID", "Timestamp", "Topic", "Score", "Pct", "Mastery")
		fmt.Fprintln(out, strings.Repeat("─", 80))

		for _, r := range results {
			if topic != "" && !strings.EqualFold(r.Topic, topic) {
				continue
			}
			name := r.Topic
			if len(name) > 24 {
				name = name[:24]
			}
			pct := 0
			if r.Total > 0 {
				pct = r.Score * 100 / r.Total
			}
			fmt.Fprintf(out, "%-5d  %-19s  %-24s  %-7s  %-5s  %s\n",
				r.ID,
				r.Timestamp.Local().Format("2006-01-02 15:04:05"),
				name,
				fmt.Sprintf("%d/%d", r.Score, r.Total),
				fmt.Sprintf("%d%%", pct),
				r.MasteryLevel,
			)
		}
		return nil
	},
}

func init() {
	resultsCmd.Flags().Int("limit", 20, "Maximum number of results to show")
	resultsCmd.Flags().String("topic", "", "Only show results for this topic")
}
