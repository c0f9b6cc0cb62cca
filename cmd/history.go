package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/learnloop/internal/session"
	"github.com/abhisek/learnloop/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently studied topics",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		recent, err := session.LoadRecent(cmd.Context(), st.KV())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(recent) == 0 {
			fmt.Fprintln(out, "No recent topics.")
			return nil
		}
		for i, t := range recent {
			fmt.Fprintf(out, "%d. %s\n", i+1, t)
		}
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget the recently studied topics",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.KV().Delete(cmd.Context(), session.RecentTopicsKey); err != nil {
			return fmt.Errorf("clear recent topics: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Recent topics cleared.")
		return nil
	},
}

func init() {
	historyCmd.AddCommand(historyClearCmd)
}

// openStore opens the database named by the config and flags.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	st, err := store.OpenFile(cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return st, nil
}
