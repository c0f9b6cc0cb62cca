package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/abhisek/learnloop/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "learnloop",
	Short: "AI study companion for the terminal",
	Long: "learnloop explains a topic in simple language, quizzes you on it,\n" +
		"gives feedback on every answer, and grades your mastery.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// Execute runs the root command. ctx is cancelled on interrupt.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides LEARNLOOP_DB)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default $XDG_CONFIG_HOME/learnloop/config.toml)")
	rootCmd.PersistentFlags().String("agent-url", "", "Agent endpoint URL (overrides LEARNLOOP_AGENT_URL)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(callsCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the config file and environment, then applies the
// persistent flags, which take precedence over both.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.Store.Path = p
	}
	if u, _ := cmd.Flags().GetString("agent-url"); u != "" {
		cfg.Agent.URL = u
	}
	return cfg, nil
}
