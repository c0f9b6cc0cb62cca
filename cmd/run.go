package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/abhisek/learnloop/internal/agent"
	"github.com/abhisek/learnloop/internal/app"
	"github.com/abhisek/learnloop/internal/config"
	"github.com/abhisek/learnloop/internal/llm"
	"github.com/abhisek/learnloop/internal/session"
	"github.com/abhisek/learnloop/internal/store"
	"github.com/abhisek/learnloop/internal/tutor"
)

// runApp opens the store, builds the agent client, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	level, err := config.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	logFile, err := config.OpenLogFile(cfg.Log.File)
	if err != nil {
		return err
	}
	defer logFile.Close()
	logger := config.NewLogger(logFile, level, false)

	st, err := store.OpenFile(cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	caller, err := newCaller(ctx, cfg, st.EventRepo(), logger)
	if err != nil {
		return err
	}
	client := agent.NewClient(agent.WithLogging(caller, st.EventRepo(), logger), cfg.Agent.ID)

	ctrl := session.NewController(ctx, session.Options{
		Agent:   client,
		Store:   st.KV(),
		Results: st.EventRepo(),
		Logger:  logger,
	})
	logger.Info("starting", "agent", agentTarget(cfg), "db", cfg.Store.Path)

	return app.Run(ctx, ctrl, logger)
}

// newCaller returns an HTTP caller when an agent URL is configured, and
// the in-process tutor otherwise.
func newCaller(ctx context.Context, cfg config.Config, repo store.EventRepo, logger *slog.Logger) (agent.Caller, error) {
	if cfg.Agent.URL != "" {
		return agent.NewHTTPCaller(cfg.Agent.URL, agent.WithTimeout(cfg.Agent.Timeout)), nil
	}
	svc, err := newTutorService(ctx, cfg, repo, logger)
	if err != nil {
		return nil, fmt.Errorf("%w (or set LEARNLOOP_AGENT_URL to use a remote agent)", err)
	}
	return tutor.NewLocalCaller(svc, cfg.Agent.Timeout), nil
}

func newTutorService(ctx context.Context, cfg config.Config, repo store.EventRepo, logger *slog.Logger) (*tutor.Service, error) {
	llmCfg, err := cfg.ResolveLLM()
	if err != nil {
		return nil, err
	}
	provider, err := llm.NewProvider(ctx, llmCfg, repo, logger)
	if err != nil {
		return nil, fmt.Errorf("create LLM provider: %w", err)
	}
	return tutor.NewService(provider, tutor.DefaultConfig()), nil
}

func agentTarget(cfg config.Config) string {
	if cfg.Agent.URL != "" {
		return cfg.Agent.URL
	}
	return "local"
}
