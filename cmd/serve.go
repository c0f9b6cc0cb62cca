package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/learnloop/internal/config"
	"github.com/abhisek/learnloop/internal/server"
	"github.com/abhisek/learnloop/internal/store"
	"github.com/abhisek/learnloop/internal/tutor"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the tutoring agent as an HTTP service",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Server.Addr = addr
		}

		level, err := config.ParseLevel(cfg.Log.Level)
		if err != nil {
			return err
		}
		logger := config.NewLogger(os.Stdout, level, true)

		st, err := store.OpenFile(cfg.Store.Path)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		svc, err := newTutorService(ctx, cfg, st.EventRepo(), logger)
		if err != nil {
			return err
		}

		opts := server.Options{
			Responder:   svc,
			Classify:    tutor.Classify,
			AgentID:     cfg.Agent.ID,
			Timeout:     cfg.Agent.Timeout,
			CORSOrigins: cfg.Server.CORSOrigins,
			Logger:      logger,
		}
		if cfg.Server.CacheURL != "" {
			cache, err := server.NewRedisCache(ctx, cfg.Server.CacheURL, cfg.Server.CacheTTL)
			if err != nil {
				return err
			}
			defer cache.Close()
			opts.Cache = cache
			logger.Info("response cache enabled", "ttl", cfg.Server.CacheTTL)
		}

		logger.Info("tutor ready", "agent_id", cfg.Agent.ID, "model", svc.ModelID())
		return server.New(opts).Run(ctx, cfg.Server.Addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides server.addr)")
}
