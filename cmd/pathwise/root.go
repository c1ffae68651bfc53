package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/pathwise-dev/pathwise/internal/llm/provider"
	"github.com/pathwise-dev/pathwise/pkg/config"
	"github.com/pathwise-dev/pathwise/pkg/conversation"
	"github.com/pathwise-dev/pathwise/pkg/session"
)

var configPath string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "pathwise",
		Short:         "Guided-learning conversation engine",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&configPath, "config",
		getEnv("PATHWISE_CONFIG", "config/pathwise.yaml"), "Configuration file")

	root.AddCommand(newChatCmd())
	root.AddCommand(newProvidersCmd())
	return root
}

func newLogger() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}

// buildRouter loads config and assembles the provider stack shared by
// every command.
func buildRouter(log zerolog.Logger) (*config.Config, *provider.Router, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	registry := provider.NewRegistry(cfg.Providers, cfg.DefaultProvider)
	router := provider.NewRouter(registry, provider.NewClient(), log)
	return cfg, router, nil
}

// buildStore selects the Redis store when an address is configured and
// the in-memory store otherwise.
func buildStore(cfg *config.Config, log zerolog.Logger) (conversation.SessionStore, error) {
	if cfg.Redis.Addr == "" {
		log.Info().Msg("no redis address configured, using in-memory session store")
		return session.NewMemoryStore(), nil
	}
	return session.NewRedisStore(cfg.Redis)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
