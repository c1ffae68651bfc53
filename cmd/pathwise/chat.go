package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/pathwise-dev/pathwise/internal/llm/provider"
	"github.com/pathwise-dev/pathwise/internal/nlp"
	"github.com/pathwise-dev/pathwise/internal/planner"
	"github.com/pathwise-dev/pathwise/internal/ratelimit"
	"github.com/pathwise-dev/pathwise/pkg/conversation"
	"github.com/pathwise-dev/pathwise/pkg/observability"
)

func newChatCmd() *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive guided-learning conversation",
		RunE: func(cmd *cobra.Command, _ []string) error {
			log := newLogger()

			cfg, router, err := buildRouter(log)
			if err != nil {
				return err
			}
			store, err := buildStore(cfg, log)
			if err != nil {
				return err
			}

			observability.InitMetrics()
			if cfg.Metrics.Enabled {
				srv := observability.NewServer(cfg.Metrics.Port)
				go func() {
					if err := srv.Start(); err != nil {
						log.Warn().Err(err).Msg("observability server stopped")
					}
				}()
				defer func() {
					ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					_ = srv.Shutdown(ctx)
				}()

				monitor := provider.NewMonitor(router, cfg.MonitorSchedule,
					observability.SetProviderAvailable, log)
				if err := monitor.Start(); err != nil {
					return err
				}
				defer monitor.Stop()
			}

			engineCfg := conversation.EngineConfig{
				Store:      store,
				Router:     router,
				Intents:    nlp.New(),
				Entities:   nlp.New(),
				Goals:      nlp.New(),
				Levels:     nlp.New(),
				Paths:      planner.New(),
				IdleWindow: cfg.Session.IdleWindow(),
				SessionTTL: cfg.Session.TTL(),
				Logger:     log,
			}
			if cfg.RateLimit.Enabled {
				engineCfg.Limiter = ratelimit.NewLimiter(
					cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
			}
			engine := conversation.NewEngine(engineCfg)

			return runREPL(cmd.Context(), engine, userID)
		},
	}

	cmd.Flags().StringVar(&userID, "user", "local", "User id for the conversation")
	return cmd
}

func runREPL(ctx context.Context, engine *conversation.Engine, userID string) error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	fmt.Println("pathwise chat — type your message, or /quit to exit")

	sessionID := ""
	for {
		input, err := line.Prompt("you> ")
		if err != nil {
			if err == liner.ErrPromptAborted || err == io.EOF {
				return nil
			}
			return err
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if input == "/quit" || input == "/exit" {
			return nil
		}
		line.AppendHistory(input)

		resp := engine.ProcessTurn(ctx, conversation.Request{
			UserID:    userID,
			Message:   input,
			SessionID: sessionID,
		})
		sessionID = resp.SessionID

		fmt.Printf("pathwise> %s\n", resp.Message)
		for _, action := range resp.SuggestedActions {
			fmt.Printf("  [%s] %s\n", action.Action, action.Label)
		}
	}
}
