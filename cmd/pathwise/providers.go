package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newProvidersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "providers",
		Short: "Inspect and manage LLM providers",
	}
	cmd.AddCommand(newProvidersListCmd())
	cmd.AddCommand(newProvidersStatusCmd())
	cmd.AddCommand(newProvidersSwitchCmd())
	cmd.AddCommand(newProvidersTestCmd())
	return cmd
}

func newProvidersListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List currently available providers",
		RunE: func(_ *cobra.Command, _ []string) error {
			_, router, err := buildRouter(newLogger())
			if err != nil {
				return err
			}
			current := router.Current()
			for _, code := range router.ListAvailable() {
				marker := " "
				if code == current {
					marker = "*"
				}
				fmt.Printf("%s %s\n", marker, code)
			}
			return nil
		},
	}
}

func newProvidersStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <code>",
		Short: "Show the merged static and live status of a provider",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			_, router, err := buildRouter(newLogger())
			if err != nil {
				return err
			}
			st, ok := router.Status(args[0])
			if !ok {
				return fmt.Errorf("unknown provider: %s", args[0])
			}
			fmt.Printf("%s (%s)\n", st.DisplayName, st.Code)
			fmt.Printf("  %s\n", st.Description)
			fmt.Printf("  model:       %s\n", st.Model)
			fmt.Printf("  temperature: %.2f\n", st.Temperature)
			fmt.Printf("  max tokens:  %d\n", st.MaxTokens)
			fmt.Printf("  api key:     %v\n", st.HasAPIKey)
			fmt.Printf("  enabled:     %v\n", st.Enabled)
			fmt.Printf("  available:   %v\n", st.Available)
			fmt.Printf("  current:     %v\n", st.Current)
			return nil
		},
	}
}

func newProvidersSwitchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "switch <code>",
		Short: "Switch the active provider",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			_, router, err := buildRouter(newLogger())
			if err != nil {
				return err
			}
			if err := router.SwitchTo(args[0]); err != nil {
				return err
			}
			fmt.Printf("current provider: %s\n", router.Current())
			return nil
		},
	}
}

func newProvidersTestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "test <code>",
		Short: "Probe a provider with a trivial message",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			_, router, err := buildRouter(newLogger())
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if router.Probe(ctx, args[0]) {
				fmt.Printf("%s: ok\n", args[0])
			} else {
				fmt.Printf("%s: unreachable\n", args[0])
			}
			return nil
		},
	}
}
