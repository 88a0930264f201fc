package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jamesstrohm55/ALFRED/internal/cli"
	"github.com/jamesstrohm55/ALFRED/internal/config"
	"github.com/jamesstrohm55/ALFRED/internal/logger"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "alfred",
		Short: "A.L.F.R.E.D - your personal AI butler",
		Long: `A.L.F.R.E.D (All Knowing Logical Facilitator for Reasoned Execution of Duties)
is a personal assistant that routes your commands to the right service.

It can:
  • Remember and recall facts you tell it
  • Check the weather and your location
  • Add events to your calendar from natural language
  • Find, open, and manage files
  • Report system statistics
  • Run OS commands from fuzzy-matched phrases
  • Answer anything else with a language model`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup()
			if err != nil {
				return err
			}
			return cli.Run(cfg)
		},
	}

	askCmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask a single question and exit",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup()
			if err != nil {
				return err
			}

			b, cleanup, err := cli.BuildBrain(cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			fmt.Println(b.Respond(context.Background(), strings.Join(args, " ")))
			return nil
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Show or manage configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			fmt.Println(cfg.String())

			path, _ := config.ConfigPath()
			fmt.Printf("\nConfig file path: %s\n", path)
			return nil
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("A.L.F.R.E.D v%s\n", cli.Version)
		},
	}

	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setup loads configuration and initializes the rotating file logger.
func setup() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(logger.Config{
		LogDir:  config.LogDir(),
		Level:   logger.INFO,
		MaxDays: 7,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	return cfg, nil
}
