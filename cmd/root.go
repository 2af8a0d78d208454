package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/emisense/ldarsim/app"
	"github.com/emisense/ldarsim/config"
	"github.com/emisense/ldarsim/infra/logger"
)

var (
	cfgPath string
	seed    uint64
	days    int
)

var rootCmd = &cobra.Command{
	Use:   "ldarsim",
	Short: "Leak detection and repair program simulator",
	Long: "ldarsim runs a deterministic LDAR program simulation: survey crews " +
		"pick sites by neglect, attempt stochastic leak detections and tag " +
		"what they find.",
	RunE: run,
}

func init() {
	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "config.yaml", "configuration file")
	rootCmd.Flags().Uint64Var(&seed, "seed", 0, "override the configured random seed")
	rootCmd.Flags().IntVar(&days, "days", 0, "override the configured run length in days")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

func run(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cmd.Flags().Changed("seed") {
		cfg.Simulation.Seed = seed
	}
	if days > 0 {
		cfg.Simulation.Days = days
	}

	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("main").Errorf("service close: %v", err)
		}
	}()
	return svc.Run(ctx)
}
