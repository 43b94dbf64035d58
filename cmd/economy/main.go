// Command economy runs the discrete-time commodity economy simulation.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ISibboI/economy-sim/internal/config"
	"github.com/ISibboI/economy-sim/internal/engine"
	"github.com/ISibboI/economy-sim/internal/entropy"
	"github.com/ISibboI/economy-sim/internal/statistics"
)

var (
	configFile string
	seed       int64
	hours      uint64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "economy",
		Short: "Discrete-time commodity economy simulator",
		Long: `Simulates an economy of production factories trading through a shared
order-matching market, with price-elastic consumers extracting goods.
Runs are deterministic for a fixed seed.`,
		RunE:          run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.Flags().StringVarP(&configFile, "config", "c", "", "Path to scenario file (built-in demo scenario if omitted)")
	rootCmd.Flags().Int64Var(&seed, "seed", 0, "Shuffle seed (0 = random)")
	rootCmd.Flags().Uint64Var(&hours, "hours", 0, "Hours to simulate (overrides scenario)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	cfg := config.Default()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("hours") {
		cfg.Hours = hours
	}

	setupLogging(cfg.Logging.Level)

	factories, err := cfg.BuildFactories()
	if err != nil {
		return err
	}
	consumers, err := cfg.BuildConsumers()
	if err != nil {
		return err
	}

	rng, usedSeed := entropy.NewSource(cfg.Seed)
	runID := uuid.NewString()

	var observers []engine.Observer
	var store *statistics.Store
	if cfg.Statistics.DBPath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Statistics.DBPath), 0o755); err != nil {
			return fmt.Errorf("create statistics dir: %w", err)
		}
		store, err = statistics.OpenStore(cfg.Statistics.DBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.RecordRun(runID, usedSeed, cfg.Hours); err != nil {
			return fmt.Errorf("record run: %w", err)
		}
		observers = append(observers,
			statistics.NewFactoryMoneyStatistics(store, runID),
			statistics.NewMarketPriceStatistics(store, runID),
		)
	}
	if cfg.Statistics.Console {
		observers = append(observers, statistics.NewConsoleSummary())
	}

	slog.Info("creating world",
		"factories", len(factories),
		"consumers", len(consumers),
		"hours", cfg.Hours,
		"seed", usedSeed,
		"run", runID,
	)
	world := engine.NewWorld(factories, consumers, observers)

	slog.Info("advancing time")
	world.AdvanceTime(cfg.Hours, rng)

	slog.Info("finalising statistics")
	if err := world.FinaliseStatistics(); err != nil {
		return fmt.Errorf("finalise statistics: %w", err)
	}
	return nil
}

func setupLogging(level string) {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)
}
