package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	cfgpkg "github.com/KaramelBytes/bikeshare-cli/internal/config"
	"github.com/KaramelBytes/bikeshare-cli/internal/logging"
	"github.com/KaramelBytes/bikeshare-cli/internal/tripdata"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	cfgFile     string
	debug       bool
	flagDataDir string

	// Loaded configuration
	cfg *cfgpkg.Global
	log = zap.NewNop().Sugar()
)

var rootCmd = &cobra.Command{
	Use:   "bikeshare",
	Short: "Explore US bike-share trip logs from the terminal",
	Long: `bikeshare loads a city's bike-share trip log, narrows it to a month and
weekday, and prints the most common travel times, stations and trips, trip
durations, and a breakdown of riders by type, gender and decade of birth.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		log = logging.Must(debug)
		return loadConfig(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = log.Sync()
	},
}

// Execute is the entry point called by main.main()
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.bikeshare/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging on stderr")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "directory holding the city trip logs (overrides config)")
}

func loadConfig(cmd *cobra.Command) error {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cmd.Flags().Changed("data-dir") && flagDataDir != "" {
		c.DataDir = flagDataDir
	}
	cfg = c
	log.Debugw("config loaded", "data_dir", cfg.DataDir, "database", cfg.Database, "cities", len(cfg.Cities))
	return nil
}

func newSource() *tripdata.Source {
	return &tripdata.Source{Cities: cfg.Cities, DataDir: cfg.DataDir, Log: log}
}
