package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/KaramelBytes/bikeshare-cli/internal/tripdata"
	"github.com/KaramelBytes/bikeshare-cli/internal/utils"
	"github.com/spf13/cobra"
)

var (
	importDB  string
	importUse bool
)

var importCmd = &cobra.Command{
	Use:   "import <city> <trip-log>",
	Short: "Copy a trip log into the SQLite trip store",
	Long: `Copy a trip log into the SQLite trip store so it can be analyzed without
re-reading the CSV. With --use the city is pointed at the store in the config.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		city, path := args[0], args[1]
		ctx := cmd.Context()
		set, err := tripdata.LoadFile(ctx, city, path)
		if err != nil {
			return err
		}
		store, dbPath, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer store.Close()
		id, err := store.Import(ctx, city, set)
		if err != nil {
			return err
		}
		log.Debugw("trip log imported", "city", city, "source", path, "trips", set.Len(), "import", id)
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "✓ Imported %d trips for %s (import %s)\n", set.Len(), utils.TitleCase(city), id)
		if !set.Schema.HasDemographics() {
			fmt.Fprintln(out, "⚠ Warning: trip log has no gender or birth year columns")
		}
		if importUse {
			cfg.SetCity(city, dbPath)
			if err := saveConfig(); err != nil {
				return err
			}
			fmt.Fprintf(out, "✓ %s now reads from %s\n", utils.TitleCase(city), dbPath)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().StringVar(&importDB, "db", "", "trip store path (default from config)")
	importCmd.Flags().BoolVar(&importUse, "use", false, "point the city at the trip store in the config")
}

// openStore opens the trip store named by --db or the config, creating its
// directory if needed.
func openStore(ctx context.Context) (*tripdata.Store, string, error) {
	path := cfg.Database
	if importDB != "" {
		path = importDB
	}
	path, err := utils.ExpandHome(path)
	if err != nil {
		return nil, "", err
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	if err := utils.EnsureDir(filepath.Dir(path)); err != nil {
		return nil, "", fmt.Errorf("create store dir: %w", err)
	}
	store, err := tripdata.OpenStore(ctx, path)
	if err != nil {
		return nil, "", err
	}
	return store, path, nil
}
