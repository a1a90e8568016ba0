package cmd

import (
	"fmt"
	"strconv"
	"strings"

	cfgpkg "github.com/KaramelBytes/bikeshare-cli/internal/config"
	"github.com/KaramelBytes/bikeshare-cli/internal/utils"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set bikeshare configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if cfg == nil {
			fmt.Fprintln(out, "No config loaded")
			return nil
		}
		fmt.Fprintf(out, "data_dir: %s\n", cfg.DataDir)
		fmt.Fprintf(out, "database: %s\n", cfg.Database)
		fmt.Fprintf(out, "page_size: %d\n", cfg.PageSize)
		fmt.Fprintf(out, "strict_upper_bound: %t\n", cfg.StrictUpperBound)
		fmt.Fprintf(out, "pause: %t\n", cfg.Pause)
		fmt.Fprintln(out, "cities:")
		for _, name := range newSource().Names() {
			fmt.Fprintf(out, "  %s: %s\n", name, cfg.Cities[name])
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Long: `Set a config value and save to disk.

Keys: data_dir, database, page_size, strict_upper_bound, pause, and
city.<name> to point a city at a trip log (an empty value removes it).`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := applySetting(cfg, args[0], args[1]); err != nil {
			return err
		}
		if err := saveConfig(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "✓ Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

func applySetting(c *cfgpkg.Global, key, val string) error {
	if city, ok := strings.CutPrefix(key, "city."); ok {
		if strings.TrimSpace(city) == "" {
			return fmt.Errorf("city name missing in key %q", key)
		}
		c.SetCity(city, val)
		return nil
	}
	switch key {
	case "data_dir":
		c.DataDir = val
	case "database":
		c.Database = val
	case "page_size":
		i, err := strconv.Atoi(val)
		if err != nil || i <= 0 {
			return fmt.Errorf("invalid positive int for page_size: %v", val)
		}
		c.PageSize = i
	case "strict_upper_bound", "pause":
		b, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("invalid bool for %s: %w", key, err)
		}
		if key == "pause" {
			c.Pause = b
		} else {
			c.StrictUpperBound = b
		}
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	return nil
}

func saveConfig() error {
	path, err := utils.ExpandHome(cfgFile)
	if err != nil {
		return err
	}
	return cfgpkg.Save(cfg, path)
}
