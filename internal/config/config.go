package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/bikeshare-cli/internal/utils"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DirName is the per-user configuration directory under $HOME.
const DirName = ".bikeshare"

// Global configuration structure.
type Global struct {
	// Cities maps a lower-case city name to its trip log. Relative paths are
	// resolved against DataDir.
	Cities   map[string]string `mapstructure:"cities" yaml:"cities"`
	DataDir  string            `mapstructure:"data_dir" yaml:"data_dir"`
	Database string            `mapstructure:"database" yaml:"database"`

	PageSize         int  `mapstructure:"page_size" yaml:"page_size"`
	StrictUpperBound bool `mapstructure:"strict_upper_bound" yaml:"strict_upper_bound"`
	Pause            bool `mapstructure:"pause" yaml:"pause"`
}

// DefaultCities is the stock city to trip log mapping.
func DefaultCities() map[string]string {
	return map[string]string{
		"chicago":       "chicago.csv",
		"new york city": "new_york_city.csv",
		"washington":    "washington.csv",
	}
}

// Dir returns ~/.bikeshare.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, DirName), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.bikeshare/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := Dir()
		if err != nil {
			return err
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := utils.SafeWriteFile(path, b); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	// City names may contain dots ("st. louis"), so keys are not split on ".".
	v := viper.NewWithOptions(viper.KeyDelimiter("::"))
	v.SetEnvPrefix("BIKESHARE")
	v.AutomaticEnv()

	v.SetDefault("cities", DefaultCities())
	v.SetDefault("data_dir", "")
	v.SetDefault("database", "")
	v.SetDefault("page_size", 5)
	v.SetDefault("strict_upper_bound", false)
	v.SetDefault("pause", true)

	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// An explicit --config must exist; the default location is optional.
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	c.Cities = normalizeCities(c.Cities)
	if c.DataDir == "" {
		c.DataDir = "."
	}
	if c.DataDir, err = utils.ExpandHome(c.DataDir); err != nil {
		return nil, err
	}
	if c.Database == "" {
		c.Database = filepath.Join(dir, "trips.db")
	}
	if c.Database, err = utils.ExpandHome(c.Database); err != nil {
		return nil, err
	}
	if c.PageSize <= 0 {
		c.PageSize = 5
	}
	return &c, nil
}

// SetCity points city at a trip log, or removes it when path is empty.
func (c *Global) SetCity(city, path string) {
	if c.Cities == nil {
		c.Cities = map[string]string{}
	}
	key := strings.ToLower(strings.TrimSpace(city))
	if path == "" {
		delete(c.Cities, key)
		return
	}
	c.Cities[key] = path
}

// viper lowercases keys but YAML files written by hand may not be.
func normalizeCities(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return out
}

