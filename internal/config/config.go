package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/dotcommander/compfinder/internal/project"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// ConfigFiles are looked up in the working directory, first match wins.
var ConfigFiles = []string{".compfinderrc.json", ".compfinderrc.yaml", ".compfinderrc.yml"}

// Formats lists the supported report formats.
var Formats = []string{"console", "json", "markdown", "xlsx"}

// Config represents the compfinder configuration
type Config struct {
	Data      string   `mapstructure:"data" json:"data" yaml:"data"`
	Root      string   `mapstructure:"root" json:"root,omitempty" yaml:"root,omitempty"`
	Format    string   `mapstructure:"format" json:"format" yaml:"format"`
	Output    string   `mapstructure:"output" json:"output,omitempty" yaml:"output,omitempty"`
	Quiet     bool     `mapstructure:"quiet" json:"quiet,omitempty" yaml:"quiet,omitempty"`
	Verbose   bool     `mapstructure:"verbose" json:"verbose,omitempty" yaml:"verbose,omitempty"`
	Level     string   `mapstructure:"level" json:"level,omitempty" yaml:"level,omitempty"`
	Sort      string   `mapstructure:"sort" json:"sort" yaml:"sort"`
	MinOwned  int      `mapstructure:"minOwned" json:"minOwned" yaml:"minOwned"`
	Owned     []string `mapstructure:"owned" json:"owned,omitempty" yaml:"owned,omitempty"`
	OwnedFile string   `mapstructure:"ownedFile" json:"ownedFile,omitempty" yaml:"ownedFile,omitempty"`
	Limit     int      `mapstructure:"limit" json:"limit" yaml:"limit"`
	Patterns  []string `mapstructure:"patterns" json:"patterns" yaml:"patterns"`
}

// ErrConfigExists is returned by SaveConfig when it would overwrite a file
var ErrConfigExists = errors.New("config file already exists")

// LoadConfig loads configuration from defaults, the first config file found,
// COMPFINDER_* environment variables and bound flags. Without an explicit
// rootPath the workspace root is detected from the working directory, and
// relative data and owned-file paths missing from the working directory are
// looked up under the root.
func LoadConfig(rootPath string) (*Config, error) {
	viper.SetDefault("data", "best_levels_2_5.json")
	viper.SetDefault("root", ".")
	viper.SetDefault("format", "console")
	viper.SetDefault("quiet", false)
	viper.SetDefault("verbose", false)
	viper.SetDefault("sort", "closest")
	viper.SetDefault("minOwned", 0)
	viper.SetDefault("limit", 0)
	viper.SetDefault("patterns", []string{"*.json", "data/**/*.json"})

	for _, path := range ConfigFiles {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
		break
	}

	viper.SetEnvPrefix("COMPFINDER")
	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if rootPath != "" {
		config.Root = rootPath
	} else if config.Root == "" || config.Root == "." {
		root, err := project.FindRoot(".")
		if err != nil {
			return nil, fmt.Errorf("error detecting workspace root: %w", err)
		}
		config.Root = root
	}
	config.Data = project.ResolvePath(config.Root, config.Data)

	if config.OwnedFile != "" {
		config.OwnedFile = project.ResolvePath(config.Root, config.OwnedFile)
		units, err := LoadOwnedFile(config.OwnedFile)
		if err != nil {
			return nil, err
		}
		config.Owned = append(config.Owned, units...)
	}
	config.Owned = splitUnits(config.Owned)

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// validateConfig validates the configuration
func validateConfig(config *Config) error {
	if !slices.Contains(Formats, config.Format) {
		return fmt.Errorf("invalid format: %s. Must be 'console', 'json', 'markdown', or 'xlsx'", config.Format)
	}

	if config.Format == "xlsx" && config.Output == "" {
		return fmt.Errorf("output file is required when format is 'xlsx'")
	}

	if config.Data == "" {
		return fmt.Errorf("data source must not be empty")
	}

	if config.Limit < 0 {
		return fmt.Errorf("limit must not be negative")
	}

	if len(config.Patterns) == 0 {
		return fmt.Errorf("at least one dataset pattern is required")
	}

	return nil
}

// SaveConfig saves the configuration to path, as YAML for .yaml/.yml names
// and JSON otherwise. An existing file is only replaced when force is set.
func SaveConfig(config *Config, path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrConfigExists, path)
		}
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	var data []byte
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(config)
	default:
		data, err = json.MarshalIndent(config, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}
