// Package config resolves the jobsec configuration from defaults, config
// files and command line overrides.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tailscale/hujson"
)

// Error variables for configuration loading.
var (
	ErrConfigFileNotFound = errors.New("config file not found")
	ErrConfigFileRead     = errors.New("cannot read config file")
	ErrConfigInvalid      = errors.New("invalid config file")
	ErrStringsPathEmpty   = errors.New("strings path cannot be empty")
	ErrLabelsPathEmpty    = errors.New("labels path cannot be empty")
)

// Default values.
const (
	DefaultStrings = "strings.txt"
	DefaultLabels  = "labels.txt"
	DefaultSeed    = 42
)

// FileName is the project config file name.
const FileName = ".jobsec.json"

// Config holds all configuration options.
type Config struct {
	// From config files (serialized)
	Strings string `json:"strings"`
	Labels  string `json:"labels"`
	Seed    uint32 `json:"seed"`

	// Resolved paths (computed, not serialized)
	EffectiveCwd string `json:"-"` // Absolute working directory (from -C flag or os.Getwd)
	StringsAbs   string `json:"-"` // Absolute path to the decoy string file
	LabelsAbs    string `json:"-"` // Absolute path to the label file

	// Sources tracks which config files were loaded (for diagnostics)
	Sources Sources `json:"-"`
}

// Sources tracks which config files were loaded.
type Sources struct {
	Global  string // Path to global config if loaded, empty otherwise
	Project string // Path to project config if loaded, empty otherwise
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Strings: DefaultStrings,
		Labels:  DefaultLabels,
		Seed:    DefaultSeed,
	}
}

// Overrides are command line values. Nil fields are not overridden, so an
// explicit seed of 0 can be told apart from no seed.
type Overrides struct {
	Strings *string
	Labels  *string
	Seed    *uint32
}

// LoadInput holds the inputs for Load.
type LoadInput struct {
	WorkDirOverride string            // -C/--cwd flag value; if empty, os.Getwd() is used
	ConfigPath      string            // -c/--config flag value
	Overrides       Overrides         // --strings/--labels/--seed flag values
	Env             map[string]string // environment variables
}

// Load loads configuration with the following precedence (highest wins):
// 1. Defaults
// 2. Global user config (~/.config/jobsec/config.json or $XDG_CONFIG_HOME/jobsec/config.json)
// 3. Project config file at default location (.jobsec.json, if exists)
// 4. Explicit config file via ConfigPath (if non-empty)
// 5. CLI overrides.
//
// Resource paths in the returned Config are resolved to absolute paths
// against the working directory.
func Load(input LoadInput) (Config, error) {
	workDir := input.WorkDirOverride
	if workDir == "" {
		var err error

		workDir, err = os.Getwd()
		if err != nil {
			return Config{}, fmt.Errorf("cannot get working directory: %w", err)
		}
	}

	if !filepath.IsAbs(workDir) {
		abs, err := filepath.Abs(workDir)
		if err != nil {
			return Config{}, fmt.Errorf("cannot resolve working directory: %w", err)
		}

		workDir = abs
	}

	cfg := Default()

	globalPath := globalConfigPath(input.Env)
	if globalPath != "" {
		fileCfg, loaded, err := loadFile(globalPath, false)
		if err != nil {
			return Config{}, err
		}

		if loaded {
			cfg.Sources.Global = globalPath
			cfg = merge(cfg, fileCfg)
		}
	}

	projectPath, mustExist := FileName, false
	if input.ConfigPath != "" {
		projectPath, mustExist = input.ConfigPath, true
	}

	if !filepath.IsAbs(projectPath) {
		projectPath = filepath.Join(workDir, projectPath)
	}

	fileCfg, loaded, err := loadFile(projectPath, mustExist)
	if err != nil {
		return Config{}, err
	}

	if loaded {
		cfg.Sources.Project = projectPath
		cfg = merge(cfg, fileCfg)
	}

	if input.Overrides.Strings != nil {
		cfg.Strings = *input.Overrides.Strings
	}

	if input.Overrides.Labels != nil {
		cfg.Labels = *input.Overrides.Labels
	}

	if input.Overrides.Seed != nil {
		cfg.Seed = *input.Overrides.Seed
	}

	if err := validate(cfg); err != nil {
		return Config{}, err
	}

	cfg.EffectiveCwd = workDir
	cfg.StringsAbs = resolve(workDir, cfg.Strings)
	cfg.LabelsAbs = resolve(workDir, cfg.Labels)

	return cfg, nil
}

// globalConfigPath returns the path to the global config file.
// Uses $XDG_CONFIG_HOME/jobsec/config.json if set, otherwise ~/.config/jobsec/config.json.
// Returns empty string if home directory cannot be determined.
func globalConfigPath(env map[string]string) string {
	if xdgConfig := env["XDG_CONFIG_HOME"]; xdgConfig != "" {
		return filepath.Join(xdgConfig, "jobsec", "config.json")
	}

	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".config", "jobsec", "config.json")
	}

	return ""
}

// fileConfig is a parsed config file. Nil fields were absent from the file.
type fileConfig struct {
	Strings *string `json:"strings"`
	Labels  *string `json:"labels"`
	Seed    *uint32 `json:"seed"`
}

// loadFile loads a config file. If mustExist is false, a missing file
// returns loaded=false and no error.
func loadFile(path string, mustExist bool) (fileConfig, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if mustExist {
				return fileConfig{}, false, fmt.Errorf("%w: %s", ErrConfigFileNotFound, path)
			}

			return fileConfig{}, false, nil
		}

		return fileConfig{}, false, fmt.Errorf("%w: %s: %w", ErrConfigFileRead, path, err)
	}

	cfg, err := parse(data)
	if err != nil {
		return fileConfig{}, false, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, err)
	}

	return cfg, true, nil
}

func parse(data []byte) (fileConfig, error) {
	// Standardize JSONC to JSON
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return fileConfig{}, fmt.Errorf("invalid JSONC: %w", err)
	}

	var cfg fileConfig

	if err := json.Unmarshal(standardized, &cfg); err != nil {
		return fileConfig{}, fmt.Errorf("invalid JSON: %w", err)
	}

	if cfg.Strings != nil && *cfg.Strings == "" {
		return fileConfig{}, ErrStringsPathEmpty
	}

	if cfg.Labels != nil && *cfg.Labels == "" {
		return fileConfig{}, ErrLabelsPathEmpty
	}

	return cfg, nil
}

func merge(base Config, overlay fileConfig) Config {
	if overlay.Strings != nil {
		base.Strings = *overlay.Strings
	}

	if overlay.Labels != nil {
		base.Labels = *overlay.Labels
	}

	if overlay.Seed != nil {
		base.Seed = *overlay.Seed
	}

	return base
}

func validate(cfg Config) error {
	if cfg.Strings == "" {
		return ErrStringsPathEmpty
	}

	if cfg.Labels == "" {
		return ErrLabelsPathEmpty
	}

	return nil
}

func resolve(workDir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(workDir, path)
}
