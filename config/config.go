package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/viper"

	"github.com/yaklabco/prepush/internal/env"
	"github.com/yaklabco/prepush/internal/hooks"
)

// Environment variables overriding configuration file values.
const (
	EnvExecutor     = "PREPUSH_EXECUTOR"
	EnvCommand      = "PREPUSH_COMMAND"
	EnvCheckCommand = "PREPUSH_CHECK_COMMAND"
	EnvApplyCommand = "PREPUSH_APPLY_COMMAND"
	EnvDebug        = "PREPUSH_DEBUG"
	EnvVerbose      = "PREPUSH_VERBOSE"
)

// Config holds all prepush configuration values.
type Config struct {
	// Executor selects the build tool: auto, gradle, maven or custom.
	Executor string `mapstructure:"executor"`

	// Command is the executable used by the custom executor.
	Command string `mapstructure:"command"`

	// CheckCommand overrides the executor's check command.
	CheckCommand string `mapstructure:"check_command"`

	// ApplyCommand overrides the executor's apply command.
	ApplyCommand string `mapstructure:"apply_command"`

	// Debug enables debug messages.
	Debug bool `mapstructure:"debug"`

	// Verbose adds timestamps and caller locations to log output.
	Verbose bool `mapstructure:"verbose"`

	// configFile is the path to the config file that was loaded (if any).
	configFile string
}

// ConfigFile returns the path to the configuration file that was loaded,
// or an empty string if no file was loaded.
func (c *Config) ConfigFile() string {
	return c.configFile
}

// ExecutorKind returns the configured executor kind.
func (c *Config) ExecutorKind() (hooks.Kind, error) {
	return hooks.ParseKind(c.Executor)
}

// ExecutorParams returns the parameters for building this configuration's
// executor in root. Logger, Fs and LookPath are left for the caller.
func (c *Config) ExecutorParams(root string) (hooks.ExecutorParams, error) {
	kind, err := c.ExecutorKind()
	if err != nil {
		return hooks.ExecutorParams{}, err
	}
	return hooks.ExecutorParams{
		Kind:         kind,
		Root:         root,
		Command:      c.Command,
		CheckCommand: c.CheckCommand,
		ApplyCommand: c.ApplyCommand,
	}, nil
}

// LoadOptions configures how configuration is loaded.
type LoadOptions struct {
	// ProjectDir is the directory to search for project-level config.
	// If empty, the current working directory is used.
	ProjectDir string

	// Stderr is where warnings are written.
	// If nil, os.Stderr is used.
	Stderr io.Writer

	// SkipProjectConfig skips loading project-level configuration.
	SkipProjectConfig bool

	// SkipUserConfig skips loading user-level configuration.
	SkipUserConfig bool

	// SkipEnv skips reading environment variables.
	SkipEnv bool
}

// Load reads configuration from all sources and returns a Config struct.
// Configuration is loaded in the following order (later sources override earlier):
//  1. Defaults
//  2. User config file (~/.config/prepush/config.yaml)
//  3. Project config file (<project>/prepush.yaml)
//  4. Environment variables (PREPUSH_*)
//
// If opts is nil, default options are used.
func Load(opts *LoadOptions) (*Config, error) {
	if opts == nil {
		opts = &LoadOptions{}
	}

	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	viperInstance := viper.New()

	setDefaults(viperInstance)
	viperInstance.SetConfigType("yaml")

	var configFileUsed string

	if !opts.SkipUserConfig {
		paths := ResolveXDGPaths()
		viperInstance.SetConfigName(ConfigFileName)
		viperInstance.AddConfigPath(paths.ConfigDir())

		if err := viperInstance.ReadInConfig(); err != nil {
			var configFileNotFoundError viper.ConfigFileNotFoundError
			if !errors.As(err, &configFileNotFoundError) {
				return nil, fmt.Errorf("failed to read user config file: %w", err)
			}
		} else {
			configFileUsed = viperInstance.ConfigFileUsed()
		}
	}

	if !opts.SkipProjectConfig {
		projectDir := opts.ProjectDir
		if projectDir == "" {
			var err error
			projectDir, err = os.Getwd()
			if err != nil {
				return nil, fmt.Errorf("failed to get working directory: %w", err)
			}
		}

		projectConfigPath := ProjectConfigPath(projectDir)
		if _, err := os.Stat(projectConfigPath); err == nil {
			viperInstance.SetConfigFile(projectConfigPath)
			if err := viperInstance.MergeInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read project config file: %w", err)
			}
			configFileUsed = projectConfigPath
		}
	}

	var cfg Config
	if err := viperInstance.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if !opts.SkipEnv {
		applyEnvironmentOverrides(&cfg)
	}

	cfg.configFile = configFileUsed

	result := cfg.Validate()
	if result.HasWarnings() {
		result.WriteWarnings(opts.Stderr)
	}
	if result.HasErrors() {
		return nil, errors.New(result.ErrorMessage())
	}

	return &cfg, nil
}

// applyEnvironmentOverrides applies environment variable overrides to the config.
// Environment variables take precedence over config file values. Unrecognised
// boolean values are ignored.
func applyEnvironmentOverrides(cfg *Config) {
	if v, ok := env.LookupString(EnvExecutor); ok {
		cfg.Executor = v
	}
	if v, ok := env.LookupString(EnvCommand); ok {
		cfg.Command = v
	}
	if v, ok := env.LookupString(EnvCheckCommand); ok {
		cfg.CheckCommand = v
	}
	if v, ok := env.LookupString(EnvApplyCommand); ok {
		cfg.ApplyCommand = v
	}
	if v, ok := env.LookupBool(EnvDebug); ok {
		cfg.Debug = v
	}
	if v, ok := env.LookupBool(EnvVerbose); ok {
		cfg.Verbose = v
	}
}

// DefaultConfig returns a Config with all default values.
func DefaultConfig() *Config {
	return &Config{
		Executor: DefaultExecutor,
		Debug:    DefaultDebug,
		Verbose:  DefaultVerbose,
	}
}

// WriteDefaultConfig writes a default configuration file to the user's config directory.
func WriteDefaultConfig() (string, error) {
	paths := ResolveXDGPaths()

	if err := os.MkdirAll(paths.ConfigDir(), 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := paths.ConfigFilePath()

	if _, err := os.Stat(configPath); err == nil {
		return "", fmt.Errorf("config file already exists: %s", configPath)
	}

	if err := os.WriteFile(configPath, []byte(defaultConfigYAML()), 0o600); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return configPath, nil
}

// defaultConfigYAML returns the default configuration as YAML.
func defaultConfigYAML() string {
	return `# prepush configuration
# Project settings can also live in prepush.yaml at the repository root.

# Build tool that runs Spotless from the pre-push hook.
# Options: auto, gradle, maven, custom
executor: auto

# Executable for the custom executor, e.g. ./tools/fmt.sh
# command: ""

# Override the check and apply commands.
# Gradle defaults: spotlessCheck / spotlessApply
# Maven defaults:  spotless:check / spotless:apply
# check_command: ""
# apply_command: ""

# Enable debug messages.
debug: false

# Add timestamps and caller locations to log output.
verbose: false
`
}
