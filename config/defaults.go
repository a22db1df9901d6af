package config

import (
	"github.com/spf13/viper"

	"github.com/yaklabco/prepush/internal/hooks"
)

// Default configuration values.
const (
	// DefaultExecutor detects the build tool from the repository contents.
	DefaultExecutor = string(hooks.KindAuto)

	// DefaultDebug is the default debug setting.
	DefaultDebug = false

	// DefaultVerbose is the default verbose setting.
	DefaultVerbose = false
)

// setDefaults configures default values in the viper instance.
func setDefaults(viperInstance *viper.Viper) {
	viperInstance.SetDefault("executor", DefaultExecutor)
	viperInstance.SetDefault("command", "")
	viperInstance.SetDefault("check_command", "")
	viperInstance.SetDefault("apply_command", "")
	viperInstance.SetDefault("debug", DefaultDebug)
	viperInstance.SetDefault("verbose", DefaultVerbose)
}
