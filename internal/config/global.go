// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"sync"
)

var (
	// configDirOverride allows tests to override the config directory.
	// This is necessary because os.UserHomeDir() doesn't reliably respect
	// the HOME environment variable on all platforms (e.g., macOS in CI).
	configDirOverride string

	// configFilePathOverride forces loading from a specific file,
	// set from the --config flag.
	configFilePathOverride string

	cacheMu      sync.Mutex
	cachedConfig *Config
)

// Reset clears test overrides and the cached config. Call from test
// cleanup to restore defaults.
func Reset() {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	configDirOverride = ""
	configFilePathOverride = ""
	cachedConfig = nil
}

// SetConfigDirOverride sets a custom config directory path.
// This is primarily intended for testing to bypass os.UserHomeDir() which
// doesn't reliably respect the HOME env var on all platforms (e.g., macOS in CI).
func SetConfigDirOverride(dir string) {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	configDirOverride = dir
	cachedConfig = nil
}

// SetConfigFilePathOverride forces loading from a specific config file.
func SetConfigFilePathOverride(path string) {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	configFilePathOverride = path
	cachedConfig = nil
}

// Load reads the configuration, caching the result for subsequent Get
// calls. On load failure the defaults are cached so callers always get
// a usable config alongside the error.
func Load() (*Config, error) {
	cacheMu.Lock()
	defer cacheMu.Unlock()

	cfg, _, err := loadWithOptions(context.Background(), LoadOptions{
		ConfigFilePath: configFilePathOverride,
		ConfigDirPath:  configDirOverride,
	})
	if err != nil {
		cfg = DefaultConfig()
	}
	cachedConfig = cfg
	return cfg, err
}

// Get returns the cached configuration, loading it on first use.
// Load errors are swallowed here; callers that need them use Load.
func Get() *Config {
	cacheMu.Lock()
	cached := cachedConfig
	cacheMu.Unlock()
	if cached != nil {
		return cached
	}

	cfg, _ := Load()
	return cfg
}
