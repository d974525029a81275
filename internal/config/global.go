package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// GlobalConfig represents configuration stored in ~/.config/refdeck/config.yml.
// The summarizer key lives here, never in the repository config, so it
// stays out of version control.
type GlobalConfig struct {
	Mailto           string   `yaml:"mailto,omitempty"`
	SummarizerKey    string   `yaml:"summarizer_api_key,omitempty"`
	SummarizerModels []string `yaml:"summarizer_models,omitempty"`
}

const (
	// GlobalConfigDir is the directory name under XDG_CONFIG_HOME.
	GlobalConfigDir = "refdeck"
	// GlobalConfigFile is the config file name.
	GlobalConfigFile = "config.yml"
)

// globalConfigCache caches the loaded global config.
var globalConfigCache *GlobalConfig

// GlobalConfigPath returns the path to the global config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/refdeck/config.yml.
func GlobalConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, GlobalConfigDir, GlobalConfigFile)
}

// LoadGlobalConfig loads the global configuration file.
// Returns an empty config (not an error) if the file doesn't exist.
func LoadGlobalConfig() (*GlobalConfig, error) {
	if globalConfigCache != nil {
		return globalConfigCache, nil
	}

	path := GlobalConfigPath()
	if path == "" {
		return &GlobalConfig{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &GlobalConfig{}, nil
		}
		return nil, fmt.Errorf("reading global config: %w", err)
	}

	var cfg GlobalConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing global config: %w", err)
	}

	globalConfigCache = &cfg
	return &cfg, nil
}

// ResetGlobalConfigCache clears the cached global config.
// Useful for testing.
func ResetGlobalConfigCache() {
	globalConfigCache = nil
}

// GetSummarizerKey returns the summarizer API key, preferring the
// REFDECK_SUMMARIZER_KEY environment variable over the global config.
func GetSummarizerKey() string {
	if key := os.Getenv("REFDECK_SUMMARIZER_KEY"); key != "" {
		return key
	}
	cfg, _ := LoadGlobalConfig()
	return cfg.SummarizerKey
}

// GetMailto returns the polite-pool contact address: the repository config
// value when set, else the global config value.
func GetMailto(repoCfg *Config) string {
	if repoCfg != nil && repoCfg.Mailto != "" {
		return repoCfg.Mailto
	}
	cfg, _ := LoadGlobalConfig()
	return cfg.Mailto
}
