package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	ListenAddr   string `yaml:"listen_addr"`
	DatabasePath string `yaml:"database_path"`
	LogLevel     string `yaml:"log_level"`
}

// DefaultConfig returns the configuration used when no file is present
func DefaultConfig() *Config {
	cfg := &Config{
		ListenAddr: ":8080",
		LogLevel:   "info",
	}
	cfg.DatabasePath = defaultDatabasePath()
	return cfg
}

// Load loads config from the user's config directory.
// Returns default config if the file doesn't exist; environment variables
// override whatever was loaded.
func Load() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		// Return default config if we can't determine config path
		cfg := DefaultConfig()
		applyEnvOverrides(cfg)
		return cfg, nil
	}

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := DefaultConfig()
		applyEnvOverrides(cfg)
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// Fill in any missing values with defaults
	cfg.applyDefaults()
	applyEnvOverrides(&cfg)

	return &cfg, nil
}

// applyDefaults fills in zero-valued fields with defaults
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.ListenAddr == "" {
		c.ListenAddr = defaults.ListenAddr
	}
	if c.DatabasePath == "" {
		c.DatabasePath = defaults.DatabasePath
	}
	if c.LogLevel == "" {
		c.LogLevel = defaults.LogLevel
	}
}

// applyEnvOverrides lets the environment win over file values
func applyEnvOverrides(c *Config) {
	if addr := os.Getenv("CARRIL_LISTEN_ADDR"); addr != "" {
		c.ListenAddr = addr
	}
	if dbPath := os.Getenv("CARRIL_DB_PATH"); dbPath != "" {
		c.DatabasePath = dbPath
	}
	if level := os.Getenv("CARRIL_LOG_LEVEL"); level != "" {
		c.LogLevel = level
	}
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	// Try XDG_CONFIG_HOME first
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "carril", "config.yaml"), nil
	}

	// Fall back to ~/.config
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "carril", "config.yaml"), nil
}

// defaultDatabasePath places the client store under the user's home dir
func defaultDatabasePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "clients.db"
	}
	return filepath.Join(homeDir, ".carril", "clients.db")
}
