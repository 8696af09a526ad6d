package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/tailscale/hujson"
)

const (
	configDirName      = ".add-skills"
	configFileName     = "config.json"
	configTOMLFileName = "config.toml"

	// HomeEnvVar overrides the configuration directory.
	HomeEnvVar = "ADD_SKILLS_HOME"
)

// Config holds user preferences. Empty fields take their defaults on Load.
type Config struct {
	RegistryURL       string            `json:"registryURL,omitempty" toml:"registryURL,omitempty"`
	DefaultAgent      string            `json:"defaultAgent,omitempty" toml:"defaultAgent,omitempty"`
	CloneTimeout      string            `json:"cloneTimeout,omitempty" toml:"cloneTimeout,omitempty"`
	LogLevel          string            `json:"logLevel,omitempty" toml:"logLevel,omitempty"`
	StoreDir          string            `json:"storeDir,omitempty" toml:"storeDir,omitempty"`
	CloneURLOverrides map[string]string `json:"cloneURLOverrides,omitempty" toml:"cloneURLOverrides,omitempty"`
}

// CloneTimeoutDuration parses CloneTimeout, falling back to DefaultCloneTimeout.
func (c *Config) CloneTimeoutDuration() (time.Duration, error) {
	if strings.TrimSpace(c.CloneTimeout) == "" {
		return DefaultCloneTimeout, nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(c.CloneTimeout))
	if err != nil {
		return 0, fmt.Errorf("invalid cloneTimeout %q: %w", c.CloneTimeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid cloneTimeout %q: must be positive", c.CloneTimeout)
	}
	return d, nil
}

// ConfigManager handles reading and writing the add-skills configuration.
type ConfigManager struct {
	configDir string
	mu        sync.RWMutex
}

// NewConfigManager creates a ConfigManager rooted at $ADD_SKILLS_HOME, or
// ~/.add-skills when the variable is unset.
func NewConfigManager() (*ConfigManager, error) {
	if dir := os.Getenv(HomeEnvVar); dir != "" {
		return &ConfigManager{configDir: expandPath(dir)}, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("getting home directory: %w", err)
	}
	return &ConfigManager{
		configDir: filepath.Join(home, configDirName),
	}, nil
}

// NewConfigManagerWithDir creates a ConfigManager using a custom config directory.
// Useful for testing.
func NewConfigManagerWithDir(dir string) *ConfigManager {
	return &ConfigManager{configDir: dir}
}

// ConfigDir returns the configuration directory path.
func (cm *ConfigManager) ConfigDir() string {
	return cm.configDir
}

// ConfigPath returns the full path to the JSON config file.
func (cm *ConfigManager) ConfigPath() string {
	return filepath.Join(cm.configDir, configFileName)
}

// TOMLConfigPath returns the full path to the TOML config file, which is
// read only when the JSON file is absent.
func (cm *ConfigManager) TOMLConfigPath() string {
	return filepath.Join(cm.configDir, configTOMLFileName)
}

// DefaultStoreDir returns where remote skills are kept unless storeDir is set.
func (cm *ConfigManager) DefaultStoreDir() string {
	return filepath.Join(cm.configDir, "store")
}

// Load reads the config from disk. config.json may contain comments and
// trailing commas. Returns the default config if no file exists.
func (cm *ConfigManager) Load() (*Config, error) {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	var cfg Config
	data, err := os.ReadFile(cm.ConfigPath())
	switch {
	case err == nil:
		std, err := hujson.Standardize(data)
		if err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", cm.ConfigPath(), err)
		}
		if err := json.Unmarshal(std, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", cm.ConfigPath(), err)
		}
	case errors.Is(err, fs.ErrNotExist):
		data, err := os.ReadFile(cm.TOMLConfigPath())
		if errors.Is(err, fs.ErrNotExist) {
			return cm.withDefaults(&cfg), nil
		}
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", cm.TOMLConfigPath(), err)
		}
	default:
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if _, err := cfg.CloneTimeoutDuration(); err != nil {
		return nil, err
	}
	return cm.withDefaults(&cfg), nil
}

// Save writes the config to disk as JSON, creating the directory if needed.
func (cm *ConfigManager) Save(cfg *Config) error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if err := os.MkdirAll(cm.configDir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	data = append(data, '\n')

	// Write atomically: write to temp file then rename
	tmpPath := cm.ConfigPath() + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	if err := os.Rename(tmpPath, cm.ConfigPath()); err != nil {
		_ = os.Remove(tmpPath) // clean up on failure
		return fmt.Errorf("saving config: %w", err)
	}

	return nil
}

func (cm *ConfigManager) withDefaults(cfg *Config) *Config {
	if cfg.RegistryURL == "" {
		cfg.RegistryURL = DefaultRegistryURL
	}
	if cfg.DefaultAgent == "" {
		cfg.DefaultAgent = DefaultAgent
	}
	if cfg.CloneTimeout == "" {
		cfg.CloneTimeout = DefaultCloneTimeout.String()
	}
	if cfg.StoreDir == "" {
		cfg.StoreDir = cm.DefaultStoreDir()
	} else {
		cfg.StoreDir = expandPath(cfg.StoreDir)
	}
	return cfg
}

// DefaultConfig returns the configuration used when no file exists.
func (cm *ConfigManager) DefaultConfig() *Config {
	return cm.withDefaults(&Config{})
}
