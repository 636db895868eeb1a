package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config    *Config
	viper     *viper.Viper
	mu        sync.RWMutex
	callbacks []func(*Config)
	watching  bool
}

// NewManager creates a new configuration manager.
func NewManager() (*Manager, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")

	configDir, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get config directory: %w", err)
	}
	v.AddConfigPath(configDir)
	v.AddConfigPath(".") // Current directory for development

	v.SetEnvPrefix("DOLLY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindings := map[string]string{
		"database.path":              "DATABASE_PATH",
		"logging.level":              "LOG_LEVEL",
		"logging.format":             "LOG_FORMAT",
		"quality.force_tier":         "FORCE_TIER",
		"cinematic.default_sequence": "DEFAULT_SEQUENCE",
		"cinematic.tick_rate":        "TICK_RATE",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, "DOLLY_"+env); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable %s: %w", env, err)
		}
	}

	return &Manager{
		viper:     v,
		callbacks: make([]func(*Config), 0),
	}, nil
}

// Load loads the configuration from file and environment variables.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := EnsureDirectories(); err != nil {
		return fmt.Errorf("failed to ensure directories: %w", err)
	}

	m.setDefaults()

	if err := m.viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			if err := m.createDefaultConfig(); err != nil {
				return fmt.Errorf("failed to create default config: %w", err)
			}
		} else {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config, err := m.unmarshal()
	if err != nil {
		return err
	}

	if err := validateConfig(config); err != nil {
		return err
	}

	m.config = config
	return nil
}

// unmarshal decodes the viper state into a normalized Config.
func (m *Manager) unmarshal() (*Config, error) {
	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.Database.Path == "" {
		dbPath, err := GetDatabaseFile()
		if err != nil {
			return nil, fmt.Errorf("failed to get database path: %w", err)
		}
		config.Database.Path = dbPath
	}

	// Viper cannot express a default for a list of tables, so an empty
	// sequence library falls back to the stock one.
	if len(config.Cinematic.Sequences) == 0 {
		config.Cinematic.Sequences = DefaultConfig().Cinematic.Sequences
	}

	config.Quality.ForceTier = strings.ToLower(strings.TrimSpace(config.Quality.ForceTier))

	return config, nil
}

// Get returns the current configuration (thread-safe).
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	configCopy := *m.config
	return &configCopy
}

// Watch starts watching the config file for changes and reloads automatically.
func (m *Manager) Watch() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.watching {
		return nil
	}

	m.viper.WatchConfig()
	m.viper.OnConfigChange(func(_ fsnotify.Event) {
		if err := m.reload(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to reload config: %v\n", err)
			return
		}

		m.mu.RLock()
		config := m.config
		callbacks := make([]func(*Config), len(m.callbacks))
		copy(callbacks, m.callbacks)
		m.mu.RUnlock()

		for _, callback := range callbacks {
			callback(config)
		}
	})

	m.watching = true
	return nil
}

// OnConfigChange registers a callback invoked after a successful reload.
func (m *Manager) OnConfigChange(callback func(*Config)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.callbacks = append(m.callbacks, callback)
}

func (m *Manager) reload() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.viper.ReadInConfig(); err != nil {
		return err
	}

	config, err := m.unmarshal()
	if err != nil {
		return err
	}

	if err := validateConfig(config); err != nil {
		return err
	}

	m.config = config
	return nil
}

// setDefaults sets default configuration values in Viper.
func (m *Manager) setDefaults() {
	defaults := DefaultConfig()

	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", defaults.Logging.Format)

	m.viper.SetDefault("quality.force_tier", defaults.Quality.ForceTier)

	m.viper.SetDefault("cinematic.default_sequence", defaults.Cinematic.DefaultSequence)
	m.viper.SetDefault("cinematic.tick_rate", defaults.Cinematic.TickRate)
}

// createDefaultConfig writes the stock configuration to the XDG config
// directory so users have a file to edit.
func (m *Manager) createDefaultConfig() error {
	configFile, err := GetConfigFile()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configFile), dirPerm); err != nil {
		return err
	}

	defaults := DefaultConfig()

	out := viper.New()
	out.SetConfigType("toml")
	out.Set("logging.level", defaults.Logging.Level)
	out.Set("logging.format", defaults.Logging.Format)
	out.Set("quality.force_tier", defaults.Quality.ForceTier)
	out.Set("cinematic.default_sequence", defaults.Cinematic.DefaultSequence)
	out.Set("cinematic.tick_rate", defaults.Cinematic.TickRate)

	sequences := make([]map[string]any, 0, len(defaults.Cinematic.Sequences))
	for _, seq := range defaults.Cinematic.Sequences {
		keyframes := make([]map[string]any, 0, len(seq.Keyframes))
		for _, kf := range seq.Keyframes {
			keyframes = append(keyframes, map[string]any{
				"position": kf.Position,
				"target":   kf.Target,
				"fov":      kf.FOV,
				"duration": kf.Duration,
				"easing":   kf.Easing,
			})
		}
		sequences = append(sequences, map[string]any{
			"name":      seq.Name,
			"keyframes": keyframes,
		})
	}
	out.Set("cinematic.sequences", sequences)

	if err := out.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	if err := GenerateSchemaFile(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to generate config schema: %v\n", err)
	}

	fmt.Printf("Created default configuration file: %s\n", configFile)
	return nil
}

// GetConfigFile returns the path to the configuration file being used.
func (m *Manager) GetConfigFile() string {
	return m.viper.ConfigFileUsed()
}

// Global configuration manager instance
var globalManager *Manager
var globalManagerOnce sync.Once

// Init initializes the global configuration manager.
func Init() error {
	var err error
	globalManagerOnce.Do(func() {
		globalManager, err = NewManager()
		if err != nil {
			return
		}
		err = globalManager.Load()
	})
	return err
}

// Get returns the global configuration.
func Get() *Config {
	if globalManager == nil {
		return DefaultConfig()
	}
	return globalManager.Get()
}

// GetManager returns the global manager, or nil before Init.
func GetManager() *Manager {
	return globalManager
}

// Watch starts watching the global configuration for changes.
func Watch() error {
	if globalManager == nil {
		return fmt.Errorf("configuration not initialized")
	}
	return globalManager.Watch()
}

// OnConfigChange registers a callback for global configuration changes.
func OnConfigChange(callback func(*Config)) {
	if globalManager == nil {
		return
	}
	globalManager.OnConfigChange(callback)
}
