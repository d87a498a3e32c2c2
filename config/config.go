package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// Values are loaded by Viper from a config file and/or environment variables.
type Config struct {
	NexusAPIKey  string `mapstructure:"NEXUS_API_KEY"`
	AIAPIKey     string `mapstructure:"AI_API_KEY"`
	Game         string `mapstructure:"GAME"`         // Catalog id, e.g. "skyrimse"
	GameVersion  string `mapstructure:"GAME_VERSION"` // Empty means the catalog default
	UserAgent    string `mapstructure:"USERAGENT"`
	DataDir      string `mapstructure:"DATA_DIR"`
	DatabasePath string `mapstructure:"-"` // Not from env, derived
	MaxMods      int    `mapstructure:"MAX_MODS"`
	ShuffleSeed  int64  `mapstructure:"SHUFFLE_SEED"` // 0 seeds from the clock
}

// DefaultMaxMods bounds the per-session working set so a single run can't
// burn through the Nexus and AI call budgets.
const DefaultMaxMods = 60

// LoadConfig reads configuration from file and environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)   // Path to look for the config file in
	viper.SetConfigName(".env") // Name of config file (without extension)
	viper.SetConfigType("env")  // REQUIRED if the config file does not have the extension in the name

	vip_err := viper.ReadInConfig()
	if _, ok := vip_err.(viper.ConfigFileNotFoundError); ok {
		slog.Info("Config file (.env) not found, relying on environment variables.")
	} else if vip_err != nil {
		return Config{}, fmt.Errorf("fatal error config file: %w", vip_err)
	}

	// Bind environment variables automatically.
	// Viper will check for an environment variable matching the key name (e.g., NEXUS_API_KEY)
	viper.AutomaticEnv()

	for key, env := range map[string]string{
		"nexus_api_key": "NEXUS_API_KEY",
		"ai_api_key":    "AI_API_KEY",
		"game":          "GAME",
		"game_version":  "GAME_VERSION",
		"useragent":     "USERAGENT",
		"data_dir":      "DATA_DIR",
		"max_mods":      "MAX_MODS",
		"shuffle_seed":  "SHUFFLE_SEED",
	} {
		if bindErr := viper.BindEnv(key, env); bindErr != nil {
			slog.Warn("Unable to bind env var", "var", env, "error", bindErr)
		}
	}

	// Unmarshal the config
	vip_err = viper.Unmarshal(&config)
	if vip_err != nil {
		return Config{}, fmt.Errorf("unable to decode into struct, %w", vip_err)
	}

	processConfigDefaults(&config)

	// Viper doesn't handle numeric defaults from env cleanly, so parse the
	// raw strings ourselves when the unmarshal left zero values.
	if config.MaxMods == 0 {
		maxStr := viper.GetString("MAX_MODS")
		if maxStr == "" {
			config.MaxMods = DefaultMaxMods
		} else if parsed, perr := strconv.Atoi(maxStr); perr != nil || parsed <= 0 {
			slog.Warn("Invalid value for MAX_MODS, using default", "value", maxStr)
			config.MaxMods = DefaultMaxMods
		} else {
			config.MaxMods = parsed
		}
	}
	if config.ShuffleSeed == 0 {
		seedStr := viper.GetString("SHUFFLE_SEED")
		if seedStr != "" {
			parsed, perr := strconv.ParseInt(seedStr, 10, 64)
			if perr != nil {
				slog.Warn("Invalid value for SHUFFLE_SEED, using clock seed", "value", seedStr, "error", perr)
			} else {
				config.ShuffleSeed = parsed
			}
		}
	}

	if err := validateAndEnsureDirectories(&config); err != nil {
		return Config{}, err
	}

	return config, nil
}

// processConfigDefaults fills in defaults for optional settings.
func processConfigDefaults(cfg *Config) {
	if cfg.Game == "" {
		cfg.Game = "skyrimse" // Default game
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "nexus-swipe/dev (unknown-user)"
		slog.Warn("USERAGENT not set in config or environment, using default.")
	}
	if cfg.DataDir == "" {
		cfg.DataDir = "."
		slog.Info("DATA_DIR not set, using current directory")
	}
	if cfg.MaxMods == 0 {
		cfg.MaxMods = DefaultMaxMods
	}
}

// validateAndEnsureDirectories makes sure the data directory exists and
// derives the database path inside it.
func validateAndEnsureDirectories(cfg *Config) error {
	if cfg.DataDir == "" {
		slog.Error("DATA_DIR is not set")
		return fmt.Errorf("DATA_DIR is required")
	}
	if _, err := os.Stat(cfg.DataDir); os.IsNotExist(err) {
		slog.Info("Data directory does not exist, creating it", "path", cfg.DataDir)
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			slog.Error("Failed to create data directory", "path", cfg.DataDir, "error", err)
			return err
		}
	} else if err != nil {
		slog.Error("Failed to check data directory", "path", cfg.DataDir, "error", err)
		return err
	}

	// Place the database in the data dir for portability
	cfg.DatabasePath = filepath.Join(cfg.DataDir, "swipes.db")

	return nil
}
