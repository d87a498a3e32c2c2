package cmd

import (
	"fmt"

	"go.uber.org/zap"

	"nexus-swipe/ai"
	"nexus-swipe/config"
	"nexus-swipe/db"
	"nexus-swipe/game"
	"nexus-swipe/logger"
	"nexus-swipe/mods"
	"nexus-swipe/nexus"
)

// bootstrap handles shared initialization logic for commands.
func bootstrap(path string) (config.Config, game.Definition, string, *mods.Service) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		logger.Log.Fatalw("Failed to load configuration", zap.Error(err))
	}

	db.InitDatabase(cfg.DatabasePath)
	logger.Log.Infow("Database initialized", zap.String("path", cfg.DatabasePath))

	if cfg.NexusAPIKey == "" {
		logger.Log.Fatal("Error: NEXUS_API_KEY must be set.")
	}

	def, version, err := resolveGameVersion(cfg)
	if err != nil {
		logger.Log.Fatalw("Invalid game configuration", zap.Error(err))
	}

	client, err := nexus.NewClient(cfg)
	if err != nil {
		logger.Log.Fatalw("Failed to create Nexus client", zap.Error(err))
	}

	service := mods.NewService(client, buildScorer(cfg), logger.Log, cfg.MaxMods, cfg.ShuffleSeed)

	return cfg, def, version, service
}

// resolveGameVersion maps the configured game id and version onto the
// catalog, defaulting the version when unset.
func resolveGameVersion(cfg config.Config) (game.Definition, string, error) {
	def, err := game.Find(cfg.Game)
	if err != nil {
		return game.Definition{}, "", err
	}

	version := cfg.GameVersion
	if version == "" {
		version = def.DefaultVersion
	}
	if !def.SupportsVersion(version) {
		return game.Definition{}, "", fmt.Errorf("game %s does not support version %q (known: %v)", def.ID, version, def.Versions)
	}
	return def, version, nil
}

// buildScorer wires the AI client when a key is configured. Without one, the
// pipeline uses the deterministic heuristic.
func buildScorer(cfg config.Config) mods.AIScorer {
	if cfg.AIAPIKey == "" {
		logger.Log.Info("AI_API_KEY not set, AI scores will use the logic-derived heuristic")
		return nil
	}
	return ai.NewClient(cfg.AIAPIKey, logger.Log)
}
