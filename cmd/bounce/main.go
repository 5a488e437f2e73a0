// cmd/bounce/main.go
package main

import (
	"context"
	"flag"
	"math/rand/v2"
	"os"

	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-bounce/pkg/config"
	"github.com/opd-ai/go-bounce/pkg/engine"
	"github.com/opd-ai/go-bounce/pkg/logging"
	engorender "github.com/opd-ai/go-bounce/pkg/render/engo"
	"github.com/opd-ai/go-bounce/pkg/validation"
)

func main() {
	// .env must be read before the logger picks up BOUNCE_LOG_* settings.
	dotEnvLoaded, dotEnvErr := config.LoadDotEnv("")
	logger := logging.NewLogger()
	defer logger.Close()
	ctx := context.Background()

	configPath := flag.String("config", "config.json", "Path to configuration file")
	fullscreen := flag.Bool("fullscreen", false, "Run in fullscreen mode")
	seed := flag.Uint64("seed", 0, "Spawn seed (0 picks one at random)")
	flag.Parse()

	if dotEnvErr != nil {
		logger.Error(ctx, "Failed to read environment file", dotEnvErr)
		os.Exit(1)
	}
	if dotEnvLoaded {
		logger.Info(ctx, "Loaded environment file", "path", ".env")
	}

	gameConfig, err := loadGameConfig(ctx, logger, *configPath)
	if err != nil {
		logger.Error(ctx, "Failed to load configuration", err, "config_path", *configPath)
		os.Exit(1)
	}

	title, err := validation.ValidateTitle(gameConfig.Client.Title)
	if err != nil {
		logger.Warn(ctx, "Invalid window title, using default", "error", err.Error())
		title = config.DefaultConfig().Client.Title
	}

	opts := []engine.Option{engine.WithLogger(logger)}
	if *seed != 0 {
		opts = append(opts, engine.WithRand(rand.New(rand.NewPCG(*seed, *seed))))
	}

	session, err := engine.NewSession(gameConfig, opts...)
	if err != nil {
		logger.Error(ctx, "Failed to create session", err)
		os.Exit(1)
	}

	scene := engorender.NewGameScene(session, logger)

	runOpts := engo.RunOptions{
		Title:      title,
		Width:      int(gameConfig.Arena.Width),
		Height:     int(gameConfig.Arena.Height),
		Fullscreen: gameConfig.Client.Fullscreen || *fullscreen,
		VSync:      true,
		FPSLimit:   gameConfig.Game.TickRate,
	}

	logger.Info(session.Context(), "Starting client",
		"title", runOpts.Title,
		"width", runOpts.Width,
		"height", runOpts.Height,
		"balls", gameConfig.Game.Balls,
	)
	engo.Run(runOpts, scene)
}

// loadGameConfig reads path, falling back to defaults when it does not
// exist, and applies environment overrides.
func loadGameConfig(ctx context.Context, logger *logging.Logger, path string) (*config.GameConfig, error) {
	var gameConfig *config.GameConfig

	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.Info(ctx, "Configuration file not found, using default configuration",
			"config_path", path,
		)
		gameConfig = config.DefaultConfig()
	} else {
		gameConfig, err = config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
	}

	if err := config.ApplyEnvironmentOverrides(gameConfig); err != nil {
		return nil, logging.WrapError(err, "environment overrides")
	}
	return gameConfig, nil
}
