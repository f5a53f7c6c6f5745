// cmd/ssorf/main.go
package main

import (
	"context"
	"flag"
	"os"

	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-ssorf/pkg/config"
	"github.com/opd-ai/go-ssorf/pkg/event"
	"github.com/opd-ai/go-ssorf/pkg/logging"
	engorender "github.com/opd-ai/go-ssorf/pkg/render/engo"
	"github.com/opd-ai/go-ssorf/pkg/validation"
)

func main() {
	logger := logging.NewLogger()
	ctx := context.Background()

	configPath := flag.String("config", "config.json", "Path to configuration file")
	createDefault := flag.Bool("default", false, "Create default configuration file")
	fullscreen := flag.Bool("fullscreen", false, "Run in fullscreen mode")
	width := flag.Int("width", 0, "Window width (overrides config)")
	height := flag.Int("height", 0, "Window height (overrides config)")
	flag.Parse()

	// Create default configuration file if requested
	if *createDefault {
		if err := config.SaveConfig(config.DefaultConfig(), *configPath); err != nil {
			logger.Error(ctx, "Failed to create default configuration", err,
				"config_path", *configPath,
			)
			os.Exit(1)
		}
		logger.Info(ctx, "Created default configuration file",
			"config_path", *configPath,
		)
		return
	}

	gameConfig, found, err := config.LoadOrDefault(*configPath)
	if err != nil {
		logger.Error(ctx, "Failed to load configuration", err,
			"config_path", *configPath,
		)
		os.Exit(1)
	}
	if !found {
		logger.Info(ctx, "Configuration file not found, using default configuration",
			"config_path", *configPath,
		)
	}

	envConfig, err := config.LoadConfigFromEnv(gameConfig)
	if err != nil {
		logger.Error(ctx, "Failed to load environment configuration", err)
		os.Exit(1)
	}
	gameConfig.ApplyEnvironment(envConfig)

	// Command line flags win over the environment.
	if *width > 0 {
		gameConfig.Display.Width = *width
	}
	if *height > 0 {
		gameConfig.Display.Height = *height
	}
	if *fullscreen {
		gameConfig.Display.Fullscreen = true
	}

	if err := validation.ValidateGameConfig(gameConfig); err != nil {
		logger.Error(ctx, "Invalid game configuration", err,
			"config_path", *configPath,
		)
		os.Exit(1)
	}

	logger.Info(ctx, "Starting game",
		"width", gameConfig.Display.Width,
		"height", gameConfig.Display.Height,
		"fullscreen", gameConfig.Display.Fullscreen,
		"scooters", len(gameConfig.Scooters),
		"missions", len(gameConfig.Missions),
	)

	scene := engorender.NewGameScene(gameConfig, event.NewEventBus(), logger)

	opts := engo.RunOptions{
		Title:      gameConfig.Display.Title,
		Width:      gameConfig.Display.Width,
		Height:     gameConfig.Display.Height,
		Fullscreen: gameConfig.Display.Fullscreen,
		VSync:      true,
	}

	// Run blocks until the window closes.
	engo.Run(opts, scene)
}
