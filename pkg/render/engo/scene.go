// pkg/render/engo/scene.go
package engo

import (
	"context"
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-ssorf/pkg/config"
	"github.com/opd-ai/go-ssorf/pkg/engine"
	"github.com/opd-ai/go-ssorf/pkg/entity"
	"github.com/opd-ai/go-ssorf/pkg/event"
	"github.com/opd-ai/go-ssorf/pkg/logging"
)

// hudFontSize is the HUD font size in points.
const hudFontSize = 18

// StateSystem ticks the state manager once per engo frame and draws the
// active screen.
type StateSystem struct {
	manager  *engine.StateManager
	renderer entity.Renderer
}

// NewStateSystem creates a system driving manager and drawing with renderer.
func NewStateSystem(manager *engine.StateManager, renderer entity.Renderer) *StateSystem {
	return &StateSystem{manager: manager, renderer: renderer}
}

// Remove satisfies the ecs.System interface
func (s *StateSystem) Remove(basic ecs.BasicEntity) {}

// Update advances the game by dt seconds and draws the result.
func (s *StateSystem) Update(dt float32) {
	s.manager.Update(float64(dt))
	s.manager.Draw(s.renderer)
}

// GameScene represents the main game scene in Engo
type GameScene struct {
	world *ecs.World

	cfg    *config.GameConfig
	bus    *event.Bus
	logger *logging.Logger
	player *engine.Player

	// Rendering components
	renderer *EngoRenderer
	camera   *CameraSystem
	input    *InputSystem
	assets   *AssetManager
	manager  *engine.StateManager
}

// NewGameScene creates the scene. A nil bus or logger gets a default.
func NewGameScene(cfg *config.GameConfig, bus *event.Bus, logger *logging.Logger) *GameScene {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if bus == nil {
		bus = event.NewEventBus()
	}
	if logger == nil {
		logger = logging.NewLogger()
	}
	return &GameScene{
		cfg:    cfg,
		bus:    bus,
		logger: logger,
		player: engine.NewPlayer(cfg.Player),
		world:  &ecs.World{},
	}
}

// Type returns the scene type (required by Engo)
func (scene *GameScene) Type() string {
	return "GameScene"
}

// Preload registers the HUD font and the engine cue file.
func (scene *GameScene) Preload() {
	ctx := context.Background()
	if err := PreloadFont(); err != nil {
		scene.logger.Error(ctx, "Failed to preload font", err)
	}
	if path := scene.cfg.Audio.EngineCue; path != "" {
		if err := engo.Files.Load(path); err != nil {
			scene.logger.Warn(ctx, "Engine cue unavailable", "path", path, "error", err.Error())
		}
	}
}

// Setup is called when the scene starts (required by Engo)
func (scene *GameScene) Setup(u engo.Updater) {
	ctx := context.Background()
	world, ok := u.(*ecs.World)
	if !ok {
		world = &ecs.World{}
	}
	scene.world = world

	common.SetBackground(color.RGBA{30, 34, 40, 255})

	renderSystem := &common.RenderSystem{}
	world.AddSystem(renderSystem)
	world.AddSystem(&common.AudioSystem{})

	scene.assets = NewAssetManager()
	if err := scene.assets.LoadAssets(hudFontSize); err != nil {
		scene.logger.Error(ctx, "Failed to load assets", err)
	}

	display := scene.cfg.Display
	scene.camera = NewCameraSystem(float32(display.Width), float32(display.Height))
	world.AddSystem(scene.camera)

	SetupInputBindings()
	scene.input = NewInputSystem()
	world.AddSystem(scene.input)

	scene.renderer = NewEngoRenderer(renderSystem, scene.camera, scene.assets)
	scene.manager = engine.NewStateManager(engine.Options{
		Config: scene.cfg,
		Player: scene.player,
		Bus:    scene.bus,
		Logger: scene.logger,
		Source: scene.input,
		Cues:   PlayerCueFactory(scene.cfg.Audio.Volume),
	})
	world.AddSystem(NewStateSystem(scene.manager, scene.renderer))

	scene.logger.Info(ctx, "Scene ready", "width", display.Width, "height", display.Height)
}

// Manager returns the state manager, or nil before Setup.
func (scene *GameScene) Manager() *engine.StateManager {
	return scene.manager
}

// Exit unloads any running mission and frees the render entities.
func (scene *GameScene) Exit() {
	if scene.manager != nil {
		if err := scene.manager.Close(); err != nil {
			scene.logger.Error(context.Background(), "Failed to close game", err)
		}
	}
	if scene.renderer != nil {
		scene.renderer.Release()
	}
}
