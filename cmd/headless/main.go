// cmd/headless/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"
	"os/signal"
	"syscall"

	"github.com/opd-ai/go-ssorf/pkg/audio"
	"github.com/opd-ai/go-ssorf/pkg/config"
	"github.com/opd-ai/go-ssorf/pkg/engine"
	"github.com/opd-ai/go-ssorf/pkg/event"
	"github.com/opd-ai/go-ssorf/pkg/logging"
	"github.com/opd-ai/go-ssorf/pkg/render"
	"github.com/opd-ai/go-ssorf/pkg/validation"
)

func main() {
	logger := logging.NewLogger()

	configPath := flag.String("config", "config.json", "Path to configuration file")
	missionID := flag.Int("mission", 1, "Mission to run")
	easy := flag.Bool("easy", false, "Run the mission in easy mode")
	seconds := flag.Float64("seconds", 120, "Longest simulated run in seconds")
	script := flag.String("script", "30:1:0:0", "Driving script as seconds:throttle:steer:brake,...")
	drawEvery := flag.Float64("draw", 1, "Seconds between terminal frames (0 disables drawing)")
	cols := flag.Int("cols", 60, "Terminal frame width in cells")
	rows := flag.Int("rows", 20, "Terminal frame height in cells")
	scale := flag.Float64("scale", 100, "World units per terminal cell")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger, options{
		configPath: *configPath,
		missionID:  *missionID,
		easy:       *easy,
		seconds:    *seconds,
		script:     *script,
		drawEvery:  *drawEvery,
		cols:       *cols,
		rows:       *rows,
		scale:      *scale,
	}); err != nil {
		logger.Error(ctx, "Headless run failed", err)
		os.Exit(1)
	}
}

type options struct {
	configPath string
	missionID  int
	easy       bool
	seconds    float64
	script     string
	drawEvery  float64
	cols, rows int
	scale      float64
}

func (o options) validate() error {
	if o.cols <= 0 || o.rows <= 0 {
		return fmt.Errorf("terminal frame must be positive, got %dx%d cells", o.cols, o.rows)
	}
	if math.IsNaN(o.scale) || math.IsInf(o.scale, 0) || o.scale <= 0 {
		return fmt.Errorf("scale must be positive, got %v", o.scale)
	}
	if o.drawEvery < 0 {
		return fmt.Errorf("draw interval cannot be negative, got %v", o.drawEvery)
	}
	return nil
}

func run(ctx context.Context, logger *logging.Logger, opts options) error {
	if err := opts.validate(); err != nil {
		return err
	}
	gameConfig, found, err := config.LoadOrDefault(opts.configPath)
	if err != nil {
		return err
	}
	if !found {
		logger.Info(ctx, "Configuration file not found, using default configuration",
			"config_path", opts.configPath,
		)
	}
	envConfig, err := config.LoadConfigFromEnv(gameConfig)
	if err != nil {
		return err
	}
	gameConfig.ApplyEnvironment(envConfig)
	if err := validation.ValidateGameConfig(gameConfig); err != nil {
		return fmt.Errorf("invalid game configuration: %w", err)
	}

	steps, err := engine.ParseScript(opts.script)
	if err != nil {
		return fmt.Errorf("parsing script: %w", err)
	}

	var cues []*audio.RecordingCue
	bus := event.NewEventBus()
	bus.Subscribe(event.MissionEnded, func(e event.Event) {
		if ended, ok := e.(*event.MissionEvent); ok {
			logger.Info(ctx, "Mission ended",
				"mission", ended.MissionID,
				"outcome", string(ended.Outcome),
				"elapsed", ended.Elapsed,
				"reward", ended.Reward,
			)
		}
	})

	manager := engine.NewStateManager(engine.Options{
		Config: gameConfig,
		Bus:    bus,
		Logger: logger,
		Source: engine.NewScriptedSource(steps),
		Cues: func(ctx context.Context, path string) (audio.Cue, error) {
			cue := audio.NewRecordingCue()
			cues = append(cues, cue)
			return cue, nil
		},
		Terrain: engine.FlatTerrain{},
	})
	defer manager.Close()

	manager.Title().Dismiss()
	manager.Update(0)
	if err := manager.Menu().Select(opts.missionID, opts.easy); err != nil {
		return err
	}
	manager.Update(0)
	if manager.State() != engine.StateMission {
		return fmt.Errorf("mission %d did not start", opts.missionID)
	}

	term := render.NewTerminalRenderer(os.Stdout, opts.cols, opts.rows, opts.scale)
	term.SetDisplaySize(gameConfig.Display.Width, gameConfig.Display.Height)
	term.ClearScreen = true

	tickRate := gameConfig.Simulation.TickRate
	if tickRate <= 0 {
		tickRate = 60
	}
	dt := 1 / float64(tickRate)
	drawTicks := int(opts.drawEvery * float64(tickRate))

	mission := manager.Mission()
	for tick := 1; float64(tick)*dt <= opts.seconds; tick++ {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "Interrupted", "tick", tick)
			return nil
		default:
		}

		manager.Update(dt)
		if manager.State() != engine.StateMission {
			break
		}
		if drawTicks > 0 && tick%drawTicks == 0 {
			term.SetCenter(mission.Vehicle().GetPosition())
			manager.Draw(term)
		}
	}

	outcome := mission.Outcome()
	if outcome == "" {
		outcome = "unfinished"
	}
	vehicle := mission.Vehicle()
	pos := vehicle.GetPosition()
	logger.Info(ctx, "Run complete",
		"outcome", string(outcome),
		"elapsed", mission.Elapsed(),
		"x", pos.X,
		"z", pos.Y,
		"speed", vehicle.Speed(),
		"money", manager.Player().Money,
	)
	for _, cue := range cues {
		logger.Debug(ctx, "Engine cue commands",
			"play", cue.Count("play"),
			"stop", cue.Count("stop:"+audio.StopAsAuthored.String()),
			"commands", len(cue.Commands),
		)
	}
	return nil
}
