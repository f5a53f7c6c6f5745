// pkg/engine/mission.go
package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-ssorf/pkg/audio"
	"github.com/opd-ai/go-ssorf/pkg/config"
	"github.com/opd-ai/go-ssorf/pkg/entity"
	"github.com/opd-ai/go-ssorf/pkg/event"
	"github.com/opd-ai/go-ssorf/pkg/logging"
	"github.com/opd-ai/go-ssorf/pkg/physics"
	"github.com/opd-ai/go-ssorf/pkg/resource"
	"github.com/opd-ai/go-ssorf/pkg/validation"
)

// ErrUnknownScooter is returned when the selected scooter is not in the catalog.
var ErrUnknownScooter = errors.New("unknown scooter")

// ErrUndrivableScooter is returned when owned upgrades leave a scooter with
// specs the integrator cannot run.
var ErrUndrivableScooter = errors.New("scooter undrivable with its upgrades")

// CueFactory opens the engine cue for a mission. If the returned cue also
// implements resource.Releaser it is released when the mission unloads.
type CueFactory func(ctx context.Context, path string) (audio.Cue, error)

// MissionOptions contains everything a mission needs to load.
type MissionOptions struct {
	Config  *config.GameConfig
	Mission config.MissionConfig
	Easy    bool
	Player  *Player
	Bus     *event.Bus
	Logger  *logging.Logger
	// Cues may be nil for a silent mission.
	Cues    CueFactory
	Terrain TerrainSampler
}

// Mission is one timed drive from the start to the finish zone.
type Mission struct {
	opts   MissionOptions
	ctx    context.Context
	logger *logging.Logger

	vehicle *entity.Vehicle
	sound   *audio.EngineSound
	scope   *resource.Scope

	timeLimit float64
	elapsed   float64
	outcome   event.MissionOutcome

	loaded bool
	active bool
	paused bool
}

// NewMission creates an unloaded mission.
func NewMission(opts MissionOptions) *Mission {
	if opts.Logger == nil {
		opts.Logger = logging.NewLogger()
	}
	if opts.Bus == nil {
		opts.Bus = event.NewEventBus()
	}
	if opts.Terrain == nil {
		opts.Terrain = FlatTerrain{}
	}
	return &Mission{
		opts:   opts,
		ctx:    context.Background(),
		logger: opts.Logger,
	}
}

// Load places the selected scooter at the start and acquires the engine
// sound. Loading a loaded mission does nothing.
func (m *Mission) Load(ctx context.Context) error {
	if m.loaded {
		return nil
	}
	m.ctx = logging.WithSessionID(ctx, "")
	cfg := m.opts.Config
	mission := m.opts.Mission

	scooter, ok := cfg.Scooter(m.opts.Player.SelectedScooter)
	if !ok {
		return fmt.Errorf("load mission %d: scooter %d: %w", mission.ID, m.opts.Player.SelectedScooter, ErrUnknownScooter)
	}

	upgrades := m.opts.Player.UpgradeSet(cfg)
	if err := validation.ValidateUpgradedSpecs(scooter.Specs(), upgrades...); err != nil {
		return fmt.Errorf("load mission %d: scooter %d: %w: %w", mission.ID, scooter.ID, ErrUndrivableScooter, err)
	}

	integrator := physics.Integrator{UnitScale: cfg.Simulation.UnitScale}
	m.vehicle = entity.NewVehicle(1, scooter.ID, scooter.Name, scooter.Specs(), integrator, upgrades...)
	m.vehicle.SetStartingPosition(mission.StartYaw, mgl64.Vec3{mission.Start.X, 0, mission.Start.Y})
	m.placeOnGround()

	m.scope = resource.NewScope(fmt.Sprintf("mission-%d", mission.ID), m.logger)
	if err := m.loadSound(); err != nil {
		m.scope.Close(m.ctx)
		return fmt.Errorf("load mission %d: %w", mission.ID, err)
	}

	m.timeLimit = mission.TimeLimit
	if m.opts.Easy && mission.EasyTimeFactor > 0 {
		m.timeLimit *= mission.EasyTimeFactor
	}
	m.elapsed = 0
	m.outcome = ""
	m.paused = false
	m.loaded = true
	m.active = true

	m.opts.Bus.Publish(event.NewMissionStartedEvent(m, mission.ID, m.opts.Easy))
	pos := m.vehicle.GetPosition()
	m.opts.Bus.Publish(event.NewVehicleSpawnedEvent(m, scooter.ID, pos.X, pos.Y, m.vehicle.Yaw()))

	m.logger.Info(m.ctx, "Mission loaded",
		"mission", mission.ID,
		"scooter", scooter.Name,
		"easy", m.opts.Easy,
		"time_limit", m.timeLimit,
	)
	return nil
}

func (m *Mission) loadSound() error {
	if m.opts.Cues == nil {
		return nil
	}
	audioCfg := m.opts.Config.Audio
	cue, err := m.opts.Cues(m.ctx, audioCfg.EngineCue)
	if err != nil {
		return fmt.Errorf("open engine cue %q: %w", audioCfg.EngineCue, err)
	}
	if releaser, ok := cue.(resource.Releaser); ok {
		if err := m.scope.Acquire(m.ctx, "engine-cue", releaser); err != nil {
			return err
		}
	}

	guarded := audio.NewGuardedCue(cue, audio.BreakerSettings{
		Name:        "engine-cue",
		MaxFailures: audioCfg.BreakerMaxFailures,
		Timeout:     time.Duration(audioCfg.BreakerTimeoutSeconds * float64(time.Second)),
	}, m.logger)

	m.sound = audio.NewEngineSound(guarded, m.logger)
	m.sound.OnStateChange(func(from, to audio.State) {
		m.opts.Bus.Publish(event.NewAudioStateEvent(m, from.String(), to.String()))
	})
	// Acquired after the cue so the sound stops before the cue is closed.
	if err := m.scope.Acquire(m.ctx, "engine-sound", m.sound); err != nil {
		return err
	}
	m.vehicle.SetAudio(m.sound)
	return nil
}

// Update advances the mission by one frame.
func (m *Mission) Update(ctx context.Context, deltaTime float64, in Input) {
	if !m.active {
		return
	}
	if in.Abort {
		m.finish(event.OutcomeAborted)
		return
	}
	if in.Pause {
		m.togglePause()
	}
	if m.paused {
		return
	}

	m.elapsed += deltaTime
	if err := m.vehicle.Update(deltaTime, in.Controls); err != nil {
		m.logAudioError(err)
	}
	m.placeOnGround()

	if m.opts.Mission.Finish.Collides(m.vehicle.GetCollider()) {
		m.finish(event.OutcomeCompleted)
		return
	}
	if m.timeLimit > 0 && m.elapsed >= m.timeLimit {
		m.finish(event.OutcomeFailed)
	}
}

func (m *Mission) togglePause() {
	m.paused = !m.paused
	if m.paused && m.sound != nil {
		if err := m.sound.Pause(); err != nil {
			m.logAudioError(err)
		}
	}
}

func (m *Mission) placeOnGround() {
	pos := m.vehicle.GetPosition()
	height, normal := m.opts.Terrain.Sample(pos.X, pos.Y)
	m.vehicle.SetGroundNormal(height, normal)
}

func (m *Mission) logAudioError(err error) {
	if errors.Is(err, audio.ErrCueUnavailable) {
		m.logger.Debug(m.ctx, "Engine cue skipped", "error", err.Error())
		return
	}
	m.logger.Warn(m.ctx, "Engine sound update failed", "error", err.Error())
}

func (m *Mission) finish(outcome event.MissionOutcome) {
	m.active = false
	m.outcome = outcome

	reward := 0
	if outcome == event.OutcomeCompleted {
		reward = m.opts.Mission.Reward
		m.opts.Player.Credit(reward)
	}

	m.logger.Info(m.ctx, "Mission ended",
		"mission", m.opts.Mission.ID,
		"outcome", string(outcome),
		"elapsed", m.elapsed,
		"reward", reward,
	)
	m.opts.Bus.Publish(event.NewMissionEndedEvent(m, m.opts.Mission.ID, outcome, m.elapsed, reward))
}

// Unload releases everything the mission acquired. It is safe to call more
// than once and on a mission that never loaded.
func (m *Mission) Unload(ctx context.Context) error {
	if !m.loaded {
		return nil
	}
	m.loaded = false
	m.active = false

	err := m.scope.Close(m.ctx)
	m.vehicle.SetAudio(nil)
	m.logger.Info(m.ctx, "Mission unloaded", "mission", m.opts.Mission.ID)
	return err
}

// Draw renders the finish zone, the scooter and the HUD.
func (m *Mission) Draw(r entity.Renderer) {
	if m.vehicle == nil {
		return
	}
	r.RenderMarker(m.opts.Mission.Finish)
	m.vehicle.Render(r)

	bounds := m.opts.Config.Display.TitleSafe
	x, y := textLine(bounds, 0)
	r.RenderText(x, y, fmt.Sprintf("%s  %.0f km/h", m.opts.Mission.Name, m.vehicle.Speed()*3.6))
	if m.timeLimit > 0 {
		x, y = textLine(bounds, 1)
		r.RenderText(x, y, fmt.Sprintf("Time left: %.1fs", m.TimeRemaining()))
	}
	if m.paused {
		x, y = textLine(bounds, 3)
		r.RenderText(x, y, "PAUSED")
	}
}

// Active reports whether the mission is still being played.
func (m *Mission) Active() bool { return m.active }

// Loaded reports whether the mission holds resources.
func (m *Mission) Loaded() bool { return m.loaded }

// Paused reports whether the mission clock is stopped.
func (m *Mission) Paused() bool { return m.paused }

// Outcome is empty until the mission ends.
func (m *Mission) Outcome() event.MissionOutcome { return m.outcome }

// Vehicle returns the driven scooter, nil before Load.
func (m *Mission) Vehicle() *entity.Vehicle { return m.vehicle }

// Sound returns the engine sound, nil for a silent mission.
func (m *Mission) Sound() *audio.EngineSound { return m.sound }

// Elapsed returns mission time in seconds.
func (m *Mission) Elapsed() float64 { return m.elapsed }

// TimeLimit returns the effective limit in seconds, 0 for none.
func (m *Mission) TimeLimit() float64 { return m.timeLimit }

// TimeRemaining returns the seconds left, never negative.
func (m *Mission) TimeRemaining() float64 {
	if left := m.timeLimit - m.elapsed; left > 0 {
		return left
	}
	return 0
}
