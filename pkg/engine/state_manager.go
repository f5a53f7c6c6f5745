// pkg/engine/state_manager.go
package engine

import (
	"context"
	"fmt"

	"github.com/opd-ai/go-ssorf/pkg/config"
	"github.com/opd-ai/go-ssorf/pkg/entity"
	"github.com/opd-ai/go-ssorf/pkg/event"
	"github.com/opd-ai/go-ssorf/pkg/logging"
)

// GameState is the screen currently in control.
type GameState int

const (
	StateTitle GameState = iota
	StateMenu
	StateMission
)

func (s GameState) String() string {
	switch s {
	case StateTitle:
		return "title"
	case StateMenu:
		return "menu"
	case StateMission:
		return "mission"
	default:
		return fmt.Sprintf("GameState(%d)", int(s))
	}
}

// Options configures a StateManager.
type Options struct {
	Config *config.GameConfig
	// Player defaults to a new player from Config.Player.
	Player *Player
	Bus    *event.Bus
	Logger *logging.Logger
	// Source defaults to NoInput.
	Source  ControlSource
	Cues    CueFactory
	Terrain TerrainSampler
}

// StateManager switches between the title, the menu and a mission, and owns
// the mission's lifetime.
type StateManager struct {
	cfg    *config.GameConfig
	opts   Options
	ctx    context.Context
	logger *logging.Logger
	bus    *event.Bus

	state   GameState
	title   *Title
	menu    *Menu
	mission *Mission
	player  *Player
	source  ControlSource

	maxDelta float64
}

// NewStateManager creates a manager showing the title screen.
func NewStateManager(opts Options) *StateManager {
	if opts.Config == nil {
		opts.Config = config.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewLogger()
	}
	if opts.Bus == nil {
		opts.Bus = event.NewEventBus()
	}
	if opts.Player == nil {
		opts.Player = NewPlayer(opts.Config.Player)
	}
	if opts.Source == nil {
		opts.Source = NoInput
	}

	cfg := opts.Config
	sm := &StateManager{
		cfg:      cfg,
		opts:     opts,
		ctx:      context.Background(),
		logger:   opts.Logger,
		bus:      opts.Bus,
		state:    StateTitle,
		title:    NewTitle(cfg.Display.Title, cfg.Display.TitleSafe),
		menu:     NewMenu(cfg, opts.Player, opts.Logger),
		player:   opts.Player,
		source:   opts.Source,
		maxDelta: cfg.Simulation.MaxDeltaTime,
	}
	sm.bus.Subscribe(event.MissionEnded, sm.menu.HandleMissionEnded)
	return sm
}

// State returns the active screen.
func (sm *StateManager) State() GameState { return sm.state }

// Title returns the title screen.
func (sm *StateManager) Title() *Title { return sm.title }

// Menu returns the menu screen.
func (sm *StateManager) Menu() *Menu { return sm.menu }

// Mission returns the current or last mission, nil before the first one.
func (sm *StateManager) Mission() *Mission { return sm.mission }

// Player returns the player profile.
func (sm *StateManager) Player() *Player { return sm.player }

// Bus returns the event bus.
func (sm *StateManager) Bus() *event.Bus { return sm.bus }

// Update polls input once and updates the active screen, switching screens
// when the active one says so.
func (sm *StateManager) Update(deltaTime float64) {
	deltaTime = sm.clampDelta(deltaTime)
	in := sm.source.Poll(deltaTime)

	switch sm.state {
	case StateTitle:
		sm.title.Update(sm.ctx, deltaTime, in)
		if !sm.title.Active() {
			sm.setState(StateMenu)
			sm.updateMenu(deltaTime, in)
		}

	case StateMenu:
		sm.updateMenu(deltaTime, in)

	case StateMission:
		sm.mission.Update(sm.ctx, deltaTime, in)
		if !sm.mission.Active() {
			sm.unloadMission()
			sm.setState(StateMenu)
			sm.updateMenu(deltaTime, in)
		}
	}
}

func (sm *StateManager) updateMenu(deltaTime float64, in Input) {
	sm.menu.Update(sm.ctx, deltaTime, in)

	selection, ok := sm.menu.Pending()
	if !ok {
		return
	}
	sm.menu.ClearSelection()

	mission, _ := sm.cfg.Mission(selection.MissionID)
	next := NewMission(MissionOptions{
		Config:  sm.cfg,
		Mission: mission,
		Easy:    selection.Easy,
		Player:  sm.player,
		Bus:     sm.bus,
		Logger:  sm.logger,
		Cues:    sm.opts.Cues,
		Terrain: sm.opts.Terrain,
	})
	if err := next.Load(sm.ctx); err != nil {
		sm.logger.Error(sm.ctx, "Failed to start mission", err, "mission", selection.MissionID)
		return
	}

	sm.mission = next
	sm.setState(StateMission)
	sm.mission.Update(sm.ctx, deltaTime, in)
}

func (sm *StateManager) unloadMission() {
	if sm.mission == nil {
		return
	}
	if err := sm.mission.Unload(sm.ctx); err != nil {
		sm.logger.Error(sm.ctx, "Mission unload reported errors", err)
	}
}

func (sm *StateManager) setState(next GameState) {
	prev := sm.state
	sm.state = next
	sm.logger.Info(sm.ctx, "Screen changed", "from", prev.String(), "to", next.String())
	sm.bus.Publish(event.NewScreenEvent(sm, prev.String(), next.String()))
}

func (sm *StateManager) clampDelta(deltaTime float64) float64 {
	if deltaTime < 0 {
		return 0
	}
	if sm.maxDelta > 0 && deltaTime > sm.maxDelta {
		return sm.maxDelta
	}
	return deltaTime
}

// Draw renders the active screen as one frame.
func (sm *StateManager) Draw(r entity.Renderer) {
	r.Clear()
	switch sm.state {
	case StateTitle:
		sm.title.Draw(r)
	case StateMenu:
		sm.menu.Draw(r)
	case StateMission:
		sm.mission.Draw(r)
	}
	r.Present()
}

// Close unloads any loaded mission. It is the shutdown path and may be called
// more than once.
func (sm *StateManager) Close() error {
	if sm.mission == nil {
		return nil
	}
	return sm.mission.Unload(sm.ctx)
}
