package engine

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/opd-ai/go-ssorf/pkg/audio"
	"github.com/opd-ai/go-ssorf/pkg/config"
	"github.com/opd-ai/go-ssorf/pkg/event"
)

func loadTestMission(t *testing.T, missionID int, easy bool, cues CueFactory, bus *event.Bus) (*Mission, *Player) {
	t.Helper()
	cfg := testConfig()
	mission, _ := cfg.Mission(missionID)
	player := NewPlayer(cfg.Player)
	m := NewMission(MissionOptions{
		Config:  cfg,
		Mission: mission,
		Easy:    easy,
		Player:  player,
		Bus:     bus,
		Logger:  quietLogger(),
		Cues:    cues,
	})
	if err := m.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return m, player
}

func TestMission_LoadPlacesScooter(t *testing.T) {
	bus := event.NewEventBus()
	var started *event.MissionEvent
	var spawned *event.VehicleEvent
	bus.Subscribe(event.MissionStarted, func(e event.Event) { started = e.(*event.MissionEvent) })
	bus.Subscribe(event.VehicleSpawned, func(e event.Event) { spawned = e.(*event.VehicleEvent) })

	m, _ := loadTestMission(t, 2, true, nil, bus)

	if !m.Active() || !m.Loaded() {
		t.Fatal("Expected an active, loaded mission")
	}
	if m.Vehicle().GetPosition().X != 100 {
		t.Errorf("Expected start X 100, got %f", m.Vehicle().GetPosition().X)
	}
	if m.Vehicle().Speed() != 0 {
		t.Errorf("Expected the scooter at rest, got %f", m.Vehicle().Speed())
	}
	if started == nil || started.MissionID != 2 || !started.Easy {
		t.Errorf("Expected a mission started event, got %+v", started)
	}
	if spawned == nil || spawned.X != 100 {
		t.Errorf("Expected a vehicle spawned event, got %+v", spawned)
	}
	if m.Sound() != nil {
		t.Error("Expected a silent mission without a cue factory")
	}
}

func TestMission_LoadUnknownScooter(t *testing.T) {
	cfg := testConfig()
	player := NewPlayer(cfg.Player)
	player.SelectedScooter = 42
	m := NewMission(MissionOptions{Config: cfg, Mission: cfg.Missions[0], Player: player, Logger: quietLogger()})

	if err := m.Load(context.Background()); !errors.Is(err, ErrUnknownScooter) {
		t.Errorf("Expected ErrUnknownScooter, got %v", err)
	}
	if m.Loaded() {
		t.Error("Expected the mission to stay unloaded")
	}
}

func TestMission_LoadRejectsUndrivableUpgrades(t *testing.T) {
	cfg := testConfig()
	feather := config.UpgradeConfig{ID: 3, Name: "Feather Kit", Weight: -500}
	cfg.Upgrades = append(cfg.Upgrades, feather)
	player := NewPlayer(cfg.Player)
	if err := player.BuyUpgrade(feather); err != nil {
		t.Fatalf("BuyUpgrade failed: %v", err)
	}
	cues := &cueRecorder{}
	m := NewMission(MissionOptions{
		Config:  cfg,
		Mission: cfg.Missions[0],
		Player:  player,
		Logger:  quietLogger(),
		Cues:    cues.factory,
	})

	if err := m.Load(context.Background()); !errors.Is(err, ErrUndrivableScooter) {
		t.Errorf("Expected ErrUndrivableScooter, got %v", err)
	}
	if m.Loaded() || m.Vehicle() != nil {
		t.Error("Expected no vehicle for an undrivable scooter")
	}
	if len(cues.cues) != 0 {
		t.Errorf("Expected no cue opened, got %d", len(cues.cues))
	}
}

func TestMission_LoadAppliesUpgrades(t *testing.T) {
	cfg := testConfig()
	player := NewPlayer(cfg.Player)
	upgrade, _ := cfg.Upgrade(1)
	if err := player.BuyUpgrade(upgrade); err != nil {
		t.Fatalf("BuyUpgrade failed: %v", err)
	}
	scooter, _ := cfg.Scooter(player.SelectedScooter)

	m := NewMission(MissionOptions{Config: cfg, Mission: cfg.Missions[0], Player: player, Logger: quietLogger()})
	if err := m.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	expected := scooter.Specs().WithUpgrades(upgrade.Upgrades())
	if m.Vehicle().Specs() != expected {
		t.Errorf("Expected specs %+v, got %+v", expected, m.Vehicle().Specs())
	}
}

func TestMission_TimeLimit(t *testing.T) {
	tests := []struct {
		name   string
		easy   bool
		frames int
	}{
		{"normal", false, 4},
		{"easy doubles the limit", true, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, player := loadTestMission(t, 2, tt.easy, nil, nil)
			money := player.Money

			for i := 1; i < tt.frames; i++ {
				m.Update(context.Background(), 0.25, Input{})
				if !m.Active() {
					t.Fatalf("Expected mission active after frame %d", i)
				}
			}
			m.Update(context.Background(), 0.25, Input{})

			if m.Active() {
				t.Fatal("Expected the mission to end on time-out")
			}
			if m.Outcome() != event.OutcomeFailed {
				t.Errorf("Expected failed, got %q", m.Outcome())
			}
			if player.Money != money {
				t.Errorf("Expected no reward, money went from %d to %d", money, player.Money)
			}
			if m.TimeRemaining() != 0 {
				t.Errorf("Expected no time remaining, got %f", m.TimeRemaining())
			}
		})
	}
}

func TestMission_Abort(t *testing.T) {
	bus := event.NewEventBus()
	var ended *event.MissionEvent
	bus.Subscribe(event.MissionEnded, func(e event.Event) { ended = e.(*event.MissionEvent) })
	m, _ := loadTestMission(t, 1, false, nil, bus)

	m.Update(context.Background(), 0.1, Input{Abort: true, Controls: fullThrottle})

	if m.Active() {
		t.Error("Expected the mission to end")
	}
	if m.Elapsed() != 0 {
		t.Errorf("Expected the abort frame not to advance time, got %f", m.Elapsed())
	}
	if ended == nil || ended.Outcome != event.OutcomeAborted {
		t.Errorf("Expected an aborted event, got %+v", ended)
	}

	m.Update(context.Background(), 0.1, Input{Controls: fullThrottle})
	if m.Elapsed() != 0 {
		t.Error("Expected an ended mission to ignore updates")
	}
}

func TestMission_PauseAndResume(t *testing.T) {
	cues := &cueRecorder{}
	bus := event.NewEventBus()
	var transitions []string
	bus.Subscribe(event.AudioStateChanged, func(e event.Event) {
		ae := e.(*event.AudioEvent)
		transitions = append(transitions, ae.From+"->"+ae.To)
	})
	m, _ := loadTestMission(t, 1, false, cues.factory, bus)
	ctx := context.Background()

	m.Update(ctx, 0.1, Input{Controls: fullThrottle})
	m.Update(ctx, 0.1, Input{Pause: true, Controls: fullThrottle})
	if !m.Paused() {
		t.Fatal("Expected the mission to pause")
	}
	speed := m.Vehicle().Speed()
	m.Update(ctx, 0.1, Input{Controls: fullThrottle})
	if m.Vehicle().Speed() != speed || math.Abs(m.Elapsed()-0.1) > 1e-12 {
		t.Error("Expected a paused mission to stand still")
	}
	m.Update(ctx, 0.1, Input{Pause: true, Controls: fullThrottle})

	expected := []string{"play", "pause", "resume"}
	if !reflect.DeepEqual(cues.last().Commands, expected) {
		t.Errorf("Expected commands %v, got %v", expected, cues.last().Commands)
	}
	expectedTransitions := []string{"prepared->playing", "playing->paused", "paused->playing"}
	if !reflect.DeepEqual(transitions, expectedTransitions) {
		t.Errorf("Expected transitions %v, got %v", expectedTransitions, transitions)
	}
}

func TestMission_UnloadReleasesSoundBeforeCue(t *testing.T) {
	var cue closableCue
	factory := func(ctx context.Context, path string) (audio.Cue, error) {
		if path != config.DefaultConfig().Audio.EngineCue {
			t.Errorf("Expected cue path %q, got %q", config.DefaultConfig().Audio.EngineCue, path)
		}
		cue = closableCue{audio.NewRecordingCue()}
		return cue, nil
	}
	m, _ := loadTestMission(t, 1, false, factory, nil)
	m.Update(context.Background(), 0.1, Input{Controls: fullThrottle})

	if err := m.Unload(context.Background()); err != nil {
		t.Fatalf("Unload failed: %v", err)
	}
	if err := m.Unload(context.Background()); err != nil {
		t.Fatalf("second Unload failed: %v", err)
	}

	expected := []string{"play", "stop:as-authored", "release"}
	if !reflect.DeepEqual(cue.Commands, expected) {
		t.Errorf("Expected commands %v, got %v", expected, cue.Commands)
	}
	if !m.Sound().Released() {
		t.Error("Expected the engine sound to be released")
	}
}

func TestMission_SilentSoundNeverStops(t *testing.T) {
	cues := &cueRecorder{}
	m, _ := loadTestMission(t, 1, false, cues.factory, nil)
	m.Update(context.Background(), 0.1, Input{})
	m.Unload(context.Background())

	if len(cues.last().Commands) != 0 {
		t.Errorf("Expected no cue commands, got %v", cues.last().Commands)
	}
}

func TestMission_BrokenCueDoesNotStopTheMission(t *testing.T) {
	cues := &cueRecorder{}
	m, _ := loadTestMission(t, 1, false, cues.factory, nil)
	cues.last().Err = errors.New("device lost")

	for i := 0; i < 10; i++ {
		m.Update(context.Background(), 0.01, Input{Controls: fullThrottle})
	}

	if !m.Active() {
		t.Error("Expected the mission to keep running")
	}
	if m.Vehicle().Speed() <= 0 {
		t.Error("Expected the scooter to keep moving")
	}
}

func TestMission_FollowsTerrain(t *testing.T) {
	cfg := testConfig()
	mission, _ := cfg.Mission(2)
	m := NewMission(MissionOptions{
		Config:  cfg,
		Mission: mission,
		Player:  NewPlayer(cfg.Player),
		Logger:  quietLogger(),
		Terrain: SlopeTerrain{GradientX: 0.1},
	})
	if err := m.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if math.Abs(m.Vehicle().Position().Y()-10) > 1e-9 {
		t.Errorf("Expected height 10, got %f", m.Vehicle().Position().Y())
	}
	roll, pitch := m.Vehicle().Tilt()
	expected := 0.1 / math.Sqrt(1.01)
	if math.Abs(roll-expected) > 1e-9 {
		t.Errorf("Expected roll %f on the slope, got %f", expected, roll)
	}
	if math.Abs(pitch) > 1e-9 {
		t.Errorf("Expected no pitch across the slope, got %f", pitch)
	}
}

func TestMission_UnloadWithoutLoad(t *testing.T) {
	cfg := testConfig()
	m := NewMission(MissionOptions{Config: cfg, Mission: cfg.Missions[0], Player: NewPlayer(cfg.Player)})
	if err := m.Unload(context.Background()); err != nil {
		t.Errorf("Expected nil error, got %v", err)
	}
}
