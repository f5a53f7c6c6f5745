// pkg/config/config.go
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/opd-ai/go-ssorf/pkg/physics"
)

// GameConfig contains everything the game reads from its configuration file.
type GameConfig struct {
	Display    DisplayConfig    `json:"display"`
	Simulation SimulationConfig `json:"simulation"`
	Audio      AudioConfig      `json:"audio"`
	Player     PlayerConfig     `json:"player"`
	Scooters   []ScooterConfig  `json:"scooters"`
	Upgrades   []UpgradeConfig  `json:"upgrades"`
	Missions   []MissionConfig  `json:"missions"`
}

// Rect is a screen-space rectangle in pixels.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// DisplayConfig describes the window. TitleSafe is the region menus and HUD
// text must stay inside; Full is the whole viewport.
type DisplayConfig struct {
	Title      string `json:"title"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Fullscreen bool   `json:"fullscreen"`
	TitleSafe  Rect   `json:"titleSafe"`
	Full       Rect   `json:"full"`
}

// SimulationConfig contains integrator settings.
type SimulationConfig struct {
	// UnitScale converts simulated meters into world units.
	UnitScale float64 `json:"unitScale"`
	// MaxDeltaTime caps a single tick in seconds.
	MaxDeltaTime float64 `json:"maxDeltaTime"`
	// TickRate is the fixed rate used by the headless runner.
	TickRate int `json:"tickRate"`
}

// AudioConfig contains engine sound settings.
type AudioConfig struct {
	EngineCue             string  `json:"engineCue"`
	Volume                float64 `json:"volume"`
	BreakerMaxFailures    int     `json:"breakerMaxFailures"`
	BreakerTimeoutSeconds float64 `json:"breakerTimeoutSeconds"`
}

// PlayerConfig contains the starting profile.
type PlayerConfig struct {
	StartingMoney   int `json:"startingMoney"`
	StartingScooter int `json:"startingScooter"`
}

// ScooterConfig is the content record for one scooter. OutputPowerAmps is the
// motor rating in amps; Specs converts it to torque.
type ScooterConfig struct {
	ID                int     `json:"id"`
	Name              string  `json:"name"`
	Price             int     `json:"price"`
	WheelBaseLength   float64 `json:"wheelBaseLength"`
	WheelMaxAngle     float64 `json:"wheelMaxAngle"`
	WheelRadius       float64 `json:"wheelRadius"`
	GripRating        float64 `json:"gripRating"`
	CoefficientDrag   float64 `json:"coefficientDrag"`
	FrontalArea       float64 `json:"frontalArea"`
	OutputPowerAmps   float64 `json:"outputPowerAmps"`
	BrakePower        float64 `json:"brakePower"`
	Weight            float64 `json:"weight"`
	RollingResistance float64 `json:"rollingResistance"`
}

// Specs converts the content record into simulation specs.
func (s ScooterConfig) Specs() physics.Specs {
	return physics.Specs{
		WheelBaseLength:   s.WheelBaseLength,
		WheelMaxAngle:     s.WheelMaxAngle,
		WheelRadius:       s.WheelRadius,
		GripRating:        s.GripRating,
		CoefficientDrag:   s.CoefficientDrag,
		FrontalArea:       s.FrontalArea,
		OutputPower:       s.OutputPowerAmps * physics.AmpToNewtonMeter,
		BrakePower:        s.BrakePower,
		Weight:            s.Weight,
		RollingResistance: s.RollingResistance,
	}
}

// UpgradeConfig is a purchasable upgrade.
type UpgradeConfig struct {
	ID     int     `json:"id"`
	Name   string  `json:"name"`
	Price  int     `json:"price"`
	Power  float64 `json:"power"`
	Weight float64 `json:"weight"`
}

// Upgrades converts the record into simulation upgrades.
func (u UpgradeConfig) Upgrades() physics.Upgrades {
	return physics.Upgrades{Power: u.Power, Weight: u.Weight}
}

// MissionConfig describes one mission course.
type MissionConfig struct {
	ID       int              `json:"id"`
	Name     string           `json:"name"`
	Start    physics.Vector2D `json:"start"`
	StartYaw float64          `json:"startYaw"`
	Finish   physics.Circle   `json:"finish"`
	// TimeLimit is in seconds; zero means no limit.
	TimeLimit float64 `json:"timeLimit"`
	// EasyTimeFactor multiplies TimeLimit in easy mode.
	EasyTimeFactor float64 `json:"easyTimeFactor"`
	Reward         int     `json:"reward"`
}

// Scooter returns the scooter with the given ID.
func (c *GameConfig) Scooter(id int) (ScooterConfig, bool) {
	for _, s := range c.Scooters {
		if s.ID == id {
			return s, true
		}
	}
	return ScooterConfig{}, false
}

// Upgrade returns the upgrade with the given ID.
func (c *GameConfig) Upgrade(id int) (UpgradeConfig, bool) {
	for _, u := range c.Upgrades {
		if u.ID == id {
			return u, true
		}
	}
	return UpgradeConfig{}, false
}

// Mission returns the mission with the given ID.
func (c *GameConfig) Mission(id int) (MissionConfig, bool) {
	for _, m := range c.Missions {
		if m.ID == id {
			return m, true
		}
	}
	return MissionConfig{}, false
}

// LoadConfig loads a configuration from a file
func LoadConfig(path string) (*GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}

	var config GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// LoadOrDefault loads path, or returns DefaultConfig when the file does not
// exist. found reports whether the file was read.
func LoadOrDefault(path string) (config *GameConfig, found bool, err error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), false, nil
	}
	config, err = LoadConfig(path)
	if err != nil {
		return nil, true, err
	}
	return config, true, nil
}

// SaveConfig saves a configuration to a file
func SaveConfig(config *GameConfig, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns the stock scooters and missions.
func DefaultConfig() *GameConfig {
	return &GameConfig{
		Display: DisplayConfig{
			Title:     "Senior Scooter Off-Road Fun",
			Width:     800,
			Height:    600,
			TitleSafe: Rect{X: 40, Y: 30, Width: 720, Height: 540},
			Full:      Rect{X: 0, Y: 0, Width: 800, Height: 600},
		},
		Simulation: SimulationConfig{
			UnitScale:    physics.MetersToWorldUnits,
			MaxDeltaTime: 0.1,
			TickRate:     60,
		},
		Audio: AudioConfig{
			EngineCue:             "audio/engine.wav",
			Volume:                0.8,
			BreakerMaxFailures:    3,
			BreakerTimeoutSeconds: 5,
		},
		Player: PlayerConfig{
			StartingMoney:   100,
			StartingScooter: 1,
		},
		Scooters: []ScooterConfig{
			{
				ID:                1,
				Name:              "Rascal 600",
				Price:             0,
				WheelBaseLength:   1.1,
				WheelMaxAngle:     0.6,
				WheelRadius:       0.175,
				GripRating:        4.5,
				CoefficientDrag:   0.9,
				FrontalArea:       0.7,
				OutputPowerAmps:   450,
				BrakePower:        30,
				Weight:            140,
				RollingResistance: 12,
			},
			{
				ID:                2,
				Name:              "Pride Victory",
				Price:             250,
				WheelBaseLength:   1.2,
				WheelMaxAngle:     0.55,
				WheelRadius:       0.2,
				GripRating:        5.5,
				CoefficientDrag:   0.85,
				FrontalArea:       0.75,
				OutputPowerAmps:   700,
				BrakePower:        40,
				Weight:            150,
				RollingResistance: 14,
			},
		},
		Upgrades: []UpgradeConfig{
			{ID: 1, Name: "Heavy Duty Battery", Price: 75, Power: 120, Weight: 6},
			{ID: 2, Name: "Aluminium Frame", Price: 120, Power: 0, Weight: -15},
		},
		Missions: []MissionConfig{
			{
				ID:             1,
				Name:           "Bingo Night",
				Start:          physics.Vector2D{X: 0, Y: 0},
				StartYaw:       0,
				Finish:         physics.Circle{Center: physics.Vector2D{X: 0, Y: -4000}, Radius: 400},
				TimeLimit:      90,
				EasyTimeFactor: 1.5,
				Reward:         50,
			},
			{
				ID:             2,
				Name:           "Pharmacy Run",
				Start:          physics.Vector2D{X: 0, Y: 0},
				StartYaw:       0.8,
				Finish:         physics.Circle{Center: physics.Vector2D{X: -6000, Y: -6000}, Radius: 500},
				TimeLimit:      150,
				EasyTimeFactor: 1.5,
				Reward:         120,
			},
		},
	}
}
