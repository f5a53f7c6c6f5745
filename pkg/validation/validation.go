// Package validation checks content records before they reach the simulation.
// The integrator assumes well-formed specs; this is where that assumption is
// enforced, once, at load time.
package validation

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/opd-ai/go-ssorf/pkg/config"
	"github.com/opd-ai/go-ssorf/pkg/physics"
)

// MaxNameLen bounds scooter, upgrade and mission names.
const MaxNameLen = 32

var (
	// ErrNoScooters is returned when a configuration has no scooters.
	ErrNoScooters = errors.New("no scooters configured")
	// ErrNoMissions is returned when a configuration has no missions.
	ErrNoMissions = errors.New("no missions configured")
)

// ValidateName validates a display name for content.
func ValidateName(name string) error {
	if !utf8.ValidString(name) {
		return fmt.Errorf("name contains invalid UTF-8 characters")
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if utf8.RuneCountInString(trimmed) > MaxNameLen {
		return fmt.Errorf("name too long: %d characters (max %d)", utf8.RuneCountInString(trimmed), MaxNameLen)
	}
	for _, r := range trimmed {
		if unicode.IsControl(r) {
			return fmt.Errorf("name contains control characters")
		}
	}
	return nil
}

// ValidateSpecs checks that every spec the integrator divides by, or relies
// on being positive, is finite and positive.
func ValidateSpecs(specs physics.Specs) error {
	positive := []struct {
		field string
		value float64
	}{
		{"wheelBaseLength", specs.WheelBaseLength},
		{"wheelMaxAngle", specs.WheelMaxAngle},
		{"wheelRadius", specs.WheelRadius},
		{"gripRating", specs.GripRating},
		{"coefficientDrag", specs.CoefficientDrag},
		{"frontalArea", specs.FrontalArea},
		{"outputPower", specs.OutputPower},
		{"brakePower", specs.BrakePower},
		{"weight", specs.Weight},
	}

	var errs []error
	for _, p := range positive {
		if !isFinite(p.value) || p.value <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive and finite, got %v", p.field, p.value))
		}
	}
	if !isFinite(specs.RollingResistance) || specs.RollingResistance < 0 {
		errs = append(errs, fmt.Errorf("rollingResistance must be non-negative and finite, got %v", specs.RollingResistance))
	}
	if specs.WheelMaxAngle >= math.Pi/2 {
		errs = append(errs, fmt.Errorf("wheelMaxAngle must be below pi/2, got %v", specs.WheelMaxAngle))
	}
	return errors.Join(errs...)
}

// ValidateScooter validates a scooter record and the specs it produces.
func ValidateScooter(s config.ScooterConfig) error {
	if err := ValidateName(s.Name); err != nil {
		return fmt.Errorf("scooter %d: %w", s.ID, err)
	}
	if s.Price < 0 {
		return fmt.Errorf("scooter %d: price cannot be negative: %d", s.ID, s.Price)
	}
	if err := ValidateSpecs(s.Specs()); err != nil {
		return fmt.Errorf("scooter %d: %w", s.ID, err)
	}
	return nil
}

// ValidateUpgrade validates an upgrade record.
func ValidateUpgrade(u config.UpgradeConfig) error {
	if err := ValidateName(u.Name); err != nil {
		return fmt.Errorf("upgrade %d: %w", u.ID, err)
	}
	if u.Price < 0 {
		return fmt.Errorf("upgrade %d: price cannot be negative: %d", u.ID, u.Price)
	}
	if !isFinite(u.Power) || !isFinite(u.Weight) {
		return fmt.Errorf("upgrade %d: power and weight must be finite", u.ID)
	}
	return nil
}

// ValidateUpgradedSpecs checks that a set of upgrades leaves a scooter drivable.
func ValidateUpgradedSpecs(specs physics.Specs, upgrades ...physics.Upgrades) error {
	for _, u := range upgrades {
		specs = specs.WithUpgrades(u)
	}
	return ValidateSpecs(specs)
}

// ValidateMission validates a mission record.
func ValidateMission(m config.MissionConfig) error {
	if m.ID <= 0 {
		return fmt.Errorf("mission ID must be positive, got %d", m.ID)
	}
	if err := ValidateName(m.Name); err != nil {
		return fmt.Errorf("mission %d: %w", m.ID, err)
	}
	if !isFinite(m.Finish.Radius) || m.Finish.Radius <= 0 {
		return fmt.Errorf("mission %d: finish radius must be positive, got %v", m.ID, m.Finish.Radius)
	}
	if m.Finish.Contains(m.Start) {
		return fmt.Errorf("mission %d: start lies inside the finish zone", m.ID)
	}
	if m.TimeLimit < 0 {
		return fmt.Errorf("mission %d: time limit cannot be negative: %v", m.ID, m.TimeLimit)
	}
	if m.EasyTimeFactor < 0 {
		return fmt.Errorf("mission %d: easy time factor cannot be negative: %v", m.ID, m.EasyTimeFactor)
	}
	if m.Reward < 0 {
		return fmt.Errorf("mission %d: reward cannot be negative: %d", m.ID, m.Reward)
	}
	return nil
}

// ValidateGameConfig validates every record and the cross references between
// them. All problems are reported together.
func ValidateGameConfig(c *config.GameConfig) error {
	var errs []error
	if len(c.Scooters) == 0 {
		errs = append(errs, ErrNoScooters)
	}
	if len(c.Missions) == 0 {
		errs = append(errs, ErrNoMissions)
	}

	scooterIDs := make(map[int]bool)
	for _, s := range c.Scooters {
		if scooterIDs[s.ID] {
			errs = append(errs, fmt.Errorf("duplicate scooter ID %d", s.ID))
		}
		scooterIDs[s.ID] = true
		if err := ValidateScooter(s); err != nil {
			errs = append(errs, err)
		}
	}
	for _, u := range c.Upgrades {
		if err := ValidateUpgrade(u); err != nil {
			errs = append(errs, err)
		}
	}
	// Upgrades apply to every scooter, so a scooter must survive every
	// lightening and weakening upgrade at once.
	worst := worstUpgrades(c.Upgrades)
	for _, s := range c.Scooters {
		if ValidateScooter(s) != nil {
			continue
		}
		if err := ValidateUpgradedSpecs(s.Specs(), worst...); err != nil {
			errs = append(errs, fmt.Errorf("scooter %d with upgrades: %w", s.ID, err))
		}
	}
	missionIDs := make(map[int]bool)
	for _, m := range c.Missions {
		if missionIDs[m.ID] {
			errs = append(errs, fmt.Errorf("duplicate mission ID %d", m.ID))
		}
		missionIDs[m.ID] = true
		if err := ValidateMission(m); err != nil {
			errs = append(errs, err)
		}
	}
	if len(c.Scooters) > 0 && !scooterIDs[c.Player.StartingScooter] {
		errs = append(errs, fmt.Errorf("starting scooter %d is not configured", c.Player.StartingScooter))
	}
	return errors.Join(errs...)
}

func worstUpgrades(upgrades []config.UpgradeConfig) []physics.Upgrades {
	out := make([]physics.Upgrades, 0, len(upgrades))
	for _, u := range upgrades {
		out = append(out, physics.Upgrades{Power: math.Min(u.Power, 0), Weight: math.Min(u.Weight, 0)})
	}
	return out
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
