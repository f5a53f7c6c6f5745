// pkg/config/env.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Environment variables read by LoadConfigFromEnv.
const (
	EnvWidth               = "SSORF_WIDTH"
	EnvHeight              = "SSORF_HEIGHT"
	EnvFullscreen          = "SSORF_FULLSCREEN"
	EnvUnitScale           = "SSORF_UNIT_SCALE"
	EnvMaxDelta            = "SSORF_MAX_DELTA"
	EnvAudioBreakerFails   = "SSORF_AUDIO_BREAKER_FAILS"
	EnvAudioBreakerTimeout = "SSORF_AUDIO_BREAKER_TIMEOUT"
)

// EnvironmentConfig holds the settings that may be overridden from the
// environment. Unset variables keep the value of the base configuration.
type EnvironmentConfig struct {
	Width      int
	Height     int
	Fullscreen bool

	UnitScale    float64
	MaxDeltaTime float64

	AudioBreakerMaxFailures int
	AudioBreakerTimeout     time.Duration
}

// LoadConfigFromEnv reads overrides on top of base and validates the result.
// A nil base uses DefaultConfig.
func LoadConfigFromEnv(base *GameConfig) (*EnvironmentConfig, error) {
	if base == nil {
		base = DefaultConfig()
	}

	env := &EnvironmentConfig{
		Width:                   base.Display.Width,
		Height:                  base.Display.Height,
		Fullscreen:              base.Display.Fullscreen,
		UnitScale:               base.Simulation.UnitScale,
		MaxDeltaTime:            base.Simulation.MaxDeltaTime,
		AudioBreakerMaxFailures: base.Audio.BreakerMaxFailures,
		AudioBreakerTimeout:     time.Duration(base.Audio.BreakerTimeoutSeconds * float64(time.Second)),
	}

	var err error
	if env.Width, err = getEnvInt(EnvWidth, env.Width); err != nil {
		return nil, err
	}
	if env.Height, err = getEnvInt(EnvHeight, env.Height); err != nil {
		return nil, err
	}
	if env.Fullscreen, err = getEnvBool(EnvFullscreen, env.Fullscreen); err != nil {
		return nil, err
	}
	if env.UnitScale, err = getEnvFloat(EnvUnitScale, env.UnitScale); err != nil {
		return nil, err
	}
	if env.MaxDeltaTime, err = getEnvFloat(EnvMaxDelta, env.MaxDeltaTime); err != nil {
		return nil, err
	}
	if env.AudioBreakerMaxFailures, err = getEnvInt(EnvAudioBreakerFails, env.AudioBreakerMaxFailures); err != nil {
		return nil, err
	}
	if env.AudioBreakerTimeout, err = getEnvDuration(EnvAudioBreakerTimeout, env.AudioBreakerTimeout); err != nil {
		return nil, err
	}

	if err := env.Validate(); err != nil {
		return nil, fmt.Errorf("invalid environment configuration: %w", err)
	}
	return env, nil
}

// Validate checks the ranges of every field.
func (c *EnvironmentConfig) Validate() error {
	if c.Width < 320 || c.Width > 7680 {
		return fmt.Errorf("Width must be between 320 and 7680, got %d", c.Width)
	}
	if c.Height < 240 || c.Height > 4320 {
		return fmt.Errorf("Height must be between 240 and 4320, got %d", c.Height)
	}
	if c.UnitScale <= 0 {
		return fmt.Errorf("UnitScale must be positive, got %f", c.UnitScale)
	}
	if c.MaxDeltaTime <= 0 || c.MaxDeltaTime > 1 {
		return fmt.Errorf("MaxDeltaTime must be in (0, 1] seconds, got %f", c.MaxDeltaTime)
	}
	if c.AudioBreakerMaxFailures < 1 {
		return fmt.Errorf("AudioBreakerMaxFailures must be at least 1, got %d", c.AudioBreakerMaxFailures)
	}
	if c.AudioBreakerTimeout <= 0 {
		return fmt.Errorf("AudioBreakerTimeout must be positive, got %v", c.AudioBreakerTimeout)
	}
	return nil
}

// ApplyEnvironment copies env onto the configuration.
func (c *GameConfig) ApplyEnvironment(env *EnvironmentConfig) {
	c.Display.Width = env.Width
	c.Display.Height = env.Height
	c.Display.Fullscreen = env.Fullscreen
	c.Simulation.UnitScale = env.UnitScale
	c.Simulation.MaxDeltaTime = env.MaxDeltaTime
	c.Audio.BreakerMaxFailures = env.AudioBreakerMaxFailures
	c.Audio.BreakerTimeoutSeconds = env.AudioBreakerTimeout.Seconds()
}

func getEnvInt(key string, fallback int) (int, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return parsed, nil
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return parsed, nil
}

func getEnvBool(key string, fallback bool) (bool, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return parsed, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return parsed, nil
}
