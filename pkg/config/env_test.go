package config

import (
	"strings"
	"testing"
	"time"
)

func createValidEnvConfig() *EnvironmentConfig {
	return &EnvironmentConfig{
		Width:                   1024,
		Height:                  768,
		UnitScale:               39.37,
		MaxDeltaTime:            0.1,
		AudioBreakerMaxFailures: 3,
		AudioBreakerTimeout:     5 * time.Second,
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	for _, key := range []string{
		EnvWidth, EnvHeight, EnvFullscreen, EnvUnitScale,
		EnvMaxDelta, EnvAudioBreakerFails, EnvAudioBreakerTimeout,
	} {
		t.Setenv(key, "")
	}

	t.Run("DefaultValues", func(t *testing.T) {
		env, err := LoadConfigFromEnv(nil)
		if err != nil {
			t.Fatalf("LoadConfigFromEnv() failed: %v", err)
		}
		if env.Width != 800 {
			t.Errorf("Expected Width 800, got %d", env.Width)
		}
		if env.Fullscreen {
			t.Error("Expected Fullscreen false")
		}
		if env.AudioBreakerTimeout != 5*time.Second {
			t.Errorf("Expected AudioBreakerTimeout 5s, got %v", env.AudioBreakerTimeout)
		}
	})

	t.Run("EnvironmentOverrides", func(t *testing.T) {
		t.Setenv(EnvWidth, "1280")
		t.Setenv(EnvHeight, "720")
		t.Setenv(EnvFullscreen, "true")
		t.Setenv(EnvUnitScale, "1")
		t.Setenv(EnvMaxDelta, "0.05")
		t.Setenv(EnvAudioBreakerFails, "7")
		t.Setenv(EnvAudioBreakerTimeout, "250ms")

		env, err := LoadConfigFromEnv(DefaultConfig())
		if err != nil {
			t.Fatalf("LoadConfigFromEnv() failed: %v", err)
		}
		if env.Width != 1280 || env.Height != 720 {
			t.Errorf("Expected 1280x720, got %dx%d", env.Width, env.Height)
		}
		if !env.Fullscreen {
			t.Error("Expected Fullscreen true")
		}
		if env.UnitScale != 1 {
			t.Errorf("Expected UnitScale 1, got %f", env.UnitScale)
		}
		if env.MaxDeltaTime != 0.05 {
			t.Errorf("Expected MaxDeltaTime 0.05, got %f", env.MaxDeltaTime)
		}
		if env.AudioBreakerMaxFailures != 7 {
			t.Errorf("Expected AudioBreakerMaxFailures 7, got %d", env.AudioBreakerMaxFailures)
		}
		if env.AudioBreakerTimeout != 250*time.Millisecond {
			t.Errorf("Expected AudioBreakerTimeout 250ms, got %v", env.AudioBreakerTimeout)
		}

		cfg := DefaultConfig()
		cfg.ApplyEnvironment(env)
		if cfg.Display.Width != 1280 || !cfg.Display.Fullscreen {
			t.Errorf("Expected overrides applied, got %+v", cfg.Display)
		}
		if cfg.Audio.BreakerTimeoutSeconds != 0.25 {
			t.Errorf("Expected BreakerTimeoutSeconds 0.25, got %f", cfg.Audio.BreakerTimeoutSeconds)
		}
	})

	t.Run("MalformedValues", func(t *testing.T) {
		tests := []struct {
			key   string
			value string
		}{
			{EnvWidth, "wide"},
			{EnvFullscreen, "maybe"},
			{EnvUnitScale, "inches"},
			{EnvAudioBreakerTimeout, "soon"},
		}
		for _, tt := range tests {
			t.Run(tt.key, func(t *testing.T) {
				t.Setenv(tt.key, tt.value)
				if _, err := LoadConfigFromEnv(nil); err == nil {
					t.Errorf("Expected error for %s=%q", tt.key, tt.value)
				}
			})
		}
	})
}

func TestEnvironmentConfig_Validate(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(c *EnvironmentConfig)
		errorField string
	}{
		{"ValidConfig", func(c *EnvironmentConfig) {}, ""},
		{"WidthTooSmall", func(c *EnvironmentConfig) { c.Width = 100 }, "Width"},
		{"HeightTooLarge", func(c *EnvironmentConfig) { c.Height = 10000 }, "Height"},
		{"ZeroUnitScale", func(c *EnvironmentConfig) { c.UnitScale = 0 }, "UnitScale"},
		{"HugeDelta", func(c *EnvironmentConfig) { c.MaxDeltaTime = 2 }, "MaxDeltaTime"},
		{"NoBreakerFailures", func(c *EnvironmentConfig) { c.AudioBreakerMaxFailures = 0 }, "AudioBreakerMaxFailures"},
		{"NegativeBreakerTimeout", func(c *EnvironmentConfig) { c.AudioBreakerTimeout = -time.Second }, "AudioBreakerTimeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := createValidEnvConfig()
			tt.mutate(c)
			err := c.Validate()
			if tt.errorField == "" {
				if err != nil {
					t.Errorf("Expected no error, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Expected error for %s", tt.errorField)
			}
			if !strings.Contains(err.Error(), tt.errorField) {
				t.Errorf("Expected error to mention %s, got %v", tt.errorField, err)
			}
		})
	}
}
