// pkg/render/engo/audio.go
package engo

import (
	"context"
	"fmt"
	"sync"

	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-ssorf/pkg/audio"
	"github.com/opd-ai/go-ssorf/pkg/engine"
)

// Player is the part of common.Player a cue drives.
type Player interface {
	Play()
	Pause()
	Rewind() error
	SetVolume(volume float64)
	Close() error
}

// LoopingPlayer can switch looping on and off.
type LoopingPlayer interface {
	Player
	SetLoop(loop bool)
}

type enginePlayer struct {
	*common.Player
}

func (p enginePlayer) SetLoop(loop bool) {
	p.Repeat = loop
}

// PlayerCue drives an engo audio player as an engine sound cue. The throttle
// variable scales the volume; the speed variable is kept for reporting.
type PlayerCue struct {
	mu       sync.Mutex
	player   LoopingPlayer
	volume   float64
	throttle float64
	speed    float64
}

// NewPlayerCue wraps player. Volume is the full-throttle volume in [0, 1].
func NewPlayerCue(player LoopingPlayer, volume float64) *PlayerCue {
	cue := &PlayerCue{player: player, volume: clampUnit(volume)}
	player.SetVolume(cue.currentVolume())
	return cue
}

// SetVariable implements audio.Cue.
func (c *PlayerCue) SetVariable(name string, value float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch name {
	case audio.VarThrottle:
		c.throttle = value
		c.player.SetVolume(c.currentVolume())
	case audio.VarSpeed:
		c.speed = value
	default:
		return fmt.Errorf("unknown cue variable %q", name)
	}
	return nil
}

// The throttle variable carries throttle plus speed, so anything moving is
// at least at idle volume.
func (c *PlayerCue) currentVolume() float64 {
	return c.volume * clampUnit(0.3+0.7*c.throttle)
}

// Speed returns the last speed variable.
func (c *PlayerCue) Speed() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.speed
}

// Play implements audio.Cue.
func (c *PlayerCue) Play() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.player.SetLoop(true)
	c.player.Play()
	return nil
}

// Pause implements audio.Cue.
func (c *PlayerCue) Pause() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.player.Pause()
	return nil
}

// Resume implements audio.Cue.
func (c *PlayerCue) Resume() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.player.Play()
	return nil
}

// Stop implements audio.Cue. StopAsAuthored lets the current loop finish.
func (c *PlayerCue) Stop(option audio.StopOption) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.player.SetLoop(false)
	if option == audio.StopImmediate {
		c.player.Pause()
	}
	return nil
}

// Reset implements audio.Cue.
func (c *PlayerCue) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.player.Pause()
	return c.player.Rewind()
}

// Release closes the player.
func (c *PlayerCue) Release() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.player.Close()
}

func clampUnit(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

// PlayerCueFactory loads audio files through engo and wraps them as cues.
// The world needs a common.AudioSystem for them to be heard.
func PlayerCueFactory(volume float64) engine.CueFactory {
	return func(ctx context.Context, path string) (audio.Cue, error) {
		if _, err := engo.Files.Resource(path); err != nil {
			if err := engo.Files.Load(path); err != nil {
				return nil, fmt.Errorf("loading engine cue %s: %w", path, err)
			}
		}
		player, err := common.LoadedPlayer(path)
		if err != nil {
			return nil, fmt.Errorf("opening engine cue %s: %w", path, err)
		}
		return NewPlayerCue(enginePlayer{player}, volume), nil
	}
}
