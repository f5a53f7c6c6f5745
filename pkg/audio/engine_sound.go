package audio

import (
	"context"
	"errors"
	"fmt"

	"github.com/opd-ai/go-ssorf/pkg/logging"
)

// ErrCueReleased is returned when an EngineSound is used after Release.
var ErrCueReleased = errors.New("engine sound released")

// StateChangeFunc observes playback transitions.
type StateChangeFunc func(from, to State)

// EngineSound maps throttle and speed onto an engine cue.
type EngineSound struct {
	cue      Cue
	state    State
	released bool
	logger   *logging.Logger

	onChange StateChangeFunc
}

// NewEngineSound wraps a prepared cue.
func NewEngineSound(cue Cue, logger *logging.Logger) *EngineSound {
	if logger == nil {
		logger = logging.NewLogger()
	}
	return &EngineSound{
		cue:    cue,
		state:  Prepared,
		logger: logger,
	}
}

// OnStateChange registers fn to be called after every transition.
func (e *EngineSound) OnStateChange(fn StateChangeFunc) {
	e.onChange = fn
}

// State returns the current playback state.
func (e *EngineSound) State() State {
	return e.state
}

// Released reports whether Release has been called.
func (e *EngineSound) Released() bool {
	return e.released
}

// Update pushes the cue variables and starts or stops the cue. The sound plays
// while any throttle is applied and stops as authored when it is released.
func (e *EngineSound) Update(throttle, speed float64) error {
	if e.released {
		return ErrCueReleased
	}

	err := errors.Join(
		e.cue.SetVariable(VarThrottle, throttle+speed),
		e.cue.SetVariable(VarSpeed, speed),
	)
	if throttle != 0 {
		return errors.Join(err, e.play())
	}
	return errors.Join(err, e.stop())
}

// Pause pauses a playing cue. Other states are left alone.
func (e *EngineSound) Pause() error {
	if e.released {
		return ErrCueReleased
	}
	if e.state != Playing {
		return nil
	}
	if err := e.cue.Pause(); err != nil {
		return fmt.Errorf("pause engine cue: %w", err)
	}
	e.transition(Paused)
	return nil
}

// Release stops the cue if it is audible and marks the sound unusable.
// When a breaker refuses the stop, the stop goes to the cue behind it.
// Calling it again is a no-op.
func (e *EngineSound) Release() error {
	if e.released {
		return nil
	}
	err := e.stop()
	if errors.Is(err, ErrCueUnavailable) {
		if guarded, ok := e.cue.(interface{ Unwrap() Cue }); ok {
			err = e.stopOn(guarded.Unwrap())
		}
	}
	e.released = true
	e.logger.Debug(context.Background(), "engine sound released", "state", e.state.String())
	return err
}

func (e *EngineSound) play() error {
	var err error
	switch e.state {
	case Playing:
		return nil
	case Paused:
		err = e.cue.Resume()
	case Stopped:
		if err = e.cue.Reset(); err == nil {
			err = e.cue.Play()
		}
	case Prepared:
		err = e.cue.Play()
	}
	if err != nil {
		return fmt.Errorf("start engine cue from %s: %w", e.state, err)
	}
	e.transition(Playing)
	return nil
}

func (e *EngineSound) stop() error {
	return e.stopOn(e.cue)
}

func (e *EngineSound) stopOn(cue Cue) error {
	if !CanTransition(e.state, Stopped) {
		return nil
	}
	if err := cue.Stop(StopAsAuthored); err != nil {
		return fmt.Errorf("stop engine cue: %w", err)
	}
	e.transition(Stopped)
	return nil
}

func (e *EngineSound) transition(to State) {
	from := e.state
	e.state = to
	e.logger.Debug(context.Background(), "engine sound transition",
		"from", from.String(),
		"to", to.String(),
	)
	if e.onChange != nil {
		e.onChange(from, to)
	}
}
