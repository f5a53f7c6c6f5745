package audio

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"

	"github.com/opd-ai/go-ssorf/pkg/logging"
)

// ErrCueUnavailable is returned while the breaker refuses cue commands.
var ErrCueUnavailable = errors.New("engine cue unavailable")

// BreakerSettings configures a GuardedCue.
type BreakerSettings struct {
	Name string
	// MaxFailures is the number of consecutive failed commands that opens the breaker.
	MaxFailures int
	// Timeout is how long the breaker stays open before probing the cue again.
	Timeout time.Duration
}

// GuardedCue routes every command through a circuit breaker so a failing
// audio device is skipped instead of failing every frame.
type GuardedCue struct {
	cue     Cue
	breaker *gobreaker.CircuitBreaker
	logger  *logging.Logger
}

// NewGuardedCue wraps cue with a circuit breaker.
func NewGuardedCue(cue Cue, settings BreakerSettings, logger *logging.Logger) *GuardedCue {
	if logger == nil {
		logger = logging.NewLogger()
	}
	if settings.Name == "" {
		settings.Name = "engine-cue"
	}
	if settings.MaxFailures < 1 {
		settings.MaxFailures = 1
	}

	maxFailures := uint32(settings.MaxFailures)
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        settings.Name,
		MaxRequests: 1,
		Timeout:     settings.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn(context.Background(), "audio circuit breaker state changed",
				"name", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	})

	return &GuardedCue{
		cue:     cue,
		breaker: breaker,
		logger:  logger,
	}
}

// BreakerState returns the current breaker state.
func (g *GuardedCue) BreakerState() gobreaker.State {
	return g.breaker.State()
}

// Unwrap returns the cue behind the breaker.
func (g *GuardedCue) Unwrap() Cue {
	return g.cue
}

// SetVariable implements Cue.
func (g *GuardedCue) SetVariable(name string, value float64) error {
	return g.execute("set "+name, func() error { return g.cue.SetVariable(name, value) })
}

// Play implements Cue.
func (g *GuardedCue) Play() error {
	return g.execute("play", g.cue.Play)
}

// Pause implements Cue.
func (g *GuardedCue) Pause() error {
	return g.execute("pause", g.cue.Pause)
}

// Resume implements Cue.
func (g *GuardedCue) Resume() error {
	return g.execute("resume", g.cue.Resume)
}

// Stop implements Cue.
func (g *GuardedCue) Stop(option StopOption) error {
	return g.execute("stop", func() error { return g.cue.Stop(option) })
}

// Reset implements Cue.
func (g *GuardedCue) Reset() error {
	return g.execute("reset", g.cue.Reset)
}

func (g *GuardedCue) execute(op string, fn func() error) error {
	_, err := g.breaker.Execute(func() (interface{}, error) {
		return nil, fn()
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%s: %w", op, ErrCueUnavailable)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
