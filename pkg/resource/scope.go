// pkg/resource/scope.go
package resource

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/opd-ai/go-ssorf/pkg/logging"
)

// ErrScopeClosed is returned by Acquire after Close.
var ErrScopeClosed = errors.New("resource scope closed")

// Releaser is anything that must be released exactly once.
type Releaser interface {
	Release() error
}

// ReleaseFunc adapts a function to Releaser.
type ReleaseFunc func() error

// Release calls f.
func (f ReleaseFunc) Release() error {
	return f()
}

type held struct {
	name     string
	releaser Releaser
}

// Scope owns resources acquired while a screen is loaded and releases them
// in reverse order when it closes.
type Scope struct {
	name   string
	held   []held
	closed bool
	mu     sync.Mutex
	logger *logging.Logger
}

// NewScope creates an open scope.
func NewScope(name string, logger *logging.Logger) *Scope {
	if logger == nil {
		logger = logging.NewLogger()
	}
	return &Scope{name: name, logger: logger}
}

// Acquire registers r with the scope. If the scope is already closed, r is
// released immediately and ErrScopeClosed is returned with any release error.
func (s *Scope) Acquire(ctx context.Context, name string, r Releaser) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return errors.Join(ErrScopeClosed, release(name, r))
	}
	s.held = append(s.held, held{name: name, releaser: r})
	count := len(s.held)
	s.mu.Unlock()

	s.logger.Debug(ctx, "Resource acquired",
		"scope", s.name,
		"resource", name,
		"held", count,
	)
	return nil
}

// Len returns the number of resources still held.
func (s *Scope) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.held)
}

// Closed reports whether Close has run.
func (s *Scope) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Close releases every held resource, last acquired first. Every resource is
// released even if an earlier one fails; the failures are joined. Closing an
// already closed scope does nothing.
func (s *Scope) Close(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	toRelease := s.held
	s.held = nil
	s.mu.Unlock()

	var errs []error
	for i := len(toRelease) - 1; i >= 0; i-- {
		h := toRelease[i]
		if err := release(h.name, h.releaser); err != nil {
			s.logger.Error(ctx, "Resource release failed", err,
				"scope", s.name,
				"resource", h.name,
			)
			errs = append(errs, err)
		}
	}

	s.logger.Debug(ctx, "Resource scope closed",
		"scope", s.name,
		"released", len(toRelease),
		"failures", len(errs),
	)
	return errors.Join(errs...)
}

// release calls r.Release, turning a panic into an error.
func release(name string, r Releaser) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("release %s: panic: %v", name, p)
		}
	}()
	if err := r.Release(); err != nil {
		return fmt.Errorf("release %s: %w", name, err)
	}
	return nil
}
