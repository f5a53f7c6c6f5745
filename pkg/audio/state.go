// Package audio drives the engine sound cue from vehicle state.
//
// The sound engine exposes a cue whose playback state used to be inferred from
// IsPaused/IsStopped/IsPlaying/IsPrepared flags. Here the state is tracked
// explicitly and every command is issued only from a state that allows it.
package audio

import "fmt"

// State is the playback state of a cue.
type State int

const (
	// Prepared is a freshly loaded cue that has never played.
	Prepared State = iota
	Playing
	Paused
	Stopped
)

func (s State) String() string {
	switch s {
	case Prepared:
		return "prepared"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case Stopped:
		return "stopped"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// CanTransition reports whether a cue may move from one state to another.
func CanTransition(from, to State) bool {
	switch to {
	case Playing:
		return from == Prepared || from == Paused || from == Stopped
	case Paused:
		return from == Playing
	case Stopped:
		return from == Playing || from == Paused
	default:
		return false
	}
}

// StopOption selects how a cue stops.
type StopOption int

const (
	// StopAsAuthored lets the cue play its authored release tail.
	StopAsAuthored StopOption = iota
	// StopImmediate cuts the sound at once.
	StopImmediate
)

func (o StopOption) String() string {
	if o == StopImmediate {
		return "immediate"
	}
	return "as-authored"
}

// Continuous cue variables.
const (
	VarThrottle = "throttleValue"
	VarSpeed    = "Speed"
)

// Cue is a handle on one sound in the external sound engine.
type Cue interface {
	SetVariable(name string, value float64) error
	Play() error
	Pause() error
	Resume() error
	Stop(option StopOption) error
	// Reset rewinds a stopped cue so it can play again.
	Reset() error
}
