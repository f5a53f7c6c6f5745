package audio

import "fmt"

// RecordingCue is an in-memory Cue. It remembers every command and the last
// value of each variable, which makes it usable as a silent cue for headless
// runs.
type RecordingCue struct {
	Commands  []string
	Variables map[string]float64
	// Err, when set, is returned by every command.
	Err error
}

// NewRecordingCue creates an empty RecordingCue.
func NewRecordingCue() *RecordingCue {
	return &RecordingCue{Variables: make(map[string]float64)}
}

// Count returns how many times command was issued.
func (r *RecordingCue) Count(command string) int {
	n := 0
	for _, c := range r.Commands {
		if c == command {
			n++
		}
	}
	return n
}

// SetVariable implements Cue.
func (r *RecordingCue) SetVariable(name string, value float64) error {
	if r.Err != nil {
		return r.Err
	}
	r.Variables[name] = value
	return nil
}

// Play implements Cue.
func (r *RecordingCue) Play() error { return r.record("play") }

// Pause implements Cue.
func (r *RecordingCue) Pause() error { return r.record("pause") }

// Resume implements Cue.
func (r *RecordingCue) Resume() error { return r.record("resume") }

// Reset implements Cue.
func (r *RecordingCue) Reset() error { return r.record("reset") }

// Stop implements Cue.
func (r *RecordingCue) Stop(option StopOption) error {
	return r.record(fmt.Sprintf("stop:%s", option))
}

func (r *RecordingCue) record(command string) error {
	if r.Err != nil {
		return r.Err
	}
	r.Commands = append(r.Commands, command)
	return nil
}
