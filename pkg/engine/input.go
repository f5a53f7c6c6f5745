// pkg/engine/input.go
package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/opd-ai/go-ssorf/pkg/physics"
)

// Input is one frame of player input. Button fields are edge triggered: they
// are true only on the frame the button went down.
type Input struct {
	Controls physics.Controls

	Confirm bool
	Abort   bool
	Pause   bool

	// Mission is the mission ID chosen on the menu, 0 for none.
	Mission     int
	ToggleEasy  bool
	NextScooter bool
	BuyScooter  bool
	BuyUpgrade  bool
}

// ControlSource produces input once per frame.
type ControlSource interface {
	Poll(deltaTime float64) Input
}

// ControlSourceFunc adapts a function to ControlSource.
type ControlSourceFunc func(deltaTime float64) Input

// Poll calls f.
func (f ControlSourceFunc) Poll(deltaTime float64) Input {
	return f(deltaTime)
}

// NoInput is a ControlSource that never presses anything.
var NoInput = ControlSourceFunc(func(float64) Input { return Input{} })

// ScriptStep holds controls for a duration in seconds.
type ScriptStep struct {
	Duration float64
	Controls physics.Controls
}

// ScriptedSource replays driving controls on a timeline. After the last step
// it returns zero controls.
type ScriptedSource struct {
	steps   []ScriptStep
	elapsed float64
}

// NewScriptedSource creates a source that plays steps in order.
func NewScriptedSource(steps []ScriptStep) *ScriptedSource {
	return &ScriptedSource{steps: steps}
}

// Poll returns the controls active at the current time and then advances the
// clock by deltaTime.
func (s *ScriptedSource) Poll(deltaTime float64) Input {
	var in Input
	at := s.elapsed
	for _, step := range s.steps {
		if at < step.Duration {
			in.Controls = step.Controls
			break
		}
		at -= step.Duration
	}
	s.elapsed += deltaTime
	return in
}

// Done reports whether every step has played.
func (s *ScriptedSource) Done() bool {
	total := 0.0
	for _, step := range s.steps {
		total += step.Duration
	}
	return s.elapsed >= total
}

// ParseScript reads steps written as "seconds:throttle:steer:brake" separated
// by commas, for example "3:1:0:0,2:0.5:-1:0". Missing trailing values are 0.
func ParseScript(script string) ([]ScriptStep, error) {
	script = strings.TrimSpace(script)
	if script == "" {
		return nil, nil
	}

	var steps []ScriptStep
	for i, part := range strings.Split(script, ",") {
		fields := strings.Split(strings.TrimSpace(part), ":")
		if len(fields) > 4 {
			return nil, fmt.Errorf("step %d: too many fields in %q", i+1, part)
		}

		values := make([]float64, 4)
		for j, field := range fields {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, fmt.Errorf("step %d: invalid number %q: %w", i+1, field, err)
			}
			values[j] = v
		}
		if values[0] <= 0 {
			return nil, fmt.Errorf("step %d: duration must be positive", i+1)
		}

		steps = append(steps, ScriptStep{
			Duration: values[0],
			Controls: physics.Controls{
				Throttle: values[1],
				Steer:    values[2],
				Brake:    values[3],
			},
		})
	}
	return steps, nil
}
