package engine

import (
	"context"
	"io"

	"github.com/opd-ai/go-ssorf/pkg/audio"
	"github.com/opd-ai/go-ssorf/pkg/config"
	"github.com/opd-ai/go-ssorf/pkg/logging"
	"github.com/opd-ai/go-ssorf/pkg/physics"
)

func quietLogger() *logging.Logger {
	return logging.NewLoggerWithWriter(io.Discard)
}

// testConfig has a short mission (1) and one that cannot be finished in time (2).
func testConfig() *config.GameConfig {
	cfg := config.DefaultConfig()
	cfg.Missions = []config.MissionConfig{
		{
			ID:             1,
			Name:           "Short Hop",
			Finish:         physics.Circle{Center: physics.Vector2D{X: 0, Y: -50}, Radius: 10},
			TimeLimit:      30,
			EasyTimeFactor: 2,
			Reward:         40,
		},
		{
			ID:             2,
			Name:           "Long Haul",
			Start:          physics.Vector2D{X: 100, Y: 0},
			Finish:         physics.Circle{Center: physics.Vector2D{X: 0, Y: -100000}, Radius: 10},
			TimeLimit:      1,
			EasyTimeFactor: 2,
			Reward:         10,
		},
	}
	return cfg
}

// closableCue is a recording cue that also has to be released.
type closableCue struct {
	*audio.RecordingCue
}

func (c closableCue) Release() error {
	c.Commands = append(c.Commands, "release")
	return nil
}

// cueRecorder hands out recording cues and remembers them.
type cueRecorder struct {
	cues []*audio.RecordingCue
	err  error
}

func (r *cueRecorder) factory(ctx context.Context, path string) (audio.Cue, error) {
	if r.err != nil {
		return nil, r.err
	}
	cue := audio.NewRecordingCue()
	r.cues = append(r.cues, cue)
	return cue, nil
}

func (r *cueRecorder) last() *audio.RecordingCue {
	if len(r.cues) == 0 {
		return nil
	}
	return r.cues[len(r.cues)-1]
}

// inputQueue plays one Input per frame, then nothing.
type inputQueue struct {
	frames []Input
}

func (q *inputQueue) Poll(deltaTime float64) Input {
	if len(q.frames) == 0 {
		return Input{}
	}
	in := q.frames[0]
	q.frames = q.frames[1:]
	return in
}

func (q *inputQueue) push(frames ...Input) {
	q.frames = append(q.frames, frames...)
}

var fullThrottle = physics.Controls{Throttle: 1}
