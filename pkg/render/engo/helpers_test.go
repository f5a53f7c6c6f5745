package engo

import (
	"io"
	"testing"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-ssorf/pkg/entity"
	"github.com/opd-ai/go-ssorf/pkg/logging"
	"github.com/opd-ai/go-ssorf/pkg/physics"
)

// fakeButtons is a ButtonReader driven by tests.
type fakeButtons struct {
	down    map[string]bool
	pressed map[string]bool
}

func newFakeButtons() *fakeButtons {
	return &fakeButtons{down: map[string]bool{}, pressed: map[string]bool{}}
}

func (b *fakeButtons) Down(name string) bool        { return b.down[name] }
func (b *fakeButtons) JustPressed(name string) bool { return b.pressed[name] }

// release clears one-shot presses, as engo does between frames.
func (b *fakeButtons) release() {
	b.pressed = map[string]bool{}
}

// fakeSink records entities added to and removed from it.
type fakeSink struct {
	added   []*ecs.BasicEntity
	removed []ecs.BasicEntity
}

func (s *fakeSink) Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent) {
	s.added = append(s.added, basic)
}

func (s *fakeSink) Remove(basic ecs.BasicEntity) {
	s.removed = append(s.removed, basic)
}

// withMailbox installs a message manager so render component setters can
// dispatch without a running engine.
func withMailbox(t *testing.T) {
	t.Helper()
	previous := engo.Mailbox
	engo.Mailbox = &engo.MessageManager{}
	t.Cleanup(func() { engo.Mailbox = previous })
}

func quietLogger() *logging.Logger {
	return logging.NewLoggerWithWriter(io.Discard)
}

func newTestVehicle(x, z, yaw float64) *entity.Vehicle {
	v := entity.NewVehicle(1, 1, "Rascal 600", physics.Specs{
		WheelBaseLength: 1, WheelMaxAngle: 0.5, WheelRadius: 0.2,
		GripRating: 5, OutputPower: 10, BrakePower: 20, Weight: 100,
	}, physics.Integrator{UnitScale: 1})
	v.SetStartingPosition(yaw, mgl64.Vec3{x, 0, z})
	return v
}

func newTestCamera() *CameraSystem {
	cs := NewCameraSystem(800, 600)
	cs.buttons = newFakeButtons()
	return cs
}
