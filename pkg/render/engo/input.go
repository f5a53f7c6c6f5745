// pkg/render/engo/input.go
package engo

import (
	"strconv"
	"sync"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-ssorf/pkg/engine"
	"github.com/opd-ai/go-ssorf/pkg/physics"
)

// Button names registered by SetupInputBindings.
const (
	ButtonThrottle   = "throttle"
	ButtonBrake      = "brake"
	ButtonSteerLeft  = "steerLeft"
	ButtonSteerRight = "steerRight"
	ButtonConfirm    = "confirm"
	ButtonAbort      = "abort"
	ButtonPause      = "pause"
	ButtonEasy       = "toggleEasy"
	ButtonNext       = "nextScooter"
	ButtonBuyScooter = "buyScooter"
	ButtonBuyUpgrade = "buyUpgrade"
	ButtonZoomIn     = "zoomIn"
	ButtonZoomOut    = "zoomOut"
	ButtonResetZoom  = "resetZoom"
)

// missionButton is the button that selects mission n (1-9).
func missionButton(n int) string {
	return "mission" + strconv.Itoa(n)
}

// ButtonReader reports the state of named buttons.
type ButtonReader interface {
	Down(name string) bool
	JustPressed(name string) bool
}

// engoButtons reads engo's global input manager.
type engoButtons struct{}

func (engoButtons) Down(name string) bool {
	return engo.Input.Button(name).Down()
}

func (engoButtons) JustPressed(name string) bool {
	return engo.Input.Button(name).JustPressed()
}

// InputSystem samples the keyboard once per frame and hands the result to the
// state manager through engine.ControlSource.
type InputSystem struct {
	buttons ButtonReader

	mu      sync.Mutex
	current engine.Input
	// edges accumulates one-shot presses until the next Poll.
	edges engine.Input
}

// NewInputSystem creates an input system reading engo's keyboard.
func NewInputSystem() *InputSystem {
	return NewInputSystemWithButtons(engoButtons{})
}

// NewInputSystemWithButtons creates an input system over any button source.
func NewInputSystemWithButtons(buttons ButtonReader) *InputSystem {
	return &InputSystem{buttons: buttons}
}

// Remove satisfies the ecs.System interface
func (is *InputSystem) Remove(basic ecs.BasicEntity) {}

// Update samples held controls and latches presses.
func (is *InputSystem) Update(dt float32) {
	is.mu.Lock()
	defer is.mu.Unlock()

	is.current.Controls = is.readControls()

	b := is.buttons
	is.edges.Confirm = is.edges.Confirm || b.JustPressed(ButtonConfirm)
	is.edges.Abort = is.edges.Abort || b.JustPressed(ButtonAbort)
	is.edges.Pause = is.edges.Pause || b.JustPressed(ButtonPause)
	is.edges.ToggleEasy = is.edges.ToggleEasy || b.JustPressed(ButtonEasy)
	is.edges.NextScooter = is.edges.NextScooter || b.JustPressed(ButtonNext)
	is.edges.BuyScooter = is.edges.BuyScooter || b.JustPressed(ButtonBuyScooter)
	is.edges.BuyUpgrade = is.edges.BuyUpgrade || b.JustPressed(ButtonBuyUpgrade)

	for i := 1; i <= 9; i++ {
		if b.JustPressed(missionButton(i)) {
			is.edges.Mission = i
		}
	}
}

func (is *InputSystem) readControls() physics.Controls {
	var c physics.Controls
	if is.buttons.Down(ButtonThrottle) {
		c.Throttle = 1
	}
	if is.buttons.Down(ButtonBrake) {
		c.Brake = 1
	}
	// Positive steer turns left.
	if is.buttons.Down(ButtonSteerLeft) {
		c.Steer++
	}
	if is.buttons.Down(ButtonSteerRight) {
		c.Steer--
	}
	return c
}

// Poll implements engine.ControlSource. Presses are reported once.
func (is *InputSystem) Poll(deltaTime float64) engine.Input {
	is.mu.Lock()
	defer is.mu.Unlock()

	in := is.edges
	in.Controls = is.current.Controls
	is.edges = engine.Input{}
	return in
}

// menuBindings must agree with engine.MenuKeys.
var menuBindings = []struct {
	button string
	key    engo.Key
	legend string
}{
	{ButtonNext, engo.KeyN, "N: next scooter"},
	{ButtonBuyScooter, engo.KeyB, "B: buy scooter"},
	{ButtonBuyUpgrade, engo.KeyU, "U: buy upgrade"},
	{ButtonEasy, engo.KeyE, "E: easy mode"},
}

// SetupInputBindings sets up the key bindings for the game
func SetupInputBindings() {
	// Driving
	engo.Input.RegisterButton(ButtonThrottle, engo.KeyW, engo.KeyArrowUp)
	engo.Input.RegisterButton(ButtonBrake, engo.KeyS, engo.KeyArrowDown)
	engo.Input.RegisterButton(ButtonSteerLeft, engo.KeyA, engo.KeyArrowLeft)
	engo.Input.RegisterButton(ButtonSteerRight, engo.KeyD, engo.KeyArrowRight)

	// Screens
	engo.Input.RegisterButton(ButtonConfirm, engo.KeyEnter, engo.KeySpace)
	engo.Input.RegisterButton(ButtonAbort, engo.KeyEscape)
	engo.Input.RegisterButton(ButtonPause, engo.KeyP)

	for _, b := range menuBindings {
		engo.Input.RegisterButton(b.button, b.key)
	}

	digits := []engo.Key{
		engo.KeyOne, engo.KeyTwo, engo.KeyThree,
		engo.KeyFour, engo.KeyFive, engo.KeySix,
		engo.KeySeven, engo.KeyEight, engo.KeyNine,
	}
	for i, key := range digits {
		engo.Input.RegisterButton(missionButton(i+1), key)
	}

	// Camera
	engo.Input.RegisterButton(ButtonZoomIn, engo.KeyEquals)
	engo.Input.RegisterButton(ButtonZoomOut, engo.KeyDash)
	engo.Input.RegisterButton(ButtonResetZoom, engo.KeyR)
}
