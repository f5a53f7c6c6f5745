// pkg/event/event.go
package event

import (
	"sync"
)

// Type represents the type of event
type Type string

// Game event types
const (
	ScreenChanged     Type = "screen_changed"
	MissionStarted    Type = "mission_started"
	MissionEnded      Type = "mission_ended"
	VehicleSpawned    Type = "vehicle_spawned"
	AudioStateChanged Type = "audio_state_changed"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// Subscription identifies one registered handler.
type Subscription struct {
	ID     uint64
	Cancel func()
}

type registration struct {
	id      uint64
	handler Handler
}

// Bus manages event subscriptions and dispatching
type Bus struct {
	handlers map[Type][]registration
	nextID   uint64
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]registration),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type. Cancel on the
// returned subscription removes it; cancelling twice is harmless.
func (b *Bus) Subscribe(eventType Type, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], registration{id: id, handler: handler})

	return &Subscription{
		ID:     id,
		Cancel: func() { b.unsubscribe(eventType, id) },
	}
}

func (b *Bus) unsubscribe(eventType Type, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	regs := b.handlers[eventType]
	for i, r := range regs {
		if r.id == id {
			b.handlers[eventType] = append(regs[:i:i], regs[i+1:]...)
			return
		}
	}
}

// Publish sends an event to all subscribed handlers. Handlers run on the
// caller's goroutine in subscription order and may subscribe or cancel.
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	regs := append([]registration(nil), b.handlers[event.GetType()]...)
	b.mu.RUnlock()

	for _, r := range regs {
		r.handler(event)
	}
}

// ScreenEvent reports a change of the active screen.
type ScreenEvent struct {
	BaseEvent
	From string
	To   string
}

// NewScreenEvent creates a screen change event
func NewScreenEvent(source interface{}, from, to string) *ScreenEvent {
	return &ScreenEvent{
		BaseEvent: BaseEvent{EventType: ScreenChanged, Source: source},
		From:      from,
		To:        to,
	}
}

// MissionOutcome describes how a mission ended.
type MissionOutcome string

const (
	OutcomeCompleted MissionOutcome = "completed"
	OutcomeFailed    MissionOutcome = "failed"
	OutcomeAborted   MissionOutcome = "aborted"
)

// MissionEvent contains information about a mission starting or ending
type MissionEvent struct {
	BaseEvent
	MissionID int
	Easy      bool
	// Outcome, Elapsed and Reward are set on MissionEnded only.
	Outcome MissionOutcome
	Elapsed float64
	Reward  int
}

// NewMissionStartedEvent creates a mission start event
func NewMissionStartedEvent(source interface{}, missionID int, easy bool) *MissionEvent {
	return &MissionEvent{
		BaseEvent: BaseEvent{EventType: MissionStarted, Source: source},
		MissionID: missionID,
		Easy:      easy,
	}
}

// NewMissionEndedEvent creates a mission end event
func NewMissionEndedEvent(source interface{}, missionID int, outcome MissionOutcome, elapsed float64, reward int) *MissionEvent {
	return &MissionEvent{
		BaseEvent: BaseEvent{EventType: MissionEnded, Source: source},
		MissionID: missionID,
		Outcome:   outcome,
		Elapsed:   elapsed,
		Reward:    reward,
	}
}

// VehicleEvent contains information about a spawned vehicle
type VehicleEvent struct {
	BaseEvent
	ScooterID int
	X, Z, Yaw float64
}

// NewVehicleSpawnedEvent creates a vehicle spawn event
func NewVehicleSpawnedEvent(source interface{}, scooterID int, x, z, yaw float64) *VehicleEvent {
	return &VehicleEvent{
		BaseEvent: BaseEvent{EventType: VehicleSpawned, Source: source},
		ScooterID: scooterID,
		X:         x,
		Z:         z,
		Yaw:       yaw,
	}
}

// AudioEvent reports an engine sound transition.
type AudioEvent struct {
	BaseEvent
	From string
	To   string
}

// NewAudioStateEvent creates an audio state change event
func NewAudioStateEvent(source interface{}, from, to string) *AudioEvent {
	return &AudioEvent{
		BaseEvent: BaseEvent{EventType: AudioStateChanged, Source: source},
		From:      from,
		To:        to,
	}
}
