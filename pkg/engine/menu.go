// pkg/engine/menu.go
package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/opd-ai/go-ssorf/pkg/config"
	"github.com/opd-ai/go-ssorf/pkg/entity"
	"github.com/opd-ai/go-ssorf/pkg/event"
	"github.com/opd-ai/go-ssorf/pkg/logging"
)

// ErrUnknownMission is returned when a mission ID is not in the catalog.
var ErrUnknownMission = errors.New("unknown mission")

// ErrNothingToBuy is returned when every catalog item is already owned.
var ErrNothingToBuy = errors.New("nothing left to buy")

// MenuKeys is the key legend drawn under the mission list.
const MenuKeys = "N: next scooter  B: buy scooter  U: buy upgrade  E: easy mode"

// Selection is a mission chosen on the menu.
type Selection struct {
	MissionID int
	Easy      bool
}

// Menu lists missions, sells scooters and upgrades and reports the mission
// the player picked.
type Menu struct {
	cfg    *config.GameConfig
	player *Player
	bounds config.Rect
	logger *logging.Logger

	easy    bool
	pending *Selection
	status  string
}

// NewMenu creates a menu over the catalog in cfg.
func NewMenu(cfg *config.GameConfig, player *Player, logger *logging.Logger) *Menu {
	return &Menu{
		cfg:    cfg,
		player: player,
		bounds: cfg.Display.TitleSafe,
		logger: logger,
	}
}

// Select records a pending mission.
func (m *Menu) Select(missionID int, easy bool) error {
	if _, ok := m.cfg.Mission(missionID); !ok {
		return fmt.Errorf("mission %d: %w", missionID, ErrUnknownMission)
	}
	m.pending = &Selection{MissionID: missionID, Easy: easy}
	return nil
}

// Pending returns the selection not yet started.
func (m *Menu) Pending() (Selection, bool) {
	if m.pending == nil {
		return Selection{}, false
	}
	return *m.pending, true
}

// ClearSelection forgets the pending selection.
func (m *Menu) ClearSelection() {
	m.pending = nil
}

// Easy reports whether easy mode is toggled on.
func (m *Menu) Easy() bool {
	return m.easy
}

// Status is the message line shown under the catalog.
func (m *Menu) Status() string {
	return m.status
}

// Update applies menu input.
func (m *Menu) Update(ctx context.Context, deltaTime float64, in Input) {
	if in.ToggleEasy {
		m.easy = !m.easy
	}
	if in.NextScooter {
		m.selectNextScooter()
	}
	if in.BuyScooter {
		m.report(ctx, "scooter purchase", m.BuyNextScooter())
	}
	if in.BuyUpgrade {
		m.report(ctx, "upgrade purchase", m.BuyNextUpgrade())
	}
	if in.Mission != 0 {
		if err := m.Select(in.Mission, m.easy); err != nil {
			m.report(ctx, "mission selection", err)
		}
	}
}

// BuyNextScooter buys the first catalog scooter the player does not own and
// selects it.
func (m *Menu) BuyNextScooter() error {
	for _, s := range m.cfg.Scooters {
		if m.player.OwnsScooter(s.ID) {
			continue
		}
		if err := m.player.BuyScooter(s); err != nil {
			return err
		}
		m.status = "Bought " + s.Name
		return m.player.SelectScooter(s.ID)
	}
	return ErrNothingToBuy
}

// BuyNextUpgrade buys the first catalog upgrade the player does not own.
func (m *Menu) BuyNextUpgrade() error {
	for _, u := range m.cfg.Upgrades {
		if m.player.OwnsUpgrade(u.ID) {
			continue
		}
		if err := m.player.BuyUpgrade(u); err != nil {
			return err
		}
		m.status = "Bought " + u.Name
		return nil
	}
	return ErrNothingToBuy
}

// HandleMissionEnded shows the result of the last mission.
func (m *Menu) HandleMissionEnded(e event.Event) {
	ended, ok := e.(*event.MissionEvent)
	if !ok {
		return
	}
	switch ended.Outcome {
	case event.OutcomeCompleted:
		m.status = fmt.Sprintf("Mission complete in %.1fs, earned $%d", ended.Elapsed, ended.Reward)
	case event.OutcomeFailed:
		m.status = "Out of time"
	case event.OutcomeAborted:
		m.status = "Mission aborted"
	}
}

func (m *Menu) selectNextScooter() {
	owned := m.player.Scooters()
	for i, id := range owned {
		if id == m.player.SelectedScooter {
			m.player.SelectScooter(owned[(i+1)%len(owned)])
			return
		}
	}
	if len(owned) > 0 {
		m.player.SelectScooter(owned[0])
	}
}

func (m *Menu) report(ctx context.Context, action string, err error) {
	if err == nil {
		return
	}
	m.status = err.Error()
	m.logger.Warn(ctx, "Menu action rejected", "action", action, "error", err.Error())
}

// Draw renders the catalog.
func (m *Menu) Draw(r entity.Renderer) {
	line := 0
	text := func(s string) {
		x, y := textLine(m.bounds, line)
		r.RenderText(x, y, s)
		line++
	}

	scooter := "none"
	if s, ok := m.cfg.Scooter(m.player.SelectedScooter); ok {
		scooter = s.Name
	}
	mode := "normal"
	if m.easy {
		mode = "easy"
	}
	text(fmt.Sprintf("Money: $%d   Scooter: %s   Mode: %s", m.player.Money, scooter, mode))
	line++
	for _, mission := range m.cfg.Missions {
		text(fmt.Sprintf("%d. %s (%.0fs, $%d)", mission.ID, mission.Name, mission.TimeLimit, mission.Reward))
	}
	line++
	text(MenuKeys)
	if m.status != "" {
		text(m.status)
	}
}
