// pkg/engine/player.go
package engine

import (
	"errors"
	"fmt"
	"sort"

	"github.com/opd-ai/go-ssorf/pkg/config"
	"github.com/opd-ai/go-ssorf/pkg/physics"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrAlreadyOwned      = errors.New("already owned")
	ErrNotOwned          = errors.New("scooter not owned")
)

// Player holds what survives between missions.
type Player struct {
	Money           int
	SelectedScooter int
	scooters        map[int]bool
	upgrades        map[int]bool
}

// NewPlayer creates a player owning only the starting scooter.
func NewPlayer(cfg config.PlayerConfig) *Player {
	return &Player{
		Money:           cfg.StartingMoney,
		SelectedScooter: cfg.StartingScooter,
		scooters:        map[int]bool{cfg.StartingScooter: true},
		upgrades:        make(map[int]bool),
	}
}

// OwnsScooter reports whether the scooter has been bought.
func (p *Player) OwnsScooter(id int) bool {
	return p.scooters[id]
}

// OwnsUpgrade reports whether the upgrade has been bought.
func (p *Player) OwnsUpgrade(id int) bool {
	return p.upgrades[id]
}

// Scooters returns owned scooter IDs in ascending order.
func (p *Player) Scooters() []int {
	return sortedKeys(p.scooters)
}

// Upgrades returns owned upgrade IDs in ascending order.
func (p *Player) Upgrades() []int {
	return sortedKeys(p.upgrades)
}

// BuyScooter pays for and adds a scooter.
func (p *Player) BuyScooter(s config.ScooterConfig) error {
	if p.scooters[s.ID] {
		return fmt.Errorf("scooter %d: %w", s.ID, ErrAlreadyOwned)
	}
	if err := p.spend(s.Price); err != nil {
		return fmt.Errorf("scooter %d: %w", s.ID, err)
	}
	p.scooters[s.ID] = true
	return nil
}

// BuyUpgrade pays for and adds an upgrade. Upgrades apply to every scooter.
func (p *Player) BuyUpgrade(u config.UpgradeConfig) error {
	if p.upgrades[u.ID] {
		return fmt.Errorf("upgrade %d: %w", u.ID, ErrAlreadyOwned)
	}
	if err := p.spend(u.Price); err != nil {
		return fmt.Errorf("upgrade %d: %w", u.ID, err)
	}
	p.upgrades[u.ID] = true
	return nil
}

// SelectScooter chooses which owned scooter the next mission uses.
func (p *Player) SelectScooter(id int) error {
	if !p.scooters[id] {
		return fmt.Errorf("scooter %d: %w", id, ErrNotOwned)
	}
	p.SelectedScooter = id
	return nil
}

// Credit adds mission winnings.
func (p *Player) Credit(amount int) {
	if amount > 0 {
		p.Money += amount
	}
}

// UpgradeSet resolves the owned upgrades against the catalog. Unknown IDs are
// skipped.
func (p *Player) UpgradeSet(cfg *config.GameConfig) []physics.Upgrades {
	var out []physics.Upgrades
	for _, id := range p.Upgrades() {
		if u, ok := cfg.Upgrade(id); ok {
			out = append(out, u.Upgrades())
		}
	}
	return out
}

func (p *Player) spend(amount int) error {
	if amount > p.Money {
		return ErrInsufficientFunds
	}
	p.Money -= amount
	return nil
}

func sortedKeys(m map[int]bool) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
