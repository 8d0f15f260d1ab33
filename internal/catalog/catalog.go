// Package catalog defines the static game content: purchasable businesses,
// hireable team members, one-time upgrades, and achievements. Template rows
// are seeded once by devcap-seed and are read-only afterwards; per-player
// state lives in the engine and the store.
package catalog

import (
	"errors"
	"fmt"
)

var ErrUnknownCategory = errors.New("unknown category")

// UpgradeType scopes what an upgrade's multiplier applies to.
type UpgradeType string

const (
	UpgradeClick    UpgradeType = "click"    // multiplies LoC per click
	UpgradeBusiness UpgradeType = "business" // multiplies business production
	UpgradeTeam     UpgradeType = "team"     // multiplies team production
	UpgradeAll      UpgradeType = "all"      // multiplies every producer
	UpgradeOffline  UpgradeType = "offline"  // multiplies offline efficiency
)

func ParseUpgradeType(s string) (UpgradeType, error) {
	switch t := UpgradeType(s); t {
	case UpgradeClick, UpgradeBusiness, UpgradeTeam, UpgradeAll, UpgradeOffline:
		return t, nil
	}
	return "", fmt.Errorf("%w: upgrade type %q", ErrUnknownCategory, s)
}

// AchievementType selects which progress counter an achievement watches.
type AchievementType string

const (
	AchievementLoC        AchievementType = "loC"        // lifetime LoC earned
	AchievementBusiness   AchievementType = "business"   // distinct businesses owned
	AchievementTeam       AchievementType = "team"       // total team members hired
	AchievementUpgrade    AchievementType = "upgrade"    // upgrades purchased
	AchievementProduction AchievementType = "production" // passive LoC per second
	AchievementOffline    AchievementType = "offline"    // lifetime offline LoC collected
)

func ParseAchievementType(s string) (AchievementType, error) {
	switch t := AchievementType(s); t {
	case AchievementLoC, AchievementBusiness, AchievementTeam,
		AchievementUpgrade, AchievementProduction, AchievementOffline:
		return t, nil
	}
	return "", fmt.Errorf("%w: achievement type %q", ErrUnknownCategory, s)
}

// Business is a passive-production asset the player can level up.
type Business struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Description       string  `json:"description"`
	BaseCost          float64 `json:"base_cost"`
	BaseProduction    float64 `json:"base_production"`
	CostMultiplier    float64 `json:"cost_multiplier"`
	UnlockRequirement float64 `json:"unlock_requirement"`
}

// TeamMember is a hireable unit. Each hire adds flat production; hired
// members can also be assigned to businesses as managers.
type TeamMember struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Description       string  `json:"description"`
	BaseCost          float64 `json:"base_cost"`
	BaseProduction    float64 `json:"base_production"`
	CostMultiplier    float64 `json:"cost_multiplier"`
	UnlockRequirement float64 `json:"unlock_requirement"`
}

// Upgrade is a one-time purchase applying a permanent multiplier. TargetID
// narrows business/team upgrades to a single producer; empty means the whole
// category.
type Upgrade struct {
	ID                string      `json:"id"`
	Name              string      `json:"name"`
	Description       string      `json:"description"`
	Cost              float64     `json:"cost"`
	Type              UpgradeType `json:"type"`
	Multiplier        float64     `json:"multiplier"`
	TargetID          string      `json:"target_id,omitempty"`
	UnlockRequirement float64     `json:"unlock_requirement"`
}

// Achievement is a one-time threshold reward.
type Achievement struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Requirement float64         `json:"requirement"`
	Type        AchievementType `json:"type"`
	Reward      float64         `json:"reward"`
}

// Catalog bundles the four template collections fetched at initialization.
type Catalog struct {
	Businesses   []Business   `json:"businesses"`
	TeamMembers  []TeamMember `json:"team_members"`
	Upgrades     []Upgrade    `json:"upgrades"`
	Achievements []Achievement `json:"achievements"`
}

// Validate checks referential integrity: category strings parse and upgrade
// targets point at existing producers.
func (c Catalog) Validate() error {
	businesses := make(map[string]bool, len(c.Businesses))
	for _, b := range c.Businesses {
		if b.ID == "" {
			return fmt.Errorf("business %q: missing id", b.Name)
		}
		if b.CostMultiplier <= 1 {
			return fmt.Errorf("business %q: cost multiplier must be > 1", b.Name)
		}
		businesses[b.ID] = true
	}
	team := make(map[string]bool, len(c.TeamMembers))
	for _, t := range c.TeamMembers {
		if t.ID == "" {
			return fmt.Errorf("team member %q: missing id", t.Name)
		}
		if t.CostMultiplier <= 1 {
			return fmt.Errorf("team member %q: cost multiplier must be > 1", t.Name)
		}
		team[t.ID] = true
	}
	for _, u := range c.Upgrades {
		if _, err := ParseUpgradeType(string(u.Type)); err != nil {
			return fmt.Errorf("upgrade %q: %w", u.Name, err)
		}
		if u.Multiplier <= 1 {
			return fmt.Errorf("upgrade %q: multiplier must be > 1", u.Name)
		}
		if u.TargetID != "" {
			switch u.Type {
			case UpgradeBusiness:
				if !businesses[u.TargetID] {
					return fmt.Errorf("upgrade %q: unknown business target %q", u.Name, u.TargetID)
				}
			case UpgradeTeam:
				if !team[u.TargetID] {
					return fmt.Errorf("upgrade %q: unknown team target %q", u.Name, u.TargetID)
				}
			default:
				return fmt.Errorf("upgrade %q: target set on %s upgrade", u.Name, u.Type)
			}
		}
	}
	for _, a := range c.Achievements {
		if _, err := ParseAchievementType(string(a.Type)); err != nil {
			return fmt.Errorf("achievement %q: %w", a.Name, err)
		}
		if a.Requirement <= 0 {
			return fmt.Errorf("achievement %q: requirement must be > 0", a.Name)
		}
	}
	return nil
}
