package engine

import "devcap/internal/catalog"

// UpgradeState is a catalog upgrade plus whether this player owns it.
type UpgradeState struct {
	catalog.Upgrade
	Purchased bool
}

func (u UpgradeState) Unlocked(totalLoC float64) bool {
	return totalLoC >= u.UnlockRequirement
}

func (s *state) upgrade(id string) *UpgradeState {
	for i := range s.upgrades {
		if s.upgrades[i].ID == id {
			return &s.upgrades[i]
		}
	}
	return nil
}

// purchaseUpgrade buys a one-time upgrade. Already-purchased, unknown, or
// unaffordable are silent no-ops, so a double purchase can never charge or
// apply twice. Click upgrades mutate the click yield immediately; the rate
// recompute picks up every other category.
func (s *state) purchaseUpgrade(id string) bool {
	u := s.upgrade(id)
	if u == nil || u.Purchased {
		return false
	}
	if !s.progress.debit(u.Cost) {
		return false
	}
	u.Purchased = true
	if u.Type == catalog.UpgradeClick {
		s.progress.LoCPerClick *= u.Multiplier
	}
	s.recomputeRate()
	return true
}

// purchasedUpgradeCount counts owned upgrades for achievement checks.
func (s *state) purchasedUpgradeCount() int {
	count := 0
	for i := range s.upgrades {
		if s.upgrades[i].Purchased {
			count++
		}
	}
	return count
}

// offlineEfficiency is the base 50% scaled by every purchased offline
// upgrade.
func (s *state) offlineEfficiency() float64 {
	eff := BaseOfflineEfficiency
	for i := range s.upgrades {
		u := &s.upgrades[i]
		if u.Purchased && u.Type == catalog.UpgradeOffline {
			eff *= u.Multiplier
		}
	}
	return eff
}
