package engine

import (
	"math"

	"devcap/internal/catalog"
)

// passiveRate derives LoC-per-second from scratch. Each producing business
// and team member contributes base production times its level/count, scaled
// by every purchased upgrade whose category and target match. Scoped and
// global multipliers stack multiplicatively per producer. The result is
// floored.
//
// The computation is pure: it reads only the three collections and is safe
// to rerun at any time, which is how load and every mutation keep the stored
// rate from drifting.
func passiveRate(businesses []BusinessState, team []TeamState, upgrades []UpgradeState) float64 {
	rate := 0.0
	for i := range businesses {
		b := &businesses[i]
		if b.Level <= 0 {
			continue
		}
		contribution := b.BaseProduction * float64(b.Level)
		for j := range upgrades {
			u := &upgrades[j]
			if !u.Purchased {
				continue
			}
			if u.Type != catalog.UpgradeBusiness && u.Type != catalog.UpgradeAll {
				continue
			}
			if u.TargetID != "" && u.TargetID != b.ID {
				continue
			}
			contribution *= u.Multiplier
		}
		rate += contribution
	}
	for i := range team {
		t := &team[i]
		if t.Count <= 0 {
			continue
		}
		contribution := t.BaseProduction * float64(t.Count)
		for j := range upgrades {
			u := &upgrades[j]
			if !u.Purchased {
				continue
			}
			if u.Type != catalog.UpgradeTeam && u.Type != catalog.UpgradeAll {
				continue
			}
			if u.TargetID != "" && u.TargetID != t.ID {
				continue
			}
			contribution *= u.Multiplier
		}
		rate += contribution
	}
	return math.Floor(rate)
}

func (s *state) recomputeRate() {
	s.progress.PassiveRate = passiveRate(s.businesses, s.team, s.upgrades)
}
