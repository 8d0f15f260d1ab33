package engine

import (
	"time"

	"devcap/internal/catalog"
)

// AchievementState is a catalog achievement plus unlock status.
type AchievementState struct {
	catalog.Achievement
	Unlocked   bool
	UnlockedAt time.Time
}

// checkAchievements runs after every economy-mutating action. Locked
// achievements whose counter has crossed the requirement unlock, credit
// their reward once, and become the "latest" for notification. Rewards
// raise TotalLoC, so a reward can cascade into unlocking a lower LoC
// achievement in the same pass; the loop repeats until a pass fires
// nothing. An unlocked achievement is never re-evaluated.
func (s *state) checkAchievements(now time.Time) {
	for {
		fired := false
		for i := range s.achievements {
			a := &s.achievements[i]
			if a.Unlocked {
				continue
			}
			if !s.achievementMet(a) {
				continue
			}
			a.Unlocked = true
			a.UnlockedAt = now
			s.progress.credit(a.Reward)
			s.latestAchievement = a.ID
			fired = true
		}
		if !fired {
			return
		}
	}
}

func (s *state) achievementMet(a *AchievementState) bool {
	switch a.Type {
	case catalog.AchievementLoC:
		return s.progress.TotalLoC >= a.Requirement
	case catalog.AchievementBusiness:
		return float64(s.ownedBusinessCount()) >= a.Requirement
	case catalog.AchievementTeam:
		return float64(s.hiredTeamCount()) >= a.Requirement
	case catalog.AchievementUpgrade:
		return float64(s.purchasedUpgradeCount()) >= a.Requirement
	case catalog.AchievementProduction:
		return s.progress.PassiveRate >= a.Requirement
	case catalog.AchievementOffline:
		return s.progress.OfflineEarned >= a.Requirement
	}
	return false
}
