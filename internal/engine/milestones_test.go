package engine

import (
	"testing"
	"time"

	"devcap/internal/catalog"
)

func TestAchievementFiresOnceWithReward(t *testing.T) {
	e := newTestEngine(t)
	if !e.Click() {
		t.Fatal("click failed")
	}
	snap := e.Snapshot()
	var first *AchievementState
	for i := range snap.Achievements {
		if snap.Achievements[i].ID == "first-loc" {
			first = &snap.Achievements[i]
		}
	}
	if first == nil || !first.Unlocked {
		t.Fatal("first-loc did not unlock")
	}
	if first.UnlockedAt.IsZero() {
		t.Fatal("UnlockedAt not stamped")
	}
	if snap.Progress.CurrentLoC != 11 {
		t.Fatalf("CurrentLoC = %v, want click 1 + reward 10", snap.Progress.CurrentLoC)
	}

	// A second qualifying action must not re-fire or re-credit.
	e.Click()
	snap = e.Snapshot()
	if snap.Progress.CurrentLoC != 12 {
		t.Fatalf("CurrentLoC = %v after second click, want 12", snap.Progress.CurrentLoC)
	}
}

func TestAchievementRewardCascades(t *testing.T) {
	cat := testCatalog()
	cat.Achievements = []catalog.Achievement{
		// Reward of the first pushes TotalLoC over the second's threshold.
		{ID: "step-1", Name: "Step One", Requirement: 1, Type: catalog.AchievementLoC, Reward: 100},
		{ID: "step-2", Name: "Step Two", Requirement: 50, Type: catalog.AchievementLoC, Reward: 5},
	}
	e := New(nil)
	if err := e.Initialize(cat); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	e.Click()
	snap := e.Snapshot()
	for _, a := range snap.Achievements {
		if !a.Unlocked {
			t.Fatalf("achievement %q did not unlock in the cascade", a.ID)
		}
	}
	// 1 click + 100 + 5.
	if snap.Progress.CurrentLoC != 106 {
		t.Fatalf("CurrentLoC = %v, want 106", snap.Progress.CurrentLoC)
	}
}

func TestProductionAchievementWatchesRate(t *testing.T) {
	cat := testCatalog()
	cat.Achievements = []catalog.Achievement{
		{ID: "fast", Name: "Shipping Fast", Requirement: 2, Type: catalog.AchievementProduction, Reward: 0.5},
	}
	e := New(nil)
	if err := e.Initialize(cat); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	fund(e, 100)
	e.HireTeamMember("junior") // 2/s
	for _, a := range e.Snapshot().Achievements {
		if a.ID == "fast" && !a.Unlocked {
			t.Fatal("production achievement did not unlock at rate 2")
		}
	}
}

func TestLatestAchievementNotification(t *testing.T) {
	e := newTestEngine(t)
	if e.LatestAchievement() != nil {
		t.Fatal("notification pending before any unlock")
	}
	e.Click()
	latest := e.LatestAchievement()
	if latest == nil || latest.ID != "first-loc" {
		t.Fatalf("latest = %+v, want first-loc", latest)
	}
	e.AcknowledgeAchievement()
	if e.LatestAchievement() != nil {
		t.Fatal("notification survived acknowledge")
	}
}

func TestOfflineAchievementWatchesCollectedTotal(t *testing.T) {
	cat := testCatalog()
	cat.Achievements = []catalog.Achievement{
		{ID: "away", Name: "Working Remotely", Requirement: 1000, Type: catalog.AchievementOffline, Reward: 100},
	}
	e := New(nil)
	if err := e.Initialize(cat); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	e.mu.Lock()
	e.st.business("script").Level = 100
	e.st.recomputeRate()
	e.st.progress.LastOnline = base
	e.mu.Unlock()

	e.now = func() time.Time { return base.Add(time.Minute) }
	if gain := e.ReconcileOffline(); gain != 3000 {
		t.Fatalf("gain = %v, want 3000", gain)
	}
	// Unlocks only once the buffer is actually collected.
	for _, a := range e.Snapshot().Achievements {
		if a.Unlocked {
			t.Fatal("offline achievement unlocked before collect")
		}
	}
	e.CollectOffline()
	for _, a := range e.Snapshot().Achievements {
		if !a.Unlocked {
			t.Fatal("offline achievement did not unlock after collect")
		}
	}
}
