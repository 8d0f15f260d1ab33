package engine

import (
	"math"
	"testing"
	"time"

	"devcap/internal/catalog"
)

func testCatalog() catalog.Catalog {
	return catalog.Catalog{
		Businesses: []catalog.Business{
			{ID: "script", Name: "Script Farm", BaseCost: 10, BaseProduction: 1, CostMultiplier: 1.15},
			{ID: "saas", Name: "SaaS Tool", BaseCost: 500, BaseProduction: 20, CostMultiplier: 1.2, UnlockRequirement: 250},
		},
		TeamMembers: []catalog.TeamMember{
			{ID: "junior", Name: "Junior Dev", BaseCost: 50, BaseProduction: 2, CostMultiplier: 1.2},
			{ID: "senior", Name: "Senior Dev", BaseCost: 400, BaseProduction: 10, CostMultiplier: 1.3, UnlockRequirement: 200},
		},
		Upgrades: []catalog.Upgrade{
			{ID: "ide", Name: "Better IDE", Cost: 100, Type: catalog.UpgradeClick, Multiplier: 2},
			{ID: "ci", Name: "CI Pipeline", Cost: 200, Type: catalog.UpgradeBusiness, Multiplier: 2},
			{ID: "script-tools", Name: "Script Tooling", Cost: 150, Type: catalog.UpgradeBusiness, Multiplier: 1.5, TargetID: "script"},
			{ID: "standups", Name: "Daily Standups", Cost: 300, Type: catalog.UpgradeTeam, Multiplier: 2},
			{ID: "agile", Name: "Agile Everything", Cost: 1000, Type: catalog.UpgradeAll, Multiplier: 2},
			{ID: "cron", Name: "Cron Jobs", Cost: 500, Type: catalog.UpgradeOffline, Multiplier: 1.5},
		},
		Achievements: []catalog.Achievement{
			{ID: "first-loc", Name: "Hello World", Requirement: 1, Type: catalog.AchievementLoC, Reward: 10},
			{ID: "ten-k", Name: "Ten Thousand", Requirement: 10000, Type: catalog.AchievementLoC, Reward: 500},
			{ID: "first-biz", Name: "Founder", Requirement: 1, Type: catalog.AchievementBusiness, Reward: 50},
			{ID: "first-hire", Name: "Manager Material", Requirement: 1, Type: catalog.AchievementTeam, Reward: 50},
		},
	}
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e := New(nil)
	if err := e.Initialize(testCatalog()); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	return e
}

// fund credits balance directly, bypassing achievement checks, so tests can
// set up affordability without clicking hundreds of times.
func fund(e *Engine, amount float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.st.progress.CurrentLoC += amount
	e.st.progress.TotalLoC += amount
}

func snapshotBusiness(t *testing.T, e *Engine, id string) BusinessState {
	t.Helper()
	for _, b := range e.Snapshot().Businesses {
		if b.ID == id {
			return b
		}
	}
	t.Fatalf("business %q not in snapshot", id)
	return BusinessState{}
}

func snapshotTeam(t *testing.T, e *Engine, id string) TeamState {
	t.Helper()
	for _, tm := range e.Snapshot().TeamMembers {
		if tm.ID == id {
			return tm
		}
	}
	t.Fatalf("team member %q not in snapshot", id)
	return TeamState{}
}

func TestMutationsRejectedBeforeInitialize(t *testing.T) {
	e := New(nil)
	if e.Click() {
		t.Fatal("Click succeeded before Initialize")
	}
	if e.PurchaseBusiness("script") {
		t.Fatal("PurchaseBusiness succeeded before Initialize")
	}
	if e.HireTeamMember("junior") {
		t.Fatal("HireTeamMember succeeded before Initialize")
	}
	if e.Ready() {
		t.Fatal("Ready true before Initialize")
	}
}

func TestClickCreditsYield(t *testing.T) {
	e := newTestEngine(t)
	if !e.Click() {
		t.Fatal("Click failed")
	}
	snap := e.Snapshot()
	// 1 from the click plus the 10 reward from the first-loc achievement.
	if snap.Progress.CurrentLoC != 11 {
		t.Fatalf("CurrentLoC = %v, want 11", snap.Progress.CurrentLoC)
	}
	if snap.Progress.TotalLoC != 11 {
		t.Fatalf("TotalLoC = %v, want 11", snap.Progress.TotalLoC)
	}
}

func TestBusinessCostCurve(t *testing.T) {
	e := newTestEngine(t)
	wantCosts := []float64{10, 11, 13, 15, 17, 20}
	for level, want := range wantCosts {
		b := snapshotBusiness(t, e, "script")
		if b.Level != level {
			t.Fatalf("level = %d, want %d", b.Level, level)
		}
		if got := b.Cost(); got != want {
			t.Fatalf("cost at level %d = %v, want %v", level, got, want)
		}
		fund(e, want)
		if !e.PurchaseBusiness("script") {
			t.Fatalf("purchase at level %d failed", level)
		}
	}
}

func TestPurchaseRequiresBalance(t *testing.T) {
	e := newTestEngine(t)
	fund(e, 9)
	if e.PurchaseBusiness("script") {
		t.Fatal("purchase succeeded with 9 LoC against cost 10")
	}
	snap := e.Snapshot()
	if snap.Progress.CurrentLoC != 9 {
		t.Fatalf("CurrentLoC = %v, want 9 untouched", snap.Progress.CurrentLoC)
	}
	if snapshotBusiness(t, e, "script").Level != 0 {
		t.Fatal("level changed on rejected purchase")
	}
	fund(e, 1)
	if !e.PurchaseBusiness("script") {
		t.Fatal("purchase failed with exact balance")
	}
}

func TestPurchaseUnknownIDs(t *testing.T) {
	e := newTestEngine(t)
	fund(e, 100000)
	if e.PurchaseBusiness("nope") {
		t.Fatal("bought unknown business")
	}
	if e.HireTeamMember("nope") {
		t.Fatal("hired unknown team member")
	}
	if e.PurchaseUpgrade("nope") {
		t.Fatal("bought unknown upgrade")
	}
}

func TestTickAppliesFlooredPassiveIncome(t *testing.T) {
	e := newTestEngine(t)
	fund(e, 10)
	if !e.PurchaseBusiness("script") {
		t.Fatal("purchase failed")
	}
	before := e.Snapshot().Progress
	if before.PassiveRate != 1 {
		t.Fatalf("PassiveRate = %v, want 1", before.PassiveRate)
	}
	e.Tick(3 * time.Second)
	after := e.Snapshot().Progress
	if got := after.CurrentLoC - before.CurrentLoC; got != 3 {
		t.Fatalf("tick credited %v, want 3", got)
	}
}

func TestTickZeroRateNoGain(t *testing.T) {
	e := newTestEngine(t)
	before := e.Snapshot().Progress.CurrentLoC
	e.Tick(10 * time.Second)
	if got := e.Snapshot().Progress.CurrentLoC; got != before {
		t.Fatalf("tick with zero rate credited %v", got-before)
	}
}

func TestClickUpgradeDoublesYield(t *testing.T) {
	e := newTestEngine(t)
	fund(e, 100)
	if !e.PurchaseUpgrade("ide") {
		t.Fatal("upgrade purchase failed")
	}
	if got := e.Snapshot().Progress.LoCPerClick; got != 2 {
		t.Fatalf("LoCPerClick = %v, want 2", got)
	}
}

func TestUpgradeIsOneTime(t *testing.T) {
	e := newTestEngine(t)
	fund(e, 1000)
	if !e.PurchaseUpgrade("ide") {
		t.Fatal("first purchase failed")
	}
	before := e.Snapshot().Progress
	if e.PurchaseUpgrade("ide") {
		t.Fatal("second purchase of one-time upgrade succeeded")
	}
	after := e.Snapshot().Progress
	if after.CurrentLoC != before.CurrentLoC {
		t.Fatal("second purchase charged")
	}
	if after.LoCPerClick != before.LoCPerClick {
		t.Fatal("second purchase applied again")
	}
}

func TestOfflineReconcile(t *testing.T) {
	e := newTestEngine(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	e.now = func() time.Time { return base }

	// 100/s passive: level the script business to 100.
	e.mu.Lock()
	e.st.business("script").Level = 100
	e.st.recomputeRate()
	e.st.progress.LastOnline = base
	e.mu.Unlock()

	e.now = func() time.Time { return base.Add(time.Minute) }
	gain := e.ReconcileOffline()
	if gain != 3000 {
		t.Fatalf("offline gain = %v, want 3000 (100/s * 60s * 0.5)", gain)
	}

	before := e.Snapshot().Progress.CurrentLoC
	collected := e.CollectOffline()
	if collected != 3000 {
		t.Fatalf("collected = %v, want 3000", collected)
	}
	snap := e.Snapshot().Progress
	if snap.CurrentLoC-before < 3000 {
		t.Fatalf("collect credited %v, want >= 3000", snap.CurrentLoC-before)
	}
	if snap.OfflineEarnings != 0 {
		t.Fatal("buffer not cleared after collect")
	}
	if e.CollectOffline() != 0 {
		t.Fatal("second collect paid again")
	}
}

func TestOfflineUnderMinimumEarnsNothing(t *testing.T) {
	e := newTestEngine(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	e.mu.Lock()
	e.st.business("script").Level = 100
	e.st.recomputeRate()
	e.st.progress.LastOnline = base
	e.mu.Unlock()

	e.now = func() time.Time { return base.Add(5 * time.Second) }
	if gain := e.ReconcileOffline(); gain != 0 {
		t.Fatalf("gain after 5s = %v, want 0", gain)
	}
	if !e.Snapshot().Progress.LastOnline.Equal(base) {
		t.Fatal("LastOnline reset under the debounce minimum")
	}
}

func TestOfflineReconcileResetsMarker(t *testing.T) {
	e := newTestEngine(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	e.mu.Lock()
	e.st.business("script").Level = 1
	e.st.recomputeRate()
	e.st.progress.LastOnline = base
	e.mu.Unlock()

	now := base.Add(time.Minute)
	e.now = func() time.Time { return now }
	if gain := e.ReconcileOffline(); gain != 30 {
		t.Fatalf("gain = %v, want 30", gain)
	}
	// Second reconcile at the same instant: elapsed is zero, no double pay.
	if gain := e.ReconcileOffline(); gain != 0 {
		t.Fatalf("repeat reconcile paid %v", gain)
	}
}

func TestOfflineUpgradeRaisesEfficiency(t *testing.T) {
	e := newTestEngine(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	fund(e, 500)
	if !e.PurchaseUpgrade("cron") {
		t.Fatal("offline upgrade purchase failed")
	}
	e.mu.Lock()
	e.st.business("script").Level = 100
	e.st.recomputeRate()
	e.st.progress.LastOnline = base
	e.mu.Unlock()

	e.now = func() time.Time { return base.Add(time.Minute) }
	// 100/s * 60s * (0.5 * 1.5) = 4500.
	if gain := e.ReconcileOffline(); gain != 4500 {
		t.Fatalf("gain = %v, want 4500", gain)
	}
}

func TestManagerAssignmentConservation(t *testing.T) {
	e := newTestEngine(t)
	fund(e, 50+10)
	if !e.HireTeamMember("junior") {
		t.Fatal("hire failed")
	}
	if !e.PurchaseBusiness("script") {
		t.Fatal("purchase failed")
	}

	if !e.AssignManager("script", "junior") {
		t.Fatal("assign failed")
	}
	if e.AssignManager("script", "junior") {
		t.Fatal("assigned more managers than hired")
	}
	tm := snapshotTeam(t, e, "junior")
	b := snapshotBusiness(t, e, "script")
	if tm.Count != 1 || tm.AvailableCount != 0 {
		t.Fatalf("count/available = %d/%d, want 1/0", tm.Count, tm.AvailableCount)
	}
	if b.AssignedManagers() != 1 {
		t.Fatalf("assigned = %d, want 1", b.AssignedManagers())
	}

	if !e.UnassignManager("script", "junior") {
		t.Fatal("unassign failed")
	}
	if e.UnassignManager("script", "junior") {
		t.Fatal("unassigned below zero")
	}
	tm = snapshotTeam(t, e, "junior")
	if tm.AvailableCount != 1 {
		t.Fatalf("available = %d after unassign, want 1", tm.AvailableCount)
	}
}

func TestManagerAssignmentDoesNotChangeRate(t *testing.T) {
	e := newTestEngine(t)
	fund(e, 60)
	e.HireTeamMember("junior")
	e.PurchaseBusiness("script")
	before := e.Snapshot().Progress.PassiveRate
	e.AssignManager("script", "junior")
	if got := e.Snapshot().Progress.PassiveRate; got != before {
		t.Fatalf("rate changed %v -> %v on assignment", before, got)
	}
}

func TestBalanceNeverExceedsTotal(t *testing.T) {
	e := newTestEngine(t)
	fund(e, 5000)
	e.Click()
	e.PurchaseBusiness("script")
	e.HireTeamMember("junior")
	e.PurchaseUpgrade("ide")
	e.Tick(5 * time.Second)
	snap := e.Snapshot().Progress
	if snap.CurrentLoC > snap.TotalLoC {
		t.Fatalf("CurrentLoC %v > TotalLoC %v", snap.CurrentLoC, snap.TotalLoC)
	}
}

func TestSnapshotIsIsolated(t *testing.T) {
	e := newTestEngine(t)
	fund(e, 60)
	e.HireTeamMember("junior")
	e.PurchaseBusiness("script")
	e.AssignManager("script", "junior")

	snap := e.Snapshot()
	for i := range snap.Businesses {
		snap.Businesses[i].Level = 99
		for k := range snap.Businesses[i].Managers {
			snap.Businesses[i].Managers[k] = 99
		}
	}
	if b := snapshotBusiness(t, e, "script"); b.Level == 99 || b.Managers["junior"] == 99 {
		t.Fatal("mutating a snapshot leaked into engine state")
	}
}

func TestRecomputeRateIsIdempotent(t *testing.T) {
	e := newTestEngine(t)
	fund(e, 5000)
	e.PurchaseBusiness("script")
	e.HireTeamMember("junior")
	e.PurchaseUpgrade("ci")

	e.mu.Lock()
	first := e.st.progress.PassiveRate
	e.st.recomputeRate()
	second := e.st.progress.PassiveRate
	e.mu.Unlock()
	if first != second || math.IsNaN(first) {
		t.Fatalf("recompute drifted: %v -> %v", first, second)
	}
}
