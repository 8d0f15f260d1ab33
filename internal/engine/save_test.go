package engine

import (
	"testing"
	"time"
)

func TestSavePayloadIsSparse(t *testing.T) {
	e := newTestEngine(t)
	fund(e, 1000)
	e.PurchaseBusiness("script")
	e.HireTeamMember("junior")
	e.PurchaseUpgrade("ide")
	e.AssignManager("script", "junior")

	out := e.SavePayload("user-1")
	if out.UserID != "user-1" {
		t.Fatalf("UserID = %q", out.UserID)
	}
	if len(out.Businesses) != 1 || out.Businesses[0].ID != "script" {
		t.Fatalf("businesses = %+v, want only script", out.Businesses)
	}
	if out.Businesses[0].Managers["junior"] != 1 {
		t.Fatalf("managers = %+v, want junior:1", out.Businesses[0].Managers)
	}
	if len(out.TeamMembers) != 1 || out.TeamMembers[0].AvailableCount != 0 {
		t.Fatalf("team = %+v, want junior with 0 available", out.TeamMembers)
	}
	if len(out.Upgrades) != 1 || out.Upgrades[0].ID != "ide" {
		t.Fatalf("upgrades = %+v, want only ide", out.Upgrades)
	}
	// Achievements fired along the way must be present.
	if len(out.Achievements) == 0 {
		t.Fatal("unlocked achievements missing from payload")
	}
}

func TestApplyLoadedRoundTrip(t *testing.T) {
	src := newTestEngine(t)
	fund(src, 2000)
	src.PurchaseBusiness("script")
	src.PurchaseBusiness("script")
	src.HireTeamMember("junior")
	src.PurchaseUpgrade("ci")
	src.AssignManager("script", "junior")
	payload := src.SavePayload("user-1")
	want := src.Snapshot()

	dst := newTestEngine(t)
	dst.ApplyLoaded(LoadData{
		Progress: ProgressRecord{
			CurrentLoC:  payload.CurrentLoC,
			TotalLoC:    payload.TotalLoC,
			LoCPerClick: payload.LoCPerClick,
			LastActive:  time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		},
		Businesses:   payload.Businesses,
		Team:         payload.TeamMembers,
		Upgrades:     payload.Upgrades,
		Achievements: payload.Achievements,
	})

	got := dst.Snapshot()
	if !got.Loaded {
		t.Fatal("Loaded false after ApplyLoaded")
	}
	if got.Progress.CurrentLoC != want.Progress.CurrentLoC {
		t.Fatalf("CurrentLoC = %v, want %v", got.Progress.CurrentLoC, want.Progress.CurrentLoC)
	}
	if got.Progress.PassiveRate != want.Progress.PassiveRate {
		t.Fatalf("PassiveRate = %v, want rederived %v", got.Progress.PassiveRate, want.Progress.PassiveRate)
	}
	b := snapshotBusiness(t, dst, "script")
	if b.Level != 2 || b.Managers["junior"] != 1 {
		t.Fatalf("script = level %d managers %+v", b.Level, b.Managers)
	}
	tm := snapshotTeam(t, dst, "junior")
	if tm.Count != 1 || tm.AvailableCount != 0 {
		t.Fatalf("junior = %d/%d, want 1 hired 0 available", tm.Count, tm.AvailableCount)
	}
}

func TestApplyLoadedToleratesPartialPayload(t *testing.T) {
	e := newTestEngine(t)
	e.ApplyLoaded(LoadData{})
	snap := e.Snapshot()
	if !snap.Loaded {
		t.Fatal("Loaded false")
	}
	if snap.Progress.CurrentLoC != 0 || snap.Progress.TotalLoC != 0 {
		t.Fatalf("progress = %+v, want zero defaults", snap.Progress)
	}
	if snap.Progress.LoCPerClick != 1 {
		t.Fatalf("LoCPerClick = %v, want clamped to 1", snap.Progress.LoCPerClick)
	}
	if snap.Progress.LastOnline.IsZero() {
		t.Fatal("LastOnline left zero")
	}
	// The engine must stay playable.
	if !e.Click() {
		t.Fatal("click failed after empty load")
	}
}

func TestApplyLoadedSkipsUnknownIDs(t *testing.T) {
	e := newTestEngine(t)
	e.ApplyLoaded(LoadData{
		Businesses: []BusinessSave{{ID: "retired-business", Level: 5}},
		Team:       []TeamSave{{ID: "retired-role", Count: 3}},
		Upgrades:   []UpgradeSave{{ID: "retired-upgrade"}},
	})
	snap := e.Snapshot()
	for _, b := range snap.Businesses {
		if b.Level != 0 {
			t.Fatalf("business %q picked up level from unknown save row", b.ID)
		}
	}
	if snap.Progress.PassiveRate != 0 {
		t.Fatalf("rate = %v, want 0", snap.Progress.PassiveRate)
	}
}

func TestApplyLoadedClampsTotalBelowCurrent(t *testing.T) {
	e := newTestEngine(t)
	e.ApplyLoaded(LoadData{Progress: ProgressRecord{CurrentLoC: 500, TotalLoC: 100}})
	snap := e.Snapshot().Progress
	if snap.TotalLoC != 500 {
		t.Fatalf("TotalLoC = %v, want clamped to 500", snap.TotalLoC)
	}
}

func TestApplyLoadedReconcilesOverAssignedManagers(t *testing.T) {
	e := newTestEngine(t)
	e.ApplyLoaded(LoadData{
		Businesses: []BusinessSave{{ID: "script", Level: 1, Managers: map[string]int{"junior": 5}}},
		Team:       []TeamSave{{ID: "junior", Count: 2}},
	})
	b := snapshotBusiness(t, e, "script")
	tm := snapshotTeam(t, e, "junior")
	if b.Managers["junior"] != 2 {
		t.Fatalf("assigned = %d, want trimmed to 2", b.Managers["junior"])
	}
	if tm.AvailableCount != 0 {
		t.Fatalf("available = %d, want 0", tm.AvailableCount)
	}
	if got := b.AssignedManagers() + tm.AvailableCount; got != tm.Count {
		t.Fatalf("assigned+available = %d, want %d", got, tm.Count)
	}
}

func TestApplyLoadedDerivesAvailableFromAssignments(t *testing.T) {
	e := newTestEngine(t)
	// Persisted available count disagrees with the mapping; the mapping wins.
	e.ApplyLoaded(LoadData{
		Businesses: []BusinessSave{{ID: "script", Level: 1, Managers: map[string]int{"junior": 1}}},
		Team:       []TeamSave{{ID: "junior", Count: 3, AvailableCount: 3}},
	})
	tm := snapshotTeam(t, e, "junior")
	if tm.AvailableCount != 2 {
		t.Fatalf("available = %d, want 2", tm.AvailableCount)
	}
}
