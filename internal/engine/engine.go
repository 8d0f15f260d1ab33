// Package engine is the game-economy state machine: one player's balances,
// businesses, team, upgrades, and achievements, plus the rules that tie them
// together. It is deliberately self-contained, with no globals and no I/O: a
// session owns exactly one Engine and tests construct as many as they like.
// Persistence and transport live in internal/store and internal/api.
package engine

import (
	"log/slog"
	"math"
	"sync"
	"time"

	"devcap/internal/catalog"
)

// Engine is the facade every mutation goes through. All operations take the
// mutex, so a passive-income tick and a click can never interleave; reads go
// through Snapshot which copies state out under the same lock.
type Engine struct {
	mu  sync.Mutex
	log *slog.Logger
	now func() time.Time
	st  state
}

type state struct {
	initialized bool
	loaded      bool
	loadFailed  bool

	progress     Progress
	businesses   []BusinessState
	team         []TeamState
	upgrades     []UpgradeState
	achievements []AchievementState

	latestAchievement string
}

func New(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		log: logger,
		now: time.Now,
	}
}

// Initialize installs the catalog and resets per-player state to defaults.
// Until this runs the engine rejects every mutation.
func (e *Engine) Initialize(cat catalog.Catalog) error {
	if err := cat.Validate(); err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	st := state{initialized: true, progress: newProgress(now)}
	st.businesses = make([]BusinessState, len(cat.Businesses))
	for i, b := range cat.Businesses {
		st.businesses[i] = BusinessState{Business: b}
	}
	st.team = make([]TeamState, len(cat.TeamMembers))
	for i, t := range cat.TeamMembers {
		st.team[i] = TeamState{TeamMember: t}
	}
	st.upgrades = make([]UpgradeState, len(cat.Upgrades))
	for i, u := range cat.Upgrades {
		st.upgrades[i] = UpgradeState{Upgrade: u}
	}
	st.achievements = make([]AchievementState, len(cat.Achievements))
	for i, a := range cat.Achievements {
		st.achievements[i] = AchievementState{Achievement: a}
	}
	e.st = st
	return nil
}

// Ready reports whether the catalog has been installed.
func (e *Engine) Ready() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.st.initialized
}

// Loaded reports whether a server save has been overlaid.
func (e *Engine) Loaded() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.st.loaded
}

// MarkLoadFailed records that loading persisted state failed. Play continues
// against the fresh defaults from Initialize; nothing is blocked.
func (e *Engine) MarkLoadFailed() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.st.loadFailed = true
	e.log.Warn("load failed, continuing with fresh state")
}

// Click is the manual action: credit the click yield and re-check
// achievements. It cannot fail once the engine is ready.
func (e *Engine) Click() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.st.initialized {
		return false
	}
	e.st.progress.credit(e.st.progress.LoCPerClick)
	e.st.checkAchievements(e.now())
	return true
}

// Tick applies passive income for one elapsed interval:
// floor(rate × seconds). Called from the session's single timer loop.
func (e *Engine) Tick(elapsed time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.st.initialized || elapsed <= 0 {
		return
	}
	gain := math.Floor(e.st.progress.PassiveRate * elapsed.Seconds())
	if gain <= 0 {
		return
	}
	e.st.progress.credit(gain)
	e.st.checkAchievements(e.now())
}

// PurchaseBusiness buys one level of the business. Unknown ids and
// unaffordable purchases leave state untouched and return false.
func (e *Engine) PurchaseBusiness(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.st.initialized {
		return false
	}
	if !e.st.purchaseBusiness(id) {
		return false
	}
	e.st.checkAchievements(e.now())
	return true
}

// HireTeamMember hires one unit of the team member.
func (e *Engine) HireTeamMember(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.st.initialized {
		return false
	}
	if !e.st.hireTeamMember(id) {
		return false
	}
	e.st.checkAchievements(e.now())
	return true
}

// PurchaseUpgrade buys a one-time upgrade.
func (e *Engine) PurchaseUpgrade(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.st.initialized {
		return false
	}
	if !e.st.purchaseUpgrade(id) {
		return false
	}
	e.st.checkAchievements(e.now())
	return true
}

// AssignManager allocates one available team member to a business.
func (e *Engine) AssignManager(businessID, teamID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.st.initialized {
		return false
	}
	return e.st.assignManager(businessID, teamID)
}

// UnassignManager returns one assigned manager to the available pool.
func (e *Engine) UnassignManager(businessID, teamID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.st.initialized {
		return false
	}
	return e.st.unassignManager(businessID, teamID)
}

// ReconcileOffline computes earnings for the time since LastOnline and
// parks them in the pending buffer awaiting CollectOffline. The buffer fill
// and the LastOnline reset happen together under the lock, so repeated
// triggers cannot double-credit; under ten seconds elapsed is ignored
// entirely.
func (e *Engine) ReconcileOffline() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.st.initialized {
		return 0
	}
	now := e.now()
	gain := offlineGain(now.Sub(e.st.progress.LastOnline), e.st.progress.PassiveRate, e.st.offlineEfficiency())
	if gain <= 0 {
		return 0
	}
	e.st.progress.OfflineEarnings = gain
	e.st.progress.LastOnline = now
	return gain
}

// CollectOffline credits the pending offline buffer and clears it,
// returning the amount collected.
func (e *Engine) CollectOffline() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	earned := e.st.progress.OfflineEarnings
	if earned <= 0 {
		return 0
	}
	e.st.progress.credit(earned)
	e.st.progress.OfflineEarned += earned
	e.st.progress.OfflineEarnings = 0
	e.st.checkAchievements(e.now())
	return earned
}

// LatestAchievement returns the most recently unlocked achievement for
// notification, or nil when there is nothing to announce.
func (e *Engine) LatestAchievement() *AchievementState {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.st.latestAchievement == "" {
		return nil
	}
	for i := range e.st.achievements {
		if e.st.achievements[i].ID == e.st.latestAchievement {
			a := e.st.achievements[i]
			return &a
		}
	}
	return nil
}

// AcknowledgeAchievement clears the notification pointer.
func (e *Engine) AcknowledgeAchievement() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.st.latestAchievement = ""
}

// Snapshot copies the full state out for rendering. The copy shares nothing
// mutable with the engine.
type Snapshot struct {
	Ready        bool
	Loaded       bool
	LoadFailed   bool
	Progress     Progress
	Businesses   []BusinessState
	TeamMembers  []TeamState
	Upgrades     []UpgradeState
	Achievements []AchievementState
}

func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap := Snapshot{
		Ready:        e.st.initialized,
		Loaded:       e.st.loaded,
		LoadFailed:   e.st.loadFailed,
		Progress:     e.st.progress,
		Businesses:   make([]BusinessState, len(e.st.businesses)),
		TeamMembers:  append([]TeamState(nil), e.st.team...),
		Upgrades:     append([]UpgradeState(nil), e.st.upgrades...),
		Achievements: append([]AchievementState(nil), e.st.achievements...),
	}
	for i, b := range e.st.businesses {
		copied := b
		if b.Managers != nil {
			copied.Managers = make(map[string]int, len(b.Managers))
			for k, v := range b.Managers {
				copied.Managers[k] = v
			}
		}
		snap.Businesses[i] = copied
	}
	return snap
}
