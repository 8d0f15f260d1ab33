package engine

import "time"

// Wire shapes shared by the engine, the HTTP API, and the CLI client. Saves
// are sparse: only touched entries are sent, absence means default.

type ProgressRecord struct {
	CurrentLoC    float64   `json:"current_loc"`
	TotalLoC      float64   `json:"total_loc"`
	LoCPerClick   float64   `json:"loc_per_click"`
	OfflineEarned float64   `json:"offline_earned"`
	LastActive    time.Time `json:"last_active"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type BusinessSave struct {
	ID               string         `json:"id"`
	Level            int            `json:"level"`
	AssignedManagers int            `json:"assigned_managers"`
	Managers         map[string]int `json:"managers,omitempty"`
}

type TeamSave struct {
	ID             string `json:"id"`
	Count          int    `json:"count"`
	AvailableCount int    `json:"available_count"`
}

// UpgradeSave presence implies purchased.
type UpgradeSave struct {
	ID string `json:"id"`
}

// AchievementSave presence implies unlocked.
type AchievementSave struct {
	ID         string    `json:"id"`
	UnlockedAt time.Time `json:"unlocked_at"`
}

type SavePayload struct {
	UserID        string            `json:"user_id"`
	CurrentLoC    float64           `json:"current_loc"`
	TotalLoC      float64           `json:"total_loc"`
	LoCPerClick   float64           `json:"loc_per_click"`
	OfflineEarned float64           `json:"offline_earned"`
	Businesses    []BusinessSave    `json:"businesses,omitempty"`
	TeamMembers   []TeamSave        `json:"team_members,omitempty"`
	Upgrades      []UpgradeSave     `json:"upgrades,omitempty"`
	Achievements  []AchievementSave `json:"achievements,omitempty"`
}

type LoadData struct {
	Progress     ProgressRecord    `json:"progress"`
	Businesses   []BusinessSave    `json:"businesses"`
	Team         []TeamSave        `json:"team"`
	Upgrades     []UpgradeSave     `json:"upgrades"`
	Achievements []AchievementSave `json:"achievements"`
}

// SavePayload exports the current state as a sparse save body for the given
// player.
func (e *Engine) SavePayload(userID string) SavePayload {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := SavePayload{
		UserID:        userID,
		CurrentLoC:    e.st.progress.CurrentLoC,
		TotalLoC:      e.st.progress.TotalLoC,
		LoCPerClick:   e.st.progress.LoCPerClick,
		OfflineEarned: e.st.progress.OfflineEarned,
	}
	for i := range e.st.businesses {
		b := &e.st.businesses[i]
		if b.Level <= 0 {
			continue
		}
		save := BusinessSave{ID: b.ID, Level: b.Level, AssignedManagers: b.AssignedManagers()}
		if len(b.Managers) > 0 {
			save.Managers = make(map[string]int, len(b.Managers))
			for k, v := range b.Managers {
				save.Managers[k] = v
			}
		}
		out.Businesses = append(out.Businesses, save)
	}
	for i := range e.st.team {
		t := &e.st.team[i]
		if t.Count <= 0 {
			continue
		}
		out.TeamMembers = append(out.TeamMembers, TeamSave{ID: t.ID, Count: t.Count, AvailableCount: t.AvailableCount})
	}
	for i := range e.st.upgrades {
		if e.st.upgrades[i].Purchased {
			out.Upgrades = append(out.Upgrades, UpgradeSave{ID: e.st.upgrades[i].ID})
		}
	}
	for i := range e.st.achievements {
		a := &e.st.achievements[i]
		if a.Unlocked {
			out.Achievements = append(out.Achievements, AchievementSave{ID: a.ID, UnlockedAt: a.UnlockedAt})
		}
	}
	return out
}

// ApplyLoaded overlays persisted state onto the initialized defaults. It is
// an overlay, never a reset: unknown ids are skipped, missing numerics keep
// their zero defaults, and inconsistent counts are clamped back into range,
// so a partial or corrupted payload can degrade progress but can never make
// the engine unusable. The passive rate is rederived, not trusted.
func (e *Engine) ApplyLoaded(data LoadData) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.st.initialized {
		return
	}

	p := &e.st.progress
	p.CurrentLoC = data.Progress.CurrentLoC
	p.TotalLoC = data.Progress.TotalLoC
	if p.TotalLoC < p.CurrentLoC {
		p.TotalLoC = p.CurrentLoC
	}
	p.LoCPerClick = data.Progress.LoCPerClick
	if p.LoCPerClick < 1 {
		p.LoCPerClick = 1
	}
	if data.Progress.OfflineEarned > 0 {
		p.OfflineEarned = data.Progress.OfflineEarned
	}
	if !data.Progress.LastActive.IsZero() {
		p.LastOnline = data.Progress.LastActive
	} else {
		p.LastOnline = e.now()
	}

	for _, save := range data.Businesses {
		b := e.st.business(save.ID)
		if b == nil || save.Level <= 0 {
			continue
		}
		b.Level = save.Level
		b.Managers = nil
		for teamID, n := range save.Managers {
			if n <= 0 || e.st.teamMember(teamID) == nil {
				continue
			}
			if b.Managers == nil {
				b.Managers = make(map[string]int)
			}
			b.Managers[teamID] = n
		}
	}
	for _, save := range data.Team {
		t := e.st.teamMember(save.ID)
		if t == nil || save.Count <= 0 {
			continue
		}
		t.Count = save.Count
	}
	for _, save := range data.Upgrades {
		if u := e.st.upgrade(save.ID); u != nil {
			u.Purchased = true
		}
	}
	for _, save := range data.Achievements {
		if a := e.st.achievement(save.ID); a != nil {
			a.Unlocked = true
			a.UnlockedAt = save.UnlockedAt
		}
	}

	e.st.reconcileManagers()
	e.st.recomputeRate()
	e.st.loaded = true
	e.st.loadFailed = false
}

func (s *state) achievement(id string) *AchievementState {
	for i := range s.achievements {
		if s.achievements[i].ID == id {
			return &s.achievements[i]
		}
	}
	return nil
}

// reconcileManagers re-derives each member's available count from the
// assignment mapping, enforcing owned == available + assigned even when the
// loaded payload disagrees with itself. Over-assignment is trimmed from the
// businesses until the books balance.
func (s *state) reconcileManagers() {
	for i := range s.team {
		t := &s.team[i]
		assigned := 0
		for j := range s.businesses {
			assigned += s.businesses[j].Managers[t.ID]
		}
		if assigned > t.Count {
			excess := assigned - t.Count
			for j := range s.businesses {
				if excess <= 0 {
					break
				}
				b := &s.businesses[j]
				n := b.Managers[t.ID]
				if n == 0 {
					continue
				}
				trim := n
				if trim > excess {
					trim = excess
				}
				b.Managers[t.ID] = n - trim
				if b.Managers[t.ID] == 0 {
					delete(b.Managers, t.ID)
				}
				excess -= trim
			}
			assigned = t.Count
		}
		t.AvailableCount = t.Count - assigned
	}
}
