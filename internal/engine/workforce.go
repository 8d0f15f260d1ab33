package engine

import (
	"math"

	"devcap/internal/catalog"
)

// TeamState is a catalog team member merged with the player's hires.
// AvailableCount <= Count always; the difference is assigned out as
// managers across businesses.
type TeamState struct {
	catalog.TeamMember
	Count          int
	AvailableCount int
}

// Cost of the next hire, scaling with the number already hired.
func (t TeamState) Cost() float64 {
	return math.Floor(t.BaseCost * math.Pow(t.CostMultiplier, float64(t.Count)))
}

func (t TeamState) Unlocked(totalLoC float64) bool {
	return totalLoC >= t.UnlockRequirement
}

func (s *state) teamMember(id string) *TeamState {
	for i := range s.team {
		if s.team[i].ID == id {
			return &s.team[i]
		}
	}
	return nil
}

// hireTeamMember hires one unit: debit, bump owned and available, recompute
// the passive rate. Unknown id or short balance is a silent no-op.
func (s *state) hireTeamMember(id string) bool {
	t := s.teamMember(id)
	if t == nil {
		return false
	}
	if !s.progress.debit(t.Cost()) {
		return false
	}
	t.Count++
	t.AvailableCount++
	s.recomputeRate()
	return true
}

// hiredTeamCount sums hires across all member types.
func (s *state) hiredTeamCount() int {
	total := 0
	for i := range s.team {
		total += s.team[i].Count
	}
	return total
}
