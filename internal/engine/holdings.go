package engine

import (
	"math"

	"devcap/internal/catalog"
)

// BusinessState is a catalog business merged with the player's progress on
// it. Managers maps team member id -> how many of that member are assigned
// here; tracking the pair explicitly keeps unassignment unambiguous when
// several member types manage the same business.
type BusinessState struct {
	catalog.Business
	Level    int
	Managers map[string]int
}

// AssignedManagers is the total manager headcount across member types.
func (b BusinessState) AssignedManagers() int {
	total := 0
	for _, n := range b.Managers {
		total += n
	}
	return total
}

// Cost of the next level. Level counts purchases already made, so the first
// purchase costs exactly BaseCost.
func (b BusinessState) Cost() float64 {
	return math.Floor(b.BaseCost * math.Pow(b.CostMultiplier, float64(b.Level)))
}

// Unlocked reports whether the business is purchasable at the given lifetime
// total.
func (b BusinessState) Unlocked(totalLoC float64) bool {
	return totalLoC >= b.UnlockRequirement
}

func (s *state) business(id string) *BusinessState {
	for i := range s.businesses {
		if s.businesses[i].ID == id {
			return &s.businesses[i]
		}
	}
	return nil
}

// purchaseBusiness buys one level. Unknown id or short balance is a silent
// no-op. One call always buys exactly one level.
func (s *state) purchaseBusiness(id string) bool {
	b := s.business(id)
	if b == nil {
		return false
	}
	if !s.progress.debit(b.Cost()) {
		return false
	}
	b.Level++
	s.recomputeRate()
	return true
}

// assignManager moves one available member of the given type into the
// business. Production is unaffected: manager assignment is cosmetic, the
// rate formula never reads it.
func (s *state) assignManager(businessID, teamID string) bool {
	b := s.business(businessID)
	t := s.teamMember(teamID)
	if b == nil || t == nil {
		return false
	}
	if t.AvailableCount <= 0 {
		return false
	}
	t.AvailableCount--
	if b.Managers == nil {
		b.Managers = make(map[string]int)
	}
	b.Managers[teamID]++
	return true
}

// unassignManager is the inverse; a business with no managers of that type
// is a silent no-op.
func (s *state) unassignManager(businessID, teamID string) bool {
	b := s.business(businessID)
	t := s.teamMember(teamID)
	if b == nil || t == nil {
		return false
	}
	if b.Managers[teamID] <= 0 {
		return false
	}
	b.Managers[teamID]--
	if b.Managers[teamID] == 0 {
		delete(b.Managers, teamID)
	}
	t.AvailableCount++
	return true
}

// ownedBusinessCount counts distinct businesses at level >= 1.
func (s *state) ownedBusinessCount() int {
	count := 0
	for i := range s.businesses {
		if s.businesses[i].Level > 0 {
			count++
		}
	}
	return count
}
