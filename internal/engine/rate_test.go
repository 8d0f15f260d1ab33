package engine

import (
	"testing"

	"devcap/internal/catalog"
)

func TestPassiveRate(t *testing.T) {
	businesses := []BusinessState{
		{Business: catalog.Business{ID: "script", BaseProduction: 10}, Level: 1},
		{Business: catalog.Business{ID: "saas", BaseProduction: 20}},
	}
	team := []TeamState{
		{TeamMember: catalog.TeamMember{ID: "junior", BaseProduction: 2}, Count: 3},
	}

	tests := []struct {
		name     string
		upgrades []UpgradeState
		want     float64
	}{
		{
			name: "no upgrades",
			// 10*1 + 2*3
			want: 16,
		},
		{
			name: "scoped and global multipliers stack multiplicatively",
			upgrades: []UpgradeState{
				{Upgrade: catalog.Upgrade{ID: "a", Type: catalog.UpgradeBusiness, Multiplier: 2}, Purchased: true},
				{Upgrade: catalog.Upgrade{ID: "b", Type: catalog.UpgradeBusiness, Multiplier: 1.5, TargetID: "script"}, Purchased: true},
				{Upgrade: catalog.Upgrade{ID: "c", Type: catalog.UpgradeAll, Multiplier: 2}, Purchased: true},
			},
			// script: 10 * 2 * 1.5 * 2 = 60; team: 6 * 2 = 12
			want: 72,
		},
		{
			name: "unpurchased upgrades ignored",
			upgrades: []UpgradeState{
				{Upgrade: catalog.Upgrade{ID: "a", Type: catalog.UpgradeAll, Multiplier: 100}},
			},
			want: 16,
		},
		{
			name: "target scoping excludes other producers",
			upgrades: []UpgradeState{
				{Upgrade: catalog.Upgrade{ID: "a", Type: catalog.UpgradeBusiness, Multiplier: 3, TargetID: "saas"}, Purchased: true},
			},
			// saas is level 0, so its multiplier never contributes
			want: 16,
		},
		{
			name: "click upgrades never touch passive rate",
			upgrades: []UpgradeState{
				{Upgrade: catalog.Upgrade{ID: "a", Type: catalog.UpgradeClick, Multiplier: 10}, Purchased: true},
			},
			want: 16,
		},
		{
			name: "team upgrade scopes to team only",
			upgrades: []UpgradeState{
				{Upgrade: catalog.Upgrade{ID: "a", Type: catalog.UpgradeTeam, Multiplier: 2}, Purchased: true},
			},
			// 10 + 6*2
			want: 22,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := passiveRate(businesses, team, tt.upgrades)
			if got != tt.want {
				t.Fatalf("passiveRate = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPassiveRateFloorsResult(t *testing.T) {
	businesses := []BusinessState{
		{Business: catalog.Business{ID: "x", BaseProduction: 1.4}, Level: 1},
	}
	if got := passiveRate(businesses, nil, nil); got != 1 {
		t.Fatalf("passiveRate = %v, want floored 1", got)
	}
}

func TestPassiveRateEmptyStateIsZero(t *testing.T) {
	if got := passiveRate(nil, nil, nil); got != 0 {
		t.Fatalf("passiveRate = %v, want 0", got)
	}
}
