package engine

import (
	"math"
	"time"
)

// OfflineMinimumElapsed debounces visibility flicker: returning after less
// than this earns nothing and does not reset the last-online marker.
const OfflineMinimumElapsed = 10 * time.Second

// BaseOfflineEfficiency is the fraction of the active passive rate earned
// while away, before offline upgrades.
const BaseOfflineEfficiency = 0.5

// Progress is the scalar economy: spendable balance, lifetime total, click
// yield, the derived passive rate, and the pending offline buffer.
type Progress struct {
	CurrentLoC      float64
	TotalLoC        float64
	LoCPerClick     float64
	PassiveRate     float64
	OfflineEarnings float64
	OfflineEarned   float64
	LastOnline      time.Time
}

func newProgress(now time.Time) Progress {
	return Progress{LoCPerClick: 1, LastOnline: now}
}

// credit raises both the spendable balance and the lifetime total. TotalLoC
// never goes down; CurrentLoC <= TotalLoC holds because spending only ever
// goes through debit.
func (p *Progress) credit(amount float64) {
	if amount <= 0 {
		return
	}
	p.CurrentLoC += amount
	p.TotalLoC += amount
}

func (p *Progress) canAfford(cost float64) bool {
	return p.CurrentLoC >= cost
}

// debit spends from the balance. Returns false and leaves state untouched
// when the balance is short.
func (p *Progress) debit(cost float64) bool {
	if !p.canAfford(cost) {
		return false
	}
	p.CurrentLoC -= cost
	return true
}

// offlineGain converts away-time into earnings. Elapsed under the minimum
// yields zero so rapid tab flicker never pays out.
func offlineGain(elapsed time.Duration, rate, efficiency float64) float64 {
	if elapsed < OfflineMinimumElapsed {
		return 0
	}
	return math.Floor(rate * elapsed.Seconds() * efficiency)
}
