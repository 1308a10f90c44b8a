// Package tracker holds the arithmetic and state machines behind a tracking session:
// entry totals against a target, the countdown timer that accrues elapsed time into
// entries, and the calendar week aggregation.
package tracker

import (
	"fmt"

	"github.com/balkashynov/durok/internal/parser"
)

// Totals is the running sum of logged entries compared against a target
type Totals struct {
	TotalMinutes     int `json:"total_minutes" yaml:"total_minutes"`
	TargetMinutes    int `json:"target_minutes" yaml:"target_minutes"`
	RemainingMinutes int `json:"remaining_minutes" yaml:"remaining_minutes"`
}

// ComputeTotals sums the parsed entries and compares them with the target.
// RemainingMinutes is 0 when no target is set.
func ComputeTotals(strategy parser.Strategy, entries []parser.Input, target parser.Input) Totals {
	total := 0
	for _, entry := range entries {
		total += strategy.Minutes(entry)
	}
	return NewTotals(total, strategy.Minutes(target))
}

// NewTotals builds Totals from already parsed minute values
func NewTotals(totalMinutes, targetMinutes int) Totals {
	t := Totals{
		TotalMinutes:  totalMinutes,
		TargetMinutes: targetMinutes,
	}
	if targetMinutes > 0 {
		t.RemainingMinutes = targetMinutes - totalMinutes
	}
	return t
}

// HasTarget reports whether a positive target is set
func (t Totals) HasTarget() bool {
	return t.TargetMinutes > 0
}

// Exceeded reports whether the total is strictly past the target
func (t Totals) Exceeded() bool {
	return t.HasTarget() && t.RemainingMinutes < 0
}

// RemainingText renders the remaining state: "0h 30m remaining",
// "Exceeded by 1h 0m", or "--h --m" when there is no target
func (t Totals) RemainingText() string {
	switch {
	case !t.HasTarget():
		return "--h --m"
	case t.Exceeded():
		return fmt.Sprintf("Exceeded by %s", parser.FormatMinutes(-t.RemainingMinutes))
	default:
		return fmt.Sprintf("%s remaining", parser.FormatMinutes(t.RemainingMinutes))
	}
}
