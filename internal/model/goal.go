package model

import (
	"fmt"
	"math"
	"time"
)

// Frequency describes how often a savings goal contribution recurs.
type Frequency string

// Supported contribution frequencies.
const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
)

// ValidFrequency reports whether f is one of the supported frequencies.
func ValidFrequency(f Frequency) bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyYearly:
		return true
	default:
		return false
	}
}

// SavingsGoal represents a user-defined savings target. CurrentAmount starts
// at zero and only ever grows through contributions.
type SavingsGoal struct {
	StartDate          time.Time
	ID                 string
	Name               string
	Frequency          Frequency
	TargetAmount       float64
	CurrentAmount      float64
	ContributionAmount float64
}

// Validate checks the goal invariants for a newly created goal.
func (g *SavingsGoal) Validate() error {
	if g.Name == "" {
		return fmt.Errorf("goal name is required")
	}
	if g.TargetAmount <= 0 {
		return fmt.Errorf("goal target must be positive, got %.2f", g.TargetAmount)
	}
	if g.ContributionAmount <= 0 {
		return fmt.Errorf("goal contribution must be positive, got %.2f", g.ContributionAmount)
	}
	if !ValidFrequency(g.Frequency) {
		return fmt.Errorf("unknown contribution frequency: %q", g.Frequency)
	}
	return nil
}

// Progress returns the percent of the target reached, clamped to [0, 100]
// for display. Contributions may push CurrentAmount past the target; the
// stored amount is never clamped, only this view of it.
func (g *SavingsGoal) Progress() float64 {
	if g.TargetAmount <= 0 {
		return 0
	}
	p := g.CurrentAmount / g.TargetAmount * 100
	return clampPercent(p)
}

func clampPercent(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// EmergencyFund tracks a rainy-day reserve with a fixed monthly contribution.
type EmergencyFund struct {
	LastContribution    time.Time
	CurrentAmount       float64
	TargetAmount        float64
	MonthlyContribution float64
}

// Progress returns the percent of the target reached, clamped for display.
func (f *EmergencyFund) Progress() float64 {
	if f.TargetAmount <= 0 {
		return 0
	}
	return clampPercent(f.CurrentAmount / f.TargetAmount * 100)
}

// MonthsToGoal returns ceil((target-current)/monthlyContribution). Once the
// fund meets or exceeds its target the result is zero or negative.
func (f *EmergencyFund) MonthsToGoal() int {
	if f.MonthlyContribution <= 0 {
		return 0
	}
	return int(math.Ceil((f.TargetAmount - f.CurrentAmount) / f.MonthlyContribution))
}
