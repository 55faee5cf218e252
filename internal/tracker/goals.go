package tracker

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/finbuzz/finbuzz/internal/common"
	"github.com/finbuzz/finbuzz/internal/model"
)

// GoalTracker owns the session's savings goals.
type GoalTracker struct {
	goals []model.SavingsGoal
	mu    sync.Mutex
}

// NewGoalTracker creates an empty goal tracker.
func NewGoalTracker() *GoalTracker {
	return &GoalTracker{}
}

// Add validates and records a new goal. CurrentAmount always starts at zero.
func (t *GoalTracker) Add(name string, target, contribution float64, frequency model.Frequency) (model.SavingsGoal, error) {
	goal := model.SavingsGoal{
		ID:                 uuid.NewString(),
		Name:               name,
		TargetAmount:       target,
		CurrentAmount:      0,
		ContributionAmount: contribution,
		Frequency:          frequency,
		StartDate:          time.Now(),
	}
	if err := goal.Validate(); err != nil {
		return model.SavingsGoal{}, fmt.Errorf("%w: %v", common.ErrInvalidInput, err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.goals = append(t.goals, goal)
	return goal, nil
}

// Contribute adds the goal's fixed contribution amount to its current
// amount. The stored amount may exceed the target; only the Progress view
// clamps.
func (t *GoalTracker) Contribute(goalID string) (model.SavingsGoal, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := range t.goals {
		if t.goals[i].ID == goalID {
			t.goals[i].CurrentAmount += t.goals[i].ContributionAmount
			return t.goals[i], nil
		}
	}
	return model.SavingsGoal{}, fmt.Errorf("goal %s: %w", goalID, common.ErrNotFound)
}

// Reset removes all goals.
func (t *GoalTracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.goals = nil
}

// Goals returns a copy of the goals in insertion order.
func (t *GoalTracker) Goals() []model.SavingsGoal {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]model.SavingsGoal, len(t.goals))
	copy(out, t.goals)
	return out
}

// TotalSaved returns the sum of all goals' current amounts.
func (t *GoalTracker) TotalSaved() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	var total float64
	for _, g := range t.goals {
		total += g.CurrentAmount
	}
	return total
}
