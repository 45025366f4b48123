package form

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/yanqian/betterrest/internal/domain/bedtime"
)

// EventType names a single input change on the form.
type EventType string

const (
	WakeTimeChanged      EventType = "wake_time_changed"
	SleepGoalChanged     EventType = "sleep_goal_changed"
	SleepGoalIncremented EventType = "sleep_goal_incremented"
	SleepGoalDecremented EventType = "sleep_goal_decremented"
	CoffeeChanged        EventType = "coffee_changed"
)

// Event is one change submitted by a client. Only the field matching Type is read.
type Event struct {
	Type      EventType         `json:"type"`
	WakeTime  *bedtime.WakeTime `json:"wakeTime,omitempty"`
	SleepGoal *float64          `json:"sleepGoal,omitempty"`
	Coffee    *int              `json:"coffee,omitempty"`
}

// State is what the session store keeps. The recommendation is derived and never stored.
type State struct {
	ID        string           `json:"id"`
	WakeTime  bedtime.WakeTime `json:"wakeTime"`
	SleepGoal float64          `json:"sleepGoal"`
	Coffee    int              `json:"coffee"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// Input returns the estimator triple held by the form.
func (s State) Input() bedtime.Input {
	return bedtime.Input{WakeTime: s.WakeTime, SleepGoal: s.SleepGoal, Coffee: s.Coffee}
}

// View is the rendered form: inputs, their labels and the current recommendation.
type View struct {
	ID             string           `json:"id"`
	WakeTime       bedtime.WakeTime `json:"wakeTime"`
	WakeTimeLabel  string           `json:"wakeTimeLabel"`
	SleepGoal      float64          `json:"sleepGoal"`
	SleepGoalLabel string           `json:"sleepGoalLabel"`
	Coffee         int              `json:"coffee"`
	CoffeeLabel    string           `json:"coffeeLabel"`
	Recommendation string           `json:"recommendation"`
	Estimated      bool             `json:"estimated"`
	ModelVersion   string           `json:"modelVersion,omitempty"`
	UpdatedAt      time.Time        `json:"updatedAt"`
}

// Config wires runtime options for the form domain.
type Config struct {
	TTL        time.Duration
	ClockStyle bedtime.ClockStyle
}

// SleepGoalLabel renders the stepper title, e.g. "8 hours" or "8.25 hours".
func SleepGoalLabel(hours float64) string {
	return strconv.FormatFloat(hours, 'f', -1, 64) + " hours"
}

// CoffeeLabel renders the picker title, e.g. "1 cup" or "3 cups".
func CoffeeLabel(cups int) string {
	if cups == 1 {
		return "1 cup"
	}
	return fmt.Sprintf("%d cups", cups)
}

// SnapSleepGoal clamps hours to the stepper range and rounds to the nearest step.
func SnapSleepGoal(hours float64) float64 {
	if math.IsNaN(hours) {
		return bedtime.DefaultSleepGoal
	}
	snapped := math.Round(hours/bedtime.SleepGoalStep) * bedtime.SleepGoalStep
	return math.Min(bedtime.MaxSleepGoal, math.Max(bedtime.MinSleepGoal, snapped))
}
