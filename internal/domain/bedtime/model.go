package bedtime

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Form ranges and defaults.
const (
	DefaultWakeHour   = 7
	DefaultWakeMinute = 0

	DefaultSleepGoal = 8.0
	MinSleepGoal     = 4.0
	MaxSleepGoal     = 12.0
	SleepGoalStep    = 0.25

	DefaultCoffee = 1
	MinCoffee     = 1
	MaxCoffee     = 20
)

// ErrorMessage is shown in place of a bedtime whenever the oracle cannot produce one.
const ErrorMessage = "Sorry, there was a problem calculating your bedtime."

// Feature schema the oracle artifact must declare, in input order.
var FeatureNames = []string{"wake", "estimatedSleep", "coffee"}

// OutputName is the oracle's single output column.
const OutputName = "actualSleep"

// WakeTime is a time of day with minute precision.
type WakeTime struct {
	Hour   int
	Minute int
}

// DefaultWakeTime returns 07:00.
func DefaultWakeTime() WakeTime {
	return WakeTime{Hour: DefaultWakeHour, Minute: DefaultWakeMinute}
}

// ParseWakeTime accepts "HH:MM", "H:MM" or a bare hour; a missing minute defaults to 0.
func ParseWakeTime(value string) (WakeTime, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return WakeTime{}, errors.New("wake time cannot be empty")
	}
	hourPart, minutePart, _ := strings.Cut(trimmed, ":")
	hour, err := strconv.Atoi(strings.TrimSpace(hourPart))
	if err != nil {
		return WakeTime{}, fmt.Errorf("invalid hour %q", hourPart)
	}
	minute := 0
	if strings.TrimSpace(minutePart) != "" {
		minute, err = strconv.Atoi(strings.TrimSpace(minutePart))
		if err != nil {
			return WakeTime{}, fmt.Errorf("invalid minute %q", minutePart)
		}
	}
	wt := WakeTime{Hour: hour, Minute: minute}
	if err := wt.Validate(); err != nil {
		return WakeTime{}, err
	}
	return wt, nil
}

// Validate reports whether the value is a real clock time.
func (w WakeTime) Validate() error {
	if w.Hour < 0 || w.Hour > 23 {
		return fmt.Errorf("hour %d out of range [0, 23]", w.Hour)
	}
	if w.Minute < 0 || w.Minute > 59 {
		return fmt.Errorf("minute %d out of range [0, 59]", w.Minute)
	}
	return nil
}

// SecondsSinceMidnight is the oracle's wake feature.
func (w WakeTime) SecondsSinceMidnight() float64 {
	return float64(w.Hour*3600 + w.Minute*60)
}

// String renders the value as zero-padded "HH:MM".
func (w WakeTime) String() string {
	return fmt.Sprintf("%02d:%02d", w.Hour, w.Minute)
}

// MarshalJSON encodes the wake time as "HH:MM".
func (w WakeTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(w.String())
}

// UnmarshalJSON accepts either "HH:MM" or {"hour": h, "minute": m}; absent components are 0.
func (w *WakeTime) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		return nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		parsed, err := ParseWakeTime(text)
		if err != nil {
			return err
		}
		*w = parsed
		return nil
	}
	var parts struct {
		Hour   *int `json:"hour"`
		Minute *int `json:"minute"`
	}
	if err := json.Unmarshal(data, &parts); err != nil {
		return err
	}
	parsed := WakeTime{}
	if parts.Hour != nil {
		parsed.Hour = *parts.Hour
	}
	if parts.Minute != nil {
		parsed.Minute = *parts.Minute
	}
	if err := parsed.Validate(); err != nil {
		return err
	}
	*w = parsed
	return nil
}

// Input is one (wake time, sleep goal, coffee) triple.
type Input struct {
	WakeTime  WakeTime
	SleepGoal float64
	Coffee    int
}

// DefaultInput mirrors the initial form values.
func DefaultInput() Input {
	return Input{WakeTime: DefaultWakeTime(), SleepGoal: DefaultSleepGoal, Coffee: DefaultCoffee}
}

// Validate checks the triple against the form ranges.
func (in Input) Validate() error {
	if err := in.WakeTime.Validate(); err != nil {
		return err
	}
	if math.IsNaN(in.SleepGoal) || in.SleepGoal < MinSleepGoal || in.SleepGoal > MaxSleepGoal {
		return fmt.Errorf("sleepGoal must be within [%g, %g] hours", MinSleepGoal, MaxSleepGoal)
	}
	if in.Coffee < MinCoffee || in.Coffee > MaxCoffee {
		return fmt.Errorf("coffee must be within [%d, %d] cups", MinCoffee, MaxCoffee)
	}
	return nil
}

// Features converts the input into the oracle's feature vector.
func (in Input) Features() Features {
	return Features{
		Wake:           in.WakeTime.SecondsSinceMidnight(),
		EstimatedSleep: in.SleepGoal,
		Coffee:         float64(in.Coffee),
	}
}

// Features is the oracle input, ordered as FeatureNames.
type Features struct {
	Wake           float64
	EstimatedSleep float64
	Coffee         float64
}

// Vector returns the features in schema order.
func (f Features) Vector() []float64 {
	return []float64{f.Wake, f.EstimatedSleep, f.Coffee}
}

// Recommendation is the estimator's successful result.
type Recommendation struct {
	Bedtime               string
	BedtimeSeconds        int
	PredictedSleepSeconds float64
	ModelVersion          string
}

// ClockStyle selects the short time layout used for display.
type ClockStyle string

const (
	Clock12h ClockStyle = "12h"
	Clock24h ClockStyle = "24h"
)

// Layout returns the time.Format layout for the style; unknown styles fall back to 12h.
func (c ClockStyle) Layout() string {
	if c == Clock24h {
		return "15:04"
	}
	return "3:04 PM"
}

// Valid reports whether the style is supported.
func (c ClockStyle) Valid() bool {
	return c == Clock12h || c == Clock24h
}

// Request is the transport payload accepted by Service.Estimate. Omitted fields take form defaults.
type Request struct {
	WakeTime  *WakeTime `json:"wakeTime"`
	SleepGoal *float64  `json:"sleepGoal"`
	Coffee    *int      `json:"coffee"`
}

// Input resolves the request against the defaults.
func (r Request) Input() Input {
	in := DefaultInput()
	if r.WakeTime != nil {
		in.WakeTime = *r.WakeTime
	}
	if r.SleepGoal != nil {
		in.SleepGoal = *r.SleepGoal
	}
	if r.Coffee != nil {
		in.Coffee = *r.Coffee
	}
	return in
}

// Response is serialized back to API consumers.
type Response struct {
	Bedtime               string  `json:"bedtime"`
	WakeTime              string  `json:"wakeTime"`
	SleepGoal             float64 `json:"sleepGoal"`
	Coffee                int     `json:"coffee"`
	PredictedSleepSeconds float64 `json:"predictedSleepSeconds"`
	ModelVersion          string  `json:"modelVersion,omitempty"`
}

// Config wires runtime options for the estimator service.
type Config struct {
	ClockStyle ClockStyle
}
