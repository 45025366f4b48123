package bedtime

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/yanqian/betterrest/pkg/util"
)

// ErrEstimation is the single failure kind of the estimator. It covers both an unavailable oracle and a failed
// inference; callers show ErrorMessage instead of inspecting the cause.
var ErrEstimation = errors.New("bedtime estimation failed")

// Oracle is the trained regression model: three features in, predicted actual sleep in seconds out.
type Oracle interface {
	Predict(ctx context.Context, features Features) (float64, error)
}

// OracleSource resolves the current oracle artifact.
type OracleSource interface {
	Load(ctx context.Context) (Oracle, error)
}

// Estimate computes the recommended bedtime for in. The oracle is resolved on every call.
func Estimate(ctx context.Context, source OracleSource, in Input, style ClockStyle) (Recommendation, error) {
	if source == nil {
		return Recommendation{}, fmt.Errorf("%w: no oracle source configured", ErrEstimation)
	}
	oracle, err := source.Load(ctx)
	if err != nil {
		return Recommendation{}, fmt.Errorf("%w: load oracle: %w", ErrEstimation, err)
	}
	if oracle == nil {
		return Recommendation{}, fmt.Errorf("%w: oracle source returned nothing", ErrEstimation)
	}

	predicted, err := predict(ctx, oracle, in.Features())
	if err != nil {
		return Recommendation{}, fmt.Errorf("%w: predict: %w", ErrEstimation, err)
	}
	if math.IsNaN(predicted) || math.IsInf(predicted, 0) {
		return Recommendation{}, fmt.Errorf("%w: oracle returned non-finite prediction %v", ErrEstimation, predicted)
	}

	seconds := BedtimeSeconds(in.WakeTime.SecondsSinceMidnight(), predicted)
	rec := Recommendation{
		Bedtime:               FormatClock(seconds, style),
		BedtimeSeconds:        seconds,
		PredictedSleepSeconds: predicted,
	}
	if v, ok := oracle.(interface{ Version() string }); ok {
		rec.ModelVersion = v.Version()
	}
	return rec, nil
}

// Display returns the text a form shows for an estimate outcome.
func Display(rec Recommendation, err error) string {
	if err != nil || rec.Bedtime == "" {
		return ErrorMessage
	}
	return rec.Bedtime
}

func predict(ctx context.Context, oracle Oracle, features Features) (value float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("oracle panicked: %v", r)
		}
	}()
	return oracle.Predict(ctx, features)
}

// BedtimeSeconds subtracts the predicted sleep from the wake time and wraps the result into one clock day.
// Sub-second remainders are floored, matching a short clock display that drops seconds.
func BedtimeSeconds(wakeSeconds, predictedSleepSeconds float64) int {
	raw := math.Floor(wakeSeconds - predictedSleepSeconds)
	wrapped := math.Mod(raw, util.SecondsPerDay)
	if wrapped < 0 {
		wrapped += util.SecondsPerDay
	}
	return int(wrapped)
}

// FormatClock renders seconds since midnight with the style's short layout, e.g. "10:00 PM".
func FormatClock(secondsSinceMidnight int, style ClockStyle) string {
	midnight := time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)
	return midnight.Add(time.Duration(secondsSinceMidnight) * time.Second).Format(style.Layout())
}
