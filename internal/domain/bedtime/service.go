package bedtime

import (
	"context"
	"log/slog"

	apperrors "github.com/yanqian/betterrest/pkg/errors"
)

// Service exposes bedtime estimation to transports.
type Service interface {
	Estimate(ctx context.Context, req Request) (Response, error)
}

type service struct {
	cfg    Config
	source OracleSource
	logger *slog.Logger
}

// NewService wires up the bedtime domain.
func NewService(cfg Config, source OracleSource, logger *slog.Logger) Service {
	if !cfg.ClockStyle.Valid() {
		cfg.ClockStyle = Clock12h
	}
	return &service{
		cfg:    cfg,
		source: source,
		logger: logger.With("component", "bedtime.service"),
	}
}

func (s *service) Estimate(ctx context.Context, req Request) (Response, error) {
	in := req.Input()
	if err := in.Validate(); err != nil {
		return Response{}, apperrors.Wrap(apperrors.CodeInvalidInput, err.Error(), err)
	}

	rec, err := Estimate(ctx, s.source, in, s.cfg.ClockStyle)
	if err != nil {
		s.logger.Warn("bedtime estimation failed", "wake", in.WakeTime.String(), "sleepGoal", in.SleepGoal, "coffee", in.Coffee, "error", err)
		return Response{}, apperrors.Wrap(apperrors.CodeEstimationError, ErrorMessage, err)
	}
	s.logger.Debug("bedtime estimated", "wake", in.WakeTime.String(), "bedtime", rec.Bedtime, "modelVersion", rec.ModelVersion)

	return Response{
		Bedtime:               rec.Bedtime,
		WakeTime:              FormatClock(int(in.WakeTime.SecondsSinceMidnight()), s.cfg.ClockStyle),
		SleepGoal:             in.SleepGoal,
		Coffee:                in.Coffee,
		PredictedSleepSeconds: rec.PredictedSleepSeconds,
		ModelVersion:          rec.ModelVersion,
	}, nil
}
