package form

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yanqian/betterrest/internal/domain/bedtime"
	apperrors "github.com/yanqian/betterrest/pkg/errors"
	"github.com/yanqian/betterrest/pkg/util"
)

// Service drives the single-screen bedtime form. Every change recomputes the recommendation.
type Service interface {
	Open(ctx context.Context) (View, error)
	Get(ctx context.Context, id string) (View, error)
	Apply(ctx context.Context, id string, event Event) (View, error)
	Close(ctx context.Context, id string) error
}

type service struct {
	cfg    Config
	store  Store
	source bedtime.OracleSource
	logger *slog.Logger
	now    func() time.Time
	newID  func() string
}

// NewService wires up the form domain.
func NewService(cfg Config, store Store, source bedtime.OracleSource, logger *slog.Logger) Service {
	if !cfg.ClockStyle.Valid() {
		cfg.ClockStyle = bedtime.Clock12h
	}
	return &service{
		cfg:    cfg,
		store:  store,
		source: source,
		logger: logger.With("component", "form.service"),
		now:    util.NowUTC,
		newID:  uuid.NewString,
	}
}

func (s *service) Open(ctx context.Context) (View, error) {
	in := bedtime.DefaultInput()
	now := s.now()
	state := State{
		ID:        s.newID(),
		WakeTime:  in.WakeTime,
		SleepGoal: in.SleepGoal,
		Coffee:    in.Coffee,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Save(ctx, state, s.cfg.TTL); err != nil {
		return View{}, apperrors.Wrap(apperrors.CodeStoreError, "failed to open form", err)
	}
	s.logger.Info("form opened", "form_id", state.ID)
	return s.render(ctx, state), nil
}

func (s *service) Get(ctx context.Context, id string) (View, error) {
	state, err := s.load(ctx, id)
	if err != nil {
		return View{}, err
	}
	return s.render(ctx, state), nil
}

func (s *service) Apply(ctx context.Context, id string, event Event) (View, error) {
	state, err := s.load(ctx, id)
	if err != nil {
		return View{}, err
	}
	next, err := applyEvent(state, event)
	if err != nil {
		return View{}, apperrors.Wrap(apperrors.CodeInvalidInput, err.Error(), err)
	}
	next.UpdatedAt = s.now()
	if err := s.store.Save(ctx, next, s.cfg.TTL); err != nil {
		return View{}, apperrors.Wrap(apperrors.CodeStoreError, "failed to save form", err)
	}
	s.logger.Debug("form event applied", "form_id", id, "event", string(event.Type))
	return s.render(ctx, next), nil
}

func (s *service) Close(ctx context.Context, id string) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return apperrors.Wrap(apperrors.CodeStoreError, "failed to close form", err)
	}
	return nil
}

func (s *service) load(ctx context.Context, id string) (State, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return State{}, apperrors.Wrap(apperrors.CodeInvalidInput, "form id cannot be empty", nil)
	}
	state, ok, err := s.store.Get(ctx, id)
	if err != nil {
		return State{}, apperrors.Wrap(apperrors.CodeStoreError, "failed to load form", err)
	}
	if !ok {
		return State{}, apperrors.Wrap(apperrors.CodeNotFound, "form not found", nil)
	}
	return state, nil
}

func (s *service) render(ctx context.Context, state State) View {
	rec, err := bedtime.Estimate(ctx, s.source, state.Input(), s.cfg.ClockStyle)
	if err != nil {
		s.logger.Warn("bedtime estimation failed", "form_id", state.ID, "error", err)
	}
	return View{
		ID:             state.ID,
		WakeTime:       state.WakeTime,
		WakeTimeLabel:  bedtime.FormatClock(int(state.WakeTime.SecondsSinceMidnight()), s.cfg.ClockStyle),
		SleepGoal:      state.SleepGoal,
		SleepGoalLabel: SleepGoalLabel(state.SleepGoal),
		Coffee:         state.Coffee,
		CoffeeLabel:    CoffeeLabel(state.Coffee),
		Recommendation: bedtime.Display(rec, err),
		Estimated:      err == nil,
		ModelVersion:   rec.ModelVersion,
		UpdatedAt:      state.UpdatedAt,
	}
}

func applyEvent(state State, event Event) (State, error) {
	switch event.Type {
	case WakeTimeChanged:
		if event.WakeTime == nil {
			return state, fmt.Errorf("%s requires wakeTime", event.Type)
		}
		if err := event.WakeTime.Validate(); err != nil {
			return state, err
		}
		state.WakeTime = *event.WakeTime
	case SleepGoalChanged:
		if event.SleepGoal == nil {
			return state, fmt.Errorf("%s requires sleepGoal", event.Type)
		}
		state.SleepGoal = SnapSleepGoal(*event.SleepGoal)
	case SleepGoalIncremented:
		state.SleepGoal = SnapSleepGoal(state.SleepGoal + bedtime.SleepGoalStep)
	case SleepGoalDecremented:
		state.SleepGoal = SnapSleepGoal(state.SleepGoal - bedtime.SleepGoalStep)
	case CoffeeChanged:
		if event.Coffee == nil {
			return state, fmt.Errorf("%s requires coffee", event.Type)
		}
		if *event.Coffee < bedtime.MinCoffee || *event.Coffee > bedtime.MaxCoffee {
			return state, fmt.Errorf("coffee must be within [%d, %d] cups", bedtime.MinCoffee, bedtime.MaxCoffee)
		}
		state.Coffee = *event.Coffee
	default:
		return state, fmt.Errorf("unknown event type %q", event.Type)
	}
	return state, nil
}
