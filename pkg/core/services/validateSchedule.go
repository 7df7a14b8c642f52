package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/felixgrant/shiftwise/internal/config"
	"github.com/felixgrant/shiftwise/pkg/core/lifecycle"
	"github.com/felixgrant/shiftwise/pkg/core/model"
	"github.com/felixgrant/shiftwise/pkg/core/validation"
	"github.com/felixgrant/shiftwise/pkg/utils/keymutex"
)

// ValidateScheduleStore defines the database operations needed for validation
type ValidateScheduleStore interface {
	GetSchedule(ctx context.Context, id string) (*model.Schedule, error)
	GetAssignments(ctx context.Context, scheduleID string) ([]model.Assignment, error)
	GetShifts(ctx context.Context, from, to time.Time, department string) ([]model.Shift, error)
}

// ValidateSchedule rebuilds the validation report for a schedule. It is
// read-only and idempotent: no state changes, no serialization required.
func ValidateSchedule(
	ctx context.Context,
	store ValidateScheduleStore,
	rosterProvider RosterProvider,
	cfg *config.Config,
	logger *zap.Logger,
	scheduleID string,
) (*validation.Report, error) {
	logger.Debug("Starting validateSchedule", zap.String("schedule_id", scheduleID))

	sched, err := store.GetSchedule(ctx, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch schedule: %w", err)
	}
	if sched == nil {
		return nil, fmt.Errorf("schedule not found: %s", scheduleID)
	}

	report, err := buildReport(ctx, store, rosterProvider, cfg, sched)
	if err != nil {
		return nil, err
	}

	logger.Debug("Validation complete", zap.String("summary", report.Summary()))
	return report, nil
}

// SubmitValidationStore defines the database operations needed to submit a
// schedule for validation
type SubmitValidationStore interface {
	GetSchedule(ctx context.Context, id string) (*model.Schedule, error)
	UpdateSchedule(ctx context.Context, sched *model.Schedule) error
	GetAssignments(ctx context.Context, scheduleID string) ([]model.Assignment, error)
	GetShifts(ctx context.Context, from, to time.Time, department string) ([]model.Shift, error)
}

// SubmitValidationResult reports whether the draft advanced to validated
type SubmitValidationResult struct {
	Schedule *model.Schedule
	Report   *validation.Report
	// Validated is false when the report carries blocking errors and the
	// schedule stayed in draft
	Validated bool
}

// SubmitValidation gates draft → validated on a clean validation report.
// Serialized per schedule so a concurrent publish cannot observe a half
// transition.
func SubmitValidation(
	ctx context.Context,
	store SubmitValidationStore,
	rosterProvider RosterProvider,
	locks *keymutex.KeyMutex,
	cfg *config.Config,
	logger *zap.Logger,
	scheduleID string,
	actorID string,
) (*SubmitValidationResult, error) {
	locks.Lock(scheduleID)
	defer locks.Unlock(scheduleID)

	logger.Debug("Starting submitValidation", zap.String("schedule_id", scheduleID))

	sched, err := store.GetSchedule(ctx, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch schedule: %w", err)
	}
	if sched == nil {
		return nil, fmt.Errorf("schedule not found: %s", scheduleID)
	}

	report, err := buildReport(ctx, store, rosterProvider, cfg, sched)
	if err != nil {
		return nil, err
	}

	if err := lifecycle.SubmitValidation(sched, report, actorID, time.Now().UTC()); err != nil {
		return nil, err
	}

	if sched.Status == model.StatusValidated {
		if err := store.UpdateSchedule(ctx, sched); err != nil {
			return nil, fmt.Errorf("failed to update schedule: %w", err)
		}
		logger.Info("Schedule validated", zap.String("schedule_id", scheduleID))
	} else {
		logger.Info("Schedule kept in draft",
			zap.String("schedule_id", scheduleID),
			zap.Int("blocking_errors", len(report.Errors)))
	}

	return &SubmitValidationResult{
		Schedule:  sched,
		Report:    report,
		Validated: sched.Status == model.StatusValidated,
	}, nil
}
