package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/felixgrant/shiftwise/internal/config"
	"github.com/felixgrant/shiftwise/pkg/core/lifecycle"
	"github.com/felixgrant/shiftwise/pkg/core/model"
	"github.com/felixgrant/shiftwise/pkg/core/scheduler"
	"github.com/felixgrant/shiftwise/pkg/utils/keymutex"
)

// GenerateScheduleResult contains the generation outcome
type GenerateScheduleResult struct {
	Schedule *model.Schedule
	// Proposed is everything the solver suggested this run
	Proposed []model.Assignment
	// Inserted counts rows actually written; the remainder already existed or
	// lost a benign race on the uniqueness constraint
	Inserted int
	Unmet    []scheduler.UnmetRequirement
}

// GenerateScheduleStore defines the database operations needed for generation
type GenerateScheduleStore interface {
	GetCurrentSchedule(ctx context.Context, weekStart time.Time) (*model.Schedule, error)
	InsertSchedule(ctx context.Context, sched *model.Schedule) error
	UpdateSchedule(ctx context.Context, sched *model.Schedule) error
	InsertShifts(ctx context.Context, shifts []model.Shift) error
	GetAssignments(ctx context.Context, scheduleID string) ([]model.Assignment, error)
	ExistingAssignmentIDs(ctx context.Context, scheduleID string, ids []string) (map[string]bool, error)
	InsertAssignments(ctx context.Context, assignments []model.Assignment) (int, error)
}

// GenerateSchedule runs the solver for one week and persists the proposals.
// It serializes per week through locks, pre-checks candidate ids in one batch
// query, and relies on the persistence uniqueness constraint to absorb any
// remaining check-then-act race as a benign duplicate.
func GenerateSchedule(
	ctx context.Context,
	store GenerateScheduleStore,
	rosterProvider RosterProvider,
	catalog ShiftCatalogProvider,
	locks *keymutex.KeyMutex,
	cfg *config.Config,
	logger *zap.Logger,
	weekStart time.Time,
	department string,
	actorID string,
) (*GenerateScheduleResult, error) {
	from, to := weekBounds(weekStart)
	lockKey := "week:" + from.Format("2006-01-02")
	locks.Lock(lockKey)
	defer locks.Unlock(lockKey)

	logger.Debug("Starting generateSchedule",
		zap.Time("week_start", from),
		zap.String("department", department))

	now := time.Now().UTC()

	sched, err := resolveTargetSchedule(ctx, store, from, to, actorID, now, logger)
	if err != nil {
		return nil, err
	}

	// Fetch the world up front; the solver itself performs no I/O
	employees, err := rosterProvider.ActiveEmployees(ctx, from, to, department)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch roster: %w", err)
	}
	logger.Debug("Fetched roster", zap.Int("count", len(employees)))

	shifts, err := catalog.Occurrences(ctx, from, to, department)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shift occurrences: %w", err)
	}
	logger.Debug("Fetched shift occurrences", zap.Int("count", len(shifts)))

	if err := store.InsertShifts(ctx, shifts); err != nil {
		return nil, fmt.Errorf("failed to persist shift occurrences: %w", err)
	}

	existing, err := store.GetAssignments(ctx, sched.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch existing assignments: %w", err)
	}

	result, err := scheduler.Generate(scheduler.Input{
		ScheduleID: sched.ID,
		Employees:  employees,
		Shifts:     shifts,
		Rules:      cfg.RuleSetFor(department),
		Existing:   existing,
		Now:        now,
	})
	if err != nil {
		return nil, fmt.Errorf("generation failed: %w", err)
	}
	logger.Debug("Solver finished",
		zap.Int("proposed", len(result.Assignments)),
		zap.Int("unmet", len(result.Unmet)))

	// Batch duplicate pre-check over all candidates at once
	candidateIDs := make([]string, 0, len(result.Assignments))
	for _, a := range result.Assignments {
		candidateIDs = append(candidateIDs, a.ID)
	}
	already, err := store.ExistingAssignmentIDs(ctx, sched.ID, candidateIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to pre-check existing assignments: %w", err)
	}

	fresh := make([]model.Assignment, 0, len(result.Assignments))
	for _, a := range result.Assignments {
		if !already[a.ID] {
			fresh = append(fresh, a)
		}
	}

	inserted, err := store.InsertAssignments(ctx, fresh)
	if err != nil {
		return nil, fmt.Errorf("failed to persist assignments: %w", err)
	}
	if inserted < len(fresh) {
		logger.Info("Some assignments already existed, skipped as benign duplicates",
			zap.Int("skipped", len(fresh)-inserted))
	}

	sched.UpdatedBy = actorID
	sched.UpdatedAt = now
	if err := store.UpdateSchedule(ctx, sched); err != nil {
		return nil, fmt.Errorf("failed to update schedule: %w", err)
	}

	return &GenerateScheduleResult{
		Schedule: sched,
		Proposed: result.Assignments,
		Inserted: inserted,
		Unmet:    result.Unmet,
	}, nil
}

// resolveTargetSchedule finds or creates the draft the generator writes into.
// A validated schedule reverts to draft; a published or archived one is left
// untouched and a fresh higher-version draft is created.
func resolveTargetSchedule(
	ctx context.Context,
	store GenerateScheduleStore,
	from, to time.Time,
	actorID string,
	now time.Time,
	logger *zap.Logger,
) (*model.Schedule, error) {
	current, err := store.GetCurrentSchedule(ctx, from)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch current schedule: %w", err)
	}

	if current == nil {
		sched := &model.Schedule{
			ID:        uuid.New().String(),
			WeekStart: from,
			WeekEnd:   to,
			Status:    model.StatusDraft,
			Version:   1,
			CreatedBy: actorID,
			UpdatedBy: actorID,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := store.InsertSchedule(ctx, sched); err != nil {
			return nil, fmt.Errorf("failed to create schedule: %w", err)
		}
		logger.Debug("Created new draft schedule", zap.String("id", sched.ID))
		return sched, nil
	}

	switch current.Status {
	case model.StatusDraft:
		return current, nil
	case model.StatusValidated:
		if err := lifecycle.MarkEdited(current, actorID, now); err != nil {
			return nil, err
		}
		if err := store.UpdateSchedule(ctx, current); err != nil {
			return nil, fmt.Errorf("failed to revert schedule to draft: %w", err)
		}
		logger.Debug("Reverted validated schedule to draft", zap.String("id", current.ID))
		return current, nil
	default:
		// Published and archived versions stay immutable; regeneration gets a
		// fresh draft at the next version number
		sched := &model.Schedule{
			ID:        uuid.New().String(),
			WeekStart: from,
			WeekEnd:   to,
			Status:    model.StatusDraft,
			Version:   current.Version + 1,
			CreatedBy: actorID,
			UpdatedBy: actorID,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := store.InsertSchedule(ctx, sched); err != nil {
			return nil, fmt.Errorf("failed to create schedule revision: %w", err)
		}
		logger.Debug("Created draft revision",
			zap.String("id", sched.ID),
			zap.Int("version", sched.Version))
		return sched, nil
	}
}
