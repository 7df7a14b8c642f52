package services

import (
	"context"
	"fmt"
	"time"

	"github.com/felixgrant/shiftwise/internal/config"
	"github.com/felixgrant/shiftwise/pkg/core/model"
	"github.com/felixgrant/shiftwise/pkg/core/validation"
)

// reportStore is the minimal read surface needed to rebuild a validation
// report for a schedule
type reportStore interface {
	GetAssignments(ctx context.Context, scheduleID string) ([]model.Assignment, error)
	GetShifts(ctx context.Context, from, to time.Time, department string) ([]model.Shift, error)
}

// weekBounds normalizes a week to [start of day, start+7d)
func weekBounds(weekStart time.Time) (time.Time, time.Time) {
	start := time.Date(weekStart.Year(), weekStart.Month(), weekStart.Day(), 0, 0, 0, 0, weekStart.Location())
	return start, start.AddDate(0, 0, 7)
}

// buildReport loads a schedule's world (assignments, week shifts, roster) and
// runs the validator over it. Read-only, safe to call without serialization.
func buildReport(
	ctx context.Context,
	store reportStore,
	rosterProvider RosterProvider,
	cfg *config.Config,
	sched *model.Schedule,
) (*validation.Report, error) {
	assignments, err := store.GetAssignments(ctx, sched.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignments: %w", err)
	}

	shifts, err := store.GetShifts(ctx, sched.WeekStart, sched.WeekEnd, "")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shifts: %w", err)
	}

	employees, err := rosterProvider.ActiveEmployees(ctx, sched.WeekStart, sched.WeekEnd, "")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch roster: %w", err)
	}

	return validation.Validate(
		assignments,
		model.IndexShifts(shifts),
		model.IndexEmployees(employees),
		cfg.ScopedRules(),
	), nil
}
