package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/felixgrant/shiftwise/internal/config"
	"github.com/felixgrant/shiftwise/pkg/core/model"
	"github.com/felixgrant/shiftwise/pkg/core/scheduler"
)

// OptimizeScheduleResult contains suggested fixes for a schedule's weak
// spots. Nothing is persisted: callers review the suggestions and apply them
// through the normal assignment paths.
type OptimizeScheduleResult struct {
	Schedule *model.Schedule
	// Suggestions are additional assignments that would close coverage gaps
	Suggestions []model.Assignment
	// StillUnmet lists the gaps no suggestion could close
	StillUnmet []scheduler.UnmetRequirement
	// HoursByEmployee exposes the fairness distribution across the week
	HoursByEmployee map[string]float64
}

// OptimizeScheduleStore defines the database operations needed for optimization
type OptimizeScheduleStore interface {
	GetSchedule(ctx context.Context, id string) (*model.Schedule, error)
	GetAssignments(ctx context.Context, scheduleID string) ([]model.Assignment, error)
	GetShifts(ctx context.Context, from, to time.Time, department string) ([]model.Shift, error)
}

// OptimizeSchedule re-runs the solver against only the shifts that are still
// under-staffed, keeping every existing assignment in place. Read-only.
func OptimizeSchedule(
	ctx context.Context,
	store OptimizeScheduleStore,
	rosterProvider RosterProvider,
	cfg *config.Config,
	logger *zap.Logger,
	scheduleID string,
) (*OptimizeScheduleResult, error) {
	logger.Debug("Starting optimizeSchedule", zap.String("schedule_id", scheduleID))

	sched, err := store.GetSchedule(ctx, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch schedule: %w", err)
	}
	if sched == nil {
		return nil, fmt.Errorf("schedule not found: %s", scheduleID)
	}

	assignments, err := store.GetAssignments(ctx, scheduleID)
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

	// The solver leaves fully-staffed shifts untouched, so running it over
	// the whole week with the existing assignments pinned yields suggestions
	// only for the gaps. The full shift set stays in scope so overlap
	// bookkeeping covers every assignment the employees already hold.
	logger.Debug("Found understaffed shifts",
		zap.Int("count", len(understaffedShifts(assignments, shifts))))

	result, err := scheduler.Generate(scheduler.Input{
		ScheduleID: sched.ID,
		Employees:  employees,
		Shifts:     shifts,
		Rules:      cfg.RuleSet(),
		Existing:   assignments,
		Now:        time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("optimization failed: %w", err)
	}

	shiftIndex := model.IndexShifts(shifts)
	hours := make(map[string]float64)
	for _, a := range assignments {
		if a.Counts() {
			if shift, ok := shiftIndex[a.ShiftID]; ok {
				hours[a.EmployeeID] += shift.Hours()
			}
		}
	}

	return &OptimizeScheduleResult{
		Schedule:        sched,
		Suggestions:     result.Assignments,
		StillUnmet:      result.Unmet,
		HoursByEmployee: hours,
	}, nil
}

// understaffedShifts returns shifts whose non-declined assignment count is
// below min staff
func understaffedShifts(assignments []model.Assignment, shifts []model.Shift) []model.Shift {
	counts := make(map[string]int)
	for _, a := range assignments {
		if a.Counts() {
			counts[a.ShiftID]++
		}
	}

	var result []model.Shift
	for _, s := range shifts {
		if counts[s.ID] < s.MinStaff {
			result = append(result, s)
		}
	}
	return result
}
