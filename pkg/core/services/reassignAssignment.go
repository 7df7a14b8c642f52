package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/felixgrant/shiftwise/pkg/core/lifecycle"
	"github.com/felixgrant/shiftwise/pkg/core/model"
	"github.com/felixgrant/shiftwise/pkg/db"
	"github.com/felixgrant/shiftwise/pkg/utils/keymutex"
)

// ReassignResult reports where the reassignment landed. For published
// schedules that is a freshly derived draft revision, not the schedule the
// caller named.
type ReassignResult struct {
	Schedule *model.Schedule
	// Replacement is the assignment now covering the shift
	Replacement *model.Assignment
}

// ReassignStore defines the database operations needed for reassignment
type ReassignStore interface {
	GetSchedule(ctx context.Context, id string) (*model.Schedule, error)
	UpdateSchedule(ctx context.Context, sched *model.Schedule) error
	InsertSchedule(ctx context.Context, sched *model.Schedule) error
	GetAssignments(ctx context.Context, scheduleID string) ([]model.Assignment, error)
	InsertAssignments(ctx context.Context, assignments []model.Assignment) (int, error)
	DeleteAssignment(ctx context.Context, id string) error
	InsertChangeLog(ctx context.Context, entry *db.ChangeLog) error
}

// ReassignAssignment moves one assignment to a different employee.
//
// On a draft (or validated) schedule the old row is deleted outright and the
// schedule reverts to draft. On a published schedule nothing is mutated:
// a draft revision N+1 is derived, the copied assignment is declined, and a
// superseding assignment plus a change-log entry preserve the audit history.
// Archived schedules reject the edit.
func ReassignAssignment(
	ctx context.Context,
	store ReassignStore,
	locks *keymutex.KeyMutex,
	logger *zap.Logger,
	scheduleID string,
	assignmentID string,
	newEmployeeID string,
	actorID string,
	reason string,
) (*ReassignResult, error) {
	locks.Lock(scheduleID)
	defer locks.Unlock(scheduleID)

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

	var target *model.Assignment
	for i := range assignments {
		if assignments[i].ID == assignmentID {
			target = &assignments[i]
			break
		}
	}
	if target == nil {
		return nil, fmt.Errorf("assignment not found: %s", assignmentID)
	}

	now := time.Now().UTC()

	switch sched.Status {
	case model.StatusDraft, model.StatusValidated:
		return reassignDraft(ctx, store, logger, sched, target, newEmployeeID, actorID, now)
	case model.StatusPublished:
		return reassignPublished(ctx, store, logger, sched, assignments, target, newEmployeeID, actorID, reason, now)
	default:
		return nil, &lifecycle.StateTransitionError{
			ScheduleID: sched.ID,
			From:       sched.Status,
			Op:         "reassign in",
			Reason:     "archived schedules are read-only",
		}
	}
}

// reassignDraft swaps the employee in place; drafts have no audit obligations
func reassignDraft(
	ctx context.Context,
	store ReassignStore,
	logger *zap.Logger,
	sched *model.Schedule,
	target *model.Assignment,
	newEmployeeID string,
	actorID string,
	now time.Time,
) (*ReassignResult, error) {
	if err := lifecycle.MarkEdited(sched, actorID, now); err != nil {
		return nil, err
	}

	if err := store.DeleteAssignment(ctx, target.ID); err != nil {
		return nil, fmt.Errorf("failed to delete assignment: %w", err)
	}

	replacement := model.Assignment{
		ID:            uuid.New().String(),
		ScheduleID:    sched.ID,
		EmployeeID:    newEmployeeID,
		ShiftID:       target.ShiftID,
		Status:        model.AssignmentProposed,
		AutoGenerated: false,
		CreatedAt:     now,
	}
	if _, err := store.InsertAssignments(ctx, []model.Assignment{replacement}); err != nil {
		return nil, fmt.Errorf("failed to insert replacement assignment: %w", err)
	}

	if err := store.UpdateSchedule(ctx, sched); err != nil {
		return nil, fmt.Errorf("failed to update schedule: %w", err)
	}

	logger.Info("Reassigned draft assignment",
		zap.String("schedule_id", sched.ID),
		zap.String("shift_id", target.ShiftID),
		zap.String("employee_id", newEmployeeID))

	return &ReassignResult{Schedule: sched, Replacement: &replacement}, nil
}

// reassignPublished derives revision N+1 and performs the decline-plus-
// supersede swap inside it, leaving version N untouched
func reassignPublished(
	ctx context.Context,
	store ReassignStore,
	logger *zap.Logger,
	sched *model.Schedule,
	assignments []model.Assignment,
	target *model.Assignment,
	newEmployeeID string,
	actorID string,
	reason string,
	now time.Time,
) (*ReassignResult, error) {
	revision, copied, err := lifecycle.NewRevision(sched, assignments, actorID, now)
	if err != nil {
		return nil, err
	}

	// Decline the copied counterpart of the target and add the superseding
	// assignment for the new employee
	var replacement *model.Assignment
	for i := range copied {
		if copied[i].EmployeeID == target.EmployeeID && copied[i].ShiftID == target.ShiftID {
			copied[i].Status = model.AssignmentDeclined
			break
		}
	}
	copied = append(copied, model.Assignment{
		ID:            uuid.New().String(),
		ScheduleID:    revision.ID,
		EmployeeID:    newEmployeeID,
		ShiftID:       target.ShiftID,
		Status:        model.AssignmentProposed,
		AutoGenerated: false,
		CreatedAt:     now,
	})
	replacement = &copied[len(copied)-1]

	if err := store.InsertSchedule(ctx, revision); err != nil {
		return nil, fmt.Errorf("failed to insert schedule revision: %w", err)
	}
	if _, err := store.InsertAssignments(ctx, copied); err != nil {
		return nil, fmt.Errorf("failed to insert revision assignments: %w", err)
	}

	entry := &db.ChangeLog{
		ID:            uuid.New().String(),
		ScheduleID:    revision.ID,
		AssignmentID:  replacement.ID,
		OldEmployeeID: target.EmployeeID,
		NewEmployeeID: newEmployeeID,
		ActorID:       actorID,
		Reason:        reason,
		CreatedAt:     now,
	}
	if err := store.InsertChangeLog(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to record change log: %w", err)
	}

	logger.Info("Reassigned published assignment via revision",
		zap.String("published_id", sched.ID),
		zap.String("revision_id", revision.ID),
		zap.Int("revision_version", revision.Version))

	return &ReassignResult{Schedule: revision, Replacement: replacement}, nil
}
