package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/felixgrant/shiftwise/pkg/core/model"
	"github.com/felixgrant/shiftwise/pkg/utils/keymutex"
)

// RespondStore defines the database operations needed to record a response
type RespondStore interface {
	GetSchedule(ctx context.Context, id string) (*model.Schedule, error)
	GetAssignments(ctx context.Context, scheduleID string) ([]model.Assignment, error)
	UpdateAssignmentStatus(ctx context.Context, id string, status model.AssignmentStatus) error
}

// RespondAssignment records an employee's confirm or decline on their own
// assignment in a published schedule. A decline does not free the shift by
// itself; it shows up as an open slot in the next validation or optimize run.
func RespondAssignment(
	ctx context.Context,
	store RespondStore,
	locks *keymutex.KeyMutex,
	logger *zap.Logger,
	scheduleID string,
	assignmentID string,
	employeeID string,
	accept bool,
) (*model.Assignment, error) {
	locks.Lock(scheduleID)
	defer locks.Unlock(scheduleID)

	sched, err := store.GetSchedule(ctx, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch schedule: %w", err)
	}
	if sched == nil {
		return nil, fmt.Errorf("schedule not found: %s", scheduleID)
	}
	if sched.Status != model.StatusPublished {
		return nil, fmt.Errorf("schedule %s is not published; responses only apply to published schedules", scheduleID)
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
	if target.EmployeeID != employeeID {
		return nil, fmt.Errorf("assignment %s does not belong to employee %s", assignmentID, employeeID)
	}

	status := model.AssignmentDeclined
	if accept {
		status = model.AssignmentConfirmed
	}
	if err := store.UpdateAssignmentStatus(ctx, assignmentID, status); err != nil {
		return nil, fmt.Errorf("failed to update assignment status: %w", err)
	}
	target.Status = status

	logger.Info("Assignment response recorded",
		zap.String("assignment_id", assignmentID),
		zap.String("employee_id", employeeID),
		zap.String("status", string(status)))

	return target, nil
}
