// Package lifecycle governs the schedule state machine:
//
//	draft → validated → published → archived
//
// with validated → draft auto-revert on edits and copy-on-write revisions of
// published schedules. Archived is terminal.
package lifecycle

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/felixgrant/shiftwise/pkg/core/model"
	"github.com/felixgrant/shiftwise/pkg/core/validation"
)

// StateTransitionError reports an illegal lifecycle operation. It is fatal to
// the call that attempted it and leaves the schedule untouched.
type StateTransitionError struct {
	ScheduleID string
	From       model.ScheduleStatus
	Op         string
	Reason     string
}

func (e *StateTransitionError) Error() string {
	return fmt.Sprintf("cannot %s schedule %s in status %q: %s", e.Op, e.ScheduleID, e.From, e.Reason)
}

// SubmitValidation moves a draft schedule to validated when its report has no
// blocking errors. A report with blocking errors is not an error of this
// call: the schedule simply remains in draft and the caller surfaces the
// report. Calling on a non-draft schedule fails with StateTransitionError.
func SubmitValidation(sched *model.Schedule, report *validation.Report, actorID string, now time.Time) error {
	if sched.Status != model.StatusDraft {
		return &StateTransitionError{
			ScheduleID: sched.ID,
			From:       sched.Status,
			Op:         "submit validation for",
			Reason:     "only draft schedules can be validated",
		}
	}
	if report.HasBlockingErrors() {
		return nil
	}
	sched.Status = model.StatusValidated
	sched.UpdatedBy = actorID
	sched.UpdatedAt = now
	return nil
}

// Publish moves a validated schedule to published. Warnings in the report
// must be explicitly acknowledged; the acknowledgement is recorded against
// the acting user by the caller. The assignment set at this moment becomes
// the immutable snapshot for this version.
func Publish(sched *model.Schedule, report *validation.Report, acknowledgeWarnings bool, actorID string, now time.Time) error {
	if sched.Status != model.StatusValidated {
		return &StateTransitionError{
			ScheduleID: sched.ID,
			From:       sched.Status,
			Op:         "publish",
			Reason:     "schedule must pass validation first",
		}
	}
	if report.HasBlockingErrors() {
		return &StateTransitionError{
			ScheduleID: sched.ID,
			From:       sched.Status,
			Op:         "publish",
			Reason:     "validation report has blocking errors",
		}
	}
	if report.HasWarnings() && !acknowledgeWarnings {
		return &StateTransitionError{
			ScheduleID: sched.ID,
			From:       sched.Status,
			Op:         "publish",
			Reason:     "unacknowledged validation warnings",
		}
	}
	sched.Status = model.StatusPublished
	sched.PublishedAt = &now
	sched.UpdatedBy = actorID
	sched.UpdatedAt = now
	return nil
}

// Archive moves a published schedule to the terminal archived state, either
// because a later version superseded it or by manual request.
func Archive(sched *model.Schedule, actorID string, now time.Time) error {
	if sched.Status != model.StatusPublished {
		return &StateTransitionError{
			ScheduleID: sched.ID,
			From:       sched.Status,
			Op:         "archive",
			Reason:     "only published schedules can be archived",
		}
	}
	sched.Status = model.StatusArchived
	sched.UpdatedBy = actorID
	sched.UpdatedAt = now
	return nil
}

// MarkEdited records an assignment mutation on a mutable schedule. Draft
// schedules stay draft; validated schedules revert to draft so the stale
// report cannot gate a publish. Published and archived schedules reject the
// edit: callers must derive a new revision instead.
func MarkEdited(sched *model.Schedule, actorID string, now time.Time) error {
	switch sched.Status {
	case model.StatusDraft:
	case model.StatusValidated:
		sched.Status = model.StatusDraft
	default:
		return &StateTransitionError{
			ScheduleID: sched.ID,
			From:       sched.Status,
			Op:         "edit",
			Reason:     "published schedules are immutable; create a new revision",
		}
	}
	sched.UpdatedBy = actorID
	sched.UpdatedAt = now
	return nil
}

// NewRevision derives version N+1 in draft from a published schedule,
// copying its non-declined assignments. The published version is never
// mutated and remains retrievable.
func NewRevision(sched *model.Schedule, assignments []model.Assignment, actorID string, now time.Time) (*model.Schedule, []model.Assignment, error) {
	if sched.Status != model.StatusPublished {
		return nil, nil, &StateTransitionError{
			ScheduleID: sched.ID,
			From:       sched.Status,
			Op:         "revise",
			Reason:     "only published schedules can be revised",
		}
	}

	revision := &model.Schedule{
		ID:        uuid.New().String(),
		WeekStart: sched.WeekStart,
		WeekEnd:   sched.WeekEnd,
		Status:    model.StatusDraft,
		Version:   sched.Version + 1,
		CreatedBy: actorID,
		UpdatedBy: actorID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	copied := make([]model.Assignment, 0, len(assignments))
	for _, a := range assignments {
		if !a.Counts() {
			continue
		}
		copied = append(copied, model.Assignment{
			ID:            uuid.New().String(),
			ScheduleID:    revision.ID,
			EmployeeID:    a.EmployeeID,
			ShiftID:       a.ShiftID,
			Status:        a.Status,
			AutoGenerated: a.AutoGenerated,
			CreatedAt:     now,
		})
	}

	return revision, copied, nil
}
