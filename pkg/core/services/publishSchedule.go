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
	"github.com/felixgrant/shiftwise/pkg/core/validation"
	"github.com/felixgrant/shiftwise/pkg/db"
	"github.com/felixgrant/shiftwise/pkg/notify"
	"github.com/felixgrant/shiftwise/pkg/utils/keymutex"
)

// PublishScheduleResult contains the publish outcome
type PublishScheduleResult struct {
	Schedule *model.Schedule
	Report   *validation.Report
	// Notified counts notification messages handed to the sink; delivery is
	// best-effort and failures never roll back the publish
	Notified int
	// Superseded names the previously published version archived by this
	// publish, if any
	Superseded *model.Schedule
}

// PublishScheduleStore defines the database operations needed for publishing
type PublishScheduleStore interface {
	GetSchedule(ctx context.Context, id string) (*model.Schedule, error)
	UpdateSchedule(ctx context.Context, sched *model.Schedule) error
	GetAssignments(ctx context.Context, scheduleID string) ([]model.Assignment, error)
	GetShifts(ctx context.Context, from, to time.Time, department string) ([]model.Shift, error)
	ListScheduleVersions(ctx context.Context, weekStart time.Time) ([]model.Schedule, error)
	InsertOverrideRecord(ctx context.Context, rec *db.OverrideRecord) error
}

// PublishSchedule moves a validated schedule to published. The validation
// report is rebuilt under the schedule lock so the gate reflects current
// data. Warnings require an explicit acknowledgement, which is persisted as
// an override record against the acting user. A previously published version
// of the same week is archived as superseded.
func PublishSchedule(
	ctx context.Context,
	store PublishScheduleStore,
	rosterProvider RosterProvider,
	notifier notify.Notifier,
	locks *keymutex.KeyMutex,
	cfg *config.Config,
	logger *zap.Logger,
	scheduleID string,
	actorID string,
	acknowledgeWarnings bool,
	overrideReason string,
) (*PublishScheduleResult, error) {
	locks.Lock(scheduleID)
	defer locks.Unlock(scheduleID)

	logger.Debug("Starting publishSchedule",
		zap.String("schedule_id", scheduleID),
		zap.Bool("acknowledge_warnings", acknowledgeWarnings))

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

	now := time.Now().UTC()
	if err := lifecycle.Publish(sched, report, acknowledgeWarnings, actorID, now); err != nil {
		return nil, err
	}

	if err := store.UpdateSchedule(ctx, sched); err != nil {
		return nil, fmt.Errorf("failed to update schedule: %w", err)
	}
	logger.Info("Schedule published",
		zap.String("schedule_id", scheduleID),
		zap.Int("version", sched.Version))

	if acknowledgeWarnings && report.HasWarnings() {
		rec := &db.OverrideRecord{
			ID:         uuid.New().String(),
			ScheduleID: sched.ID,
			ActorID:    actorID,
			Kind:       "acknowledged_warnings",
			Reason:     overrideReason,
			CreatedAt:  now,
		}
		if err := store.InsertOverrideRecord(ctx, rec); err != nil {
			return nil, fmt.Errorf("failed to record warning override: %w", err)
		}
	}

	superseded, err := archiveSuperseded(ctx, store, sched, actorID, now, logger)
	if err != nil {
		return nil, err
	}

	notified := notifyAssignees(ctx, store, notifier, sched, logger)

	return &PublishScheduleResult{
		Schedule:   sched,
		Report:     report,
		Notified:   notified,
		Superseded: superseded,
	}, nil
}

// archiveSuperseded archives any older published version of the same week
func archiveSuperseded(
	ctx context.Context,
	store PublishScheduleStore,
	sched *model.Schedule,
	actorID string,
	now time.Time,
	logger *zap.Logger,
) (*model.Schedule, error) {
	versions, err := store.ListScheduleVersions(ctx, sched.WeekStart)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedule versions: %w", err)
	}

	for i := range versions {
		prev := &versions[i]
		if prev.ID == sched.ID || prev.Status != model.StatusPublished {
			continue
		}
		if err := lifecycle.Archive(prev, actorID, now); err != nil {
			return nil, err
		}
		if err := store.UpdateSchedule(ctx, prev); err != nil {
			return nil, fmt.Errorf("failed to archive superseded schedule %s: %w", prev.ID, err)
		}
		logger.Info("Archived superseded schedule",
			zap.String("schedule_id", prev.ID),
			zap.Int("version", prev.Version))
		return prev, nil
	}

	return nil, nil
}

// notifyAssignees hands one message per assigned employee to the sink.
// Failures are logged and swallowed: notification is best-effort.
func notifyAssignees(
	ctx context.Context,
	store PublishScheduleStore,
	notifier notify.Notifier,
	sched *model.Schedule,
	logger *zap.Logger,
) int {
	assignments, err := store.GetAssignments(ctx, sched.ID)
	if err != nil {
		logger.Warn("Failed to fetch assignments for notification", zap.Error(err))
		return 0
	}

	seen := make(map[string]bool)
	var messages []notify.Message
	for _, a := range assignments {
		if !a.Counts() || seen[a.EmployeeID] {
			continue
		}
		seen[a.EmployeeID] = true
		messages = append(messages, notify.Message{
			EmployeeID: a.EmployeeID,
			ScheduleID: sched.ID,
			Body: fmt.Sprintf("Your schedule for the week of %s has been published",
				sched.WeekStart.Format("Mon Jan 02 2006")),
		})
	}

	if len(messages) == 0 {
		return 0
	}
	if err := notifier.Notify(ctx, messages); err != nil {
		logger.Warn("Notification delivery failed", zap.Error(err))
	}
	return len(messages)
}
