package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/felixgrant/shiftwise/pkg/core/lifecycle"
	"github.com/felixgrant/shiftwise/pkg/core/model"
	"github.com/felixgrant/shiftwise/pkg/utils/keymutex"
)

// ArchiveScheduleStore defines the database operations needed for archiving
type ArchiveScheduleStore interface {
	GetSchedule(ctx context.Context, id string) (*model.Schedule, error)
	UpdateSchedule(ctx context.Context, sched *model.Schedule) error
}

// ArchiveSchedule manually moves a published schedule to the terminal
// archived state. Archived schedules are read-only.
func ArchiveSchedule(
	ctx context.Context,
	store ArchiveScheduleStore,
	locks *keymutex.KeyMutex,
	logger *zap.Logger,
	scheduleID string,
	actorID string,
) (*model.Schedule, error) {
	locks.Lock(scheduleID)
	defer locks.Unlock(scheduleID)

	sched, err := store.GetSchedule(ctx, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch schedule: %w", err)
	}
	if sched == nil {
		return nil, fmt.Errorf("schedule not found: %s", scheduleID)
	}

	if err := lifecycle.Archive(sched, actorID, time.Now().UTC()); err != nil {
		return nil, err
	}

	if err := store.UpdateSchedule(ctx, sched); err != nil {
		return nil, fmt.Errorf("failed to update schedule: %w", err)
	}

	logger.Info("Schedule archived", zap.String("schedule_id", scheduleID))
	return sched, nil
}
