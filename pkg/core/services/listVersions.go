package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/felixgrant/shiftwise/pkg/core/model"
	"github.com/felixgrant/shiftwise/pkg/db"
)

// VersionHistory is every version of one week's schedule plus the change-log
// entries explaining the post-publish edits that produced them.
type VersionHistory struct {
	Versions []model.Schedule
	Changes  []db.ChangeLog
}

// ListVersionsStore defines the database operations needed to read version history
type ListVersionsStore interface {
	ListScheduleVersions(ctx context.Context, weekStart time.Time) ([]model.Schedule, error)
	ListChangeLogs(ctx context.Context, scheduleID string) ([]db.ChangeLog, error)
}

// ListVersions returns the full version history for a week, oldest first
func ListVersions(
	ctx context.Context,
	store ListVersionsStore,
	logger *zap.Logger,
	weekStart time.Time,
) (*VersionHistory, error) {
	versions, err := store.ListScheduleVersions(ctx, weekStart)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedule versions: %w", err)
	}
	if len(versions) == 0 {
		return &VersionHistory{}, nil
	}

	var changes []db.ChangeLog
	for _, v := range versions {
		entries, err := store.ListChangeLogs(ctx, v.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list change logs: %w", err)
		}
		changes = append(changes, entries...)
	}

	logger.Debug("Loaded version history",
		zap.String("week_start", weekStart.Format("2006-01-02")),
		zap.Int("versions", len(versions)),
		zap.Int("changes", len(changes)))

	return &VersionHistory{Versions: versions, Changes: changes}, nil
}
