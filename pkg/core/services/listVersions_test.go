package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/felixgrant/shiftwise/pkg/core/model"
	"github.com/felixgrant/shiftwise/pkg/db"
)

func TestListVersions_OrdersByVersion(t *testing.T) {
	store := newMockStore()
	store.addSchedule(&model.Schedule{ID: "v2", WeekStart: weekStart, Status: model.StatusPublished, Version: 2})
	store.addSchedule(&model.Schedule{ID: "v1", WeekStart: weekStart, Status: model.StatusArchived, Version: 1})
	store.addSchedule(&model.Schedule{ID: "v3", WeekStart: weekStart, Status: model.StatusDraft, Version: 3})
	// A different week must not leak in
	store.addSchedule(&model.Schedule{ID: "other", WeekStart: weekStart.AddDate(0, 0, 7), Status: model.StatusDraft, Version: 1})

	store.changeLogs = append(store.changeLogs, &db.ChangeLog{
		ID: "c1", ScheduleID: "v3", OldEmployeeID: "alice", NewEmployeeID: "bob",
		ActorID: "manager", CreatedAt: time.Now(),
	})

	history, err := ListVersions(context.Background(), store, zap.NewNop(), weekStart)
	require.NoError(t, err)

	require.Len(t, history.Versions, 3)
	assert.Equal(t, []string{"v1", "v2", "v3"}, []string{
		history.Versions[0].ID, history.Versions[1].ID, history.Versions[2].ID,
	})

	require.Len(t, history.Changes, 1)
	assert.Equal(t, "v3", history.Changes[0].ScheduleID)
}

func TestListVersions_EmptyWeek(t *testing.T) {
	store := newMockStore()

	history, err := ListVersions(context.Background(), store, zap.NewNop(), weekStart)
	require.NoError(t, err)
	assert.Empty(t, history.Versions)
	assert.Empty(t, history.Changes)
}
