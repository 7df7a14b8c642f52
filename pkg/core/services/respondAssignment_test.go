package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/felixgrant/shiftwise/pkg/core/model"
	"github.com/felixgrant/shiftwise/pkg/utils/keymutex"
)

func publishedWithAssignment(store *mockStore) *model.Schedule {
	publishedAt := weekStart
	sched := &model.Schedule{
		ID:          "sched-1",
		WeekStart:   weekStart,
		Status:      model.StatusPublished,
		Version:     1,
		PublishedAt: &publishedAt,
	}
	store.addSchedule(sched)
	store.assignments[sched.ID] = []model.Assignment{
		{ID: "a1", ScheduleID: sched.ID, EmployeeID: "alice", ShiftID: "mon", Status: model.AssignmentProposed},
	}
	return sched
}

func TestRespondAssignment_Confirm(t *testing.T) {
	store := newMockStore()
	sched := publishedWithAssignment(store)

	assignment, err := RespondAssignment(
		context.Background(), store, keymutex.New(), zap.NewNop(),
		sched.ID, "a1", "alice", true,
	)
	require.NoError(t, err)

	assert.Equal(t, model.AssignmentConfirmed, assignment.Status)
	assert.Equal(t, model.AssignmentConfirmed, store.statusUpdates["a1"])
}

func TestRespondAssignment_Decline(t *testing.T) {
	store := newMockStore()
	sched := publishedWithAssignment(store)

	assignment, err := RespondAssignment(
		context.Background(), store, keymutex.New(), zap.NewNop(),
		sched.ID, "a1", "alice", false,
	)
	require.NoError(t, err)

	assert.Equal(t, model.AssignmentDeclined, assignment.Status)
	// The row survives for audit; it just no longer counts
	require.Len(t, store.assignments[sched.ID], 1)
}

func TestRespondAssignment_WrongEmployee(t *testing.T) {
	store := newMockStore()
	sched := publishedWithAssignment(store)

	_, err := RespondAssignment(
		context.Background(), store, keymutex.New(), zap.NewNop(),
		sched.ID, "a1", "bob", true,
	)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "does not belong to")
	assert.Empty(t, store.statusUpdates)
}

func TestRespondAssignment_UnpublishedRejected(t *testing.T) {
	store := newMockStore()
	sched := draftWithAssignments(store, model.Assignment{
		ID: "a1", ScheduleID: "sched-1", EmployeeID: "alice", ShiftID: "mon",
		Status: model.AssignmentProposed,
	})

	_, err := RespondAssignment(
		context.Background(), store, keymutex.New(), zap.NewNop(),
		sched.ID, "a1", "alice", true,
	)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not published")
}
