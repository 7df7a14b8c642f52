package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/felixgrant/shiftwise/pkg/core/lifecycle"
	"github.com/felixgrant/shiftwise/pkg/core/model"
	"github.com/felixgrant/shiftwise/pkg/utils/keymutex"
)

func TestReassignAssignment_DraftSwapsInPlace(t *testing.T) {
	store := newMockStore()
	sched := draftWithAssignments(store, model.Assignment{
		ID: "a1", ScheduleID: "sched-1", EmployeeID: "alice", ShiftID: "mon",
		Status: model.AssignmentProposed, AutoGenerated: true,
	})

	result, err := ReassignAssignment(
		context.Background(), store, keymutex.New(), zap.NewNop(),
		sched.ID, "a1", "bob", "manager", "",
	)
	require.NoError(t, err)

	// Same schedule, old row gone, manual replacement in place
	assert.Equal(t, "sched-1", result.Schedule.ID)
	assert.Equal(t, []string{"a1"}, store.deletedAssignments)

	held := store.assignments["sched-1"]
	require.Len(t, held, 1)
	assert.Equal(t, "bob", held[0].EmployeeID)
	assert.Equal(t, "mon", held[0].ShiftID)
	assert.False(t, held[0].AutoGenerated)

	// No audit trail for draft edits
	assert.Empty(t, store.changeLogs)
}

func TestReassignAssignment_ValidatedRevertsToDraft(t *testing.T) {
	store := newMockStore()
	sched := draftWithAssignments(store, model.Assignment{
		ID: "a1", ScheduleID: "sched-1", EmployeeID: "alice", ShiftID: "mon",
		Status: model.AssignmentProposed,
	})
	sched.Status = model.StatusValidated

	result, err := ReassignAssignment(
		context.Background(), store, keymutex.New(), zap.NewNop(),
		sched.ID, "a1", "bob", "manager", "",
	)
	require.NoError(t, err)
	assert.Equal(t, model.StatusDraft, result.Schedule.Status)
}

func TestReassignAssignment_PublishedDerivesRevision(t *testing.T) {
	store := newMockStore()
	publishedAt := weekStart
	sched := &model.Schedule{
		ID:          "sched-1",
		WeekStart:   weekStart,
		WeekEnd:     weekStart.AddDate(0, 0, 7),
		Status:      model.StatusPublished,
		Version:     1,
		PublishedAt: &publishedAt,
	}
	store.addSchedule(sched)
	store.assignments[sched.ID] = []model.Assignment{
		{ID: "a1", ScheduleID: sched.ID, EmployeeID: "alice", ShiftID: "mon", Status: model.AssignmentConfirmed},
		{ID: "a2", ScheduleID: sched.ID, EmployeeID: "carol", ShiftID: "tue", Status: model.AssignmentConfirmed},
	}

	result, err := ReassignAssignment(
		context.Background(), store, keymutex.New(), zap.NewNop(),
		sched.ID, "a1", "bob", "manager", "alice is on leave",
	)
	require.NoError(t, err)

	// A new draft revision carries the change
	revision := result.Schedule
	assert.NotEqual(t, sched.ID, revision.ID)
	assert.Equal(t, 2, revision.Version)
	assert.Equal(t, model.StatusDraft, revision.Status)

	// The published version and its assignments are untouched
	assert.Equal(t, model.StatusPublished, store.schedules[sched.ID].Status)
	assert.Len(t, store.assignments[sched.ID], 2)
	assert.Empty(t, store.deletedAssignments)

	// In the revision: alice's copy declined, carol's copy kept, bob added
	copied := store.assignments[revision.ID]
	require.Len(t, copied, 3)
	byEmployee := make(map[string]model.Assignment)
	for _, a := range copied {
		byEmployee[a.EmployeeID] = a
	}
	assert.Equal(t, model.AssignmentDeclined, byEmployee["alice"].Status)
	assert.Equal(t, model.AssignmentConfirmed, byEmployee["carol"].Status)
	assert.Equal(t, model.AssignmentProposed, byEmployee["bob"].Status)
	assert.Equal(t, "mon", byEmployee["bob"].ShiftID)

	// Audit entry links the change to the revision
	require.Len(t, store.changeLogs, 1)
	entry := store.changeLogs[0]
	assert.Equal(t, revision.ID, entry.ScheduleID)
	assert.Equal(t, "alice", entry.OldEmployeeID)
	assert.Equal(t, "bob", entry.NewEmployeeID)
	assert.Equal(t, "manager", entry.ActorID)
	assert.Equal(t, "alice is on leave", entry.Reason)
}

func TestReassignAssignment_ArchivedRejected(t *testing.T) {
	store := newMockStore()
	sched := draftWithAssignments(store, model.Assignment{
		ID: "a1", ScheduleID: "sched-1", EmployeeID: "alice", ShiftID: "mon",
		Status: model.AssignmentProposed,
	})
	sched.Status = model.StatusArchived

	_, err := ReassignAssignment(
		context.Background(), store, keymutex.New(), zap.NewNop(),
		sched.ID, "a1", "bob", "manager", "",
	)

	var transitionErr *lifecycle.StateTransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, model.StatusArchived, transitionErr.From)
}

func TestReassignAssignment_UnknownAssignment(t *testing.T) {
	store := newMockStore()
	sched := draftWithAssignments(store)

	_, err := ReassignAssignment(
		context.Background(), store, keymutex.New(), zap.NewNop(),
		sched.ID, "missing", "bob", "manager", "",
	)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "assignment not found")
}
