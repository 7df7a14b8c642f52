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

func draftWithAssignments(store *mockStore, assignments ...model.Assignment) *model.Schedule {
	sched := &model.Schedule{
		ID:        "sched-1",
		WeekStart: weekStart,
		WeekEnd:   weekStart.AddDate(0, 0, 7),
		Status:    model.StatusDraft,
		Version:   1,
	}
	store.addSchedule(sched)
	store.assignments[sched.ID] = assignments
	return sched
}

func TestValidateSchedule_ReadOnly(t *testing.T) {
	store := newMockStore()
	store.shifts = []model.Shift{weekShift("mon", 0, 9, 17, 1)}
	sched := draftWithAssignments(store, model.Assignment{
		ID: "a1", ScheduleID: "sched-1", EmployeeID: "alice", ShiftID: "mon",
		Status: model.AssignmentProposed,
	})
	roster := &mockRoster{employees: []model.Employee{allDayEmployee("alice")}}

	report, err := ValidateSchedule(
		context.Background(), store, roster, testConfig(), zap.NewNop(), sched.ID,
	)
	require.NoError(t, err)

	assert.False(t, report.HasBlockingErrors())
	assert.Empty(t, report.UnmetRequirements)

	// Validation never mutates
	assert.Equal(t, model.StatusDraft, store.schedules["sched-1"].Status)
	assert.Empty(t, store.updatedSchedules)
}

func TestValidateSchedule_NotFound(t *testing.T) {
	store := newMockStore()
	roster := &mockRoster{}

	_, err := ValidateSchedule(
		context.Background(), store, roster, testConfig(), zap.NewNop(), "missing",
	)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "schedule not found")
}

func TestSubmitValidation_CleanAdvances(t *testing.T) {
	store := newMockStore()
	store.shifts = []model.Shift{weekShift("mon", 0, 9, 17, 1)}
	sched := draftWithAssignments(store, model.Assignment{
		ID: "a1", ScheduleID: "sched-1", EmployeeID: "alice", ShiftID: "mon",
		Status: model.AssignmentProposed,
	})
	roster := &mockRoster{employees: []model.Employee{allDayEmployee("alice")}}

	result, err := SubmitValidation(
		context.Background(), store, roster, keymutex.New(), testConfig(), zap.NewNop(),
		sched.ID, "manager",
	)
	require.NoError(t, err)

	assert.True(t, result.Validated)
	assert.Equal(t, model.StatusValidated, result.Schedule.Status)
	require.Len(t, store.updatedSchedules, 1)
}

func TestSubmitValidation_BlockingErrorsStayDraft(t *testing.T) {
	store := newMockStore()
	store.shifts = []model.Shift{
		weekShift("early", 0, 9, 17, 1),
		weekShift("late", 0, 12, 20, 1),
	}
	sched := draftWithAssignments(store,
		model.Assignment{ID: "a1", ScheduleID: "sched-1", EmployeeID: "alice", ShiftID: "early", Status: model.AssignmentProposed},
		model.Assignment{ID: "a2", ScheduleID: "sched-1", EmployeeID: "alice", ShiftID: "late", Status: model.AssignmentProposed},
	)
	roster := &mockRoster{employees: []model.Employee{allDayEmployee("alice")}}

	result, err := SubmitValidation(
		context.Background(), store, roster, keymutex.New(), testConfig(), zap.NewNop(),
		sched.ID, "manager",
	)
	require.NoError(t, err)

	assert.False(t, result.Validated)
	assert.Equal(t, model.StatusDraft, result.Schedule.Status)
	assert.True(t, result.Report.HasBlockingErrors())
}
