package services

import (
	"context"
	"time"

	"github.com/felixgrant/shiftwise/pkg/core/model"
	"github.com/felixgrant/shiftwise/pkg/db"
	"github.com/felixgrant/shiftwise/pkg/notify"
)

// mockStore implements the union of the services' store interfaces with
// per-operation error injection and mutation capture
type mockStore struct {
	employees   []model.Employee
	schedules   map[string]*model.Schedule
	shifts      []model.Shift
	assignments map[string][]model.Assignment // by schedule id

	insertedSchedules   []*model.Schedule
	updatedSchedules    []*model.Schedule
	insertedAssignments []model.Assignment
	deletedAssignments  []string
	statusUpdates       map[string]model.AssignmentStatus
	overrides           []*db.OverrideRecord
	changeLogs          []*db.ChangeLog

	getScheduleErr       error
	insertAssignmentsErr error
	updateScheduleErr    error
}

func newMockStore() *mockStore {
	return &mockStore{
		schedules:     make(map[string]*model.Schedule),
		assignments:   make(map[string][]model.Assignment),
		statusUpdates: make(map[string]model.AssignmentStatus),
	}
}

func (m *mockStore) addSchedule(sched *model.Schedule) {
	m.schedules[sched.ID] = sched
}

func (m *mockStore) GetEmployees(ctx context.Context, department string) ([]model.Employee, error) {
	return m.employees, nil
}

func (m *mockStore) GetSchedule(ctx context.Context, id string) (*model.Schedule, error) {
	if m.getScheduleErr != nil {
		return nil, m.getScheduleErr
	}
	return m.schedules[id], nil
}

func (m *mockStore) GetCurrentSchedule(ctx context.Context, weekStart time.Time) (*model.Schedule, error) {
	var current *model.Schedule
	for _, s := range m.schedules {
		if !s.WeekStart.Equal(weekStart) {
			continue
		}
		if current == nil || s.Version > current.Version {
			current = s
		}
	}
	return current, nil
}

func (m *mockStore) ListScheduleVersions(ctx context.Context, weekStart time.Time) ([]model.Schedule, error) {
	var versions []model.Schedule
	for v := 1; ; v++ {
		found := false
		for _, s := range m.schedules {
			if s.WeekStart.Equal(weekStart) && s.Version == v {
				versions = append(versions, *s)
				found = true
				break
			}
		}
		if !found {
			return versions, nil
		}
	}
}

func (m *mockStore) InsertSchedule(ctx context.Context, sched *model.Schedule) error {
	m.schedules[sched.ID] = sched
	m.insertedSchedules = append(m.insertedSchedules, sched)
	return nil
}

func (m *mockStore) UpdateSchedule(ctx context.Context, sched *model.Schedule) error {
	if m.updateScheduleErr != nil {
		return m.updateScheduleErr
	}
	m.schedules[sched.ID] = sched
	m.updatedSchedules = append(m.updatedSchedules, sched)
	return nil
}

func (m *mockStore) InsertShifts(ctx context.Context, shifts []model.Shift) error {
	m.shifts = append(m.shifts, shifts...)
	return nil
}

func (m *mockStore) GetShifts(ctx context.Context, from, to time.Time, department string) ([]model.Shift, error) {
	return m.shifts, nil
}

func (m *mockStore) GetShiftsByIDs(ctx context.Context, ids []string) ([]model.Shift, error) {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var result []model.Shift
	for _, s := range m.shifts {
		if want[s.ID] {
			result = append(result, s)
		}
	}
	return result, nil
}

func (m *mockStore) GetAssignments(ctx context.Context, scheduleID string) ([]model.Assignment, error) {
	return m.assignments[scheduleID], nil
}

func (m *mockStore) ExistingAssignmentIDs(ctx context.Context, scheduleID string, ids []string) (map[string]bool, error) {
	existing := make(map[string]bool)
	held := make(map[string]bool)
	for _, a := range m.assignments[scheduleID] {
		held[a.ID] = true
	}
	for _, id := range ids {
		if held[id] {
			existing[id] = true
		}
	}
	return existing, nil
}

func (m *mockStore) InsertAssignments(ctx context.Context, assignments []model.Assignment) (int, error) {
	if m.insertAssignmentsErr != nil {
		return 0, m.insertAssignmentsErr
	}
	inserted := 0
	for _, a := range assignments {
		duplicate := false
		for _, held := range m.assignments[a.ScheduleID] {
			if held.ID == a.ID ||
				(held.EmployeeID == a.EmployeeID && held.ShiftID == a.ShiftID) {
				duplicate = true
				break
			}
		}
		if duplicate {
			continue
		}
		m.assignments[a.ScheduleID] = append(m.assignments[a.ScheduleID], a)
		m.insertedAssignments = append(m.insertedAssignments, a)
		inserted++
	}
	return inserted, nil
}

func (m *mockStore) UpdateAssignmentStatus(ctx context.Context, id string, status model.AssignmentStatus) error {
	m.statusUpdates[id] = status
	for schedID, list := range m.assignments {
		for i := range list {
			if list[i].ID == id {
				m.assignments[schedID][i].Status = status
			}
		}
	}
	return nil
}

func (m *mockStore) DeleteAssignment(ctx context.Context, id string) error {
	m.deletedAssignments = append(m.deletedAssignments, id)
	for schedID, list := range m.assignments {
		for i := range list {
			if list[i].ID == id {
				m.assignments[schedID] = append(list[:i], list[i+1:]...)
				return nil
			}
		}
	}
	return nil
}

func (m *mockStore) InsertOverrideRecord(ctx context.Context, rec *db.OverrideRecord) error {
	m.overrides = append(m.overrides, rec)
	return nil
}

func (m *mockStore) InsertChangeLog(ctx context.Context, entry *db.ChangeLog) error {
	m.changeLogs = append(m.changeLogs, entry)
	return nil
}

func (m *mockStore) ListChangeLogs(ctx context.Context, scheduleID string) ([]db.ChangeLog, error) {
	var entries []db.ChangeLog
	for _, e := range m.changeLogs {
		if e.ScheduleID == scheduleID {
			entries = append(entries, *e)
		}
	}
	return entries, nil
}

// mockRoster implements RosterProvider for testing
type mockRoster struct {
	employees []model.Employee
	err       error
}

func (m *mockRoster) ActiveEmployees(ctx context.Context, from, to time.Time, department string) ([]model.Employee, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.employees, nil
}

// mockCatalog implements ShiftCatalogProvider for testing
type mockCatalog struct {
	shifts []model.Shift
	err    error
}

func (m *mockCatalog) Occurrences(ctx context.Context, from, to time.Time, department string) ([]model.Shift, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.shifts, nil
}

// mockNotifier implements notify.Notifier for testing
type mockNotifier struct {
	messages []notify.Message
	err      error
}

func (m *mockNotifier) Notify(ctx context.Context, messages []notify.Message) error {
	m.messages = append(m.messages, messages...)
	return m.err
}
