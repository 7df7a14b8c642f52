// Package db defines the persistence contract the services depend on.
// The postgres package provides the production implementation; tests supply
// in-memory mocks.
package db

import (
	"context"
	"time"

	"github.com/felixgrant/shiftwise/pkg/core/model"
)

// Database defines all persistence operations used by the services layer.
// Individual services declare narrower store interfaces; this is the union
// the CLI wires up.
type Database interface {
	// Roster
	GetEmployees(ctx context.Context, department string) ([]model.Employee, error)

	// Schedules
	GetSchedule(ctx context.Context, id string) (*model.Schedule, error)
	// GetCurrentSchedule returns the highest-version schedule for a week, or
	// nil when none exists
	GetCurrentSchedule(ctx context.Context, weekStart time.Time) (*model.Schedule, error)
	ListScheduleVersions(ctx context.Context, weekStart time.Time) ([]model.Schedule, error)
	InsertSchedule(ctx context.Context, sched *model.Schedule) error
	UpdateSchedule(ctx context.Context, sched *model.Schedule) error

	// Shift occurrences
	InsertShifts(ctx context.Context, shifts []model.Shift) error
	GetShifts(ctx context.Context, from, to time.Time, department string) ([]model.Shift, error)
	GetShiftsByIDs(ctx context.Context, ids []string) ([]model.Shift, error)

	// Assignments
	GetAssignments(ctx context.Context, scheduleID string) ([]model.Assignment, error)
	// ExistingAssignmentIDs is the batch duplicate pre-check: one query over
	// all candidate ids instead of per-candidate round trips
	ExistingAssignmentIDs(ctx context.Context, scheduleID string, ids []string) (map[string]bool, error)
	// InsertAssignments inserts with ON CONFLICT DO NOTHING on the
	// (employee, schedule, shift) uniqueness constraint and reports how many
	// rows were actually written; losing a race is a benign outcome
	InsertAssignments(ctx context.Context, assignments []model.Assignment) (int, error)
	UpdateAssignmentStatus(ctx context.Context, id string, status model.AssignmentStatus) error
	// DeleteAssignment removes a row outright; callers only do this while the
	// owning schedule is in draft
	DeleteAssignment(ctx context.Context, id string) error

	// Audit
	InsertOverrideRecord(ctx context.Context, rec *OverrideRecord) error
	InsertChangeLog(ctx context.Context, entry *ChangeLog) error
	ListChangeLogs(ctx context.Context, scheduleID string) ([]ChangeLog, error)
}
