package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgrant/shiftwise/pkg/core/conflict"
	"github.com/felixgrant/shiftwise/pkg/core/model"
)

var monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func allDayEmployee(id string) model.Employee {
	avail := make(map[time.Weekday][]model.TimeRange)
	for d := time.Sunday; d <= time.Saturday; d++ {
		avail[d] = []model.TimeRange{{Start: 0, End: 1440}}
	}
	return model.Employee{ID: id, Availability: avail, Active: true}
}

func restRule(hours float64) []model.Rule {
	return []model.Rule{
		{ID: "rest", Type: model.RuleMinRest, Params: model.RuleParams{MinRestHours: hours}},
	}
}

func TestValidate_CleanSchedule(t *testing.T) {
	shifts := []model.Shift{
		{ID: "mon", Start: monday.Add(9 * time.Hour), End: monday.Add(17 * time.Hour), MinStaff: 1},
	}
	employees := []model.Employee{allDayEmployee("alice")}
	assignments := []model.Assignment{
		{ID: "a1", EmployeeID: "alice", ShiftID: "mon", Status: model.AssignmentProposed},
	}

	report := Validate(assignments, model.IndexShifts(shifts), model.IndexEmployees(employees), nil)

	assert.False(t, report.HasBlockingErrors())
	assert.False(t, report.HasWarnings())
	assert.Empty(t, report.UnmetRequirements)
	assert.Equal(t, "0 errors, 0 warnings, 0 unmet requirements", report.Summary())
}

func TestValidate_SplitsBySeverity(t *testing.T) {
	// One overlap (blocking) and one rest-period violation (warning)
	tuesday := monday.AddDate(0, 0, 1)
	shifts := []model.Shift{
		{ID: "mon-a", Start: monday.Add(9 * time.Hour), End: monday.Add(17 * time.Hour), MinStaff: 1},
		{ID: "mon-b", Start: monday.Add(12 * time.Hour), End: monday.Add(20 * time.Hour), MinStaff: 1},
		{ID: "tue", Start: tuesday.Add(2 * time.Hour), End: tuesday.Add(10 * time.Hour), MinStaff: 1},
	}
	employees := []model.Employee{allDayEmployee("alice")}
	assignments := []model.Assignment{
		{ID: "a1", EmployeeID: "alice", ShiftID: "mon-a", Status: model.AssignmentProposed},
		{ID: "a2", EmployeeID: "alice", ShiftID: "mon-b", Status: model.AssignmentProposed},
		{ID: "a3", EmployeeID: "alice", ShiftID: "tue", Status: model.AssignmentProposed},
	}

	report := Validate(assignments, model.IndexShifts(shifts), model.IndexEmployees(employees), restRule(10))

	require.Len(t, report.Errors, 1)
	assert.Equal(t, conflict.KindOverlap, report.Errors[0].Kind)
	require.Len(t, report.Warnings, 1)
	assert.Equal(t, conflict.KindRestPeriod, report.Warnings[0].Kind)
	assert.True(t, report.HasBlockingErrors())
	assert.True(t, report.HasWarnings())
}

func TestValidate_CoverageShortfallIsWarning(t *testing.T) {
	shifts := []model.Shift{
		{ID: "mon", Start: monday.Add(9 * time.Hour), End: monday.Add(17 * time.Hour), MinStaff: 3},
	}
	employees := []model.Employee{allDayEmployee("alice")}
	assignments := []model.Assignment{
		{ID: "a1", EmployeeID: "alice", ShiftID: "mon", Status: model.AssignmentConfirmed},
		{ID: "a2", EmployeeID: "bob", ShiftID: "mon", Status: model.AssignmentDeclined}, // does not count
	}

	report := Validate(assignments, model.IndexShifts(shifts), model.IndexEmployees(employees), nil)

	require.Len(t, report.UnmetRequirements, 1)
	assert.Equal(t, 3, report.UnmetRequirements[0].Required)
	assert.Equal(t, 1, report.UnmetRequirements[0].Assigned)
	assert.Equal(t, 2, report.UnmetRequirements[0].Shortfall)

	// Coverage does not block by default, but it is a warning the publisher
	// must acknowledge
	assert.False(t, report.HasBlockingErrors())
	assert.True(t, report.HasWarnings())
	require.Len(t, report.Warnings, 1)
	assert.Equal(t, conflict.KindCoverage, report.Warnings[0].Kind)
}

func TestValidate_UnstaffedShiftIsWarning(t *testing.T) {
	// A shift with zero assignments must never yield a report that reads clean
	shifts := []model.Shift{
		{ID: "mon", Start: monday.Add(9 * time.Hour), End: monday.Add(17 * time.Hour), MinStaff: 2},
	}

	report := Validate(nil, model.IndexShifts(shifts), model.IndexEmployees(nil), nil)

	assert.False(t, report.HasBlockingErrors())
	assert.True(t, report.HasWarnings())
	require.Len(t, report.Warnings, 1)
	assert.Equal(t, conflict.KindCoverage, report.Warnings[0].Kind)
	require.Len(t, report.UnmetRequirements, 1)
	assert.Equal(t, 2, report.UnmetRequirements[0].Shortfall)
}

func TestValidate_MandatoryCoverageBlocks(t *testing.T) {
	shifts := []model.Shift{
		{ID: "mon", Start: monday.Add(9 * time.Hour), End: monday.Add(17 * time.Hour), MinStaff: 2},
	}
	employees := []model.Employee{allDayEmployee("alice")}
	assignments := []model.Assignment{
		{ID: "a1", EmployeeID: "alice", ShiftID: "mon", Status: model.AssignmentConfirmed},
	}
	rules := []model.Rule{
		{ID: "cov", Type: model.RuleRequiredCoverage, Params: model.RuleParams{CoverageMandatory: true}},
	}

	report := Validate(assignments, model.IndexShifts(shifts), model.IndexEmployees(employees), rules)

	require.Len(t, report.Errors, 1)
	assert.True(t, report.HasBlockingErrors())
	assert.Equal(t, conflict.KindCoverage, report.Errors[0].Kind)
	assert.Contains(t, report.Errors[0].Detail, "coverage is mandatory")
	assert.Empty(t, report.Warnings)
}

func TestValidate_CoverageScopedToDepartment(t *testing.T) {
	// Mandatory coverage for the warehouse only: its shortfall blocks, the
	// front-desk shortfall stays an overridable warning
	shifts := []model.Shift{
		{ID: "wh", Start: monday.Add(9 * time.Hour), End: monday.Add(17 * time.Hour), DepartmentID: "warehouse", MinStaff: 1},
		{ID: "fd", Start: monday.Add(9 * time.Hour), End: monday.Add(17 * time.Hour), DepartmentID: "front", MinStaff: 1},
	}
	rules := []model.Rule{
		{ID: "cov-wh", Type: model.RuleRequiredCoverage, Scope: "warehouse", Params: model.RuleParams{CoverageMandatory: true}},
	}

	report := Validate(nil, model.IndexShifts(shifts), model.IndexEmployees(nil), rules)

	require.Len(t, report.Errors, 1)
	assert.Equal(t, conflict.KindCoverage, report.Errors[0].Kind)
	assert.Contains(t, report.Errors[0].Detail, "wh")
	require.Len(t, report.Warnings, 1)
	assert.Equal(t, conflict.KindCoverage, report.Warnings[0].Kind)
	assert.Contains(t, report.Warnings[0].Detail, "fd")
}

func TestValidate_Idempotent(t *testing.T) {
	shifts := []model.Shift{
		{ID: "mon-a", Start: monday.Add(9 * time.Hour), End: monday.Add(17 * time.Hour), MinStaff: 2},
		{ID: "mon-b", Start: monday.Add(12 * time.Hour), End: monday.Add(20 * time.Hour), MinStaff: 1},
	}
	employees := []model.Employee{allDayEmployee("alice"), allDayEmployee("bob")}
	assignments := []model.Assignment{
		{ID: "a1", EmployeeID: "alice", ShiftID: "mon-a", Status: model.AssignmentProposed},
		{ID: "a2", EmployeeID: "alice", ShiftID: "mon-b", Status: model.AssignmentProposed},
	}

	first := Validate(assignments, model.IndexShifts(shifts), model.IndexEmployees(employees), nil)
	for i := 0; i < 5; i++ {
		again := Validate(assignments, model.IndexShifts(shifts), model.IndexEmployees(employees), nil)
		assert.Equal(t, first, again)
	}
}
