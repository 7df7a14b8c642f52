package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEmployee_HasQualifications(t *testing.T) {
	e := &Employee{
		ID:             "alice",
		Qualifications: []Skill{"forklift", "first_aid"},
	}

	assert.True(t, e.HasQualifications(nil))
	assert.True(t, e.HasQualifications([]Skill{"forklift"}))
	assert.True(t, e.HasQualifications([]Skill{"forklift", "first_aid"}))
	assert.False(t, e.HasQualifications([]Skill{"forklift", "crane"}))
}

func TestEmployee_IsAvailable(t *testing.T) {
	e := &Employee{
		ID: "alice",
		Availability: map[time.Weekday][]TimeRange{
			time.Monday: {{Start: 540, End: 1020}}, // 09:00-17:00
		},
	}

	// Fully inside the window
	assert.True(t, e.IsAvailable(time.Monday, 540, 1020))
	assert.True(t, e.IsAvailable(time.Monday, 600, 900))

	// Spills past the window end
	assert.False(t, e.IsAvailable(time.Monday, 600, 1080))

	// No windows at all for that day
	assert.False(t, e.IsAvailable(time.Tuesday, 540, 1020))
}

func TestShift_Overlaps(t *testing.T) {
	mon9 := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	a := &Shift{ID: "a", Start: mon9, End: mon9.Add(8 * time.Hour)}                   // 09:00-17:00
	b := &Shift{ID: "b", Start: mon9.Add(3 * time.Hour), End: mon9.Add(11 * time.Hour)} // 12:00-20:00
	c := &Shift{ID: "c", Start: mon9.Add(8 * time.Hour), End: mon9.Add(12 * time.Hour)} // 17:00-21:00

	assert.True(t, a.Overlaps(b))
	assert.True(t, b.Overlaps(a))

	// Touching at a boundary is not an overlap
	assert.False(t, a.Overlaps(c))
	assert.False(t, c.Overlaps(a))
}

func TestShift_DayWindow(t *testing.T) {
	s := &Shift{
		Start: time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC), // a Monday
		End:   time.Date(2026, 3, 2, 17, 0, 0, 0, time.UTC),
	}

	day, start, end := s.DayWindow()
	assert.Equal(t, time.Monday, day)
	assert.Equal(t, 570, start)
	assert.Equal(t, 1020, end)
}

func TestAssignment_Counts(t *testing.T) {
	assert.True(t, (&Assignment{Status: AssignmentProposed}).Counts())
	assert.True(t, (&Assignment{Status: AssignmentConfirmed}).Counts())
	assert.False(t, (&Assignment{Status: AssignmentDeclined}).Counts())
}

func TestResolveRules_ScopeFiltering(t *testing.T) {
	rules := []Rule{
		{ID: "r1", Type: RuleMinRest, Scope: "", Params: RuleParams{MinRestHours: 8}},
		{ID: "r2", Type: RuleMinRest, Scope: "warehouse", Params: RuleParams{MinRestHours: 12}},
		{ID: "r3", Type: RuleRequiredCoverage, Scope: "warehouse", Params: RuleParams{CoverageMandatory: true}},
		{ID: "r4", Type: RuleMaxHours, Scope: "warehouse", Params: RuleParams{MaxHoursPerWeek: 38}},
	}

	warehouse := ResolveRules(rules, "warehouse")
	assert.Equal(t, 12.0, warehouse.MinRestHours)
	assert.True(t, warehouse.CoverageMandatory)
	assert.Equal(t, 38.0, warehouse.MaxHoursPerWeek)

	front := ResolveRules(rules, "front")
	assert.Equal(t, 8.0, front.MinRestHours)
	assert.False(t, front.CoverageMandatory)
	assert.Zero(t, front.MaxHoursPerWeek)
	assert.Equal(t, DefaultMaxRepairRetries, front.MaxRepairRetries)
}

func TestValidateShifts(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	err := ValidateShifts([]Shift{{ID: "s1", Start: start, End: start.Add(8 * time.Hour), MinStaff: 1}})
	assert.NoError(t, err)

	err = ValidateShifts([]Shift{{ID: "s1", Start: start, End: start, MinStaff: 1}})
	assert.Error(t, err)
	var inputErr *InputError
	assert.ErrorAs(t, err, &inputErr)
	assert.Equal(t, "shift", inputErr.Entity)

	err = ValidateShifts([]Shift{{ID: "s1", Start: start, End: start.Add(time.Hour), MinStaff: 0}})
	assert.Error(t, err)
}

func TestValidateEmployees(t *testing.T) {
	err := ValidateEmployees([]Employee{{ID: "alice"}})
	assert.NoError(t, err)

	err = ValidateEmployees([]Employee{{ID: ""}})
	assert.Error(t, err)

	err = ValidateEmployees([]Employee{{
		ID: "alice",
		Availability: map[time.Weekday][]TimeRange{
			time.Monday: {{Start: 1020, End: 540}},
		},
	}})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ends before it starts")
}
