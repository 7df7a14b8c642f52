package model

import (
	"time"
)

// Skill is a named qualification an employee can hold and a shift can require
type Skill string

// TimeRange is a half-open window within a single day, expressed as minutes
// from midnight. An employee available 09:00-17:00 has Start=540, End=1020.
type TimeRange struct {
	Start int
	End   int
}

// Contains reports whether the window [start, end) fits entirely inside this range
func (r TimeRange) Contains(start, end int) bool {
	return r.Start <= start && end <= r.End
}

// Employee represents a rostered employee with their qualifications and
// per-weekday availability windows
type Employee struct {
	ID             string
	Name           string
	DepartmentID   string
	Qualifications []Skill
	// Availability maps each weekday to the windows the employee can work.
	// A weekday with no entry means the employee is unavailable that day.
	Availability map[time.Weekday][]TimeRange
	// Preferences maps each weekday to a soft preference score. Higher values
	// mean the employee prefers working that day. Missing entries score 0.
	Preferences     map[time.Weekday]float64
	MaxHoursPerWeek float64
	Active          bool
}

// HasQualifications reports whether the employee holds every required skill
func (e *Employee) HasQualifications(required []Skill) bool {
	for _, req := range required {
		found := false
		for _, q := range e.Qualifications {
			if q == req {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// IsAvailable reports whether the window [start, end) on the given weekday is
// fully contained in one of the employee's availability windows
func (e *Employee) IsAvailable(day time.Weekday, start, end int) bool {
	for _, window := range e.Availability[day] {
		if window.Contains(start, end) {
			return true
		}
	}
	return false
}

// PreferenceFor returns the employee's preference score for the given weekday
func (e *Employee) PreferenceFor(day time.Weekday) float64 {
	return e.Preferences[day]
}

// Shift is a concrete dated shift occurrence requiring staffing
type Shift struct {
	ID   string
	Name string
	// Start and End bound the shift as a half-open interval [Start, End)
	Start                  time.Time
	End                    time.Time
	DepartmentID           string
	MinStaff               int
	RequiredQualifications []Skill
}

// Overlaps reports whether two shifts' half-open intervals intersect.
// Shifts that merely touch at a boundary do not overlap.
func (s *Shift) Overlaps(other *Shift) bool {
	return s.Start.Before(other.End) && other.Start.Before(s.End)
}

// Hours returns the shift duration in hours
func (s *Shift) Hours() float64 {
	return s.End.Sub(s.Start).Hours()
}

// DayWindow returns the shift's weekday and its window as minutes from
// midnight, for matching against employee availability
func (s *Shift) DayWindow() (time.Weekday, int, int) {
	start := s.Start.Hour()*60 + s.Start.Minute()
	end := start + int(s.End.Sub(s.Start).Minutes())
	return s.Start.Weekday(), start, end
}

// ScheduleStatus is the lifecycle state of a schedule
type ScheduleStatus string

const (
	StatusDraft     ScheduleStatus = "draft"
	StatusValidated ScheduleStatus = "validated"
	StatusPublished ScheduleStatus = "published"
	StatusArchived  ScheduleStatus = "archived"
)

// IsValid reports whether the status is one of the known lifecycle states
func (s ScheduleStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusValidated, StatusPublished, StatusArchived:
		return true
	}
	return false
}

// Schedule is the week-scoped aggregate that owns a set of assignments and
// moves through the draft → validated → published → archived lifecycle.
// Published schedules are immutable; edits derive a new version in draft.
type Schedule struct {
	ID          string
	WeekStart   time.Time
	WeekEnd     time.Time
	Status      ScheduleStatus
	Version     int
	PublishedAt *time.Time
	CreatedBy   string
	UpdatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AssignmentStatus is the state of a single assignment
type AssignmentStatus string

const (
	AssignmentProposed  AssignmentStatus = "proposed"
	AssignmentConfirmed AssignmentStatus = "confirmed"
	AssignmentDeclined  AssignmentStatus = "declined"
)

// Assignment binds one employee to one shift occurrence inside a schedule.
// Assignments reference employees and shifts by id only; callers resolve them
// through lookup maps so the core stays free of live object graphs.
type Assignment struct {
	ID            string
	ScheduleID    string
	EmployeeID    string
	ShiftID       string
	Status        AssignmentStatus
	AutoGenerated bool
	CreatedAt     time.Time
}

// Counts reports whether the assignment occupies the employee's time.
// Declined assignments are kept for audit but no longer count.
func (a *Assignment) Counts() bool {
	return a.Status != AssignmentDeclined
}

// RuleType identifies a scheduling rule category
type RuleType string

const (
	RuleMaxHours         RuleType = "max_hours"
	RuleMinRest          RuleType = "min_rest"
	RuleRequiredCoverage RuleType = "required_coverage"
	RuleAvailability     RuleType = "availability"
)

// Rule configures one constraint applied during generation and validation
type Rule struct {
	ID     string
	Type   RuleType
	Scope  string // department id, or empty for global
	Params RuleParams
}

// RuleParams holds the typed parameters a rule can carry. Unknown fields are
// rejected at the configuration boundary, not deep inside the solver.
// Availability rules carry no parameters: the employee's windows are the rule.
type RuleParams struct {
	MinRestHours      float64
	CoverageMandatory bool
	MaxHoursPerWeek   float64
}

// RuleSet is the resolved set of rules handed to the detector and solver
type RuleSet struct {
	// MinRestHours is the minimum gap required between two shifts worked by
	// the same employee. Zero disables rest checking.
	MinRestHours float64
	// CoverageMandatory upgrades unmet coverage from warning to blocking error
	CoverageMandatory bool
	// MaxHoursPerWeek caps weekly hours for every employee in scope. Zero
	// leaves each employee's personal cap as the only limit; when both are
	// set the lower one wins.
	MaxHoursPerWeek float64
	// MaxRepairRetries caps reassignment attempts per slot during repair
	MaxRepairRetries int
}

// DefaultMaxRepairRetries bounds the local repair pass so generation always terminates
const DefaultMaxRepairRetries = 3

// ResolveRules folds a list of rules into the effective rule set for a
// department. Global rules (empty scope) apply everywhere; scoped rules apply
// only to their department and, for min_rest and max_hours, override earlier
// entries. Coverage mandates only accumulate: a scoped rule cannot relax a
// global one. Availability rules need no resolution; the check is always on.
func ResolveRules(rules []Rule, departmentID string) RuleSet {
	set := RuleSet{MaxRepairRetries: DefaultMaxRepairRetries}
	for _, r := range rules {
		if r.Scope != "" && r.Scope != departmentID {
			continue
		}
		switch r.Type {
		case RuleMinRest:
			set.MinRestHours = r.Params.MinRestHours
		case RuleRequiredCoverage:
			set.CoverageMandatory = set.CoverageMandatory || r.Params.CoverageMandatory
		case RuleMaxHours:
			set.MaxHoursPerWeek = r.Params.MaxHoursPerWeek
		}
	}
	return set
}

// IndexEmployees builds an id lookup map over a roster snapshot
func IndexEmployees(employees []Employee) map[string]*Employee {
	index := make(map[string]*Employee, len(employees))
	for i := range employees {
		index[employees[i].ID] = &employees[i]
	}
	return index
}

// IndexShifts builds an id lookup map over shift occurrences
func IndexShifts(shifts []Shift) map[string]*Shift {
	index := make(map[string]*Shift, len(shifts))
	for i := range shifts {
		index[shifts[i].ID] = &shifts[i]
	}
	return index
}
