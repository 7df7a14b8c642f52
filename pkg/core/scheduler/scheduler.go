// Package scheduler implements the constraint-based assignment generator.
// It fills each shift's staffing slots from the roster, ranking eligible
// employees for fairness, and records unmet requirements instead of failing
// when a slot cannot be filled.
package scheduler

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/felixgrant/shiftwise/pkg/core/conflict"
	"github.com/felixgrant/shiftwise/pkg/core/model"
)

// assignmentNamespace seeds v5 UUIDs for generated assignments. Deriving the
// id from (schedule, shift, employee) makes regeneration idempotent and lets
// the persistence layer's uniqueness constraint absorb duplicate inserts.
var assignmentNamespace = uuid.MustParse("5b1f64dc-8c1a-4a6e-9f3d-2e7c90b5a417")

// AssignmentID returns the deterministic id for a generated assignment
func AssignmentID(scheduleID, shiftID, employeeID string) string {
	key := scheduleID + "/" + shiftID + "/" + employeeID
	return uuid.NewSHA1(assignmentNamespace, []byte(key)).String()
}

// Input carries everything the generator needs. Callers fetch roster and
// shift data beforehand; the generator performs no I/O of its own.
type Input struct {
	ScheduleID string
	Employees  []model.Employee
	Shifts     []model.Shift
	Rules      model.RuleSet
	// Existing holds assignments already persisted for this week, so the
	// generator never proposes a second assignment over an occupied interval
	Existing []model.Assignment
	// Now stamps CreatedAt on proposed assignments
	Now time.Time
}

// UnmetRequirement records a staffing need the generator could not fill
type UnmetRequirement struct {
	ShiftID      string
	DepartmentID string
	Required     int
	Assigned     int
	Shortfall    int
	Reason       string
}

// Result is the outcome of a generation run. Staffing shortfalls are data,
// never errors; Generate fails only on structurally invalid input.
type Result struct {
	Assignments []model.Assignment
	Unmet       []UnmetRequirement
}

// state tracks the solver's view of the week as slots are filled
type state struct {
	in        Input
	employees map[string]*model.Employee
	shifts    map[string]*model.Shift
	// hours per employee across existing and proposed assignments this run
	hours map[string]float64
	// occupied shifts per employee, for overlap elimination
	occupied map[string][]*model.Shift
	// onShift tracks which employees hold each shift (existing + proposed)
	onShift map[string]map[string]bool
	// proposed assignments keyed by id, in insertion order via proposedIDs
	proposed    map[string]*model.Assignment
	proposedIDs []string
	unmet       map[string]*UnmetRequirement
}

// Generate produces candidate assignments for the given shifts. It processes
// occurrences in ascending start order, fills min-staff slots greedily from
// the fairness ranking, then runs a bounded repair pass over any conflicts
// the detector reports. Identical inputs yield identical results.
func Generate(in Input) (*Result, error) {
	if err := model.ValidateEmployees(in.Employees); err != nil {
		return nil, err
	}
	if err := model.ValidateShifts(in.Shifts); err != nil {
		return nil, err
	}
	if in.Rules.MaxRepairRetries <= 0 {
		in.Rules.MaxRepairRetries = model.DefaultMaxRepairRetries
	}

	st := newState(in)

	// Greedy pass: hardest ordering concern is determinism, so shifts go in
	// ascending (start, id) order and candidates in ranking order
	for _, shift := range st.orderedShifts() {
		st.fillShift(shift)
	}

	// Bounded local repair over whatever the detector still flags
	st.repair()

	return st.buildResult(), nil
}

func newState(in Input) *state {
	st := &state{
		in:        in,
		employees: model.IndexEmployees(in.Employees),
		shifts:    model.IndexShifts(in.Shifts),
		hours:     make(map[string]float64),
		occupied:  make(map[string][]*model.Shift),
		onShift:   make(map[string]map[string]bool),
		proposed:  make(map[string]*model.Assignment),
		unmet:     make(map[string]*UnmetRequirement),
	}

	for _, a := range in.Existing {
		if !a.Counts() {
			continue
		}
		shift, ok := st.shifts[a.ShiftID]
		if !ok {
			continue
		}
		st.hours[a.EmployeeID] += shift.Hours()
		st.occupied[a.EmployeeID] = append(st.occupied[a.EmployeeID], shift)
		st.markOnShift(a.ShiftID, a.EmployeeID)
	}

	return st
}

func (st *state) markOnShift(shiftID, employeeID string) {
	if st.onShift[shiftID] == nil {
		st.onShift[shiftID] = make(map[string]bool)
	}
	st.onShift[shiftID][employeeID] = true
}

// orderedShifts returns shifts in ascending (start, id) order
func (st *state) orderedShifts() []*model.Shift {
	ordered := make([]*model.Shift, 0, len(st.shifts))
	for _, s := range st.shifts {
		ordered = append(ordered, s)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if !ordered[i].Start.Equal(ordered[j].Start) {
			return ordered[i].Start.Before(ordered[j].Start)
		}
		return ordered[i].ID < ordered[j].ID
	})
	return ordered
}

// fillShift assigns ranked candidates to the shift until min staff is reached
// or no eligible employee remains
func (st *state) fillShift(shift *model.Shift) {
	assigned := len(st.onShift[shift.ID])

	for assigned < shift.MinStaff {
		candidates := st.rankCandidates(shift)
		if len(candidates) == 0 {
			st.recordUnmet(shift, assigned, "no eligible employee remaining")
			return
		}
		st.propose(shift, candidates[0])
		assigned++
	}
}

// propose creates an auto-generated assignment and updates solver state
func (st *state) propose(shift *model.Shift, employee *model.Employee) {
	a := &model.Assignment{
		ID:            AssignmentID(st.in.ScheduleID, shift.ID, employee.ID),
		ScheduleID:    st.in.ScheduleID,
		EmployeeID:    employee.ID,
		ShiftID:       shift.ID,
		Status:        model.AssignmentProposed,
		AutoGenerated: true,
		CreatedAt:     st.in.Now,
	}
	st.proposed[a.ID] = a
	st.proposedIDs = append(st.proposedIDs, a.ID)
	st.hours[employee.ID] += shift.Hours()
	st.occupied[employee.ID] = append(st.occupied[employee.ID], shift)
	st.markOnShift(shift.ID, employee.ID)
}

// withdraw removes a proposed assignment and rolls back solver state
func (st *state) withdraw(a *model.Assignment) {
	shift := st.shifts[a.ShiftID]
	delete(st.proposed, a.ID)
	for i, id := range st.proposedIDs {
		if id == a.ID {
			st.proposedIDs = append(st.proposedIDs[:i], st.proposedIDs[i+1:]...)
			break
		}
	}
	st.hours[a.EmployeeID] -= shift.Hours()
	occ := st.occupied[a.EmployeeID]
	for i, s := range occ {
		if s.ID == shift.ID {
			st.occupied[a.EmployeeID] = append(occ[:i], occ[i+1:]...)
			break
		}
	}
	delete(st.onShift[a.ShiftID], a.EmployeeID)
}

func (st *state) recordUnmet(shift *model.Shift, assigned int, reason string) {
	if shift.MinStaff-assigned <= 0 {
		return
	}
	if existing, ok := st.unmet[shift.ID]; ok {
		existing.Assigned = assigned
		existing.Shortfall = shift.MinStaff - assigned
		return
	}
	st.unmet[shift.ID] = &UnmetRequirement{
		ShiftID:      shift.ID,
		DepartmentID: shift.DepartmentID,
		Required:     shift.MinStaff,
		Assigned:     assigned,
		Shortfall:    shift.MinStaff - assigned,
		Reason:       reason,
	}
}

// buildResult orders proposed assignments and unmet requirements for stable output
func (st *state) buildResult() *Result {
	result := &Result{
		Assignments: make([]model.Assignment, 0, len(st.proposed)),
		Unmet:       make([]UnmetRequirement, 0, len(st.unmet)),
	}

	for _, id := range st.proposedIDs {
		result.Assignments = append(result.Assignments, *st.proposed[id])
	}
	sort.Slice(result.Assignments, func(i, j int) bool {
		si := st.shifts[result.Assignments[i].ShiftID]
		sj := st.shifts[result.Assignments[j].ShiftID]
		if !si.Start.Equal(sj.Start) {
			return si.Start.Before(sj.Start)
		}
		if si.ID != sj.ID {
			return si.ID < sj.ID
		}
		return result.Assignments[i].EmployeeID < result.Assignments[j].EmployeeID
	})

	for _, u := range st.unmet {
		result.Unmet = append(result.Unmet, *u)
	}
	sort.Slice(result.Unmet, func(i, j int) bool {
		si := st.shifts[result.Unmet[i].ShiftID]
		sj := st.shifts[result.Unmet[j].ShiftID]
		if !si.Start.Equal(sj.Start) {
			return si.Start.Before(sj.Start)
		}
		return si.ID < sj.ID
	})

	return result
}

// countingAssignments returns existing plus proposed assignments, the set the
// detector evaluates during repair
func (st *state) countingAssignments() []model.Assignment {
	all := make([]model.Assignment, 0, len(st.in.Existing)+len(st.proposedIDs))
	for _, a := range st.in.Existing {
		if a.Counts() {
			all = append(all, a)
		}
	}
	for _, id := range st.proposedIDs {
		all = append(all, *st.proposed[id])
	}
	return all
}

// detectorConflicts runs the conflict detector over the current working set
func (st *state) detectorConflicts() []conflict.Conflict {
	return conflict.Detect(st.countingAssignments(), st.shifts, st.employees, st.in.Rules)
}

func (u UnmetRequirement) String() string {
	return fmt.Sprintf("shift %s short %d of %d (%s)", u.ShiftID, u.Shortfall, u.Required, u.Reason)
}
