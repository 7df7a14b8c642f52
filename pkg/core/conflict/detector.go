package conflict

import (
	"fmt"
	"sort"

	"github.com/felixgrant/shiftwise/pkg/core/model"
)

// Kind classifies a detected conflict
type Kind string

const (
	KindOverlap       Kind = "overlap"
	KindQualification Kind = "qualification"
	KindAvailability  Kind = "availability"
	KindRestPeriod    Kind = "rest_period"
	KindMaxHours      Kind = "max_hours"
	KindCoverage      Kind = "coverage"
)

// Severity determines whether a conflict blocks publishing
type Severity string

const (
	// SeverityBlocking conflicts must be resolved before a schedule can publish
	SeverityBlocking Severity = "blocking"
	// SeverityWarning conflicts may be acknowledged and overridden
	SeverityWarning Severity = "warning"
)

// Conflict is a detected rule violation among assignments. Pair conflicts
// (overlap, rest period) carry both assignment ids in chronological order and
// are reported once per pair.
type Conflict struct {
	Kind          Kind
	Severity      Severity
	EmployeeID    string
	AssignmentIDs []string
	Detail        string
}

// Detect evaluates all non-declined assignments against the given shifts,
// employees and rules. It is pure and deterministic: identical inputs yield
// identical output ordering. Assignments referencing unknown shifts or
// employees are skipped; the persistence layer owns referential integrity.
func Detect(
	assignments []model.Assignment,
	shifts map[string]*model.Shift,
	employees map[string]*model.Employee,
	rules model.RuleSet,
) []Conflict {
	// Group counting assignments by employee
	byEmployee := make(map[string][]model.Assignment)
	for _, a := range assignments {
		if !a.Counts() {
			continue
		}
		if _, ok := shifts[a.ShiftID]; !ok {
			continue
		}
		byEmployee[a.EmployeeID] = append(byEmployee[a.EmployeeID], a)
	}

	employeeIDs := make([]string, 0, len(byEmployee))
	for id := range byEmployee {
		employeeIDs = append(employeeIDs, id)
	}
	sort.Strings(employeeIDs)

	var conflicts []Conflict
	for _, employeeID := range employeeIDs {
		group := byEmployee[employeeID]
		employee := employees[employeeID]

		// Sort each employee's assignments by shift start so the sweep can
		// compare adjacent pairs instead of all pairs
		sort.Slice(group, func(i, j int) bool {
			si, sj := shifts[group[i].ShiftID], shifts[group[j].ShiftID]
			if !si.Start.Equal(sj.Start) {
				return si.Start.Before(sj.Start)
			}
			return group[i].ShiftID < group[j].ShiftID
		})

		conflicts = append(conflicts, sweepPairs(group, shifts, employeeID, rules)...)
		conflicts = append(conflicts, checkPerAssignment(group, shifts, employee, employeeID)...)
		conflicts = append(conflicts, checkWeeklyHours(group, shifts, employee, employeeID, rules)...)
	}

	return conflicts
}

// sweepPairs finds overlap and rest-period violations within one employee's
// chronologically sorted assignments. Each assignment is compared against the
// latest-ending one seen so far, not just its neighbor, so a long shift that
// contains several later disjoint shifts conflicts with each of them.
func sweepPairs(group []model.Assignment, shifts map[string]*model.Shift, employeeID string, rules model.RuleSet) []Conflict {
	if len(group) == 0 {
		return nil
	}

	var conflicts []Conflict
	last := group[0]
	for i := 1; i < len(group); i++ {
		b := group[i]
		sl, sb := shifts[last.ShiftID], shifts[b.ShiftID]

		if sl.Overlaps(sb) {
			conflicts = append(conflicts, Conflict{
				Kind:          KindOverlap,
				Severity:      SeverityBlocking,
				EmployeeID:    employeeID,
				AssignmentIDs: []string{last.ID, b.ID},
				Detail: fmt.Sprintf("shifts %s and %s overlap (%s-%s vs %s-%s)",
					sl.ID, sb.ID,
					sl.Start.Format("Mon 15:04"), sl.End.Format("15:04"),
					sb.Start.Format("Mon 15:04"), sb.End.Format("15:04")),
			})
		} else if rules.MinRestHours > 0 {
			gap := sb.Start.Sub(sl.End).Hours()
			if gap >= 0 && gap < rules.MinRestHours {
				conflicts = append(conflicts, Conflict{
					Kind:          KindRestPeriod,
					Severity:      SeverityWarning,
					EmployeeID:    employeeID,
					AssignmentIDs: []string{last.ID, b.ID},
					Detail: fmt.Sprintf("only %.1fh rest between shifts %s and %s (minimum %.1fh)",
						gap, sl.ID, sb.ID, rules.MinRestHours),
				})
			}
		}

		if sb.End.After(sl.End) {
			last = b
		}
	}
	return conflicts
}

// checkPerAssignment evaluates qualification and availability for each assignment
func checkPerAssignment(group []model.Assignment, shifts map[string]*model.Shift, employee *model.Employee, employeeID string) []Conflict {
	var conflicts []Conflict
	for _, a := range group {
		shift := shifts[a.ShiftID]

		if employee == nil {
			conflicts = append(conflicts, Conflict{
				Kind:          KindQualification,
				Severity:      SeverityBlocking,
				EmployeeID:    employeeID,
				AssignmentIDs: []string{a.ID},
				Detail:        fmt.Sprintf("employee %s not found in roster", employeeID),
			})
			continue
		}

		if !employee.HasQualifications(shift.RequiredQualifications) {
			conflicts = append(conflicts, Conflict{
				Kind:          KindQualification,
				Severity:      SeverityBlocking,
				EmployeeID:    employeeID,
				AssignmentIDs: []string{a.ID},
				Detail:        fmt.Sprintf("employee %s lacks a qualification required by shift %s", employeeID, shift.ID),
			})
		}

		day, start, end := shift.DayWindow()
		if !employee.IsAvailable(day, start, end) {
			conflicts = append(conflicts, Conflict{
				Kind:          KindAvailability,
				Severity:      SeverityBlocking,
				EmployeeID:    employeeID,
				AssignmentIDs: []string{a.ID},
				Detail:        fmt.Sprintf("shift %s falls outside employee %s availability on %s", shift.ID, employeeID, day),
			})
		}
	}
	return conflicts
}

// checkWeeklyHours flags the assignments that push an employee past their
// weekly hour cap. The cap is the employee's own limit or a max_hours rule in
// scope, whichever is lower. Earlier assignments within the cap stay valid;
// only the excess ones are reported, as warnings.
func checkWeeklyHours(group []model.Assignment, shifts map[string]*model.Shift, employee *model.Employee, employeeID string, rules model.RuleSet) []Conflict {
	if employee == nil {
		return nil
	}
	limit := employee.MaxHoursPerWeek
	if rules.MaxHoursPerWeek > 0 && (limit <= 0 || rules.MaxHoursPerWeek < limit) {
		limit = rules.MaxHoursPerWeek
	}
	if limit <= 0 {
		return nil
	}

	var conflicts []Conflict
	total := 0.0
	for _, a := range group {
		shift := shifts[a.ShiftID]
		total += shift.Hours()
		if total > limit {
			conflicts = append(conflicts, Conflict{
				Kind:          KindMaxHours,
				Severity:      SeverityWarning,
				EmployeeID:    employeeID,
				AssignmentIDs: []string{a.ID},
				Detail: fmt.Sprintf("assignment brings employee %s to %.1fh, over the %.1fh weekly cap",
					employeeID, total, limit),
			})
		}
	}
	return conflicts
}
