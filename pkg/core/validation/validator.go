// Package validation folds detector output and coverage shortfalls into the
// report that gates publishing.
package validation

import (
	"fmt"
	"sort"

	"github.com/felixgrant/shiftwise/pkg/core/conflict"
	"github.com/felixgrant/shiftwise/pkg/core/model"
	"github.com/felixgrant/shiftwise/pkg/core/scheduler"
)

// Report is the outcome of validating a schedule. Blocking conflicts land in
// Errors; everything overridable lands in Warnings. Coverage shortfalls fold
// into Warnings, or into Errors when a rule in scope marks coverage as
// mandatory, so an understaffed schedule never publishes silently. The
// structured shortfall list is kept alongside for reporting.
type Report struct {
	Errors            []conflict.Conflict
	Warnings          []conflict.Conflict
	UnmetRequirements []scheduler.UnmetRequirement
}

// HasBlockingErrors reports whether the schedule may not be published as-is
func (r *Report) HasBlockingErrors() bool {
	return len(r.Errors) > 0
}

// HasWarnings reports whether publishing requires an explicit acknowledgement
func (r *Report) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// Summary renders a one-line overview for logs and CLI output
func (r *Report) Summary() string {
	return fmt.Sprintf("%d errors, %d warnings, %d unmet requirements",
		len(r.Errors), len(r.Warnings), len(r.UnmetRequirements))
}

// Validate runs the conflict detector over all non-declined assignments and
// recomputes coverage against each shift's minimum staffing. Rules resolve
// globally for the detector sweep and per shift department for coverage
// severity. It is pure and idempotent: repeated calls on the same inputs
// return identical reports.
func Validate(
	assignments []model.Assignment,
	shifts map[string]*model.Shift,
	employees map[string]*model.Employee,
	rules []model.Rule,
) *Report {
	report := &Report{
		Errors:            []conflict.Conflict{},
		Warnings:          []conflict.Conflict{},
		UnmetRequirements: []scheduler.UnmetRequirement{},
	}

	for _, c := range conflict.Detect(assignments, shifts, employees, model.ResolveRules(rules, "")) {
		if c.Severity == conflict.SeverityBlocking {
			report.Errors = append(report.Errors, c)
		} else {
			report.Warnings = append(report.Warnings, c)
		}
	}

	report.UnmetRequirements = coverageShortfalls(assignments, shifts)

	for _, u := range report.UnmetRequirements {
		if model.ResolveRules(rules, u.DepartmentID).CoverageMandatory {
			report.Errors = append(report.Errors, conflict.Conflict{
				Kind:     conflict.KindCoverage,
				Severity: conflict.SeverityBlocking,
				Detail: fmt.Sprintf("shift %s is short %d of %d required staff (coverage is mandatory)",
					u.ShiftID, u.Shortfall, u.Required),
			})
		} else {
			report.Warnings = append(report.Warnings, conflict.Conflict{
				Kind:     conflict.KindCoverage,
				Severity: conflict.SeverityWarning,
				Detail: fmt.Sprintf("shift %s is short %d of %d required staff",
					u.ShiftID, u.Shortfall, u.Required),
			})
		}
	}

	return report
}

// coverageShortfalls counts non-declined assignments per shift against min staff
func coverageShortfalls(assignments []model.Assignment, shifts map[string]*model.Shift) []scheduler.UnmetRequirement {
	counts := make(map[string]int)
	for _, a := range assignments {
		if a.Counts() {
			counts[a.ShiftID]++
		}
	}

	var unmet []scheduler.UnmetRequirement
	for id, shift := range shifts {
		assigned := counts[id]
		if assigned < shift.MinStaff {
			unmet = append(unmet, scheduler.UnmetRequirement{
				ShiftID:      id,
				DepartmentID: shift.DepartmentID,
				Required:     shift.MinStaff,
				Assigned:     assigned,
				Shortfall:    shift.MinStaff - assigned,
				Reason:       "coverage below minimum staff",
			})
		}
	}
	sort.Slice(unmet, func(i, j int) bool {
		si, sj := shifts[unmet[i].ShiftID], shifts[unmet[j].ShiftID]
		if !si.Start.Equal(sj.Start) {
			return si.Start.Before(sj.Start)
		}
		return si.ID < sj.ID
	})
	return unmet
}
