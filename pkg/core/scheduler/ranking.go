package scheduler

import (
	"sort"

	"github.com/felixgrant/shiftwise/pkg/core/model"
)

// rankCandidates returns the employees eligible for one more slot on the
// shift, best candidate first. Ranking order:
//
//  1. fewest hours already assigned this run (fairness)
//  2. highest preference score for the shift's weekday
//  3. employee id, ascending (deterministic tie-break)
func (st *state) rankCandidates(shift *model.Shift) []*model.Employee {
	var eligible []*model.Employee
	for i := range st.in.Employees {
		e := &st.in.Employees[i]
		if st.isEligible(e, shift) {
			eligible = append(eligible, e)
		}
	}

	day := shift.Start.Weekday()
	sort.Slice(eligible, func(i, j int) bool {
		hi, hj := st.hours[eligible[i].ID], st.hours[eligible[j].ID]
		if hi != hj {
			return hi < hj
		}
		pi, pj := eligible[i].PreferenceFor(day), eligible[j].PreferenceFor(day)
		if pi != pj {
			return pi > pj
		}
		return eligible[i].ID < eligible[j].ID
	})

	return eligible
}

// isEligible applies the hard constraints: active, qualified, available, not
// already on this shift, and no interval overlap with held shifts
func (st *state) isEligible(e *model.Employee, shift *model.Shift) bool {
	if !e.Active {
		return false
	}
	if st.onShift[shift.ID][e.ID] {
		return false
	}
	if !e.HasQualifications(shift.RequiredQualifications) {
		return false
	}
	day, start, end := shift.DayWindow()
	if !e.IsAvailable(day, start, end) {
		return false
	}
	for _, held := range st.occupied[e.ID] {
		if held.Overlaps(shift) {
			return false
		}
	}
	return true
}
