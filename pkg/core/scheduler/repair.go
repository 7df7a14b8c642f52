package scheduler

import (
	"github.com/felixgrant/shiftwise/pkg/core/conflict"
	"github.com/felixgrant/shiftwise/pkg/core/model"
)

// repair runs the bounded local-repair pass. For every blocking conflict the
// detector reports against a proposed assignment, the slot is handed to the
// next-ranked eligible candidate. Retries are capped per shift so the pass
// always terminates; slots that still fail are demoted to unmet.
func (st *state) repair() {
	retries := make(map[string]int)

	for {
		target := st.nextRepairTarget()
		if target == nil {
			return
		}

		shift := st.shifts[target.ShiftID]
		st.withdraw(target)

		if retries[shift.ID] >= st.in.Rules.MaxRepairRetries {
			st.recordUnmet(shift, len(st.onShift[shift.ID]), "repair retries exhausted")
			continue
		}
		retries[shift.ID]++

		candidates := st.rankCandidates(shift)
		if len(candidates) == 0 {
			st.recordUnmet(shift, len(st.onShift[shift.ID]), "no eligible replacement candidate")
			continue
		}
		st.propose(shift, candidates[0])
	}
}

// nextRepairTarget returns the first proposed assignment implicated in a
// blocking conflict, or nil when the working set is clean. When a pair
// conflict involves two proposed assignments, the chronologically later one
// is withdrawn, keeping the earlier placement stable.
func (st *state) nextRepairTarget() *model.Assignment {
	for _, c := range st.detectorConflicts() {
		if c.Severity != conflict.SeverityBlocking {
			continue
		}
		// AssignmentIDs are in chronological order; prefer withdrawing the last
		for i := len(c.AssignmentIDs) - 1; i >= 0; i-- {
			if a, ok := st.proposed[c.AssignmentIDs[i]]; ok {
				return a
			}
		}
	}
	return nil
}
