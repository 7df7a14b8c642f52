package model

import "fmt"

// InputError reports structurally invalid employee or shift data. It is fatal
// to the call that received it: the solver and detector refuse to run on
// malformed input, while business-rule violations are returned as data.
type InputError struct {
	Entity string // "employee" or "shift"
	ID     string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid %s %s: %s", e.Entity, e.ID, e.Reason)
}

// ValidateEmployees checks a roster snapshot for structural errors
func ValidateEmployees(employees []Employee) error {
	for i := range employees {
		e := &employees[i]
		if e.ID == "" {
			return &InputError{Entity: "employee", ID: "(blank)", Reason: "missing id"}
		}
		if e.MaxHoursPerWeek < 0 {
			return &InputError{Entity: "employee", ID: e.ID, Reason: "negative max hours per week"}
		}
		for day, windows := range e.Availability {
			for _, w := range windows {
				if w.End <= w.Start {
					return &InputError{
						Entity: "employee",
						ID:     e.ID,
						Reason: fmt.Sprintf("availability window on %s ends before it starts", day),
					}
				}
			}
		}
	}
	return nil
}

// ValidateShifts checks shift occurrences for structural errors
func ValidateShifts(shifts []Shift) error {
	for i := range shifts {
		s := &shifts[i]
		if s.ID == "" {
			return &InputError{Entity: "shift", ID: "(blank)", Reason: "missing id"}
		}
		if !s.End.After(s.Start) {
			return &InputError{Entity: "shift", ID: s.ID, Reason: "end time is not after start time"}
		}
		if s.MinStaff < 1 {
			return &InputError{Entity: "shift", ID: s.ID, Reason: "min staff must be at least 1"}
		}
	}
	return nil
}
