package db

import "time"

// OverrideRecord captures an explicit, audited decision to publish a schedule
// despite validation warnings
type OverrideRecord struct {
	ID         string
	ScheduleID string
	ActorID    string
	Kind       string // e.g. "acknowledged_warnings"
	Reason     string
	CreatedAt  time.Time
}

// ChangeLog records a post-publish reassignment: who replaced whom on which
// assignment, by whom and why
type ChangeLog struct {
	ID            string
	ScheduleID    string
	AssignmentID  string
	OldEmployeeID string
	NewEmployeeID string
	ActorID       string
	Reason        string
	CreatedAt     time.Time
}
