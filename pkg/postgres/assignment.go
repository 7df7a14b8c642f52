package postgres

import (
	"context"
	"fmt"

	"github.com/felixgrant/shiftwise/pkg/core/model"
)

// GetAssignments retrieves all assignments for a schedule, declined included
func (d *DB) GetAssignments(ctx context.Context, scheduleID string) ([]model.Assignment, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, schedule_id, employee_id, shift_id, status, auto_generated, created_at
		FROM assignment
		WHERE schedule_id = $1
		ORDER BY created_at, id
	`, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()

	var assignments []model.Assignment
	for rows.Next() {
		var a model.Assignment
		var status string
		if err := rows.Scan(&a.ID, &a.ScheduleID, &a.EmployeeID, &a.ShiftID, &status, &a.AutoGenerated, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		a.Status = model.AssignmentStatus(status)
		assignments = append(assignments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignments: %w", err)
	}

	return assignments, nil
}

// ExistingAssignmentIDs returns which of the candidate ids already exist,
// in a single query
func (d *DB) ExistingAssignmentIDs(ctx context.Context, scheduleID string, ids []string) (map[string]bool, error) {
	existing := make(map[string]bool)
	if len(ids) == 0 {
		return existing, nil
	}

	rows, err := d.pool.Query(ctx, `
		SELECT id FROM assignment WHERE schedule_id = $1 AND id = ANY($2)
	`, scheduleID, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query existing assignments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan assignment id: %w", err)
		}
		existing[id] = true
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignment ids: %w", err)
	}

	return existing, nil
}

// InsertAssignments inserts assignment rows inside one transaction. Rows that
// collide on the (employee, schedule, shift) uniqueness constraint are
// silently skipped: a concurrent writer got there first, which is fine.
// Returns the number of rows actually inserted.
func (d *DB) InsertAssignments(ctx context.Context, assignments []model.Assignment) (int, error) {
	if len(assignments) == 0 {
		return 0, nil
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	inserted := 0
	for _, a := range assignments {
		tag, err := tx.Exec(ctx, `
			INSERT INTO assignment (id, schedule_id, employee_id, shift_id, status, auto_generated, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (employee_id, schedule_id, shift_id) DO NOTHING
		`, a.ID, a.ScheduleID, a.EmployeeID, a.ShiftID, string(a.Status), a.AutoGenerated, a.CreatedAt)
		if err != nil {
			return 0, fmt.Errorf("failed to insert assignment %s: %w", a.ID, err)
		}
		inserted += int(tag.RowsAffected())
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit assignments: %w", err)
	}

	return inserted, nil
}

// UpdateAssignmentStatus updates a single assignment's status
func (d *DB) UpdateAssignmentStatus(ctx context.Context, id string, status model.AssignmentStatus) error {
	tag, err := d.pool.Exec(ctx, `UPDATE assignment SET status = $2 WHERE id = $1`, id, string(status))
	if err != nil {
		return fmt.Errorf("failed to update assignment %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("assignment not found: %s", id)
	}
	return nil
}

// DeleteAssignment removes an assignment row outright
func (d *DB) DeleteAssignment(ctx context.Context, id string) error {
	tag, err := d.pool.Exec(ctx, `DELETE FROM assignment WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete assignment %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("assignment not found: %s", id)
	}
	return nil
}
