package postgres

import (
	"context"
	"fmt"

	"github.com/felixgrant/shiftwise/pkg/db"
)

// InsertOverrideRecord records an acknowledged-warnings publish against the acting user
func (d *DB) InsertOverrideRecord(ctx context.Context, rec *db.OverrideRecord) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO override_record (id, schedule_id, actor_id, kind, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, rec.ID, rec.ScheduleID, rec.ActorID, rec.Kind, rec.Reason, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert override record: %w", err)
	}
	return nil
}

// InsertChangeLog records a post-publish reassignment
func (d *DB) InsertChangeLog(ctx context.Context, entry *db.ChangeLog) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO change_log (id, schedule_id, assignment_id, old_employee_id, new_employee_id, actor_id, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, entry.ID, entry.ScheduleID, entry.AssignmentID, entry.OldEmployeeID, entry.NewEmployeeID, entry.ActorID, entry.Reason, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert change log: %w", err)
	}
	return nil
}

// ListChangeLogs retrieves the change history for a schedule, oldest first
func (d *DB) ListChangeLogs(ctx context.Context, scheduleID string) ([]db.ChangeLog, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, schedule_id, assignment_id, old_employee_id, new_employee_id, actor_id, reason, created_at
		FROM change_log
		WHERE schedule_id = $1
		ORDER BY created_at, id
	`, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to query change logs: %w", err)
	}
	defer rows.Close()

	var entries []db.ChangeLog
	for rows.Next() {
		var e db.ChangeLog
		if err := rows.Scan(&e.ID, &e.ScheduleID, &e.AssignmentID, &e.OldEmployeeID, &e.NewEmployeeID, &e.ActorID, &e.Reason, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan change log: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating change logs: %w", err)
	}

	return entries, nil
}
