package postgres

import (
	"context"
	"fmt"

	"time"

	"github.com/felixgrant/shiftwise/pkg/core/model"
)

// InsertShifts inserts shift occurrences, skipping ids already present so a
// regenerated week reuses its existing occurrence rows
func (d *DB) InsertShifts(ctx context.Context, shifts []model.Shift) error {
	if len(shifts) == 0 {
		return nil
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, s := range shifts {
		quals := make([]string, 0, len(s.RequiredQualifications))
		for _, q := range s.RequiredQualifications {
			quals = append(quals, string(q))
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO shift (id, name, starts_at, ends_at, department_id, min_staff, required_qualifications)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (id) DO NOTHING
		`, s.ID, s.Name, s.Start, s.End, s.DepartmentID, s.MinStaff, quals)
		if err != nil {
			return fmt.Errorf("failed to insert shift %s: %w", s.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit shifts: %w", err)
	}
	return nil
}

// GetShifts retrieves shift occurrences overlapping [from, to), optionally
// filtered by department
func (d *DB) GetShifts(ctx context.Context, from, to time.Time, department string) ([]model.Shift, error) {
	query := `
		SELECT id, name, starts_at, ends_at, department_id, min_staff, required_qualifications
		FROM shift
		WHERE starts_at < $2 AND ends_at > $1
	`
	args := []any{from, to}
	if department != "" {
		query += ` AND department_id = $3`
		args = append(args, department)
	}
	query += ` ORDER BY starts_at, id`

	return d.queryShifts(ctx, query, args...)
}

// GetShiftsByIDs retrieves the named shift occurrences
func (d *DB) GetShiftsByIDs(ctx context.Context, ids []string) ([]model.Shift, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return d.queryShifts(ctx, `
		SELECT id, name, starts_at, ends_at, department_id, min_staff, required_qualifications
		FROM shift
		WHERE id = ANY($1)
		ORDER BY starts_at, id
	`, ids)
}

func (d *DB) queryShifts(ctx context.Context, query string, args ...any) ([]model.Shift, error) {
	rows, err := d.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query shifts: %w", err)
	}
	defer rows.Close()

	var shifts []model.Shift
	for rows.Next() {
		var s model.Shift
		var quals []string
		if err := rows.Scan(&s.ID, &s.Name, &s.Start, &s.End, &s.DepartmentID, &s.MinStaff, &quals); err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		for _, q := range quals {
			s.RequiredQualifications = append(s.RequiredQualifications, model.Skill(q))
		}
		shifts = append(shifts, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shifts: %w", err)
	}

	return shifts, nil
}
