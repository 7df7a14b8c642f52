package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/felixgrant/shiftwise/pkg/core/model"
)

const scheduleColumns = `id, week_start, week_end, status, version, published_at, created_by, updated_by, created_at, updated_at`

// GetSchedule retrieves a schedule by id, or nil when it does not exist
func (d *DB) GetSchedule(ctx context.Context, id string) (*model.Schedule, error) {
	row := d.pool.QueryRow(ctx, `SELECT `+scheduleColumns+` FROM schedule WHERE id = $1`, id)
	sched, err := scanSchedule(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get schedule %s: %w", id, err)
	}
	return sched, nil
}

// GetCurrentSchedule retrieves the highest-version schedule for a week, or nil
func (d *DB) GetCurrentSchedule(ctx context.Context, weekStart time.Time) (*model.Schedule, error) {
	row := d.pool.QueryRow(ctx, `
		SELECT `+scheduleColumns+`
		FROM schedule
		WHERE week_start = $1
		ORDER BY version DESC
		LIMIT 1
	`, weekStart)
	sched, err := scanSchedule(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get current schedule for week %s: %w", weekStart.Format("2006-01-02"), err)
	}
	return sched, nil
}

// ListScheduleVersions retrieves all versions for a week, oldest first
func (d *DB) ListScheduleVersions(ctx context.Context, weekStart time.Time) ([]model.Schedule, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT `+scheduleColumns+`
		FROM schedule
		WHERE week_start = $1
		ORDER BY version
	`, weekStart)
	if err != nil {
		return nil, fmt.Errorf("failed to query schedule versions: %w", err)
	}
	defer rows.Close()

	var schedules []model.Schedule
	for rows.Next() {
		sched, err := scanSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan schedule: %w", err)
		}
		schedules = append(schedules, *sched)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating schedules: %w", err)
	}

	return schedules, nil
}

// InsertSchedule inserts a new schedule row
func (d *DB) InsertSchedule(ctx context.Context, sched *model.Schedule) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO schedule (id, week_start, week_end, status, version, published_at, created_by, updated_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, sched.ID, sched.WeekStart, sched.WeekEnd, string(sched.Status), sched.Version,
		sched.PublishedAt, sched.CreatedBy, sched.UpdatedBy, sched.CreatedAt, sched.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert schedule: %w", err)
	}
	return nil
}

// UpdateSchedule updates a schedule's mutable columns
func (d *DB) UpdateSchedule(ctx context.Context, sched *model.Schedule) error {
	_, err := d.pool.Exec(ctx, `
		UPDATE schedule
		SET status = $2, published_at = $3, updated_by = $4, updated_at = $5
		WHERE id = $1
	`, sched.ID, string(sched.Status), sched.PublishedAt, sched.UpdatedBy, sched.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update schedule %s: %w", sched.ID, err)
	}
	return nil
}

func scanSchedule(row pgx.Row) (*model.Schedule, error) {
	var s model.Schedule
	var status string
	if err := row.Scan(&s.ID, &s.WeekStart, &s.WeekEnd, &status, &s.Version,
		&s.PublishedAt, &s.CreatedBy, &s.UpdatedBy, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	s.Status = model.ScheduleStatus(status)
	return &s, nil
}
