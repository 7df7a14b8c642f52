package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/felixgrant/shiftwise/pkg/core/model"
)

// GetEmployees retrieves active employees, optionally filtered by department.
// The whole roster comes back fully populated in one query; callers never
// fetch per employee.
func (d *DB) GetEmployees(ctx context.Context, department string) ([]model.Employee, error) {
	query := `
		SELECT id, name, department_id, qualifications, availability, preferences, max_hours_per_week, active
		FROM employee
		WHERE active = TRUE
	`
	args := []any{}
	if department != "" {
		query += ` AND department_id = $1`
		args = append(args, department)
	}
	query += ` ORDER BY id`

	rows, err := d.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	var employees []model.Employee
	for rows.Next() {
		var e model.Employee
		var quals []string
		var availabilityJSON, preferencesJSON []byte
		if err := rows.Scan(&e.ID, &e.Name, &e.DepartmentID, &quals, &availabilityJSON, &preferencesJSON, &e.MaxHoursPerWeek, &e.Active); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		for _, q := range quals {
			e.Qualifications = append(e.Qualifications, model.Skill(q))
		}
		if err := json.Unmarshal(availabilityJSON, &e.Availability); err != nil {
			return nil, fmt.Errorf("failed to decode availability for employee %s: %w", e.ID, err)
		}
		if err := json.Unmarshal(preferencesJSON, &e.Preferences); err != nil {
			return nil, fmt.Errorf("failed to decode preferences for employee %s: %w", e.ID, err)
		}
		employees = append(employees, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating employees: %w", err)
	}

	return employees, nil
}
