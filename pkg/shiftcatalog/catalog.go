// Package shiftcatalog expands configured recurring shift templates into
// concrete dated occurrences. It is the Shift Catalog provider: callers ask
// for a date range and get fully-populated occurrences in one call.
package shiftcatalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/felixgrant/shiftwise/internal/config"
	"github.com/felixgrant/shiftwise/pkg/core/model"
)

// Catalog expands shift templates into occurrences
type Catalog struct {
	templates []config.ShiftTemplate
}

// New creates a catalog over the configured templates
func New(templates []config.ShiftTemplate) *Catalog {
	return &Catalog{templates: templates}
}

// Occurrences expands every template whose recurrence falls inside [from, to),
// optionally filtered by department. Occurrence ids are derived from the
// template name and date, so re-expanding the same week yields the same ids.
func (c *Catalog) Occurrences(ctx context.Context, from, to time.Time, department string) ([]model.Shift, error) {
	var shifts []model.Shift

	for i, tmpl := range c.templates {
		if department != "" && tmpl.DepartmentID != department {
			continue
		}

		rule, err := rrule.StrToRRule(tmpl.RRule)
		if err != nil {
			return nil, fmt.Errorf("invalid rrule in template %q: %w", tmpl.Name, err)
		}
		// Anchor the recurrence at the start of the requested range so the
		// expansion is independent of when the catalog was built
		rule.DTStart(from)

		startOfDay, err := time.Parse("15:04", tmpl.StartTime)
		if err != nil {
			return nil, fmt.Errorf("invalid startTime in template %q: %w", tmpl.Name, err)
		}
		duration := time.Duration(tmpl.DurationHours * float64(time.Hour))

		for _, occ := range rule.Between(from, to, true) {
			start := time.Date(occ.Year(), occ.Month(), occ.Day(),
				startOfDay.Hour(), startOfDay.Minute(), 0, 0, from.Location())
			if start.Before(from) || !start.Before(to) {
				continue
			}

			quals := make([]model.Skill, 0, len(tmpl.RequiredQualifications))
			for _, q := range tmpl.RequiredQualifications {
				quals = append(quals, model.Skill(q))
			}

			shifts = append(shifts, model.Shift{
				ID:                     occurrenceID(tmpl.Name, i, start),
				Name:                   tmpl.Name,
				Start:                  start,
				End:                    start.Add(duration),
				DepartmentID:           tmpl.DepartmentID,
				MinStaff:               tmpl.MinStaff,
				RequiredQualifications: quals,
			})
		}
	}

	return shifts, nil
}

// occurrenceID builds a stable, readable id for one dated occurrence
func occurrenceID(name string, templateIndex int, start time.Time) string {
	slug := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", "-"))
	return fmt.Sprintf("%s-%d-%s", slug, templateIndex, start.Format("2006-01-02"))
}
