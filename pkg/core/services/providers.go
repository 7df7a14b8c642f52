package services

import (
	"context"
	"time"

	"github.com/felixgrant/shiftwise/pkg/core/model"
)

// RosterProvider supplies the active roster for a date range, fully
// populated in one call. The core never fetches per employee.
type RosterProvider interface {
	ActiveEmployees(ctx context.Context, from, to time.Time, department string) ([]model.Employee, error)
}

// ShiftCatalogProvider supplies concrete shift occurrences for a date range
type ShiftCatalogProvider interface {
	Occurrences(ctx context.Context, from, to time.Time, department string) ([]model.Shift, error)
}
