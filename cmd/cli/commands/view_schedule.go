package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/felixgrant/shiftwise/pkg/core/model"
)

// ViewScheduleCmd creates the viewSchedule command
func ViewScheduleCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "viewSchedule <schedule_id>",
		Short: "Show a schedule's assignments grouped by shift",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scheduleID := args[0]

			app.Logger.Debug("viewSchedule command", zap.String("schedule_id", scheduleID))

			sched, err := app.Database.GetSchedule(app.Ctx, scheduleID)
			if err != nil {
				return fmt.Errorf("failed to fetch schedule: %w", err)
			}
			if sched == nil {
				return fmt.Errorf("schedule not found: %s", scheduleID)
			}

			assignments, err := app.Database.GetAssignments(app.Ctx, scheduleID)
			if err != nil {
				return fmt.Errorf("failed to fetch assignments: %w", err)
			}

			// Resolve only the shifts this schedule actually uses
			byShift := make(map[string][]model.Assignment)
			shiftIDs := make([]string, 0)
			for _, a := range assignments {
				if _, seen := byShift[a.ShiftID]; !seen {
					shiftIDs = append(shiftIDs, a.ShiftID)
				}
				byShift[a.ShiftID] = append(byShift[a.ShiftID], a)
			}
			shifts, err := app.Database.GetShiftsByIDs(app.Ctx, shiftIDs)
			if err != nil {
				return fmt.Errorf("failed to fetch shifts: %w", err)
			}
			sort.Slice(shifts, func(i, j int) bool {
				if !shifts[i].Start.Equal(shifts[j].Start) {
					return shifts[i].Start.Before(shifts[j].Start)
				}
				return shifts[i].ID < shifts[j].ID
			})

			fmt.Printf("\n🗓  Schedule %s\n\n", sched.ID)
			fmt.Printf("Week Start: %s\n", sched.WeekStart.Format("2006-01-02"))
			fmt.Printf("Status:     %s (version %d)\n\n", sched.Status, sched.Version)

			for _, shift := range shifts {
				fmt.Printf("%s  %s–%s  %s (min %d)\n",
					shift.Start.Format("Mon 2006-01-02"),
					shift.Start.Format("15:04"),
					shift.End.Format("15:04"),
					shift.Name,
					shift.MinStaff)
				for _, a := range byShift[shift.ID] {
					marker := " "
					switch a.Status {
					case model.AssignmentConfirmed:
						marker = "✓"
					case model.AssignmentDeclined:
						marker = "✗"
					}
					fmt.Printf("  %s %s (%s)\n", marker, a.EmployeeID, a.Status)
				}
				fmt.Println()
			}

			if len(assignments) == 0 {
				fmt.Println("No assignments yet.")
				fmt.Println()
			}

			return nil
		},
	}
}
