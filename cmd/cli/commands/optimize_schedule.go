package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/felixgrant/shiftwise/pkg/core/services"
)

// OptimizeScheduleCmd creates the optimizeSchedule command
func OptimizeScheduleCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "optimizeSchedule <schedule_id>",
		Short: "Suggest assignments that would close a schedule's coverage gaps",
		Long:  "Re-run the solver over the schedule's under-staffed shifts, keeping existing assignments in place. Suggestions are printed, not saved; apply them with reassignAssignment or a fresh generation.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scheduleID := args[0]

			app.Logger.Debug("optimizeSchedule command", zap.String("schedule_id", scheduleID))

			result, err := services.OptimizeSchedule(
				app.Ctx,
				app.Database,
				app.Roster,
				app.Cfg,
				app.Logger,
				scheduleID,
			)
			if err != nil {
				return fmt.Errorf("optimization failed: %w", err)
			}

			fmt.Printf("\n💡 Optimization Suggestions for %s\n\n", scheduleID)

			if len(result.Suggestions) > 0 {
				fmt.Printf("Suggested assignments (%d):\n", len(result.Suggestions))
				for _, a := range result.Suggestions {
					fmt.Printf("  • %s → shift %s\n", a.EmployeeID, a.ShiftID)
				}
				fmt.Println()
			} else {
				fmt.Println("No additional assignments available.")
				fmt.Println()
			}

			if len(result.StillUnmet) > 0 {
				fmt.Printf("📋 Gaps no suggestion could close (%d):\n", len(result.StillUnmet))
				for _, u := range result.StillUnmet {
					fmt.Printf("  • Shift %s: short by %d\n", u.ShiftID, u.Shortfall)
				}
				fmt.Println()
			}

			if len(result.HoursByEmployee) > 0 {
				ids := make([]string, 0, len(result.HoursByEmployee))
				for id := range result.HoursByEmployee {
					ids = append(ids, id)
				}
				sort.Strings(ids)

				fmt.Printf("⏱  Weekly hours by employee:\n")
				for _, id := range ids {
					fmt.Printf("  %-20s %5.1fh\n", id, result.HoursByEmployee[id])
				}
				fmt.Println()
			}

			return nil
		},
	}
}
