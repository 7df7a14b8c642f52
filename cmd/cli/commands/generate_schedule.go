package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/felixgrant/shiftwise/pkg/core/services"
)

// GenerateScheduleCmd creates the generateSchedule command
func GenerateScheduleCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generateSchedule <week_start>",
		Short: "Generate a draft schedule for the week starting on the given date",
		Long:  "Run the solver against the configured shift templates and the active roster, persisting proposed assignments as a draft schedule. Re-running on the same week adds only what is missing.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			weekStart, err := time.Parse("2006-01-02", args[0])
			if err != nil {
				return fmt.Errorf("week_start must be YYYY-MM-DD: %w", err)
			}
			department, _ := cmd.Flags().GetString("department")

			app.Logger.Debug("generateSchedule command",
				zap.String("week_start", args[0]),
				zap.String("department", department))

			result, err := services.GenerateSchedule(
				app.Ctx,
				app.Database,
				app.Roster,
				app.Catalog,
				app.Locks,
				app.Cfg,
				app.Logger,
				weekStart,
				department,
				app.Actor,
			)
			if err != nil {
				return fmt.Errorf("generation failed: %w", err)
			}

			fmt.Printf("\n🗓  Schedule Generation Results\n\n")
			fmt.Printf("Schedule ID: %s\n", result.Schedule.ID)
			fmt.Printf("Week Start:  %s\n", result.Schedule.WeekStart.Format("2006-01-02"))
			fmt.Printf("Status:      %s (version %d)\n", result.Schedule.Status, result.Schedule.Version)
			fmt.Printf("Proposed:    %d assignments (%d newly saved)\n", len(result.Proposed), result.Inserted)
			fmt.Println()

			if len(result.Unmet) > 0 {
				fmt.Printf("⚠️  Unmet staffing requirements (%d):\n", len(result.Unmet))
				for _, u := range result.Unmet {
					fmt.Printf("  • Shift %s: %d of %d filled (short by %d)\n",
						u.ShiftID, u.Assigned, u.Required, u.Shortfall)
				}
				fmt.Println()
			} else {
				fmt.Println("✅ All staffing requirements met.")
				fmt.Println()
			}

			return nil
		},
	}

	cmd.Flags().String("department", "", "Limit generation to one department")

	return cmd
}
