package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/felixgrant/shiftwise/pkg/core/services"
)

// ValidateScheduleCmd creates the validateSchedule command
func ValidateScheduleCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validateSchedule <schedule_id>",
		Short: "Run conflict detection against a schedule without changing its state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scheduleID := args[0]

			app.Logger.Debug("validateSchedule command", zap.String("schedule_id", scheduleID))

			report, err := services.ValidateSchedule(
				app.Ctx,
				app.Database,
				app.Roster,
				app.Cfg,
				app.Logger,
				scheduleID,
			)
			if err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}

			fmt.Printf("\n🔍 Validation Report for %s\n\n", scheduleID)
			printReport(report)

			return nil
		},
	}
}
