package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/felixgrant/shiftwise/pkg/core/services"
)

// SubmitValidationCmd creates the submitValidation command
func SubmitValidationCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "submitValidation <schedule_id>",
		Short: "Validate a draft schedule and advance it to validated if the report is clean",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scheduleID := args[0]

			app.Logger.Debug("submitValidation command", zap.String("schedule_id", scheduleID))

			result, err := services.SubmitValidation(
				app.Ctx,
				app.Database,
				app.Roster,
				app.Locks,
				app.Cfg,
				app.Logger,
				scheduleID,
				app.Actor,
			)
			if err != nil {
				return fmt.Errorf("submission failed: %w", err)
			}

			fmt.Printf("\n🔍 Validation Report for %s\n\n", scheduleID)
			printReport(result.Report)

			if result.Validated {
				fmt.Printf("✅ Schedule is now %s and may be published.\n\n", result.Schedule.Status)
			} else {
				fmt.Println("❌ Schedule remains in draft; resolve the blocking errors above and re-submit.")
				fmt.Println()
			}

			return nil
		},
	}
}
