package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/felixgrant/shiftwise/pkg/core/services"
)

// PublishScheduleCmd creates the publishSchedule command
func PublishScheduleCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "publishSchedule <schedule_id>",
		Short: "Publish a validated schedule and notify the affected employees",
		Long:  "Publish a validated schedule. Warnings block the publish unless --acknowledge-warnings is set; the acknowledgement is recorded against the acting user. Any previously published version of the same week is archived.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scheduleID := args[0]
			ack, _ := cmd.Flags().GetBool("acknowledge-warnings")
			reason, _ := cmd.Flags().GetString("reason")

			app.Logger.Debug("publishSchedule command",
				zap.String("schedule_id", scheduleID),
				zap.Bool("acknowledge_warnings", ack))

			result, err := services.PublishSchedule(
				app.Ctx,
				app.Database,
				app.Roster,
				app.Notifier,
				app.Locks,
				app.Cfg,
				app.Logger,
				scheduleID,
				app.Actor,
				ack,
				reason,
			)
			if err != nil {
				return fmt.Errorf("publish failed: %w", err)
			}

			fmt.Printf("\n✅ Schedule Published\n\n")
			fmt.Printf("Schedule ID:  %s\n", result.Schedule.ID)
			fmt.Printf("Week Start:   %s\n", result.Schedule.WeekStart.Format("2006-01-02"))
			fmt.Printf("Version:      %d\n", result.Schedule.Version)
			fmt.Printf("Published At: %s\n", result.Schedule.PublishedAt.Format("2006-01-02 15:04:05"))
			fmt.Printf("Notified:     %d employees\n", result.Notified)
			if result.Superseded != nil {
				fmt.Printf("Superseded:   version %d (archived)\n", result.Superseded.Version)
			}
			fmt.Println()

			if len(result.Report.Warnings) > 0 {
				fmt.Printf("⚠️  Published with %d acknowledged warnings:\n", len(result.Report.Warnings))
				for _, c := range result.Report.Warnings {
					fmt.Printf("  • [%s] %s\n", c.Kind, c.Detail)
				}
				fmt.Println()
			}

			return nil
		},
	}

	cmd.Flags().Bool("acknowledge-warnings", false, "Publish despite validation warnings")
	cmd.Flags().String("reason", "", "Reason recorded with the warning acknowledgement")

	return cmd
}
