package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/felixgrant/shiftwise/pkg/core/services"
)

// ArchiveScheduleCmd creates the archiveSchedule command
func ArchiveScheduleCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "archiveSchedule <schedule_id>",
		Short: "Archive a published schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scheduleID := args[0]

			app.Logger.Debug("archiveSchedule command", zap.String("schedule_id", scheduleID))

			sched, err := services.ArchiveSchedule(
				app.Ctx,
				app.Database,
				app.Locks,
				app.Logger,
				scheduleID,
				app.Actor,
			)
			if err != nil {
				return fmt.Errorf("archive failed: %w", err)
			}

			fmt.Printf("\n🗄  Schedule %s (week of %s, version %d) archived.\n\n",
				sched.ID, sched.WeekStart.Format("2006-01-02"), sched.Version)

			return nil
		},
	}
}
