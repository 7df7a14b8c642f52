package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/felixgrant/shiftwise/pkg/core/services"
)

// ListVersionsCmd creates the listVersions command
func ListVersionsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listVersions <week_start>",
		Short: "List every version of a week's schedule with its change history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			weekStart, err := time.Parse("2006-01-02", args[0])
			if err != nil {
				return fmt.Errorf("week_start must be YYYY-MM-DD: %w", err)
			}

			app.Logger.Debug("listVersions command", zap.String("week_start", args[0]))

			history, err := services.ListVersions(app.Ctx, app.Database, app.Logger, weekStart)
			if err != nil {
				return fmt.Errorf("failed to load version history: %w", err)
			}

			if len(history.Versions) == 0 {
				fmt.Printf("\nNo schedules found for week starting %s.\n\n", args[0])
				return nil
			}

			fmt.Printf("\n📜 Version History for week of %s\n\n", args[0])
			fmt.Printf("%-8s  %-10s  %-36s  %s\n", "Version", "Status", "Schedule ID", "Updated")
			fmt.Println("--------  ----------  ------------------------------------  -------------------")
			for _, v := range history.Versions {
				fmt.Printf("%-8d  %-10s  %-36s  %s\n",
					v.Version, v.Status, v.ID, v.UpdatedAt.Format("2006-01-02 15:04:05"))
			}
			fmt.Println()

			if len(history.Changes) > 0 {
				fmt.Printf("🔁 Changes (%d):\n", len(history.Changes))
				for _, c := range history.Changes {
					reason := c.Reason
					if reason == "" {
						reason = "(no reason given)"
					}
					fmt.Printf("  • %s: %s → %s by %s: %s\n",
						c.CreatedAt.Format("2006-01-02 15:04"),
						c.OldEmployeeID, c.NewEmployeeID, c.ActorID, reason)
				}
				fmt.Println()
			}

			return nil
		},
	}
}
