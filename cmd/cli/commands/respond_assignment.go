package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/felixgrant/shiftwise/pkg/core/services"
)

// RespondAssignmentCmd creates the respondAssignment command
func RespondAssignmentCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "respondAssignment <schedule_id> <assignment_id> <employee_id>",
		Short: "Record an employee's confirm or decline on a published assignment",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			scheduleID, assignmentID, employeeID := args[0], args[1], args[2]
			decline, _ := cmd.Flags().GetBool("decline")

			app.Logger.Debug("respondAssignment command",
				zap.String("assignment_id", assignmentID),
				zap.Bool("decline", decline))

			assignment, err := services.RespondAssignment(
				app.Ctx,
				app.Database,
				app.Locks,
				app.Logger,
				scheduleID,
				assignmentID,
				employeeID,
				!decline,
			)
			if err != nil {
				return fmt.Errorf("response failed: %w", err)
			}

			if decline {
				fmt.Printf("\n✗ Assignment %s declined. The shift shows as an open slot in the next validation run.\n\n", assignment.ID)
			} else {
				fmt.Printf("\n✓ Assignment %s confirmed.\n\n", assignment.ID)
			}

			return nil
		},
	}

	cmd.Flags().Bool("decline", false, "Decline instead of confirm")

	return cmd
}
