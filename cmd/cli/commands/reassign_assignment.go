package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/felixgrant/shiftwise/pkg/core/services"
)

// ReassignAssignmentCmd creates the reassignAssignment command
func ReassignAssignmentCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reassignAssignment <schedule_id> <assignment_id> <new_employee_id>",
		Short: "Move an assignment to a different employee",
		Long:  "Move an assignment to a different employee. On a draft the swap happens in place; on a published schedule a new draft revision is derived and the change is recorded in the audit log.",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			scheduleID, assignmentID, newEmployeeID := args[0], args[1], args[2]
			reason, _ := cmd.Flags().GetString("reason")

			app.Logger.Debug("reassignAssignment command",
				zap.String("schedule_id", scheduleID),
				zap.String("assignment_id", assignmentID),
				zap.String("new_employee_id", newEmployeeID))

			result, err := services.ReassignAssignment(
				app.Ctx,
				app.Database,
				app.Locks,
				app.Logger,
				scheduleID,
				assignmentID,
				newEmployeeID,
				app.Actor,
				reason,
			)
			if err != nil {
				return fmt.Errorf("reassignment failed: %w", err)
			}

			fmt.Printf("\n🔁 Assignment Reassigned\n\n")
			fmt.Printf("Shift:        %s\n", result.Replacement.ShiftID)
			fmt.Printf("New Employee: %s\n", result.Replacement.EmployeeID)
			if result.Schedule.ID != scheduleID {
				fmt.Printf("Revision:     %s (version %d, draft)\n", result.Schedule.ID, result.Schedule.Version)
				fmt.Println("\nThe published schedule is unchanged; validate and publish the new revision to make the change live.")
			} else {
				fmt.Printf("Schedule:     %s (now %s)\n", result.Schedule.ID, result.Schedule.Status)
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().String("reason", "", "Reason recorded in the change log")

	return cmd
}
