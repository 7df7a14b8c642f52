package commands

import (
	"fmt"

	"github.com/felixgrant/shiftwise/pkg/core/validation"
)

// printReport renders a validation report to the terminal
func printReport(report *validation.Report) {
	if len(report.Errors) > 0 {
		fmt.Printf("❌ Blocking errors (%d):\n", len(report.Errors))
		for _, c := range report.Errors {
			fmt.Printf("  • [%s] %s\n", c.Kind, c.Detail)
		}
		fmt.Println()
	}

	if len(report.Warnings) > 0 {
		fmt.Printf("⚠️  Warnings (%d):\n", len(report.Warnings))
		for _, c := range report.Warnings {
			fmt.Printf("  • [%s] %s\n", c.Kind, c.Detail)
		}
		fmt.Println()
	}

	if len(report.UnmetRequirements) > 0 {
		fmt.Printf("📋 Unmet staffing requirements (%d):\n", len(report.UnmetRequirements))
		for _, u := range report.UnmetRequirements {
			fmt.Printf("  • Shift %s: %d of %d filled (short by %d)\n",
				u.ShiftID, u.Assigned, u.Required, u.Shortfall)
		}
		fmt.Println()
	}

	if len(report.Errors) == 0 && len(report.Warnings) == 0 && len(report.UnmetRequirements) == 0 {
		fmt.Println("✅ No conflicts found.")
		fmt.Println()
	}
}
