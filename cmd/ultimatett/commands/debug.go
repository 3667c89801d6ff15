package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sheetlord/coep.ultimatett.fyfirstsem2025/internal/sessions"
)

// NewDebugCommand creates the debug-source command
func NewDebugCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "debug-source",
		Short: "Load the timetable source and report what was kept and skipped",
		Args:  cobra.NoArgs,
		RunE:  runDebugSource,
	}
}

func runDebugSource(cmd *cobra.Command, args []string) error {
	e, err := setup()
	if err != nil {
		return err
	}
	defer e.log.Sync() //nolint:errcheck

	src := e.source()
	fmt.Printf("Debugging source: %s\n", src.Name())
	fmt.Println("==========================================")

	store, err := sessions.Load(cmd.Context(), src, e.storeOptions(), e.log)
	if err != nil {
		return fmt.Errorf("failed to load source: %w", err)
	}

	report := store.Report()
	fmt.Printf("Rows read:    %d\n", report.Read)
	fmt.Printf("Rows kept:    %d\n", report.Kept)
	fmt.Printf("Rows skipped: %d\n", len(report.Skipped))
	fmt.Println()
	fmt.Printf("Rooms:        %d\n", len(store.Rooms()))
	fmt.Printf("Subjects:     %d\n", len(store.Subjects()))
	fmt.Printf("Teachers:     %d\n", len(store.Teachers()))
	fmt.Printf("Lab subjects: %d\n", len(store.LabSubjects()))

	if len(report.Skipped) > 0 {
		fmt.Println("\nSkipped rows:")
		for i, row := range report.Skipped {
			if i >= 20 {
				fmt.Printf("... and %d more rows\n", len(report.Skipped)-20)
				break
			}
			fmt.Printf("  - line %d: %s\n", row.Line, row.Reason)
		}
	}
	return nil
}
