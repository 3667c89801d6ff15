package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sheetlord/coep.ultimatett.fyfirstsem2025/internal/render"
	"github.com/sheetlord/coep.ultimatett.fyfirstsem2025/internal/timetable"
)

var (
	liveJSONFlag bool
	liveNowFlag  bool
)

// NewLiveCommand creates the live command
func NewLiveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "live [day] [slot]",
		Short: "Show the classes and labs running in a slot",
		Long: `Show the theory classes and labs running in a 1-hour slot.
Without arguments: the current slot in the configured time zone
With --now: the same
With a day and a slot such as "04:30-05:30": that slot`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 2 {
				return fmt.Errorf("expected no arguments or a day and a slot, got %d", len(args))
			}
			if liveNowFlag && len(args) > 0 {
				return fmt.Errorf("--now takes no day or slot")
			}
			return nil
		},
		RunE: runLive,
	}
	cmd.Flags().BoolVar(&liveNowFlag, "now", false, "use the current slot in the configured time zone")
	cmd.Flags().BoolVar(&liveJSONFlag, "json", false, "print the payload the HTTP API returns")
	return cmd
}

func runLive(cmd *cobra.Command, args []string) error {
	e, err := setup()
	if err != nil {
		return err
	}
	defer e.log.Sync() //nolint:errcheck

	svc, err := e.service(cmd.Context())
	if err != nil {
		return err
	}

	var live *timetable.LiveSchedule
	if len(args) == 2 {
		live, err = svc.LiveSchedule(args[0], args[1])
	} else {
		live, err = svc.LiveNow()
	}
	if err != nil {
		return err
	}

	if liveJSONFlag {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(live)
	}
	fmt.Println(render.Live(live))
	return nil
}
