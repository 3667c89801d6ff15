package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sheetlord/coep.ultimatett.fyfirstsem2025/internal/render"
	"github.com/sheetlord/coep.ultimatett.fyfirstsem2025/internal/timetable"
)

var cellWidthFlag int

// NewShowCommand creates the show command
func NewShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [view] [value]",
		Short: "Print a timetable view without the TUI",
		Long: `Print a timetable view in a non-interactive format.
Without arguments: lists the views and the values each accepts
With a view: lists the values it accepts
With a view and a value: prints the grid

Views: classroom, day, subject, teacher, labs`,
		Args: cobra.MaximumNArgs(2),
		RunE: runShow,
	}
	cmd.Flags().IntVar(&cellWidthFlag, "cell-width", render.DefaultCellWidth, "width of each grid column")
	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	var view timetable.View
	if len(args) > 0 {
		var ok bool
		if view, ok = timetable.ParseView(args[0]); !ok {
			return fmt.Errorf("unknown view %q. Usage: ultimatett show [view] [value]", args[0])
		}
	}

	e, err := setup()
	if err != nil {
		return err
	}
	defer e.log.Sync() //nolint:errcheck

	svc, err := e.service(cmd.Context())
	if err != nil {
		return err
	}

	switch len(args) {
	case 0:
		return showViews(svc)
	case 1:
		return showSelectors(svc, view)
	default:
		return showGrid(svc, view, args[1])
	}
}

func showViews(svc *timetable.Service) error {
	fmt.Println("Views:")
	fmt.Println("======")
	for i, view := range timetable.Views {
		values := svc.Selectors(view)
		fmt.Printf("%d. %s (%d values)\n", i+1, view.ShortName(), len(values))
		for j, value := range values {
			if j >= 5 {
				fmt.Printf("     ... and %d more\n", len(values)-5)
				break
			}
			fmt.Printf("     - %s\n", value)
		}
	}
	return nil
}

func showSelectors(svc *timetable.Service, view timetable.View) error {
	values := svc.Selectors(view)
	if len(values) == 0 {
		fmt.Printf("No values for view '%s'\n", view.ShortName())
		if err := svc.Store().Err(); err != nil {
			fmt.Printf("\nThe timetable failed to load: %v\n", err)
		}
		return nil
	}

	fmt.Printf("Values for view '%s':\n", view.ShortName())
	fmt.Println(strings.Repeat("=", len(view.ShortName())+19))
	for _, value := range values {
		fmt.Printf("  - %s\n", value)
	}
	return nil
}

func showGrid(svc *timetable.Service, view timetable.View, value string) error {
	g, labs, err := svc.Show(view, value)
	if err != nil {
		return err
	}

	opts := render.Options{CellWidth: cellWidthFlag}
	if view == timetable.DayView {
		fmt.Println(render.Day(&timetable.DaySchedule{Grid: g, Labs: labs}, opts))
		return nil
	}
	fmt.Println(render.Grid(g, opts))
	return nil
}
