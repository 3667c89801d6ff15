// Package timetable turns the flat session list into the browser's views:
// five grids keyed by (slot, day) or (slot, room), and the live snapshot of
// what is running in a given slot.
package timetable

import (
	"strings"

	"github.com/sheetlord/coep.ultimatett.fyfirstsem2025/pkg/models"
)

// View names a grid projection. The values double as the payload's
// grid_type.
type View string

const (
	ClassroomView View = "classroom_view"
	DayView       View = "hybrid_day_view"
	SubjectView   View = "subject_view"
	TeacherView   View = "teacher_view"
	LabsView      View = "labs_view"
)

// Views lists every projection in menu order.
var Views = []View{ClassroomView, DayView, SubjectView, TeacherView, LabsView}

// FreeLabel is the label of a cell with no entries.
const FreeLabel = "Free"

// Entry is one session as shown in a cell or list. Time is the slot the
// entry is placed under, the 2-hour lab slot for normalised labs.
type Entry struct {
	Subject  string `json:"subject"`
	Division string `json:"division"`
	Room     string `json:"room"`
	Teacher  string `json:"teacher"`
	Time     string `json:"time"`
	Day      string `json:"day,omitempty"`
}

func entryOf(s models.Session) Entry {
	return Entry{
		Subject:  s.Subject,
		Division: s.Division,
		Room:     s.Room,
		Teacher:  s.TeacherOrNA(),
		Time:     s.Time,
		Day:      s.Day,
	}
}

// Cell holds the entries placed at one (row, column), plus their plain-text
// label.
type Cell struct {
	Entries []Entry `json:"entries"`
	Label   string  `json:"label"`
}

func (c Cell) Free() bool { return len(c.Entries) == 0 }

// Grid is a fully populated view: every (row, column) pair has a cell.
type Grid struct {
	Type      View                       `json:"grid_type"`
	Title     string                     `json:"title"`
	Rows      []string                   `json:"rows"`
	Columns   []string                   `json:"columns"`
	Cells     map[string]map[string]Cell `json:"grid"`
	ActiveRow string                     `json:"active_row,omitempty"`
	ActiveDay string                     `json:"active_day,omitempty"`
}

func newGrid(view View, title string, rows, columns []string) *Grid {
	g := &Grid{
		Type:    view,
		Title:   title,
		Rows:    append([]string(nil), rows...),
		Columns: append([]string(nil), columns...),
		Cells:   make(map[string]map[string]Cell, len(rows)),
	}
	for _, row := range rows {
		cols := make(map[string]Cell, len(columns))
		for _, col := range columns {
			cols[col] = Cell{Entries: []Entry{}, Label: FreeLabel}
		}
		g.Cells[row] = cols
	}
	return g
}

// Cell returns the cell at (row, col); unknown coordinates read as Free.
func (g *Grid) Cell(row, col string) Cell {
	if cell, ok := g.Cells[row][col]; ok {
		return cell
	}
	return Cell{Entries: []Entry{}, Label: FreeLabel}
}

// FreeCount is the number of cells with no entries.
func (g *Grid) FreeCount() int {
	n := 0
	for _, cols := range g.Cells {
		for _, cell := range cols {
			if cell.Free() {
				n++
			}
		}
	}
	return n
}

// add appends e to the cell at (row, col). Coordinates outside the axes are
// ignored.
func (g *Grid) add(row, col string, e Entry) {
	cell, ok := g.Cells[row][col]
	if !ok {
		return
	}
	cell.Entries = append(cell.Entries, e)
	cell.Label = g.label(cell.Entries)
	g.Cells[row][col] = cell
}

// set replaces the cell at (row, col) with e alone.
func (g *Grid) set(row, col string, e Entry) {
	if _, ok := g.Cells[row][col]; !ok {
		return
	}
	entries := []Entry{e}
	g.Cells[row][col] = Cell{Entries: entries, Label: g.label(entries)}
}

func (g *Grid) label(entries []Entry) string {
	if len(entries) == 0 {
		return FreeLabel
	}
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = EntryLabel(g.Type, e)
	}
	return strings.Join(lines, "\n")
}

// EntryLabel renders e the way view shows it, e.g. "Maths / A / Dr.X".
func EntryLabel(view View, e Entry) string {
	var fields []string
	switch view {
	case SubjectView:
		fields = []string{e.Division, e.Room, e.Teacher}
	case TeacherView:
		fields = []string{e.Subject, e.Division, e.Room}
	case LabsView:
		fields = []string{e.Subject, e.Division, e.Room, e.Teacher}
	default:
		fields = []string{e.Subject, e.Division, e.Teacher}
	}
	return strings.Join(fields, " / ")
}
