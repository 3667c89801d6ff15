// Package render draws timetable payloads as terminal text.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sheetlord/coep.ultimatett.fyfirstsem2025/internal/timeslot"
	"github.com/sheetlord/coep.ultimatett.fyfirstsem2025/internal/timetable"
)

// DefaultCellWidth keeps a six-day grid inside a typical terminal.
const DefaultCellWidth = 22

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("63")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))

	slotStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	busyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	freeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	activeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)

	dividerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Options tunes grid layout.
type Options struct {
	// CellWidth is the width of every column but the slot column. Labels
	// wider than this wrap.
	CellWidth int
}

func (o Options) cellWidth() int {
	if o.CellWidth <= 0 {
		return DefaultCellWidth
	}
	return o.CellWidth
}

// Title renders a payload title bar.
func Title(title string) string {
	return titleStyle.Render(title)
}

// Grid renders g as a table: slot labels down the left, one column per
// day or room. The active row and day are highlighted.
func Grid(g *timetable.Grid, opts Options) string {
	width := opts.cellWidth()
	slotWidth := lipgloss.Width("Time")
	for _, row := range g.Rows {
		slotWidth = max(slotWidth, lipgloss.Width(row))
	}

	sep := dividerStyle.Render(" │ ")

	header := []string{headerStyle.Width(slotWidth).Render("Time")}
	for _, col := range g.Columns {
		style := headerStyle
		if col == g.ActiveDay {
			style = activeStyle
		}
		header = append(header, sep, style.Width(width).Render(col))
	}

	totalWidth := slotWidth + len(g.Columns)*(width+lipgloss.Width(sep))
	rule := dividerStyle.Render(strings.Repeat("─", totalWidth))

	lines := []string{
		lipgloss.JoinHorizontal(lipgloss.Top, header...),
		rule,
	}
	for _, row := range g.Rows {
		rowActive := row == g.ActiveRow
		slot := slotStyle
		if rowActive {
			slot = activeStyle
		}

		cells := []string{slot.Width(slotWidth).Render(row)}
		for _, col := range g.Columns {
			cell := g.Cell(row, col)
			style := busyStyle
			switch {
			case cell.Free():
				style = freeStyle
			case rowActive && (g.ActiveDay == "" || col == g.ActiveDay || g.Type == timetable.DayView):
				style = activeStyle
			}
			cells = append(cells, sep, style.Width(width).Render(cell.Label))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells...), rule)
	}

	return Title(g.Title) + "\n\n" + strings.Join(lines, "\n")
}

// Day renders the hybrid day view: the classroom grid, then the labs
// grouped by slot.
func Day(d *timetable.DaySchedule, opts Options) string {
	var b strings.Builder
	b.WriteString(Grid(d.Grid, opts))
	b.WriteString("\n\n")
	b.WriteString(headerStyle.Render("Scheduled Labs"))
	b.WriteString("\n")
	b.WriteString(Labs(d.Labs, d.Grid.ActiveRow))
	return b.String()
}

// Labs renders lab entries grouped under their slot. Groups whose slot
// contains activeSlot are highlighted.
func Labs(entries []timetable.Entry, activeSlot string) string {
	if len(entries) == 0 {
		return freeStyle.Render("No labs scheduled for this day.")
	}

	var b strings.Builder
	for i, group := range timetable.GroupByTime(entries) {
		if i > 0 {
			b.WriteString("\n")
		}
		style := headerStyle
		if activeSlot != "" && slotCovers(group[0].Time, activeSlot) {
			style = activeStyle
		}
		b.WriteString(style.Render(group[0].Time))
		b.WriteString("\n")
		for _, e := range group {
			b.WriteString("  " + listItem(e) + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// Live renders a live snapshot: theory classes, then ongoing labs.
func Live(l *timetable.LiveSchedule) string {
	var b strings.Builder
	b.WriteString(Title(l.Title))
	b.WriteString("\n\n")

	b.WriteString(headerStyle.Render("Theory Classes"))
	b.WriteString("\n")
	if len(l.Theory) == 0 {
		b.WriteString(freeStyle.Render("No theory classes scheduled."))
		b.WriteString("\n")
	}
	for _, e := range l.Theory {
		b.WriteString("  " + listItem(e) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(headerStyle.Render("Lab Sessions (Ongoing)"))
	b.WriteString("\n")
	if len(l.Labs) == 0 {
		b.WriteString(freeStyle.Render("No lab sessions scheduled."))
		b.WriteString("\n")
	}
	for _, e := range l.Labs {
		b.WriteString("  " + listItem(e) + mutedStyle.Render(" | Slot: "+e.Time) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func listItem(e timetable.Entry) string {
	return busyStyle.Render(fmt.Sprintf("%s (%s)", e.Subject, e.Division)) +
		mutedStyle.Render(fmt.Sprintf("  Venue: %s | Teacher: %s", e.Room, e.Teacher))
}

// slotCovers reports whether the 1-hour slot overlaps the lab slot.
func slotCovers(labSlot, slot string) bool {
	lab, err := timeslot.SlotRangeToDecimal(labSlot)
	if err != nil {
		return false
	}
	hour, err := timeslot.SlotRangeToDecimal(slot)
	if err != nil {
		return false
	}
	return lab.Overlaps(hour)
}
