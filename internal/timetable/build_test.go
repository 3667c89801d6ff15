package timetable

import (
	"testing"

	"github.com/sheetlord/coep.ultimatett.fyfirstsem2025/pkg/models"
)

func TestBuildClassroomSingleSession(t *testing.T) {
	list := []models.Session{
		{Subject: "Maths", Division: "A", Day: "Monday", Time: "08:30-09:30", Room: "Room101", Teacher: "Dr.X"},
	}

	g := BuildClassroom(list, "Room101")

	if len(g.Rows) != 10 || len(g.Columns) != 6 {
		t.Fatalf("unexpected axes %dx%d", len(g.Rows), len(g.Columns))
	}
	if got := g.Cell("08:30-09:30", "Monday").Label; got != "Maths / A / Dr.X" {
		t.Errorf("got %q", got)
	}
	if got := g.FreeCount(); got != 59 {
		t.Errorf("expected 59 free cells, got %d", got)
	}
	if got := g.Cell("09:30-10:30", "Monday").Label; got != FreeLabel {
		t.Errorf("expected Free, got %q", got)
	}
}

func TestBuildClassroomLastWriteWins(t *testing.T) {
	list := []models.Session{
		{Subject: "Maths", Division: "A", Day: "Monday", Time: "08:30-09:30", Room: "101"},
		{Subject: "Physics", Division: "B", Day: "Monday", Time: "08:30-09:30", Room: "101"},
		{Subject: "Ghost", Division: "C", Day: "Sunday", Time: "08:30-09:30", Room: "101"},
		{Subject: "Odd", Division: "C", Day: "Monday", Time: "07:00-08:00", Room: "101"},
	}

	g := BuildClassroom(list, "101")
	cell := g.Cell("08:30-09:30", "Monday")
	if len(cell.Entries) != 1 || cell.Entries[0].Subject != "Physics" {
		t.Errorf("expected the later session only, got %+v", cell.Entries)
	}
	if cell.Label != "Physics / B / N/A" {
		t.Errorf("blank teacher should render as N/A, got %q", cell.Label)
	}
	if g.FreeCount() != 59 {
		t.Error("unknown day and slot labels should be skipped")
	}
}

func TestBuildDayKeepsLabsOutOfTheGrid(t *testing.T) {
	list := []models.Session{
		{Subject: "Maths", Division: "A", Day: "Monday", Time: "09:30-10:30", Room: "101", Teacher: "Dr.X"},
		{Subject: "LAB BATCH B1 - Physics (PL1)", Division: "A", Day: "Monday", Time: "04:30-05:30", Room: "101", Teacher: "Dr.P"},
		{Subject: "LAB BATCH B1 - Physics (PL1)", Division: "A", Day: "Monday", Time: "05:30-06:30", Room: "101", Teacher: "Dr.P"},
		{Subject: "LAB BATCH B2 - Chemistry", Division: "A", Day: "Monday", Time: "08:30-09:30", Room: "LAB-2", Teacher: "Dr.C"},
		{Subject: "LAB BATCH B3 - Workshop", Division: "B", Day: "Monday", Time: "12:30-01:30", Room: "WS", Teacher: "Dr.W"},
		{Subject: "English", Division: "B", Day: "Tuesday", Time: "09:30-10:30", Room: "101"},
	}

	g, labs := BuildDay(list, "Monday", []string{"101", "102"})

	if g.Type != DayView || len(g.Columns) != 2 {
		t.Fatalf("unexpected grid %s %v", g.Type, g.Columns)
	}
	for _, row := range g.Rows {
		for _, col := range g.Columns {
			for _, e := range g.Cell(row, col).Entries {
				if e.Subject != "Maths" {
					t.Errorf("(%s, %s): only the theory session belongs in the grid, got %q", row, col, e.Subject)
				}
			}
		}
	}
	if g.Cell("09:30-10:30", "101").Label != "Maths / A / Dr.X" {
		t.Errorf("got %q", g.Cell("09:30-10:30", "101").Label)
	}

	if len(labs) != 3 {
		t.Fatalf("expected 3 labs after dedup, got %d: %+v", len(labs), labs)
	}
	wantTimes := []string{"08:30-10:30", "12:30-01:30", "04:30-06:30"}
	for i, want := range wantTimes {
		if labs[i].Time != want {
			t.Errorf("lab %d: got time %q, want %q", i, labs[i].Time, want)
		}
	}
}

func TestBuildSubjectAccumulates(t *testing.T) {
	list := []models.Session{
		{Subject: "Maths", Division: "A", Day: "Monday", Time: "08:30-09:30", Room: "101", Teacher: "Dr.X"},
		{Subject: "Maths", Division: "B", Day: "Monday", Time: "08:30-09:30", Room: "102", Teacher: "Dr.Y"},
		{Subject: "Physics", Division: "A", Day: "Monday", Time: "08:30-09:30", Room: "103"},
	}

	g := BuildSubject(list, "Maths")
	cell := g.Cell("08:30-09:30", "Monday")
	if len(cell.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(cell.Entries))
	}
	if want := "A / 101 / Dr.X\nB / 102 / Dr.Y"; cell.Label != want {
		t.Errorf("got %q, want %q", cell.Label, want)
	}
}

func TestBuildTeacherAccumulates(t *testing.T) {
	list := []models.Session{
		{Subject: "Maths", Division: "A", Day: "Friday", Time: "01:30-02:30", Room: "101", Teacher: "Dr.X"},
		{Subject: "Maths", Division: "B", Day: "Friday", Time: "01:30-02:30", Room: "101", Teacher: "Dr.X"},
		{Subject: "Maths", Division: "C", Day: "Friday", Time: "01:30-02:30", Room: "101", Teacher: "Dr.Y"},
	}

	g := BuildTeacher(list, "Dr.X")
	if got := g.Cell("01:30-02:30", "Friday").Label; got != "Maths / A / 101\nMaths / B / 101" {
		t.Errorf("got %q", got)
	}
	if g.FreeCount() != 59 {
		t.Errorf("expected 59 free cells, got %d", g.FreeCount())
	}
}

func TestBuildLabsMergesBothHalves(t *testing.T) {
	lab := models.Session{Subject: "LAB BATCH B1 - Physics (PL1)", Division: "A", Day: "Wednesday", Room: "PL1", Teacher: "Dr.P"}
	first, second := lab, lab
	first.Time = "01:30-02:30"
	second.Time = "02:30-03:30"
	otherDay := first
	otherDay.Day = "Thursday"
	otherBatch := first
	otherBatch.Division = "B"
	lunch := first
	lunch.Time = "12:30-01:30"
	unrelated := models.Session{Subject: "LAB BATCH B1 - Chemistry", Division: "A", Day: "Wednesday", Time: "01:30-02:30", Room: "CL1"}

	g := BuildLabs([]models.Session{first, second, otherDay, otherBatch, lunch, unrelated}, "Physics")

	if len(g.Rows) != 5 {
		t.Fatalf("expected the five lab slots as rows, got %v", g.Rows)
	}
	cell := g.Cell("01:30-03:30", "Wednesday")
	if len(cell.Entries) != 2 {
		t.Fatalf("expected one entry per batch, got %+v", cell.Entries)
	}
	if cell.Entries[0].Time != "01:30-03:30" {
		t.Errorf("entry should carry its lab slot, got %q", cell.Entries[0].Time)
	}
	if want := "LAB BATCH B1 - Physics (PL1) / A / PL1 / Dr.P"; EntryLabel(LabsView, cell.Entries[0]) != want {
		t.Errorf("got %q", EntryLabel(LabsView, cell.Entries[0]))
	}
	if len(g.Cell("01:30-03:30", "Thursday").Entries) != 1 {
		t.Error("the same batch on another day is a separate session")
	}
	if g.FreeCount() != 28 {
		t.Errorf("expected 28 free cells, got %d", g.FreeCount())
	}
}

func TestGroupByTime(t *testing.T) {
	groups := GroupByTime([]Entry{
		{Subject: "a", Time: "08:30-10:30"},
		{Subject: "b", Time: "08:30-10:30"},
		{Subject: "c", Time: "01:30-03:30"},
	})
	if len(groups) != 2 || len(groups[0]) != 2 || groups[1][0].Subject != "c" {
		t.Errorf("unexpected groups %+v", groups)
	}
}
