package sessions

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/sheetlord/coep.ultimatett.fyfirstsem2025/pkg/models"
)

func TestNewStoreIndexes(t *testing.T) {
	store := NewStore([]models.Session{
		{Subject: "Physics", Teacher: "Dr.B", Division: "A", Day: "Monday", Time: "08:30-09:30", Room: "102"},
		{Subject: "Maths", Teacher: "Dr.A", Division: "B", Day: "Monday", Time: "09:30-10:30", Room: "101"},
		{Subject: "Maths", Teacher: "", Division: "A", Day: "Tuesday", Time: "09:30-10:30", Room: "N/A"},
		{Subject: "LAB BATCH B1 - Chemistry (CL1)", Teacher: "Dr.C", Division: "A", Day: "Monday", Time: "01:30-02:30", Room: "LAB-3"},
		{Subject: "LAB BATCH B2 no dash", Teacher: "Dr.C", Division: "B", Day: "Monday", Time: "01:30-02:30", Room: "LAB-4"},
	}, StoreOptions{IgnoredRooms: []string{"n/a", "TBA"}})

	if got, want := store.Rooms(), []string{"101", "102"}; !slices.Equal(got, want) {
		t.Errorf("rooms: got %v, want %v", got, want)
	}
	if got, want := store.Subjects(), []string{"Maths", "Physics"}; !slices.Equal(got, want) {
		t.Errorf("subjects: got %v, want %v", got, want)
	}
	if got, want := store.Teachers(), []string{"Dr.A", "Dr.B", "Dr.C"}; !slices.Equal(got, want) {
		t.Errorf("teachers: got %v, want %v", got, want)
	}
	if got, want := store.LabSubjects(), []string{"Chemistry"}; !slices.Equal(got, want) {
		t.Errorf("lab subjects: got %v, want %v", got, want)
	}

	if !store.HasRoom("101") || store.HasRoom("N/A") || store.HasRoom("LAB-3") {
		t.Error("HasRoom disagrees with the rooms index")
	}
	if !store.HasLabSubject("Chemistry") || store.HasSubject("LAB BATCH B1 - Chemistry (CL1)") {
		t.Error("lab sessions should only feed the lab-subject index")
	}
}

func TestStoreIsNotAliased(t *testing.T) {
	list := []models.Session{{Subject: "Maths", Division: "A", Day: "Monday", Time: "08:30-09:30", Room: "101"}}
	store := NewStore(list, StoreOptions{})

	list[0].Subject = "changed"
	got := store.Sessions()
	got[0].Room = "changed"

	if s := store.Sessions()[0]; s.Subject != "Maths" || s.Room != "101" {
		t.Errorf("store was mutated through a shared slice: %+v", s)
	}
}

func TestFailedStore(t *testing.T) {
	boom := errors.New("no such file")
	store := FailedStore(boom)
	if !store.Empty() || store.Err() != boom {
		t.Fatal("failed store should be empty and keep its error")
	}
	if len(store.Rooms())+len(store.Subjects())+len(store.Teachers())+len(store.LabSubjects()) != 0 {
		t.Error("failed store should have empty indexes")
	}
}

func TestLoadSkipsRowsMissingEssentials(t *testing.T) {
	src := &stubSource{rows: []Row{
		{Line: 1, Subject: "  Maths ", Division: "A", Day: " monday", Time: "08:30-09:30", Room: "101"},
		{Line: 2, Subject: "Physics", Division: "", Day: "Monday", Time: "09:30-10:30", Room: "  "},
		{Line: 3, Subject: "Chemistry", Division: "B", Day: "TUESDAY", Time: "10:30-11:30", Room: "103", Teacher: " Dr.Z "},
	}}

	store, err := Load(context.Background(), src, StoreOptions{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	list := store.Sessions()
	if len(list) != 2 {
		t.Fatalf("expected 2 kept sessions, got %d", len(list))
	}
	if list[0].Subject != "Maths" || list[0].Day != "Monday" {
		t.Errorf("row 1 not normalised: %+v", list[0])
	}
	if list[1].Day != "Tuesday" || list[1].Teacher != "Dr.Z" {
		t.Errorf("row 3 not normalised: %+v", list[1])
	}

	report := store.Report()
	if report.Read != 3 || report.Kept != 2 || len(report.Skipped) != 1 {
		t.Fatalf("unexpected report %+v", report)
	}
	skipped := report.Skipped[0]
	if skipped.Line != 2 || !strings.Contains(skipped.Reason, "Division") || !strings.Contains(skipped.Reason, "Room") {
		t.Errorf("unexpected skipped row %+v", skipped)
	}
}

func TestColumnIndex(t *testing.T) {
	index, err := columnIndex([]string{" Subject", "DIVISION", "day", "Time ", "Room"})
	if err != nil {
		t.Fatalf("teacher column should be optional: %v", err)
	}
	if index["division"] != 1 || index["time"] != 3 {
		t.Errorf("unexpected index %v", index)
	}

	_, err = columnIndex([]string{"Subject", "Teacher", "Day"})
	if !errors.Is(err, ErrMissingColumn) {
		t.Fatalf("expected ErrMissingColumn, got %v", err)
	}
	if !strings.Contains(err.Error(), "division") || !strings.Contains(err.Error(), "room") {
		t.Errorf("error should name the missing columns: %v", err)
	}
}

func TestOpenPicksSourceByLocation(t *testing.T) {
	if _, ok := Open("postgres://u:p@localhost/tt", "timetable_sessions", nil).(*PostgresSource); !ok {
		t.Error("DSN should open a postgres source")
	}
	if _, ok := Open("ultimate_tt.csv", "", nil).(*CSVSource); !ok {
		t.Error("path should open a CSV source")
	}
}

func TestPostgresSourceRejectsBadTableName(t *testing.T) {
	src := &PostgresSource{DSN: "postgres://localhost/tt", Table: "sessions; drop table x"}
	if _, err := src.Rows(context.Background()); err == nil {
		t.Error("expected an error for an unsafe table name")
	}
}

func TestCSVSourceMissingFile(t *testing.T) {
	src := &CSVSource{Path: filepath.Join(t.TempDir(), "absent.csv")}
	store, err := Load(context.Background(), src, StoreOptions{}, nil)
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
	if !store.Empty() || store.Err() == nil {
		t.Error("expected a failed store")
	}
}

// TestCSVSource reads a real file through DuckDB
func TestCSVSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "it's.csv")
	csv := strings.Join([]string{
		"Subject,Teacher,Division,Day,Time,Room",
		"Maths,Dr.X,A,Monday,08:30-09:30,101",
		"LAB BATCH B1 - Physics (PL1),Dr.Y,A,monday,01:30-02:30,LAB-1",
		"Chemistry,,B,Tuesday,09:30-10:30,",
		"English,Dr.E,B",
	}, "\n") + "\n"
	if err := os.WriteFile(path, []byte(csv), 0o644); err != nil {
		t.Fatal(err)
	}

	store, err := Load(context.Background(), &CSVSource{Path: path}, StoreOptions{}, nil)
	if err != nil {
		t.Skipf("Skipping test, DuckDB unavailable: %v", err)
	}

	if store.Len() != 2 {
		t.Fatalf("expected 2 sessions, got %d: %+v", store.Len(), store.Sessions())
	}
	if got := store.Sessions()[1]; got.Day != "Monday" || !got.IsLab() {
		t.Errorf("unexpected lab row %+v", got)
	}
	if report := store.Report(); len(report.Skipped) != 2 || report.Skipped[0].Line != 3 {
		t.Errorf("unexpected report %+v", report)
	}
}
