package timetable

import (
	"slices"

	"github.com/sheetlord/coep.ultimatett.fyfirstsem2025/internal/timeslot"
	"github.com/sheetlord/coep.ultimatett.fyfirstsem2025/pkg/models"
)

// BuildClassroom places every session held in room at (time, day). A cell
// holds one session; a later duplicate replaces an earlier one.
func BuildClassroom(list []models.Session, room string) *Grid {
	g := newGrid(ClassroomView, "Schedule for Classroom: "+room, timeslot.Slots, timeslot.Days)
	for _, s := range list {
		if s.Room == room {
			g.set(s.Time, s.Day, entryOf(s))
		}
	}
	return g
}

// BuildDay lays out one day's theory sessions by (time, room) over rooms,
// and returns that day's labs separately: one entry per identity, placed
// at its 2-hour slot and sorted chronologically.
func BuildDay(list []models.Session, day string, rooms []string) (*Grid, []Entry) {
	g := newGrid(DayView, "Schedule for: "+day, timeslot.Slots, rooms)

	var labs []Entry
	seen := make(map[models.Identity]struct{})
	for _, s := range list {
		if s.Day != day {
			continue
		}
		if !s.IsLab() {
			g.set(s.Time, s.Room, entryOf(s))
			continue
		}

		id := s.Identity()
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		e := entryOf(s)
		if slot, ok := timeslot.LabSlotFor(s.Time); ok {
			e.Time = slot
		}
		labs = append(labs, e)
	}

	sortByTime(labs)
	return g, labs
}

// BuildSubject collects every session of subject at (time, day).
func BuildSubject(list []models.Session, subject string) *Grid {
	g := newGrid(SubjectView, "Schedule for Subject: "+subject, timeslot.Slots, timeslot.Days)
	for _, s := range list {
		if s.Subject == subject {
			g.add(s.Time, s.Day, entryOf(s))
		}
	}
	return g
}

// BuildTeacher collects every session taught by teacher at (time, day).
func BuildTeacher(list []models.Session, teacher string) *Grid {
	g := newGrid(TeacherView, "Schedule for Teacher: "+teacher, timeslot.Slots, timeslot.Days)
	for _, s := range list {
		if s.Teacher == teacher {
			g.add(s.Time, s.Day, entryOf(s))
		}
	}
	return g
}

// BuildLabs places the lab sessions of labSubject at (lab slot, day). Rows
// recorded under both halves of a lab slot collapse into one entry per
// identity and day.
func BuildLabs(list []models.Session, labSubject string) *Grid {
	g := newGrid(LabsView, "Lab Schedule for: "+labSubject, timeslot.LabSlots, timeslot.Days)

	type key struct {
		id  models.Identity
		day string
	}
	seen := make(map[key]struct{})

	for _, s := range list {
		if !s.IsLab() {
			continue
		}
		if lab, ok := s.LabSubject(); !ok || lab != labSubject {
			continue
		}
		slot, ok := timeslot.LabSlotFor(s.Time)
		if !ok {
			continue
		}
		k := key{id: s.Identity(), day: s.Day}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}

		e := entryOf(s)
		e.Time = slot
		g.add(slot, s.Day, e)
	}
	return g
}

func sortByTime(entries []Entry) {
	slices.SortStableFunc(entries, func(a, b Entry) int {
		return timeslot.SortKey(a.Time) - timeslot.SortKey(b.Time)
	})
}

// GroupByTime splits entries, already in chronological order, into runs that
// share a Time.
func GroupByTime(entries []Entry) [][]Entry {
	var groups [][]Entry
	for _, e := range entries {
		if n := len(groups); n > 0 && groups[n-1][0].Time == e.Time {
			groups[n-1] = append(groups[n-1], e)
			continue
		}
		groups = append(groups, []Entry{e})
	}
	return groups
}
