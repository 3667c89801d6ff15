package timetable

import (
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sheetlord/coep.ultimatett.fyfirstsem2025/internal/logging"
	"github.com/sheetlord/coep.ultimatett.fyfirstsem2025/internal/sessions"
	"github.com/sheetlord/coep.ultimatett.fyfirstsem2025/internal/timeslot"
	"github.com/sheetlord/coep.ultimatett.fyfirstsem2025/pkg/models"
)

// ServiceOptions configures a Service. Zero values fall back to UTC, the
// wall clock and a no-op logger.
type ServiceOptions struct {
	Location *time.Location
	Now      func() time.Time
	Logger   *zap.Logger
}

// Service answers the browser's queries against one Store. It holds no
// mutable state and may be shared between goroutines.
type Service struct {
	store *sessions.Store
	list  []models.Session
	loc   *time.Location
	now   func() time.Time
	log   *zap.Logger
}

// NewService builds the query surface over store. A nil store is treated as
// empty.
func NewService(store *sessions.Store, opts ServiceOptions) *Service {
	if store == nil {
		store = sessions.NewStore(nil, sessions.StoreOptions{})
	}
	s := &Service{
		store: store,
		list:  store.Sessions(),
		loc:   opts.Location,
		now:   opts.Now,
		log:   logging.OrNop(opts.Logger),
	}
	if s.loc == nil {
		s.loc = time.UTC
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Store returns the store the service reads.
func (s *Service) Store() *sessions.Store { return s.store }

// DaySchedule is the hybrid day view: theory sessions by room plus the
// day's labs as a list.
type DaySchedule struct {
	Grid *Grid
	Labs []Entry
}

func (d DaySchedule) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type      View                       `json:"grid_type"`
		Title     string                     `json:"title"`
		Rows      []string                   `json:"rows"`
		Columns   []string                   `json:"columns"`
		Grid      map[string]map[string]Cell `json:"classroom_grid"`
		Labs      []Entry                    `json:"scheduled_labs"`
		ActiveRow string                     `json:"active_row,omitempty"`
		ActiveDay string                     `json:"active_day,omitempty"`
	}{
		Type:      d.Grid.Type,
		Title:     d.Grid.Title,
		Rows:      d.Grid.Rows,
		Columns:   d.Grid.Columns,
		Grid:      d.Grid.Cells,
		Labs:      d.Labs,
		ActiveRow: d.Grid.ActiveRow,
		ActiveDay: d.Grid.ActiveDay,
	})
}

// Options lists every valid selector, for menus and dropdowns.
type Options struct {
	Days        []string `json:"days"`
	TimeSlots   []string `json:"time_slots"`
	LabSlots    []string `json:"lab_slots"`
	Rooms       []string `json:"rooms"`
	Subjects    []string `json:"subjects"`
	Teachers    []string `json:"teachers"`
	LabSubjects []string `json:"lab_subjects"`
	LoadError   string   `json:"load_error,omitempty"`
}

// ByClassroom returns the slot x day grid of room.
func (s *Service) ByClassroom(room string) (*Grid, error) {
	room = strings.TrimSpace(room)
	if err := s.check(s.store.HasRoom(room), "classroom", room); err != nil {
		return nil, err
	}
	g := BuildClassroom(s.list, room)
	s.highlight(g, "")
	return g, nil
}

// ByDay returns the slot x room grid of day's theory sessions and the
// day's labs.
func (s *Service) ByDay(day string) (*DaySchedule, error) {
	day = canonicalDay(day)
	if !timeslot.IsDay(day) {
		return nil, s.reject("day", day)
	}
	g, labs := BuildDay(s.list, day, s.store.Rooms())
	if labs == nil {
		labs = []Entry{}
	}
	s.highlight(g, day)
	return &DaySchedule{Grid: g, Labs: labs}, nil
}

// BySubject returns every theory session of subject on a slot x day grid.
func (s *Service) BySubject(subject string) (*Grid, error) {
	subject = strings.TrimSpace(subject)
	if err := s.check(s.store.HasSubject(subject), "subject", subject); err != nil {
		return nil, err
	}
	g := BuildSubject(s.list, subject)
	s.highlight(g, "")
	return g, nil
}

// ByTeacher returns the week of teacher, labs included.
func (s *Service) ByTeacher(teacher string) (*Grid, error) {
	teacher = strings.TrimSpace(teacher)
	if err := s.check(s.store.HasTeacher(teacher), "teacher", teacher); err != nil {
		return nil, err
	}
	g := BuildTeacher(s.list, teacher)
	s.highlight(g, "")
	return g, nil
}

// ByLabSubject returns the lab-slot x day grid of one lab subject.
func (s *Service) ByLabSubject(lab string) (*Grid, error) {
	lab = strings.TrimSpace(lab)
	if err := s.check(s.store.HasLabSubject(lab), "lab subject", lab); err != nil {
		return nil, err
	}
	g := BuildLabs(s.list, lab)
	s.highlight(g, "")
	return g, nil
}

// LiveSchedule resolves what runs on day during the 1-hour slot.
func (s *Service) LiveSchedule(day, slot string) (*LiveSchedule, error) {
	day = canonicalDay(day)
	slot = strings.TrimSpace(slot)
	if !timeslot.IsDay(day) {
		return nil, s.reject("day", day)
	}
	if !timeslot.IsSlot(slot) {
		return nil, s.reject("time slot", slot)
	}
	if s.store.Empty() {
		return emptyLive(day, slot), nil
	}
	return ResolveLive(s.list, day, slot)
}

// LiveNow resolves the live schedule for the current wall-clock slot. On a
// Sunday or outside teaching hours both lists are empty.
func (s *Service) LiveNow() (*LiveSchedule, error) {
	day, slot, ok := timeslot.Current(s.now(), s.loc)
	if !ok {
		live := emptyLive(day, "")
		live.Title = "No classes are running right now"
		return live, nil
	}
	return s.LiveSchedule(day, slot)
}

// Options lists the axes and indexes. On a failed load the indexes are empty
// and LoadError says why.
func (s *Service) Options() Options {
	opts := Options{
		Days:        append([]string(nil), timeslot.Days...),
		TimeSlots:   append([]string(nil), timeslot.Slots...),
		LabSlots:    append([]string(nil), timeslot.LabSlots...),
		Rooms:       s.store.Rooms(),
		Subjects:    s.store.Subjects(),
		Teachers:    s.store.Teachers(),
		LabSubjects: s.store.LabSubjects(),
	}
	if err := s.store.Err(); err != nil {
		opts.LoadError = err.Error()
	}
	return opts
}

// Selectors returns the values view accepts.
func (s *Service) Selectors(view View) []string {
	switch view {
	case ClassroomView:
		return s.store.Rooms()
	case DayView:
		return append([]string(nil), timeslot.Days...)
	case SubjectView:
		return s.store.Subjects()
	case TeacherView:
		return s.store.Teachers()
	case LabsView:
		return s.store.LabSubjects()
	}
	return nil
}

// Show runs the query behind view. labs is only set for DayView.
func (s *Service) Show(view View, value string) (g *Grid, labs []Entry, err error) {
	switch view {
	case ClassroomView:
		g, err = s.ByClassroom(value)
	case DayView:
		var day *DaySchedule
		if day, err = s.ByDay(value); err == nil {
			g, labs = day.Grid, day.Labs
		}
	case SubjectView:
		g, err = s.BySubject(value)
	case TeacherView:
		g, err = s.ByTeacher(value)
	case LabsView:
		g, err = s.ByLabSubject(value)
	default:
		err = invalid("view", string(view))
	}
	return g, labs, err
}

// check lets store-derived selectors through on an empty store, so a failed
// load still renders empty grids. Days and slots are always checked.
func (s *Service) check(ok bool, kind, value string) error {
	if ok || s.store.Empty() {
		return nil
	}
	return s.reject(kind, value)
}

func (s *Service) reject(kind, value string) error {
	s.log.Debug("rejected selection", zap.String("kind", kind), zap.String("value", value))
	return invalid(kind, value)
}

// highlight marks the current slot and day when they are on g's axes. The
// day view only highlights when it shows today.
func (s *Service) highlight(g *Grid, shownDay string) {
	now := s.now().In(s.loc)
	today := now.Weekday().String()
	if !timeslot.IsDay(today) {
		return
	}
	if g.Type == DayView && shownDay != today {
		return
	}
	g.ActiveDay = today
	g.ActiveRow = timeslot.ActiveSlot(g.Rows, timeslot.DecimalHour(now))
}

func emptyLive(day, slot string) *LiveSchedule {
	return &LiveSchedule{
		Day:    day,
		Slot:   slot,
		Title:  liveTitle(day, slot),
		Theory: []Entry{},
		Labs:   []Entry{},
	}
}

func canonicalDay(day string) string {
	return cases.Title(language.English).String(strings.TrimSpace(day))
}

// ParseView accepts a short name ("classroom", "day", "labs", ...) or a
// grid_type.
func ParseView(name string) (View, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "classroom", "room", string(ClassroomView):
		return ClassroomView, true
	case "day", "day_view", string(DayView):
		return DayView, true
	case "subject", string(SubjectView):
		return SubjectView, true
	case "teacher", string(TeacherView):
		return TeacherView, true
	case "labs", "lab", string(LabsView):
		return LabsView, true
	}
	return "", false
}

// ShortName is the CLI name of v.
func (v View) ShortName() string {
	switch v {
	case ClassroomView:
		return "classroom"
	case DayView:
		return "day"
	case SubjectView:
		return "subject"
	case TeacherView:
		return "teacher"
	case LabsView:
		return "labs"
	}
	return string(v)
}
