package sessions

import (
	"slices"
	"strings"

	"github.com/sheetlord/coep.ultimatett.fyfirstsem2025/pkg/models"
)

// StoreOptions tunes how the derived indexes are built.
type StoreOptions struct {
	// IgnoredRooms are placeholder room names kept out of the rooms index.
	// Matched case-insensitively.
	IgnoredRooms []string
}

// Store is the loaded-once, read-only set of sessions together with the
// sorted index lists derived from it. A Store is never modified after it is
// built, so it is safe for concurrent readers.
type Store struct {
	sessions    []models.Session
	rooms       []string
	subjects    []string
	teachers    []string
	labSubjects []string
	report      LoadReport
	err         error
}

// NewStore builds a Store over list, in the order given.
func NewStore(list []models.Session, opts StoreOptions) *Store {
	s := &Store{sessions: slices.Clone(list)}

	ignored := make(map[string]struct{}, len(opts.IgnoredRooms))
	for _, room := range opts.IgnoredRooms {
		ignored[strings.ToUpper(strings.TrimSpace(room))] = struct{}{}
	}

	rooms := make(map[string]struct{})
	subjects := make(map[string]struct{})
	teachers := make(map[string]struct{})
	labSubjects := make(map[string]struct{})

	for _, sess := range s.sessions {
		if sess.Teacher != "" {
			teachers[sess.Teacher] = struct{}{}
		}
		if sess.IsLab() {
			if lab, ok := sess.LabSubject(); ok {
				labSubjects[lab] = struct{}{}
			}
			continue
		}
		subjects[sess.Subject] = struct{}{}
		if _, skip := ignored[strings.ToUpper(sess.Room)]; !skip && sess.Room != "" {
			rooms[sess.Room] = struct{}{}
		}
	}

	s.rooms = sortedKeys(rooms)
	s.subjects = sortedKeys(subjects)
	s.teachers = sortedKeys(teachers)
	s.labSubjects = sortedKeys(labSubjects)
	return s
}

// FailedStore is an empty Store that remembers why loading failed.
func FailedStore(err error) *Store {
	return &Store{err: err}
}

// Sessions returns a copy of every session in source order.
func (s *Store) Sessions() []models.Session { return slices.Clone(s.sessions) }

// Each calls fn for every session in source order without copying.
func (s *Store) Each(fn func(models.Session)) {
	for _, sess := range s.sessions {
		fn(sess)
	}
}

// Len is the number of kept sessions.
func (s *Store) Len() int { return len(s.sessions) }

// Empty reports whether there is nothing to show, either because the source
// had no usable rows or because loading failed.
func (s *Store) Empty() bool { return len(s.sessions) == 0 }

// Err is the load error, if any.
func (s *Store) Err() error { return s.err }

// Report describes what the loader kept and skipped.
func (s *Store) Report() LoadReport { return s.report }

// Rooms, Subjects, Teachers and LabSubjects return sorted copies of the
// derived indexes.
func (s *Store) Rooms() []string       { return slices.Clone(s.rooms) }
func (s *Store) Subjects() []string    { return slices.Clone(s.subjects) }
func (s *Store) Teachers() []string    { return slices.Clone(s.teachers) }
func (s *Store) LabSubjects() []string { return slices.Clone(s.labSubjects) }

// HasRoom and its siblings report index membership.
func (s *Store) HasRoom(room string) bool         { return contains(s.rooms, room) }
func (s *Store) HasSubject(subject string) bool   { return contains(s.subjects, subject) }
func (s *Store) HasTeacher(teacher string) bool   { return contains(s.teachers, teacher) }
func (s *Store) HasLabSubject(subject string) bool { return contains(s.labSubjects, subject) }

func contains(sorted []string, v string) bool {
	_, found := slices.BinarySearch(sorted, v)
	return found
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
