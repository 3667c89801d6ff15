package models

import "strings"

// LabMarker prefixes the subject of every lab session.
const LabMarker = "LAB BATCH"

// NotAvailable is shown in place of a blank teacher.
const NotAvailable = "N/A"

// Session represents one scheduled class or lab occurrence
type Session struct {
	Subject  string `json:"subject"`
	Teacher  string `json:"teacher"`
	Division string `json:"division"`
	Day      string `json:"day"`
	Time     string `json:"time"` // 1-hour slot label as recorded, even for labs
	Room     string `json:"room"`
}

// Identity is the tuple that collapses raw lab rows recorded under two
// 1-hour labels into one physical 2-hour session. Time is not part of it.
type Identity struct {
	Subject  string
	Division string
	Room     string
	Teacher  string
}

// IsLab reports whether the session is a lab session
func (s Session) IsLab() bool {
	return len(s.Subject) >= len(LabMarker) &&
		strings.EqualFold(s.Subject[:len(LabMarker)], LabMarker)
}

// LabSubject extracts the subject a lab session belongs to:
// "LAB BATCH B1 - Physics (PL1)" -> "Physics".
func (s Session) LabSubject() (string, bool) {
	_, rest, found := strings.Cut(s.Subject, "-")
	if !found {
		return "", false
	}
	if i := strings.Index(rest, "("); i >= 0 {
		rest = rest[:i]
	}
	rest = strings.TrimSpace(rest)
	return rest, rest != ""
}

// TeacherOrNA returns the teacher, or "N/A" when blank
func (s Session) TeacherOrNA() string {
	if s.Teacher == "" {
		return NotAvailable
	}
	return s.Teacher
}

// Identity returns the de-duplication key of the session
func (s Session) Identity() Identity {
	return Identity{
		Subject:  s.Subject,
		Division: s.Division,
		Room:     s.Room,
		Teacher:  s.Teacher,
	}
}
