// Package timeslot converts the timetable's slot labels into comparable
// numbers.
//
// Labels carry no AM/PM marker: any hour below 8 is an afternoon hour, so
// "01:30" means 13:30 while "08:30" means 08:30.
package timeslot

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
)

// ErrUnparseable is returned for labels that are not "HH:MM" or "HH:MM-HH:MM".
var ErrUnparseable = errors.New("unparseable time label")

// pmShiftBelow is the first hour that is read as-is; earlier hours get +12.
const pmShiftBelow = 8

// unsortable is the sort key of malformed labels, after every real slot.
const unsortable = 9999

// Days is the canonical column order of the day axis.
var Days = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// Slots is the canonical order of the ten 1-hour slots.
var Slots = []string{
	"08:30-09:30", "09:30-10:30", "10:30-11:30", "11:30-12:30",
	"12:30-01:30", "01:30-02:30", "02:30-03:30", "03:30-04:30",
	"04:30-05:30", "05:30-06:30",
}

// LabSlots is the canonical order of the five 2-hour lab slots.
var LabSlots = []string{
	"08:30-10:30", "10:30-12:30", "01:30-03:30", "03:30-05:30", "04:30-06:30",
}

// labSlotTable is checked top to bottom and the first match wins, so
// 04:30-05:30 lands in 04:30-06:30 and never in 03:30-05:30.
var labSlotTable = []struct {
	slots []string
	lab   string
}{
	{[]string{"08:30-09:30", "09:30-10:30"}, "08:30-10:30"},
	{[]string{"10:30-11:30", "11:30-12:30"}, "10:30-12:30"},
	{[]string{"12:30-01:30"}, ""},
	{[]string{"01:30-02:30", "02:30-03:30"}, "01:30-03:30"},
	{[]string{"03:30-04:30"}, "03:30-05:30"},
	{[]string{"04:30-05:30", "05:30-06:30"}, "04:30-06:30"},
}

// Range is a slot as decimal hours of the day, e.g. 16.5-17.5.
type Range struct {
	Start float64
	End   float64
}

// Overlaps reports whether the open intervals share any time.
func (r Range) Overlaps(o Range) bool {
	return r.Start < o.End && r.End > o.Start
}

// Contains reports whether hour falls in [Start, End).
func (r Range) Contains(hour float64) bool {
	return hour >= r.Start && hour < r.End
}

// TimeToDecimal parses "HH:MM" into a decimal hour, applying the PM shift.
func TimeToDecimal(label string) (float64, error) {
	hour, minute, err := parseClock(label)
	if err != nil {
		return 0, err
	}
	if hour < pmShiftBelow {
		hour += 12
	}
	return float64(hour) + float64(minute)/60, nil
}

// SlotRangeToDecimal parses "START-END" into a Range. An end that still
// computes earlier than its start is pushed 12 hours later.
func SlotRangeToDecimal(label string) (Range, error) {
	startLabel, endLabel, ok := strings.Cut(label, "-")
	if !ok {
		return Range{}, fmt.Errorf("%w: %q", ErrUnparseable, label)
	}
	start, err := TimeToDecimal(startLabel)
	if err != nil {
		return Range{}, err
	}
	end, err := TimeToDecimal(endLabel)
	if err != nil {
		return Range{}, err
	}
	if end < start {
		end += 12
	}
	return Range{Start: start, End: end}, nil
}

// LabSlotFor maps a 1-hour label to its enclosing 2-hour lab slot. The
// lunch slot 12:30-01:30 and unknown labels have none.
func LabSlotFor(raw string) (string, bool) {
	for _, row := range labSlotTable {
		for _, slot := range row.slots {
			if slot == raw {
				return row.lab, row.lab != ""
			}
		}
	}
	return "", false
}

// SortKey returns the minutes since midnight of the label's start, with the
// PM shift applied. Malformed labels sort last.
func SortKey(label string) int {
	startLabel, _, _ := strings.Cut(label, "-")
	hour, minute, err := parseClock(startLabel)
	if err != nil {
		return unsortable
	}
	if hour < pmShiftBelow {
		hour += 12
	}
	return hour*60 + minute
}

// IsDay reports whether day is one of the canonical days.
func IsDay(day string) bool {
	return slices.Contains(Days, day)
}

// IsSlot reports whether slot is one of the ten canonical 1-hour slots.
func IsSlot(slot string) bool {
	return slices.Contains(Slots, slot)
}

// Current returns the canonical day and 1-hour slot containing now, read in
// loc. ok is false on Sundays and outside teaching hours.
func Current(now time.Time, loc *time.Location) (day, slot string, ok bool) {
	if loc != nil {
		now = now.In(loc)
	}
	day = now.Weekday().String()
	if !IsDay(day) {
		return "", "", false
	}
	hour := DecimalHour(now)
	for _, s := range Slots {
		r, err := SlotRangeToDecimal(s)
		if err != nil {
			continue
		}
		if r.Contains(hour) {
			return day, s, true
		}
	}
	return day, "", false
}

// ActiveSlot returns the first of rows whose range contains hour.
func ActiveSlot(rows []string, hour float64) string {
	for _, row := range rows {
		r, err := SlotRangeToDecimal(row)
		if err != nil {
			continue
		}
		if r.Contains(hour) {
			return row
		}
	}
	return ""
}

// DecimalHour is the wall-clock hour of t as a fraction, e.g. 16:45 -> 16.75.
func DecimalHour(t time.Time) float64 {
	return float64(t.Hour()) + float64(t.Minute())/60
}

func parseClock(label string) (int, int, error) {
	h, m, ok := strings.Cut(strings.TrimSpace(label), ":")
	if !ok || !digits(h) || !digits(m) {
		return 0, 0, fmt.Errorf("%w: %q", ErrUnparseable, label)
	}
	hour, err := strconv.Atoi(h)
	if err != nil || hour > 23 {
		return 0, 0, fmt.Errorf("%w: %q", ErrUnparseable, label)
	}
	minute, err := strconv.Atoi(m)
	if err != nil || minute > 59 {
		return 0, 0, fmt.Errorf("%w: %q", ErrUnparseable, label)
	}
	return hour, minute, nil
}

// digits reports whether s is a non-empty run of ASCII digits.
func digits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
