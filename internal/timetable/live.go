package timetable

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/sheetlord/coep.ultimatett.fyfirstsem2025/internal/timeslot"
	"github.com/sheetlord/coep.ultimatett.fyfirstsem2025/pkg/models"
)

// LiveSchedule is what runs on Day during Slot.
type LiveSchedule struct {
	Day    string  `json:"day"`
	Slot   string  `json:"slot"`
	Title  string  `json:"title"`
	Theory []Entry `json:"theory_classes"`
	Labs   []Entry `json:"lab_classes"`
}

// ResolveLive returns the theory sessions held exactly in slot on day, and
// the labs of that day whose 2-hour slot overlaps slot. Each lab identity is
// considered once, at its first row in list.
func ResolveLive(list []models.Session, day, slot string) (*LiveSchedule, error) {
	user, err := timeslot.SlotRangeToDecimal(slot)
	if err != nil {
		return nil, fmt.Errorf("invalid slot: %w", err)
	}

	live := &LiveSchedule{
		Day:    day,
		Slot:   slot,
		Title:  liveTitle(day, slot),
		Theory: []Entry{},
		Labs:   []Entry{},
	}

	seen := make(map[models.Identity]struct{})
	for _, s := range list {
		if s.Day != day {
			continue
		}
		if !s.IsLab() {
			if s.Time == slot {
				live.Theory = append(live.Theory, entryOf(s))
			}
			continue
		}

		labSlot, ok := timeslot.LabSlotFor(s.Time)
		if !ok {
			continue
		}
		id := s.Identity()
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		span, err := timeslot.SlotRangeToDecimal(labSlot)
		if err != nil || !user.Overlaps(span) {
			continue
		}
		e := entryOf(s)
		e.Time = labSlot
		live.Labs = append(live.Labs, e)
	}

	slices.SortFunc(live.Theory, func(a, b Entry) int {
		return cmp.Or(cmp.Compare(a.Subject, b.Subject), cmp.Compare(a.Division, b.Division))
	})
	sortByTime(live.Labs)
	return live, nil
}

func liveTitle(day, slot string) string {
	return fmt.Sprintf("Live Schedule for %s, %s", day, slot)
}
