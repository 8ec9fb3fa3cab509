package availability

import (
	"testing"
	"time"

	"github.com/uponco/bookflow/services/booking-service/internal/catalog"
	"github.com/uponco/bookflow/services/booking-service/internal/schedule"
)

func mondaySpecialist() *catalog.Specialist {
	return &catalog.Specialist{
		ID:       "sp-1",
		FullName: "Alice Ames",
		WorkSchedule: schedule.WorkSchedule{
			{
				DayOfWeek: 1, // Monday
				StartTime: "09:00",
				EndTime:   "17:00",
				Breaks:    []schedule.WorkBreak{{StartTime: "12:00", EndTime: "13:00"}},
			},
		},
	}
}

var (
	// 2026-01-05 is a Monday; "now" is the preceding Thursday.
	monday   = time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	thursday = time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
)

func slotTimes(slots []TimeSlot) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Time)
	}
	return out
}

func TestGenerateSkipsBreaks(t *testing.T) {
	slots := Generate(mondaySpecialist(), monday, 60, thursday, nil)

	want := []string{"09:00", "10:00", "11:00", "13:00", "14:00", "15:00", "16:00"}
	got := slotTimes(slots)
	if len(got) != len(want) {
		t.Fatalf("expected %d slots, got %d (%v)", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("slot %d: expected %s, got %s", i, want[i], got[i])
		}
	}
	for _, s := range slots {
		if !s.Available {
			t.Fatalf("no booked predicate given, slot %s must be available", s.Time)
		}
	}
}

func TestGenerateBookedSlotsEmittedDisabled(t *testing.T) {
	booked := func(specialistID, dateISO, slotTime string) bool {
		if specialistID != "sp-1" || dateISO != "2026-01-05" {
			t.Fatalf("unexpected predicate key %s/%s", specialistID, dateISO)
		}
		return slotTime == "10:00"
	}

	slots := Generate(mondaySpecialist(), monday, 60, thursday, booked)
	if len(slots) != 7 {
		t.Fatalf("expected 7 slots, got %d", len(slots))
	}
	for _, s := range slots {
		if s.Time == "10:00" && s.Available {
			t.Fatalf("10:00 must be emitted as unavailable")
		}
		if s.Time != "10:00" && !s.Available {
			t.Fatalf("slot %s must be available", s.Time)
		}
	}
}

func TestGenerateNoWorkDay(t *testing.T) {
	tuesday := monday.AddDate(0, 0, 1)
	if slots := Generate(mondaySpecialist(), tuesday, 60, thursday, nil); len(slots) != 0 {
		t.Fatalf("expected no slots on a day off, got %d", len(slots))
	}
}

func TestGenerateDateWindow(t *testing.T) {
	sp := mondaySpecialist()

	past := thursday.AddDate(0, 0, -1)
	if slots := Generate(sp, past, 60, thursday, nil); len(slots) != 0 {
		t.Fatalf("expected no slots for a past date, got %d", len(slots))
	}

	// 2026-02-02 is a Monday 32 days out.
	farOut := time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)
	if slots := Generate(sp, farOut, 60, thursday, nil); len(slots) != 0 {
		t.Fatalf("expected no slots beyond the booking horizon, got %d", len(slots))
	}

	// 2026-01-26 is a Monday within the horizon.
	within := time.Date(2026, 1, 26, 0, 0, 0, 0, time.UTC)
	if slots := Generate(sp, within, 60, thursday, nil); len(slots) == 0 {
		t.Fatalf("expected slots within the booking horizon")
	}
}

func TestGenerateSameDaySkipsPastTimes(t *testing.T) {
	now := time.Date(2026, 1, 5, 13, 30, 0, 0, time.UTC)
	slots := Generate(mondaySpecialist(), monday, 60, now, nil)

	want := []string{"14:00", "15:00", "16:00"}
	got := slotTimes(slots)
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestGenerateDurationLongerThanDay(t *testing.T) {
	if slots := Generate(mondaySpecialist(), monday, 9*60, thursday, nil); len(slots) != 0 {
		t.Fatalf("expected no slots when the duration exceeds the work day, got %d", len(slots))
	}
}

func TestGenerateStrideFollowsDuration(t *testing.T) {
	sp := &catalog.Specialist{
		ID: "sp-2",
		WorkSchedule: schedule.WorkSchedule{
			{DayOfWeek: 1, StartTime: "09:00", EndTime: "10:30"},
		},
	}

	got := slotTimes(Generate(sp, monday, 45, thursday, nil))
	want := []string{"09:00", "09:45"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestGenerateInvalidInput(t *testing.T) {
	if slots := Generate(nil, monday, 60, thursday, nil); slots != nil {
		t.Fatalf("nil specialist must yield no slots")
	}
	if slots := Generate(mondaySpecialist(), monday, 0, thursday, nil); slots != nil {
		t.Fatalf("non-positive duration must yield no slots")
	}
}
