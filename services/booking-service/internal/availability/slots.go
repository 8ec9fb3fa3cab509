package availability

import (
	"time"

	"github.com/uponco/bookflow/services/booking-service/internal/catalog"
	"github.com/uponco/bookflow/services/booking-service/internal/schedule"
)

// TimeSlot is one fixed-duration candidate appointment window. Unavailable
// slots are emitted too so a caller can render them as disabled.
type TimeSlot struct {
	Time      string `json:"time"` // "HH:MM" slot start
	Available bool   `json:"available"`
}

// BookedFunc reports whether a specialist already has a booking at the given
// slot. It stands in for a reservation-store lookup and must stay swappable
// for one.
type BookedFunc func(specialistID, dateISO, slotTime string) bool

// BookingHorizonDays is how far ahead slots may be requested.
const BookingHorizonDays = 30

// Generate produces the bookable slots for a specialist on a calendar date,
// given the service duration in minutes. Slots are back-to-back with stride
// equal to the duration; slots overlapping a work break are skipped, as are
// slots starting before now on the current day. All times are
// specialist-local wall clock.
//
// Dates before today or beyond the booking horizon yield no slots. A
// duration longer than the remaining work day yields no slots; neither case
// is an error.
func Generate(sp *catalog.Specialist, date time.Time, durationMinutes int, now time.Time, isBooked BookedFunc) []TimeSlot {
	if sp == nil || durationMinutes <= 0 {
		return nil
	}

	today := startOfDay(now)
	target := startOfDay(date)

	if target.Before(today) {
		return nil
	}
	if target.After(today.AddDate(0, 0, BookingHorizonDays)) {
		return nil
	}

	workDay, ok := sp.WorkSchedule.ForWeekday(int(target.Weekday()))
	if !ok {
		return nil
	}

	workStart, err := schedule.MinuteOfDay(workDay.StartTime)
	if err != nil {
		return nil
	}
	workEnd, err := schedule.MinuteOfDay(workDay.EndTime)
	if err != nil {
		return nil
	}

	dateISO := target.Format("2006-01-02")
	sameDay := target.Equal(today)

	var slots []TimeSlot
	for cur := workStart; cur+durationMinutes <= workEnd; cur += durationMinutes {
		if overlapsBreak(cur, cur+durationMinutes, workDay.Breaks) {
			continue
		}
		if sameDay {
			slotStart := target.Add(time.Duration(cur) * time.Minute)
			if slotStart.Before(now) {
				continue
			}
		}

		slotTime := schedule.FormatMinute(cur)
		booked := isBooked != nil && isBooked(sp.ID, dateISO, slotTime)
		slots = append(slots, TimeSlot{Time: slotTime, Available: !booked})
	}
	return slots
}

// overlapsBreak tests the half-open slot interval [start, end) against every
// break: start < breakEnd && end > breakStart. Malformed break times are
// skipped rather than blocking the slot.
func overlapsBreak(start, end int, breaks []schedule.WorkBreak) bool {
	for _, b := range breaks {
		bs, err := schedule.MinuteOfDay(b.StartTime)
		if err != nil {
			continue
		}
		be, err := schedule.MinuteOfDay(b.EndTime)
		if err != nil {
			continue
		}
		if start < be && end > bs {
			return true
		}
	}
	return false
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
