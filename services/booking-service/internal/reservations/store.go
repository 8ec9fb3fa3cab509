package reservations

import (
	"context"
	"sync"
)

// DayBookings loads the set of occupied slot start times ("HH:MM") for one
// specialist on one day. storage.AppointmentRepository satisfies it.
type DayBookings interface {
	BookedStarts(ctx context.Context, specialistID, dateISO string) (map[string]struct{}, error)
}

// StoreProvider answers slot occupancy from persisted appointments. It
// memoizes one day's bookings per (specialist, date) so generating a full
// day of slots costs a single query instead of one per slot. A provider is
// built per request; the memo is not a cross-request cache.
type StoreProvider struct {
	store DayBookings

	mu   sync.Mutex
	days map[string]map[string]struct{}
}

func NewStoreProvider(store DayBookings) *StoreProvider {
	return &StoreProvider{store: store, days: make(map[string]map[string]struct{})}
}

func (p *StoreProvider) IsBooked(ctx context.Context, specialistID, dateISO, slotTime string) (bool, error) {
	key := specialistID + "|" + dateISO

	p.mu.Lock()
	day, ok := p.days[key]
	p.mu.Unlock()

	if !ok {
		loaded, err := p.store.BookedStarts(ctx, specialistID, dateISO)
		if err != nil {
			return false, err
		}
		p.mu.Lock()
		p.days[key] = loaded
		p.mu.Unlock()
		day = loaded
	}

	_, booked := day[slotTime]
	return booked, nil
}
