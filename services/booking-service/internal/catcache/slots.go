package catcache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/uponco/bookflow/services/booking-service/internal/availability"
)

// SlotCache deduplicates concurrent slot computations and holds results for
// a short TTL. Availability changes with every booking, so the TTL is a
// freshness bound, not a consistency guarantee. A superseded request (user
// switched date before the previous lookup finished) resolves under its own
// key and never overwrites another key's entry.
type SlotCache struct {
	ttl time.Duration

	group singleflight.Group

	mu      sync.Mutex
	entries map[string]slotEntry
}

type slotEntry struct {
	slots    []availability.TimeSlot
	loadedAt time.Time
}

func NewSlots(ttl time.Duration) *SlotCache {
	return &SlotCache{
		ttl:     ttl,
		entries: map[string]slotEntry{},
	}
}

// Get returns the slots for one (specialist, date, duration) key, running
// compute on miss. Concurrent callers for the same key share one compute.
func (c *SlotCache) Get(ctx context.Context, specialistID, dateISO string, durationMinutes int, compute func(context.Context) ([]availability.TimeSlot, error)) ([]availability.TimeSlot, error) {
	key := fmt.Sprintf("%s|%s|%d", specialistID, dateISO, durationMinutes)

	c.mu.Lock()
	e, ok := c.entries[key]
	c.mu.Unlock()
	if ok && time.Since(e.loadedAt) < c.ttl {
		return e.slots, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		slots, err := compute(ctx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.entries[key] = slotEntry{slots: slots, loadedAt: time.Now()}
		c.mu.Unlock()
		return slots, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]availability.TimeSlot), nil
}

// InvalidateSpecialistDay drops the cached slots for every duration of one
// (specialist, date) pair; called after a booking lands on that day.
func (c *SlotCache) InvalidateSpecialistDay(specialistID, dateISO string) {
	prefix := specialistID + "|" + dateISO + "|"
	c.mu.Lock()
	for key := range c.entries {
		if len(key) > len(prefix) && key[:len(prefix)] == prefix {
			delete(c.entries, key)
		}
	}
	c.mu.Unlock()
}
