package reservations

import (
	"context"
	"testing"
)

func TestHashProviderDeterministic(t *testing.T) {
	p := NewHashProvider()
	ctx := context.Background()

	first, err := p.IsBooked(ctx, "sp-1", "2026-01-05", "10:00")
	if err != nil {
		t.Fatalf("IsBooked: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := p.IsBooked(ctx, "sp-1", "2026-01-05", "10:00")
		if err != nil {
			t.Fatalf("IsBooked: %v", err)
		}
		if again != first {
			t.Fatalf("call %d returned %v, first call returned %v", i, again, first)
		}
	}
}

func TestHashProviderVariesAcrossSlots(t *testing.T) {
	p := NewHashProvider()
	ctx := context.Background()

	booked := 0
	total := 0
	for _, sp := range []string{"sp-1", "sp-2", "sp-3"} {
		for _, tm := range []string{"09:00", "10:00", "11:00", "13:00", "14:00", "15:00", "16:00"} {
			b, err := p.IsBooked(ctx, sp, "2026-01-05", tm)
			if err != nil {
				t.Fatalf("IsBooked: %v", err)
			}
			if b {
				booked++
			}
			total++
		}
	}
	if booked == 0 || booked == total {
		t.Fatalf("expected a mix of booked and free slots, got %d/%d booked", booked, total)
	}
}

func TestSeedHashMatchesKnownValues(t *testing.T) {
	// Reference values from the 32-bit h = h*31 + c fold.
	cases := []struct {
		seed string
		want int32
	}{
		{"", 0},
		{"a", 97},
		{"ab", 3105},
		{"sp-1-2026-01-05-10:00", 494748928},
	}
	for _, tc := range cases {
		if got := seedHash(tc.seed); got != tc.want {
			t.Fatalf("seedHash(%q) = %d, want %d", tc.seed, got, tc.want)
		}
	}
}

type fakeDayBookings struct {
	calls int
	days  map[string]map[string]struct{}
}

func (f *fakeDayBookings) BookedStarts(_ context.Context, specialistID, dateISO string) (map[string]struct{}, error) {
	f.calls++
	day, ok := f.days[specialistID+"|"+dateISO]
	if !ok {
		return map[string]struct{}{}, nil
	}
	return day, nil
}

func TestStoreProviderMemoizesPerDay(t *testing.T) {
	store := &fakeDayBookings{days: map[string]map[string]struct{}{
		"sp-1|2026-01-05": {"10:00": {}, "14:00": {}},
	}}
	p := NewStoreProvider(store)
	ctx := context.Background()

	for _, tc := range []struct {
		slot string
		want bool
	}{
		{"09:00", false},
		{"10:00", true},
		{"14:00", true},
		{"15:00", false},
	} {
		got, err := p.IsBooked(ctx, "sp-1", "2026-01-05", tc.slot)
		if err != nil {
			t.Fatalf("IsBooked(%s): %v", tc.slot, err)
		}
		if got != tc.want {
			t.Fatalf("IsBooked(%s) = %v, want %v", tc.slot, got, tc.want)
		}
	}
	if store.calls != 1 {
		t.Fatalf("expected a single day lookup, got %d", store.calls)
	}

	if _, err := p.IsBooked(ctx, "sp-1", "2026-01-06", "10:00"); err != nil {
		t.Fatalf("IsBooked: %v", err)
	}
	if store.calls != 2 {
		t.Fatalf("expected a second lookup for the new date, got %d", store.calls)
	}
}
