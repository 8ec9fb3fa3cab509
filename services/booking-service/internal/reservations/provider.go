package reservations

import "context"

// Provider answers whether a specialist already has a reservation covering a
// slot. Keys are specialist-local: dateISO is "YYYY-MM-DD", slotTime is
// "HH:MM". Implementations must be pure given their inputs so the
// availability generator can be swapped between them without change.
type Provider interface {
	IsBooked(ctx context.Context, specialistID, dateISO, slotTime string) (bool, error)
}
