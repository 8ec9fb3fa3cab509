package reservations

import "context"

const bookedPercent = 20

// HashProvider marks a deterministic ~20% of slots as booked without any
// backing store. The sandbox and demo environments run on it; production
// wiring replaces it with the store- or gRPC-backed provider.
type HashProvider struct{}

func NewHashProvider() HashProvider { return HashProvider{} }

func (HashProvider) IsBooked(_ context.Context, specialistID, dateISO, slotTime string) (bool, error) {
	h := seedHash(specialistID+"-"+dateISO+"-"+slotTime) % 100
	if h < 0 {
		h = -h
	}
	return h < bookedPercent, nil
}

// seedHash folds the seed into a wrapping 32-bit accumulator, h = h*31 + c,
// so the same seed always lands on the same slot decision across restarts.
func seedHash(seed string) int32 {
	var h int32
	for i := 0; i < len(seed); i++ {
		h = h*31 + int32(seed[i])
	}
	return h
}
