//go:build protogen

package reservations

import (
	"context"
	"time"

	"github.com/uponco/bookflow/libs/grpcx"
	reservationsv1 "github.com/uponco/bookflow/protos/gen/reservations/v1"
)

type remoteProvider struct {
	client reservationsv1.ReservationServiceClient
}

// NewRemoteProvider dials an external reservation system. An empty address
// means the deployment does not run one; callers fall back to the store
// provider.
func NewRemoteProvider(addr string) (Provider, error) {
	if addr == "" {
		return nil, nil
	}
	conn, err := grpcx.Dial(context.Background(), addr, grpcx.DialOptions{Timeout: 3 * time.Second})
	if err != nil {
		return nil, err
	}
	return &remoteProvider{client: reservationsv1.NewReservationServiceClient(conn)}, nil
}

func (p *remoteProvider) IsBooked(ctx context.Context, specialistID, dateISO, slotTime string) (bool, error) {
	resp, err := p.client.CheckSlot(ctx, &reservationsv1.CheckSlotRequest{
		SpecialistId: specialistID,
		Date:         dateISO,
		SlotTime:     slotTime,
	})
	if err != nil {
		return false, err
	}
	return resp.GetBooked(), nil
}
