package outbox

import (
	"encoding/json"
	"time"

	"github.com/uponco/bookflow/services/booking-service/internal/model"
)

// TopicAppointmentBooked carries one message per confirmed booking. The
// Kafka topic name equals the event type (event per topic).
const TopicAppointmentBooked = "booking.appointment.booked.v1"

// Event is the domain event envelope written to the outbox table.
type Event struct {
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       []byte
}

type appointmentBookedPayload struct {
	BookingID    string    `json:"bookingId"`
	CompanyID    string    `json:"companyId"`
	LocationID   string    `json:"locationId,omitempty"`
	ServiceID    string    `json:"serviceId"`
	SpecialistID string    `json:"specialistId"`
	StartTime    time.Time `json:"startTime"`
	EndTime      time.Time `json:"endTime"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
}

// NewAppointmentBooked builds the booked-appointment event for one persisted
// appointment.
func NewAppointmentBooked(appt *model.Appointment) (Event, error) {
	payload, err := json.Marshal(appointmentBookedPayload{
		BookingID:    appt.ID,
		CompanyID:    appt.CompanyID,
		LocationID:   appt.LocationID,
		ServiceID:    appt.ServiceID,
		SpecialistID: appt.SpecialistID,
		StartTime:    appt.StartTime,
		EndTime:      appt.EndTime,
		FullName:     appt.FullName,
		Email:        appt.Email,
		Phone:        appt.Phone,
	})
	if err != nil {
		return Event{}, err
	}
	return Event{
		AggregateType: "appointment",
		AggregateID:   appt.ID,
		EventType:     TopicAppointmentBooked,
		Payload:       payload,
	}, nil
}
