package session

// Step identifies one stage of the booking pipeline. The interactive order
// is fixed: location, service, specialist, datetime, contact.
type Step string

const (
	StepLocation   Step = "location"
	StepService    Step = "service"
	StepSpecialist Step = "specialist"
	StepDateTime   Step = "datetime"
	StepContact    Step = "contact"
)

// pipeline lists steps in traversal order. The first three may be locked by
// deep-link parameters; datetime and contact never are.
var pipeline = []Step{StepLocation, StepService, StepSpecialist, StepDateTime, StepContact}

// StepStatus is the derived tri-state of a step.
type StepStatus string

const (
	StatusCompleted StepStatus = "completed"
	StatusCurrent   StepStatus = "current"
	StatusPending   StepStatus = "pending"
)

// DeepLink carries the externally supplied entity ids consumed at session
// start. Any subset may be present; each present and valid id locks its
// dimension for the session.
type DeepLink struct {
	LocationID   string
	ServiceID    string
	SpecialistID string
}

// State is one immutable snapshot of a booking session. Reduce produces a
// new snapshot per action; nothing mutates a State in place.
type State struct {
	LocationID   string `json:"locationId,omitempty"`
	ServiceID    string `json:"serviceId,omitempty"`
	SpecialistID string `json:"specialistId,omitempty"`
	Date         string `json:"date,omitempty"` // YYYY-MM-DD
	Time         string `json:"time,omitempty"` // HH:MM

	LockedLocation   bool `json:"lockedLocation,omitempty"`
	LockedService    bool `json:"lockedService,omitempty"`
	LockedSpecialist bool `json:"lockedSpecialist,omitempty"`

	CurrentStep Step `json:"currentStep"`

	// Valid is false only when the deep-link combination failed validation.
	// An invalid session is terminal: every action except Reset is ignored.
	Valid           bool   `json:"valid"`
	ValidationError string `json:"validationError,omitempty"`

	// Complete is set after a successful booking submission. Terminal in the
	// same way: only Reset applies.
	Complete bool `json:"complete"`
}

func (s State) locked(step Step) bool {
	switch step {
	case StepLocation:
		return s.LockedLocation
	case StepService:
		return s.LockedService
	case StepSpecialist:
		return s.LockedSpecialist
	}
	return false
}

func (s State) stepValue(step Step) bool {
	switch step {
	case StepLocation:
		return s.LocationID != ""
	case StepService:
		return s.ServiceID != ""
	case StepSpecialist:
		return s.SpecialistID != ""
	case StepDateTime:
		return s.Date != "" && s.Time != ""
	case StepContact:
		return s.Complete
	}
	return false
}

// SelectionComplete reports whether every dimension needed for submission
// has a value.
func (s State) SelectionComplete() bool {
	return s.ServiceID != "" && s.SpecialistID != "" && s.Date != "" && s.Time != ""
}
