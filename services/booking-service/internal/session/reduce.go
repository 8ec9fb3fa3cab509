package session

import (
	"github.com/uponco/bookflow/services/booking-service/internal/catalog"
	"github.com/uponco/bookflow/services/booking-service/internal/selection"
)

// Action is the tagged union of session mutations. Reduce switches on the
// concrete type.
type Action interface{ isAction() }

type SelectLocation struct{ ID string }
type SelectService struct{ ID string }
type SelectSpecialist struct{ ID string }
type SelectDate struct{ Date string }
type SelectTime struct{ Time string }
type GoToStep struct{ Step Step }
type CompleteBooking struct{}
type Reset struct{}

func (SelectLocation) isAction()   {}
func (SelectService) isAction()    {}
func (SelectSpecialist) isAction() {}
func (SelectDate) isAction()       {}
func (SelectTime) isAction()       {}
func (GoToStep) isAction()         {}
func (CompleteBooking) isAction()  {}
func (Reset) isAction()            {}

// NewState validates the deep-link triple against the catalog and builds the
// initial snapshot. A failed validation yields a terminal invalid state; the
// error message is carried verbatim for display.
func NewState(cat *catalog.Catalog, link DeepLink) State {
	res := selection.Validate(cat, selection.Selection{
		LocationID:   link.LocationID,
		ServiceID:    link.ServiceID,
		SpecialistID: link.SpecialistID,
	})
	if !res.Valid {
		return State{Valid: false, ValidationError: res.Error}
	}

	s := State{
		LocationID:       link.LocationID,
		ServiceID:        link.ServiceID,
		SpecialistID:     link.SpecialistID,
		LockedLocation:   link.LocationID != "",
		LockedService:    link.ServiceID != "",
		LockedSpecialist: link.SpecialistID != "",
		Valid:            true,
	}
	s.CurrentStep = firstUnlocked(s)
	return s
}

// Reduce applies one action to a snapshot and returns the next snapshot.
// Pure: disallowed actions (wrong step, locked stage, terminal state) leave
// the snapshot unchanged rather than erroring, so callers can always read
// the result state to learn what happened.
func Reduce(s State, act Action) State {
	if _, ok := act.(Reset); ok {
		return State{Valid: true, CurrentStep: StepLocation}
	}
	if !s.Valid || s.Complete {
		return s
	}

	switch a := act.(type) {
	case SelectLocation:
		if s.LockedLocation || a.ID == "" {
			return s
		}
		s.LocationID = a.ID
		s = clearDownstream(s, StepLocation)
		s.CurrentStep = nextUnlocked(s, StepLocation)
	case SelectService:
		if s.LockedService || a.ID == "" {
			return s
		}
		s.ServiceID = a.ID
		s = clearDownstream(s, StepService)
		s.CurrentStep = nextUnlocked(s, StepService)
	case SelectSpecialist:
		if s.LockedSpecialist || a.ID == "" {
			return s
		}
		s.SpecialistID = a.ID
		s = clearDownstream(s, StepSpecialist)
		s.CurrentStep = StepDateTime
	case SelectDate:
		if a.Date == "" {
			return s
		}
		s.Date = a.Date
		s.Time = ""
		s.CurrentStep = StepDateTime
	case SelectTime:
		if a.Time == "" || s.Date == "" {
			return s
		}
		s.Time = a.Time
		s.CurrentStep = StepContact
	case GoToStep:
		if s.StepAccessible(a.Step) {
			s.CurrentStep = a.Step
		}
	case CompleteBooking:
		if s.SelectionComplete() {
			s.Complete = true
		}
	}
	return s
}

// clearDownstream erases selections below the changed stage. Locked values
// survive: a locked downstream stage was fixed by the deep link and is not
// invalidated by upstream edits. Date and time are never locked and always
// clear.
func clearDownstream(s State, changed Step) State {
	switch changed {
	case StepLocation:
		if !s.LockedService {
			s.ServiceID = ""
		}
		if !s.LockedSpecialist {
			s.SpecialistID = ""
		}
	case StepService:
		if !s.LockedSpecialist {
			s.SpecialistID = ""
		}
	}
	s.Date = ""
	s.Time = ""
	return s
}

// firstUnlocked is the initial active step: the first non-locked stage in
// pipeline order, which is datetime at the latest since only the first three
// stages can lock.
func firstUnlocked(s State) Step {
	for _, step := range pipeline {
		if !s.locked(step) {
			return step
		}
	}
	return StepDateTime
}

// nextUnlocked advances past the stage that just received a value, skipping
// locked stages.
func nextUnlocked(s State, after Step) Step {
	seen := false
	for _, step := range pipeline {
		if step == after {
			seen = true
			continue
		}
		if seen && !s.locked(step) {
			return step
		}
	}
	return StepContact
}
