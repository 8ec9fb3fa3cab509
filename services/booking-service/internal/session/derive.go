package session

// StepStatus reports the tri-state of one step: current when it is the
// active step (even if revisited with a value already held), completed
// when it holds a value (locked or chosen), pending otherwise.
func (s State) StepStatus(step Step) StepStatus {
	if step == s.CurrentStep {
		return StatusCurrent
	}
	if s.stepValue(step) {
		return StatusCompleted
	}
	return StatusPending
}

// StepStatuses returns the status of every pipeline step keyed by step name.
func (s State) StepStatuses() map[Step]StepStatus {
	out := make(map[Step]StepStatus, len(pipeline))
	for _, step := range pipeline {
		out[step] = s.StepStatus(step)
	}
	return out
}

// StepAccessible reports whether the user may navigate to a step. Locked
// steps never are. Completed and current steps always are, supporting
// back-navigation. A pending step is accessible only once its pipeline
// prerequisites hold.
func (s State) StepAccessible(step Step) bool {
	if !s.Valid || s.Complete {
		return false
	}
	if s.locked(step) {
		return false
	}
	switch s.StepStatus(step) {
	case StatusCompleted, StatusCurrent:
		return true
	}
	switch step {
	case StepLocation:
		return true
	case StepService:
		return s.LocationID != ""
	case StepSpecialist:
		return s.LocationID != "" && s.ServiceID != ""
	case StepDateTime:
		return s.LocationID != "" && s.ServiceID != "" && s.SpecialistID != ""
	case StepContact:
		return s.Date != "" && s.Time != ""
	}
	return false
}
