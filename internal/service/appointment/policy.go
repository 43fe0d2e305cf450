package appointment

import (
	"github.com/openvet/clinic-api/internal/model"
)

// TransitionPolicy decides whether a status change is allowed. The value
// itself has already been validated; policies only judge the edge.
type TransitionPolicy interface {
	Allowed(from, to model.AppointmentStatus) bool
}

// AllowAllPolicy permits any status to move to any other. This matches the
// clinic's historical behavior and is the default.
type AllowAllPolicy struct{}

func (AllowAllPolicy) Allowed(from, to model.AppointmentStatus) bool {
	return true
}

// StrictPolicy only permits forward movement through the lifecycle, with
// cancellation possible from any non-terminal state.
type StrictPolicy struct{}

var strictTransitions = map[model.AppointmentStatus][]model.AppointmentStatus{
	model.AppointmentStatusPending:    {model.AppointmentStatusConfirmed, model.AppointmentStatusCancelled},
	model.AppointmentStatusConfirmed:  {model.AppointmentStatusInProgress, model.AppointmentStatusCancelled},
	model.AppointmentStatusInProgress: {model.AppointmentStatusCompleted, model.AppointmentStatusCancelled},
}

func (StrictPolicy) Allowed(from, to model.AppointmentStatus) bool {
	if from == to {
		return true
	}
	for _, next := range strictTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// PolicyFromName resolves a configured policy name, defaulting to allow-all.
func PolicyFromName(name string) TransitionPolicy {
	if name == "strict" {
		return StrictPolicy{}
	}
	return AllowAllPolicy{}
}
