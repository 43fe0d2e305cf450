package appointment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openvet/clinic-api/internal/model"
)

func TestAllowAllPolicy(t *testing.T) {
	p := AllowAllPolicy{}
	for _, from := range model.AppointmentStatuses {
		for _, to := range model.AppointmentStatuses {
			assert.True(t, p.Allowed(from, to))
		}
	}
}

func TestStrictPolicy(t *testing.T) {
	p := StrictPolicy{}

	cases := []struct {
		from, to model.AppointmentStatus
		want     bool
	}{
		{model.AppointmentStatusPending, model.AppointmentStatusConfirmed, true},
		{model.AppointmentStatusPending, model.AppointmentStatusCancelled, true},
		{model.AppointmentStatusPending, model.AppointmentStatusCompleted, false},
		{model.AppointmentStatusConfirmed, model.AppointmentStatusInProgress, true},
		{model.AppointmentStatusConfirmed, model.AppointmentStatusPending, false},
		{model.AppointmentStatusInProgress, model.AppointmentStatusCompleted, true},
		{model.AppointmentStatusCompleted, model.AppointmentStatusCancelled, false},
		{model.AppointmentStatusCancelled, model.AppointmentStatusPending, false},
		{model.AppointmentStatusConfirmed, model.AppointmentStatusConfirmed, true},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, p.Allowed(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestPolicyFromName(t *testing.T) {
	assert.IsType(t, StrictPolicy{}, PolicyFromName("strict"))
	assert.IsType(t, AllowAllPolicy{}, PolicyFromName(""))
	assert.IsType(t, AllowAllPolicy{}, PolicyFromName("allow_all"))
}
