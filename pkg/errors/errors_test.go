package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatusByKind(t *testing.T) {
	cases := []struct {
		err    *AppError
		status int
	}{
		{Validation("bad date", nil), http.StatusBadRequest},
		{RoleMismatch("staff member is not a veterinarian"), http.StatusBadRequest},
		{OwnershipMismatch("pet does not belong to client"), http.StatusBadRequest},
		{InvalidStatus("unknown status"), http.StatusBadRequest},
		{NotFound("client", nil), http.StatusNotFound},
		{Conflict("email already registered", nil), http.StatusConflict},
		{SchedulingConflict("slot already booked"), http.StatusConflict},
		{Unauthorized("", nil), http.StatusUnauthorized},
		{Forbidden(""), http.StatusForbidden},
		{UpstreamUnavailable("clients", nil), http.StatusBadGateway},
		{Internal(errors.New("boom")), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.status, tc.err.HTTPStatus(), "kind %s", tc.err.Kind)
	}
}

func TestErrorMessageIncludesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := UpstreamUnavailable("clients", cause)

	assert.Equal(t, "clients service unavailable: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestIsKindThroughWrapping(t *testing.T) {
	err := fmt.Errorf("booking failed: %w", NotFound("pet", nil))

	assert.True(t, IsKind(err, KindNotFound))
	assert.False(t, IsKind(err, KindSchedulingConflict))
	assert.False(t, IsKind(errors.New("plain"), KindNotFound))
}
