package directory

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

func TestClientsClientGetByDNI(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.Equal(t, "/api/v1/clients/dni/12345678", r.URL.Path)
		fmt.Fprint(w, `{"success":true,"data":{"id":1,"dni":"12345678","first_name":"Maria"}}`)
	}))
	defer srv.Close()

	c := NewClientsClient(srv.URL, time.Second, testLogger())
	client, err := c.GetByDNI(context.Background(), "12345678", "tok")
	require.NoError(t, err)
	assert.Equal(t, "Maria", client.FirstName)
	assert.Equal(t, "Bearer tok", gotAuth, "the caller's token is forwarded")
}

func TestClientsClientNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClientsClient(srv.URL, time.Second, testLogger())
	_, err := c.GetByDNI(context.Background(), "00000000", "tok")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClientsClientServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClientsClient(srv.URL, time.Second, testLogger())
	_, err := c.GetByDNI(context.Background(), "12345678", "tok")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.NotErrorIs(t, err, ErrNotFound, "a failed call must never read as a definitive miss")
}

func TestClientsClientConnectionRefused(t *testing.T) {
	c := NewClientsClient("http://127.0.0.1:1", 200*time.Millisecond, testLogger())
	_, err := c.GetByDNI(context.Background(), "12345678", "tok")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestPetsClientGet(t *testing.T) {
	petID := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/pets/"+petID.String(), r.URL.Path)
		fmt.Fprintf(w, `{"success":true,"data":{"id":%q,"name":"Firulais","owner_dni":"12345678"}}`, petID)
	}))
	defer srv.Close()

	c := NewPetsClient(srv.URL, time.Second, testLogger())
	pet, err := c.Get(context.Background(), petID, "tok")
	require.NoError(t, err)
	assert.Equal(t, "Firulais", pet.Name)
	assert.Equal(t, "12345678", pet.OwnerDNI)
}

func TestStaffClientCachesLookups(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		fmt.Fprint(w, `{"success":true,"data":{"id":10,"first_name":"Ana","role":"veterinarian"}}`)
	}))
	defer srv.Close()

	c := NewStaffClient(srv.URL, time.Second, testLogger())
	for i := 0; i < 3; i++ {
		staff, err := c.Get(context.Background(), 10, "tok")
		require.NoError(t, err)
		assert.EqualValues(t, 10, staff.ID)
	}
	assert.Equal(t, 1, hits, "repeat lookups are served from cache")
}

func TestStaffClientDoesNotCacheFailures(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewStaffClient(srv.URL, time.Second, testLogger())
	for i := 0; i < 2; i++ {
		_, err := c.Get(context.Background(), 10, "tok")
		assert.ErrorIs(t, err, ErrNotFound)
	}
	assert.Equal(t, 2, hits)
}

func TestLookupsAreCounted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v1/clients/dni/404" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		fmt.Fprint(w, `{"success":true,"data":{"id":1,"dni":"12345678"}}`)
	}))
	defer srv.Close()

	okBefore := testutil.ToFloat64(directoryLookups.WithLabelValues("clients", "ok"))
	missBefore := testutil.ToFloat64(directoryLookups.WithLabelValues("clients", "not_found"))

	c := NewClientsClient(srv.URL, time.Second, testLogger())
	_, err := c.GetByDNI(context.Background(), "12345678", "tok")
	require.NoError(t, err)
	_, err = c.GetByDNI(context.Background(), "404", "tok")
	require.ErrorIs(t, err, ErrNotFound)

	assert.Equal(t, okBefore+1, testutil.ToFloat64(directoryLookups.WithLabelValues("clients", "ok")))
	assert.Equal(t, missBefore+1, testutil.ToFloat64(directoryLookups.WithLabelValues("clients", "not_found")))
}

func TestEnvelopeWithoutDataIsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success":false,"message":"client not found"}`)
	}))
	defer srv.Close()

	c := NewClientsClient(srv.URL, time.Second, testLogger())
	_, err := c.GetByDNI(context.Background(), "12345678", "tok")
	assert.ErrorIs(t, err, ErrNotFound)
}
