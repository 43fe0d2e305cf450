// Package directory contains HTTP clients for the sibling directory
// services (clients, pets, staff). The orchestrator consumes them through
// the narrow interfaces below; every call forwards the caller's bearer
// token unchanged.
package directory

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/openvet/clinic-api/internal/model"
)

var (
	// ErrNotFound is returned only on an explicit "no such record"
	// response from the collaborator, never on a transport failure.
	ErrNotFound = errors.New("directory: record not found")

	// ErrUnavailable is returned when the collaborator could not be
	// reached or answered with an unexpected status.
	ErrUnavailable = errors.New("directory: service unavailable")
)

type ClientDirectory interface {
	GetByDNI(ctx context.Context, dni, token string) (*model.Client, error)
	GetByEmail(ctx context.Context, email, token string) (*model.Client, error)
}

type PetRegistry interface {
	Get(ctx context.Context, id uuid.UUID, token string) (*model.Pet, error)
}

type StaffDirectory interface {
	Get(ctx context.Context, id int64, token string) (*model.Staff, error)
}
