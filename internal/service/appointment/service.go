// Package appointment orchestrates bookings against the client, pet and
// staff directories. All reference data is validated remotely before any
// row is written, and the storage layer backs the final conflict check with
// a uniqueness constraint so two concurrent bookings cannot share a slot.
package appointment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/openvet/clinic-api/internal/directory"
	"github.com/openvet/clinic-api/internal/model"
	"github.com/openvet/clinic-api/internal/repository"
	apperrors "github.com/openvet/clinic-api/pkg/errors"
	"github.com/openvet/clinic-api/pkg/logger"
)

// Caller identifies the authenticated requester. Token is forwarded as-is
// to the directory services.
type Caller struct {
	UserID int64
	Email  string
	Role   model.UserRole
	Token  string
}

// Notifier delivers booking confirmations. Failures are logged, never
// surfaced to the caller.
type Notifier interface {
	AppointmentBooked(client *model.Client, apt *model.Appointment) error
	AppointmentCancelled(client *model.Client, apt *model.Appointment) error
}

type Service struct {
	repo     repository.AppointmentRepository
	clients  directory.ClientDirectory
	pets     directory.PetRegistry
	staff    directory.StaffDirectory
	policy   TransitionPolicy
	notifier Notifier
	logger   *logger.Logger
}

func NewService(
	repo repository.AppointmentRepository,
	clients directory.ClientDirectory,
	pets directory.PetRegistry,
	staff directory.StaffDirectory,
	policy TransitionPolicy,
	notifier Notifier,
	log *logger.Logger,
) *Service {
	if policy == nil {
		policy = AllowAllPolicy{}
	}
	return &Service{
		repo:     repo,
		clients:  clients,
		pets:     pets,
		staff:    staff,
		policy:   policy,
		notifier: notifier,
		logger:   log,
	}
}

// Book validates the client, pet, veterinarian and slot, in that order, and
// persists a pending appointment. Nothing is written if any step fails.
func (s *Service) Book(ctx context.Context, caller Caller, req *model.BookAppointmentRequest) (*model.Appointment, error) {
	if !model.ValidDate(req.Date) {
		return nil, apperrors.Validation("date must be in YYYY-MM-DD format", nil)
	}
	if !model.ValidTimeOfDay(req.Time) {
		return nil, apperrors.Validation("time must be in HH:MM format", nil)
	}

	client, err := s.clients.GetByDNI(ctx, req.ClientDNI, caller.Token)
	if err != nil {
		return nil, s.directoryError(err, "client", "clients")
	}

	pet, err := s.pets.Get(ctx, req.PetID, caller.Token)
	if err != nil {
		return nil, s.directoryError(err, "pet", "pets")
	}
	if pet.OwnerDNI != req.ClientDNI {
		return nil, apperrors.OwnershipMismatch("the pet does not belong to the given client")
	}

	if err := s.resolveVet(ctx, req.VetID, caller.Token); err != nil {
		return nil, err
	}

	taken, err := s.repo.HasConflict(ctx, req.VetID, req.Date, req.Time, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.SchedulingConflict("the veterinarian already has an appointment at that date and time")
	}

	apt := &model.Appointment{
		ClientDNI:    req.ClientDNI,
		PetID:        req.PetID,
		VetID:        req.VetID,
		Date:         req.Date,
		Time:         req.Time,
		Reason:       req.Reason,
		Observations: req.Observations,
		Status:       model.AppointmentStatusPending,
	}

	makeEvent := func(created *model.Appointment) (*model.OutboxEvent, error) {
		return newEvent(model.EventAppointmentCreated, created, "")
	}
	if err := s.repo.Create(ctx, apt, makeEvent); err != nil {
		return nil, err
	}

	s.logger.Info("appointment booked",
		"appointment_id", apt.ID,
		"vet_id", apt.VetID,
		"date", apt.Date,
		"time", apt.Time,
	)

	if s.notifier != nil && client.Email != "" {
		if err := s.notifier.AppointmentBooked(client, apt); err != nil {
			s.logger.Error(err, "confirmation email failed", "appointment_id", apt.ID)
		}
	}
	return apt, nil
}

// Get returns the appointment, optionally expanded with client, pet and vet
// details fetched from the directories in parallel. A directory that cannot
// answer leaves its field nil; the appointment itself is still returned.
func (s *Service) Get(ctx context.Context, caller Caller, id int64, withDetails bool) (*model.Appointment, error) {
	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if withDetails {
		s.enrich(ctx, caller.Token, apt)
	}
	return apt, nil
}

func (s *Service) enrich(ctx context.Context, token string, apt *model.Appointment) {
	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		c, err := s.clients.GetByDNI(ctx, apt.ClientDNI, token)
		if err != nil {
			s.logger.Warn("detail lookup for client failed", "dni", apt.ClientDNI)
			return
		}
		apt.Client = c
	}()
	go func() {
		defer wg.Done()
		p, err := s.pets.Get(ctx, apt.PetID, token)
		if err != nil {
			s.logger.Warn("detail lookup for pet failed", "pet_id", apt.PetID.String())
			return
		}
		apt.Pet = p
	}()
	go func() {
		defer wg.Done()
		v, err := s.staff.Get(ctx, apt.VetID, token)
		if err != nil {
			s.logger.Warn("detail lookup for vet failed", "vet_id", apt.VetID)
			return
		}
		apt.Vet = v
	}()
	wg.Wait()
}

// Update applies a partial update. Changing the veterinarian re-validates
// the role; changing vet, date or time re-checks the slot against every
// other non-cancelled appointment.
func (s *Service) Update(ctx context.Context, caller Caller, id int64, req *model.UpdateAppointmentRequest) (*model.Appointment, error) {
	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Date != nil && !model.ValidDate(*req.Date) {
		return nil, apperrors.Validation("date must be in YYYY-MM-DD format", nil)
	}
	if req.Time != nil && !model.ValidTimeOfDay(*req.Time) {
		return nil, apperrors.Validation("time must be in HH:MM format", nil)
	}
	if req.VetID != nil && *req.VetID != apt.VetID {
		if err := s.resolveVet(ctx, *req.VetID, caller.Token); err != nil {
			return nil, err
		}
	}

	vetID, date, timeOfDay := apt.VetID, apt.Date, apt.Time
	if req.VetID != nil {
		vetID = *req.VetID
	}
	if req.Date != nil {
		date = *req.Date
	}
	if req.Time != nil {
		timeOfDay = *req.Time
	}
	if vetID != apt.VetID || date != apt.Date || timeOfDay != apt.Time {
		taken, err := s.repo.HasConflict(ctx, vetID, date, timeOfDay, apt.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperrors.SchedulingConflict("the veterinarian already has an appointment at that date and time")
		}
	}

	apt.VetID, apt.Date, apt.Time = vetID, date, timeOfDay
	if req.Reason != nil {
		apt.Reason = *req.Reason
	}
	if req.Observations != nil {
		apt.Observations = *req.Observations
	}
	if req.Diagnosis != nil {
		apt.Diagnosis = *req.Diagnosis
	}
	if req.Treatment != nil {
		apt.Treatment = *req.Treatment
	}
	if req.Cost != nil {
		apt.Cost = req.Cost
	}

	if err := s.repo.Update(ctx, apt); err != nil {
		return nil, err
	}
	return apt, nil
}

// SetStatus moves the appointment to the given status. Setting the current
// status again is a no-op.
func (s *Service) SetStatus(ctx context.Context, id int64, status string) (*model.Appointment, error) {
	next := model.AppointmentStatus(status)
	if !next.Valid() {
		return nil, apperrors.InvalidStatus(fmt.Sprintf("invalid status %q", status))
	}

	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if apt.Status == next {
		return apt, nil
	}
	if !s.policy.Allowed(apt.Status, next) {
		return nil, apperrors.InvalidStatus(fmt.Sprintf("cannot move appointment from %s to %s", apt.Status, next))
	}

	event, err := newEvent(model.EventAppointmentStatusChanged, apt, next)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateStatus(ctx, id, next, event); err != nil {
		return nil, err
	}
	apt.Status = next
	return apt, nil
}

// Cancel soft-deletes the appointment by moving it to cancelled, freeing
// the slot for rebooking.
func (s *Service) Cancel(ctx context.Context, caller Caller, id int64) (*model.Appointment, error) {
	apt, err := s.SetStatus(ctx, id, string(model.AppointmentStatusCancelled))
	if err != nil {
		return nil, err
	}
	if s.notifier != nil {
		if client, cerr := s.clients.GetByDNI(ctx, apt.ClientDNI, caller.Token); cerr == nil && client.Email != "" {
			if nerr := s.notifier.AppointmentCancelled(client, apt); nerr != nil {
				s.logger.Error(nerr, "cancellation email failed", "appointment_id", apt.ID)
			}
		}
	}
	return apt, nil
}

// List returns appointments matching the filter. Callers with the client
// role and no filter see only their own appointments, resolved through the
// client directory by email; if that lookup fails the list is empty rather
// than leaking other clients' bookings.
func (s *Service) List(ctx context.Context, caller Caller, filter model.AppointmentFilter) ([]*model.Appointment, error) {
	if filter.IsZero() && caller.Role == model.RoleClient {
		client, err := s.clients.GetByEmail(ctx, caller.Email, caller.Token)
		if err != nil {
			s.logger.Warn("client scoping lookup failed, returning empty list", "email", caller.Email)
			return []*model.Appointment{}, nil
		}
		filter.ClientDNI = client.DNI
	}
	if filter.Status != "" && !model.AppointmentStatus(filter.Status).Valid() {
		return nil, apperrors.InvalidStatus(fmt.Sprintf("invalid status %q", filter.Status))
	}
	if filter.Date != "" && !model.ValidDate(filter.Date) {
		return nil, apperrors.Validation("date must be in YYYY-MM-DD format", nil)
	}
	if filter.PetID != "" {
		if _, err := uuid.Parse(filter.PetID); err != nil {
			return nil, apperrors.Validation("pet_id must be a UUID", err)
		}
	}
	return s.repo.List(ctx, filter)
}

// Stats returns per-status counts plus today's appointment load.
func (s *Service) Stats(ctx context.Context) (*model.AppointmentStats, error) {
	return s.repo.Stats(ctx)
}

// resolveVet confirms the staff member exists and holds the veterinarian
// role.
func (s *Service) resolveVet(ctx context.Context, vetID int64, token string) error {
	vet, err := s.staff.Get(ctx, vetID, token)
	if err != nil {
		return s.directoryError(err, "veterinarian", "staff")
	}
	if vet.Role != model.StaffRoleVeterinarian {
		return apperrors.RoleMismatch(fmt.Sprintf("staff member %d is not a veterinarian", vetID))
	}
	return nil
}

// directoryError distinguishes a definitive miss from an unreachable
// collaborator: the former is the requester's problem, the latter is ours.
func (s *Service) directoryError(err error, resource, service string) error {
	if errors.Is(err, directory.ErrNotFound) {
		return apperrors.NotFound(resource, err)
	}
	return apperrors.UpstreamUnavailable(service, err)
}

type eventPayload struct {
	AppointmentID int64     `json:"appointment_id"`
	ClientDNI     string    `json:"client_dni"`
	PetID         uuid.UUID `json:"pet_id"`
	VetID         int64     `json:"vet_id"`
	Date          string    `json:"date"`
	Time          string    `json:"time"`
	Status        string    `json:"status"`
}

func newEvent(eventType string, apt *model.Appointment, status model.AppointmentStatus) (*model.OutboxEvent, error) {
	if status == "" {
		status = apt.Status
	}
	payload, err := json.Marshal(eventPayload{
		AppointmentID: apt.ID,
		ClientDNI:     apt.ClientDNI,
		PetID:         apt.PetID,
		VetID:         apt.VetID,
		Date:          apt.Date,
		Time:          apt.Time,
		Status:        string(status),
	})
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return &model.OutboxEvent{
		ID:        uuid.New(),
		EventType: eventType,
		Payload:   payload,
		Status:    model.OutboxStatusPending,
	}, nil
}
