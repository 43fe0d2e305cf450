package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/openvet/clinic-api/internal/model"
	"github.com/openvet/clinic-api/pkg/errors"
)

const appointmentColumns = `
	id, client_dni, pet_id, vet_id, date, time, reason, observations,
	diagnosis, treatment, cost, status, created_at, updated_at
	`

func (r *appointmentRepository) Create(ctx context.Context, apt *model.Appointment, makeEvent func(*model.Appointment) (*model.OutboxEvent, error)) error {
	apt.CreatedAt = time.Now()
	apt.UpdatedAt = apt.CreatedAt

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO appointments (
				client_dni, pet_id, vet_id, date, time, reason, observations,
				diagnosis, treatment, cost, status, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			RETURNING id
		`
		err := tx.QueryRowxContext(ctx, query,
			apt.ClientDNI,
			apt.PetID,
			apt.VetID,
			apt.Date,
			apt.Time,
			apt.Reason,
			apt.Observations,
			apt.Diagnosis,
			apt.Treatment,
			apt.Cost,
			apt.Status,
			apt.CreatedAt,
			apt.UpdatedAt,
		).Scan(&apt.ID)
		if err != nil {
			// The partial unique index on (vet_id, date, time) closes the
			// window between the availability check and this insert.
			if isUniqueViolation(err) {
				return errors.SchedulingConflict("the veterinarian already has an appointment at that date and time")
			}
			return fmt.Errorf("failed to create appointment: %w", err)
		}

		if makeEvent != nil {
			event, err := makeEvent(apt)
			if err != nil {
				return err
			}
			return insertOutboxEvent(ctx, tx, event)
		}
		return nil
	})
}

func (r *appointmentRepository) Get(ctx context.Context, id int64) (*model.Appointment, error) {
	query := `SELECT` + appointmentColumns + `FROM appointments WHERE id = $1`

	var apt model.Appointment
	if err := r.db.GetContext(ctx, &apt, query, id); err != nil {
		return nil, notFoundOr(err, "appointment")
	}
	return &apt, nil
}

func (r *appointmentRepository) Update(ctx context.Context, apt *model.Appointment) error {
	apt.UpdatedAt = time.Now()

	query := `
		UPDATE appointments
		SET vet_id = $1, date = $2, time = $3, reason = $4, observations = $5,
			diagnosis = $6, treatment = $7, cost = $8, updated_at = $9
		WHERE id = $10
	`
	result, err := r.db.ExecContext(ctx, query,
		apt.VetID,
		apt.Date,
		apt.Time,
		apt.Reason,
		apt.Observations,
		apt.Diagnosis,
		apt.Treatment,
		apt.Cost,
		apt.UpdatedAt,
		apt.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return errors.SchedulingConflict("the veterinarian already has an appointment at that date and time")
		}
		return fmt.Errorf("failed to update appointment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return errors.NotFound("appointment", nil)
	}
	return nil
}

func (r *appointmentRepository) UpdateStatus(ctx context.Context, id int64, status model.AppointmentStatus, event *model.OutboxEvent) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx,
			`UPDATE appointments SET status = $1, updated_at = $2 WHERE id = $3`,
			status, time.Now(), id,
		)
		if err != nil {
			return fmt.Errorf("failed to update appointment status: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rows == 0 {
			return errors.NotFound("appointment", nil)
		}

		if event != nil {
			return insertOutboxEvent(ctx, tx, event)
		}
		return nil
	})
}

// List applies at most one selector, first match wins. An empty filter
// returns everything, newest first.
func (r *appointmentRepository) List(ctx context.Context, filter model.AppointmentFilter) ([]*model.Appointment, error) {
	query := `SELECT` + appointmentColumns + `FROM appointments`
	var args []interface{}

	switch {
	case filter.Status != "":
		query += ` WHERE status = $1`
		args = append(args, filter.Status)
	case filter.Date != "":
		query += ` WHERE date = $1`
		args = append(args, filter.Date)
	case filter.ClientDNI != "":
		query += ` WHERE client_dni = $1`
		args = append(args, filter.ClientDNI)
	case filter.PetID != "":
		query += ` WHERE pet_id = $1`
		args = append(args, filter.PetID)
	case filter.VetID != 0:
		query += ` WHERE vet_id = $1`
		args = append(args, filter.VetID)
	}

	query += ` ORDER BY date DESC, time DESC`

	appointments := []*model.Appointment{}
	if err := r.db.SelectContext(ctx, &appointments, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) HasConflict(ctx context.Context, vetID int64, date, timeOfDay string, excludeID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM appointments
			WHERE vet_id = $1 AND date = $2 AND time = $3
			AND status <> 'cancelled'
	`
	args := []interface{}{vetID, date, timeOfDay}

	if excludeID != 0 {
		query += ` AND id <> $4`
		args = append(args, excludeID)
	}
	query += `)`

	var hasConflict bool
	if err := r.db.GetContext(ctx, &hasConflict, query, args...); err != nil {
		return false, fmt.Errorf("failed to check conflicts: %w", err)
	}
	return hasConflict, nil
}

func (r *appointmentRepository) Stats(ctx context.Context) (*model.AppointmentStats, error) {
	query := `
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE status = 'pending') AS pending,
			COUNT(*) FILTER (WHERE status = 'confirmed') AS confirmed,
			COUNT(*) FILTER (WHERE status = 'in_progress') AS in_progress,
			COUNT(*) FILTER (WHERE status = 'completed') AS completed,
			COUNT(*) FILTER (WHERE status = 'cancelled') AS cancelled,
			COUNT(*) FILTER (WHERE date = $1) AS today
		FROM appointments
	`
	var stats model.AppointmentStats
	if err := r.db.GetContext(ctx, &stats, query, model.Today()); err != nil {
		return nil, fmt.Errorf("failed to get appointment stats: %w", err)
	}
	return &stats, nil
}

// insertOutboxEvent writes an event row inside the caller's transaction so
// the event is only visible if the appointment change committed.
func insertOutboxEvent(ctx context.Context, tx *sqlx.Tx, event *model.OutboxEvent) error {
	event.ID = uuid.New()
	event.Status = model.OutboxStatusPending
	event.CreatedAt = time.Now()
	event.UpdatedAt = event.CreatedAt

	_, err := tx.ExecContext(ctx, `
		INSERT INTO outbox_events (id, event_type, payload, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		event.ID,
		event.EventType,
		event.Payload,
		event.Status,
		event.CreatedAt,
		event.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert outbox event: %w", err)
	}
	return nil
}
