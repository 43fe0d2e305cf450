package model

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusPending    AppointmentStatus = "pending"
	AppointmentStatusConfirmed  AppointmentStatus = "confirmed"
	AppointmentStatusInProgress AppointmentStatus = "in_progress"
	AppointmentStatusCompleted  AppointmentStatus = "completed"
	AppointmentStatusCancelled  AppointmentStatus = "cancelled"
)

// AppointmentStatuses lists every legal status value, in lifecycle order.
var AppointmentStatuses = []AppointmentStatus{
	AppointmentStatusPending,
	AppointmentStatusConfirmed,
	AppointmentStatusInProgress,
	AppointmentStatusCompleted,
	AppointmentStatusCancelled,
}

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentStatusPending, AppointmentStatusConfirmed, AppointmentStatusInProgress,
		AppointmentStatusCompleted, AppointmentStatusCancelled:
		return true
	}
	return false
}

// Appointment is a booking against a veterinarian. Cancellation is a status
// transition; records are never physically deleted.
type Appointment struct {
	ID           int64             `db:"id" json:"id"`
	ClientDNI    string            `db:"client_dni" json:"client_dni"`
	PetID        uuid.UUID         `db:"pet_id" json:"pet_id"`
	VetID        int64             `db:"vet_id" json:"vet_id"`
	Date         string            `db:"date" json:"date"`
	Time         string            `db:"time" json:"time"`
	Reason       string            `db:"reason" json:"reason"`
	Observations string            `db:"observations" json:"observations,omitempty"`
	Diagnosis    string            `db:"diagnosis" json:"diagnosis,omitempty"`
	Treatment    string            `db:"treatment" json:"treatment,omitempty"`
	Cost         *float64          `db:"cost" json:"cost,omitempty"`
	Status       AppointmentStatus `db:"status" json:"status"`
	CreatedAt    time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time         `db:"updated_at" json:"updated_at"`

	// Populated only when detail expansion is requested.
	Client *Client `db:"-" json:"client,omitempty"`
	Pet    *Pet    `db:"-" json:"pet,omitempty"`
	Vet    *Staff  `db:"-" json:"vet,omitempty"`
}

type BookAppointmentRequest struct {
	ClientDNI    string    `json:"client_dni" binding:"required,len=8,numeric"`
	PetID        uuid.UUID `json:"pet_id" binding:"required"`
	VetID        int64     `json:"vet_id" binding:"required"`
	Date         string    `json:"date" binding:"required"`
	Time         string    `json:"time" binding:"required"`
	Reason       string    `json:"reason" binding:"required"`
	Observations string    `json:"observations"`
}

// UpdateAppointmentRequest carries partial-update fields: nil means leave
// the stored value untouched.
type UpdateAppointmentRequest struct {
	VetID        *int64   `json:"vet_id"`
	Date         *string  `json:"date"`
	Time         *string  `json:"time"`
	Reason       *string  `json:"reason"`
	Observations *string  `json:"observations"`
	Diagnosis    *string  `json:"diagnosis"`
	Treatment    *string  `json:"treatment"`
	Cost         *float64 `json:"cost"`
}

type SetStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// AppointmentFilter selects appointments by at most one criterion; the
// first non-zero field in declaration order wins.
type AppointmentFilter struct {
	Status    string
	Date      string
	ClientDNI string
	PetID     string
	VetID     int64
}

// IsZero reports whether no selector is set.
func (f AppointmentFilter) IsZero() bool {
	return f.Status == "" && f.Date == "" && f.ClientDNI == "" && f.PetID == "" && f.VetID == 0
}

// AppointmentStats summarizes appointments per status plus today's load.
type AppointmentStats struct {
	Total      int64 `db:"total" json:"total"`
	Pending    int64 `db:"pending" json:"pending"`
	Confirmed  int64 `db:"confirmed" json:"confirmed"`
	InProgress int64 `db:"in_progress" json:"in_progress"`
	Completed  int64 `db:"completed" json:"completed"`
	Cancelled  int64 `db:"cancelled" json:"cancelled"`
	Today      int64 `db:"today" json:"today"`
}
