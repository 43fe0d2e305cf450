package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/openvet/clinic-api/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Get(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
	SoftDelete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*model.User, error)
}

type TokenRepository interface {
	Save(ctx context.Context, token *model.RefreshToken) error
	Get(ctx context.Context, token string) (*model.RefreshToken, error)
	Delete(ctx context.Context, token string) error
	DeleteForUser(ctx context.Context, userID int64) error
	DeleteExpired(ctx context.Context) (int64, error)
}

type ClientRepository interface {
	Create(ctx context.Context, client *model.Client) error
	Get(ctx context.Context, id int64) (*model.Client, error)
	GetByDNI(ctx context.Context, dni string) (*model.Client, error)
	GetByEmail(ctx context.Context, email string) (*model.Client, error)
	Update(ctx context.Context, client *model.Client) error
	SoftDelete(ctx context.Context, id int64) error
	List(ctx context.Context, activeOnly bool) ([]*model.Client, error)
}

type PetRepository interface {
	Create(ctx context.Context, pet *model.Pet) error
	Get(ctx context.Context, id uuid.UUID) (*model.Pet, error)
	Update(ctx context.Context, pet *model.Pet) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, ownerDNI string) ([]*model.Pet, error)
	AddMedicalRecord(ctx context.Context, rec *model.MedicalRecord) error
	ListMedicalRecords(ctx context.Context, petID uuid.UUID) ([]*model.MedicalRecord, error)
	AddVaccination(ctx context.Context, vac *model.Vaccination) error
	ListVaccinations(ctx context.Context, petID uuid.UUID) ([]*model.Vaccination, error)
}

type StaffRepository interface {
	Create(ctx context.Context, staff *model.Staff) error
	Get(ctx context.Context, id int64) (*model.Staff, error)
	GetByDNI(ctx context.Context, dni string) (*model.Staff, error)
	Update(ctx context.Context, staff *model.Staff) error
	SoftDelete(ctx context.Context, id int64) error
	List(ctx context.Context, role string) ([]*model.Staff, error)
	AddSchedule(ctx context.Context, schedule *model.Schedule) error
	ListSchedules(ctx context.Context, staffID int64) ([]*model.Schedule, error)
	RemoveSchedule(ctx context.Context, scheduleID int64) error
}

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	Get(ctx context.Context, id int64) (*model.Product, error)
	GetByBarcode(ctx context.Context, barcode string) (*model.Product, error)
	Update(ctx context.Context, product *model.Product) error
	SoftDelete(ctx context.Context, id int64) error
	List(ctx context.Context, category string) ([]*model.Product, error)
	ListLowStock(ctx context.Context) ([]*model.Product, error)
	// Search matches the term case-insensitively against name, description
	// and supplier.
	Search(ctx context.Context, term string) ([]*model.Product, error)
	// ListCategories returns the distinct categories of active products.
	ListCategories(ctx context.Context) ([]string, error)
	AdjustStock(ctx context.Context, id int64, delta int) (*model.Product, error)
}

type AppointmentRepository interface {
	// Create inserts the appointment and, when makeEvent is non-nil, an
	// outbox row in the same transaction. makeEvent runs after the insert
	// so the event payload can carry the generated appointment ID.
	Create(ctx context.Context, apt *model.Appointment, makeEvent func(*model.Appointment) (*model.OutboxEvent, error)) error
	Get(ctx context.Context, id int64) (*model.Appointment, error)
	Update(ctx context.Context, apt *model.Appointment) error
	UpdateStatus(ctx context.Context, id int64, status model.AppointmentStatus, event *model.OutboxEvent) error
	List(ctx context.Context, filter model.AppointmentFilter) ([]*model.Appointment, error)
	// HasConflict reports whether a non-cancelled appointment already holds
	// the (vet, date, time) slot. excludeID skips one appointment (0 = none).
	HasConflict(ctx context.Context, vetID int64, date, timeOfDay string, excludeID int64) (bool, error)
	Stats(ctx context.Context) (*model.AppointmentStats, error)
}

type OutboxRepository interface {
	GetPendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.OutboxStatus, errorMessage *string) error
	DeleteProcessedBefore(ctx context.Context, days int) (int64, error)
}
