package postgres

import (
	"github.com/jmoiron/sqlx"

	"github.com/openvet/clinic-api/internal/repository"
)

type userRepository struct {
	BaseRepository
}

type tokenRepository struct {
	BaseRepository
}

type clientRepository struct {
	BaseRepository
}

type petRepository struct {
	BaseRepository
}

type staffRepository struct {
	BaseRepository
}

type productRepository struct {
	BaseRepository
}

type appointmentRepository struct {
	BaseRepository
}

type outboxRepository struct {
	BaseRepository
}

func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &userRepository{NewBaseRepository(db)}
}

func NewTokenRepository(db *sqlx.DB) repository.TokenRepository {
	return &tokenRepository{NewBaseRepository(db)}
}

func NewClientRepository(db *sqlx.DB) repository.ClientRepository {
	return &clientRepository{NewBaseRepository(db)}
}

func NewPetRepository(db *sqlx.DB) repository.PetRepository {
	return &petRepository{NewBaseRepository(db)}
}

func NewStaffRepository(db *sqlx.DB) repository.StaffRepository {
	return &staffRepository{NewBaseRepository(db)}
}

func NewProductRepository(db *sqlx.DB) repository.ProductRepository {
	return &productRepository{NewBaseRepository(db)}
}

func NewAppointmentRepository(db *sqlx.DB) repository.AppointmentRepository {
	return &appointmentRepository{NewBaseRepository(db)}
}

func NewOutboxRepository(db *sqlx.DB) repository.OutboxRepository {
	return &outboxRepository{NewBaseRepository(db)}
}
