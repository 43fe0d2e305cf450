package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/openvet/clinic-api/internal/model"
	"github.com/openvet/clinic-api/pkg/errors"
)

const petColumns = `
	id, name, species, breed, age, weight, sex, color, owner_dni, notes,
	active, created_at, updated_at
	`

func (r *petRepository) Create(ctx context.Context, pet *model.Pet) error {
	pet.ID = uuid.New()
	pet.Active = true
	pet.CreatedAt = time.Now()
	pet.UpdatedAt = pet.CreatedAt

	query := `
		INSERT INTO pets (id, name, species, breed, age, weight, sex, color, owner_dni, notes, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := r.db.ExecContext(ctx, query,
		pet.ID,
		pet.Name,
		pet.Species,
		pet.Breed,
		pet.Age,
		pet.Weight,
		pet.Sex,
		pet.Color,
		pet.OwnerDNI,
		pet.Notes,
		pet.Active,
		pet.CreatedAt,
		pet.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create pet: %w", err)
	}
	return nil
}

func (r *petRepository) Get(ctx context.Context, id uuid.UUID) (*model.Pet, error) {
	var pet model.Pet
	query := `SELECT` + petColumns + `FROM pets WHERE id = $1`
	if err := r.db.GetContext(ctx, &pet, query, id); err != nil {
		return nil, notFoundOr(err, "pet")
	}
	return &pet, nil
}

func (r *petRepository) Update(ctx context.Context, pet *model.Pet) error {
	pet.UpdatedAt = time.Now()

	query := `
		UPDATE pets
		SET name = $1, species = $2, breed = $3, age = $4, weight = $5,
			sex = $6, color = $7, owner_dni = $8, notes = $9, updated_at = $10
		WHERE id = $11
	`
	result, err := r.db.ExecContext(ctx, query,
		pet.Name,
		pet.Species,
		pet.Breed,
		pet.Age,
		pet.Weight,
		pet.Sex,
		pet.Color,
		pet.OwnerDNI,
		pet.Notes,
		pet.UpdatedAt,
		pet.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update pet: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return errors.NotFound("pet", nil)
	}
	return nil
}

func (r *petRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE pets SET active = FALSE, updated_at = $1 WHERE id = $2`,
		time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete pet: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return errors.NotFound("pet", nil)
	}
	return nil
}

func (r *petRepository) List(ctx context.Context, ownerDNI string) ([]*model.Pet, error) {
	query := `SELECT` + petColumns + `FROM pets WHERE active = TRUE`
	var args []interface{}

	if ownerDNI != "" {
		query += ` AND owner_dni = $1`
		args = append(args, ownerDNI)
	}
	query += ` ORDER BY name`

	pets := []*model.Pet{}
	if err := r.db.SelectContext(ctx, &pets, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list pets: %w", err)
	}
	return pets, nil
}

func (r *petRepository) AddMedicalRecord(ctx context.Context, rec *model.MedicalRecord) error {
	rec.CreatedAt = time.Now()
	if rec.Date == "" {
		rec.Date = model.Today()
	}

	query := `
		INSERT INTO pet_medical_records (pet_id, date, description, vet_name, diagnosis, treatment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err := r.db.QueryRowxContext(ctx, query,
		rec.PetID,
		rec.Date,
		rec.Description,
		rec.VetName,
		rec.Diagnosis,
		rec.Treatment,
		rec.CreatedAt,
	).Scan(&rec.ID)
	if err != nil {
		return fmt.Errorf("failed to add medical record: %w", err)
	}
	return nil
}

func (r *petRepository) ListMedicalRecords(ctx context.Context, petID uuid.UUID) ([]*model.MedicalRecord, error) {
	query := `
		SELECT id, pet_id, date, description, vet_name, diagnosis, treatment, created_at
		FROM pet_medical_records
		WHERE pet_id = $1
		ORDER BY date DESC
	`
	records := []*model.MedicalRecord{}
	if err := r.db.SelectContext(ctx, &records, query, petID); err != nil {
		return nil, fmt.Errorf("failed to list medical records: %w", err)
	}
	return records, nil
}

func (r *petRepository) AddVaccination(ctx context.Context, vac *model.Vaccination) error {
	vac.CreatedAt = time.Now()
	if vac.Date == "" {
		vac.Date = model.Today()
	}

	query := `
		INSERT INTO pet_vaccinations (pet_id, name, date, next_dose, batch, vet_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err := r.db.QueryRowxContext(ctx, query,
		vac.PetID,
		vac.Name,
		vac.Date,
		vac.NextDose,
		vac.Batch,
		vac.VetName,
		vac.CreatedAt,
	).Scan(&vac.ID)
	if err != nil {
		return fmt.Errorf("failed to add vaccination: %w", err)
	}
	return nil
}

func (r *petRepository) ListVaccinations(ctx context.Context, petID uuid.UUID) ([]*model.Vaccination, error) {
	query := `
		SELECT id, pet_id, name, date, next_dose, batch, vet_name, created_at
		FROM pet_vaccinations
		WHERE pet_id = $1
		ORDER BY date DESC
	`
	vaccinations := []*model.Vaccination{}
	if err := r.db.SelectContext(ctx, &vaccinations, query, petID); err != nil {
		return nil, fmt.Errorf("failed to list vaccinations: %w", err)
	}
	return vaccinations, nil
}
