// Package pet manages the pet registry, including each pet's medical
// history and vaccination card. Ownership is verified against the clients
// directory before a pet is registered or re-homed.
package pet

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/openvet/clinic-api/internal/directory"
	"github.com/openvet/clinic-api/internal/model"
	"github.com/openvet/clinic-api/internal/repository"
	apperrors "github.com/openvet/clinic-api/pkg/errors"
)

type Service struct {
	repo    repository.PetRepository
	clients directory.ClientDirectory
}

func NewService(repo repository.PetRepository, clients directory.ClientDirectory) *Service {
	return &Service{repo: repo, clients: clients}
}

func (s *Service) Create(ctx context.Context, token string, req *model.CreatePetRequest) (*model.Pet, error) {
	species := model.PetSpecies(req.Species)
	if !species.Valid() {
		return nil, apperrors.Validation(fmt.Sprintf("invalid species %q", req.Species), nil)
	}
	if err := s.checkOwner(ctx, req.OwnerDNI, token); err != nil {
		return nil, err
	}

	pet := &model.Pet{
		ID:       uuid.New(),
		Name:     req.Name,
		Species:  species,
		Breed:    req.Breed,
		Age:      req.Age,
		Weight:   req.Weight,
		Sex:      req.Sex,
		Color:    req.Color,
		OwnerDNI: req.OwnerDNI,
		Notes:    req.Notes,
		Active:   true,
	}
	if err := s.repo.Create(ctx, pet); err != nil {
		return nil, err
	}
	return pet, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Pet, error) {
	return s.repo.Get(ctx, id)
}

// GetWithHistory loads the pet together with its medical records and
// vaccinations.
func (s *Service) GetWithHistory(ctx context.Context, id uuid.UUID) (*model.Pet, error) {
	pet, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if pet.MedicalRecords, err = s.repo.ListMedicalRecords(ctx, id); err != nil {
		return nil, err
	}
	if pet.Vaccinations, err = s.repo.ListVaccinations(ctx, id); err != nil {
		return nil, err
	}
	return pet, nil
}

func (s *Service) Update(ctx context.Context, token string, id uuid.UUID, req *model.UpdatePetRequest) (*model.Pet, error) {
	pet, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Species != nil {
		species := model.PetSpecies(*req.Species)
		if !species.Valid() {
			return nil, apperrors.Validation(fmt.Sprintf("invalid species %q", *req.Species), nil)
		}
		pet.Species = species
	}
	if req.OwnerDNI != nil && *req.OwnerDNI != pet.OwnerDNI {
		if err := s.checkOwner(ctx, *req.OwnerDNI, token); err != nil {
			return nil, err
		}
		pet.OwnerDNI = *req.OwnerDNI
	}
	if req.Name != nil {
		pet.Name = *req.Name
	}
	if req.Breed != nil {
		pet.Breed = *req.Breed
	}
	if req.Age != nil {
		pet.Age = *req.Age
	}
	if req.Weight != nil {
		pet.Weight = *req.Weight
	}
	if req.Sex != nil {
		pet.Sex = *req.Sex
	}
	if req.Color != nil {
		pet.Color = *req.Color
	}
	if req.Notes != nil {
		pet.Notes = *req.Notes
	}
	if err := s.repo.Update(ctx, pet); err != nil {
		return nil, err
	}
	return pet, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.SoftDelete(ctx, id)
}

// List returns pets, optionally restricted to one owner's DNI.
func (s *Service) List(ctx context.Context, ownerDNI string) ([]*model.Pet, error) {
	return s.repo.List(ctx, ownerDNI)
}

func (s *Service) AddMedicalRecord(ctx context.Context, petID uuid.UUID, req *model.AddMedicalRecordRequest) (*model.MedicalRecord, error) {
	if _, err := s.repo.Get(ctx, petID); err != nil {
		return nil, err
	}
	date := req.Date
	if date == "" {
		date = model.Today()
	} else if !model.ValidDate(date) {
		return nil, apperrors.Validation("date must be in YYYY-MM-DD format", nil)
	}

	rec := &model.MedicalRecord{
		PetID:       petID,
		Date:        date,
		Description: req.Description,
		VetName:     req.VetName,
		Diagnosis:   req.Diagnosis,
		Treatment:   req.Treatment,
	}
	if err := s.repo.AddMedicalRecord(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *Service) ListMedicalRecords(ctx context.Context, petID uuid.UUID) ([]*model.MedicalRecord, error) {
	if _, err := s.repo.Get(ctx, petID); err != nil {
		return nil, err
	}
	return s.repo.ListMedicalRecords(ctx, petID)
}

func (s *Service) AddVaccination(ctx context.Context, petID uuid.UUID, req *model.AddVaccinationRequest) (*model.Vaccination, error) {
	if _, err := s.repo.Get(ctx, petID); err != nil {
		return nil, err
	}
	date := req.Date
	if date == "" {
		date = model.Today()
	} else if !model.ValidDate(date) {
		return nil, apperrors.Validation("date must be in YYYY-MM-DD format", nil)
	}
	if req.NextDose != nil && !model.ValidDate(*req.NextDose) {
		return nil, apperrors.Validation("next_dose must be in YYYY-MM-DD format", nil)
	}

	vac := &model.Vaccination{
		PetID:    petID,
		Name:     req.Name,
		Date:     date,
		NextDose: req.NextDose,
		Batch:    req.Batch,
		VetName:  req.VetName,
	}
	if err := s.repo.AddVaccination(ctx, vac); err != nil {
		return nil, err
	}
	return vac, nil
}

func (s *Service) ListVaccinations(ctx context.Context, petID uuid.UUID) ([]*model.Vaccination, error) {
	if _, err := s.repo.Get(ctx, petID); err != nil {
		return nil, err
	}
	return s.repo.ListVaccinations(ctx, petID)
}

func (s *Service) checkOwner(ctx context.Context, dni, token string) error {
	if _, err := s.clients.GetByDNI(ctx, dni, token); err != nil {
		if errors.Is(err, directory.ErrNotFound) {
			return apperrors.NotFound("owner", err)
		}
		return apperrors.UpstreamUnavailable("clients", err)
	}
	return nil
}
