package model

import (
	"time"

	"github.com/google/uuid"
)

type PetSpecies string

const (
	SpeciesDog     PetSpecies = "dog"
	SpeciesCat     PetSpecies = "cat"
	SpeciesBird    PetSpecies = "bird"
	SpeciesRabbit  PetSpecies = "rabbit"
	SpeciesHamster PetSpecies = "hamster"
	SpeciesOther   PetSpecies = "other"
)

func (s PetSpecies) Valid() bool {
	switch s {
	case SpeciesDog, SpeciesCat, SpeciesBird, SpeciesRabbit, SpeciesHamster, SpeciesOther:
		return true
	}
	return false
}

// Pet is an animal record in the pet registry. Ownership is expressed by the
// owner's DNI, validated against the clients directory.
type Pet struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	Name      string     `db:"name" json:"name"`
	Species   PetSpecies `db:"species" json:"species"`
	Breed     string     `db:"breed" json:"breed"`
	Age       int        `db:"age" json:"age"`
	Weight    float64    `db:"weight" json:"weight"`
	Sex       string     `db:"sex" json:"sex"`
	Color     string     `db:"color" json:"color"`
	OwnerDNI  string     `db:"owner_dni" json:"owner_dni"`
	Notes     string     `db:"notes" json:"notes,omitempty"`
	Active    bool       `db:"active" json:"active"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`

	MedicalRecords []*MedicalRecord `db:"-" json:"medical_records,omitempty"`
	Vaccinations   []*Vaccination   `db:"-" json:"vaccinations,omitempty"`
}

// MedicalRecord is one entry in a pet's medical history.
type MedicalRecord struct {
	ID          int64     `db:"id" json:"id"`
	PetID       uuid.UUID `db:"pet_id" json:"pet_id"`
	Date        string    `db:"date" json:"date"`
	Description string    `db:"description" json:"description"`
	VetName     string    `db:"vet_name" json:"vet_name,omitempty"`
	Diagnosis   string    `db:"diagnosis" json:"diagnosis,omitempty"`
	Treatment   string    `db:"treatment" json:"treatment,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

type Vaccination struct {
	ID        int64     `db:"id" json:"id"`
	PetID     uuid.UUID `db:"pet_id" json:"pet_id"`
	Name      string    `db:"name" json:"name"`
	Date      string    `db:"date" json:"date"`
	NextDose  *string   `db:"next_dose" json:"next_dose,omitempty"`
	Batch     string    `db:"batch" json:"batch,omitempty"`
	VetName   string    `db:"vet_name" json:"vet_name,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type CreatePetRequest struct {
	Name     string  `json:"name" binding:"required"`
	Species  string  `json:"species" binding:"required"`
	Breed    string  `json:"breed"`
	Age      int     `json:"age" binding:"omitempty,min=0"`
	Weight   float64 `json:"weight" binding:"omitempty,min=0"`
	Sex      string  `json:"sex" binding:"omitempty,oneof=male female"`
	Color    string  `json:"color"`
	OwnerDNI string  `json:"owner_dni" binding:"required,len=8,numeric"`
	Notes    string  `json:"notes"`
}

type UpdatePetRequest struct {
	Name     *string  `json:"name"`
	Species  *string  `json:"species"`
	Breed    *string  `json:"breed"`
	Age      *int     `json:"age" binding:"omitempty,min=0"`
	Weight   *float64 `json:"weight" binding:"omitempty,min=0"`
	Sex      *string  `json:"sex" binding:"omitempty,oneof=male female"`
	Color    *string  `json:"color"`
	OwnerDNI *string  `json:"owner_dni" binding:"omitempty,len=8,numeric"`
	Notes    *string  `json:"notes"`
}

type AddMedicalRecordRequest struct {
	Date        string `json:"date"`
	Description string `json:"description" binding:"required"`
	VetName     string `json:"vet_name"`
	Diagnosis   string `json:"diagnosis"`
	Treatment   string `json:"treatment"`
}

type AddVaccinationRequest struct {
	Name     string  `json:"name" binding:"required"`
	Date     string  `json:"date"`
	NextDose *string `json:"next_dose"`
	Batch    string  `json:"batch"`
	VetName  string  `json:"vet_name"`
}
