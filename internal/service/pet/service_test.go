package pet

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openvet/clinic-api/internal/directory"
	"github.com/openvet/clinic-api/internal/model"
	apperrors "github.com/openvet/clinic-api/pkg/errors"
)

type fakePetRepo struct {
	byID    map[uuid.UUID]*model.Pet
	records map[uuid.UUID][]*model.MedicalRecord
	shots   map[uuid.UUID][]*model.Vaccination
}

func newFakePetRepo() *fakePetRepo {
	return &fakePetRepo{
		byID:    map[uuid.UUID]*model.Pet{},
		records: map[uuid.UUID][]*model.MedicalRecord{},
		shots:   map[uuid.UUID][]*model.Vaccination{},
	}
}

func (r *fakePetRepo) Create(ctx context.Context, pet *model.Pet) error {
	cp := *pet
	r.byID[pet.ID] = &cp
	return nil
}

func (r *fakePetRepo) Get(ctx context.Context, id uuid.UUID) (*model.Pet, error) {
	p, ok := r.byID[id]
	if !ok || !p.Active {
		return nil, apperrors.NotFound("pet", nil)
	}
	cp := *p
	return &cp, nil
}

func (r *fakePetRepo) Update(ctx context.Context, pet *model.Pet) error {
	if _, ok := r.byID[pet.ID]; !ok {
		return apperrors.NotFound("pet", nil)
	}
	cp := *pet
	r.byID[pet.ID] = &cp
	return nil
}

func (r *fakePetRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	p, ok := r.byID[id]
	if !ok {
		return apperrors.NotFound("pet", nil)
	}
	p.Active = false
	return nil
}

func (r *fakePetRepo) List(ctx context.Context, ownerDNI string) ([]*model.Pet, error) {
	out := []*model.Pet{}
	for _, p := range r.byID {
		if !p.Active {
			continue
		}
		if ownerDNI != "" && p.OwnerDNI != ownerDNI {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakePetRepo) AddMedicalRecord(ctx context.Context, rec *model.MedicalRecord) error {
	rec.ID = int64(len(r.records[rec.PetID]) + 1)
	r.records[rec.PetID] = append(r.records[rec.PetID], rec)
	return nil
}

func (r *fakePetRepo) ListMedicalRecords(ctx context.Context, petID uuid.UUID) ([]*model.MedicalRecord, error) {
	return r.records[petID], nil
}

func (r *fakePetRepo) AddVaccination(ctx context.Context, vac *model.Vaccination) error {
	vac.ID = int64(len(r.shots[vac.PetID]) + 1)
	r.shots[vac.PetID] = append(r.shots[vac.PetID], vac)
	return nil
}

func (r *fakePetRepo) ListVaccinations(ctx context.Context, petID uuid.UUID) ([]*model.Vaccination, error) {
	return r.shots[petID], nil
}

type fakeClients struct {
	known map[string]bool
	err   error
}

func (d *fakeClients) GetByDNI(ctx context.Context, dni, token string) (*model.Client, error) {
	if d.err != nil {
		return nil, d.err
	}
	if !d.known[dni] {
		return nil, directory.ErrNotFound
	}
	return &model.Client{DNI: dni}, nil
}

func (d *fakeClients) GetByEmail(ctx context.Context, email, token string) (*model.Client, error) {
	return nil, directory.ErrNotFound
}

func newTestService() (*Service, *fakeClients) {
	clients := &fakeClients{known: map[string]bool{"12345678": true}}
	return NewService(newFakePetRepo(), clients), clients
}

func registerPet(t *testing.T, svc *Service) *model.Pet {
	t.Helper()
	pet, err := svc.Create(context.Background(), "tok", &model.CreatePetRequest{
		Name: "Firulais", Species: "dog", Breed: "beagle", Age: 3, OwnerDNI: "12345678",
	})
	require.NoError(t, err)
	return pet
}

func TestCreateValidatesOwner(t *testing.T) {
	svc, _ := newTestService()

	pet := registerPet(t, svc)
	assert.Equal(t, model.SpeciesDog, pet.Species)
	assert.True(t, pet.Active)
	assert.NotEqual(t, uuid.Nil, pet.ID)

	_, err := svc.Create(context.Background(), "tok", &model.CreatePetRequest{
		Name: "Ghost", Species: "dog", OwnerDNI: "99999999",
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestCreateRejectsUnknownSpecies(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), "tok", &model.CreatePetRequest{
		Name: "Nessie", Species: "dinosaur", OwnerDNI: "12345678",
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestCreateDirectoryDown(t *testing.T) {
	svc, clients := newTestService()
	clients.err = directory.ErrUnavailable

	_, err := svc.Create(context.Background(), "tok", &model.CreatePetRequest{
		Name: "Firulais", Species: "dog", OwnerDNI: "12345678",
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindUpstreamUnavailable))
}

func TestUpdateRevalidatesOwnerOnlyWhenChanged(t *testing.T) {
	svc, clients := newTestService()
	pet := registerPet(t, svc)

	// Same owner: no directory call is needed even while it is down.
	clients.err = directory.ErrUnavailable
	sameOwner := "12345678"
	name := "Firu"
	updated, err := svc.Update(context.Background(), "tok", pet.ID, &model.UpdatePetRequest{
		Name: &name, OwnerDNI: &sameOwner,
	})
	require.NoError(t, err)
	assert.Equal(t, "Firu", updated.Name)

	newOwner := "87654321"
	_, err = svc.Update(context.Background(), "tok", pet.ID, &model.UpdatePetRequest{OwnerDNI: &newOwner})
	assert.True(t, apperrors.IsKind(err, apperrors.KindUpstreamUnavailable))
}

func TestMedicalHistory(t *testing.T) {
	svc, _ := newTestService()
	pet := registerPet(t, svc)

	rec, err := svc.AddMedicalRecord(context.Background(), pet.ID, &model.AddMedicalRecordRequest{
		Description: "ear infection", Diagnosis: "otitis", Treatment: "drops",
	})
	require.NoError(t, err)
	assert.Equal(t, model.Today(), rec.Date)

	_, err = svc.AddMedicalRecord(context.Background(), pet.ID, &model.AddMedicalRecordRequest{
		Description: "x", Date: "15/09/2026",
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	nextDose := "2026-12-01"
	_, err = svc.AddVaccination(context.Background(), pet.ID, &model.AddVaccinationRequest{
		Name: "rabies", Date: "2026-09-01", NextDose: &nextDose,
	})
	require.NoError(t, err)

	full, err := svc.GetWithHistory(context.Background(), pet.ID)
	require.NoError(t, err)
	assert.Len(t, full.MedicalRecords, 1)
	assert.Len(t, full.Vaccinations, 1)
}

func TestHistoryForUnknownPet(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.AddMedicalRecord(context.Background(), uuid.New(), &model.AddMedicalRecordRequest{
		Description: "x",
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestListByOwner(t *testing.T) {
	svc, clients := newTestService()
	clients.known["87654321"] = true
	registerPet(t, svc)
	_, err := svc.Create(context.Background(), "tok", &model.CreatePetRequest{
		Name: "Michi", Species: "cat", OwnerDNI: "87654321",
	})
	require.NoError(t, err)

	pets, err := svc.List(context.Background(), "12345678")
	require.NoError(t, err)
	require.Len(t, pets, 1)
	assert.Equal(t, "Firulais", pets[0].Name)

	all, err := svc.List(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
