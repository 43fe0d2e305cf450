package staff

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openvet/clinic-api/internal/model"
	apperrors "github.com/openvet/clinic-api/pkg/errors"
)

type fakeStaffRepo struct {
	nextID    int64
	byID      map[int64]*model.Staff
	schedules map[int64][]*model.Schedule
}

func newFakeStaffRepo() *fakeStaffRepo {
	return &fakeStaffRepo{byID: map[int64]*model.Staff{}, schedules: map[int64][]*model.Schedule{}}
}

func (r *fakeStaffRepo) Create(ctx context.Context, staff *model.Staff) error {
	r.nextID++
	staff.ID = r.nextID
	cp := *staff
	r.byID[staff.ID] = &cp
	return nil
}

func (r *fakeStaffRepo) Get(ctx context.Context, id int64) (*model.Staff, error) {
	s, ok := r.byID[id]
	if !ok || !s.Active {
		return nil, apperrors.NotFound("staff member", nil)
	}
	cp := *s
	return &cp, nil
}

func (r *fakeStaffRepo) GetByDNI(ctx context.Context, dni string) (*model.Staff, error) {
	for _, s := range r.byID {
		if s.DNI == dni && s.Active {
			cp := *s
			return &cp, nil
		}
	}
	return nil, apperrors.NotFound("staff member", nil)
}

func (r *fakeStaffRepo) Update(ctx context.Context, staff *model.Staff) error {
	if _, ok := r.byID[staff.ID]; !ok {
		return apperrors.NotFound("staff member", nil)
	}
	cp := *staff
	r.byID[staff.ID] = &cp
	return nil
}

func (r *fakeStaffRepo) SoftDelete(ctx context.Context, id int64) error {
	s, ok := r.byID[id]
	if !ok {
		return apperrors.NotFound("staff member", nil)
	}
	s.Active = false
	return nil
}

func (r *fakeStaffRepo) List(ctx context.Context, role string) ([]*model.Staff, error) {
	out := []*model.Staff{}
	for _, s := range r.byID {
		if !s.Active {
			continue
		}
		if role != "" && string(s.Role) != role {
			continue
		}
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeStaffRepo) AddSchedule(ctx context.Context, schedule *model.Schedule) error {
	schedule.ID = int64(len(r.schedules[schedule.StaffID]) + 1)
	r.schedules[schedule.StaffID] = append(r.schedules[schedule.StaffID], schedule)
	return nil
}

func (r *fakeStaffRepo) ListSchedules(ctx context.Context, staffID int64) ([]*model.Schedule, error) {
	return r.schedules[staffID], nil
}

func (r *fakeStaffRepo) RemoveSchedule(ctx context.Context, scheduleID int64) error {
	for staffID, blocks := range r.schedules {
		for i, b := range blocks {
			if b.ID == scheduleID {
				r.schedules[staffID] = append(blocks[:i], blocks[i+1:]...)
				return nil
			}
		}
	}
	return apperrors.NotFound("schedule", nil)
}

func hire(t *testing.T, svc *Service, role string) *model.Staff {
	t.Helper()
	s, err := svc.Create(context.Background(), &model.CreateStaffRequest{
		DNI: "11223344", FirstName: "Ana", LastName: "Quispe", Role: role, HireDate: "2024-03-01",
	})
	require.NoError(t, err)
	return s
}

func TestCreateValidatesRole(t *testing.T) {
	svc := NewService(newFakeStaffRepo())

	s := hire(t, svc, "veterinarian")
	assert.Equal(t, model.StaffRoleVeterinarian, s.Role)
	assert.True(t, s.Active)

	_, err := svc.Create(context.Background(), &model.CreateStaffRequest{
		DNI: "55667788", FirstName: "X", LastName: "Y", Role: "janitor",
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestCreateDefaultsHireDate(t *testing.T) {
	svc := NewService(newFakeStaffRepo())

	s, err := svc.Create(context.Background(), &model.CreateStaffRequest{
		DNI: "55667788", FirstName: "Luis", LastName: "Paredes", Role: "receptionist",
	})
	require.NoError(t, err)
	assert.Equal(t, model.Today(), s.HireDate)

	_, err = svc.Create(context.Background(), &model.CreateStaffRequest{
		DNI: "99887766", FirstName: "X", LastName: "Y", Role: "groomer", HireDate: "01-03-2024",
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestSchedules(t *testing.T) {
	svc := NewService(newFakeStaffRepo())
	s := hire(t, svc, "veterinarian")

	block, err := svc.AddSchedule(context.Background(), s.ID, &model.AddScheduleRequest{
		Weekday: "monday", StartTime: "09:00", EndTime: "13:00",
	})
	require.NoError(t, err)
	assert.True(t, block.Active)

	_, err = svc.AddSchedule(context.Background(), s.ID, &model.AddScheduleRequest{
		Weekday: "monday", StartTime: "14:00", EndTime: "12:00",
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	_, err = svc.AddSchedule(context.Background(), s.ID, &model.AddScheduleRequest{
		Weekday: "monday", StartTime: "9am", EndTime: "1pm",
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	loaded, err := svc.GetWithSchedules(context.Background(), s.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Schedules, 1)

	require.NoError(t, svc.RemoveSchedule(context.Background(), s.ID, block.ID))
	blocks, err := svc.ListSchedules(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Empty(t, blocks)
}

func TestGetByDNI(t *testing.T) {
	svc := NewService(newFakeStaffRepo())
	s := hire(t, svc, "veterinarian")

	found, err := svc.GetByDNI(context.Background(), "11223344")
	require.NoError(t, err)
	assert.Equal(t, s.ID, found.ID)

	_, err = svc.GetByDNI(context.Background(), "00000000")
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))

	require.NoError(t, svc.Delete(context.Background(), s.ID))
	_, err = svc.GetByDNI(context.Background(), "11223344")
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestListFiltersByRole(t *testing.T) {
	svc := NewService(newFakeStaffRepo())
	hire(t, svc, "veterinarian")
	_, err := svc.Create(context.Background(), &model.CreateStaffRequest{
		DNI: "55667788", FirstName: "Luis", LastName: "Paredes", Role: "receptionist",
	})
	require.NoError(t, err)

	vets, err := svc.List(context.Background(), "veterinarian")
	require.NoError(t, err)
	assert.Len(t, vets, 1)

	_, err = svc.List(context.Background(), "janitor")
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestDeleteHidesStaff(t *testing.T) {
	svc := NewService(newFakeStaffRepo())
	s := hire(t, svc, "veterinarian")

	require.NoError(t, svc.Delete(context.Background(), s.ID))
	_, err := svc.Get(context.Background(), s.ID)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}
