// Package staff manages the clinic's employee directory and the weekly
// schedules attached to each member.
package staff

import (
	"context"
	"fmt"

	"github.com/openvet/clinic-api/internal/model"
	"github.com/openvet/clinic-api/internal/repository"
	apperrors "github.com/openvet/clinic-api/pkg/errors"
)

type Service struct {
	repo repository.StaffRepository
}

func NewService(repo repository.StaffRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req *model.CreateStaffRequest) (*model.Staff, error) {
	role := model.StaffRole(req.Role)
	if !role.Valid() {
		return nil, apperrors.Validation(fmt.Sprintf("invalid role %q", req.Role), nil)
	}
	hireDate := req.HireDate
	if hireDate == "" {
		hireDate = model.Today()
	} else if !model.ValidDate(hireDate) {
		return nil, apperrors.Validation("hire_date must be in YYYY-MM-DD format", nil)
	}

	staff := &model.Staff{
		DNI:       req.DNI,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      role,
		Specialty: req.Specialty,
		Phone:     req.Phone,
		Email:     req.Email,
		Address:   req.Address,
		HireDate:  hireDate,
		Salary:    req.Salary,
		Active:    true,
	}
	if err := s.repo.Create(ctx, staff); err != nil {
		return nil, err
	}
	return staff, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*model.Staff, error) {
	return s.repo.Get(ctx, id)
}

// GetByDNI looks a staff member up by national ID.
func (s *Service) GetByDNI(ctx context.Context, dni string) (*model.Staff, error) {
	return s.repo.GetByDNI(ctx, dni)
}

// GetWithSchedules loads the staff member together with their weekly
// working blocks.
func (s *Service) GetWithSchedules(ctx context.Context, id int64) (*model.Staff, error) {
	staff, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if staff.Schedules, err = s.repo.ListSchedules(ctx, id); err != nil {
		return nil, err
	}
	return staff, nil
}

func (s *Service) Update(ctx context.Context, id int64, req *model.UpdateStaffRequest) (*model.Staff, error) {
	staff, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Role != nil {
		role := model.StaffRole(*req.Role)
		if !role.Valid() {
			return nil, apperrors.Validation(fmt.Sprintf("invalid role %q", *req.Role), nil)
		}
		staff.Role = role
	}
	if req.FirstName != nil {
		staff.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		staff.LastName = *req.LastName
	}
	if req.Specialty != nil {
		staff.Specialty = *req.Specialty
	}
	if req.Phone != nil {
		staff.Phone = *req.Phone
	}
	if req.Email != nil {
		staff.Email = *req.Email
	}
	if req.Address != nil {
		staff.Address = *req.Address
	}
	if req.Salary != nil {
		staff.Salary = *req.Salary
	}
	if err := s.repo.Update(ctx, staff); err != nil {
		return nil, err
	}
	return staff, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.SoftDelete(ctx, id)
}

// List returns staff, optionally filtered to a single role.
func (s *Service) List(ctx context.Context, role string) ([]*model.Staff, error) {
	if role != "" && !model.StaffRole(role).Valid() {
		return nil, apperrors.Validation(fmt.Sprintf("invalid role %q", role), nil)
	}
	return s.repo.List(ctx, role)
}

func (s *Service) AddSchedule(ctx context.Context, staffID int64, req *model.AddScheduleRequest) (*model.Schedule, error) {
	if _, err := s.repo.Get(ctx, staffID); err != nil {
		return nil, err
	}
	if !model.ValidTimeOfDay(req.StartTime) || !model.ValidTimeOfDay(req.EndTime) {
		return nil, apperrors.Validation("start_time and end_time must be in HH:MM format", nil)
	}
	if req.StartTime >= req.EndTime {
		return nil, apperrors.Validation("start_time must be before end_time", nil)
	}

	schedule := &model.Schedule{
		StaffID:   staffID,
		Weekday:   req.Weekday,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Active:    true,
	}
	if err := s.repo.AddSchedule(ctx, schedule); err != nil {
		return nil, err
	}
	return schedule, nil
}

func (s *Service) ListSchedules(ctx context.Context, staffID int64) ([]*model.Schedule, error) {
	if _, err := s.repo.Get(ctx, staffID); err != nil {
		return nil, err
	}
	return s.repo.ListSchedules(ctx, staffID)
}

func (s *Service) RemoveSchedule(ctx context.Context, staffID, scheduleID int64) error {
	if _, err := s.repo.Get(ctx, staffID); err != nil {
		return err
	}
	return s.repo.RemoveSchedule(ctx, scheduleID)
}
