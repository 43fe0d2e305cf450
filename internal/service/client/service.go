// Package client manages the clinic's client directory. Clients are
// identified externally by DNI; deletion is a soft deactivation so past
// appointments keep a valid reference.
package client

import (
	"context"

	"github.com/openvet/clinic-api/internal/model"
	"github.com/openvet/clinic-api/internal/repository"
)

type Service struct {
	repo repository.ClientRepository
}

func NewService(repo repository.ClientRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req *model.CreateClientRequest) (*model.Client, error) {
	client := &model.Client{
		DNI:       req.DNI,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Email:     req.Email,
		Address:   req.Address,
		Active:    true,
	}
	if err := s.repo.Create(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*model.Client, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) GetByDNI(ctx context.Context, dni string) (*model.Client, error) {
	return s.repo.GetByDNI(ctx, dni)
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*model.Client, error) {
	return s.repo.GetByEmail(ctx, email)
}

func (s *Service) Update(ctx context.Context, id int64, req *model.UpdateClientRequest) (*model.Client, error) {
	client, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.FirstName != nil {
		client.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		client.LastName = *req.LastName
	}
	if req.Phone != nil {
		client.Phone = *req.Phone
	}
	if req.Email != nil {
		client.Email = *req.Email
	}
	if req.Address != nil {
		client.Address = *req.Address
	}
	if err := s.repo.Update(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.SoftDelete(ctx, id)
}

func (s *Service) List(ctx context.Context, activeOnly bool) ([]*model.Client, error) {
	return s.repo.List(ctx, activeOnly)
}
