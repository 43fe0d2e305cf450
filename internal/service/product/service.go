// Package product manages the clinic's sales inventory: catalog CRUD,
// stock movements and low-stock reporting.
package product

import (
	"context"
	"fmt"

	"github.com/openvet/clinic-api/internal/model"
	"github.com/openvet/clinic-api/internal/repository"
	apperrors "github.com/openvet/clinic-api/pkg/errors"
)

type Service struct {
	repo repository.ProductRepository
}

func NewService(repo repository.ProductRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req *model.CreateProductRequest) (*model.Product, error) {
	category := model.ProductCategory(req.Category)
	if !category.Valid() {
		return nil, apperrors.Validation(fmt.Sprintf("invalid category %q", req.Category), nil)
	}

	product := &model.Product{
		Name:        req.Name,
		Category:    category,
		Subcategory: req.Subcategory,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		MinStock:    req.MinStock,
		Unit:        req.Unit,
		Supplier:    req.Supplier,
		Barcode:     req.Barcode,
		Active:      true,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*model.Product, error) {
	return s.repo.Get(ctx, id)
}

// GetByBarcode looks a product up by its scanned barcode.
func (s *Service) GetByBarcode(ctx context.Context, barcode string) (*model.Product, error) {
	if barcode == "" {
		return nil, apperrors.Validation("barcode must not be empty", nil)
	}
	return s.repo.GetByBarcode(ctx, barcode)
}

func (s *Service) Update(ctx context.Context, id int64, req *model.UpdateProductRequest) (*model.Product, error) {
	product, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Category != nil {
		category := model.ProductCategory(*req.Category)
		if !category.Valid() {
			return nil, apperrors.Validation(fmt.Sprintf("invalid category %q", *req.Category), nil)
		}
		product.Category = category
	}
	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Subcategory != nil {
		product.Subcategory = *req.Subcategory
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.MinStock != nil {
		product.MinStock = *req.MinStock
	}
	if req.Unit != nil {
		product.Unit = *req.Unit
	}
	if req.Supplier != nil {
		product.Supplier = *req.Supplier
	}
	if req.Barcode != nil {
		product.Barcode = *req.Barcode
	}
	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.SoftDelete(ctx, id)
}

// List returns products, optionally filtered to one category.
func (s *Service) List(ctx context.Context, category string) ([]*model.Product, error) {
	if category != "" && !model.ProductCategory(category).Valid() {
		return nil, apperrors.Validation(fmt.Sprintf("invalid category %q", category), nil)
	}
	return s.repo.List(ctx, category)
}

// ListLowStock returns active products at or below their minimum stock.
func (s *Service) ListLowStock(ctx context.Context) ([]*model.Product, error) {
	return s.repo.ListLowStock(ctx)
}

// Search matches the term against product name, description and supplier.
func (s *Service) Search(ctx context.Context, term string) ([]*model.Product, error) {
	if term == "" {
		return nil, apperrors.Validation("search term must not be empty", nil)
	}
	return s.repo.Search(ctx, term)
}

// ListCategories returns the categories currently in use by active products.
func (s *Service) ListCategories(ctx context.Context) ([]string, error) {
	return s.repo.ListCategories(ctx)
}

// AdjustStock moves stock by a signed delta, clamped at zero.
func (s *Service) AdjustStock(ctx context.Context, id int64, delta int) (*model.Product, error) {
	if delta == 0 {
		return nil, apperrors.Validation("delta must be non-zero", nil)
	}
	return s.repo.AdjustStock(ctx, id, delta)
}
