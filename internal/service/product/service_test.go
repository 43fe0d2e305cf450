package product

import (
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openvet/clinic-api/internal/model"
	apperrors "github.com/openvet/clinic-api/pkg/errors"
)

type fakeProductRepo struct {
	nextID int64
	byID   map[int64]*model.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{byID: map[int64]*model.Product{}}
}

func (r *fakeProductRepo) Create(ctx context.Context, product *model.Product) error {
	if product.Barcode != "" {
		for _, p := range r.byID {
			if p.Barcode == product.Barcode {
				return apperrors.Conflict("a product with that barcode already exists", nil)
			}
		}
	}
	r.nextID++
	product.ID = r.nextID
	cp := *product
	r.byID[product.ID] = &cp
	return nil
}

func (r *fakeProductRepo) Get(ctx context.Context, id int64) (*model.Product, error) {
	p, ok := r.byID[id]
	if !ok || !p.Active {
		return nil, apperrors.NotFound("product", nil)
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) Update(ctx context.Context, product *model.Product) error {
	if _, ok := r.byID[product.ID]; !ok {
		return apperrors.NotFound("product", nil)
	}
	cp := *product
	r.byID[product.ID] = &cp
	return nil
}

func (r *fakeProductRepo) SoftDelete(ctx context.Context, id int64) error {
	p, ok := r.byID[id]
	if !ok {
		return apperrors.NotFound("product", nil)
	}
	p.Active = false
	return nil
}

func (r *fakeProductRepo) List(ctx context.Context, category string) ([]*model.Product, error) {
	out := []*model.Product{}
	for _, p := range r.byID {
		if !p.Active {
			continue
		}
		if category != "" && string(p.Category) != category {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeProductRepo) ListLowStock(ctx context.Context) ([]*model.Product, error) {
	out := []*model.Product{}
	for _, p := range r.byID {
		if p.Active && p.Stock <= p.MinStock {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) GetByBarcode(ctx context.Context, barcode string) (*model.Product, error) {
	for _, p := range r.byID {
		if p.Barcode == barcode && p.Active {
			cp := *p
			return &cp, nil
		}
	}
	return nil, apperrors.NotFound("product", nil)
}

func (r *fakeProductRepo) Search(ctx context.Context, term string) ([]*model.Product, error) {
	term = strings.ToLower(term)
	out := []*model.Product{}
	for _, p := range r.byID {
		if !p.Active {
			continue
		}
		if strings.Contains(strings.ToLower(p.Name), term) ||
			strings.Contains(strings.ToLower(p.Description), term) ||
			strings.Contains(strings.ToLower(p.Supplier), term) {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) ListCategories(ctx context.Context) ([]string, error) {
	seen := map[string]bool{}
	out := []string{}
	for _, p := range r.byID {
		if p.Active && !seen[string(p.Category)] {
			seen[string(p.Category)] = true
			out = append(out, string(p.Category))
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r *fakeProductRepo) AdjustStock(ctx context.Context, id int64, delta int) (*model.Product, error) {
	p, ok := r.byID[id]
	if !ok || !p.Active {
		return nil, apperrors.NotFound("product", nil)
	}
	p.Stock += delta
	if p.Stock < 0 {
		p.Stock = 0
	}
	cp := *p
	return &cp, nil
}

func seedProduct(t *testing.T, svc *Service, stock, minStock int) *model.Product {
	t.Helper()
	p, err := svc.Create(context.Background(), &model.CreateProductRequest{
		Name: "Puppy Chow", Category: "food", Price: 25.90, Stock: stock, MinStock: minStock, Unit: "kg",
	})
	require.NoError(t, err)
	return p
}

func TestCreateValidatesCategory(t *testing.T) {
	svc := NewService(newFakeProductRepo())

	p := seedProduct(t, svc, 10, 3)
	assert.Equal(t, model.CategoryFood, p.Category)
	assert.True(t, p.Active)

	_, err := svc.Create(context.Background(), &model.CreateProductRequest{
		Name: "Mystery Box", Category: "gadget", Price: 5,
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestAdjustStock(t *testing.T) {
	svc := NewService(newFakeProductRepo())
	p := seedProduct(t, svc, 10, 3)

	updated, err := svc.AdjustStock(context.Background(), p.ID, -4)
	require.NoError(t, err)
	assert.Equal(t, 6, updated.Stock)

	_, err = svc.AdjustStock(context.Background(), p.ID, 0)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	updated, err = svc.AdjustStock(context.Background(), p.ID, -100)
	require.NoError(t, err)
	assert.Zero(t, updated.Stock)
}

func TestListLowStock(t *testing.T) {
	svc := NewService(newFakeProductRepo())
	seedProduct(t, svc, 10, 3)
	low := seedProduct(t, svc, 2, 3)

	products, err := svc.ListLowStock(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, low.ID, products[0].ID)
}

func TestListRejectsUnknownCategory(t *testing.T) {
	svc := NewService(newFakeProductRepo())

	_, err := svc.List(context.Background(), "gadget")
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestBarcodeLookup(t *testing.T) {
	svc := NewService(newFakeProductRepo())

	created, err := svc.Create(context.Background(), &model.CreateProductRequest{
		Name: "Puppy Chow", Category: "food", Price: 25.90, Barcode: "7750001000011",
	})
	require.NoError(t, err)

	found, err := svc.GetByBarcode(context.Background(), "7750001000011")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = svc.GetByBarcode(context.Background(), "0000000000000")
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))

	_, err = svc.GetByBarcode(context.Background(), "")
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestDuplicateBarcode(t *testing.T) {
	svc := NewService(newFakeProductRepo())

	_, err := svc.Create(context.Background(), &model.CreateProductRequest{
		Name: "Puppy Chow", Category: "food", Price: 25.90, Barcode: "7750001000011",
	})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), &model.CreateProductRequest{
		Name: "Kitten Chow", Category: "food", Price: 19.90, Barcode: "7750001000011",
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
}

func TestSearch(t *testing.T) {
	svc := NewService(newFakeProductRepo())
	seedProduct(t, svc, 10, 3)
	_, err := svc.Create(context.Background(), &model.CreateProductRequest{
		Name: "Flea Shampoo", Category: "hygiene", Price: 12.50, Description: "for dogs and cats",
	})
	require.NoError(t, err)

	byName, err := svc.Search(context.Background(), "shampoo")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "Flea Shampoo", byName[0].Name)

	byDescription, err := svc.Search(context.Background(), "DOGS")
	require.NoError(t, err)
	assert.Len(t, byDescription, 1)

	_, err = svc.Search(context.Background(), "")
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestListCategories(t *testing.T) {
	svc := NewService(newFakeProductRepo())
	seedProduct(t, svc, 10, 3)
	_, err := svc.Create(context.Background(), &model.CreateProductRequest{
		Name: "Flea Shampoo", Category: "hygiene", Price: 12.50,
	})
	require.NoError(t, err)

	categories, err := svc.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"food", "hygiene"}, categories)
}

func TestDeleteHidesProduct(t *testing.T) {
	svc := NewService(newFakeProductRepo())
	p := seedProduct(t, svc, 10, 3)

	require.NoError(t, svc.Delete(context.Background(), p.ID))
	_, err := svc.Get(context.Background(), p.ID)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}
