package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/openvet/clinic-api/internal/model"
	"github.com/openvet/clinic-api/pkg/errors"
)

const productColumns = `
	id, name, category, subcategory, description, price, stock, min_stock,
	unit, supplier, barcode, active, created_at, updated_at
	`

func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	product.Active = true
	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt

	query := `
		INSERT INTO products (name, category, subcategory, description, price, stock, min_stock, unit, supplier, barcode, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id
	`
	err := r.db.QueryRowxContext(ctx, query,
		product.Name,
		product.Category,
		product.Subcategory,
		product.Description,
		product.Price,
		product.Stock,
		product.MinStock,
		product.Unit,
		product.Supplier,
		product.Barcode,
		product.Active,
		product.CreatedAt,
		product.UpdatedAt,
	).Scan(&product.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return errors.Conflict("a product with that barcode already exists", err)
		}
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (r *productRepository) GetByBarcode(ctx context.Context, barcode string) (*model.Product, error) {
	var product model.Product
	query := `SELECT` + productColumns + `FROM products WHERE barcode = $1 AND active = TRUE`
	if err := r.db.GetContext(ctx, &product, query, barcode); err != nil {
		return nil, notFoundOr(err, "product")
	}
	return &product, nil
}

func (r *productRepository) Get(ctx context.Context, id int64) (*model.Product, error) {
	var product model.Product
	query := `SELECT` + productColumns + `FROM products WHERE id = $1`
	if err := r.db.GetContext(ctx, &product, query, id); err != nil {
		return nil, notFoundOr(err, "product")
	}
	return &product, nil
}

func (r *productRepository) Update(ctx context.Context, product *model.Product) error {
	product.UpdatedAt = time.Now()

	query := `
		UPDATE products
		SET name = $1, category = $2, subcategory = $3, description = $4,
			price = $5, min_stock = $6, unit = $7, supplier = $8, barcode = $9, updated_at = $10
		WHERE id = $11
	`
	result, err := r.db.ExecContext(ctx, query,
		product.Name,
		product.Category,
		product.Subcategory,
		product.Description,
		product.Price,
		product.MinStock,
		product.Unit,
		product.Supplier,
		product.Barcode,
		product.UpdatedAt,
		product.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return errors.Conflict("a product with that barcode already exists", err)
		}
		return fmt.Errorf("failed to update product: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return errors.NotFound("product", nil)
	}
	return nil
}

func (r *productRepository) SoftDelete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE products SET active = FALSE, updated_at = $1 WHERE id = $2`,
		time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return errors.NotFound("product", nil)
	}
	return nil
}

func (r *productRepository) List(ctx context.Context, category string) ([]*model.Product, error) {
	query := `SELECT` + productColumns + `FROM products WHERE active = TRUE`
	var args []interface{}

	if category != "" {
		query += ` AND category = $1`
		args = append(args, category)
	}
	query += ` ORDER BY name`

	products := []*model.Product{}
	if err := r.db.SelectContext(ctx, &products, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (r *productRepository) ListLowStock(ctx context.Context) ([]*model.Product, error) {
	query := `SELECT` + productColumns + `FROM products WHERE active = TRUE AND stock <= min_stock ORDER BY stock`

	products := []*model.Product{}
	if err := r.db.SelectContext(ctx, &products, query); err != nil {
		return nil, fmt.Errorf("failed to list low-stock products: %w", err)
	}
	return products, nil
}

func (r *productRepository) Search(ctx context.Context, term string) ([]*model.Product, error) {
	query := `SELECT` + productColumns + `
		FROM products
		WHERE active = TRUE
		  AND (name ILIKE $1 OR description ILIKE $1 OR supplier ILIKE $1)
		ORDER BY name`

	products := []*model.Product{}
	if err := r.db.SelectContext(ctx, &products, query, "%"+term+"%"); err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	return products, nil
}

func (r *productRepository) ListCategories(ctx context.Context) ([]string, error) {
	categories := []string{}
	err := r.db.SelectContext(ctx, &categories,
		`SELECT DISTINCT category FROM products WHERE active = TRUE ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// AdjustStock applies a signed delta atomically; the GREATEST clause keeps
// stock from going negative under concurrent adjustments.
func (r *productRepository) AdjustStock(ctx context.Context, id int64, delta int) (*model.Product, error) {
	query := `
		UPDATE products
		SET stock = GREATEST(stock + $1, 0), updated_at = $2
		WHERE id = $3 AND active = TRUE
		RETURNING` + productColumns

	var product model.Product
	if err := r.db.GetContext(ctx, &product, query, delta, time.Now(), id); err != nil {
		return nil, notFoundOr(err, "product")
	}
	return &product, nil
}
