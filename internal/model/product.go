package model

import "time"

type ProductCategory string

const (
	CategoryFood      ProductCategory = "food"
	CategoryToy       ProductCategory = "toy"
	CategoryMedicine  ProductCategory = "medicine"
	CategoryAccessory ProductCategory = "accessory"
	CategoryHygiene   ProductCategory = "hygiene"
	CategoryOther     ProductCategory = "other"
)

func (c ProductCategory) Valid() bool {
	switch c {
	case CategoryFood, CategoryToy, CategoryMedicine, CategoryAccessory, CategoryHygiene, CategoryOther:
		return true
	}
	return false
}

type Product struct {
	ID          int64           `db:"id" json:"id"`
	Name        string          `db:"name" json:"name"`
	Category    ProductCategory `db:"category" json:"category"`
	Subcategory string          `db:"subcategory" json:"subcategory,omitempty"`
	Description string          `db:"description" json:"description,omitempty"`
	Price       float64         `db:"price" json:"price"`
	Stock       int             `db:"stock" json:"stock"`
	MinStock    int             `db:"min_stock" json:"min_stock"`
	Unit        string          `db:"unit" json:"unit,omitempty"`
	Supplier    string          `db:"supplier" json:"supplier,omitempty"`
	Barcode     string          `db:"barcode" json:"barcode,omitempty"`
	Active      bool            `db:"active" json:"active"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`
}

type CreateProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	Category    string  `json:"category" binding:"required"`
	Subcategory string  `json:"subcategory"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,min=0"`
	Stock       int     `json:"stock" binding:"min=0"`
	MinStock    int     `json:"min_stock" binding:"omitempty,min=0"`
	Unit        string  `json:"unit"`
	Supplier    string  `json:"supplier"`
	Barcode     string  `json:"barcode"`
}

type UpdateProductRequest struct {
	Name        *string  `json:"name"`
	Category    *string  `json:"category"`
	Subcategory *string  `json:"subcategory"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" binding:"omitempty,min=0"`
	MinStock    *int     `json:"min_stock" binding:"omitempty,min=0"`
	Unit        *string  `json:"unit"`
	Supplier    *string  `json:"supplier"`
	Barcode     *string  `json:"barcode"`
}

// AdjustStockRequest moves stock by a signed delta; the resulting stock
// can never go below zero.
type AdjustStockRequest struct {
	Delta int `json:"delta" binding:"required"`
}
