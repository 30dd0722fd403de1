package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Barcode         string           `json:"barcode,omitempty" validate:"max=64"`
	Name            string           `json:"name" validate:"notblank,max=200"`
	Description     string           `json:"description"`
	CategoryID      *int64           `json:"category_id,omitempty"`
	SupplierID      *int64           `json:"supplier_id,omitempty"`
	CostPrice       decimal.Decimal  `json:"cost_price" validate:"gte=0"`
	RetailPrice     decimal.Decimal  `json:"retail_price" validate:"gt=0"`
	WholesalePrice  *decimal.Decimal `json:"wholesale_price,omitempty" validate:"omitempty,gt=0"`
	WholesaleMinQty *int             `json:"wholesale_min_qty,omitempty" validate:"omitempty,gt=0"`
	Stock           int              `json:"stock" validate:"gte=0"`
	MinStock        int              `json:"min_stock" validate:"gte=0"`
	UnitMeasure     string           `json:"unit_measure"`
}

// UpdateProductRequest actualización parcial (sin Stock: se maneja vía movimientos).
type UpdateProductRequest struct {
	Barcode         *string          `json:"barcode,omitempty" validate:"omitempty,max=64"`
	Name            *string          `json:"name,omitempty" validate:"omitempty,notblank,max=200"`
	Description     *string          `json:"description,omitempty"`
	CategoryID      *int64           `json:"category_id,omitempty"`
	ClearCategory   bool             `json:"clear_category,omitempty"`
	SupplierID      *int64           `json:"supplier_id,omitempty"`
	ClearSupplier   bool             `json:"clear_supplier,omitempty"`
	CostPrice       *decimal.Decimal `json:"cost_price,omitempty" validate:"omitempty,gte=0"`
	RetailPrice     *decimal.Decimal `json:"retail_price,omitempty" validate:"omitempty,gt=0"`
	WholesalePrice  *decimal.Decimal `json:"wholesale_price,omitempty" validate:"omitempty,gt=0"`
	WholesaleMinQty *int             `json:"wholesale_min_qty,omitempty" validate:"omitempty,gt=0"`
	ClearWholesale  bool             `json:"clear_wholesale,omitempty"`
	MinStock        *int             `json:"min_stock,omitempty" validate:"omitempty,gte=0"`
	UnitMeasure     *string          `json:"unit_measure,omitempty"`
	Active          *bool            `json:"active,omitempty"`
}

// ProductResponse salida de un producto. CostPrice es nil si el usuario no puede verlo.
type ProductResponse struct {
	ID              int64            `json:"id"`
	Barcode         string           `json:"barcode,omitempty"`
	Name            string           `json:"name"`
	Description     string           `json:"description"`
	CategoryID      *int64           `json:"category_id,omitempty"`
	CategoryName    string           `json:"category_name,omitempty"`
	SupplierID      *int64           `json:"supplier_id,omitempty"`
	SupplierName    string           `json:"supplier_name,omitempty"`
	CostPrice       *decimal.Decimal `json:"cost_price,omitempty"`
	RetailPrice     decimal.Decimal  `json:"retail_price"`
	WholesalePrice  *decimal.Decimal `json:"wholesale_price,omitempty"`
	WholesaleMinQty *int             `json:"wholesale_min_qty,omitempty"`
	Stock           int              `json:"stock"`
	MinStock        int              `json:"min_stock"`
	LowStock        bool             `json:"low_stock"`
	UnitMeasure     string           `json:"unit_measure"`
	Active          bool             `json:"active"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// ProductListRequest filtros del listado.
type ProductListRequest struct {
	PageRequest
	Name            string `query:"name"`
	CategoryID      int64  `query:"category_id"`
	SupplierID      int64  `query:"supplier_id"`
	LowStock        bool   `query:"low_stock"`
	IncludeInactive bool   `query:"include_inactive"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// CategoryRequest alta o modificación de categoría (en update los campos vacíos no se tocan).
type CategoryRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,notblank,max=100"`
	Description *string `json:"description,omitempty"`
}

// CategoryResponse categoría.
type CategoryResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// SupplierRequest alta o modificación de proveedor.
type SupplierRequest struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,notblank,max=150"`
	Contact *string `json:"contact,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Email   *string `json:"email,omitempty" validate:"omitempty,email"`
	Address *string `json:"address,omitempty"`
}

// SupplierResponse proveedor.
type SupplierResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}
