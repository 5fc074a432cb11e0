package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Brand         string          `json:"brand" validate:"required,min=1,max=100"`
	Name          string          `json:"name" validate:"required,min=1,max=200"`
	ColorCode     string          `json:"color_code"`
	ColorName     string          `json:"color_name"`
	Type          string          `json:"type" validate:"required"`
	Price         decimal.Decimal `json:"price"`
	Quantity      int             `json:"quantity" validate:"min=0"`
	MinStockAlert int             `json:"min_stock_alert" validate:"min=1"`
}

// UpdateProductRequest edición de catálogo. No incluye UsageCount ni los campos
// derivados: esos solo los escribe el comando de registro de uso.
type UpdateProductRequest struct {
	Brand         *string          `json:"brand" validate:"omitempty,min=1,max=100"`
	Name          *string          `json:"name" validate:"omitempty,min=1,max=200"`
	ColorCode     *string          `json:"color_code"`
	ColorName     *string          `json:"color_name"`
	Type          *string          `json:"type"`
	Price         *decimal.Decimal `json:"price"`
	Quantity      *int             `json:"quantity" validate:"omitempty,min=0"` // reposición de stock
	MinStockAlert *int             `json:"min_stock_alert" validate:"omitempty,min=1"`
}

// ProductResponse salida de un producto con sus métricas derivadas.
type ProductResponse struct {
	ID                  string          `json:"id"`
	StoreID             string          `json:"store_id"`
	Brand               string          `json:"brand"`
	Name                string          `json:"name"`
	ColorCode           string          `json:"color_code"`
	ColorName           string          `json:"color_name"`
	Type                string          `json:"type"`
	Price               decimal.Decimal `json:"price"`
	Quantity            int             `json:"quantity"`
	UsageCount          int             `json:"usage_count"`
	MinStockAlert       int             `json:"min_stock_alert"`
	LastUsed            *time.Time      `json:"last_used,omitempty"`
	AverageUsesPerMonth float64         `json:"average_uses_per_month"`
	EstimatedDaysLeft   int             `json:"estimated_days_left"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// ProductDetailResponse producto + estado de alerta.
type ProductDetailResponse struct {
	Product     ProductResponse     `json:"product"`
	AlertStatus AlertStatusResponse `json:"alert_status"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
