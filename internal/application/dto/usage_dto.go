package dto

import "time"

// RecordUsageRequest body para POST /api/products/usage.
// Comando distinto de la edición de catálogo: solo este toca el log de eventos
// y los campos derivados del producto.
type RecordUsageRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Note      string `json:"note,omitempty"`
}

// UsageEventResponse un evento de uso.
type UsageEventResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Date      time.Time `json:"date"`
	Note      *string   `json:"note,omitempty"`
}

// AlertStatusResponse estado de alerta de stock bajo.
type AlertStatusResponse struct {
	IsLowStock        bool `json:"is_low_stock"`
	EstimatedDaysLeft int  `json:"estimated_days_left"`
	LowStockThreshold int  `json:"low_stock_threshold"`
}

// RecordUsageResponse resultado del registro de uso: evento creado, agregado
// actualizado y estado de alerta derivado.
type RecordUsageResponse struct {
	Event       UsageEventResponse  `json:"event"`
	Product     ProductResponse     `json:"product"`
	AlertStatus AlertStatusResponse `json:"alert_status"`
}

// UsageHistoryResponse historial de usos de un producto, más reciente primero.
type UsageHistoryResponse struct {
	Items []UsageEventResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}
