package depletion

import "github.com/jhoicas/Consumibles-api/internal/domain/entity"

// AlertStatus clasifica el estado de stock de un producto frente a su umbral.
type AlertStatus struct {
	IsLowStock        bool
	EstimatedDaysLeft int
	LowStockThreshold int
}

// Classify deriva el estado de alerta desde el agregado persistido.
// Quantity igual al umbral ya cuenta como stock bajo.
func Classify(product *entity.Product) AlertStatus {
	return AlertStatus{
		IsLowStock:        product.Quantity <= product.MinStockAlert,
		EstimatedDaysLeft: product.EstimatedDaysLeft,
		LowStockThreshold: product.MinStockAlert,
	}
}
