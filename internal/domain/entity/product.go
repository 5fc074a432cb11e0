package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de producto consumible.
const (
	ProductTypePolish = "POLISH" // esmalte
	ProductTypeGel    = "GEL"    // gel
)

// Product representa un consumible del catálogo de una tienda (Store).
// Quantity y UsageCount solo los modifica el motor de agotamiento; los campos
// derivados (AverageUsesPerMonth, EstimatedDaysLeft) se recalculan en la misma
// transacción que registra cada uso y nunca se aceptan desde el cliente.
type Product struct {
	ID                  string
	StoreID             string
	Brand               string
	Name                string
	ColorCode           string
	ColorName           string
	Type                string          // POLISH | GEL
	Price               decimal.Decimal // precio de venta
	Quantity            int             // unidades restantes, nunca negativo
	UsageCount          int             // total de usos registrados, nunca decrece
	MinStockAlert       int             // umbral de alerta de stock bajo (>= 1)
	LastUsed            *time.Time      // nil hasta el primer uso
	AverageUsesPerMonth float64         // derivado
	EstimatedDaysLeft   int             // derivado
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
