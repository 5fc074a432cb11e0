package depletion_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Consumibles-api/internal/domain/depletion"
	"github.com/jhoicas/Consumibles-api/internal/domain/entity"
)

// Quantity por debajo del umbral → alerta activa.
func TestClassify_BajoElUmbral(t *testing.T) {
	status := depletion.Classify(&entity.Product{Quantity: 3, MinStockAlert: 5, EstimatedDaysLeft: 12})

	assert.True(t, status.IsLowStock)
	assert.Equal(t, 12, status.EstimatedDaysLeft)
	assert.Equal(t, 5, status.LowStockThreshold)
}

// Quantity exactamente en el umbral ya cuenta como stock bajo.
func TestClassify_ExactamenteEnElUmbral(t *testing.T) {
	status := depletion.Classify(&entity.Product{Quantity: 5, MinStockAlert: 5})
	assert.True(t, status.IsLowStock, "quantity == umbral debe disparar la alerta")
}

// Quantity por encima del umbral → sin alerta.
func TestClassify_SobreElUmbral(t *testing.T) {
	status := depletion.Classify(&entity.Product{Quantity: 6, MinStockAlert: 5})
	assert.False(t, status.IsLowStock)
}

// Stock agotado siempre es stock bajo.
func TestClassify_StockAgotado(t *testing.T) {
	status := depletion.Classify(&entity.Product{Quantity: 0, MinStockAlert: 5})
	assert.True(t, status.IsLowStock)
}
