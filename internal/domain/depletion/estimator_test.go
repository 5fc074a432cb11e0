package depletion_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Consumibles-api/internal/domain/depletion"
	"github.com/jhoicas/Consumibles-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

// productAged construye un producto con la antigüedad y los contadores dados.
func productAged(quantity, usageCount int, ageDays float64) *entity.Product {
	created := testNow.Add(-time.Duration(ageDays * 24 * float64(time.Hour)))
	return &entity.Product{
		ID:         "prod-1",
		Quantity:   quantity,
		UsageCount: usageCount,
		CreatedAt:  created,
	}
}

// eventsAt construye un historial con un evento por cada fecha dada.
func eventsAt(dates ...time.Time) []*entity.UsageEvent {
	evs := make([]*entity.UsageEvent, 0, len(dates))
	for i, d := range dates {
		evs = append(evs, &entity.UsageEvent{
			ID:        string(rune('a' + i)),
			ProductID: "prod-1",
			Date:      d,
		})
	}
	return evs
}

// ──────────────────────────────────────────────────────────────────────────────
// Estrategia canónica: count_over_age
// ──────────────────────────────────────────────────────────────────────────────

// Producto de 60 días con 10 usos: 10 / 2 meses = 5 usos/mes;
// con 5 unidades restantes, 5 / (5/30) = 30 días.
func TestEstimateRate_CountOverAge_DosMeses(t *testing.T) {
	p := productAged(5, 10, 60)
	est := depletion.EstimateRate(depletion.StrategyCountOverAge, nil, p, testNow)

	assert.InDelta(t, 5.0, est.AverageUsesPerMonth, 1e-9)
	assert.Equal(t, 30, est.EstimatedDaysLeft)
}

// Producto recién creado: el denominador se fija a 1 mes, nunca menos.
// 5 usos en 5 días cuentan como 5 usos/mes, no 30.
func TestEstimateRate_CountOverAge_ProductoNuevoDenominadorMinimo(t *testing.T) {
	p := productAged(10, 5, 5)
	est := depletion.EstimateRate(depletion.StrategyCountOverAge, nil, p, testNow)

	assert.InDelta(t, 5.0, est.AverageUsesPerMonth, 1e-9,
		"con menos de un mes de antigüedad el denominador es 1 mes")
	// 10 / (5/30) = 60 días
	assert.Equal(t, 60, est.EstimatedDaysLeft)
}

// Sin usos registrados la tasa es 0 y no hay estimación de días.
func TestEstimateRate_CountOverAge_SinUsos(t *testing.T) {
	p := productAged(10, 0, 90)
	est := depletion.EstimateRate(depletion.StrategyCountOverAge, nil, p, testNow)

	assert.Zero(t, est.AverageUsesPerMonth)
	assert.Zero(t, est.EstimatedDaysLeft, "tasa cero: sin estimación, no infinito")
}

// Stock agotado: aunque haya tasa, días restantes es 0.
func TestEstimateRate_CountOverAge_SinStock(t *testing.T) {
	p := productAged(0, 12, 60)
	est := depletion.EstimateRate(depletion.StrategyCountOverAge, nil, p, testNow)

	assert.InDelta(t, 6.0, est.AverageUsesPerMonth, 1e-9)
	assert.Zero(t, est.EstimatedDaysLeft)
}

// El redondeo de días es al entero más cercano, no truncamiento.
func TestEstimateRate_CountOverAge_Redondeo(t *testing.T) {
	// 7 usos / 2 meses = 3.5/mes; 4 / (3.5/30) = 34.28... → 34
	p := productAged(4, 7, 60)
	est := depletion.EstimateRate(depletion.StrategyCountOverAge, nil, p, testNow)
	assert.Equal(t, 34, est.EstimatedDaysLeft)
}

// ──────────────────────────────────────────────────────────────────────────────
// Estrategia alternativa: span_over_history
// ──────────────────────────────────────────────────────────────────────────────

// 3 eventos repartidos en 30 días: 3 / 1 mes = 3 usos/mes.
func TestEstimateRate_SpanOverHistory_TresEventosEnUnMes(t *testing.T) {
	history := eventsAt(
		testNow.AddDate(0, 0, -30),
		testNow.AddDate(0, 0, -15),
		testNow,
	)
	p := productAged(6, 3, 90)
	est := depletion.EstimateRate(depletion.StrategySpanOverHistory, history, p, testNow)

	assert.InDelta(t, 3.0, est.AverageUsesPerMonth, 1e-9)
	// 6 / (3/30) = 60 días
	assert.Equal(t, 60, est.EstimatedDaysLeft)
}

// El historial puede llegar desordenado: el rango se calcula con min/max
// explícitos, no asumiendo orden cronológico.
func TestEstimateRate_SpanOverHistory_HistorialDesordenado(t *testing.T) {
	history := eventsAt(
		testNow.AddDate(0, 0, -15),
		testNow,
		testNow.AddDate(0, 0, -30),
	)
	p := productAged(6, 3, 90)
	est := depletion.EstimateRate(depletion.StrategySpanOverHistory, history, p, testNow)

	assert.InDelta(t, 3.0, est.AverageUsesPerMonth, 1e-9,
		"el orden de los eventos no debe afectar la tasa")
}

// Con menos de 2 eventos no hay rango y la tasa es 0.
func TestEstimateRate_SpanOverHistory_MenosDeDosEventos(t *testing.T) {
	p := productAged(6, 1, 90)

	est := depletion.EstimateRate(depletion.StrategySpanOverHistory, nil, p, testNow)
	assert.Zero(t, est.AverageUsesPerMonth)
	assert.Zero(t, est.EstimatedDaysLeft)

	est = depletion.EstimateRate(depletion.StrategySpanOverHistory, eventsAt(testNow), p, testNow)
	assert.Zero(t, est.AverageUsesPerMonth)
	assert.Zero(t, est.EstimatedDaysLeft)
}

// Dos eventos con la misma fecha: rango cero, tasa 0 (no división entre cero).
func TestEstimateRate_SpanOverHistory_RangoCero(t *testing.T) {
	history := eventsAt(testNow, testNow)
	p := productAged(6, 2, 90)
	est := depletion.EstimateRate(depletion.StrategySpanOverHistory, history, p, testNow)

	assert.Zero(t, est.AverageUsesPerMonth)
	assert.Zero(t, est.EstimatedDaysLeft)
}
