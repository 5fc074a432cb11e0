package depletion

import (
	"math"
	"time"

	"github.com/jhoicas/Consumibles-api/internal/domain/entity"
)

// Strategy identifica la fórmula de consumo mensual promedio. La estrategia
// activa se fija por configuración y se aplica en todos los caminos de código.
type Strategy string

const (
	// StrategyCountOverAge divide el total de usos entre la antigüedad del
	// producto (meses desde CreatedAt, mínimo 1). Es la estrategia canónica.
	StrategyCountOverAge Strategy = "count_over_age"
	// StrategySpanOverHistory divide el número de eventos entre los meses que
	// separan el evento más antiguo del más reciente del historial.
	StrategySpanOverHistory Strategy = "span_over_history"
)

// daysPerMonth: mes nominal de 30 días para ambas fórmulas.
const daysPerMonth = 30.0

// rateEpsilon: por debajo de esto la tasa se trata como "sin estimación"
// para no dividir entre cero ni producir infinitos.
const rateEpsilon = 1e-9

// Estimate es el resultado del estimador: tasa mensual y días restantes.
type Estimate struct {
	AverageUsesPerMonth float64
	EstimatedDaysLeft   int
}

// EstimateRate calcula la tasa de consumo mensual y los días restantes de un
// producto. Función pura de (historial, producto, now); no toca I/O.
func EstimateRate(strategy Strategy, history []*entity.UsageEvent, product *entity.Product, now time.Time) Estimate {
	var avg float64
	switch strategy {
	case StrategySpanOverHistory:
		avg = averageSpanOverHistory(history)
	default:
		avg = averageCountOverAge(product.UsageCount, product.CreatedAt, now)
	}
	return Estimate{
		AverageUsesPerMonth: avg,
		EstimatedDaysLeft:   daysLeft(product.Quantity, avg),
	}
}

// averageCountOverAge: usos totales / meses desde la creación.
// El denominador se fija a mínimo 1 mes para productos recién creados.
func averageCountOverAge(usageCount int, createdAt, now time.Time) float64 {
	if usageCount <= 0 {
		return 0
	}
	months := now.Sub(createdAt).Hours() / 24 / daysPerMonth
	if months < 1 {
		months = 1
	}
	return float64(usageCount) / months
}

// averageSpanOverHistory: eventos / meses entre el evento más antiguo y el más
// reciente. Con menos de 2 eventos o un rango no positivo la tasa es 0.
// Se recorre min/max explícitamente: el historial puede llegar desordenado.
func averageSpanOverHistory(history []*entity.UsageEvent) float64 {
	if len(history) < 2 {
		return 0
	}
	oldest, newest := history[0].Date, history[0].Date
	for _, ev := range history[1:] {
		if ev.Date.Before(oldest) {
			oldest = ev.Date
		}
		if ev.Date.After(newest) {
			newest = ev.Date
		}
	}
	months := newest.Sub(oldest).Hours() / 24 / daysPerMonth
	if months <= 0 {
		return 0
	}
	return float64(len(history)) / months
}

// daysLeft: round(quantity / (avg/30)). Sin tasa o sin stock no hay estimación.
func daysLeft(quantity int, avgPerMonth float64) int {
	if quantity <= 0 || avgPerMonth <= rateEpsilon {
		return 0
	}
	perDay := avgPerMonth / daysPerMonth
	return int(math.Round(float64(quantity) / perDay))
}
