package reports

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/Consumibles-api/internal/domain"
	"github.com/jhoicas/Consumibles-api/internal/domain/entity"
	"github.com/jhoicas/Consumibles-api/internal/domain/repository"
)

// LowStockReportGenerator renderiza el reporte de stock bajo (puerto hacia
// infraestructura; la implementación usa Maroto).
type LowStockReportGenerator interface {
	GenerateLowStockPDF(ctx context.Context, store *entity.Store, products []*entity.Product, now time.Time) ([]byte, error)
}

// LowStockReportUseCase arma el reporte PDF de productos en o bajo su umbral
// de alerta, ordenados del más urgente al menos urgente.
type LowStockReportUseCase struct {
	productRepo repository.ProductRepository
	storeRepo   repository.StoreRepository
	generator   LowStockReportGenerator
}

// NewLowStockReportUseCase construye el caso de uso.
func NewLowStockReportUseCase(
	productRepo repository.ProductRepository,
	storeRepo repository.StoreRepository,
	generator LowStockReportGenerator,
) *LowStockReportUseCase {
	return &LowStockReportUseCase{productRepo: productRepo, storeRepo: storeRepo, generator: generator}
}

// Generate devuelve los bytes del PDF para la tienda indicada.
func (uc *LowStockReportUseCase) Generate(ctx context.Context, storeID string) ([]byte, error) {
	store, err := uc.storeRepo.GetByID(storeID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.ErrNotFound
	}
	products, err := uc.productRepo.ListLowStock(storeID)
	if err != nil {
		return nil, err
	}

	// Más urgente primero: menos días estimados (0 = sin estimación, va al
	// final de su grupo por cantidad), luego menor cantidad restante.
	sort.SliceStable(products, func(i, j int) bool {
		a, b := products[i], products[j]
		ua, ub := urgency(a), urgency(b)
		if ua != ub {
			return ua < ub
		}
		return a.Quantity < b.Quantity
	})

	return uc.generator.GenerateLowStockPDF(ctx, store, products, time.Now())
}

// urgency: días restantes estimados; sin tasa de consumo no hay estimación y
// el producto se ordena después de los que sí la tienen.
func urgency(p *entity.Product) int {
	if p.AverageUsesPerMonth <= 0 {
		return int(^uint(0) >> 1) // MaxInt
	}
	return p.EstimatedDaysLeft
}
