package depletion

import (
	"context"

	"github.com/jhoicas/Consumibles-api/internal/application/dto"
	"github.com/jhoicas/Consumibles-api/internal/domain"
	"github.com/jhoicas/Consumibles-api/internal/domain/repository"
)

// UsageHistoryUseCase consulta de solo lectura sobre el log de usos.
// Lee fuera de transacción: el log es append-only y no requiere bloqueo.
type UsageHistoryUseCase struct {
	eventRepo   repository.UsageEventRepository
	productRepo repository.ProductRepository
}

// NewUsageHistoryUseCase construye el caso de uso.
func NewUsageHistoryUseCase(eventRepo repository.UsageEventRepository, productRepo repository.ProductRepository) *UsageHistoryUseCase {
	return &UsageHistoryUseCase{eventRepo: eventRepo, productRepo: productRepo}
}

// ListByProduct devuelve el historial de usos del producto, más reciente
// primero, verificando que el producto pertenezca a la tienda del caller.
func (uc *UsageHistoryUseCase) ListByProduct(ctx context.Context, storeID, productID string, page dto.PageRequest) (*dto.UsageHistoryResponse, error) {
	page.DefaultPage()

	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.StoreID != storeID {
		return nil, domain.ErrNotFound
	}

	events, err := uc.eventRepo.ListByProduct(productID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.eventRepo.CountByProduct(productID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.UsageEventResponse, 0, len(events))
	for _, ev := range events {
		items = append(items, toUsageEventResponse(ev))
	}
	return &dto.UsageHistoryResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}
