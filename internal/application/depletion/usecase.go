package depletion

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Consumibles-api/internal/application/dto"
	"github.com/jhoicas/Consumibles-api/internal/domain"
	domdepletion "github.com/jhoicas/Consumibles-api/internal/domain/depletion"
	"github.com/jhoicas/Consumibles-api/internal/domain/entity"
	"github.com/jhoicas/Consumibles-api/internal/domain/repository"
)

// RecordUsageUseCase registra el consumo de una unidad de forma transaccional:
// bloqueo de fila del producto (SELECT FOR UPDATE), verificación de stock,
// alta del evento, decremento y recálculo de métricas en un solo Commit.
type RecordUsageUseCase struct {
	txRunner     TxRunner
	strategy     domdepletion.Strategy
	historyLimit int
	now          func() time.Time
}

// RecordUsageInput comando de registro de uso. StoreID llega explícito desde
// los claims del token: el tracker nunca infiere el tenant de estado ambiente.
type RecordUsageInput struct {
	StoreID   string
	ProductID string
	Note      string
}

// NewRecordUsageUseCase construye el caso de uso.
func NewRecordUsageUseCase(txRunner TxRunner, strategy domdepletion.Strategy, historyLimit int) *RecordUsageUseCase {
	if historyLimit <= 0 {
		historyLimit = 500
	}
	return &RecordUsageUseCase{
		txRunner:     txRunner,
		strategy:     strategy,
		historyLimit: historyLimit,
		now:          time.Now,
	}
}

// WithClock reemplaza la fuente de tiempo (tests).
func (uc *RecordUsageUseCase) WithClock(now func() time.Time) *RecordUsageUseCase {
	uc.now = now
	return uc
}

// RecordUsage ejecuta el ciclo leer-verificar-decrementar como unidad atómica.
// Errores terminales: ErrNotFound (producto ausente o de otra tienda) y
// ErrOutOfStock (quantity <= 0, sin escrituras). Cualquier fallo de
// persistencia revierte la transacción completa: nunca queda un evento sin su
// decremento ni un decremento sin su evento.
func (uc *RecordUsageUseCase) RecordUsage(ctx context.Context, input RecordUsageInput) (*dto.RecordUsageResponse, error) {
	if input.ProductID == "" || input.StoreID == "" {
		return nil, domain.ErrInvalidInput
	}

	now := uc.now()
	var (
		event   *entity.UsageEvent
		product *entity.Product
	)

	err := uc.txRunner.Run(ctx, func(
		eventRepo repository.UsageEventRepository,
		productRepo repository.ProductRepository,
	) error {
		// Bloquea la fila del producto: dos usos concurrentes sobre la misma
		// unidad se serializan aquí y solo uno ve quantity > 0.
		p, err := productRepo.GetForUpdate(input.ProductID)
		if err != nil {
			return err
		}
		// El gateway de auth ya validó el tenant; se re-verifica igualmente y
		// un producto ajeno responde igual que uno inexistente.
		if p == nil || p.StoreID != input.StoreID {
			return domain.ErrNotFound
		}
		if p.Quantity <= 0 {
			return domain.ErrOutOfStock
		}

		ev := &entity.UsageEvent{
			ID:        uuid.New().String(),
			ProductID: p.ID,
			Date:      now,
		}
		if input.Note != "" {
			note := input.Note
			ev.Note = &note
		}
		if err := eventRepo.Create(ev); err != nil {
			return err
		}

		p.Quantity--
		p.UsageCount++
		p.LastUsed = &now

		// Historial refrescado dentro de la misma tx (incluye el evento recién
		// insertado: read-after-write).
		history, err := eventRepo.ListByProduct(p.ID, uc.historyLimit, 0)
		if err != nil {
			return err
		}
		est := domdepletion.EstimateRate(uc.strategy, history, p, now)
		p.AverageUsesPerMonth = est.AverageUsesPerMonth
		p.EstimatedDaysLeft = est.EstimatedDaysLeft
		p.UpdatedAt = now

		if err := productRepo.UpdateUsage(p); err != nil {
			return err
		}

		event = ev
		product = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	alert := domdepletion.Classify(product)
	return &dto.RecordUsageResponse{
		Event:   toUsageEventResponse(event),
		Product: toProductResponse(product),
		AlertStatus: dto.AlertStatusResponse{
			IsLowStock:        alert.IsLowStock,
			EstimatedDaysLeft: alert.EstimatedDaysLeft,
			LowStockThreshold: alert.LowStockThreshold,
		},
	}, nil
}

func toUsageEventResponse(ev *entity.UsageEvent) dto.UsageEventResponse {
	return dto.UsageEventResponse{
		ID:        ev.ID,
		ProductID: ev.ProductID,
		Date:      ev.Date,
		Note:      ev.Note,
	}
}

func toProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:                  p.ID,
		StoreID:             p.StoreID,
		Brand:               p.Brand,
		Name:                p.Name,
		ColorCode:           p.ColorCode,
		ColorName:           p.ColorName,
		Type:                p.Type,
		Price:               p.Price,
		Quantity:            p.Quantity,
		UsageCount:          p.UsageCount,
		MinStockAlert:       p.MinStockAlert,
		LastUsed:            p.LastUsed,
		AverageUsesPerMonth: p.AverageUsesPerMonth,
		EstimatedDaysLeft:   p.EstimatedDaysLeft,
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}
}
