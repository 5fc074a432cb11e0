package depletion

import (
	"context"

	"github.com/jhoicas/Consumibles-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza la atomicidad evento + decremento:
// o ambas escrituras quedan, o ninguna.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		eventRepo repository.UsageEventRepository,
		productRepo repository.ProductRepository,
	) error) error
}
