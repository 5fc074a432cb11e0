package repository

import "github.com/jhoicas/Consumibles-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
// Update es la edición de catálogo y nunca escribe UsageCount ni los campos
// derivados; UpdateUsage es exclusivo del motor de agotamiento.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE) para
	// serializar el ciclo leer-verificar-decrementar dentro de una transacción.
	GetForUpdate(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	UpdateUsage(product *entity.Product) error
	ListByStore(storeID string, limit, offset int) ([]*entity.Product, error)
	ListLowStock(storeID string) ([]*entity.Product, error)
	Delete(id string) error
}
