package repository

import "github.com/jhoicas/Consumibles-api/internal/domain/entity"

// UsageEventRepository define el puerto de persistencia para el log de usos.
// El log es append-only: Create es la única mutación que ve el motor;
// DeleteByProduct existe solo para la eliminación en cascada del producto.
type UsageEventRepository interface {
	Create(event *entity.UsageEvent) error
	// ListByProduct devuelve los eventos del producto ordenados por fecha
	// descendente (más reciente primero).
	ListByProduct(productID string, limit, offset int) ([]*entity.UsageEvent, error)
	CountByProduct(productID string) (int, error)
	DeleteByProduct(productID string) error
}
