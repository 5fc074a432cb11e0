package repository

import "github.com/jhoicas/Consumibles-api/internal/domain/entity"

// StoreRepository define el puerto de persistencia para Store.
type StoreRepository interface {
	Create(store *entity.Store) error
	GetByID(id string) (*entity.Store, error)
	GetByCode(code string) (*entity.Store, error)
	Update(store *entity.Store) error
}
