package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Consumibles-api/internal/domain"
	"github.com/jhoicas/Consumibles-api/internal/domain/entity"
	"github.com/jhoicas/Consumibles-api/internal/domain/repository"
)

var _ repository.StoreRepository = (*StoreRepo)(nil)

// StoreRepo implementación de StoreRepository sobre PostgreSQL (usable con pool o tx).
type StoreRepo struct {
	q Querier
}

// NewStoreRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStoreRepository(q Querier) *StoreRepo {
	return &StoreRepo{q: q}
}

// Create persiste una nueva tienda.
func (r *StoreRepo) Create(store *entity.Store) error {
	query := `
		INSERT INTO stores (id, name, code, admin_email, phone, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		store.ID, store.Name, store.Code, store.AdminEmail,
		store.Phone, store.Address, store.CreatedAt, store.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert store: %w", err)
	}
	return nil
}

// GetByID obtiene una tienda por ID.
func (r *StoreRepo) GetByID(id string) (*entity.Store, error) {
	return r.scanOne(`SELECT id, name, code, admin_email, phone, address, created_at, updated_at
		FROM stores WHERE id = $1`, id)
}

// GetByCode obtiene una tienda por su código único.
func (r *StoreRepo) GetByCode(code string) (*entity.Store, error) {
	return r.scanOne(`SELECT id, name, code, admin_email, phone, address, created_at, updated_at
		FROM stores WHERE code = $1`, code)
}

func (r *StoreRepo) scanOne(query string, args ...any) (*entity.Store, error) {
	var s entity.Store
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&s.ID, &s.Name, &s.Code, &s.AdminEmail, &s.Phone, &s.Address, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get store: %w", err)
	}
	return &s, nil
}

// Update actualiza los datos de contacto de la tienda (no el código).
func (r *StoreRepo) Update(store *entity.Store) error {
	query := `
		UPDATE stores SET name = $2, phone = $3, address = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		store.ID, store.Name, store.Phone, store.Address, store.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update store: %w", err)
	}
	return nil
}
