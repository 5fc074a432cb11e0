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

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, store_id, brand, name, color_code, color_name, type, price,
		quantity, usage_count, min_stock_alert, last_used, average_uses_per_month,
		estimated_days_left, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto. UsageCount inicia en 0.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.StoreID, product.Brand, product.Name,
		product.ColorCode, product.ColorName, product.Type, product.Price,
		product.Quantity, product.UsageCount, product.MinStockAlert,
		product.LastUsed, product.AverageUsesPerMonth, product.EstimatedDaysLeft,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return r.scanOne(query, id)
}

// GetForUpdate obtiene el producto y bloquea su fila (SELECT FOR UPDATE).
// Serializa el ciclo leer-verificar-decrementar del motor de agotamiento:
// dos usos concurrentes sobre la última unidad se ordenan aquí.
func (r *ProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 FOR UPDATE`
	return r.scanOne(query, id)
}

func (r *ProductRepo) scanOne(query string, args ...any) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&p.ID, &p.StoreID, &p.Brand, &p.Name, &p.ColorCode, &p.ColorName,
		&p.Type, &p.Price, &p.Quantity, &p.UsageCount, &p.MinStockAlert,
		&p.LastUsed, &p.AverageUsesPerMonth, &p.EstimatedDaysLeft,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// Update aplica una edición de catálogo. No escribe UsageCount, LastUsed ni
// campos derivados: esos son exclusivos de UpdateUsage.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products
		SET brand = $2, name = $3, color_code = $4, color_name = $5, type = $6,
			price = $7, quantity = $8, min_stock_alert = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Brand, product.Name, product.ColorCode, product.ColorName,
		product.Type, product.Price, product.Quantity, product.MinStockAlert, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// UpdateUsage persiste la mutación del motor de agotamiento: decremento,
// contador, última fecha de uso y métricas derivadas.
func (r *ProductRepo) UpdateUsage(product *entity.Product) error {
	query := `
		UPDATE products
		SET quantity = $2, usage_count = $3, last_used = $4,
			average_uses_per_month = $5, estimated_days_left = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Quantity, product.UsageCount, product.LastUsed,
		product.AverageUsesPerMonth, product.EstimatedDaysLeft, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product usage: %w", err)
	}
	return nil
}

// ListByStore lista productos por tienda con paginación.
func (r *ProductRepo) ListByStore(storeID string, limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + `
		FROM products WHERE store_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.scanMany(query, storeID, limit, offset)
}

// ListLowStock lista los productos de la tienda en o bajo su umbral de alerta.
func (r *ProductRepo) ListLowStock(storeID string) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + `
		FROM products WHERE store_id = $1 AND quantity <= min_stock_alert
		ORDER BY quantity ASC`
	return r.scanMany(query, storeID)
}

func (r *ProductRepo) scanMany(query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(
			&p.ID, &p.StoreID, &p.Brand, &p.Name, &p.ColorCode, &p.ColorName,
			&p.Type, &p.Price, &p.Quantity, &p.UsageCount, &p.MinStockAlert,
			&p.LastUsed, &p.AverageUsesPerMonth, &p.EstimatedDaysLeft,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}
