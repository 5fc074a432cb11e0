package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jhoicas/Consumibles-api/internal/domain/entity"
	"github.com/jhoicas/Consumibles-api/internal/domain/repository"
)

var _ repository.UsageEventRepository = (*UsageEventRepo)(nil)

// UsageEventRepo implementación del log de usos sobre PostgreSQL (usable con pool o tx).
// Append-only: no expone update de eventos históricos.
type UsageEventRepo struct {
	q Querier
}

// NewUsageEventRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUsageEventRepository(q Querier) *UsageEventRepo {
	return &UsageEventRepo{q: q}
}

// Create persiste un evento de uso.
func (r *UsageEventRepo) Create(event *entity.UsageEvent) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	query := `
		INSERT INTO usage_events (id, product_id, date, note)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query,
		event.ID, event.ProductID, event.Date, event.Note,
	)
	if err != nil {
		return fmt.Errorf("create usage event: %w", err)
	}
	return nil
}

// ListByProduct lista los eventos de un producto, más reciente primero.
func (r *UsageEventRepo) ListByProduct(productID string, limit, offset int) ([]*entity.UsageEvent, error) {
	query := `
		SELECT id, product_id, date, note
		FROM usage_events WHERE product_id = $1
		ORDER BY date DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list usage events: %w", err)
	}
	defer rows.Close()
	var list []*entity.UsageEvent
	for rows.Next() {
		var ev entity.UsageEvent
		if err := rows.Scan(&ev.ID, &ev.ProductID, &ev.Date, &ev.Note); err != nil {
			return nil, fmt.Errorf("scan usage event: %w", err)
		}
		list = append(list, &ev)
	}
	return list, rows.Err()
}

// CountByProduct cuenta los eventos de un producto.
func (r *UsageEventRepo) CountByProduct(productID string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM usage_events WHERE product_id = $1`, productID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count usage events: %w", err)
	}
	return count, nil
}

// DeleteByProduct elimina los eventos de un producto (cascada del borrado de catálogo).
func (r *UsageEventRepo) DeleteByProduct(productID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM usage_events WHERE product_id = $1`, productID,
	)
	if err != nil {
		return fmt.Errorf("delete usage events: %w", err)
	}
	return nil
}
