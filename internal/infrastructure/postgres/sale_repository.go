package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/loudbaby/easyops-api/internal/domain/entity"
	"github.com/loudbaby/easyops-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository sobre PostgreSQL.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de ventas. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste una venta.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	if sale.ID == "" {
		sale.ID = uuid.New().String()
	}
	query := `
		INSERT INTO sales (id, item_id, quantity, unit_price, source, payment_method, customer_name, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	userID := (*string)(nil)
	if sale.UserID != "" {
		userID = &sale.UserID
	}
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.ItemID, sale.Quantity, sale.UnitPrice, sale.Source,
		sale.PaymentMethod, sale.CustomerName, userID, sale.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create sale: %w", err)
	}
	return nil
}

// ListRecent devuelve ventas ordenadas por fecha, más recientes primero.
func (r *SaleRepo) ListRecent(limit, offset int) ([]*entity.Sale, error) {
	query := `
		SELECT id, item_id, quantity, unit_price, source, payment_method, customer_name, COALESCE(user_id, ''), created_at
		FROM sales
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.ItemID, &s.Quantity, &s.UnitPrice, &s.Source,
			&s.PaymentMethod, &s.CustomerName, &s.UserID, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// DeleteByItem borra las ventas del artículo (solo borrado en cascada del artículo).
func (r *SaleRepo) DeleteByItem(itemID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM sales WHERE item_id = $1`, itemID)
	if err != nil {
		return fmt.Errorf("delete sales by item: %w", err)
	}
	return nil
}
