package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/loudbaby/easyops-api/internal/domain/entity"
	"github.com/loudbaby/easyops-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene el stock actual de un artículo en una ubicación (cero si no hay fila).
func (r *StockRepo) Get(itemID, locationID string) (*entity.ItemLocationStock, error) {
	query := `
		SELECT item_id, location_id, quantity, updated_at
		FROM item_locations WHERE item_id = $1 AND location_id = $2`
	var s entity.ItemLocationStock
	err := r.q.QueryRow(context.Background(), query, itemID, locationID).Scan(
		&s.ItemID, &s.LocationID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.ItemLocationStock{ItemID: itemID, LocationID: locationID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// GetForUpdate obtiene el stock y bloquea la fila para update (SELECT FOR UPDATE).
func (r *StockRepo) GetForUpdate(itemID, locationID string) (*entity.ItemLocationStock, error) {
	query := `
		SELECT item_id, location_id, quantity, updated_at
		FROM item_locations WHERE item_id = $1 AND location_id = $2
		FOR UPDATE`
	var s entity.ItemLocationStock
	err := r.q.QueryRow(context.Background(), query, itemID, locationID).Scan(
		&s.ItemID, &s.LocationID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.ItemLocationStock{ItemID: itemID, LocationID: locationID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return &s, nil
}

// ListByItemForUpdate devuelve y bloquea todas las filas del artículo:
// la ubicación predeterminada primero, luego por cantidad descendente.
func (r *StockRepo) ListByItemForUpdate(itemID string) ([]*entity.ItemLocationStock, error) {
	query := `
		SELECT il.item_id, il.location_id, il.quantity, il.updated_at
		FROM item_locations il
		JOIN locations l ON l.id = il.location_id
		WHERE il.item_id = $1
		ORDER BY l.is_default DESC, il.quantity DESC
		FOR UPDATE OF il`
	rows, err := r.q.Query(context.Background(), query, itemID)
	if err != nil {
		return nil, fmt.Errorf("list stock for update: %w", err)
	}
	defer rows.Close()
	var list []*entity.ItemLocationStock
	for rows.Next() {
		var s entity.ItemLocationStock
		if err := rows.Scan(&s.ItemID, &s.LocationID, &s.Quantity, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// ApplyDelta hace upsert con incremento atómico (quantity = quantity + delta)
// y devuelve la nueva cantidad de la fila.
func (r *StockRepo) ApplyDelta(itemID, locationID string, delta decimal.Decimal) (decimal.Decimal, error) {
	query := `
		INSERT INTO item_locations (item_id, location_id, quantity, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (item_id, location_id)
		DO UPDATE SET quantity = item_locations.quantity + EXCLUDED.quantity, updated_at = now()
		RETURNING quantity`
	var newQty decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, itemID, locationID, delta).Scan(&newQty)
	if err != nil {
		return decimal.Zero, fmt.Errorf("apply stock delta: %w", err)
	}
	return newQty, nil
}

// SumByItem suma las filas por ubicación del artículo.
func (r *StockRepo) SumByItem(itemID string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(quantity), 0) FROM item_locations WHERE item_id = $1`, itemID,
	).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum stock: %w", err)
	}
	return sum, nil
}

// DeleteByItem elimina las filas de stock del artículo (borrado en cascada).
func (r *StockRepo) DeleteByItem(itemID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM item_locations WHERE item_id = $1`, itemID)
	if err != nil {
		return fmt.Errorf("delete stock by item: %w", err)
	}
	return nil
}
