package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/loudbaby/easyops-api/internal/domain/entity"
	"github.com/loudbaby/easyops-api/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo implementación del libro de inventario sobre PostgreSQL.
// La tabla inventory_log es append-only: sin UPDATE ni DELETE por fila.
type LedgerRepo struct {
	q Querier
}

// NewLedgerRepository construye el adaptador del libro. Pasar pool o tx (Querier).
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

// Append persiste una entrada inmutable. Con delta cero no se inserta nada:
// un movimiento que no cambió stock no deja rastro en el libro.
func (r *LedgerRepo) Append(entry *entity.LedgerEntry) error {
	if entry.QuantityDelta.IsZero() {
		return nil
	}
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	query := `
		INSERT INTO inventory_log (id, item_id, change_type, quantity_delta, unit_cost, user_id, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	userID := (*string)(nil)
	if entry.UserID != "" {
		userID = &entry.UserID
	}
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.ItemID, entry.ChangeType, entry.QuantityDelta,
		entry.UnitCost, userID, entry.Notes, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("append ledger entry: %w", err)
	}
	return nil
}

// ListByItem devuelve la historia del artículo, más reciente primero.
func (r *LedgerRepo) ListByItem(itemID string, limit, offset int) ([]*entity.LedgerEntry, error) {
	query := `
		SELECT id, item_id, change_type, quantity_delta, unit_cost, COALESCE(user_id, ''), notes, created_at
		FROM inventory_log
		WHERE item_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, itemID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list ledger: %w", err)
	}
	defer rows.Close()
	var list []*entity.LedgerEntry
	for rows.Next() {
		var e entity.LedgerEntry
		if err := rows.Scan(&e.ID, &e.ItemID, &e.ChangeType, &e.QuantityDelta,
			&e.UnitCost, &e.UserID, &e.Notes, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// SumDeltaByItem suma todos los deltas del artículo (auditoría de conservación).
func (r *LedgerRepo) SumDeltaByItem(itemID string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(quantity_delta), 0) FROM inventory_log WHERE item_id = $1`, itemID,
	).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum ledger deltas: %w", err)
	}
	return sum, nil
}

// DeleteByItem borra la historia del artículo (solo borrado en cascada del artículo).
func (r *LedgerRepo) DeleteByItem(itemID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM inventory_log WHERE item_id = $1`, itemID)
	if err != nil {
		return fmt.Errorf("delete ledger by item: %w", err)
	}
	return nil
}
