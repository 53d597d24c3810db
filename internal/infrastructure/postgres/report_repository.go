package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/loudbaby/easyops-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo implementación de consultas de reporte de solo lectura.
// La agregación pesada se queda en la base de datos, no en Go.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de reportes. Pasar pool o tx (Querier).
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// InventoryValue devuelve Σ cantidad × costo unitario de todo el inventario.
func (r *ReportRepo) InventoryValue() (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(quantity * cost_per_unit), 0) FROM items`,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("inventory value: %w", err)
	}
	return total, nil
}

// LowStockItems devuelve artículos en o por debajo de su umbral de alerta
// (umbral cero o negativo significa sin alerta).
func (r *ReportRepo) LowStockItems() ([]*repository.LowStockItem, error) {
	query := `
		SELECT id, name, quantity, alert_threshold, unit
		FROM items
		WHERE alert_threshold > 0 AND quantity <= alert_threshold
		ORDER BY quantity / alert_threshold, name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("low stock items: %w", err)
	}
	defer rows.Close()
	var list []*repository.LowStockItem
	for rows.Next() {
		var it repository.LowStockItem
		if err := rows.Scan(&it.ItemID, &it.Name, &it.Quantity, &it.AlertThreshold, &it.Unit); err != nil {
			return nil, fmt.Errorf("scan low stock item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// COGS suma el costo de lo vendido en el periodo: entradas SALE del libro,
// valuadas con el costo foto de cada entrada.
func (r *ReportRepo) COGS(from, to time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(-quantity_delta * unit_cost), 0)
		FROM inventory_log
		WHERE change_type = 'SALE' AND created_at >= $1 AND created_at < $2`
	var total decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, from, to).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("cogs: %w", err)
	}
	return total, nil
}

// SalesBySource totaliza las ventas del periodo agrupadas por origen.
func (r *ReportRepo) SalesBySource(from, to time.Time) ([]*repository.SalesBySourceRow, error) {
	query := `
		SELECT source, COUNT(*), COALESCE(SUM(quantity * unit_price), 0)
		FROM sales
		WHERE created_at >= $1 AND created_at < $2
		GROUP BY source
		ORDER BY source`
	rows, err := r.q.Query(context.Background(), query, from, to)
	if err != nil {
		return nil, fmt.Errorf("sales by source: %w", err)
	}
	defer rows.Close()
	var list []*repository.SalesBySourceRow
	for rows.Next() {
		var s repository.SalesBySourceRow
		if err := rows.Scan(&s.Source, &s.Count, &s.Total); err != nil {
			return nil, fmt.Errorf("scan sales by source: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// ActivityFeed pagina el libro en orden cronológico inverso, con el nombre del
// artículo y del usuario que actuó. itemID vacío = feed global.
func (r *ReportRepo) ActivityFeed(itemID string, limit, offset int) ([]*repository.ActivityEntry, error) {
	query := `
		SELECT il.id, il.item_id, i.name, il.change_type, il.quantity_delta,
		       il.unit_cost, COALESCE(p.display_name, ''), il.notes, il.created_at
		FROM inventory_log il
		JOIN items i ON i.id = il.item_id
		LEFT JOIN profiles p ON p.id = il.user_id
		WHERE ($1 = '' OR il.item_id = $1)
		ORDER BY il.created_at DESC, il.id DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, itemID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("activity feed: %w", err)
	}
	defer rows.Close()
	var list []*repository.ActivityEntry
	for rows.Next() {
		var e repository.ActivityEntry
		if err := rows.Scan(&e.EntryID, &e.ItemID, &e.ItemName, &e.ChangeType,
			&e.QuantityDelta, &e.UnitCost, &e.UserName, &e.Notes, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity entry: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// DriftAudit compara las tres representaciones de stock por artículo y devuelve
// solo las filas donde alguna difiere.
func (r *ReportRepo) DriftAudit() ([]*repository.DriftRow, error) {
	query := `
		SELECT i.id, i.name, i.quantity,
		       COALESCE(loc.total, 0) AS location_sum,
		       COALESCE(log.total, 0) AS ledger_sum
		FROM items i
		LEFT JOIN (SELECT item_id, SUM(quantity) AS total FROM item_locations GROUP BY item_id) loc
			ON loc.item_id = i.id
		LEFT JOIN (SELECT item_id, SUM(quantity_delta) AS total FROM inventory_log GROUP BY item_id) log
			ON log.item_id = i.id
		WHERE i.quantity <> COALESCE(loc.total, 0) OR i.quantity <> COALESCE(log.total, 0)
		ORDER BY i.name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("drift audit: %w", err)
	}
	defer rows.Close()
	var list []*repository.DriftRow
	for rows.Next() {
		var d repository.DriftRow
		if err := rows.Scan(&d.ItemID, &d.Name, &d.Aggregate, &d.LocationSum, &d.LedgerSum); err != nil {
			return nil, fmt.Errorf("scan drift row: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// HealAggregates re-suma las filas por ubicación hacia el agregado de cada
// artículo desviado y devuelve cuántos corrigió.
func (r *ReportRepo) HealAggregates() (int64, error) {
	query := `
		UPDATE items i
		SET quantity = COALESCE(loc.total, 0), updated_at = now()
		FROM (SELECT item_id, SUM(quantity) AS total FROM item_locations GROUP BY item_id) loc
		WHERE loc.item_id = i.id AND i.quantity <> loc.total`
	tag, err := r.q.Exec(context.Background(), query)
	if err != nil {
		return 0, fmt.Errorf("heal aggregates: %w", err)
	}
	return tag.RowsAffected(), nil
}
