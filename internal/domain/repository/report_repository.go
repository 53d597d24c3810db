package repository

import (
	"time"

	"github.com/shopspring/decimal"
)

// ActivityEntry es una fila del feed de actividad: entrada del libro unida con
// el nombre del artículo y el nombre del usuario que actuó.
type ActivityEntry struct {
	EntryID       string
	ItemID        string
	ItemName      string
	ChangeType    string
	QuantityDelta decimal.Decimal
	UnitCost      decimal.Decimal
	UserName      string // vacío = sistema
	Notes         string
	CreatedAt     time.Time
}

// LowStockItem es un artículo en o por debajo de su umbral de alerta.
type LowStockItem struct {
	ItemID         string
	Name           string
	Quantity       decimal.Decimal
	AlertThreshold decimal.Decimal
	Unit           string
}

// DriftRow compara las tres representaciones de stock de un artículo.
// Con datos sanos las tres cantidades coinciden.
type DriftRow struct {
	ItemID      string
	Name        string
	Aggregate   decimal.Decimal // items.quantity
	LocationSum decimal.Decimal // suma de item_locations
	LedgerSum   decimal.Decimal // suma de deltas de inventory_log
}

// SalesBySourceRow totaliza las ventas de un periodo por origen
// (MANUAL, SQUARE, SYSTEM).
type SalesBySourceRow struct {
	Source string
	Count  int64
	Total  decimal.Decimal // Σ cantidad × precio unitario
}

// ReportRepository define el puerto de consultas de solo lectura
// (fachada de reportes; la agregación la hace la base de datos).
type ReportRepository interface {
	// InventoryValue devuelve la valorización total (Σ cantidad × costo unitario).
	InventoryValue() (decimal.Decimal, error)
	LowStockItems() ([]*LowStockItem, error)
	// COGS suma el costo de lo vendido en el periodo (entradas SALE del libro).
	COGS(from, to time.Time) (decimal.Decimal, error)
	// SalesBySource totaliza ventas del periodo agrupadas por origen.
	SalesBySource(from, to time.Time) ([]*SalesBySourceRow, error)
	// ActivityFeed pagina el libro en orden cronológico inverso; itemID vacío = global.
	ActivityFeed(itemID string, limit, offset int) ([]*ActivityEntry, error)
	// DriftAudit devuelve los artículos cuyas representaciones de stock difieren.
	DriftAudit() ([]*DriftRow, error)
	// HealAggregates re-suma las filas por ubicación hacia el agregado de cada
	// artículo y devuelve cuántos corrigió (job de reconciliación periódica).
	HealAggregates() (int64, error)
}
