package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SummaryResponse resumen del tablero: valorización y artículos bajo umbral.
type SummaryResponse struct {
	InventoryValue decimal.Decimal `json:"inventory_value"`
	LowStockCount  int             `json:"low_stock_count"`
}

// COGSResponse costo de lo vendido en un periodo.
type COGSResponse struct {
	From time.Time       `json:"from"`
	To   time.Time       `json:"to"`
	COGS decimal.Decimal `json:"cogs"`
}

// SalesBySourceResponse totales de venta de un periodo por origen.
type SalesBySourceResponse struct {
	Source string          `json:"source"`
	Count  int64           `json:"count"`
	Total  decimal.Decimal `json:"total"`
}

// ActivityEntryResponse fila del feed de actividad del libro.
type ActivityEntryResponse struct {
	EntryID       string          `json:"entry_id"`
	ItemID        string          `json:"item_id"`
	ItemName      string          `json:"item_name"`
	ChangeType    string          `json:"change_type"`
	QuantityDelta decimal.Decimal `json:"quantity_delta"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	UserName      string          `json:"user_name,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// DriftRowResponse artículo cuyas representaciones de stock difieren.
type DriftRowResponse struct {
	ItemID      string          `json:"item_id"`
	Name        string          `json:"name"`
	Aggregate   decimal.Decimal `json:"aggregate"`
	LocationSum decimal.Decimal `json:"location_sum"`
	LedgerSum   decimal.Decimal `json:"ledger_sum"`
}
