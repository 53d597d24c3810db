package repository

import (
	"github.com/loudbaby/easyops-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// LedgerRepository define el puerto del libro de inventario (append-only).
type LedgerRepository interface {
	// Append persiste una entrada inmutable. Un delta cero es un no-op trivial:
	// no se inserta nada y se devuelve éxito.
	Append(entry *entity.LedgerEntry) error
	ListByItem(itemID string, limit, offset int) ([]*entity.LedgerEntry, error)
	// SumDeltaByItem suma todos los deltas del artículo; usada en la auditoría
	// de conservación (suma de deltas == agregado actual).
	SumDeltaByItem(itemID string) (decimal.Decimal, error)
	DeleteByItem(itemID string) error
}
