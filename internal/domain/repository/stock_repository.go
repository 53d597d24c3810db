package repository

import (
	"github.com/loudbaby/easyops-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// StockRepository define el puerto para el stock por artículo+ubicación.
// Se usa dentro de transacciones del motor de reconciliación.
type StockRepository interface {
	Get(itemID, locationID string) (*entity.ItemLocationStock, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	// Si no existe devuelve una fila en cero.
	GetForUpdate(itemID, locationID string) (*entity.ItemLocationStock, error)
	// ListByItemForUpdate devuelve y bloquea todas las filas del artículo,
	// la ubicación predeterminada primero y luego por cantidad descendente.
	ListByItemForUpdate(itemID string) ([]*entity.ItemLocationStock, error)
	// ApplyDelta hace upsert con quantity = quantity + $delta y devuelve la
	// nueva cantidad de la fila.
	ApplyDelta(itemID, locationID string, delta decimal.Decimal) (decimal.Decimal, error)
	SumByItem(itemID string) (decimal.Decimal, error)
	DeleteByItem(itemID string) error
}
