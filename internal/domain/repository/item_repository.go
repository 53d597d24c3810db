package repository

import (
	"github.com/loudbaby/easyops-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ItemRepository define el puerto de persistencia para artículos del catálogo.
// El agregado Quantity solo debe mutarse vía ApplyQuantityDelta (incremento
// atómico en SQL), nunca con un read-modify-write en la aplicación.
type ItemRepository interface {
	Create(item *entity.Item) error
	GetByID(id string) (*entity.Item, error)
	// GetForUpdate bloquea la fila del artículo (SELECT FOR UPDATE); serializa
	// los movimientos concurrentes sobre el mismo artículo.
	GetForUpdate(id string) (*entity.Item, error)
	List(limit, offset int) ([]*entity.Item, error)
	Update(item *entity.Item) error
	Delete(id string) error
	// ApplyQuantityDelta aplica el delta al agregado con quantity = quantity + $delta
	// y devuelve la nueva cantidad agregada.
	ApplyQuantityDelta(id string, delta decimal.Decimal) (decimal.Decimal, error)
	// FindAutoDeductByBarcode resuelve un código del POS externo a los artículos
	// marcados auto_deduct. Puede devolver cero, uno o varios.
	FindAutoDeductByBarcode(barcode string) ([]*entity.Item, error)
}
