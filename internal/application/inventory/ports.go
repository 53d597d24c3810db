package inventory

import (
	"context"

	"github.com/loudbaby/easyops-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza la atomicidad del trío
// (stock por ubicación, agregado, libro) en cada movimiento.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		ledgerRepo repository.LedgerRepository,
		stockRepo repository.StockRepository,
		itemRepo repository.ItemRepository,
		saleRepo repository.SaleRepository,
	) error) error
}
