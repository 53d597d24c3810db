package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/loudbaby/easyops-api/internal/application/inventory"
	"github.com/loudbaby/easyops-api/internal/application/webhook"
	"github.com/loudbaby/easyops-api/internal/domain/repository"
)

// Ensure TxRunner implements inventory.TxRunner and webhook.TxRunner.
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ webhook.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. Es la unidad de atomicidad del motor de reconciliación.
func (r *TxRunner) Run(ctx context.Context, fn func(
	ledgerRepo repository.LedgerRepository,
	stockRepo repository.StockRepository,
	itemRepo repository.ItemRepository,
	saleRepo repository.SaleRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	ledgerRepo := NewLedgerRepository(tx)
	stockRepo := NewStockRepository(tx)
	itemRepo := NewItemRepository(tx)
	saleRepo := NewSaleRepository(tx)

	if err := fn(ledgerRepo, stockRepo, itemRepo, saleRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunWebhook inicia una transacción con los repos de inventario más el
// registro de eventos: el ingestor escribe el evento y las deducciones en la
// misma tx (record-before-mutate).
func (r *TxRunner) RunWebhook(ctx context.Context, fn func(
	ledgerRepo repository.LedgerRepository,
	stockRepo repository.StockRepository,
	itemRepo repository.ItemRepository,
	saleRepo repository.SaleRepository,
	eventRepo repository.WebhookEventRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	ledgerRepo := NewLedgerRepository(tx)
	stockRepo := NewStockRepository(tx)
	itemRepo := NewItemRepository(tx)
	saleRepo := NewSaleRepository(tx)
	eventRepo := NewWebhookEventRepository(tx)

	if err := fn(ledgerRepo, stockRepo, itemRepo, saleRepo, eventRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
