package webhook

import (
	"context"
	"time"

	"github.com/loudbaby/easyops-api/internal/domain/repository"
)

// SignatureVerifier valida la autenticidad de una entrega de webhook.
type SignatureVerifier interface {
	Verify(signature, timestamp, requestURL string, body []byte) bool
}

// TxRunner abre la transacción del ingestor: registro del evento y
// deducciones de stock comparten una sola tx (record-before-mutate).
type TxRunner interface {
	RunWebhook(ctx context.Context, fn func(
		ledgerRepo repository.LedgerRepository,
		stockRepo repository.StockRepository,
		itemRepo repository.ItemRepository,
		saleRepo repository.SaleRepository,
		eventRepo repository.WebhookEventRepository,
	) error) error
}

// DedupCache es el atajo de deduplicación (Redis). Es solo consultivo: la
// garantía autoritativa es el constraint único de webhook_events.
type DedupCache interface {
	IsProcessed(ctx context.Context, eventID string) (bool, error)
	MarkProcessed(ctx context.Context, eventID string, ttl time.Duration) (bool, error)
}
