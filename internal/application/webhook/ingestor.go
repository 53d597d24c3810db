package webhook

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/loudbaby/easyops-api/internal/application/inventory"
	"github.com/loudbaby/easyops-api/internal/domain"
	"github.com/loudbaby/easyops-api/internal/domain/entity"
	"github.com/loudbaby/easyops-api/internal/domain/repository"
	"github.com/loudbaby/easyops-api/pkg/logger"
)

// TTL del atajo de deduplicación en Redis. El registro durable en
// webhook_events no expira; el cache solo ahorra la transacción en replays.
const dedupTTL = 72 * time.Hour

// Ingestor convierte una notificación entrante del POS en cero o más
// auto-deducciones, exactamente una vez por orden externa.
//
// Máquina de estados por petición:
//
//	RECEIVED → VERIFIED → DEDUP_CHECKED → {DUPLICATE | PROCESSING → RECORDED → DONE}
//
// El registro del evento se escribe antes de cualquier mutación de stock y en
// la misma transacción: una caída no puede dejar "orden marcada pero stock sin
// mover" ni "stock movido dos veces".
type Ingestor struct {
	verifier SignatureVerifier
	txRunner TxRunner
	engine   *inventory.ReconciliationEngine
	dedup    DedupCache // opcional (nil = sin atajo)
	sandbox  bool
	log      *logger.Logger
}

// NewIngestor construye el ingestor. sandbox=true degrada una firma inválida a
// una advertencia (solo para entornos de prueba, nunca por defecto).
func NewIngestor(
	verifier SignatureVerifier,
	txRunner TxRunner,
	engine *inventory.ReconciliationEngine,
	dedup DedupCache,
	sandbox bool,
	log *logger.Logger,
) *Ingestor {
	return &Ingestor{
		verifier: verifier,
		txRunner: txRunner,
		engine:   engine,
		dedup:    dedup,
		sandbox:  sandbox,
		log:      log,
	}
}

// InboundRequest es la entrega cruda del webhook tal como llegó por HTTP.
type InboundRequest struct {
	Signature  string
	Timestamp  string
	RequestURL string
	Body       []byte
}

// IngestResult resume el procesamiento de una entrega.
type IngestResult struct {
	EventID    string
	EventType  string
	Duplicate  bool
	Deductions int // auto-deducciones aplicadas
	Skipped    int // renglones sin artículo auto-deduct correspondiente
	Failures   int // renglones con fallo (registrados, no bloquean la respuesta)
}

// Process ejecuta la máquina de estados completa para una entrega.
func (i *Ingestor) Process(ctx context.Context, req InboundRequest) (*IngestResult, error) {
	// RECEIVED → VERIFIED
	if !i.verifier.Verify(req.Signature, req.Timestamp, req.RequestURL, req.Body) {
		if !i.sandbox {
			return nil, domain.ErrSignatureInvalid
		}
		// Camino permisivo de sandbox: se acepta la entrega pero queda rastro.
		i.log.Warn().Msg("firma de webhook inválida aceptada en modo sandbox")
	}

	env, err := parseEnvelope(req.Body)
	if err != nil {
		return nil, err
	}
	order := env.Data.Object.Order
	result := &IngestResult{EventID: order.ID, EventType: env.Type}

	// VERIFIED → DEDUP_CHECKED (atajo consultivo; el constraint único decide)
	if i.dedup != nil {
		if seen, err := i.dedup.IsProcessed(ctx, order.ID); err == nil && seen {
			result.Duplicate = true
			return result, nil
		}
	}

	// DEDUP_CHECKED → PROCESSING → RECORDED
	err = i.txRunner.RunWebhook(ctx, func(
		ledgerRepo repository.LedgerRepository,
		stockRepo repository.StockRepository,
		itemRepo repository.ItemRepository,
		saleRepo repository.SaleRepository,
		eventRepo repository.WebhookEventRepository,
	) error {
		event := &entity.WebhookEvent{
			EventID:   order.ID,
			EventType: env.Type,
			Payload:   req.Body,
			CreatedAt: time.Now(),
		}
		if err := eventRepo.Create(event); err != nil {
			return err
		}
		i.processLineItems(ledgerRepo, stockRepo, itemRepo, saleRepo, order, result)
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEvent) {
			// Entrega repetida: éxito idempotente, sin reprocesar.
			result.Duplicate = true
			result.Deductions = 0
			result.Skipped = 0
			result.Failures = 0
			return result, nil
		}
		return nil, err
	}

	if i.dedup != nil {
		if _, err := i.dedup.MarkProcessed(ctx, order.ID, dedupTTL); err != nil {
			i.log.Warn().Err(err).Str("order_id", order.ID).Msg("no se pudo marcar el evento en el cache de deduplicación")
		}
	}

	i.log.Info().
		Str("order_id", order.ID).
		Str("event_type", env.Type).
		Int("deductions", result.Deductions).
		Int("skipped", result.Skipped).
		Int("failures", result.Failures).
		Msg("webhook procesado")
	return result, nil
}

// processLineItems resuelve cada renglón a artículos auto-deduct y aplica las
// deducciones en la transacción del caller. Un renglón que falla se registra y
// el bucle continúa: una orden parcialmente mala no debe hacer reintentar al
// proveedor; se repara después con un ajuste.
func (i *Ingestor) processLineItems(
	ledgerRepo repository.LedgerRepository,
	stockRepo repository.StockRepository,
	itemRepo repository.ItemRepository,
	saleRepo repository.SaleRepository,
	order *orderPayload,
	result *IngestResult,
) {
	for _, li := range order.LineItems {
		if li.CatalogObjectID == "" {
			result.Skipped++
			continue
		}
		qty, err := decimal.NewFromString(li.Quantity)
		if err != nil || !qty.GreaterThan(decimal.Zero) {
			i.log.Warn().Str("order_id", order.ID).Str("line_item", li.Name).Msg("cantidad de renglón inválida")
			result.Failures++
			continue
		}
		items, err := itemRepo.FindAutoDeductByBarcode(li.CatalogObjectID)
		if err != nil {
			i.log.Error().Err(err).Str("order_id", order.ID).Str("catalog_object_id", li.CatalogObjectID).Msg("fallo resolviendo renglón")
			result.Failures++
			continue
		}
		if len(items) == 0 {
			// Sin correspondencia en el catálogo: no es error, se omite.
			result.Skipped++
			continue
		}
		if len(items) > 1 {
			// Varios artículos con el mismo código es un error de configuración;
			// deducir en todos es el fallback conservador.
			i.log.Error().
				Str("catalog_object_id", li.CatalogObjectID).
				Int("matches", len(items)).
				Msg("código del POS mapea a varios artículos auto-deduct")
		}
		unitPrice := decimal.NewFromInt(li.BasePriceMoney.Amount).Div(decimal.NewFromInt(100))
		for _, item := range items {
			_, err := i.engine.ApplyMovementInTx(ledgerRepo, stockRepo, itemRepo, saleRepo, inventory.MovementInput{
				Kind:             inventory.MovementAutoDeduct,
				ItemID:           item.ID,
				Quantity:         qty,
				UnitPrice:        unitPrice,
				ExternalOrderRef: order.ID,
			})
			if err != nil {
				i.log.Error().Err(err).Str("order_id", order.ID).Str("item_id", item.ID).Msg("auto-deducción fallida")
				result.Failures++
				continue
			}
			result.Deductions++
		}
	}
}
