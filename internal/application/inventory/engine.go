package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/loudbaby/easyops-api/internal/domain"
	"github.com/loudbaby/easyops-api/internal/domain/entity"
	"github.com/loudbaby/easyops-api/internal/domain/repository"
	"github.com/loudbaby/easyops-api/pkg/logger"
)

// ReconciliationEngine aplica movimientos de stock (recepción, consumo, venta,
// ajuste, auto-deducción del POS) de forma transaccional sobre las tres
// representaciones: stock por ubicación, agregado del artículo y libro.
//
// Reglas que mantiene:
//   - agregado == suma de filas por ubicación al terminar cada movimiento
//   - ninguna cantidad queda negativa (los decrementos se recortan a cero,
//     salvo SELL, que rechaza con ErrInsufficientStock)
//   - el delta del libro es el cambio realmente aplicado, al costo unitario
//     vigente en el momento (foto histórica)
//
// Todas las escrituras de cantidad son incrementos atómicos en SQL
// (quantity = quantity + delta) bajo bloqueo de fila, nunca read-modify-write
// en la aplicación.
type ReconciliationEngine struct {
	txRunner     TxRunner
	locationRepo repository.LocationRepository
	log          *logger.Logger
}

// NewReconciliationEngine construye el motor.
func NewReconciliationEngine(txRunner TxRunner, locationRepo repository.LocationRepository, log *logger.Logger) *ReconciliationEngine {
	return &ReconciliationEngine{txRunner: txRunner, locationRepo: locationRepo, log: log}
}

// ApplyMovement valida la entrada, abre una transacción y aplica el movimiento.
func (e *ReconciliationEngine) ApplyMovement(ctx context.Context, input MovementInput) (*MovementResult, error) {
	if err := e.validate(&input); err != nil {
		return nil, err
	}

	var result *MovementResult
	err := e.txRunner.Run(ctx, func(
		ledgerRepo repository.LedgerRepository,
		stockRepo repository.StockRepository,
		itemRepo repository.ItemRepository,
		saleRepo repository.SaleRepository,
	) error {
		res, err := e.ApplyMovementInTx(ledgerRepo, stockRepo, itemRepo, saleRepo, input)
		if err != nil {
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// validate chequea campos por tipo y resuelve la ubicación predeterminada
// para ajustes sin ubicación explícita.
func (e *ReconciliationEngine) validate(input *MovementInput) error {
	if input.ItemID == "" {
		return domain.ErrInvalidInput
	}
	switch input.Kind {
	case MovementReceive, MovementConsume:
		if input.LocationID == "" {
			return domain.ErrInvalidInput
		}
		if !input.Quantity.GreaterThan(decimal.Zero) {
			return domain.ErrInvalidQuantity
		}
		loc, err := e.locationRepo.GetByID(input.LocationID)
		if err != nil {
			return err
		}
		if loc == nil {
			return domain.ErrLocationNotFound
		}
	case MovementSell:
		if !input.Quantity.GreaterThan(decimal.Zero) {
			return domain.ErrInvalidQuantity
		}
		if input.UnitPrice.IsNegative() {
			return domain.ErrInvalidInput
		}
		if input.Source == "" {
			input.Source = entity.SaleSourceManual
		}
	case MovementAdjust:
		if input.Quantity.IsNegative() {
			return domain.ErrInvalidQuantity
		}
		if input.LocationID == "" {
			def, err := e.locationRepo.GetDefault()
			if err != nil {
				return err
			}
			if def == nil {
				return domain.ErrLocationNotFound
			}
			input.LocationID = def.ID
		} else {
			loc, err := e.locationRepo.GetByID(input.LocationID)
			if err != nil {
				return err
			}
			if loc == nil {
				return domain.ErrLocationNotFound
			}
		}
	case MovementAutoDeduct:
		if !input.Quantity.GreaterThan(decimal.Zero) {
			return domain.ErrInvalidQuantity
		}
	default:
		return domain.ErrInvalidInput
	}
	return nil
}

// ApplyMovementInTx aplica el movimiento usando los repositorios proporcionados
// (misma transacción del caller). El ingestor de webhooks lo usa para que el
// registro del evento y las deducciones compartan una sola transacción.
func (e *ReconciliationEngine) ApplyMovementInTx(
	ledgerRepo repository.LedgerRepository,
	stockRepo repository.StockRepository,
	itemRepo repository.ItemRepository,
	saleRepo repository.SaleRepository,
	input MovementInput,
) (*MovementResult, error) {
	// Bloquea la fila del artículo: serializa movimientos concurrentes sobre él.
	item, err := itemRepo.GetForUpdate(input.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrItemNotFound
	}

	now := time.Now()
	switch input.Kind {
	case MovementReceive:
		return e.doReceive(ledgerRepo, stockRepo, itemRepo, item, input, now)
	case MovementConsume:
		return e.doConsume(ledgerRepo, stockRepo, itemRepo, item, input, now)
	case MovementSell:
		return e.doSell(ledgerRepo, stockRepo, itemRepo, saleRepo, item, input, now)
	case MovementAdjust:
		return e.doAdjust(ledgerRepo, stockRepo, itemRepo, item, input, now)
	case MovementAutoDeduct:
		return e.doAutoDeduct(ledgerRepo, stockRepo, itemRepo, saleRepo, item, input, now)
	}
	return nil, domain.ErrInvalidInput
}

// doReceive suma la cantidad a la ubicación y al agregado, y registra RECEIVE.
func (e *ReconciliationEngine) doReceive(
	ledgerRepo repository.LedgerRepository,
	stockRepo repository.StockRepository,
	itemRepo repository.ItemRepository,
	item *entity.Item,
	input MovementInput,
	now time.Time,
) (*MovementResult, error) {
	if _, err := stockRepo.ApplyDelta(input.ItemID, input.LocationID, input.Quantity); err != nil {
		return nil, err
	}
	newAgg, err := itemRepo.ApplyQuantityDelta(input.ItemID, input.Quantity)
	if err != nil {
		return nil, err
	}
	entry := &entity.LedgerEntry{
		ItemID:        input.ItemID,
		ChangeType:    entity.ChangeTypeReceive,
		QuantityDelta: input.Quantity,
		UnitCost:      item.CostPerUnit,
		UserID:        input.UserID,
		Notes:         input.Notes,
		CreatedAt:     now,
	}
	if err := ledgerRepo.Append(entry); err != nil {
		return nil, err
	}
	return &MovementResult{NewAggregate: newAgg, AppliedDelta: input.Quantity}, nil
}

// doConsume resta de la ubicación con recorte a cero: nunca deja stock
// negativo y nunca bloquea la operación; lo realmente retirado puede ser
// menor que lo pedido. Registra CONSUME o WASTE según la razón.
func (e *ReconciliationEngine) doConsume(
	ledgerRepo repository.LedgerRepository,
	stockRepo repository.StockRepository,
	itemRepo repository.ItemRepository,
	item *entity.Item,
	input MovementInput,
	now time.Time,
) (*MovementResult, error) {
	stock, err := stockRepo.GetForUpdate(input.ItemID, input.LocationID)
	if err != nil {
		return nil, err
	}
	applied := decimal.Min(input.Quantity, stock.Quantity)
	if !applied.GreaterThan(decimal.Zero) {
		// Sin stock en la ubicación: no-op, sin entrada en el libro.
		return &MovementResult{NewAggregate: item.Quantity, AppliedDelta: decimal.Zero}, nil
	}
	if _, err := stockRepo.ApplyDelta(input.ItemID, input.LocationID, applied.Neg()); err != nil {
		return nil, err
	}
	newAgg, err := itemRepo.ApplyQuantityDelta(input.ItemID, applied.Neg())
	if err != nil {
		return nil, err
	}
	entry := &entity.LedgerEntry{
		ItemID:        input.ItemID,
		ChangeType:    entity.ChangeTypeForReason(input.Reason),
		QuantityDelta: applied.Neg(),
		UnitCost:      item.CostPerUnit,
		UserID:        input.UserID,
		Notes:         input.Notes,
		CreatedAt:     now,
	}
	if err := ledgerRepo.Append(entry); err != nil {
		return nil, err
	}
	return &MovementResult{NewAggregate: newAgg, AppliedDelta: applied.Neg()}, nil
}

// doSell rechaza con ErrInsufficientStock si la cantidad supera el agregado:
// una venta es una transacción financiera y no puede sub-entregar en silencio.
// Persiste la venta antes de la entrada del libro para que se crucen por ID.
func (e *ReconciliationEngine) doSell(
	ledgerRepo repository.LedgerRepository,
	stockRepo repository.StockRepository,
	itemRepo repository.ItemRepository,
	saleRepo repository.SaleRepository,
	item *entity.Item,
	input MovementInput,
	now time.Time,
) (*MovementResult, error) {
	if input.Quantity.GreaterThan(item.Quantity) {
		return nil, domain.ErrInsufficientStock
	}
	applied, err := e.deductAcrossLocations(stockRepo, input.ItemID, input.Quantity)
	if err != nil {
		return nil, err
	}
	if applied.LessThan(input.Quantity) {
		// El agregado prometía stock que las filas por ubicación no tienen
		// (deriva). No vendemos lo que no está.
		e.log.Warn().Str("item_id", input.ItemID).Msg("venta rechazada: agregado y stock por ubicación no coinciden")
		return nil, domain.ErrInsufficientStock
	}
	newAgg, err := itemRepo.ApplyQuantityDelta(input.ItemID, input.Quantity.Neg())
	if err != nil {
		return nil, err
	}
	sale := &entity.Sale{
		ItemID:        input.ItemID,
		Quantity:      input.Quantity,
		UnitPrice:     input.UnitPrice,
		Source:        input.Source,
		PaymentMethod: input.PaymentMethod,
		CustomerName:  input.CustomerName,
		UserID:        input.UserID,
		CreatedAt:     now,
	}
	if err := saleRepo.Create(sale); err != nil {
		return nil, err
	}
	notes := input.Notes
	if notes == "" {
		notes = "venta " + sale.ID
	}
	entry := &entity.LedgerEntry{
		ItemID:        input.ItemID,
		ChangeType:    entity.ChangeTypeSale,
		QuantityDelta: input.Quantity.Neg(),
		UnitCost:      item.CostPerUnit,
		UserID:        input.UserID,
		Notes:         notes,
		CreatedAt:     now,
	}
	if err := ledgerRepo.Append(entry); err != nil {
		return nil, err
	}
	return &MovementResult{NewAggregate: newAgg, AppliedDelta: input.Quantity.Neg(), SaleID: sale.ID}, nil
}

// doAdjust reconcilia el agregado contra una cantidad contada físicamente.
// delta = contado - agregado; cero es no-op. Un delta positivo entra a la
// ubicación indicada (o la predeterminada); uno negativo se reparte entre
// ubicaciones hasta cubrirlo.
func (e *ReconciliationEngine) doAdjust(
	ledgerRepo repository.LedgerRepository,
	stockRepo repository.StockRepository,
	itemRepo repository.ItemRepository,
	item *entity.Item,
	input MovementInput,
	now time.Time,
) (*MovementResult, error) {
	delta := input.Quantity.Sub(item.Quantity)
	if delta.IsZero() {
		return &MovementResult{NewAggregate: item.Quantity, AppliedDelta: decimal.Zero}, nil
	}
	if delta.GreaterThan(decimal.Zero) {
		if _, err := stockRepo.ApplyDelta(input.ItemID, input.LocationID, delta); err != nil {
			return nil, err
		}
	} else {
		applied, err := e.deductAcrossLocations(stockRepo, input.ItemID, delta.Neg())
		if err != nil {
			return nil, err
		}
		if applied.LessThan(delta.Neg()) {
			// Las ubicaciones tenían menos que el agregado: ajustamos solo lo
			// que existe y dejamos el resto para el job de reconciliación.
			e.log.Warn().Str("item_id", input.ItemID).Msg("ajuste parcial: stock por ubicación menor que el agregado")
			delta = applied.Neg()
		}
	}
	newAgg, err := itemRepo.ApplyQuantityDelta(input.ItemID, delta)
	if err != nil {
		return nil, err
	}
	if delta.IsZero() {
		return &MovementResult{NewAggregate: newAgg, AppliedDelta: decimal.Zero}, nil
	}
	entry := &entity.LedgerEntry{
		ItemID:        input.ItemID,
		ChangeType:    entity.ChangeTypeAdjust,
		QuantityDelta: delta,
		UnitCost:      item.CostPerUnit,
		UserID:        input.UserID,
		Notes:         input.Notes,
		CreatedAt:     now,
	}
	if err := ledgerRepo.Append(entry); err != nil {
		return nil, err
	}
	return &MovementResult{NewAggregate: newAgg, AppliedDelta: delta}, nil
}

// doAutoDeduct aplica una venta automática del POS: recorta a cero como el
// consumo (la orden ya se cobró en el POS, bloquearla no tiene sentido),
// reparte la deducción entre ubicaciones y registra venta + entrada SALE
// atribuidas al sistema.
func (e *ReconciliationEngine) doAutoDeduct(
	ledgerRepo repository.LedgerRepository,
	stockRepo repository.StockRepository,
	itemRepo repository.ItemRepository,
	saleRepo repository.SaleRepository,
	item *entity.Item,
	input MovementInput,
	now time.Time,
) (*MovementResult, error) {
	if !input.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidQuantity
	}
	requested := decimal.Min(input.Quantity, item.Quantity)
	applied := decimal.Zero
	if requested.GreaterThan(decimal.Zero) {
		var err error
		applied, err = e.deductAcrossLocations(stockRepo, input.ItemID, requested)
		if err != nil {
			return nil, err
		}
	}
	if !applied.GreaterThan(decimal.Zero) {
		e.log.Warn().
			Str("item_id", input.ItemID).
			Str("order_ref", input.ExternalOrderRef).
			Msg("auto-deducción sin stock disponible: no-op")
		return &MovementResult{NewAggregate: item.Quantity, AppliedDelta: decimal.Zero}, nil
	}
	newAgg, err := itemRepo.ApplyQuantityDelta(input.ItemID, applied.Neg())
	if err != nil {
		return nil, err
	}
	sale := &entity.Sale{
		ItemID:    input.ItemID,
		Quantity:  applied,
		UnitPrice: input.UnitPrice,
		Source:    entity.SaleSourceSquare,
		CreatedAt: now,
	}
	if err := saleRepo.Create(sale); err != nil {
		return nil, err
	}
	entry := &entity.LedgerEntry{
		ItemID:        input.ItemID,
		ChangeType:    entity.ChangeTypeSale,
		QuantityDelta: applied.Neg(),
		UnitCost:      item.CostPerUnit,
		Notes:         "orden POS " + input.ExternalOrderRef,
		CreatedAt:     now,
	}
	if err := ledgerRepo.Append(entry); err != nil {
		return nil, err
	}
	return &MovementResult{NewAggregate: newAgg, AppliedDelta: applied.Neg(), SaleID: sale.ID}, nil
}

// deductAcrossLocations resta amount repartido entre las filas del artículo
// (predeterminada primero, luego mayor stock), sin dejar ninguna negativa.
// Devuelve cuánto logró restar.
func (e *ReconciliationEngine) deductAcrossLocations(
	stockRepo repository.StockRepository,
	itemID string,
	amount decimal.Decimal,
) (decimal.Decimal, error) {
	rows, err := stockRepo.ListByItemForUpdate(itemID)
	if err != nil {
		return decimal.Zero, err
	}
	remaining := amount
	for _, row := range rows {
		if !remaining.GreaterThan(decimal.Zero) {
			break
		}
		take := decimal.Min(remaining, row.Quantity)
		if !take.GreaterThan(decimal.Zero) {
			continue
		}
		if _, err := stockRepo.ApplyDelta(itemID, row.LocationID, take.Neg()); err != nil {
			return decimal.Zero, err
		}
		remaining = remaining.Sub(take)
	}
	return amount.Sub(remaining), nil
}
