package inventory

import "github.com/shopspring/decimal"

// MovementKind es el tipo de movimiento que el motor sabe aplicar.
type MovementKind string

const (
	MovementReceive    MovementKind = "RECEIVE"
	MovementConsume    MovementKind = "CONSUME"
	MovementSell       MovementKind = "SELL"
	MovementAdjust     MovementKind = "ADJUST"
	MovementAutoDeduct MovementKind = "AUTO_DEDUCT"
)

// MovementInput entrada para ApplyMovement.
//
// Por tipo:
//   - RECEIVE/CONSUME: ItemID, LocationID, Quantity > 0 (CONSUME además Reason).
//   - SELL: ItemID, Quantity > 0, UnitPrice; Source por defecto MANUAL.
//   - ADJUST: ItemID, Quantity = cantidad contada físicamente (>= 0);
//     LocationID vacío usa la ubicación predeterminada.
//   - AUTO_DEDUCT: ItemID, Quantity > 0, ExternalOrderRef; sin usuario
//     (atribuido al sistema).
type MovementInput struct {
	Kind             MovementKind
	ItemID           string
	LocationID       string
	Quantity         decimal.Decimal
	Reason           string // razones de consumo (entity.Reason*)
	UnitPrice        decimal.Decimal
	Source           string
	PaymentMethod    string
	CustomerName     string
	ExternalOrderRef string
	UserID           string
	Notes            string
}

// MovementResult resultado de un movimiento aplicado.
// AppliedDelta es el cambio realmente aplicado tras el recorte a cero
// (puede ser menor en magnitud que lo solicitado, o cero).
type MovementResult struct {
	NewAggregate decimal.Decimal
	AppliedDelta decimal.Decimal
	SaleID       string // solo para SELL y AUTO_DEDUCT
}
