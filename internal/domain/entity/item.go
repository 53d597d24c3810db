package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item representa un artículo del catálogo de inventario.
// Quantity es el agregado derivado: debe ser igual a la suma de ItemLocationStock
// por ubicación; solo el motor de reconciliación lo muta.
type Item struct {
	ID             string
	Name           string
	Category       string
	Unit           string // unidad de medida en singular (la UI pluraliza)
	CostPerUnit    decimal.Decimal
	AlertThreshold decimal.Decimal
	Barcode        string // SKU/catalog object id del POS externo (vacío = sin código)
	Quantity       decimal.Decimal
	AutoDeduct     bool // ventas del POS descuentan stock automáticamente
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
