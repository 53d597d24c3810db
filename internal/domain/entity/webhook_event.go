package entity

import (
	"encoding/json"
	"time"
)

// WebhookEvent es el registro de deduplicación de eventos del POS.
// La existencia de una fila para EventID significa que esa orden ya fue
// procesada por completo: la fila se inserta en la misma transacción que las
// mutaciones de stock (record-before-mutate).
type WebhookEvent struct {
	EventID   string // id de orden/evento del proveedor (único)
	EventType string
	Payload   json.RawMessage
	CreatedAt time.Time
}
