package webhook

import (
	"encoding/json"

	"github.com/loudbaby/easyops-api/internal/domain"
)

// envelope es el sobre JSON que envía el POS: { type, data: { object: {...} } }.
type envelope struct {
	Type string `json:"type"`
	Data struct {
		Object struct {
			Order *orderPayload `json:"order"`
		} `json:"object"`
	} `json:"data"`
}

// orderPayload es la orden dentro del sobre.
type orderPayload struct {
	ID        string            `json:"id"`
	State     string            `json:"state"`
	LineItems []lineItemPayload `json:"line_items"`
}

// lineItemPayload es un renglón de la orden. Quantity llega como string y
// BasePriceMoney en centavos, como los manda el proveedor.
type lineItemPayload struct {
	CatalogObjectID string `json:"catalog_object_id"`
	Name            string `json:"name"`
	Quantity        string `json:"quantity"`
	BasePriceMoney  struct {
		Amount   int64  `json:"amount"`
		Currency string `json:"currency"`
	} `json:"base_price_money"`
}

// parseEnvelope decodifica el cuerpo crudo y valida lo mínimo: que haya una
// orden con id. Un cuerpo malformado es error del emisor (HTTP 400).
func parseEnvelope(body []byte) (*envelope, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, domain.ErrInvalidPayload
	}
	if env.Data.Object.Order == nil || env.Data.Object.Order.ID == "" {
		return nil, domain.ErrInvalidPayload
	}
	return &env, nil
}
