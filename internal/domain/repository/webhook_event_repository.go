package repository

import "github.com/loudbaby/easyops-api/internal/domain/entity"

// WebhookEventRepository define el puerto del registro de deduplicación de
// eventos del POS. El constraint UNIQUE sobre event_id es la garantía
// autoritativa de exactamente-una-vez.
type WebhookEventRepository interface {
	// Create inserta el registro; devuelve ErrDuplicateEvent si el event_id ya existe.
	Create(event *entity.WebhookEvent) error
	Exists(eventID string) (bool, error)
}
