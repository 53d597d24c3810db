package postgres

import (
	"context"
	"fmt"

	"github.com/loudbaby/easyops-api/internal/domain"
	"github.com/loudbaby/easyops-api/internal/domain/entity"
	"github.com/loudbaby/easyops-api/internal/domain/repository"
)

var _ repository.WebhookEventRepository = (*WebhookEventRepo)(nil)

// WebhookEventRepo implementación del registro de eventos del POS sobre PostgreSQL.
type WebhookEventRepo struct {
	q Querier
}

// NewWebhookEventRepository construye el adaptador de eventos. Pasar pool o tx (Querier).
func NewWebhookEventRepository(q Querier) *WebhookEventRepo {
	return &WebhookEventRepo{q: q}
}

// Create inserta el registro del evento. El constraint UNIQUE de event_id es la
// garantía autoritativa de deduplicación: dos entregas concurrentes de la misma
// orden hacen que una tx falle aquí y se revierta completa.
func (r *WebhookEventRepo) Create(event *entity.WebhookEvent) error {
	query := `
		INSERT INTO webhook_events (event_id, event_type, payload, created_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query,
		event.EventID, event.EventType, event.Payload, event.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateEvent
		}
		return fmt.Errorf("create webhook event: %w", err)
	}
	return nil
}

// Exists verifica si el evento ya fue registrado.
func (r *WebhookEventRepo) Exists(eventID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM webhook_events WHERE event_id = $1)`, eventID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists webhook event: %w", err)
	}
	return exists, nil
}
