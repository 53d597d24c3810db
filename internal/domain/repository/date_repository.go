package repository

import (
	"time"

	"github.com/loudbaby/easyops-api/internal/domain/entity"
)

// ImportantDateRepository define el puerto para fechas importantes
// (de artículo en item_dates y generales en general_dates).
type ImportantDateRepository interface {
	Create(date *entity.ImportantDate) error
	ListByItem(itemID string) ([]*entity.ImportantDate, error)
	// ListUpcoming devuelve fechas con notify activo, sin recordatorio enviado,
	// hasta la fecha límite. Alimenta el job externo de notificaciones.
	ListUpcoming(until time.Time) ([]*entity.ImportantDate, error)
	// MarkReminderSent voltea la bandera one-shot; idempotente.
	MarkReminderSent(id string) error
	Delete(id string) error
}
