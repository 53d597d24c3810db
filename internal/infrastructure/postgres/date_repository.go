package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/loudbaby/easyops-api/internal/domain/entity"
	"github.com/loudbaby/easyops-api/internal/domain/repository"
)

var _ repository.ImportantDateRepository = (*DateRepo)(nil)

// DateRepo implementación de ImportantDateRepository sobre PostgreSQL.
// Las fechas ligadas a un artículo viven en item_dates; las generales en
// general_dates. El puerto las expone como una sola colección.
type DateRepo struct {
	q Querier
}

// NewDateRepository construye el adaptador de fechas. Pasar pool o tx (Querier).
func NewDateRepository(q Querier) *DateRepo {
	return &DateRepo{q: q}
}

// Create persiste la fecha en la tabla que corresponda según tenga artículo o no.
func (r *DateRepo) Create(date *entity.ImportantDate) error {
	if date.ID == "" {
		date.ID = uuid.New().String()
	}
	var err error
	if date.ItemID != "" {
		query := `
			INSERT INTO item_dates (id, item_id, title, date, notify, reminder_sent, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, false, $6, $7)`
		_, err = r.q.Exec(context.Background(), query,
			date.ID, date.ItemID, date.Title, date.Date, date.Notify, date.CreatedAt, date.UpdatedAt)
	} else {
		query := `
			INSERT INTO general_dates (id, title, date, notify, reminder_sent, created_at, updated_at)
			VALUES ($1, $2, $3, $4, false, $5, $6)`
		_, err = r.q.Exec(context.Background(), query,
			date.ID, date.Title, date.Date, date.Notify, date.CreatedAt, date.UpdatedAt)
	}
	if err != nil {
		return fmt.Errorf("create important date: %w", err)
	}
	return nil
}

// ListByItem devuelve las fechas del artículo, próximas primero.
func (r *DateRepo) ListByItem(itemID string) ([]*entity.ImportantDate, error) {
	query := `
		SELECT id, item_id, title, date, notify, reminder_sent, created_at, updated_at
		FROM item_dates WHERE item_id = $1 ORDER BY date`
	rows, err := r.q.Query(context.Background(), query, itemID)
	if err != nil {
		return nil, fmt.Errorf("list item dates: %w", err)
	}
	defer rows.Close()
	var list []*entity.ImportantDate
	for rows.Next() {
		var d entity.ImportantDate
		if err := rows.Scan(&d.ID, &d.ItemID, &d.Title, &d.Date, &d.Notify,
			&d.ReminderSent, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan date: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// ListUpcoming une ambas tablas: fechas con notify activo, sin recordatorio
// enviado, que vencen hasta la fecha límite.
func (r *DateRepo) ListUpcoming(until time.Time) ([]*entity.ImportantDate, error) {
	query := `
		SELECT id, item_id, title, date, notify, reminder_sent, created_at, updated_at
		FROM item_dates
		WHERE notify AND NOT reminder_sent AND date <= $1
		UNION ALL
		SELECT id, '', title, date, notify, reminder_sent, created_at, updated_at
		FROM general_dates
		WHERE notify AND NOT reminder_sent AND date <= $1
		ORDER BY date`
	rows, err := r.q.Query(context.Background(), query, until)
	if err != nil {
		return nil, fmt.Errorf("list upcoming dates: %w", err)
	}
	defer rows.Close()
	var list []*entity.ImportantDate
	for rows.Next() {
		var d entity.ImportantDate
		if err := rows.Scan(&d.ID, &d.ItemID, &d.Title, &d.Date, &d.Notify,
			&d.ReminderSent, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan date: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// MarkReminderSent voltea la bandera one-shot en la tabla que tenga el ID.
// Idempotente: volver a marcarla no cambia nada.
func (r *DateRepo) MarkReminderSent(id string) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE item_dates SET reminder_sent = true, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark reminder sent: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}
	if _, err := r.q.Exec(context.Background(),
		`UPDATE general_dates SET reminder_sent = true, updated_at = now() WHERE id = $1`, id); err != nil {
		return fmt.Errorf("mark reminder sent: %w", err)
	}
	return nil
}

// Delete elimina la fecha de la tabla que la tenga.
func (r *DateRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM item_dates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete date: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}
	if _, err := r.q.Exec(context.Background(), `DELETE FROM general_dates WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete date: %w", err)
	}
	return nil
}
