package entity

import "time"

// ImportantDate es un recordatorio programado, ligado a un artículo
// (vencimientos, rotación) o general. ReminderSent lo voltea una sola vez el
// job externo de notificaciones para no duplicar avisos.
type ImportantDate struct {
	ID           string
	ItemID       string // vacío = fecha general
	Title        string
	Date         time.Time
	Notify       bool
	ReminderSent bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
