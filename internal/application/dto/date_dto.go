package dto

import "time"

// ImportantDateRequest body para crear una fecha importante.
// ItemID vacío crea una fecha general.
type ImportantDateRequest struct {
	ItemID string    `json:"item_id,omitempty"`
	Title  string    `json:"title"`
	Date   time.Time `json:"date"`
	Notify bool      `json:"notify"`
}

// ImportantDateResponse representación de una fecha importante.
type ImportantDateResponse struct {
	ID           string    `json:"id"`
	ItemID       string    `json:"item_id,omitempty"`
	Title        string    `json:"title"`
	Date         time.Time `json:"date"`
	Notify       bool      `json:"notify"`
	ReminderSent bool      `json:"reminder_sent"`
}
