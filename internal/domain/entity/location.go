package entity

import "time"

// Location representa una ubicación de almacenamiento (bodega, nevera, estante).
// Exactamente una ubicación debe ser la predeterminada; el cambio se hace con
// una sola sentencia UPDATE para evitar la ventana de dos escrituras.
type Location struct {
	ID        string
	Name      string
	IsDefault bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
