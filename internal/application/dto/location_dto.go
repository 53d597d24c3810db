package dto

// LocationRequest body para crear/actualizar una ubicación.
type LocationRequest struct {
	Name string `json:"name"`
}

// LocationResponse representación de una ubicación.
type LocationResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	IsDefault bool   `json:"is_default"`
}
