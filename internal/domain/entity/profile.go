package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleStaff   = "staff"
)

// Profile representa el perfil de un usuario. La identidad y la sesión viven
// en el proveedor de autenticación externo; aquí solo guardamos nombre y rol.
type Profile struct {
	ID          string // subject del proveedor de identidad
	DisplayName string
	Role        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
