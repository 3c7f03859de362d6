package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin     = "admin"
	RoleAlmacen   = "almacenista"
	RoleConsultor = "consultor"
)

// User usuario de la aplicación (login con email + password).
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt
	Name         string
	Role         string
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
