package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// User representa un usuario del sistema (pertenece a una Store).
type User struct {
	ID           string
	StoreID      string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, staff
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
