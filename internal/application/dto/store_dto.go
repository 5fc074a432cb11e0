package dto

import "time"

// RegisterStoreRequest alta de tienda + usuario administrador (transaccional).
type RegisterStoreRequest struct {
	Name       string `json:"name" validate:"required,min=1,max=200"`
	Code       string `json:"code" validate:"required,min=1,max=50"`
	AdminEmail string `json:"admin_email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
}

// UpdateStoreRequest edición de datos de contacto de la tienda.
type UpdateStoreRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=200"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

// StoreResponse salida de una tienda.
type StoreResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Code       string    `json:"code"`
	AdminEmail string    `json:"admin_email"`
	Phone      string    `json:"phone"`
	Address    string    `json:"address"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
