package entity

import "time"

// Store representa una tienda (tenant). Todos los productos y eventos de uso
// quedan aislados por StoreID.
type Store struct {
	ID         string
	Name       string
	Code       string // código único de tienda
	AdminEmail string
	Phone      string
	Address    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
