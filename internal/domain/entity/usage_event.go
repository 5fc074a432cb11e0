package entity

import "time"

// UsageEvent representa el consumo de una unidad de producto en un instante.
// Es inmutable y append-only: el motor nunca actualiza ni borra eventos
// históricos (solo la eliminación en cascada del producto los retira).
type UsageEvent struct {
	ID        string
	ProductID string
	Date      time.Time
	Note      *string // anotación libre opcional
}
