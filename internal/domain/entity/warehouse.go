package entity

import "time"

// Warehouse almacén físico de COTEL.
type Warehouse struct {
	ID        string
	Code      string // único
	Name      string
	Address   string
	Active    bool
	Deleted   bool
	DeletedAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
