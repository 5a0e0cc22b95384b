package entity

import "time"

// Lot lote de material recibido en un almacén. Los equipos importados
// pertenecen a un lote; un lote con equipos no puede eliminarse.
type Lot struct {
	ID             string
	Code           string // único
	WarehouseID    string
	Description    string
	ReceivedAt     time.Time
	EquipmentCount int // derivado
	Active         bool
	Deleted        bool
	DeletedAt      *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
