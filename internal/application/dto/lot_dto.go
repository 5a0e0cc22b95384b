package dto

import "time"

// CreateLotRequest alta de lote de material.
type CreateLotRequest struct {
	Code        string    `json:"codigo"`
	WarehouseID string    `json:"almacen"`
	Description string    `json:"descripcion"`
	ReceivedAt  time.Time `json:"fecha_recepcion"`
}

// UpdateLotRequest edición parcial de lote.
type UpdateLotRequest struct {
	Code        *string    `json:"codigo"`
	WarehouseID *string    `json:"almacen"`
	Description *string    `json:"descripcion"`
	ReceivedAt  *time.Time `json:"fecha_recepcion"`
	Active      *bool      `json:"activo"`
}

// LotResponse lote con el id crudo del almacén y su objeto _info.
type LotResponse struct {
	ID             string            `json:"id"`
	Code           string            `json:"codigo"`
	WarehouseID    string            `json:"almacen"`
	WarehouseInfo  *WarehouseSummary `json:"almacen_info,omitempty"`
	Description    string            `json:"descripcion"`
	ReceivedAt     time.Time         `json:"fecha_recepcion"`
	EquipmentCount int               `json:"cantidad_equipos"`
	Active         bool              `json:"activo"`
	Deleted        bool              `json:"eliminado"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}
