package dto

import "time"

// CreateWarehouseRequest alta de almacén.
type CreateWarehouseRequest struct {
	Code    string `json:"codigo"`
	Name    string `json:"nombre"`
	Address string `json:"direccion"`
}

// UpdateWarehouseRequest edición parcial de almacén.
type UpdateWarehouseRequest struct {
	Code    *string `json:"codigo"`
	Name    *string `json:"nombre"`
	Address *string `json:"direccion"`
	Active  *bool   `json:"activo"`
}

// WarehouseResponse almacén para despliegue.
type WarehouseResponse struct {
	ID        string    `json:"id"`
	Code      string    `json:"codigo"`
	Name      string    `json:"nombre"`
	Address   string    `json:"direccion"`
	Active    bool      `json:"activo"`
	Deleted   bool      `json:"eliminado"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WarehouseSummary objeto _info denormalizado.
type WarehouseSummary struct {
	ID   string `json:"id"`
	Code string `json:"codigo"`
	Name string `json:"nombre"`
}
