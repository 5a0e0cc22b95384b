package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateModelRequest alta de modelo de equipo.
type CreateModelRequest struct {
	Brand       string          `json:"marca"`
	Name        string          `json:"nombre"`
	Description string          `json:"descripcion"`
	UnitCost    decimal.Decimal `json:"costo_unitario"`
}

// UpdateModelRequest edición parcial de modelo.
type UpdateModelRequest struct {
	Brand       *string          `json:"marca"`
	Name        *string          `json:"nombre"`
	Description *string          `json:"descripcion"`
	UnitCost    *decimal.Decimal `json:"costo_unitario"`
	Active      *bool            `json:"activo"`
}

// ModelResponse modelo de equipo para despliegue.
type ModelResponse struct {
	ID          string          `json:"id"`
	Brand       string          `json:"marca"`
	Name        string          `json:"nombre"`
	Description string          `json:"descripcion"`
	UnitCost    decimal.Decimal `json:"costo_unitario"`
	Active      bool            `json:"activo"`
	Deleted     bool            `json:"eliminado"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ModelSummary objeto _info denormalizado.
type ModelSummary struct {
	ID    string `json:"id"`
	Brand string `json:"marca"`
	Name  string `json:"nombre"`
}
