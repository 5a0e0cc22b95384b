package dto

import "time"

// EquipmentResponse equipo individual para despliegue.
type EquipmentResponse struct {
	ID           string        `json:"id"`
	LotID        string        `json:"lote"`
	ModelID      string        `json:"modelo"`
	ModelInfo    *ModelSummary `json:"modelo_info,omitempty"`
	SerialNumber string        `json:"serie"`
	MACAddress   string        `json:"mac,omitempty"`
	InternalCode string        `json:"codigo_interno,omitempty"`
	AuxCode      string        `json:"codigo_auxiliar"`
	Status       string        `json:"estado"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}
