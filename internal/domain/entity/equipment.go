package entity

import "time"

// Estados de un equipo individual.
const (
	EquipmentAvailable = "disponible"
	EquipmentAssigned  = "asignado"
	EquipmentRetired   = "baja"
)

// Equipment equipo individual registrado vía importación masiva.
// SerialNumber es único en todo el inventario.
type Equipment struct {
	ID           string
	LotID        string
	ModelID      string
	SerialNumber string
	MACAddress   string
	InternalCode string
	AuxCode      string // código auxiliar de la importación (6-10 dígitos)
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
