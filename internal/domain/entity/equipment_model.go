package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// EquipmentModel modelo/marca de equipo (ONT, router, decodificador, etc.).
type EquipmentModel struct {
	ID          string
	Brand       string
	Name        string
	Description string
	UnitCost    decimal.Decimal // Bs., NUMERIC en DB
	Active      bool
	Deleted     bool
	DeletedAt   *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
