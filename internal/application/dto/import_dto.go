package dto

import (
	"time"

	"github.com/cotelbo/cotel-admin-api/internal/domain/entity"
)

// ValidateImportResponse resultado de la validación en seco (dry-run).
// Nada se persiste en el inventario; el job queda registrado para el commit.
type ValidateImportResponse struct {
	JobID        string                  `json:"job_id"`
	Validated    int                     `json:"validados"`
	Errors       int                     `json:"errores"`
	ErrorDetails []entity.ImportRowError `json:"detalles_errores"`
	ValidSerials []string                `json:"equipos_validos"`
}

// CommitImportResponse resultado de la importación definitiva.
type CommitImportResponse struct {
	Imported  int `json:"importados"`
	Validated int `json:"validados"`
	Errors    int `json:"errores"`
}

// ImportJobResponse estado de un trabajo de importación.
type ImportJobResponse struct {
	ID         string     `json:"id"`
	LotID      string     `json:"lote"`
	ModelID    string     `json:"modelo"`
	AuxCode    string     `json:"codigo_auxiliar"`
	FileName   string     `json:"archivo"`
	Status     string     `json:"estado"`
	ValidRows  int        `json:"validados"`
	ErrorRows  int        `json:"errores"`
	Imported   int        `json:"importados"`
	CreatedAt  time.Time  `json:"created_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}
