package entity

import "time"

// Estados del trabajo de importación. Las transiciones son solo hacia
// adelante: created → validated → importing → done; cualquier fallo → failed.
const (
	ImportCreated   = "created"
	ImportValidated = "validated"
	ImportImporting = "importing"
	ImportDone      = "done"
	ImportFailed    = "failed"
)

// ImportJob registro de una importación masiva de equipos (dry-run o commit).
type ImportJob struct {
	ID         string
	UserID     string
	LotID      string
	ModelID    string
	AuxCode    string
	FileName   string
	Status     string
	ValidRows  int
	ErrorRows  int
	Imported   int
	CreatedAt  time.Time
	UpdatedAt  time.Time
	FinishedAt *time.Time
}

// CanCommit reporta si el trabajo puede pasar a importación definitiva:
// validación completa y sin filas con error.
func (j *ImportJob) CanCommit() bool {
	return j.Status == ImportValidated && j.ErrorRows == 0
}

// ImportRowError detalle de error de una fila durante la validación.
type ImportRowError struct {
	Row     int    `json:"fila"`
	Column  string `json:"columna"`
	Message string `json:"mensaje"`
}
