package importer

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cotelbo/cotel-admin-api/internal/application/dto"
	"github.com/cotelbo/cotel-admin-api/internal/domain"
	"github.com/cotelbo/cotel-admin-api/internal/domain/entity"
	"github.com/cotelbo/cotel-admin-api/internal/domain/repository"
)

var (
	auxCodeRe = regexp.MustCompile(`^\d{6,10}$`)
	macRe     = regexp.MustCompile(`^([0-9A-Fa-f]{2}[:-]){5}[0-9A-Fa-f]{2}$`)
)

// allowedFiles extensiones y tipos MIME aceptados antes de tocar el archivo.
var (
	allowedExtensions = map[string]bool{".xlsx": true, ".xls": true}
	allowedMIMETypes  = map[string]bool{
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
		"application/vnd.ms-excel": true,
		// los navegadores a veces no declaran el tipo en multipart
		"application/octet-stream": true,
		"": true,
	}
)

// Limits límites de la importación.
type Limits struct {
	MaxFileBytes int64
	MaxErrorRows int
}

// Input petición de importación (dry-run o commit).
type Input struct {
	UserID      string
	LotID       string
	ModelID     string
	AuxCode     string
	FileName    string
	ContentType string
	FileSize    int64
	File        io.Reader
	DryRun      bool
}

// UseCase orquesta la importación masiva de equipos: rechazo temprano de
// archivo y código auxiliar, validación fila a fila en seco y commit
// transaccional. Las transiciones del job son solo hacia adelante.
type UseCase struct {
	jobRepo       repository.ImportJobRepository
	lotRepo       repository.LotRepository
	modelRepo     repository.EquipmentModelRepository
	equipmentRepo repository.EquipmentRepository
	parser        FileParser
	template      TemplateBuilder
	limits        Limits
}

// NewUseCase construye el caso de uso de importación.
func NewUseCase(
	jobRepo repository.ImportJobRepository,
	lotRepo repository.LotRepository,
	modelRepo repository.EquipmentModelRepository,
	equipmentRepo repository.EquipmentRepository,
	parser FileParser,
	template TemplateBuilder,
	limits Limits,
) *UseCase {
	if limits.MaxFileBytes <= 0 {
		limits.MaxFileBytes = 5 * 1024 * 1024
	}
	if limits.MaxErrorRows <= 0 {
		limits.MaxErrorRows = 50
	}
	return &UseCase{
		jobRepo:       jobRepo,
		lotRepo:       lotRepo,
		modelRepo:     modelRepo,
		equipmentRepo: equipmentRepo,
		parser:        parser,
		template:      template,
		limits:        limits,
	}
}

// Template genera la plantilla descargable (xlsx). Operación puramente local.
func (uc *UseCase) Template() ([]byte, error) {
	return uc.template.BuildEquipmentTemplate()
}

// Validate ejecuta la validación en seco: nada se persiste en el inventario
// y el resultado queda registrado como ImportJob para auditoría y commit.
func (uc *UseCase) Validate(ctx context.Context, in Input) (*dto.ValidateImportResponse, error) {
	rows, job, rowErrs, err := uc.prepare(ctx, in)
	if err != nil {
		return nil, err
	}

	errRows := make(map[int]bool, len(rowErrs))
	for _, e := range rowErrs {
		errRows[e.Row] = true
	}
	validSerials := make([]string, 0, len(rows))
	for _, r := range rows {
		if !errRows[r.Line] {
			validSerials = append(validSerials, r.Serial)
		}
	}

	job.Status = entity.ImportValidated
	job.ValidRows = len(validSerials)
	job.ErrorRows = len(rows) - len(validSerials)
	job.UpdatedAt = time.Now()
	if err := uc.jobRepo.Create(ctx, job); err != nil {
		return nil, err
	}

	if len(rowErrs) > uc.limits.MaxErrorRows {
		rowErrs = rowErrs[:uc.limits.MaxErrorRows]
	}
	return &dto.ValidateImportResponse{
		JobID:        job.ID,
		Validated:    job.ValidRows,
		Errors:       job.ErrorRows,
		ErrorDetails: rowErrs,
		ValidSerials: validSerials,
	}, nil
}

// Commit importa definitivamente. Solo procede con una validación limpia:
// cualquier fila con error mantiene el flujo en validación.
func (uc *UseCase) Commit(ctx context.Context, in Input) (*dto.CommitImportResponse, error) {
	rows, job, rowErrs, err := uc.prepare(ctx, in)
	if err != nil {
		return nil, err
	}

	if len(rowErrs) > 0 {
		job.Status = entity.ImportFailed
		job.ValidRows = len(rows) - countErrRows(rowErrs)
		job.ErrorRows = countErrRows(rowErrs)
		job.UpdatedAt = time.Now()
		_ = uc.jobRepo.Create(ctx, job)
		return nil, domain.ErrImportNotValidated
	}

	job.Status = entity.ImportImporting
	job.ValidRows = len(rows)
	job.UpdatedAt = time.Now()
	if err := uc.jobRepo.Create(ctx, job); err != nil {
		return nil, err
	}

	now := time.Now()
	items := make([]*entity.Equipment, 0, len(rows))
	for _, r := range rows {
		items = append(items, &entity.Equipment{
			ID:           uuid.New().String(),
			LotID:        in.LotID,
			ModelID:      in.ModelID,
			SerialNumber: r.Serial,
			MACAddress:   strings.ToUpper(r.MAC),
			InternalCode: r.InternalCode,
			AuxCode:      in.AuxCode,
			Status:       entity.EquipmentAvailable,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}
	if err := uc.equipmentRepo.CreateBatch(ctx, items); err != nil {
		uc.finishJob(ctx, job, entity.ImportFailed)
		return nil, fmt.Errorf("importar equipos: %w", err)
	}

	job.Imported = len(items)
	uc.finishJob(ctx, job, entity.ImportDone)
	return &dto.CommitImportResponse{
		Imported:  len(items),
		Validated: len(items),
		Errors:    0,
	}, nil
}

// GetJob devuelve el estado de un trabajo de importación.
func (uc *UseCase) GetJob(ctx context.Context, id string) (*dto.ImportJobResponse, error) {
	job, err := uc.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, domain.ErrNotFound
	}
	return toJobResponse(job), nil
}

// ListJobs últimos trabajos del usuario.
func (uc *UseCase) ListJobs(ctx context.Context, userID string, limit int) ([]dto.ImportJobResponse, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	jobs, err := uc.jobRepo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ImportJobResponse, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, *toJobResponse(j))
	}
	return out, nil
}

// FileError construye un rechazo de archivo con el motivo dado.
func FileError(reason string) error {
	return fmt.Errorf("%w: %s", domain.ErrImportFileRejected, reason)
}

// CheckFile valida nombre, tipo y tamaño del archivo sin leerlo.
// Expuesto para que el handler rechace antes de bufferizar el multipart.
func (uc *UseCase) CheckFile(fileName, contentType string, size int64) error {
	ext := strings.ToLower(filepath.Ext(fileName))
	if !allowedExtensions[ext] {
		return fmt.Errorf("%w: extensión %q no permitida", domain.ErrImportFileRejected, ext)
	}
	if !allowedMIMETypes[strings.ToLower(contentType)] {
		return fmt.Errorf("%w: tipo %q no permitido", domain.ErrImportFileRejected, contentType)
	}
	if size <= 0 || size > uc.limits.MaxFileBytes {
		return fmt.Errorf("%w: tamaño %d fuera de límite (máx %d bytes)",
			domain.ErrImportFileRejected, size, uc.limits.MaxFileBytes)
	}
	return nil
}

// prepare corre las validaciones comunes a dry-run y commit: archivo, código
// auxiliar, lote y modelo, parseo y validación fila a fila.
func (uc *UseCase) prepare(ctx context.Context, in Input) ([]ParsedRow, *entity.ImportJob, []entity.ImportRowError, error) {
	if err := uc.CheckFile(in.FileName, in.ContentType, in.FileSize); err != nil {
		return nil, nil, nil, err
	}
	if !auxCodeRe.MatchString(in.AuxCode) {
		return nil, nil, nil, fmt.Errorf("%w: código auxiliar debe tener 6 a 10 dígitos", domain.ErrInvalidInput)
	}

	lot, err := uc.lotRepo.GetByID(ctx, in.LotID)
	if err != nil {
		return nil, nil, nil, err
	}
	if lot == nil || lot.Deleted || !lot.Active {
		return nil, nil, nil, fmt.Errorf("%w: lote inexistente o inactivo", domain.ErrInvalidInput)
	}
	model, err := uc.modelRepo.GetByID(ctx, in.ModelID)
	if err != nil {
		return nil, nil, nil, err
	}
	if model == nil || model.Deleted || !model.Active {
		return nil, nil, nil, fmt.Errorf("%w: modelo inexistente o inactivo", domain.ErrInvalidInput)
	}

	job := newJob(in)

	// Un archivo ilegible o sin datos deja rastro de auditoría igual que una
	// validación con errores.
	rows, err := uc.parser.ParseEquipment(in.File)
	if err != nil {
		uc.recordRejected(ctx, job)
		return nil, nil, nil, fmt.Errorf("%w: %v", domain.ErrImportFileRejected, err)
	}
	if len(rows) == 0 {
		uc.recordRejected(ctx, job)
		return nil, nil, nil, fmt.Errorf("%w: el archivo no contiene filas de datos", domain.ErrImportFileRejected)
	}

	// seriales ya registrados en inventario
	serials := make([]string, 0, len(rows))
	for _, r := range rows {
		if r.Serial != "" {
			serials = append(serials, r.Serial)
		}
	}
	existing, err := uc.equipmentRepo.ExistingSerials(ctx, serials)
	if err != nil {
		return nil, nil, nil, err
	}

	var rowErrs []entity.ImportRowError
	seen := make(map[string]bool, len(rows))
	for _, r := range rows {
		errs := uc.rowErrors(r, seen)
		if r.Serial != "" && existing[r.Serial] {
			errs = append(errs, entity.ImportRowError{
				Row: r.Line, Column: "SERIE",
				Message: fmt.Sprintf("serie %q ya registrada en inventario", r.Serial),
			})
		}
		rowErrs = append(rowErrs, errs...)
	}

	return rows, job, rowErrs, nil
}

func newJob(in Input) *entity.ImportJob {
	now := time.Now()
	return &entity.ImportJob{
		ID:        uuid.New().String(),
		UserID:    in.UserID,
		LotID:     in.LotID,
		ModelID:   in.ModelID,
		AuxCode:   in.AuxCode,
		FileName:  in.FileName,
		Status:    entity.ImportCreated,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// recordRejected persiste el job fallido de un archivo rechazado; un fallo de
// persistencia no oculta el rechazo original.
func (uc *UseCase) recordRejected(ctx context.Context, job *entity.ImportJob) {
	now := time.Now()
	job.Status = entity.ImportFailed
	job.UpdatedAt = now
	job.FinishedAt = &now
	_ = uc.jobRepo.Create(ctx, job)
}

// rowErrors valida una fila aislada. seen acumula seriales del propio
// archivo para detectar duplicados internos.
func (uc *UseCase) rowErrors(r ParsedRow, seen map[string]bool) []entity.ImportRowError {
	var errs []entity.ImportRowError
	switch {
	case r.Serial == "":
		errs = append(errs, entity.ImportRowError{Row: r.Line, Column: "SERIE", Message: "serie requerida"})
	case seen[r.Serial]:
		errs = append(errs, entity.ImportRowError{Row: r.Line, Column: "SERIE", Message: fmt.Sprintf("serie %q duplicada en el archivo", r.Serial)})
	default:
		seen[r.Serial] = true
	}
	if r.MAC != "" && !macRe.MatchString(r.MAC) {
		errs = append(errs, entity.ImportRowError{Row: r.Line, Column: "MAC", Message: fmt.Sprintf("MAC %q con formato inválido", r.MAC)})
	}
	return errs
}

func (uc *UseCase) finishJob(ctx context.Context, job *entity.ImportJob, status string) {
	now := time.Now()
	job.Status = status
	job.UpdatedAt = now
	job.FinishedAt = &now
	_ = uc.jobRepo.Update(ctx, job)
}

func countErrRows(errs []entity.ImportRowError) int {
	rows := make(map[int]bool, len(errs))
	for _, e := range errs {
		rows[e.Row] = true
	}
	return len(rows)
}

func toJobResponse(j *entity.ImportJob) *dto.ImportJobResponse {
	return &dto.ImportJobResponse{
		ID:         j.ID,
		LotID:      j.LotID,
		ModelID:    j.ModelID,
		AuxCode:    j.AuxCode,
		FileName:   j.FileName,
		Status:     j.Status,
		ValidRows:  j.ValidRows,
		ErrorRows:  j.ErrorRows,
		Imported:   j.Imported,
		CreatedAt:  j.CreatedAt,
		FinishedAt: j.FinishedAt,
	}
}
