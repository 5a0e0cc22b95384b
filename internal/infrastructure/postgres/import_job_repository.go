package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cotelbo/cotel-admin-api/internal/domain/entity"
	"github.com/cotelbo/cotel-admin-api/internal/domain/repository"
)

var _ repository.ImportJobRepository = (*ImportJobRepo)(nil)

const selectImportJob = `
	SELECT j.id, j.user_id, j.lot_id, j.model_id, j.aux_code, j.file_name,
	       j.status, j.valid_rows, j.error_rows, j.imported,
	       j.created_at, j.updated_at, j.finished_at
	FROM import_jobs j`

// ImportJobRepo implementación del puerto ImportJobRepository sobre PostgreSQL.
type ImportJobRepo struct {
	pool *pgxpool.Pool
}

// NewImportJobRepository construye el adaptador de persistencia de importaciones.
func NewImportJobRepository(pool *pgxpool.Pool) *ImportJobRepo {
	return &ImportJobRepo{pool: pool}
}

// Create persiste un nuevo trabajo de importación.
func (r *ImportJobRepo) Create(ctx context.Context, j *entity.ImportJob) error {
	query := `
		INSERT INTO import_jobs (id, user_id, lot_id, model_id, aux_code, file_name,
		                         status, valid_rows, error_rows, imported,
		                         created_at, updated_at, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.pool.Exec(ctx, query,
		j.ID, j.UserID, j.LotID, j.ModelID, j.AuxCode, j.FileName,
		j.Status, j.ValidRows, j.ErrorRows, j.Imported,
		j.CreatedAt, j.UpdatedAt, j.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("insert import job: %w", err)
	}
	return nil
}

// GetByID obtiene un trabajo de importación por ID.
func (r *ImportJobRepo) GetByID(ctx context.Context, id string) (*entity.ImportJob, error) {
	row := r.pool.QueryRow(ctx, selectImportJob+` WHERE j.id = $1`, id)
	j, err := scanImportJob(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return j, nil
}

// Update actualiza el estado y los contadores del trabajo.
func (r *ImportJobRepo) Update(ctx context.Context, j *entity.ImportJob) error {
	query := `
		UPDATE import_jobs SET status = $2, valid_rows = $3, error_rows = $4,
		       imported = $5, updated_at = $6, finished_at = $7
		WHERE id = $1`
	_, err := r.pool.Exec(ctx, query,
		j.ID, j.Status, j.ValidRows, j.ErrorRows, j.Imported, j.UpdatedAt, j.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("update import job: %w", err)
	}
	return nil
}

// ListByUser lista los trabajos más recientes de un usuario.
func (r *ImportJobRepo) ListByUser(ctx context.Context, userID string, limit int) ([]*entity.ImportJob, error) {
	rows, err := r.pool.Query(ctx,
		selectImportJob+` WHERE j.user_id = $1 ORDER BY j.created_at DESC LIMIT $2`,
		userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list import jobs: %w", err)
	}
	defer rows.Close()

	var list []*entity.ImportJob
	for rows.Next() {
		j, err := scanImportJob(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, j)
	}
	return list, rows.Err()
}

func scanImportJob(row rowScanner) (*entity.ImportJob, error) {
	var j entity.ImportJob
	err := row.Scan(&j.ID, &j.UserID, &j.LotID, &j.ModelID, &j.AuxCode, &j.FileName,
		&j.Status, &j.ValidRows, &j.ErrorRows, &j.Imported,
		&j.CreatedAt, &j.UpdatedAt, &j.FinishedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan import job: %w", err)
	}
	return &j, nil
}
