package repository

import (
	"context"

	"github.com/cotelbo/cotel-admin-api/internal/domain/entity"
)

// ImportJobRepository puerto de persistencia de trabajos de importación.
type ImportJobRepository interface {
	Create(ctx context.Context, j *entity.ImportJob) error
	GetByID(ctx context.Context, id string) (*entity.ImportJob, error)
	Update(ctx context.Context, j *entity.ImportJob) error
	ListByUser(ctx context.Context, userID string, limit int) ([]*entity.ImportJob, error)
}
