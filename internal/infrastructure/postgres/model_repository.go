package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cotelbo/cotel-admin-api/internal/domain"
	"github.com/cotelbo/cotel-admin-api/internal/domain/entity"
	"github.com/cotelbo/cotel-admin-api/internal/domain/repository"
	"github.com/cotelbo/cotel-admin-api/pkg/textnorm"
)

var _ repository.EquipmentModelRepository = (*ModelRepo)(nil)

const selectModel = `
	SELECT m.id, m.brand, m.name, m.description, m.unit_cost, m.active,
	       m.deleted, m.deleted_at, m.created_at, m.updated_at
	FROM equipment_models m`

// ModelRepo implementación del puerto EquipmentModelRepository sobre PostgreSQL.
type ModelRepo struct {
	pool *pgxpool.Pool
}

// NewModelRepository construye el adaptador de persistencia de modelos de equipo.
func NewModelRepository(pool *pgxpool.Pool) *ModelRepo {
	return &ModelRepo{pool: pool}
}

// Create persiste un nuevo modelo de equipo.
func (r *ModelRepo) Create(ctx context.Context, m *entity.EquipmentModel) error {
	query := `
		INSERT INTO equipment_models (id, brand, name, description, unit_cost, active, deleted,
		                              search_text, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, false, $7, $8, $9)`
	_, err := r.pool.Exec(ctx, query,
		m.ID, m.Brand, m.Name, m.Description, m.UnitCost, m.Active,
		textnorm.SearchKey(m.Brand+" "+m.Name+" "+m.Description), m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert equipment model: %w", err)
	}
	return nil
}

// GetByID obtiene un modelo por ID, incluyendo eliminados.
func (r *ModelRepo) GetByID(ctx context.Context, id string) (*entity.EquipmentModel, error) {
	row := r.pool.QueryRow(ctx, selectModel+` WHERE m.id = $1`, id)
	m, err := scanModel(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return m, nil
}

// List lista modelos con filtros y total sin paginar.
func (r *ModelRepo) List(ctx context.Context, f repository.ModelFilter) ([]*entity.EquipmentModel, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	n := 0
	if !f.IncludeDeleted {
		where += " AND NOT m.deleted"
	}
	if f.Search != "" {
		n++
		where += fmt.Sprintf(" AND m.search_text LIKE $%d", n)
		args = append(args, likePattern(f.Search))
	}
	if f.Brand != "" {
		n++
		where += fmt.Sprintf(" AND lower(m.brand) = lower($%d)", n)
		args = append(args, f.Brand)
	}
	if f.Active != nil {
		n++
		where += fmt.Sprintf(" AND m.active = $%d", n)
		args = append(args, *f.Active)
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM equipment_models m`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count equipment models: %w", err)
	}

	query := selectModel + where + fmt.Sprintf(" ORDER BY m.brand, m.name LIMIT $%d OFFSET $%d", n+1, n+2)
	args = append(args, f.Limit, f.Offset)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list equipment models: %w", err)
	}
	defer rows.Close()

	var list []*entity.EquipmentModel
	for rows.Next() {
		m, err := scanModel(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, m)
	}
	return list, total, rows.Err()
}

// Update actualiza el modelo, recalculando el texto de búsqueda.
func (r *ModelRepo) Update(ctx context.Context, m *entity.EquipmentModel) error {
	query := `
		UPDATE equipment_models SET brand = $2, name = $3, description = $4, unit_cost = $5,
		       active = $6, search_text = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.pool.Exec(ctx, query,
		m.ID, m.Brand, m.Name, m.Description, m.UnitCost, m.Active,
		textnorm.SearchKey(m.Brand+" "+m.Name+" "+m.Description), m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update equipment model: %w", err)
	}
	return nil
}

// SoftDelete marca el modelo como eliminado.
func (r *ModelRepo) SoftDelete(ctx context.Context, id string) error {
	query := `UPDATE equipment_models SET deleted = true, deleted_at = $2, updated_at = $2 WHERE id = $1`
	if _, err := r.pool.Exec(ctx, query, id, time.Now()); err != nil {
		return fmt.Errorf("soft delete equipment model: %w", err)
	}
	return nil
}

// Restore revierte la eliminación lógica.
func (r *ModelRepo) Restore(ctx context.Context, id string) error {
	query := `UPDATE equipment_models SET deleted = false, deleted_at = NULL, updated_at = $2 WHERE id = $1`
	if _, err := r.pool.Exec(ctx, query, id, time.Now()); err != nil {
		return fmt.Errorf("restore equipment model: %w", err)
	}
	return nil
}

func scanModel(row rowScanner) (*entity.EquipmentModel, error) {
	var m entity.EquipmentModel
	err := row.Scan(&m.ID, &m.Brand, &m.Name, &m.Description, &m.UnitCost, &m.Active,
		&m.Deleted, &m.DeletedAt, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan equipment model: %w", err)
	}
	return &m, nil
}
