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

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

const selectWarehouse = `
	SELECT w.id, w.code, w.name, w.address, w.active, w.deleted, w.deleted_at,
	       w.created_at, w.updated_at
	FROM warehouses w`

// WarehouseRepo implementación del puerto WarehouseRepository sobre PostgreSQL.
type WarehouseRepo struct {
	pool *pgxpool.Pool
}

// NewWarehouseRepository construye el adaptador de persistencia de almacenes.
func NewWarehouseRepository(pool *pgxpool.Pool) *WarehouseRepo {
	return &WarehouseRepo{pool: pool}
}

// Create persiste un nuevo almacén.
func (r *WarehouseRepo) Create(ctx context.Context, w *entity.Warehouse) error {
	query := `
		INSERT INTO warehouses (id, code, name, address, active, deleted, search_text, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, false, $6, $7, $8)`
	_, err := r.pool.Exec(ctx, query,
		w.ID, w.Code, w.Name, w.Address, w.Active,
		textnorm.SearchKey(w.Code+" "+w.Name+" "+w.Address), w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert warehouse: %w", err)
	}
	return nil
}

// GetByID obtiene un almacén por ID, incluyendo eliminados.
func (r *WarehouseRepo) GetByID(ctx context.Context, id string) (*entity.Warehouse, error) {
	row := r.pool.QueryRow(ctx, selectWarehouse+` WHERE w.id = $1`, id)
	w, err := scanWarehouse(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return w, nil
}

// List lista almacenes con filtros y total sin paginar.
func (r *WarehouseRepo) List(ctx context.Context, f repository.WarehouseFilter) ([]*entity.Warehouse, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	n := 0
	if !f.IncludeDeleted {
		where += " AND NOT w.deleted"
	}
	if f.Search != "" {
		n++
		where += fmt.Sprintf(" AND w.search_text LIKE $%d", n)
		args = append(args, likePattern(f.Search))
	}
	if f.Active != nil {
		n++
		where += fmt.Sprintf(" AND w.active = $%d", n)
		args = append(args, *f.Active)
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM warehouses w`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count warehouses: %w", err)
	}

	query := selectWarehouse + where + fmt.Sprintf(" ORDER BY w.code LIMIT $%d OFFSET $%d", n+1, n+2)
	args = append(args, f.Limit, f.Offset)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list warehouses: %w", err)
	}
	defer rows.Close()

	var list []*entity.Warehouse
	for rows.Next() {
		w, err := scanWarehouse(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, w)
	}
	return list, total, rows.Err()
}

// Update actualiza el almacén, recalculando el texto de búsqueda.
func (r *WarehouseRepo) Update(ctx context.Context, w *entity.Warehouse) error {
	query := `
		UPDATE warehouses SET code = $2, name = $3, address = $4, active = $5,
		       search_text = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.pool.Exec(ctx, query,
		w.ID, w.Code, w.Name, w.Address, w.Active,
		textnorm.SearchKey(w.Code+" "+w.Name+" "+w.Address), w.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update warehouse: %w", err)
	}
	return nil
}

// SoftDelete marca el almacén como eliminado.
func (r *WarehouseRepo) SoftDelete(ctx context.Context, id string) error {
	query := `UPDATE warehouses SET deleted = true, deleted_at = $2, updated_at = $2 WHERE id = $1`
	if _, err := r.pool.Exec(ctx, query, id, time.Now()); err != nil {
		return fmt.Errorf("soft delete warehouse: %w", err)
	}
	return nil
}

// Restore revierte la eliminación lógica.
func (r *WarehouseRepo) Restore(ctx context.Context, id string) error {
	query := `UPDATE warehouses SET deleted = false, deleted_at = NULL, updated_at = $2 WHERE id = $1`
	if _, err := r.pool.Exec(ctx, query, id, time.Now()); err != nil {
		return fmt.Errorf("restore warehouse: %w", err)
	}
	return nil
}

func scanWarehouse(row rowScanner) (*entity.Warehouse, error) {
	var w entity.Warehouse
	err := row.Scan(&w.ID, &w.Code, &w.Name, &w.Address, &w.Active, &w.Deleted, &w.DeletedAt,
		&w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan warehouse: %w", err)
	}
	return &w, nil
}
