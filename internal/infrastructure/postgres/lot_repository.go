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

var _ repository.LotRepository = (*LotRepo)(nil)

// selectLot columnas de lectura; equipment_count se deriva de equipos.
const selectLot = `
	SELECT l.id, l.code, l.warehouse_id, l.description, l.received_at,
	       (SELECT COUNT(*) FROM equipment e WHERE e.lot_id = l.id) AS equipment_count,
	       l.active, l.deleted, l.deleted_at, l.created_at, l.updated_at
	FROM lots l`

// LotRepo implementación del puerto LotRepository sobre PostgreSQL.
type LotRepo struct {
	pool *pgxpool.Pool
}

// NewLotRepository construye el adaptador de persistencia de lotes.
func NewLotRepository(pool *pgxpool.Pool) *LotRepo {
	return &LotRepo{pool: pool}
}

// Create persiste un nuevo lote.
func (r *LotRepo) Create(ctx context.Context, l *entity.Lot) error {
	query := `
		INSERT INTO lots (id, code, warehouse_id, description, received_at, active, deleted,
		                  search_text, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, false, $7, $8, $9)`
	_, err := r.pool.Exec(ctx, query,
		l.ID, l.Code, l.WarehouseID, l.Description, l.ReceivedAt, l.Active,
		textnorm.SearchKey(l.Code+" "+l.Description), l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert lot: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por ID, incluyendo eliminados.
func (r *LotRepo) GetByID(ctx context.Context, id string) (*entity.Lot, error) {
	row := r.pool.QueryRow(ctx, selectLot+` WHERE l.id = $1`, id)
	l, err := scanLot(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return l, nil
}

// List lista lotes con filtros y total sin paginar.
func (r *LotRepo) List(ctx context.Context, f repository.LotFilter) ([]*entity.Lot, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	n := 0
	if !f.IncludeDeleted {
		where += " AND NOT l.deleted"
	}
	if f.Search != "" {
		n++
		where += fmt.Sprintf(" AND l.search_text LIKE $%d", n)
		args = append(args, likePattern(f.Search))
	}
	if f.WarehouseID != "" {
		n++
		where += fmt.Sprintf(" AND l.warehouse_id = $%d", n)
		args = append(args, f.WarehouseID)
	}
	if f.Active != nil {
		n++
		where += fmt.Sprintf(" AND l.active = $%d", n)
		args = append(args, *f.Active)
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM lots l`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count lots: %w", err)
	}

	query := selectLot + where + fmt.Sprintf(" ORDER BY l.received_at DESC, l.code LIMIT $%d OFFSET $%d", n+1, n+2)
	args = append(args, f.Limit, f.Offset)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list lots: %w", err)
	}
	defer rows.Close()

	var list []*entity.Lot
	for rows.Next() {
		l, err := scanLot(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, l)
	}
	return list, total, rows.Err()
}

// Update actualiza el lote, recalculando el texto de búsqueda.
func (r *LotRepo) Update(ctx context.Context, l *entity.Lot) error {
	query := `
		UPDATE lots SET code = $2, warehouse_id = $3, description = $4, received_at = $5,
		       active = $6, search_text = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.pool.Exec(ctx, query,
		l.ID, l.Code, l.WarehouseID, l.Description, l.ReceivedAt, l.Active,
		textnorm.SearchKey(l.Code+" "+l.Description), l.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update lot: %w", err)
	}
	return nil
}

// SoftDelete marca el lote como eliminado.
func (r *LotRepo) SoftDelete(ctx context.Context, id string) error {
	query := `UPDATE lots SET deleted = true, deleted_at = $2, updated_at = $2 WHERE id = $1`
	if _, err := r.pool.Exec(ctx, query, id, time.Now()); err != nil {
		return fmt.Errorf("soft delete lot: %w", err)
	}
	return nil
}

// Restore revierte la eliminación lógica.
func (r *LotRepo) Restore(ctx context.Context, id string) error {
	query := `UPDATE lots SET deleted = false, deleted_at = NULL, updated_at = $2 WHERE id = $1`
	if _, err := r.pool.Exec(ctx, query, id, time.Now()); err != nil {
		return fmt.Errorf("restore lot: %w", err)
	}
	return nil
}

func scanLot(row rowScanner) (*entity.Lot, error) {
	var l entity.Lot
	err := row.Scan(&l.ID, &l.Code, &l.WarehouseID, &l.Description, &l.ReceivedAt,
		&l.EquipmentCount, &l.Active, &l.Deleted, &l.DeletedAt, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan lot: %w", err)
	}
	return &l, nil
}
