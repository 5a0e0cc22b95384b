package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cotelbo/cotel-admin-api/internal/domain"
	"github.com/cotelbo/cotel-admin-api/internal/domain/entity"
	"github.com/cotelbo/cotel-admin-api/internal/domain/repository"
)

var _ repository.EquipmentRepository = (*EquipmentRepo)(nil)

const selectEquipment = `
	SELECT e.id, e.lot_id, e.model_id, e.serial_number, e.mac_address,
	       e.internal_code, e.aux_code, e.status, e.created_at, e.updated_at
	FROM equipment e`

// EquipmentRepo implementación del puerto EquipmentRepository sobre PostgreSQL.
type EquipmentRepo struct {
	pool *pgxpool.Pool
}

// NewEquipmentRepository construye el adaptador de persistencia de equipos.
func NewEquipmentRepository(pool *pgxpool.Pool) *EquipmentRepo {
	return &EquipmentRepo{pool: pool}
}

// CreateBatch inserta el lote completo de equipos en una sola transacción.
// Si una fila viola la unicidad de serie, toda la operación se revierte.
func (r *EquipmentRepo) CreateBatch(ctx context.Context, items []*entity.Equipment) error {
	if len(items) == 0 {
		return nil
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	query := `
		INSERT INTO equipment (id, lot_id, model_id, serial_number, mac_address,
		                       internal_code, aux_code, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	for _, e := range items {
		batch.Queue(query,
			e.ID, e.LotID, e.ModelID, e.SerialNumber, e.MACAddress,
			e.InternalCode, e.AuxCode, e.Status, e.CreatedAt, e.UpdatedAt,
		)
	}
	results := tx.SendBatch(ctx, batch)
	for range items {
		if _, err := results.Exec(); err != nil {
			results.Close()
			if isUniqueViolation(err) {
				return domain.ErrDuplicate
			}
			return fmt.Errorf("insert equipment batch: %w", err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("close equipment batch: %w", err)
	}
	return tx.Commit(ctx)
}

// GetByID obtiene un equipo por ID.
func (r *EquipmentRepo) GetByID(ctx context.Context, id string) (*entity.Equipment, error) {
	row := r.pool.QueryRow(ctx, selectEquipment+` WHERE e.id = $1`, id)
	e, err := scanEquipment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return e, nil
}

// ExistingSerials devuelve cuáles de los seriales dados ya están registrados.
func (r *EquipmentRepo) ExistingSerials(ctx context.Context, serials []string) (map[string]bool, error) {
	existing := make(map[string]bool, len(serials))
	if len(serials) == 0 {
		return existing, nil
	}
	rows, err := r.pool.Query(ctx,
		`SELECT serial_number FROM equipment WHERE serial_number = ANY($1)`, serials)
	if err != nil {
		return nil, fmt.Errorf("query existing serials: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scan serial: %w", err)
		}
		existing[s] = true
	}
	return existing, rows.Err()
}

// ListByLot lista los equipos de un lote con total sin paginar.
func (r *EquipmentRepo) ListByLot(ctx context.Context, lotID string, limit, offset int) ([]*entity.Equipment, int, error) {
	total, err := r.CountByLot(ctx, lotID)
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx,
		selectEquipment+` WHERE e.lot_id = $1 ORDER BY e.serial_number LIMIT $2 OFFSET $3`,
		lotID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list equipment by lot: %w", err)
	}
	defer rows.Close()

	var list []*entity.Equipment
	for rows.Next() {
		e, err := scanEquipment(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, e)
	}
	return list, total, rows.Err()
}

// ListByWarehouse lista todos los equipos de los lotes del almacén.
func (r *EquipmentRepo) ListByWarehouse(ctx context.Context, warehouseID string) ([]*entity.Equipment, error) {
	query := selectEquipment + `
		JOIN lots l ON l.id = e.lot_id
		WHERE l.warehouse_id = $1 AND NOT l.deleted
		ORDER BY e.serial_number`
	rows, err := r.pool.Query(ctx, query, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("list equipment by warehouse: %w", err)
	}
	defer rows.Close()

	var list []*entity.Equipment
	for rows.Next() {
		e, err := scanEquipment(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// CountByLot cuenta los equipos registrados en un lote.
func (r *EquipmentRepo) CountByLot(ctx context.Context, lotID string) (int, error) {
	var total int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM equipment WHERE lot_id = $1`, lotID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count equipment by lot: %w", err)
	}
	return total, nil
}

func scanEquipment(row rowScanner) (*entity.Equipment, error) {
	var e entity.Equipment
	err := row.Scan(&e.ID, &e.LotID, &e.ModelID, &e.SerialNumber, &e.MACAddress,
		&e.InternalCode, &e.AuxCode, &e.Status, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan equipment: %w", err)
	}
	return &e, nil
}
