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
	"github.com/cotelbo/cotel-admin-api/pkg/textnorm"
)

var _ repository.PermissionRepository = (*PermissionRepo)(nil)

// selectPermission columnas de lectura; en_uso se deriva de role_permissions.
const selectPermission = `
	SELECT p.id, p.resource, p.action, p.description, p.active,
	       EXISTS(SELECT 1 FROM role_permissions rp WHERE rp.permission_id = p.id) AS in_use,
	       p.created_at, p.updated_at
	FROM permissions p`

// PermissionRepo implementación del puerto PermissionRepository sobre PostgreSQL.
type PermissionRepo struct {
	pool *pgxpool.Pool
}

// NewPermissionRepository construye el adaptador de persistencia de permisos.
func NewPermissionRepository(pool *pgxpool.Pool) *PermissionRepo {
	return &PermissionRepo{pool: pool}
}

// Create persiste un nuevo permiso.
func (r *PermissionRepo) Create(ctx context.Context, p *entity.Permission) error {
	query := `
		INSERT INTO permissions (id, resource, action, description, active, search_text, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.pool.Exec(ctx, query,
		p.ID, p.Resource, string(p.Action), p.Description, p.Active,
		permissionSearchText(p), p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert permission: %w", err)
	}
	return nil
}

// GetByID obtiene un permiso por ID.
func (r *PermissionRepo) GetByID(ctx context.Context, id string) (*entity.Permission, error) {
	return r.queryOne(ctx, selectPermission+` WHERE p.id = $1`, id)
}

// GetByPair obtiene un permiso por su par (recurso, acción).
func (r *PermissionRepo) GetByPair(ctx context.Context, resource string, action entity.Action) (*entity.Permission, error) {
	return r.queryOne(ctx, selectPermission+` WHERE p.resource = $1 AND p.action = $2`, resource, string(action))
}

// List lista permisos con filtros y total sin paginar.
func (r *PermissionRepo) List(ctx context.Context, f repository.PermissionFilter) ([]*entity.Permission, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	n := 0
	if f.Search != "" {
		n++
		where += fmt.Sprintf(" AND p.search_text LIKE $%d", n)
		args = append(args, likePattern(f.Search))
	}
	if f.Resource != "" {
		n++
		where += fmt.Sprintf(" AND p.resource = $%d", n)
		args = append(args, f.Resource)
	}
	if f.Action != "" {
		n++
		where += fmt.Sprintf(" AND p.action = $%d", n)
		args = append(args, string(f.Action))
	}
	if f.Active != nil {
		n++
		where += fmt.Sprintf(" AND p.active = $%d", n)
		args = append(args, *f.Active)
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM permissions p`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count permissions: %w", err)
	}

	query := selectPermission + where + fmt.Sprintf(" ORDER BY p.resource, p.action LIMIT $%d OFFSET $%d", n+1, n+2)
	args = append(args, f.Limit, f.Offset)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list permissions: %w", err)
	}
	defer rows.Close()

	var list []*entity.Permission
	for rows.Next() {
		p, err := scanPermission(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, p)
	}
	return list, total, rows.Err()
}

// Update actualiza descripción y bandera de activo.
func (r *PermissionRepo) Update(ctx context.Context, p *entity.Permission) error {
	query := `UPDATE permissions SET description = $2, active = $3, search_text = $4, updated_at = $5 WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, p.ID, p.Description, p.Active, permissionSearchText(p), p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update permission: %w", err)
	}
	return nil
}

// Delete elimina un permiso por ID.
func (r *PermissionRepo) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM permissions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete permission: %w", err)
	}
	return nil
}

// ListPairsByRole devuelve los permisos asignados a un rol.
func (r *PermissionRepo) ListPairsByRole(ctx context.Context, roleID string) ([]entity.Permission, error) {
	query := `
		SELECT p.id, p.resource, p.action, p.active
		FROM permissions p
		JOIN role_permissions rp ON rp.permission_id = p.id
		WHERE rp.role_id = $1`
	rows, err := r.pool.Query(ctx, query, roleID)
	if err != nil {
		return nil, fmt.Errorf("list permissions by role: %w", err)
	}
	defer rows.Close()

	var list []entity.Permission
	for rows.Next() {
		var p entity.Permission
		var action string
		if err := rows.Scan(&p.ID, &p.Resource, &action, &p.Active); err != nil {
			return nil, fmt.Errorf("scan role permission: %w", err)
		}
		p.Action = entity.Action(action)
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *PermissionRepo) queryOne(ctx context.Context, query string, args ...any) (*entity.Permission, error) {
	row := r.pool.QueryRow(ctx, query, args...)
	p, err := scanPermission(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

// permissionSearchText columna de búsqueda normalizada (sin acentos, minúsculas).
func permissionSearchText(p *entity.Permission) string {
	return textnorm.SearchKey(p.Resource, string(p.Action), p.Description)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPermission(row rowScanner) (*entity.Permission, error) {
	var p entity.Permission
	var action string
	err := row.Scan(&p.ID, &p.Resource, &action, &p.Description, &p.Active, &p.InUse, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan permission: %w", err)
	}
	p.Action = entity.Action(action)
	return &p, nil
}
