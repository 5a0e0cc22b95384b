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

var _ repository.RoleRepository = (*RoleRepo)(nil)

// selectRole columnas de lectura; los contadores son derivados.
const selectRole = `
	SELECT r.id, r.name, r.description, r.active, r.is_system,
	       (SELECT COUNT(*) FROM role_permissions rp WHERE rp.role_id = r.id) AS permission_count,
	       (SELECT COUNT(*) FROM users u WHERE u.role_id = r.id AND NOT u.deleted) AS user_count,
	       r.created_at, r.updated_at
	FROM roles r`

// RoleRepo implementación del puerto RoleRepository sobre PostgreSQL.
type RoleRepo struct {
	pool *pgxpool.Pool
}

// NewRoleRepository construye el adaptador de persistencia de roles.
func NewRoleRepository(pool *pgxpool.Pool) *RoleRepo {
	return &RoleRepo{pool: pool}
}

// Create persiste el rol y su conjunto inicial de permisos en una transacción.
func (r *RoleRepo) Create(ctx context.Context, role *entity.Role) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO roles (id, name, description, active, is_system, search_text, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err = tx.Exec(ctx, query,
		role.ID, role.Name, role.Description, role.Active, role.IsSystem,
		roleSearchText(role), role.CreatedAt, role.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert role: %w", err)
	}
	if err := insertRolePermissions(ctx, tx, role.ID, role.PermissionIDs); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// GetByID obtiene un rol por ID con sus permisos asignados.
func (r *RoleRepo) GetByID(ctx context.Context, id string) (*entity.Role, error) {
	return r.queryOne(ctx, selectRole+` WHERE r.id = $1`, id)
}

// GetByName obtiene un rol por nombre exacto.
func (r *RoleRepo) GetByName(ctx context.Context, name string) (*entity.Role, error) {
	return r.queryOne(ctx, selectRole+` WHERE r.name = $1`, name)
}

// List lista roles con filtros y total sin paginar.
func (r *RoleRepo) List(ctx context.Context, f repository.RoleFilter) ([]*entity.Role, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	n := 0
	if f.Search != "" {
		n++
		where += fmt.Sprintf(" AND r.search_text LIKE $%d", n)
		args = append(args, likePattern(f.Search))
	}
	if f.Active != nil {
		n++
		where += fmt.Sprintf(" AND r.active = $%d", n)
		args = append(args, *f.Active)
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM roles r`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count roles: %w", err)
	}

	query := selectRole + where + fmt.Sprintf(" ORDER BY r.name LIMIT $%d OFFSET $%d", n+1, n+2)
	args = append(args, f.Limit, f.Offset)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()

	var list []*entity.Role
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, role)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	for _, role := range list {
		if err := r.loadPermissionIDs(ctx, role); err != nil {
			return nil, 0, err
		}
	}
	return list, total, nil
}

// Update actualiza los datos básicos del rol.
func (r *RoleRepo) Update(ctx context.Context, role *entity.Role) error {
	query := `UPDATE roles SET name = $2, description = $3, active = $4, search_text = $5, updated_at = $6 WHERE id = $1`
	_, err := r.pool.Exec(ctx, query,
		role.ID, role.Name, role.Description, role.Active, roleSearchText(role), role.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update role: %w", err)
	}
	return nil
}

// Delete elimina el rol y sus asignaciones de permisos.
func (r *RoleRepo) Delete(ctx context.Context, id string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM role_permissions WHERE role_id = $1`, id); err != nil {
		return fmt.Errorf("delete role permissions: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM roles WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete role: %w", err)
	}
	return tx.Commit(ctx)
}

// ReplacePermissions reemplaza el conjunto completo de permisos del rol.
func (r *RoleRepo) ReplacePermissions(ctx context.Context, roleID string, permissionIDs []string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM role_permissions WHERE role_id = $1`, roleID); err != nil {
		return fmt.Errorf("clear role permissions: %w", err)
	}
	if err := insertRolePermissions(ctx, tx, roleID, permissionIDs); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// ListUserIDs devuelve los IDs de usuarios no eliminados con el rol asignado.
func (r *RoleRepo) ListUserIDs(ctx context.Context, roleID string) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT id FROM users WHERE role_id = $1 AND NOT deleted`, roleID)
	if err != nil {
		return nil, fmt.Errorf("list role users: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan user id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *RoleRepo) queryOne(ctx context.Context, query string, args ...any) (*entity.Role, error) {
	row := r.pool.QueryRow(ctx, query, args...)
	role, err := scanRole(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if err := r.loadPermissionIDs(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

func (r *RoleRepo) loadPermissionIDs(ctx context.Context, role *entity.Role) error {
	rows, err := r.pool.Query(ctx,
		`SELECT permission_id FROM role_permissions WHERE role_id = $1 ORDER BY permission_id`, role.ID)
	if err != nil {
		return fmt.Errorf("load role permission ids: %w", err)
	}
	defer rows.Close()

	role.PermissionIDs = role.PermissionIDs[:0]
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return fmt.Errorf("scan permission id: %w", err)
		}
		role.PermissionIDs = append(role.PermissionIDs, id)
	}
	return rows.Err()
}

func insertRolePermissions(ctx context.Context, tx pgx.Tx, roleID string, permissionIDs []string) error {
	for _, permID := range permissionIDs {
		_, err := tx.Exec(ctx,
			`INSERT INTO role_permissions (role_id, permission_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			roleID, permID)
		if err != nil {
			return fmt.Errorf("insert role permission: %w", err)
		}
	}
	return nil
}

// roleSearchText columna de búsqueda normalizada (sin acentos, minúsculas).
func roleSearchText(role *entity.Role) string {
	return textnorm.SearchKey(role.Name, role.Description)
}

func scanRole(row rowScanner) (*entity.Role, error) {
	var role entity.Role
	err := row.Scan(&role.ID, &role.Name, &role.Description, &role.Active, &role.IsSystem,
		&role.PermissionCount, &role.UserCount, &role.CreatedAt, &role.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan role: %w", err)
	}
	return &role, nil
}
