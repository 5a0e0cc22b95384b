package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cotelbo/cotel-admin-api/internal/domain"
	"github.com/cotelbo/cotel-admin-api/internal/domain/entity"
	"github.com/cotelbo/cotel-admin-api/internal/domain/repository"
	"github.com/cotelbo/cotel-admin-api/pkg/textnorm"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const selectUser = `
	SELECT u.id, u.cotel_code, u.names, u.surnames, COALESCE(u.role_id::text, ''),
	       u.password_hash, u.is_active, u.is_superuser, u.is_locked,
	       u.password_state, u.failed_login_count, u.deleted, u.deleted_at,
	       u.created_at, u.updated_at
	FROM users u`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	pool *pgxpool.Pool
}

// NewUserRepository construye el adaptador de persistencia de usuarios.
func NewUserRepository(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	query := `
		INSERT INTO users (id, cotel_code, names, surnames, role_id, password_hash,
		                   is_active, is_superuser, is_locked, password_state,
		                   failed_login_count, deleted, search_text, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, '')::uuid, $6, $7, $8, $9, $10, $11, false, $12, $13, $14)`
	_, err := r.pool.Exec(ctx, query,
		u.ID, u.CotelCode, u.Names, u.Surnames, u.RoleID, u.PasswordHash,
		u.IsActive, u.IsSuperuser, u.IsLocked, u.PasswordState,
		u.FailedLoginCount, userSearchText(u), u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID, incluyendo eliminados.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.queryOne(ctx, selectUser+` WHERE u.id = $1`, id)
}

// GetByCotelCode obtiene un usuario por su código COTEL (login).
func (r *UserRepo) GetByCotelCode(ctx context.Context, code int) (*entity.User, error) {
	return r.queryOne(ctx, selectUser+` WHERE u.cotel_code = $1 AND NOT u.deleted`, code)
}

// List lista usuarios con filtros y total sin paginar.
func (r *UserRepo) List(ctx context.Context, f repository.UserFilter) ([]*entity.User, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	n := 0
	if !f.IncludeDeleted {
		where += " AND NOT u.deleted"
	}
	if f.Search != "" {
		n++
		where += fmt.Sprintf(" AND u.search_text LIKE $%d", n)
		args = append(args, likePattern(f.Search))
	}
	if f.RoleID != "" {
		n++
		where += fmt.Sprintf(" AND u.role_id = $%d", n)
		args = append(args, f.RoleID)
	}
	if f.Active != nil {
		n++
		where += fmt.Sprintf(" AND u.is_active = $%d", n)
		args = append(args, *f.Active)
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users u`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	query := selectUser + where + fmt.Sprintf(" ORDER BY u.surnames, u.names LIMIT $%d OFFSET $%d", n+1, n+2)
	args = append(args, f.Limit, f.Offset)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, u)
	}
	return list, total, rows.Err()
}

// Update actualiza el usuario completo, recalculando el texto de búsqueda.
func (r *UserRepo) Update(ctx context.Context, u *entity.User) error {
	query := `
		UPDATE users SET names = $2, surnames = $3, role_id = NULLIF($4, '')::uuid,
		       password_hash = $5, is_active = $6, is_superuser = $7, is_locked = $8,
		       password_state = $9, failed_login_count = $10, search_text = $11,
		       updated_at = $12
		WHERE id = $1`
	_, err := r.pool.Exec(ctx, query,
		u.ID, u.Names, u.Surnames, u.RoleID, u.PasswordHash,
		u.IsActive, u.IsSuperuser, u.IsLocked, u.PasswordState,
		u.FailedLoginCount, userSearchText(u), u.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// SoftDelete marca el usuario como eliminado sin borrar el registro.
func (r *UserRepo) SoftDelete(ctx context.Context, id string) error {
	query := `UPDATE users SET deleted = true, deleted_at = $2, updated_at = $2 WHERE id = $1`
	if _, err := r.pool.Exec(ctx, query, id, time.Now()); err != nil {
		return fmt.Errorf("soft delete user: %w", err)
	}
	return nil
}

// Restore revierte la eliminación lógica.
func (r *UserRepo) Restore(ctx context.Context, id string) error {
	query := `UPDATE users SET deleted = false, deleted_at = NULL, updated_at = $2 WHERE id = $1`
	if _, err := r.pool.Exec(ctx, query, id, time.Now()); err != nil {
		return fmt.Errorf("restore user: %w", err)
	}
	return nil
}

func (r *UserRepo) queryOne(ctx context.Context, query string, args ...any) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, query, args...)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}

func scanUser(row rowScanner) (*entity.User, error) {
	var u entity.User
	err := row.Scan(&u.ID, &u.CotelCode, &u.Names, &u.Surnames, &u.RoleID,
		&u.PasswordHash, &u.IsActive, &u.IsSuperuser, &u.IsLocked,
		&u.PasswordState, &u.FailedLoginCount, &u.Deleted, &u.DeletedAt,
		&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}

// userSearchText texto normalizado para búsqueda sin acentos.
func userSearchText(u *entity.User) string {
	return textnorm.SearchKey(strconv.Itoa(u.CotelCode) + " " + u.Names + " " + u.Surnames)
}
