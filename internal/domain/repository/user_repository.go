package repository

import (
	"context"

	"github.com/cotelbo/cotel-admin-api/internal/domain/entity"
)

// UserFilter filtros de listado de usuarios.
type UserFilter struct {
	Search         string
	RoleID         string
	Active         *bool
	IncludeDeleted bool
	Limit          int
	Offset         int
}

// UserRepository puerto de persistencia de usuarios.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByCotelCode(ctx context.Context, code int) (*entity.User, error)
	List(ctx context.Context, f UserFilter) ([]*entity.User, int, error)
	Update(ctx context.Context, u *entity.User) error
	// SoftDelete marca el usuario como eliminado; Restore lo revierte.
	SoftDelete(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) error
}
