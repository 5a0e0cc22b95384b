package auth

import (
	"context"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/cotelbo/cotel-admin-api/internal/application/dto"
	"github.com/cotelbo/cotel-admin-api/internal/domain"
	"github.com/cotelbo/cotel-admin-api/internal/domain/entity"
	"github.com/cotelbo/cotel-admin-api/internal/domain/repository"
	"github.com/cotelbo/cotel-admin-api/pkg/jwt"
)

// MinPasswordLen política mínima de contraseña.
const MinPasswordLen = 8

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de sesión: login, logout y cambio de contraseña.
type AuthUseCase struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
	resolver *Resolver
	cache    SnapshotCache
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth. cache puede ser nil.
func NewAuthUseCase(
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	resolver *Resolver,
	cache SnapshotCache,
	jwtCfg JWTConfig,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo: userRepo,
		roleRepo: roleRepo,
		resolver: resolver,
		cache:    cache,
		jwtCfg:   jwtCfg,
	}
}

// Login verifica código COTEL y contraseña, administra el contador de
// intentos fallidos (bloqueo al llegar a entity.MaxFailedLogins) y emite el
// JWT de la sesión. La bandera requires_password_change cubre tanto el primer
// ingreso (contraseña = código COTEL) como el reinicio administrativo.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if in.CotelCode <= 0 || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	user, err := uc.userRepo.GetByCotelCode(ctx, in.CotelCode)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Deleted {
		return nil, domain.ErrInvalidCredentials
	}
	if user.IsLocked {
		return nil, domain.ErrUserLocked
	}
	if !user.IsActive {
		return nil, domain.ErrUserInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		user.FailedLoginCount++
		if user.FailedLoginCount >= entity.MaxFailedLogins {
			user.IsLocked = true
		}
		user.UpdatedAt = time.Now()
		_ = uc.userRepo.Update(ctx, user)
		if user.IsLocked {
			return nil, domain.ErrUserLocked
		}
		return nil, domain.ErrInvalidCredentials
	}

	if user.FailedLoginCount > 0 {
		user.FailedLoginCount = 0
		user.UpdatedAt = time.Now()
		if err := uc.userRepo.Update(ctx, user); err != nil {
			return nil, err
		}
	}

	token, err := uc.issueToken(user)
	if err != nil {
		return nil, err
	}

	resp, err := uc.userResponse(ctx, user)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken:            token,
		User:                   *resp,
		RequiresPasswordChange: user.PasswordState != entity.PasswordOK,
	}, nil
}

// ChangePassword valida la política y actualiza la contraseña del propio
// usuario. Devuelve un token fresco: el anterior conserva el estado de
// contraseña previo en sus claims y seguiría bloqueado por el guard.
func (uc *AuthUseCase) ChangePassword(ctx context.Context, userID string, in dto.ChangePasswordRequest) (*dto.LoginResponse, error) {
	if in.NewPassword != in.ConfirmPassword {
		return nil, domain.ErrPasswordMismatch
	}
	if len(in.NewPassword) < MinPasswordLen {
		return nil, domain.ErrPasswordTooWeak
	}
	if in.NewPassword == in.OldPassword {
		return nil, domain.ErrPasswordUnchanged
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Deleted {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.OldPassword)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = string(hash)
	user.PasswordState = entity.PasswordOK
	user.FailedLoginCount = 0
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	if uc.cache != nil {
		_ = uc.cache.Invalidate(ctx, user.ID)
	}

	token, err := uc.issueToken(user)
	if err != nil {
		return nil, err
	}
	resp, err := uc.userResponse(ctx, user)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{AccessToken: token, User: *resp}, nil
}

// Logout invalida el snapshot de permisos del usuario. El token expira solo.
func (uc *AuthUseCase) Logout(ctx context.Context, userID string) error {
	if uc.cache != nil {
		return uc.cache.Invalidate(ctx, userID)
	}
	return nil
}

// Me devuelve la identidad de la sesión con sus permisos planos.
func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*dto.MeResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Deleted {
		return nil, domain.ErrUserNotFound
	}

	snap, err := uc.resolver.Snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	pairs := make([]dto.PermissionPair, 0, len(snap.Pairs))
	for _, p := range snap.Pairs {
		pairs = append(pairs, dto.PermissionPair{Resource: p.Resource, Action: string(p.Action)})
	}

	resp, err := uc.userResponse(ctx, user)
	if err != nil {
		return nil, err
	}
	return &dto.MeResponse{
		User:        *resp,
		Superuser:   user.IsSuperuser,
		Role:        snap.Role,
		Permissions: pairs,
	}, nil
}

// InitialPassword convención de primer ingreso: la contraseña es el código COTEL.
func InitialPassword(cotelCode int) string {
	return strconv.Itoa(cotelCode)
}

func (uc *AuthUseCase) issueToken(user *entity.User) (string, error) {
	return jwt.Generate(uc.jwtCfg.Secret, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes, jwt.Claims{
		UserID:        user.ID,
		CotelCode:     user.CotelCode,
		RoleID:        user.RoleID,
		Superuser:     user.IsSuperuser,
		PasswordState: user.PasswordState,
	})
}

func (uc *AuthUseCase) userResponse(ctx context.Context, user *entity.User) (*dto.UserResponse, error) {
	var roleInfo *dto.RoleSummary
	if user.RoleID != "" {
		role, err := uc.roleRepo.GetByID(ctx, user.RoleID)
		if err != nil {
			return nil, err
		}
		if role != nil {
			roleInfo = &dto.RoleSummary{ID: role.ID, Name: role.Name}
		}
	}
	return &dto.UserResponse{
		ID:               user.ID,
		CotelCode:        user.CotelCode,
		Names:            user.Names,
		Surnames:         user.Surnames,
		RoleID:           user.RoleID,
		RoleInfo:         roleInfo,
		IsActive:         user.IsActive,
		IsSuperuser:      user.IsSuperuser,
		IsLocked:         user.IsLocked,
		PasswordState:    user.PasswordState,
		FailedLoginCount: user.FailedLoginCount,
		Deleted:          user.Deleted,
		CreatedAt:        user.CreatedAt,
		UpdatedAt:        user.UpdatedAt,
	}, nil
}
