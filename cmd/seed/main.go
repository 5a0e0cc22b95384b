// seed puebla los datos mínimos del sistema: el catálogo de permisos
// (recurso × acción), los roles de sistema Administrador y Consulta, y el
// superusuario inicial.
//
// Uso: go run ./cmd/seed
// El código COTEL del superusuario sale de SEED_SUPERUSER_CODE (default
// 100000); su contraseña inicial es el propio código, con cambio obligatorio.
// La operación es idempotente: lo que ya existe se conserva.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/cotelbo/cotel-admin-api/internal/domain/entity"
	"github.com/cotelbo/cotel-admin-api/internal/domain/repository"
	"github.com/cotelbo/cotel-admin-api/internal/infrastructure/postgres"
	"github.com/cotelbo/cotel-admin-api/pkg/config"
	"github.com/cotelbo/cotel-admin-api/pkg/logger"
)

// resources catálogo de recursos del panel administrativo.
var resources = []string{
	"usuarios", "roles", "permisos",
	"almacenes", "lotes", "modelos", "equipos", "reportes",
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"}).Component("seed")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	permRepo := postgres.NewPermissionRepository(pool)
	roleRepo := postgres.NewRoleRepository(pool)
	userRepo := postgres.NewUserRepository(pool)

	allIDs, readIDs, err := seedPermissions(ctx, permRepo)
	if err != nil {
		log.Fatal().Err(err).Msg("sembrar permisos")
	}
	log.Info().Int("total", len(allIDs)).Msg("catálogo de permisos listo")

	adminRole, err := seedRole(ctx, roleRepo, "Administrador", "Acceso completo al panel", allIDs)
	if err != nil {
		log.Fatal().Err(err).Msg("sembrar rol Administrador")
	}
	if _, err := seedRole(ctx, roleRepo, "Consulta", "Solo lectura", readIDs); err != nil {
		log.Fatal().Err(err).Msg("sembrar rol Consulta")
	}

	code := superuserCode()
	if err := seedSuperuser(ctx, userRepo, adminRole.ID, code); err != nil {
		log.Fatal().Err(err).Msg("sembrar superusuario")
	}
	log.Info().Int("cotel_code", code).Msg("superusuario listo (contraseña inicial = código COTEL)")
}

// seedPermissions crea el catálogo recurso × acción. Devuelve los IDs de
// todos los permisos y los de solo lectura.
func seedPermissions(ctx context.Context, repo repository.PermissionRepository) (all, read []string, err error) {
	now := time.Now()
	for _, resource := range resources {
		for _, action := range entity.Actions() {
			existing, err := repo.GetByPair(ctx, resource, action)
			if err != nil {
				return nil, nil, err
			}
			if existing == nil {
				existing = &entity.Permission{
					ID:          uuid.New().String(),
					Resource:    resource,
					Action:      action,
					Description: fmt.Sprintf("%s sobre %s", action, resource),
					Active:      true,
					CreatedAt:   now,
					UpdatedAt:   now,
				}
				if err := repo.Create(ctx, existing); err != nil {
					return nil, nil, err
				}
			}
			all = append(all, existing.ID)
			if action == entity.ActionRead {
				read = append(read, existing.ID)
			}
		}
	}
	return all, read, nil
}

// seedRole crea un rol de sistema si no existe; si existe, reconcilia su
// conjunto de permisos con el esperado.
func seedRole(ctx context.Context, repo repository.RoleRepository, name, description string, permIDs []string) (*entity.Role, error) {
	existing, err := repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if err := repo.ReplacePermissions(ctx, existing.ID, permIDs); err != nil {
			return nil, err
		}
		return existing, nil
	}
	now := time.Now()
	role := &entity.Role{
		ID:            uuid.New().String(),
		Name:          name,
		Description:   description,
		Active:        true,
		IsSystem:      true,
		PermissionIDs: permIDs,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := repo.Create(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

func seedSuperuser(ctx context.Context, repo repository.UserRepository, roleID string, code int) error {
	existing, err := repo.GetByCotelCode(ctx, code)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(strconv.Itoa(code)), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	now := time.Now()
	return repo.Create(ctx, &entity.User{
		ID:            uuid.New().String(),
		CotelCode:     code,
		Names:         "Administrador",
		Surnames:      "del Sistema",
		RoleID:        roleID,
		PasswordHash:  string(hash),
		IsActive:      true,
		IsSuperuser:   true,
		PasswordState: entity.PasswordChangeRequired,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
}

func superuserCode() int {
	if raw := os.Getenv("SEED_SUPERUSER_CODE"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			return n
		}
	}
	return 100000
}
