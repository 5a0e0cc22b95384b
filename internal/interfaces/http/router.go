package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cotelbo/cotel-admin-api/internal/application/auth"
	"github.com/cotelbo/cotel-admin-api/internal/application/importer"
	"github.com/cotelbo/cotel-admin-api/internal/application/report"
	"github.com/cotelbo/cotel-admin-api/internal/application/usecase"
	"github.com/cotelbo/cotel-admin-api/internal/domain/authz"
	"github.com/cotelbo/cotel-admin-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	Resolver     *auth.Resolver
	PermissionUC *usecase.PermissionUseCase
	RoleUC       *usecase.RoleUseCase
	UserUC       *usecase.UserUseCase
	WarehouseUC  *usecase.WarehouseUseCase
	LotUC        *usecase.LotUseCase
	ModelUC      *usecase.ModelUseCase
	EquipmentUC  *usecase.EquipmentUseCase
	ImportUC     *importer.UseCase
	ReportUC     *report.UseCase
	JWTSecret    string
}

// Router registra las rutas de la API. La cadena de guards es fija: token
// válido, contraseña al día y recién entonces permisos; cambiar contraseña y
// cerrar sesión quedan exentas del segundo guard.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC, deps.Resolver)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)

	authed := authGroup.Group("/", AuthMiddleware(deps.JWTSecret))
	authed.Post("/change-password", authHandler.ChangePassword)
	authed.Post("/logout", authHandler.Logout)

	session := authed.Group("/", RequirePasswordOK())
	session.Get("/me", authHandler.Me)
	session.Post("/can", authHandler.Can)

	// Rutas protegidas por la cadena completa de guards
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), RequirePasswordOK())

	guard := func(resource string, action entity.Action) fiber.Handler {
		return RequireAccess(deps.Resolver, authz.Resource(resource, action))
	}

	// Permisos
	permissions := protected.Group("/permisos")
	permissionHandler := NewPermissionHandler(deps.PermissionUC)
	permissions.Post("/", guard("permisos", entity.ActionCreate), permissionHandler.Create)
	permissions.Get("/", guard("permisos", entity.ActionRead), permissionHandler.List)
	permissions.Get("/:id", guard("permisos", entity.ActionRead), permissionHandler.GetByID)
	permissions.Put("/:id", guard("permisos", entity.ActionUpdate), permissionHandler.Update)
	permissions.Delete("/:id", guard("permisos", entity.ActionDelete), permissionHandler.Delete)

	// Roles
	roles := protected.Group("/roles")
	roleHandler := NewRoleHandler(deps.RoleUC)
	roles.Post("/", guard("roles", entity.ActionCreate), roleHandler.Create)
	roles.Get("/", guard("roles", entity.ActionRead), roleHandler.List)
	roles.Get("/:id", guard("roles", entity.ActionRead), roleHandler.GetByID)
	roles.Put("/:id", guard("roles", entity.ActionUpdate), roleHandler.Update)
	roles.Delete("/:id", guard("roles", entity.ActionDelete), roleHandler.Delete)

	// Usuarios
	users := protected.Group("/usuarios")
	userHandler := NewUserHandler(deps.UserUC)
	users.Post("/", guard("usuarios", entity.ActionCreate), userHandler.Create)
	users.Get("/", guard("usuarios", entity.ActionRead), userHandler.List)
	users.Get("/:id", guard("usuarios", entity.ActionRead), userHandler.GetByID)
	users.Put("/:id", guard("usuarios", entity.ActionUpdate), userHandler.Update)
	users.Post("/:id/desbloquear", guard("usuarios", entity.ActionUpdate), userHandler.Unlock)
	users.Post("/:id/reset-password", guard("usuarios", entity.ActionUpdate), userHandler.ResetPassword)
	users.Post("/:id/restaurar", guard("usuarios", entity.ActionUpdate), userHandler.Restore)
	users.Delete("/:id", guard("usuarios", entity.ActionDelete), userHandler.Delete)

	// Almacenes
	warehouses := protected.Group("/almacenes")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", guard("almacenes", entity.ActionCreate), warehouseHandler.Create)
	warehouses.Get("/", guard("almacenes", entity.ActionRead), warehouseHandler.List)
	warehouses.Get("/:id", guard("almacenes", entity.ActionRead), warehouseHandler.GetByID)
	warehouses.Put("/:id", guard("almacenes", entity.ActionUpdate), warehouseHandler.Update)
	warehouses.Post("/:id/restaurar", guard("almacenes", entity.ActionUpdate), warehouseHandler.Restore)
	warehouses.Delete("/:id", guard("almacenes", entity.ActionDelete), warehouseHandler.Delete)

	// Lotes
	lots := protected.Group("/lotes")
	lotHandler := NewLotHandler(deps.LotUC)
	equipmentHandler := NewEquipmentHandler(deps.EquipmentUC)
	lots.Post("/", guard("lotes", entity.ActionCreate), lotHandler.Create)
	lots.Get("/", guard("lotes", entity.ActionRead), lotHandler.List)
	lots.Get("/:id", guard("lotes", entity.ActionRead), lotHandler.GetByID)
	lots.Get("/:id/equipos", guard("equipos", entity.ActionRead), equipmentHandler.ListByLot)
	lots.Put("/:id", guard("lotes", entity.ActionUpdate), lotHandler.Update)
	lots.Post("/:id/restaurar", guard("lotes", entity.ActionUpdate), lotHandler.Restore)
	lots.Delete("/:id", guard("lotes", entity.ActionDelete), lotHandler.Delete)

	// Modelos
	models := protected.Group("/modelos")
	modelHandler := NewModelHandler(deps.ModelUC)
	models.Post("/", guard("modelos", entity.ActionCreate), modelHandler.Create)
	models.Get("/", guard("modelos", entity.ActionRead), modelHandler.List)
	models.Get("/:id", guard("modelos", entity.ActionRead), modelHandler.GetByID)
	models.Put("/:id", guard("modelos", entity.ActionUpdate), modelHandler.Update)
	models.Post("/:id/restaurar", guard("modelos", entity.ActionUpdate), modelHandler.Restore)
	models.Delete("/:id", guard("modelos", entity.ActionDelete), modelHandler.Delete)

	// Equipos (solo lectura; el alta es vía importación)
	equipment := protected.Group("/equipos")
	equipment.Get("/:id", guard("equipos", entity.ActionRead), equipmentHandler.GetByID)

	// Importación masiva
	imports := protected.Group("/importaciones")
	importHandler := NewImportHandler(deps.ImportUC)
	imports.Get("/plantilla", guard("equipos", entity.ActionCreate), importHandler.Template)
	imports.Post("/validar", guard("equipos", entity.ActionCreate), importHandler.Validate)
	imports.Post("/", guard("equipos", entity.ActionCreate), importHandler.Commit)
	imports.Get("/", guard("equipos", entity.ActionRead), importHandler.ListJobs)
	imports.Get("/:id", guard("equipos", entity.ActionRead), importHandler.GetJob)

	// Reportes
	reports := protected.Group("/reportes")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/inventario/:id", guard("reportes", entity.ActionRead), reportHandler.InventoryPDF)
}
