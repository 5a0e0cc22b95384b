package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/cotelbo/cotel-admin-api/internal/application/auth"
	"github.com/cotelbo/cotel-admin-api/internal/application/importer"
	"github.com/cotelbo/cotel-admin-api/internal/application/report"
	"github.com/cotelbo/cotel-admin-api/internal/application/usecase"
	infracache "github.com/cotelbo/cotel-admin-api/internal/infrastructure/cache"
	infraexcel "github.com/cotelbo/cotel-admin-api/internal/infrastructure/excel"
	infrapdf "github.com/cotelbo/cotel-admin-api/internal/infrastructure/pdf"
	"github.com/cotelbo/cotel-admin-api/internal/infrastructure/postgres"
	httpRouter "github.com/cotelbo/cotel-admin-api/internal/interfaces/http"
	"github.com/cotelbo/cotel-admin-api/pkg/config"
	"github.com/cotelbo/cotel-admin-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Cache de snapshots de permisos. Si Redis no está disponible la
	// aplicación arranca igual y el resolver trabaja solo contra la DB.
	var snapshotCache auth.SnapshotCache
	redisCache, err := infracache.NewRedisSnapshotCache(ctx, cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("Redis no disponible, permisos sin cache")
	} else {
		snapshotCache = redisCache
		defer redisCache.Close()
	}

	permissionRepo := postgres.NewPermissionRepository(pool)
	roleRepo := postgres.NewRoleRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	lotRepo := postgres.NewLotRepository(pool)
	modelRepo := postgres.NewModelRepository(pool)
	equipmentRepo := postgres.NewEquipmentRepository(pool)
	importJobRepo := postgres.NewImportJobRepository(pool)

	resolver := auth.NewResolver(userRepo, roleRepo, permissionRepo, snapshotCache)
	authUC := auth.NewAuthUseCase(userRepo, roleRepo, resolver, snapshotCache, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	permissionUC := usecase.NewPermissionUseCase(permissionRepo)
	roleUC := usecase.NewRoleUseCase(roleRepo, permissionRepo, snapshotCache)
	userUC := usecase.NewUserUseCase(userRepo, roleRepo, snapshotCache)
	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo)
	lotUC := usecase.NewLotUseCase(lotRepo, warehouseRepo)
	modelUC := usecase.NewModelUseCase(modelRepo)
	equipmentUC := usecase.NewEquipmentUseCase(equipmentRepo, lotRepo, modelRepo)

	importUC := importer.NewUseCase(
		importJobRepo, lotRepo, modelRepo, equipmentRepo,
		infraexcel.NewParser(), infraexcel.NewTemplateBuilder(),
		importer.Limits{
			MaxFileBytes: cfg.Import.MaxFileBytes,
			MaxErrorRows: cfg.Import.MaxErrorRows,
		},
	)

	reportUC := report.NewUseCase(
		warehouseRepo, lotRepo, modelRepo, equipmentRepo,
		infrapdf.NewMarotoReportGenerator(),
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    int(cfg.Import.MaxFileBytes) + 1024*1024,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs. El middleware hace
	// panic si el spec no existe, así que solo se registra cuando el archivo
	// está presente.
	const swaggerSpec = "./docs/swagger.json"
	if _, err := os.Stat(swaggerSpec); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerSpec,
			Path:     "docs",
			Title:    "COTEL Admin API",
		}))
	} else {
		log.Warn().Str("file", swaggerSpec).Msg("swagger.json no encontrado, /docs deshabilitado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		Resolver:     resolver,
		PermissionUC: permissionUC,
		RoleUC:       roleUC,
		UserUC:       userUC,
		WarehouseUC:  warehouseUC,
		LotUC:        lotUC,
		ModelUC:      modelUC,
		EquipmentUC:  equipmentUC,
		ImportUC:     importUC,
		ReportUC:     reportUC,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
