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
	"github.com/jhoicas/Consumibles-api/internal/application/auth"
	appdepletion "github.com/jhoicas/Consumibles-api/internal/application/depletion"
	"github.com/jhoicas/Consumibles-api/internal/application/reports"
	"github.com/jhoicas/Consumibles-api/internal/application/usecase"
	domdepletion "github.com/jhoicas/Consumibles-api/internal/domain/depletion"
	infrapdf "github.com/jhoicas/Consumibles-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Consumibles-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Consumibles-api/internal/interfaces/http"
	"github.com/jhoicas/Consumibles-api/pkg/config"
	"github.com/jhoicas/Consumibles-api/pkg/logger"
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
		Str("depletion_strategy", cfg.Depletion.Strategy).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	storeRepo := postgres.NewStoreRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	eventRepo := postgres.NewUsageEventRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	recordUsageUC := appdepletion.NewRecordUsageUseCase(
		txRunner,
		domdepletion.Strategy(cfg.Depletion.Strategy),
		cfg.Depletion.HistoryLimit,
	)
	usageHistoryUC := appdepletion.NewUsageHistoryUseCase(eventRepo, productRepo)
	productUC := usecase.NewProductUseCase(productRepo, txRunner)
	storeUC := usecase.NewStoreUseCase(storeRepo, txRunner)
	authUC := auth.NewAuthUseCase(userRepo, storeRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// PDF: reporte de stock bajo ordenado por urgencia
	reportGenerator := infrapdf.NewMarotoReportGenerator()
	lowStockUC := reports.NewLowStockReportUseCase(productRepo, storeRepo, reportGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Consumibles API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		StoreUC:      storeUC,
		ProductUC:    productUC,
		RecordUsage:  recordUsageUC,
		UsageHistory: usageHistoryUC,
		LowStock:     lowStockUC,
		AuthUC:       authUC,
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
