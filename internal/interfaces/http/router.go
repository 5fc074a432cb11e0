package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Consumibles-api/internal/application/auth"
	"github.com/jhoicas/Consumibles-api/internal/application/depletion"
	"github.com/jhoicas/Consumibles-api/internal/application/reports"
	"github.com/jhoicas/Consumibles-api/internal/application/usecase"
	"github.com/jhoicas/Consumibles-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	StoreUC      *usecase.StoreUseCase
	ProductUC    *usecase.ProductUseCase
	RecordUsage  *depletion.RecordUsageUseCase
	UsageHistory *depletion.UsageHistoryUseCase
	LowStock     *reports.LowStockReportUseCase
	AuthUC       *auth.AuthUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Alta de tienda (público: crea la tienda y su admin)
	storeHandler := NewStoreHandler(deps.StoreUC)
	api.Post("/stores/register", storeHandler.Register)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Stores (protegido; cada tienda solo se ve a sí misma)
	stores := protected.Group("/stores")
	stores.Get("/:id", storeHandler.GetByID)
	stores.Put("/:id", storeHandler.Update)

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	usageHandler := NewUsageHandler(deps.RecordUsage, deps.UsageHistory)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	// /usage antes que /:id para que Fiber no lo capture como parámetro.
	products.Post("/usage", usageHandler.RecordUsage)
	products.Get("/:id/usage", usageHandler.History)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Reports (protegido, solo admin)
	reportsGroup := protected.Group("/reports", RequireRole(entity.RoleAdmin))
	reportHandler := NewReportHandler(deps.LowStock)
	reportsGroup.Get("/low-stock", reportHandler.LowStock)
}
