package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/auth"
	"github.com/jhoicas/almacen-api/internal/application/ledger"
	"github.com/jhoicas/almacen-api/internal/application/report"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	CategoryUC   *usecase.CategoryUseCase
	ProductUC    *usecase.ProductUseCase
	Apply        *ledger.ApplyMovementUseCase
	Reconcile    *ledger.ReconcileUseCase
	MovementRepo repository.MovementRepository
	Exporter     *report.CSVExporter
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

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Categories (protegido)
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Inventory (protegido): movimientos, salida rápida, historial, export,
	// reconciliación y validación de CPF.
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.Apply, deps.Reconcile, deps.MovementRepo, deps.Exporter)
	invGroup.Post("/movements", inventoryHandler.RegisterMovement)
	invGroup.Post("/quick-exit", inventoryHandler.QuickExit)
	invGroup.Get("/movements", inventoryHandler.ListMovements)
	invGroup.Get("/movements/export", inventoryHandler.ExportMovements)

	// Solo un admin puede disparar la reconciliación global.
	invGroup.Post("/reconcile", RequireRole(entity.RoleAdmin), inventoryHandler.Reconcile)

	api.Get("/cpf/validate", AuthMiddleware(deps.JWTSecret), inventoryHandler.ValidateCPF)
}
