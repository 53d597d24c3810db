package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/loudbaby/easyops-api/internal/application/inventory"
	"github.com/loudbaby/easyops-api/internal/application/reporting"
	"github.com/loudbaby/easyops-api/internal/application/usecase"
	"github.com/loudbaby/easyops-api/internal/application/webhook"
	"github.com/loudbaby/easyops-api/internal/domain/entity"
	"github.com/loudbaby/easyops-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ItemUC        *usecase.ItemUseCase
	LocationUC    *usecase.LocationUseCase
	TaskUC        *usecase.TaskUseCase
	ProfileUC     *usecase.ProfileUseCase
	DateUC        *usecase.DateUseCase
	ReportUC      *reporting.ReportUseCase
	Engine        *inventory.ReconciliationEngine
	Ingestor      *webhook.Ingestor
	JWTSecret     string
	SquareSecret  string
	Log           *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	// Webhook del POS (público: autenticado por firma HMAC, no por JWT)
	webhookHandler := NewWebhookHandler(deps.Ingestor, deps.SquareSecret != "", deps.Log)
	app.Post("/webhooks/square", webhookHandler.HandleSquare)

	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Items (protegido; borrar es solo admin)
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Post("/", itemHandler.Create)
	items.Get("/", itemHandler.List)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", itemHandler.Update)
	items.Delete("/:id", RequireAdmin(), itemHandler.Delete)

	// Fechas de artículo
	dateHandler := NewDateHandler(deps.DateUC)
	items.Get("/:item_id/dates", dateHandler.ListByItem)

	// Locations (protegido; administrar es admin o manager)
	locations := protected.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations.Get("/", locationHandler.List)
	locations.Post("/", RequireRole(entity.RoleAdmin, entity.RoleManager), locationHandler.Create)
	locations.Put("/:id", RequireRole(entity.RoleAdmin, entity.RoleManager), locationHandler.Update)
	locations.Put("/:id/default", RequireRole(entity.RoleAdmin, entity.RoleManager), locationHandler.SetDefault)
	locations.Delete("/:id", RequireAdmin(), locationHandler.Delete)

	// Movimientos de inventario (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.Engine)
	invGroup.Post("/movements", inventoryHandler.ApplyMovement)

	// Reportes (protegido; heal es solo admin)
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/summary", reportHandler.Summary)
	reports.Get("/low-stock", reportHandler.LowStock)
	reports.Get("/cogs", reportHandler.COGS)
	reports.Get("/sales", reportHandler.SalesBySource)
	reports.Get("/activity", reportHandler.Activity)
	reports.Get("/drift", reportHandler.DriftAudit)
	reports.Post("/heal", RequireAdmin(), reportHandler.HealAggregates)

	// Tasks (protegido)
	tasks := protected.Group("/tasks")
	taskHandler := NewTaskHandler(deps.TaskUC)
	tasks.Post("/", taskHandler.Create)
	tasks.Get("/", taskHandler.List)
	tasks.Put("/:id", taskHandler.Update)
	tasks.Delete("/:id", taskHandler.Delete)

	// Profiles (protegido; cambiar roles es solo admin)
	profiles := protected.Group("/profiles")
	profileHandler := NewProfileHandler(deps.ProfileUC)
	profiles.Get("/", profileHandler.List)
	profiles.Get("/:id", profileHandler.GetByID)
	profiles.Put("/:id/role", RequireAdmin(), profileHandler.UpdateRole)

	// Fechas importantes (protegido)
	dates := protected.Group("/dates")
	dates.Post("/", dateHandler.Create)
	dates.Get("/upcoming", dateHandler.ListUpcoming)
	dates.Put("/:id/reminder-sent", dateHandler.MarkReminderSent)
	dates.Delete("/:id", dateHandler.Delete)
}
