package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/loudbaby/easyops-api/internal/application/dto"
	"github.com/loudbaby/easyops-api/internal/application/reporting"
	"github.com/loudbaby/easyops-api/internal/domain"
)

// ReportHandler fachada de reportes de solo lectura (protegido).
type ReportHandler struct {
	uc *reporting.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reporting.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Summary godoc
// @Summary      Resumen del tablero: valorización y stock bajo
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SummaryResponse
// @Router       /api/reports/summary [get]
func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	value, low, err := h.uc.Summary()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.SummaryResponse{InventoryValue: value, LowStockCount: len(low)})
}

// LowStock godoc
// @Summary      Artículos en o por debajo de su umbral de alerta
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  repository.LowStockItem
// @Router       /api/reports/low-stock [get]
func (h *ReportHandler) LowStock(c *fiber.Ctx) error {
	low, err := h.uc.LowStock()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(low)
}

// COGS godoc
// @Summary      Costo de lo vendido en un periodo
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  true  "Inicio (RFC3339)"
// @Param        to    query  string  true  "Fin (RFC3339)"
// @Success      200   {object}  dto.COGSResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reports/cogs [get]
func (h *ReportHandler) COGS(c *fiber.Ctx) error {
	from, err := time.Parse(time.RFC3339, c.Query("from"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido (RFC3339)"})
	}
	to, err := time.Parse(time.RFC3339, c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido (RFC3339)"})
	}
	cogs, err := h.uc.COGS(from, to)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to debe ser posterior a from"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.COGSResponse{From: from, To: to, COGS: cogs})
}

// SalesBySource godoc
// @Summary      Totales de venta del periodo por origen
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  true  "Inicio (RFC3339)"
// @Param        to    query  string  true  "Fin (RFC3339)"
// @Success      200   {array}  dto.SalesBySourceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reports/sales [get]
func (h *ReportHandler) SalesBySource(c *fiber.Ctx) error {
	from, err := time.Parse(time.RFC3339, c.Query("from"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido (RFC3339)"})
	}
	to, err := time.Parse(time.RFC3339, c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido (RFC3339)"})
	}
	rows, err := h.uc.SalesBySource(from, to)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to debe ser posterior a from"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.SalesBySourceResponse, 0, len(rows))
	for _, s := range rows {
		out = append(out, dto.SalesBySourceResponse{Source: s.Source, Count: s.Count, Total: s.Total})
	}
	return c.JSON(out)
}

// Activity godoc
// @Summary      Feed de actividad del libro de inventario
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        item_id  query  string  false  "Filtrar por artículo"
// @Param        limit    query  int     false  "Límite"   default(20)
// @Param        offset   query  int     false  "Offset"   default(0)
// @Success      200      {array}  dto.ActivityEntryResponse
// @Router       /api/reports/activity [get]
func (h *ReportHandler) Activity(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	entries, err := h.uc.ActivityFeed(c.Query("item_id"), page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.ActivityEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.ActivityEntryResponse{
			EntryID:       e.EntryID,
			ItemID:        e.ItemID,
			ItemName:      e.ItemName,
			ChangeType:    e.ChangeType,
			QuantityDelta: e.QuantityDelta,
			UnitCost:      e.UnitCost,
			UserName:      e.UserName,
			Notes:         e.Notes,
			CreatedAt:     e.CreatedAt,
		})
	}
	return c.JSON(out)
}

// DriftAudit godoc
// @Summary      Auditoría de deriva entre agregado, ubicaciones y libro
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.DriftRowResponse
// @Router       /api/reports/drift [get]
func (h *ReportHandler) DriftAudit(c *fiber.Ctx) error {
	rows, err := h.uc.DriftAudit()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.DriftRowResponse, 0, len(rows))
	for _, d := range rows {
		out = append(out, dto.DriftRowResponse{
			ItemID:      d.ItemID,
			Name:        d.Name,
			Aggregate:   d.Aggregate,
			LocationSum: d.LocationSum,
			LedgerSum:   d.LedgerSum,
		})
	}
	return c.JSON(out)
}

// HealAggregates godoc
// @Summary      Re-sumar agregados desde el stock por ubicación (solo admin)
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]int64
// @Router       /api/reports/heal [post]
func (h *ReportHandler) HealAggregates(c *fiber.Ctx) error {
	fixed, err := h.uc.HealAggregates()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"fixed": fixed})
}
