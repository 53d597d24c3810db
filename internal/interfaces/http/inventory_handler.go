package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/loudbaby/easyops-api/internal/application/dto"
	"github.com/loudbaby/easyops-api/internal/application/inventory"
	"github.com/loudbaby/easyops-api/internal/domain"
)

// InventoryHandler expone el motor de reconciliación por HTTP (protegido).
type InventoryHandler struct {
	engine *inventory.ReconciliationEngine
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(engine *inventory.ReconciliationEngine) *InventoryHandler {
	return &InventoryHandler{engine: engine}
}

// ApplyMovement godoc
// @Summary      Aplicar un movimiento de stock
// @Description  kind: RECEIVE, CONSUME, SELL o ADJUST. AUTO_DEDUCT solo entra por el webhook del POS.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MovementRequest  true  "Movimiento"
// @Success      200   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) ApplyMovement(c *fiber.Ctx) error {
	var in dto.MovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	kind := inventory.MovementKind(in.Kind)
	if kind == inventory.MovementAutoDeduct {
		// Las auto-deducciones solo entran por el webhook del POS.
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "AUTO_DEDUCT no se acepta por esta ruta"})
	}
	result, err := h.engine.ApplyMovement(c.Context(), inventory.MovementInput{
		Kind:          kind,
		ItemID:        in.ItemID,
		LocationID:    in.LocationID,
		Quantity:      in.Quantity,
		Reason:        in.Reason,
		UnitPrice:     in.UnitPrice,
		PaymentMethod: in.PaymentMethod,
		CustomerName:  in.CustomerName,
		UserID:        GetUserID(c),
		Notes:         in.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInvalidQuantity):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		case errors.Is(err, domain.ErrItemNotFound), errors.Is(err, domain.ErrLocationNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
		case errors.Is(err, domain.ErrInsufficientStock):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente para la venta"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.MovementResponse{
		NewQuantity:  result.NewAggregate,
		AppliedDelta: result.AppliedDelta,
		SaleID:       result.SaleID,
	})
}
