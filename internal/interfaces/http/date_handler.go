package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/loudbaby/easyops-api/internal/application/dto"
	"github.com/loudbaby/easyops-api/internal/application/usecase"
	"github.com/loudbaby/easyops-api/internal/domain"
	"github.com/loudbaby/easyops-api/internal/domain/entity"
)

// DateHandler maneja las peticiones HTTP para fechas importantes (protegido).
type DateHandler struct {
	uc *usecase.DateUseCase
}

// NewDateHandler construye el handler.
func NewDateHandler(uc *usecase.DateUseCase) *DateHandler {
	return &DateHandler{uc: uc}
}

func toDateResponse(d *entity.ImportantDate) dto.ImportantDateResponse {
	return dto.ImportantDateResponse{
		ID:           d.ID,
		ItemID:       d.ItemID,
		Title:        d.Title,
		Date:         d.Date,
		Notify:       d.Notify,
		ReminderSent: d.ReminderSent,
	}
}

// Create godoc
// @Summary      Crear fecha importante (item_id vacío = general)
// @Tags         dates
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ImportantDateRequest  true  "Fecha"
// @Success      201   {object}  dto.ImportantDateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/dates [post]
func (h *DateHandler) Create(c *fiber.Ctx) error {
	var in dto.ImportantDateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	d, err := h.uc.Create(in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "title y date son requeridos"})
		case errors.Is(err, domain.ErrItemNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "artículo no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(toDateResponse(d))
}

// ListByItem godoc
// @Summary      Listar fechas de un artículo
// @Tags         dates
// @Security     Bearer
// @Produce      json
// @Param        item_id  path  string  true  "ID del artículo"
// @Success      200      {array}  dto.ImportantDateResponse
// @Router       /api/items/{item_id}/dates [get]
func (h *DateHandler) ListByItem(c *fiber.Ctx) error {
	dates, err := h.uc.ListByItem(c.Params("item_id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.ImportantDateResponse, 0, len(dates))
	for _, d := range dates {
		out = append(out, toDateResponse(d))
	}
	return c.JSON(out)
}

// ListUpcoming godoc
// @Summary      Fechas notificables próximas (ventana en días)
// @Tags         dates
// @Security     Bearer
// @Produce      json
// @Param        days  query  int  false  "Ventana en días"  default(7)
// @Success      200   {array}  dto.ImportantDateResponse
// @Router       /api/dates/upcoming [get]
func (h *DateHandler) ListUpcoming(c *fiber.Ctx) error {
	dates, err := h.uc.ListUpcoming(c.QueryInt("days", 7))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.ImportantDateResponse, 0, len(dates))
	for _, d := range dates {
		out = append(out, toDateResponse(d))
	}
	return c.JSON(out)
}

// MarkReminderSent godoc
// @Summary      Marcar recordatorio como enviado (idempotente)
// @Tags         dates
// @Security     Bearer
// @Param        id  path  string  true  "ID de la fecha"
// @Success      204
// @Router       /api/dates/{id}/reminder-sent [put]
func (h *DateHandler) MarkReminderSent(c *fiber.Ctx) error {
	if err := h.uc.MarkReminderSent(c.Params("id")); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Delete godoc
// @Summary      Eliminar fecha importante
// @Tags         dates
// @Security     Bearer
// @Param        id  path  string  true  "ID de la fecha"
// @Success      204
// @Router       /api/dates/{id} [delete]
func (h *DateHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
