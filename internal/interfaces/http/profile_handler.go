package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/loudbaby/easyops-api/internal/application/dto"
	"github.com/loudbaby/easyops-api/internal/application/usecase"
	"github.com/loudbaby/easyops-api/internal/domain"
)

// ProfileHandler maneja las peticiones HTTP para perfiles (protegido).
type ProfileHandler struct {
	uc *usecase.ProfileUseCase
}

// NewProfileHandler construye el handler.
func NewProfileHandler(uc *usecase.ProfileUseCase) *ProfileHandler {
	return &ProfileHandler{uc: uc}
}

// List godoc
// @Summary      Listar perfiles
// @Tags         profiles
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  entity.Profile
// @Router       /api/profiles [get]
func (h *ProfileHandler) List(c *fiber.Ctx) error {
	profiles, err := h.uc.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(profiles)
}

// GetByID godoc
// @Summary      Obtener perfil por ID
// @Tags         profiles
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del perfil"
// @Success      200  {object}  entity.Profile
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/profiles/{id} [get]
func (h *ProfileHandler) GetByID(c *fiber.Ctx) error {
	p, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "perfil no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(p)
}

// UpdateRole godoc
// @Summary      Cambiar el rol de un usuario (solo admin)
// @Tags         profiles
// @Security     Bearer
// @Accept       json
// @Param        id    path  string  true  "ID del perfil"
// @Param        body  body  object  true  "{ role: admin | manager | staff }"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/profiles/{id}/role [put]
func (h *ProfileHandler) UpdateRole(c *fiber.Ctx) error {
	var in struct {
		Role string `json:"role"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.UpdateRole(c.Params("id"), in.Role); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "perfil no encontrado"})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "rol inválido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
