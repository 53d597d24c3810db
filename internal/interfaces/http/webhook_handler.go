package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/loudbaby/easyops-api/internal/application/dto"
	"github.com/loudbaby/easyops-api/internal/application/webhook"
	"github.com/loudbaby/easyops-api/internal/domain"
	"github.com/loudbaby/easyops-api/pkg/logger"
)

// Headers de firma del proveedor de webhooks del POS. El header legacy
// (v1) sigue llegando en cuentas antiguas.
const (
	signatureHeader       = "X-Square-Hmacsha256-Signature"
	legacySignatureHeader = "X-Square-Signature"
	timestampHeader       = "X-Square-Request-Timestamp"
)

// WebhookHandler recibe las notificaciones del POS (ruta pública, autenticada
// por firma HMAC, no por JWT).
type WebhookHandler struct {
	ingestor      *webhook.Ingestor
	secretPresent bool
	log           *logger.Logger
}

// NewWebhookHandler construye el handler. secretPresent=false significa que el
// secreto no está configurado y la ruta responde 500 sin procesar nada.
func NewWebhookHandler(ingestor *webhook.Ingestor, secretPresent bool, log *logger.Logger) *WebhookHandler {
	return &WebhookHandler{ingestor: ingestor, secretPresent: secretPresent, log: log}
}

// HandleSquare godoc
// @Summary      Recibir notificación del POS (firma HMAC)
// @Tags         webhooks
// @Accept       json
// @Produce      json
// @Param        X-Square-Hmacsha256-Signature  header  string  true  "Firma HMAC-SHA256 base64"
// @Success      200  {object}  map[string]bool
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /webhooks/square [post]
func (h *WebhookHandler) HandleSquare(c *fiber.Ctx) error {
	if !h.secretPresent {
		// Error del servidor, no del proveedor: el secreto nunca se configuró.
		h.log.Error().Msg("webhook recibido sin SQUARE_WEBHOOK_SECRET configurado")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "MISCONFIGURED", Message: "webhook no configurado"})
	}
	signature := c.Get(signatureHeader)
	if signature == "" {
		signature = c.Get(legacySignatureHeader)
	}
	if signature == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_SIGNATURE", Message: "header de firma requerido"})
	}

	_, err := h.ingestor.Process(c.Context(), webhook.InboundRequest{
		Signature:  signature,
		Timestamp:  c.Get(timestampHeader),
		RequestURL: c.BaseURL() + c.OriginalURL(),
		Body:       c.Body(),
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSignatureInvalid):
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_SIGNATURE", Message: "firma inválida"})
		case errors.Is(err, domain.ErrInvalidPayload):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PAYLOAD", Message: "payload inválido"})
		}
		// Fallo transitorio (DB caída, etc.): 500 para que el proveedor reintente.
		h.log.Error().Err(err).Msg("fallo procesando webhook")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error procesando el evento"})
	}

	// Duplicados y renglones fallidos responden 200: el proveedor no debe
	// reintentar una orden ya registrada.
	return c.JSON(fiber.Map{"success": true})
}
