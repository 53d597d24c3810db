package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrItemNotFound       = errors.New("artículo no encontrado")
	ErrLocationNotFound   = errors.New("ubicación no encontrada")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInvalidQuantity    = errors.New("cantidad inválida")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrLocationInUse      = errors.New("la ubicación todavía tiene stock")
	ErrDuplicateEvent     = errors.New("evento de webhook ya procesado")
	ErrSignatureInvalid   = errors.New("firma de webhook inválida")
	ErrInvalidPayload     = errors.New("payload de webhook inválido")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrStorageUnavailable = errors.New("almacenamiento no disponible")
)
