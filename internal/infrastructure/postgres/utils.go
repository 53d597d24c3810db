package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Código SQLSTATE de unique_violation. Lo usan los repos de items (barcode)
// y de webhook_events (event_id, la garantía de deduplicación).
const uniqueViolationCode = "23505"

// isUniqueViolation verifica si un error es una violación de constraint único.
// El fallback por texto cubre errores re-envueltos por poolers intermedios.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolationCode
	}
	return strings.Contains(err.Error(), uniqueViolationCode)
}
