package reporting

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/loudbaby/easyops-api/internal/domain"
	"github.com/loudbaby/easyops-api/internal/domain/repository"
	"github.com/loudbaby/easyops-api/pkg/logger"
)

// ReportUseCase fachada de solo lectura sobre el stock y el libro: valorización,
// stock bajo, COGS, feed de actividad y auditoría de deriva. La agregación
// pesada la hace la base de datos.
type ReportUseCase struct {
	reportRepo repository.ReportRepository
	log        *logger.Logger
}

// NewReportUseCase construye la fachada.
func NewReportUseCase(reportRepo repository.ReportRepository, log *logger.Logger) *ReportUseCase {
	return &ReportUseCase{reportRepo: reportRepo, log: log}
}

// Summary devuelve valorización total y conteo de artículos bajo umbral.
func (uc *ReportUseCase) Summary() (decimal.Decimal, []*repository.LowStockItem, error) {
	value, err := uc.reportRepo.InventoryValue()
	if err != nil {
		return decimal.Zero, nil, err
	}
	low, err := uc.reportRepo.LowStockItems()
	if err != nil {
		return decimal.Zero, nil, err
	}
	return value, low, nil
}

// LowStock lista los artículos en o por debajo de su umbral de alerta.
func (uc *ReportUseCase) LowStock() ([]*repository.LowStockItem, error) {
	return uc.reportRepo.LowStockItems()
}

// COGS calcula el costo de lo vendido en el periodo.
func (uc *ReportUseCase) COGS(from, to time.Time) (decimal.Decimal, error) {
	if to.Before(from) {
		return decimal.Zero, domain.ErrInvalidInput
	}
	return uc.reportRepo.COGS(from, to)
}

// SalesBySource totaliza ventas del periodo agrupadas por origen.
func (uc *ReportUseCase) SalesBySource(from, to time.Time) ([]*repository.SalesBySourceRow, error) {
	if to.Before(from) {
		return nil, domain.ErrInvalidInput
	}
	return uc.reportRepo.SalesBySource(from, to)
}

// ActivityFeed pagina el libro en orden cronológico inverso (itemID vacío = global).
func (uc *ReportUseCase) ActivityFeed(itemID string, limit, offset int) ([]*repository.ActivityEntry, error) {
	return uc.reportRepo.ActivityFeed(itemID, limit, offset)
}

// DriftAudit compara agregado, suma por ubicación y suma del libro por artículo.
func (uc *ReportUseCase) DriftAudit() ([]*repository.DriftRow, error) {
	rows, err := uc.reportRepo.DriftAudit()
	if err != nil {
		return nil, err
	}
	if len(rows) > 0 {
		// Deriva entre representaciones rompe la invariante de auditoría:
		// queda en el log para el operador además de la respuesta.
		uc.log.Warn().Int("items", len(rows)).Msg("auditoría de inventario encontró deriva entre representaciones")
	}
	return rows, nil
}

// HealAggregates re-suma las filas por ubicación hacia el agregado
// (job de reconciliación periódica, expuesto como acción de admin).
func (uc *ReportUseCase) HealAggregates() (int64, error) {
	fixed, err := uc.reportRepo.HealAggregates()
	if err != nil {
		return 0, err
	}
	if fixed > 0 {
		uc.log.Warn().Int64("items", fixed).Msg("agregados corregidos re-sumando stock por ubicación")
	}
	return fixed, nil
}
