package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/loudbaby/easyops-api/internal/application/dto"
	"github.com/loudbaby/easyops-api/internal/domain"
	"github.com/loudbaby/easyops-api/internal/domain/entity"
	"github.com/loudbaby/easyops-api/internal/domain/repository"
)

// DateUseCase fechas importantes (de artículo o generales) y la bandera
// one-shot de recordatorio que consume el job externo de notificaciones.
type DateUseCase struct {
	dateRepo repository.ImportantDateRepository
	itemRepo repository.ItemRepository
}

// NewDateUseCase construye el caso de uso.
func NewDateUseCase(dateRepo repository.ImportantDateRepository, itemRepo repository.ItemRepository) *DateUseCase {
	return &DateUseCase{dateRepo: dateRepo, itemRepo: itemRepo}
}

// Create registra una fecha importante; con ItemID valida que el artículo exista.
func (uc *DateUseCase) Create(in dto.ImportantDateRequest) (*entity.ImportantDate, error) {
	if in.Title == "" || in.Date.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	if in.ItemID != "" {
		item, err := uc.itemRepo.GetByID(in.ItemID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, domain.ErrItemNotFound
		}
	}
	now := time.Now()
	date := &entity.ImportantDate{
		ID:        uuid.New().String(),
		ItemID:    in.ItemID,
		Title:     in.Title,
		Date:      in.Date,
		Notify:    in.Notify,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.dateRepo.Create(date); err != nil {
		return nil, err
	}
	return date, nil
}

// ListByItem lista las fechas de un artículo.
func (uc *DateUseCase) ListByItem(itemID string) ([]*entity.ImportantDate, error) {
	return uc.dateRepo.ListByItem(itemID)
}

// ListUpcoming devuelve las fechas notificables dentro de la ventana dada.
func (uc *DateUseCase) ListUpcoming(days int) ([]*entity.ImportantDate, error) {
	if days <= 0 {
		days = 7
	}
	return uc.dateRepo.ListUpcoming(time.Now().AddDate(0, 0, days))
}

// MarkReminderSent voltea la bandera one-shot; la llama el job externo después
// de enviar el aviso para no duplicar notificaciones.
func (uc *DateUseCase) MarkReminderSent(id string) error {
	return uc.dateRepo.MarkReminderSent(id)
}

// Delete elimina una fecha importante.
func (uc *DateUseCase) Delete(id string) error {
	return uc.dateRepo.Delete(id)
}
