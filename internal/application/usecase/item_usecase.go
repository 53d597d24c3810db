package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/loudbaby/easyops-api/internal/application/dto"
	"github.com/loudbaby/easyops-api/internal/application/inventory"
	"github.com/loudbaby/easyops-api/internal/domain"
	"github.com/loudbaby/easyops-api/internal/domain/entity"
	"github.com/loudbaby/easyops-api/internal/domain/repository"
)

// ItemUseCase CRUD de artículos del catálogo. El agregado Quantity nace en
// cero y de ahí en adelante solo lo muta el motor de reconciliación.
type ItemUseCase struct {
	itemRepo repository.ItemRepository
	txRunner inventory.TxRunner
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(itemRepo repository.ItemRepository, txRunner inventory.TxRunner) *ItemUseCase {
	return &ItemUseCase{itemRepo: itemRepo, txRunner: txRunner}
}

// Create registra un artículo nuevo con stock agregado cero.
func (uc *ItemUseCase) Create(in dto.ItemRequest) (*entity.Item, error) {
	if in.Name == "" || in.Unit == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.CostPerUnit.IsNegative() || in.AlertThreshold.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	item := &entity.Item{
		ID:             uuid.New().String(),
		Name:           in.Name,
		Category:       in.Category,
		Unit:           in.Unit,
		CostPerUnit:    in.CostPerUnit,
		AlertThreshold: in.AlertThreshold,
		Barcode:        in.Barcode,
		AutoDeduct:     in.AutoDeduct,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.itemRepo.Create(item); err != nil {
		return nil, err
	}
	return item, nil
}

// GetByID obtiene un artículo.
func (uc *ItemUseCase) GetByID(id string) (*entity.Item, error) {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrItemNotFound
	}
	return item, nil
}

// List lista artículos paginados.
func (uc *ItemUseCase) List(limit, offset int) ([]*entity.Item, error) {
	return uc.itemRepo.List(limit, offset)
}

// Update actualiza los campos editables; nunca toca el agregado Quantity.
func (uc *ItemUseCase) Update(id string, in dto.ItemRequest) (*entity.Item, error) {
	item, err := uc.GetByID(id)
	if err != nil {
		return nil, err
	}
	if in.Name == "" || in.Unit == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.CostPerUnit.IsNegative() || in.AlertThreshold.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	item.Name = in.Name
	item.Category = in.Category
	item.Unit = in.Unit
	item.CostPerUnit = in.CostPerUnit
	item.AlertThreshold = in.AlertThreshold
	item.Barcode = in.Barcode
	item.AutoDeduct = in.AutoDeduct
	item.UpdatedAt = time.Now()
	if err := uc.itemRepo.Update(item); err != nil {
		return nil, err
	}
	return item, nil
}

// Delete elimina el artículo en cascada: stock por ubicación, libro y ventas
// caen en la misma transacción. Acción destructiva e irreversible (solo admin).
func (uc *ItemUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.GetByID(id); err != nil {
		return err
	}
	return uc.txRunner.Run(ctx, func(
		ledgerRepo repository.LedgerRepository,
		stockRepo repository.StockRepository,
		itemRepo repository.ItemRepository,
		saleRepo repository.SaleRepository,
	) error {
		if err := ledgerRepo.DeleteByItem(id); err != nil {
			return err
		}
		if err := saleRepo.DeleteByItem(id); err != nil {
			return err
		}
		if err := stockRepo.DeleteByItem(id); err != nil {
			return err
		}
		return itemRepo.Delete(id)
	})
}

// ToResponse mapea la entidad al DTO de respuesta.
func ToResponse(item *entity.Item) dto.ItemResponse {
	return dto.ItemResponse{
		ID:             item.ID,
		Name:           item.Name,
		Category:       item.Category,
		Unit:           item.Unit,
		CostPerUnit:    item.CostPerUnit,
		AlertThreshold: item.AlertThreshold,
		Barcode:        item.Barcode,
		Quantity:       item.Quantity,
		AutoDeduct:     item.AutoDeduct,
		CreatedAt:      item.CreatedAt,
		UpdatedAt:      item.UpdatedAt,
	}
}
