package repository

import "github.com/loudbaby/easyops-api/internal/domain/entity"

// SaleRepository define el puerto de persistencia para ventas.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	ListRecent(limit, offset int) ([]*entity.Sale, error)
	DeleteByItem(itemID string) error
}
