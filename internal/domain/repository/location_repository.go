package repository

import "github.com/loudbaby/easyops-api/internal/domain/entity"

// LocationRepository define el puerto de persistencia para ubicaciones.
type LocationRepository interface {
	Create(location *entity.Location) error
	GetByID(id string) (*entity.Location, error)
	GetDefault() (*entity.Location, error)
	List() ([]*entity.Location, error)
	Update(location *entity.Location) error
	// SetDefault marca la ubicación como predeterminada y desmarca el resto en
	// una sola sentencia (sin ventana de dos escrituras).
	SetDefault(id string) error
	// Delete elimina la ubicación; falla con ErrLocationInUse si algún artículo
	// conserva stock distinto de cero en ella.
	Delete(id string) error
}
