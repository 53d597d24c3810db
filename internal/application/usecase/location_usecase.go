package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/loudbaby/easyops-api/internal/application/dto"
	"github.com/loudbaby/easyops-api/internal/domain"
	"github.com/loudbaby/easyops-api/internal/domain/entity"
	"github.com/loudbaby/easyops-api/internal/domain/repository"
)

// LocationUseCase CRUD de ubicaciones de almacenamiento.
type LocationUseCase struct {
	locationRepo repository.LocationRepository
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(locationRepo repository.LocationRepository) *LocationUseCase {
	return &LocationUseCase{locationRepo: locationRepo}
}

// Create registra una ubicación. La primera creada queda como predeterminada.
func (uc *LocationUseCase) Create(in dto.LocationRequest) (*entity.Location, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.locationRepo.List()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	loc := &entity.Location{
		ID:        uuid.New().String(),
		Name:      in.Name,
		IsDefault: len(existing) == 0,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.locationRepo.Create(loc); err != nil {
		return nil, err
	}
	return loc, nil
}

// List lista todas las ubicaciones.
func (uc *LocationUseCase) List() ([]*entity.Location, error) {
	return uc.locationRepo.List()
}

// Update renombra una ubicación.
func (uc *LocationUseCase) Update(id string, in dto.LocationRequest) (*entity.Location, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	loc, err := uc.locationRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, domain.ErrLocationNotFound
	}
	loc.Name = in.Name
	loc.UpdatedAt = time.Now()
	if err := uc.locationRepo.Update(loc); err != nil {
		return nil, err
	}
	return loc, nil
}

// SetDefault marca la ubicación como predeterminada. Una sola sentencia en el
// repositorio: no existe la ventana desmarcar-luego-marcar.
func (uc *LocationUseCase) SetDefault(id string) error {
	loc, err := uc.locationRepo.GetByID(id)
	if err != nil {
		return err
	}
	if loc == nil {
		return domain.ErrLocationNotFound
	}
	return uc.locationRepo.SetDefault(id)
}

// Delete elimina una ubicación sin stock. Con stock devuelve ErrLocationInUse.
func (uc *LocationUseCase) Delete(id string) error {
	loc, err := uc.locationRepo.GetByID(id)
	if err != nil {
		return err
	}
	if loc == nil {
		return domain.ErrLocationNotFound
	}
	return uc.locationRepo.Delete(id)
}
