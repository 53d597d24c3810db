package usecase

import (
	"github.com/loudbaby/easyops-api/internal/domain"
	"github.com/loudbaby/easyops-api/internal/domain/entity"
	"github.com/loudbaby/easyops-api/internal/domain/repository"
)

// ProfileUseCase administración de perfiles. La identidad (alta de usuarios,
// sesiones) la maneja el proveedor de autenticación externo; aquí solo
// nombre visible y rol.
type ProfileUseCase struct {
	profileRepo repository.ProfileRepository
}

// NewProfileUseCase construye el caso de uso.
func NewProfileUseCase(profileRepo repository.ProfileRepository) *ProfileUseCase {
	return &ProfileUseCase{profileRepo: profileRepo}
}

// List lista todos los perfiles.
func (uc *ProfileUseCase) List() ([]*entity.Profile, error) {
	return uc.profileRepo.List()
}

// GetByID obtiene un perfil.
func (uc *ProfileUseCase) GetByID(id string) (*entity.Profile, error) {
	p, err := uc.profileRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// UpdateRole cambia el rol de un usuario (solo admin).
func (uc *ProfileUseCase) UpdateRole(id, role string) error {
	switch role {
	case entity.RoleAdmin, entity.RoleManager, entity.RoleStaff:
	default:
		return domain.ErrInvalidInput
	}
	if _, err := uc.GetByID(id); err != nil {
		return err
	}
	return uc.profileRepo.UpdateRole(id, role)
}
