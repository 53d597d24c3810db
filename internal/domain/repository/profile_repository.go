package repository

import "github.com/loudbaby/easyops-api/internal/domain/entity"

// ProfileRepository define el puerto de persistencia para perfiles de usuario.
type ProfileRepository interface {
	Upsert(profile *entity.Profile) error
	GetByID(id string) (*entity.Profile, error)
	List() ([]*entity.Profile, error)
	UpdateRole(id, role string) error
}
