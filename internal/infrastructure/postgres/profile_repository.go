package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/loudbaby/easyops-api/internal/domain"
	"github.com/loudbaby/easyops-api/internal/domain/entity"
	"github.com/loudbaby/easyops-api/internal/domain/repository"
)

var _ repository.ProfileRepository = (*ProfileRepo)(nil)

// ProfileRepo implementación de ProfileRepository sobre PostgreSQL.
type ProfileRepo struct {
	q Querier
}

// NewProfileRepository construye el adaptador de perfiles. Pasar pool o tx (Querier).
func NewProfileRepository(q Querier) *ProfileRepo {
	return &ProfileRepo{q: q}
}

// Upsert crea o actualiza el perfil. El ID viene del proveedor de identidad,
// así que la primera petición autenticada de un usuario crea su fila.
func (r *ProfileRepo) Upsert(profile *entity.Profile) error {
	query := `
		INSERT INTO profiles (id, display_name, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id)
		DO UPDATE SET display_name = EXCLUDED.display_name, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		profile.ID, profile.DisplayName, profile.Role, profile.CreatedAt, profile.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}

// GetByID obtiene un perfil por ID.
func (r *ProfileRepo) GetByID(id string) (*entity.Profile, error) {
	var p entity.Profile
	err := r.q.QueryRow(context.Background(),
		`SELECT id, display_name, role, created_at, updated_at FROM profiles WHERE id = $1`, id,
	).Scan(&p.ID, &p.DisplayName, &p.Role, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &p, nil
}

// List lista todos los perfiles por nombre.
func (r *ProfileRepo) List() ([]*entity.Profile, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, display_name, role, created_at, updated_at FROM profiles ORDER BY display_name`)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()
	var list []*entity.Profile
	for rows.Next() {
		var p entity.Profile
		if err := rows.Scan(&p.ID, &p.DisplayName, &p.Role, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// UpdateRole cambia el rol del usuario.
func (r *ProfileRepo) UpdateRole(id, role string) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE profiles SET role = $2, updated_at = now() WHERE id = $1`, id, role)
	if err != nil {
		return fmt.Errorf("update role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
