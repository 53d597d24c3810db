package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/loudbaby/easyops-api/internal/domain"
	"github.com/loudbaby/easyops-api/internal/domain/entity"
	"github.com/loudbaby/easyops-api/internal/domain/repository"
)

var _ repository.LocationRepository = (*LocationRepo)(nil)

// LocationRepo implementación de LocationRepository sobre PostgreSQL.
type LocationRepo struct {
	q Querier
}

// NewLocationRepository construye el adaptador de ubicaciones. Pasar pool o tx (Querier).
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

// Create persiste una ubicación nueva.
func (r *LocationRepo) Create(location *entity.Location) error {
	if location.ID == "" {
		location.ID = uuid.New().String()
	}
	query := `
		INSERT INTO locations (id, name, is_default, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		location.ID, location.Name, location.IsDefault, location.CreatedAt, location.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create location: %w", err)
	}
	return nil
}

// GetByID obtiene una ubicación por ID.
func (r *LocationRepo) GetByID(id string) (*entity.Location, error) {
	var l entity.Location
	err := r.q.QueryRow(context.Background(),
		`SELECT id, name, is_default, created_at, updated_at FROM locations WHERE id = $1`, id,
	).Scan(&l.ID, &l.Name, &l.IsDefault, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location: %w", err)
	}
	return &l, nil
}

// GetDefault obtiene la ubicación predeterminada.
func (r *LocationRepo) GetDefault() (*entity.Location, error) {
	var l entity.Location
	err := r.q.QueryRow(context.Background(),
		`SELECT id, name, is_default, created_at, updated_at FROM locations WHERE is_default LIMIT 1`,
	).Scan(&l.ID, &l.Name, &l.IsDefault, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get default location: %w", err)
	}
	return &l, nil
}

// List lista todas las ubicaciones, la predeterminada primero.
func (r *LocationRepo) List() ([]*entity.Location, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, name, is_default, created_at, updated_at FROM locations ORDER BY is_default DESC, name`)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Location
	for rows.Next() {
		var l entity.Location
		if err := rows.Scan(&l.ID, &l.Name, &l.IsDefault, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// Update renombra la ubicación. La bandera predeterminada se cambia con SetDefault.
func (r *LocationRepo) Update(location *entity.Location) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE locations SET name = $2, updated_at = $3 WHERE id = $1`,
		location.ID, location.Name, location.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update location: %w", err)
	}
	return nil
}

// SetDefault marca la ubicación y desmarca el resto en una sola sentencia:
// nunca hay un instante con cero o dos predeterminadas.
func (r *LocationRepo) SetDefault(id string) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE locations SET is_default = (id = $1), updated_at = now()`, id)
	if err != nil {
		return fmt.Errorf("set default location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrLocationNotFound
	}
	return nil
}

// Delete elimina la ubicación si ningún artículo conserva stock en ella.
func (r *LocationRepo) Delete(id string) error {
	var inUse bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM item_locations WHERE location_id = $1 AND quantity <> 0)`, id,
	).Scan(&inUse)
	if err != nil {
		return fmt.Errorf("check location in use: %w", err)
	}
	if inUse {
		return domain.ErrLocationInUse
	}
	if _, err := r.q.Exec(context.Background(),
		`DELETE FROM item_locations WHERE location_id = $1`, id); err != nil {
		return fmt.Errorf("delete location stock rows: %w", err)
	}
	tag, err := r.q.Exec(context.Background(), `DELETE FROM locations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrLocationNotFound
	}
	return nil
}
