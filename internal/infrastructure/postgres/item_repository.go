package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/loudbaby/easyops-api/internal/domain/entity"
	"github.com/loudbaby/easyops-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

const itemColumns = `id, name, category, unit, cost_per_unit, alert_threshold, barcode, quantity, auto_deduct, created_at, updated_at`

// ItemRepo implementación de ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de artículos. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

func scanItem(row pgx.Row) (*entity.Item, error) {
	var it entity.Item
	var barcode *string
	err := row.Scan(
		&it.ID, &it.Name, &it.Category, &it.Unit, &it.CostPerUnit,
		&it.AlertThreshold, &barcode, &it.Quantity, &it.AutoDeduct,
		&it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if barcode != nil {
		it.Barcode = *barcode
	}
	return &it, nil
}

// Create persiste un artículo nuevo (agregado en cero).
func (r *ItemRepo) Create(item *entity.Item) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO items (id, name, category, unit, cost_per_unit, alert_threshold, barcode, quantity, auto_deduct, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 0, $8, $9, $10)`
	barcode := (*string)(nil)
	if item.Barcode != "" {
		barcode = &item.Barcode
	}
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.Category, item.Unit, item.CostPerUnit,
		item.AlertThreshold, barcode, item.AutoDeduct, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create item: %w", err)
	}
	return nil
}

// GetByID obtiene un artículo por ID.
func (r *ItemRepo) GetByID(id string) (*entity.Item, error) {
	it, err := scanItem(r.q.QueryRow(context.Background(),
		`SELECT `+itemColumns+` FROM items WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return it, nil
}

// GetForUpdate obtiene el artículo y bloquea la fila (SELECT FOR UPDATE);
// serializa los movimientos concurrentes sobre el mismo artículo.
func (r *ItemRepo) GetForUpdate(id string) (*entity.Item, error) {
	it, err := scanItem(r.q.QueryRow(context.Background(),
		`SELECT `+itemColumns+` FROM items WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item for update: %w", err)
	}
	return it, nil
}

// List lista artículos por nombre, paginados.
func (r *ItemRepo) List(limit, offset int) ([]*entity.Item, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+itemColumns+` FROM items ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// Update actualiza los campos editables; el agregado quantity no se toca aquí.
func (r *ItemRepo) Update(item *entity.Item) error {
	query := `
		UPDATE items SET name = $2, category = $3, unit = $4, cost_per_unit = $5,
			alert_threshold = $6, barcode = $7, auto_deduct = $8, updated_at = $9
		WHERE id = $1`
	barcode := (*string)(nil)
	if item.Barcode != "" {
		barcode = &item.Barcode
	}
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.Category, item.Unit, item.CostPerUnit,
		item.AlertThreshold, barcode, item.AutoDeduct, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}

// Delete elimina el artículo. Las filas dependientes deben borrarse antes,
// en la misma transacción (caso de uso de borrado en cascada).
func (r *ItemRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

// ApplyQuantityDelta aplica el delta al agregado como incremento atómico en
// SQL y devuelve la nueva cantidad. Nunca read-modify-write en la aplicación.
func (r *ItemRepo) ApplyQuantityDelta(id string, delta decimal.Decimal) (decimal.Decimal, error) {
	var newQty decimal.Decimal
	err := r.q.QueryRow(context.Background(),
		`UPDATE items SET quantity = quantity + $2, updated_at = now() WHERE id = $1 RETURNING quantity`,
		id, delta,
	).Scan(&newQty)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, fmt.Errorf("apply quantity delta: artículo %s no existe", id)
		}
		return decimal.Zero, fmt.Errorf("apply quantity delta: %w", err)
	}
	return newQty, nil
}

// FindAutoDeductByBarcode resuelve un código del POS a los artículos con
// auto_deduct activo. Cero, uno o varios resultados.
func (r *ItemRepo) FindAutoDeductByBarcode(barcode string) ([]*entity.Item, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+itemColumns+` FROM items WHERE barcode = $1 AND auto_deduct`, barcode)
	if err != nil {
		return nil, fmt.Errorf("find by barcode: %w", err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}
