package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/crystalices/backend/pkg/equipment"
)

const equipmentColumns = `id, name, category, brand, region, daily_rate, description, image_url, is_available, created_at`

// EquipmentRepository хранит каталог техники.
type EquipmentRepository struct {
	db DB
}

func NewEquipmentRepository(db DB) *EquipmentRepository {
	return &EquipmentRepository{db: db}
}

func (r *EquipmentRepository) Create(ctx context.Context, e equipment.Equipment) error {
	_, err := r.db.Exec(ctx, `
INSERT INTO equipment (`+equipmentColumns+`)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
`, e.ID, e.Name, e.Category, e.Brand, e.Region, e.DailyRate, e.Description, e.ImageURL, e.IsAvailable, e.CreatedAt)
	return err
}

func (r *EquipmentRepository) GetByID(ctx context.Context, id uuid.UUID) (equipment.Equipment, error) {
	return scanEquipment(r.db.QueryRow(ctx, `SELECT `+equipmentColumns+` FROM equipment WHERE id = $1`, id))
}

func (r *EquipmentRepository) List(ctx context.Context) ([]equipment.Equipment, error) {
	rows, err := r.db.Query(ctx, `SELECT `+equipmentColumns+` FROM equipment ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []equipment.Equipment{}
	for rows.Next() {
		e, err := scanEquipment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *EquipmentRepository) Update(ctx context.Context, e equipment.Equipment) (equipment.Equipment, error) {
	return scanEquipment(r.db.QueryRow(ctx, `
UPDATE equipment
SET name = $2, category = $3, brand = $4, region = $5, daily_rate = $6,
	description = $7, image_url = $8, is_available = $9
WHERE id = $1
RETURNING `+equipmentColumns,
		e.ID, e.Name, e.Category, e.Brand, e.Region, e.DailyRate, e.Description, e.ImageURL, e.IsAvailable))
}

func (r *EquipmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM equipment WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return equipment.ErrNotFound
	}
	return nil
}

func scanEquipment(row pgx.Row) (equipment.Equipment, error) {
	var e equipment.Equipment
	err := row.Scan(&e.ID, &e.Name, &e.Category, &e.Brand, &e.Region, &e.DailyRate,
		&e.Description, &e.ImageURL, &e.IsAvailable, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return equipment.Equipment{}, equipment.ErrNotFound
		}
		return equipment.Equipment{}, err
	}
	e.CreatedAt = e.CreatedAt.UTC()
	return e, nil
}
