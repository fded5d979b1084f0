package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/crystalices/backend/pkg/staff"
)

type StaffRepository struct {
	db DB
}

func NewStaffRepository(db DB) *StaffRepository {
	return &StaffRepository{db: db}
}

func (r *StaffRepository) Create(ctx context.Context, m staff.Member) error {
	_, err := r.db.Exec(ctx, `
INSERT INTO staff (id, name, position, email, phone, bio, image_url, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`, m.ID, m.Name, m.Position, m.Email, m.Phone, m.Bio, m.ImageURL, m.CreatedAt)
	return err
}

func (r *StaffRepository) List(ctx context.Context) ([]staff.Member, error) {
	rows, err := r.db.Query(ctx, `
SELECT id, name, position, email, phone, bio, image_url, created_at
FROM staff ORDER BY name ASC
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []staff.Member{}
	for rows.Next() {
		var m staff.Member
		if err := rows.Scan(&m.ID, &m.Name, &m.Position, &m.Email, &m.Phone, &m.Bio, &m.ImageURL, &m.CreatedAt); err != nil {
			return nil, err
		}
		m.CreatedAt = m.CreatedAt.UTC()
		out = append(out, m)
	}
	return out, rows.Err()
}

// Delete removes the member and returns the deleted row so its image can be cleaned up.
func (r *StaffRepository) Delete(ctx context.Context, id uuid.UUID) (staff.Member, error) {
	var m staff.Member
	err := r.db.QueryRow(ctx, `
DELETE FROM staff WHERE id = $1
RETURNING id, name, position, email, phone, bio, image_url, created_at
`, id).Scan(&m.ID, &m.Name, &m.Position, &m.Email, &m.Phone, &m.Bio, &m.ImageURL, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return staff.Member{}, staff.ErrNotFound
		}
		return staff.Member{}, err
	}
	m.CreatedAt = m.CreatedAt.UTC()
	return m, nil
}
