package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/crystalices/backend/pkg/inquiry"
)

const inquiryColumns = `id, full_name, email, service, requirements, status, user_id, created_at`

type InquiryRepository struct {
	db DB
}

func NewInquiryRepository(db DB) *InquiryRepository {
	return &InquiryRepository{db: db}
}

func (r *InquiryRepository) Create(ctx context.Context, in inquiry.Inquiry) error {
	_, err := r.db.Exec(ctx, `
INSERT INTO inquiries (`+inquiryColumns+`)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`, in.ID, in.FullName, in.Email, in.Service, in.Requirements, string(in.Status), in.UserID, in.CreatedAt)
	return err
}

func (r *InquiryRepository) List(ctx context.Context, email string) ([]inquiry.Inquiry, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if email == "" {
		rows, err = r.db.Query(ctx, `SELECT `+inquiryColumns+` FROM inquiries ORDER BY created_at DESC`)
	} else {
		rows, err = r.db.Query(ctx, `SELECT `+inquiryColumns+` FROM inquiries WHERE email = $1 ORDER BY created_at DESC`, email)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []inquiry.Inquiry{}
	for rows.Next() {
		in, err := scanInquiry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	return out, rows.Err()
}

func (r *InquiryRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status inquiry.Status) (inquiry.Inquiry, error) {
	return scanInquiry(r.db.QueryRow(ctx,
		`UPDATE inquiries SET status = $2 WHERE id = $1 RETURNING `+inquiryColumns, id, string(status)))
}

func scanInquiry(row pgx.Row) (inquiry.Inquiry, error) {
	var (
		in     inquiry.Inquiry
		status string
	)
	err := row.Scan(&in.ID, &in.FullName, &in.Email, &in.Service, &in.Requirements, &status, &in.UserID, &in.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return inquiry.Inquiry{}, inquiry.ErrNotFound
		}
		return inquiry.Inquiry{}, err
	}
	in.Status = inquiry.Status(status)
	in.CreatedAt = in.CreatedAt.UTC()
	return in, nil
}
