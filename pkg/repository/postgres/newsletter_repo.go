package postgres

import (
	"context"

	"github.com/crystalices/backend/pkg/newsletter"
)

type NewsletterRepository struct {
	db DB
}

func NewNewsletterRepository(db DB) *NewsletterRepository {
	return &NewsletterRepository{db: db}
}

func (r *NewsletterRepository) Create(ctx context.Context, s newsletter.Subscriber) error {
	_, err := r.db.Exec(ctx, `
INSERT INTO newsletter_subscribers (id, email, created_at) VALUES ($1, $2, $3)
`, s.ID, s.Email, s.CreatedAt)
	if isUniqueViolation(err) {
		return newsletter.ErrAlreadySubscribed
	}
	return err
}

func (r *NewsletterRepository) List(ctx context.Context) ([]newsletter.Subscriber, error) {
	rows, err := r.db.Query(ctx, `SELECT id, email, created_at FROM newsletter_subscribers ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []newsletter.Subscriber{}
	for rows.Next() {
		var s newsletter.Subscriber
		if err := rows.Scan(&s.ID, &s.Email, &s.CreatedAt); err != nil {
			return nil, err
		}
		s.CreatedAt = s.CreatedAt.UTC()
		out = append(out, s)
	}
	return out, rows.Err()
}
