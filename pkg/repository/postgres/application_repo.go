package postgres

import (
	"context"

	"github.com/crystalices/backend/pkg/careers"
)

type ApplicationRepository struct {
	db DB
}

func NewApplicationRepository(db DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Create(ctx context.Context, a careers.Application) error {
	_, err := r.db.Exec(ctx, `
INSERT INTO job_applications (id, applicant_name, applicant_email, cv_link, role_applied, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
`, a.ID, a.ApplicantName, a.ApplicantEmail, a.CVLink, a.RoleApplied, a.CreatedAt)
	return err
}

func (r *ApplicationRepository) List(ctx context.Context) ([]careers.Application, error) {
	rows, err := r.db.Query(ctx, `
SELECT id, applicant_name, applicant_email, cv_link, role_applied, created_at
FROM job_applications ORDER BY created_at DESC
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []careers.Application{}
	for rows.Next() {
		var a careers.Application
		if err := rows.Scan(&a.ID, &a.ApplicantName, &a.ApplicantEmail, &a.CVLink, &a.RoleApplied, &a.CreatedAt); err != nil {
			return nil, err
		}
		a.CreatedAt = a.CreatedAt.UTC()
		out = append(out, a)
	}
	return out, rows.Err()
}
