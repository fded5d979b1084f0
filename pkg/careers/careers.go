// Package careers records job applications.
package careers

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Application struct {
	ID             uuid.UUID `json:"id"`
	ApplicantName  string    `json:"applicantName"`
	ApplicantEmail string    `json:"applicantEmail"`
	CVLink         string    `json:"cvLink"`
	RoleApplied    string    `json:"roleApplied"`
	CreatedAt      time.Time `json:"createdAt"`
}

type Repository interface {
	Create(ctx context.Context, a Application) error
	// List returns newest applications first.
	List(ctx context.Context) ([]Application, error)
}

type ErrValidation string

func (e ErrValidation) Error() string { return string(e) }

type UseCase interface {
	Apply(ctx context.Context, a Application) (Application, error)
	List(ctx context.Context) ([]Application, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) UseCase { return &service{repo: repo, now: time.Now} }

func (s *service) Apply(ctx context.Context, a Application) (Application, error) {
	a.ApplicantName = strings.TrimSpace(a.ApplicantName)
	a.ApplicantEmail = strings.ToLower(strings.TrimSpace(a.ApplicantEmail))
	a.CVLink = strings.TrimSpace(a.CVLink)
	a.RoleApplied = strings.TrimSpace(a.RoleApplied)
	if a.ApplicantName == "" || a.ApplicantEmail == "" || a.CVLink == "" || a.RoleApplied == "" {
		return Application{}, ErrValidation("All fields are required")
	}
	a.ID = uuid.New()
	a.CreatedAt = s.now().UTC()
	if err := s.repo.Create(ctx, a); err != nil {
		return Application{}, err
	}
	return a, nil
}

func (s *service) List(ctx context.Context) ([]Application, error) {
	return s.repo.List(ctx)
}
