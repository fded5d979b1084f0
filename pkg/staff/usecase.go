package staff

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

type UseCase interface {
	Add(ctx context.Context, m Member) (Member, error)
	List(ctx context.Context) ([]Member, error)
	Delete(ctx context.Context, id uuid.UUID) (Member, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) UseCase { return &service{repo: repo, now: time.Now} }

func (s *service) Add(ctx context.Context, m Member) (Member, error) {
	m.Name = strings.TrimSpace(m.Name)
	if m.Name == "" {
		return Member{}, ErrValidation("Name is required")
	}
	if m.Email != nil {
		e := strings.ToLower(strings.TrimSpace(*m.Email))
		m.Email = &e
	}
	m.ID = uuid.New()
	m.CreatedAt = s.now().UTC()
	if err := s.repo.Create(ctx, m); err != nil {
		return Member{}, err
	}
	return m, nil
}

func (s *service) List(ctx context.Context) ([]Member, error) {
	return s.repo.List(ctx)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) (Member, error) {
	return s.repo.Delete(ctx, id)
}
