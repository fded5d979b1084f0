// Package newsletter keeps the mailing list signups.
package newsletter

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrAlreadySubscribed = errors.New("already subscribed")

type Subscriber struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type Repository interface {
	// Create returns ErrAlreadySubscribed when the email is taken.
	Create(ctx context.Context, s Subscriber) error
	// List returns newest signups first.
	List(ctx context.Context) ([]Subscriber, error)
}

type ErrValidation string

func (e ErrValidation) Error() string { return string(e) }

type UseCase interface {
	Subscribe(ctx context.Context, email string) (Subscriber, error)
	List(ctx context.Context) ([]Subscriber, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) UseCase { return &service{repo: repo, now: time.Now} }

func (s *service) Subscribe(ctx context.Context, email string) (Subscriber, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return Subscriber{}, ErrValidation("Email is required")
	}
	if !strings.Contains(email, "@") {
		return Subscriber{}, ErrValidation("Invalid email address")
	}
	sub := Subscriber{ID: uuid.New(), Email: email, CreatedAt: s.now().UTC()}
	if err := s.repo.Create(ctx, sub); err != nil {
		return Subscriber{}, err
	}
	return sub, nil
}

func (s *service) List(ctx context.Context) ([]Subscriber, error) {
	return s.repo.List(ctx)
}
