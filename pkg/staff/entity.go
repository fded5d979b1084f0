package staff

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("staff member not found")

// Member is a person shown on the public team page.
type Member struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Position  *string   `json:"position"`
	Email     *string   `json:"email"`
	Phone     *string   `json:"phone"`
	Bio       *string   `json:"bio"`
	ImageURL  *string   `json:"imageUrl"`
	CreatedAt time.Time `json:"createdAt"`
}

type Repository interface {
	Create(ctx context.Context, m Member) error
	// List returns members ordered by name.
	List(ctx context.Context) ([]Member, error)
	// Delete returns the removed member.
	Delete(ctx context.Context, id uuid.UUID) (Member, error)
}

type ErrValidation string

func (e ErrValidation) Error() string { return string(e) }
