package equipment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// DefaultRegion is used when an item is created without a region.
const DefaultRegion = "Lagos"

var ErrNotFound = errors.New("equipment not found")

// Equipment is a rentable item of the catalogue.
type Equipment struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Brand       *string   `json:"brand"`
	Region      string    `json:"region"`
	DailyRate   *float64  `json:"dailyRate"`
	Description *string   `json:"description"`
	ImageURL    *string   `json:"imageUrl"`
	IsAvailable bool      `json:"isAvailable"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Repository is the persistence port for the catalogue.
type Repository interface {
	Create(ctx context.Context, e Equipment) error
	GetByID(ctx context.Context, id uuid.UUID) (Equipment, error)
	List(ctx context.Context) ([]Equipment, error)
	Update(ctx context.Context, e Equipment) (Equipment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ErrValidation простая ошибка валидации.
type ErrValidation string

func (e ErrValidation) Error() string { return string(e) }
