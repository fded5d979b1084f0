package equipment

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Input carries create/update fields. On update, an empty Name or Category keeps
// the stored value and a nil ImageURL keeps the current image.
type Input struct {
	Name        string
	Category    string
	Brand       *string
	Region      *string
	DailyRate   *float64
	Description *string
	ImageURL    *string
	IsAvailable *bool
}

type UseCase interface {
	Create(ctx context.Context, in Input) (Equipment, error)
	Get(ctx context.Context, id uuid.UUID) (Equipment, error)
	List(ctx context.Context) ([]Equipment, error)
	Update(ctx context.Context, id uuid.UUID, in Input) (Equipment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) UseCase { return &service{repo: repo, now: time.Now} }

func (s *service) Create(ctx context.Context, in Input) (Equipment, error) {
	e := Equipment{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(in.Name),
		Category:    strings.TrimSpace(in.Category),
		Brand:       trimmed(in.Brand),
		Region:      DefaultRegion,
		DailyRate:   in.DailyRate,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		IsAvailable: true,
		CreatedAt:   s.now().UTC(),
	}
	if e.Name == "" || e.Category == "" {
		return Equipment{}, ErrValidation("Name and Category are required!")
	}
	if r := trimmed(in.Region); r != nil {
		e.Region = *r
	}
	if in.IsAvailable != nil {
		e.IsAvailable = *in.IsAvailable
	}
	if err := validateRate(e.DailyRate); err != nil {
		return Equipment{}, err
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return Equipment{}, err
	}
	return e, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (Equipment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context) ([]Equipment, error) {
	return s.repo.List(ctx)
}

func (s *service) Update(ctx context.Context, id uuid.UUID, in Input) (Equipment, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Equipment{}, err
	}
	if v := strings.TrimSpace(in.Name); v != "" {
		e.Name = v
	}
	if v := strings.TrimSpace(in.Category); v != "" {
		e.Category = v
	}
	if in.Brand != nil {
		e.Brand = trimmed(in.Brand)
	}
	if r := trimmed(in.Region); r != nil {
		e.Region = *r
	}
	if in.DailyRate != nil {
		if err := validateRate(in.DailyRate); err != nil {
			return Equipment{}, err
		}
		e.DailyRate = in.DailyRate
	}
	if in.Description != nil {
		e.Description = in.Description
	}
	if in.ImageURL != nil {
		e.ImageURL = in.ImageURL
	}
	if in.IsAvailable != nil {
		e.IsAvailable = *in.IsAvailable
	}
	return s.repo.Update(ctx, e)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func validateRate(rate *float64) error {
	if rate != nil && *rate < 0 {
		return ErrValidation("Daily rate cannot be negative")
	}
	return nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
