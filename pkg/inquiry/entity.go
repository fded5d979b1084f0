package inquiry

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending    Status = "PENDING"
	StatusProcessing Status = "PROCESSING"
	StatusContacted  Status = "CONTACTED"
	StatusCompleted  Status = "COMPLETED"
	StatusCancelled  Status = "CANCELLED"
)

var statuses = []Status{StatusPending, StatusProcessing, StatusContacted, StatusCompleted, StatusCancelled}

// ParseStatus accepts status names case-insensitively.
func ParseStatus(s string) (Status, bool) {
	st := Status(strings.ToUpper(strings.TrimSpace(s)))
	for _, v := range statuses {
		if v == st {
			return st, true
		}
	}
	return "", false
}

var ErrNotFound = errors.New("inquiry not found")

// Inquiry is a rental request filed from the public site.
type Inquiry struct {
	ID           uuid.UUID  `json:"id"`
	FullName     string     `json:"fullName"`
	Email        string     `json:"email"`
	Service      *string    `json:"service"`
	Requirements string     `json:"requirements"`
	Status       Status     `json:"status"`
	UserID       *uuid.UUID `json:"userId"`
	CreatedAt    time.Time  `json:"createdAt"`
}

type Repository interface {
	Create(ctx context.Context, in Inquiry) error
	// List returns newest first; an empty email lists everything.
	List(ctx context.Context, email string) ([]Inquiry, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (Inquiry, error)
}

type ErrValidation string

func (e ErrValidation) Error() string { return string(e) }
