package inquiry

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/crystalices/backend/pkg/auth"
	"github.com/crystalices/backend/pkg/mail"
)

// ReceiptNotifier acknowledges a new inquiry to the sender. Best-effort.
type ReceiptNotifier interface {
	SendInquiryReceipt(ctx context.Context, to, fullName, service string) mail.Delivery
}

type SubmitInput struct {
	FullName     string
	Email        string
	Service      string
	Requirements string
	UserID       *uuid.UUID
}

// Viewer is who is asking for the list; clients only see their own inquiries.
type Viewer struct {
	Role  auth.Role
	Email string
}

type UseCase interface {
	Submit(ctx context.Context, in SubmitInput) (Inquiry, error)
	List(ctx context.Context, viewer Viewer) ([]Inquiry, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (Inquiry, error)
}

type service struct {
	repo     Repository
	notifier ReceiptNotifier
	log      zerolog.Logger
	now      func() time.Time
}

func NewService(repo Repository, notifier ReceiptNotifier, log zerolog.Logger) UseCase {
	return &service{repo: repo, notifier: notifier, log: log.With().Str("component", "inquiry").Logger(), now: time.Now}
}

func (s *service) Submit(ctx context.Context, in SubmitInput) (Inquiry, error) {
	inq := Inquiry{
		ID:           uuid.New(),
		FullName:     strings.TrimSpace(in.FullName),
		Email:        auth.NormalizeEmail(in.Email),
		Requirements: strings.TrimSpace(in.Requirements),
		Status:       StatusPending,
		UserID:       in.UserID,
		CreatedAt:    s.now().UTC(),
	}
	if inq.FullName == "" || inq.Email == "" || inq.Requirements == "" {
		return Inquiry{}, ErrValidation("Missing required fields")
	}
	if svc := strings.TrimSpace(in.Service); svc != "" {
		inq.Service = &svc
	}
	if err := s.repo.Create(ctx, inq); err != nil {
		return Inquiry{}, err
	}

	var service string
	if inq.Service != nil {
		service = *inq.Service
	}
	if d := s.notifier.SendInquiryReceipt(ctx, inq.Email, inq.FullName, service); !d.OK() {
		s.log.Warn().Err(d.Err).Str("inquiry_id", inq.ID.String()).Msg("inquiry receipt not delivered")
	}
	return inq, nil
}

func (s *service) List(ctx context.Context, viewer Viewer) ([]Inquiry, error) {
	switch viewer.Role {
	case auth.RoleAdmin, auth.RoleStaff:
		return s.repo.List(ctx, "")
	}
	email := auth.NormalizeEmail(viewer.Email)
	if email == "" {
		return []Inquiry{}, nil
	}
	return s.repo.List(ctx, email)
}

func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (Inquiry, error) {
	st, ok := ParseStatus(status)
	if !ok {
		return Inquiry{}, ErrValidation("Invalid status")
	}
	return s.repo.UpdateStatus(ctx, id, st)
}
