package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/crystalices/backend/pkg/mail"
)

// Notifier delivers verification links. Delivery failures are reported in the
// returned value and never abort the calling operation.
type Notifier interface {
	SendVerificationEmail(ctx context.Context, to, link string) mail.Delivery
}

// AuthUseCase describes the account lifecycle: registration, verification,
// login and profile/role administration.
type AuthUseCase interface {
	Register(ctx context.Context, in RegisterInput) (RegisterResult, error)
	Login(ctx context.Context, email, password string) (LoginResult, error)
	ResendVerification(ctx context.Context, email string) error
	VerifyEmail(ctx context.Context, token string) error
	GetUser(ctx context.Context, id uuid.UUID) (PublicUser, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, in ProfileInput) (PublicUser, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role Role) (PublicUser, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
	ListUsers(ctx context.Context, filter ListFilter) ([]PublicUser, error)
}

type RegisterInput struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

type RegisterResult struct {
	ID   uuid.UUID
	Name string
	// VerificationSent is false when the mailer rejected the link; the account exists either way.
	VerificationSent bool
}

type LoginResult struct {
	User  PublicUser
	Token string
}

// ProfileInput holds a profile update. Nil fields keep their value, except
// Bio and Phone which are always written (nil clears them). A blank Password
// leaves the stored hash unchanged.
type ProfileInput struct {
	Name     *string
	Email    *string
	Bio      *string
	Phone    *string
	Password string
}

type Options struct {
	FrontendURL     string
	SessionTTL      time.Duration
	VerificationTTL time.Duration
}

const (
	DefaultSessionTTL      = 24 * time.Hour
	DefaultVerificationTTL = 15 * time.Minute
)

type authService struct {
	repo     UserRepository
	tokens   TokenService
	notifier Notifier
	hasher   PasswordHasher
	opts     Options
	log      zerolog.Logger
	now      func() time.Time

	dummyOnce sync.Once
	dummy     string
}

// NewAuthService returns default implementation of AuthUseCase.
func NewAuthService(repo UserRepository, tokens TokenService, notifier Notifier, hasher PasswordHasher, opts Options, log zerolog.Logger) AuthUseCase {
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = DefaultSessionTTL
	}
	if opts.VerificationTTL <= 0 {
		opts.VerificationTTL = DefaultVerificationTTL
	}
	opts.FrontendURL = strings.TrimRight(opts.FrontendURL, "/")
	return &authService{
		repo:     repo,
		tokens:   tokens,
		notifier: notifier,
		hasher:   hasher,
		opts:     opts,
		log:      log.With().Str("component", "auth").Logger(),
		now:      time.Now,
	}
}

// dummyHash is compared against when the email is unknown, so both login
// failures cost one bcrypt comparison at the configured cost.
func (s *authService) dummyHash() string {
	s.dummyOnce.Do(func() {
		h, err := s.hasher.Hash("crystal-ices-no-such-user")
		if err != nil {
			s.log.Warn().Err(err).Msg("dummy password hash")
		}
		s.dummy = h
	})
	return s.dummy
}

func checkPasswordLength(password string) error {
	if len(password) > MaxPasswordBytes {
		return invalid("Password must be at most 72 bytes")
	}
	return nil
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (RegisterResult, error) {
	name := strings.TrimSpace(in.Name)
	email := NormalizeEmail(in.Email)
	if name == "" || email == "" || strings.TrimSpace(in.Password) == "" || in.ConfirmPassword == "" {
		return RegisterResult{}, invalid("Missing required fields!")
	}
	if in.Password != in.ConfirmPassword {
		return RegisterResult{}, invalid("Passwords do not match!")
	}
	if err := checkPasswordLength(in.Password); err != nil {
		return RegisterResult{}, err
	}

	// Best-effort check; the unique constraint settles races.
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return RegisterResult{}, ErrDuplicateEmail
	} else if !errors.Is(err, ErrNotFound) {
		return RegisterResult{}, fmt.Errorf("lookup user: %w", err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return RegisterResult{}, fmt.Errorf("hash password: %w", err)
	}
	user := User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         RoleClient,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			return RegisterResult{}, ErrDuplicateEmail
		}
		return RegisterResult{}, fmt.Errorf("create user: %w", err)
	}

	sent := s.sendVerification(ctx, user.Email)
	s.log.Info().Str("user_id", user.ID.String()).Bool("verification_sent", sent).Msg("user registered")
	return RegisterResult{ID: user.ID, Name: user.Name, VerificationSent: sent}, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return LoginResult{}, ErrInvalidCredentials
	}
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			// same bcrypt work as a wrong password
			s.hasher.Compare(s.dummyHash(), password)
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, fmt.Errorf("lookup user: %w", err)
	}
	if !s.hasher.Compare(user.PasswordHash, password) {
		return LoginResult{}, ErrInvalidCredentials
	}
	if !user.IsVerified {
		sent := s.sendVerification(ctx, user.Email)
		return LoginResult{}, &NotVerifiedError{LinkSent: sent}
	}

	token, err := s.tokens.Issue(ctx, TokenSession, TokenClaims{
		UserID: user.ID.String(),
		Email:  user.Email,
		Name:   user.Name,
		Role:   user.Role,
	}, s.opts.SessionTTL)
	if err != nil {
		return LoginResult{}, fmt.Errorf("issue session token: %w", err)
	}
	return LoginResult{User: user.Public(), Token: token}, nil
}

// ResendVerification never reveals whether the address is registered.
func (s *authService) ResendVerification(ctx context.Context, email string) error {
	email = NormalizeEmail(email)
	if email == "" {
		return invalid("Email is required")
	}
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.log.Error().Err(err).Msg("resend verification: lookup failed")
		}
		return nil
	}
	if user.IsVerified {
		return nil
	}
	s.sendVerification(ctx, user.Email)
	return nil
}

func (s *authService) VerifyEmail(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return ErrInvalidToken
	}
	claims, err := s.tokens.Verify(ctx, TokenVerification, token)
	if err != nil {
		return ErrInvalidToken
	}
	user, err := s.repo.FindByEmail(ctx, NormalizeEmail(claims.Email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrInvalidToken
		}
		return fmt.Errorf("lookup user: %w", err)
	}
	if user.IsVerified {
		return nil
	}
	if _, err := s.repo.Update(ctx, user.ID, UserPatch{MarkVerified: true}); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrInvalidToken
		}
		return fmt.Errorf("mark verified: %w", err)
	}
	s.log.Info().Str("user_id", user.ID.String()).Msg("email verified")
	return nil
}

func (s *authService) GetUser(ctx context.Context, id uuid.UUID) (PublicUser, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return PublicUser{}, err
	}
	return user.Public(), nil
}

func (s *authService) UpdateProfile(ctx context.Context, id uuid.UUID, in ProfileInput) (PublicUser, error) {
	patch := UserPatch{
		Bio:   SetTo(in.Bio),
		Phone: SetTo(in.Phone),
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return PublicUser{}, invalid("Name cannot be empty")
		}
		patch.Name = &name
	}
	if in.Email != nil {
		email := NormalizeEmail(*in.Email)
		if email == "" {
			return PublicUser{}, invalid("Email cannot be empty")
		}
		patch.Email = &email
	}
	if strings.TrimSpace(in.Password) != "" {
		if err := checkPasswordLength(in.Password); err != nil {
			return PublicUser{}, err
		}
		hash, err := s.hasher.Hash(in.Password)
		if err != nil {
			return PublicUser{}, fmt.Errorf("hash password: %w", err)
		}
		patch.PasswordHash = &hash
	}

	user, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrDuplicateEmail) {
			return PublicUser{}, err
		}
		return PublicUser{}, fmt.Errorf("update profile: %w", err)
	}
	return user.Public(), nil
}

func (s *authService) UpdateRole(ctx context.Context, id uuid.UUID, role Role) (PublicUser, error) {
	if !role.Valid() {
		return PublicUser{}, invalid("Invalid role")
	}
	user, err := s.repo.Update(ctx, id, UserPatch{Role: &role})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return PublicUser{}, err
		}
		return PublicUser{}, fmt.Errorf("update role: %w", err)
	}
	s.log.Info().Str("user_id", id.String()).Str("role", string(role)).Msg("role updated")
	return user.Public(), nil
}

func (s *authService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func (s *authService) ListUsers(ctx context.Context, filter ListFilter) ([]PublicUser, error) {
	if filter.Role != nil && !filter.Role.Valid() {
		return nil, invalid("Invalid role")
	}
	users, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	out := make([]PublicUser, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return out, nil
}

// sendVerification issues a fresh link and hands it to the notifier.
// It reports whether the mailer accepted it.
func (s *authService) sendVerification(ctx context.Context, email string) bool {
	token, err := s.tokens.Issue(ctx, TokenVerification, TokenClaims{Email: email}, s.opts.VerificationTTL)
	if err != nil {
		s.log.Error().Err(err).Msg("issue verification token")
		return false
	}
	link := s.opts.FrontendURL + "/verifyemail/" + token
	d := s.notifier.SendVerificationEmail(ctx, email, link)
	if !d.OK() {
		s.log.Warn().Err(d.Err).Str("email", email).Msg("verification email not delivered")
		return false
	}
	return true
}
