package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Common errors used by repository/use cases
var (
	ErrNotFound           = errors.New("not found")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountNotVerified = errors.New("account not verified")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrValidation         = errors.New("validation failed")
)

// ValidationError carries a message safe to show to the caller.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func invalid(msg string) error { return &ValidationError{Msg: msg} }

// NotVerifiedError is returned by Login for an unverified account.
// LinkSent reports whether a fresh verification link was handed to the mailer.
type NotVerifiedError struct {
	LinkSent bool
}

func (e *NotVerifiedError) Error() string { return ErrAccountNotVerified.Error() }

func (e *NotVerifiedError) Is(target error) bool { return target == ErrAccountNotVerified }

// Nullable distinguishes "leave as is" (Set == false) from "set to Value",
// where a nil Value clears the column.
type Nullable[T any] struct {
	Set   bool
	Value *T
}

// SetTo returns a Nullable that writes v.
func SetTo[T any](v *T) Nullable[T] { return Nullable[T]{Set: true, Value: v} }

// UserPatch lists the mutable fields of a user. Nil pointers are left untouched.
// MarkVerified can only turn verification on.
type UserPatch struct {
	Name         *string
	Email        *string
	PasswordHash *string
	Role         *Role
	MarkVerified bool
	Bio          Nullable[string]
	Phone        Nullable[string]
}

// Empty reports whether the patch changes nothing.
func (p UserPatch) Empty() bool {
	return p.Name == nil && p.Email == nil && p.PasswordHash == nil && p.Role == nil &&
		!p.MarkVerified && !p.Bio.Set && !p.Phone.Set
}

// ListFilter narrows ListUsers. A nil Role lists every account.
type ListFilter struct {
	Role *Role
}

// UserRepository abstracts persistence concerns from the domain layer.
// Emails passed in are already normalised.
type UserRepository interface {
	Create(ctx context.Context, user User) error
	FindByEmail(ctx context.Context, email string) (User, error)
	FindByID(ctx context.Context, id uuid.UUID) (User, error)
	Update(ctx context.Context, id uuid.UUID, patch UserPatch) (User, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter ListFilter) ([]User, error)
}
