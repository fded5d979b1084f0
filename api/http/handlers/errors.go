package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/crystalices/backend/api/http/presenter"
	"github.com/crystalices/backend/pkg/auth"
	"github.com/crystalices/backend/pkg/careers"
	"github.com/crystalices/backend/pkg/equipment"
	"github.com/crystalices/backend/pkg/inquiry"
	"github.com/crystalices/backend/pkg/newsletter"
	"github.com/crystalices/backend/pkg/staff"
	"github.com/crystalices/backend/pkg/upload"
)

const (
	msgInternal          = "Internal Server Error"
	msgInvalidCreds      = "Invalid email or password"
	msgNotVerifiedSent   = "Account not verified. A new verification link has been sent to your email."
	msgNotVerifiedNoMail = "Account not verified. Please contact support."
)

// respondError maps domain errors to statuses. Anything unknown is logged and
// reported as a generic 500.
func respondError(c *fiber.Ctx, log zerolog.Logger, err error) error {
	var (
		ve  *auth.ValidationError
		nv  *auth.NotVerifiedError
		eqv equipment.ErrValidation
		stv staff.ErrValidation
		inv inquiry.ErrValidation
		nlv newsletter.ErrValidation
		crv careers.ErrValidation
	)
	switch {
	case errors.As(err, &ve):
		return presenter.Error(c, http.StatusBadRequest, ve.Msg)
	case errors.As(err, &nv):
		if nv.LinkSent {
			return presenter.Error(c, http.StatusForbidden, msgNotVerifiedSent)
		}
		return presenter.Error(c, http.StatusForbidden, msgNotVerifiedNoMail)
	case errors.Is(err, auth.ErrDuplicateEmail):
		return presenter.Error(c, http.StatusBadRequest, "Email already exists!")
	case errors.Is(err, auth.ErrInvalidCredentials):
		return presenter.Error(c, http.StatusBadRequest, msgInvalidCreds)
	case errors.Is(err, auth.ErrInvalidToken):
		return presenter.Error(c, http.StatusBadRequest, "Invalid token")
	case errors.Is(err, auth.ErrNotFound):
		return presenter.Error(c, http.StatusNotFound, "User not found")
	case errors.Is(err, equipment.ErrNotFound):
		return presenter.Error(c, http.StatusNotFound, "Equipment not found")
	case errors.Is(err, staff.ErrNotFound):
		return presenter.Error(c, http.StatusNotFound, "Staff member not found")
	case errors.Is(err, inquiry.ErrNotFound):
		return presenter.Error(c, http.StatusNotFound, "Inquiry not found")
	case errors.Is(err, newsletter.ErrAlreadySubscribed):
		return presenter.Error(c, http.StatusBadRequest, "You are already subscribed!")
	case errors.Is(err, upload.ErrTooLarge), errors.Is(err, upload.ErrUnsupportedType):
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	case errors.As(err, &eqv):
		return presenter.Error(c, http.StatusBadRequest, string(eqv))
	case errors.As(err, &stv):
		return presenter.Error(c, http.StatusBadRequest, string(stv))
	case errors.As(err, &inv):
		return presenter.Error(c, http.StatusBadRequest, string(inv))
	case errors.As(err, &nlv):
		return presenter.Error(c, http.StatusBadRequest, string(nlv))
	case errors.As(err, &crv):
		return presenter.Error(c, http.StatusBadRequest, string(crv))
	}
	log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("request failed")
	return presenter.Error(c, http.StatusInternalServerError, msgInternal)
}
