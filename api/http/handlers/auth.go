package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/crystalices/backend/api/http/presenter"
	"github.com/crystalices/backend/pkg/auth"
	"github.com/crystalices/backend/pkg/security/jwt"
)

// AuthEvents receives lifecycle outcomes, e.g. for metrics.
type AuthEvents interface {
	AuthEvent(event string, success bool)
}

type noEvents struct{}

func (noEvents) AuthEvent(string, bool) {}

type AuthHandler struct {
	useCase auth.AuthUseCase
	events  AuthEvents
	log     zerolog.Logger
}

func NewAuthHandler(useCase auth.AuthUseCase, events AuthEvents, log zerolog.Logger) *AuthHandler {
	if events == nil {
		events = noEvents{}
	}
	return &AuthHandler{useCase: useCase, events: events, log: log}
}

type registerRequest struct {
	Name            string `json:"name" form:"name" validate:"max=100"`
	Email           string `json:"email" form:"email" validate:"omitempty,email,max=254"`
	Password        string `json:"password" form:"password" validate:"max=72"`
	ConfirmPassword string `json:"confirmpassword" form:"confirmpassword" validate:"max=72"`
}

// Register handles user registration.
// @Summary Register user
// @Tags    users
// @Accept  json
// @Produce json
// @Param   input body registerRequest true "Registration payload"
// @Success 201 {object} presenter.Response
// @Failure 400 {object} presenter.Response
// @Failure 409 {object} presenter.Response
// @Failure 429 {object} presenter.Response
// @Router  /api/users/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := bind(c, &req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	}

	result, err := h.useCase.Register(c.Context(), auth.RegisterInput{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	h.events.AuthEvent("register", err == nil)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return presenter.OK(c, http.StatusCreated, "Registration successful! Please check your email for verification.", fiber.Map{
		"id":               result.ID.String(),
		"name":             result.Name,
		"verificationSent": result.VerificationSent,
	})
}

type loginRequest struct {
	Email    string `json:"email" form:"email" validate:"max=254"`
	Password string `json:"password" form:"password" validate:"max=72"`
}

// Login handles user login. Unverified accounts get 403 and a fresh link.
// @Summary     Login
// @Description Unverified accounts get 403 and a fresh verification link.
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       input body loginRequest true "Credentials"
// @Success     200 {object} map[string]any
// @Failure     400 {object} presenter.Response
// @Failure     403 {object} presenter.Response
// @Failure     429 {object} presenter.Response
// @Router      /api/users/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := bind(c, &req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, msgInvalidCreds)
	}

	result, err := h.useCase.Login(c.Context(), req.Email, req.Password)
	h.events.AuthEvent("login", err == nil)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return presenter.JSON(c, http.StatusOK, fiber.Map{
		"success": true,
		"message": "Login successful",
		"token":   result.Token,
		"user":    result.User,
		"data":    fiber.Map{"token": result.Token, "user": result.User},
	})
}

type emailRequest struct {
	Email string `json:"email" form:"email" validate:"required,email,max=254"`
}

// ResendVerification always answers the same way for unknown, verified and unverified addresses.
// @Summary     Resend verification email
// @Description The answer is the same whether or not the address is registered.
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       input body emailRequest true "Email"
// @Success     200 {object} presenter.Response
// @Failure     400 {object} presenter.Response
// @Failure     429 {object} presenter.Response
// @Router      /api/users/resend-verification [post]
func (h *AuthHandler) ResendVerification(c *fiber.Ctx) error {
	var req emailRequest
	if err := bind(c, &req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	}
	if err := h.useCase.ResendVerification(c.Context(), req.Email); err != nil {
		return respondError(c, h.log, err)
	}
	return presenter.OK(c, http.StatusOK,
		"If an account with that email exists and is not yet verified, a new verification link has been sent.", nil)
}

type verifyRequest struct {
	Token string `json:"token" form:"token"`
}

// VerifyEmail accepts the token from the path, the query string or the body.
// @Summary Verify email
// @Tags    users
// @Accept  json
// @Produce json
// @Param   token path string false "Verification token"
// @Param   token query string false "Verification token"
// @Param   input body verifyRequest false "Token in the body"
// @Success 200 {object} presenter.Response
// @Failure 400 {object} presenter.Response
// @Router  /api/users/verifyemail [post]
// @Router  /api/users/verifyemail/{token} [post]
// @Router  /api/users/verifyemail [get]
func (h *AuthHandler) VerifyEmail(c *fiber.Ctx) error {
	token := strings.TrimSpace(c.Params("token"))
	if token == "" {
		token = strings.TrimSpace(c.Query("token"))
	}
	if token == "" && len(c.Body()) > 0 {
		var req verifyRequest
		if err := c.BodyParser(&req); err == nil {
			token = strings.TrimSpace(req.Token)
		}
	}

	err := h.useCase.VerifyEmail(c.Context(), token)
	h.events.AuthEvent("verify_email", err == nil)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return presenter.OK(c, http.StatusOK, "Verified!", nil)
}

// Me returns the profile of the session owner.
// @Summary  Current user
// @Tags     users
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} presenter.Response
// @Failure  401 {object} presenter.Response
// @Failure  404 {object} presenter.Response
// @Router   /api/users/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	sess, _ := jwt.SessionFrom(c)
	id, err := uuid.Parse(sess.UserID)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, "invalid session")
	}
	user, err := h.useCase.GetUser(c.Context(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return presenter.OK(c, http.StatusOK, "", user)
}

type profileRequest struct {
	Name     *string `json:"name" validate:"omitempty,max=100"`
	Email    *string `json:"email" validate:"omitempty,email,max=254"`
	Bio      *string `json:"bio" validate:"omitempty,max=2000"`
	Phone    *string `json:"phone" validate:"omitempty,max=32"`
	Password string  `json:"password" validate:"max=72"`
}

// UpdateProfile lets a user edit their own profile; admins may edit anyone's.
// Bio and phone are replaced on every call, null clears them.
// @Summary  Update profile
// @Tags     users
// @Accept   json
// @Produce  json
// @Param    id path string true "User ID (UUID)"
// @Param    input body profileRequest true "Profile fields"
// @Security BearerAuth
// @Success  200 {object} presenter.Response
// @Failure  400 {object} presenter.Response
// @Failure  401 {object} presenter.Response
// @Failure  403 {object} presenter.Response
// @Failure  404 {object} presenter.Response
// @Failure  409 {object} presenter.Response
// @Router   /api/users/update-profile/{id} [put]
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return presenter.Error(c, http.StatusBadRequest, "Invalid user id")
	}
	sess, _ := jwt.SessionFrom(c)
	if sess.UserID != id.String() && sess.Role != auth.RoleAdmin {
		return presenter.Error(c, http.StatusForbidden, "You can only update your own profile")
	}

	var req profileRequest
	if err := bind(c, &req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	}
	user, err := h.useCase.UpdateProfile(c.Context(), id, auth.ProfileInput{
		Name:     req.Name,
		Email:    req.Email,
		Bio:      req.Bio,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return presenter.OK(c, http.StatusOK, "Profile updated successfully", user)
}

type roleRequest struct {
	Role string `json:"role" validate:"required"`
}

// UpdateRole is admin only.
// @Summary  Change user role
// @Tags     users
// @Accept   json
// @Produce  json
// @Param    id path string true "User ID (UUID)"
// @Param    input body roleRequest true "Role"
// @Security BearerAuth
// @Success  200 {object} presenter.Response
// @Failure  400 {object} presenter.Response
// @Failure  401 {object} presenter.Response
// @Failure  403 {object} presenter.Response
// @Failure  404 {object} presenter.Response
// @Router   /api/users/update-role/{id} [put]
func (h *AuthHandler) UpdateRole(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return presenter.Error(c, http.StatusBadRequest, "Invalid user id")
	}
	var req roleRequest
	if err := bind(c, &req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	}
	role, ok := auth.ParseRole(req.Role)
	if !ok {
		return presenter.Error(c, http.StatusBadRequest, "Invalid role")
	}
	user, err := h.useCase.UpdateRole(c.Context(), id, role)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return presenter.OK(c, http.StatusOK, "Role updated", user)
}

// ListUsers is admin only; ?role= narrows the list.
// @Summary  List users
// @Tags     users
// @Produce  json
// @Param    role query string false "client, staff or admin"
// @Security BearerAuth
// @Success  200 {object} presenter.Response
// @Failure  400 {object} presenter.Response
// @Failure  401 {object} presenter.Response
// @Failure  403 {object} presenter.Response
// @Router   /api/users/all [get]
func (h *AuthHandler) ListUsers(c *fiber.Ctx) error {
	var filter auth.ListFilter
	if v := c.Query("role"); v != "" {
		role, ok := auth.ParseRole(v)
		if !ok {
			return presenter.Error(c, http.StatusBadRequest, "Invalid role")
		}
		filter.Role = &role
	}
	users, err := h.useCase.ListUsers(c.Context(), filter)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return presenter.OK(c, http.StatusOK, "", users)
}

// @Summary  Delete user
// @Tags     users
// @Produce  json
// @Param    id path string true "User ID (UUID)"
// @Security BearerAuth
// @Success  200 {object} presenter.Response
// @Failure  400 {object} presenter.Response
// @Failure  401 {object} presenter.Response
// @Failure  403 {object} presenter.Response
// @Failure  404 {object} presenter.Response
// @Router   /api/users/delete/{id} [delete]
func (h *AuthHandler) DeleteUser(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return presenter.Error(c, http.StatusBadRequest, "Invalid user id")
	}
	if err := h.useCase.DeleteUser(c.Context(), id); err != nil {
		return respondError(c, h.log, err)
	}
	return presenter.OK(c, http.StatusOK, "User deleted", nil)
}

func pathID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params("id"))
	return id, err == nil
}
