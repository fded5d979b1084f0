package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/crystalices/backend/api/http/presenter"
	"github.com/crystalices/backend/pkg/newsletter"
)

type NewsletterHandler struct {
	uc  newsletter.UseCase
	log zerolog.Logger
}

func NewNewsletterHandler(uc newsletter.UseCase, log zerolog.Logger) *NewsletterHandler {
	return &NewsletterHandler{uc: uc, log: log}
}

// @Summary Join the newsletter
// @Tags    newsletter
// @Accept  json
// @Produce json
// @Param   input body emailRequest true "Email"
// @Success 200 {object} presenter.Response
// @Failure 400 {object} presenter.Response
// @Failure 409 {object} presenter.Response
// @Failure 429 {object} presenter.Response
// @Router  /api/users/newsletter-subscribe [post]
func (h *NewsletterHandler) Subscribe(c *fiber.Ctx) error {
	var req emailRequest
	if err := bind(c, &req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	}
	if _, err := h.uc.Subscribe(c.Context(), req.Email); err != nil {
		return respondError(c, h.log, err)
	}
	return presenter.OK(c, http.StatusOK, "Successfully joined the newsletter!", nil)
}

// @Summary  List newsletter subscribers
// @Tags     newsletter
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} presenter.Response
// @Failure  401 {object} presenter.Response
// @Failure  403 {object} presenter.Response
// @Router   /api/users/newsletter-all [get]
func (h *NewsletterHandler) List(c *fiber.Ctx) error {
	subs, err := h.uc.List(c.Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return presenter.OK(c, http.StatusOK, "", subs)
}
