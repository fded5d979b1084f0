package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/crystalices/backend/api/http/presenter"
	"github.com/crystalices/backend/pkg/careers"
)

type CareersHandler struct {
	uc  careers.UseCase
	log zerolog.Logger
}

func NewCareersHandler(uc careers.UseCase, log zerolog.Logger) *CareersHandler {
	return &CareersHandler{uc: uc, log: log}
}

type applyRequest struct {
	Name      string `json:"name" validate:"required,max=200"`
	Email     string `json:"email" validate:"required,email,max=254"`
	CVLink    string `json:"cvLink" validate:"required,url,max=2048"`
	RoleTitle string `json:"roleTitle" validate:"required,max=200"`
}

// @Summary Apply for a role
// @Tags    careers
// @Accept  json
// @Produce json
// @Param   input body applyRequest true "Application"
// @Success 201 {object} presenter.Response
// @Failure 400 {object} presenter.Response
// @Failure 429 {object} presenter.Response
// @Router  /api/users/careers/apply [post]
func (h *CareersHandler) Apply(c *fiber.Ctx) error {
	var req applyRequest
	if err := bind(c, &req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	}
	app, err := h.uc.Apply(c.Context(), careers.Application{
		ApplicantName:  req.Name,
		ApplicantEmail: req.Email,
		CVLink:         req.CVLink,
		RoleApplied:    req.RoleTitle,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return presenter.OK(c, http.StatusCreated, "Application received!", app)
}

// @Summary  List job applications
// @Tags     careers
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} presenter.Response
// @Failure  401 {object} presenter.Response
// @Failure  403 {object} presenter.Response
// @Router   /api/users/applications/all [get]
func (h *CareersHandler) List(c *fiber.Ctx) error {
	apps, err := h.uc.List(c.Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return presenter.OK(c, http.StatusOK, "", apps)
}
