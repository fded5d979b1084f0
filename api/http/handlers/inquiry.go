package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/crystalices/backend/api/http/presenter"
	"github.com/crystalices/backend/pkg/inquiry"
	"github.com/crystalices/backend/pkg/security/jwt"
)

type InquiryHandler struct {
	uc  inquiry.UseCase
	log zerolog.Logger
}

func NewInquiryHandler(uc inquiry.UseCase, log zerolog.Logger) *InquiryHandler {
	return &InquiryHandler{uc: uc, log: log}
}

type submitInquiryRequest struct {
	FullName     string `json:"fullName" validate:"max=200"`
	Email        string `json:"email" validate:"omitempty,email,max=254"`
	Service      string `json:"service" validate:"max=200"`
	Requirements string `json:"requirements" validate:"max=10000"`
	UserID       string `json:"userId" validate:"omitempty,uuid"`
}

// Submit is public; the receipt email is best-effort.
// @Summary Submit a rental inquiry
// @Tags    inquiry
// @Accept  json
// @Produce json
// @Param   input body submitInquiryRequest true "Inquiry"
// @Success 201 {object} presenter.Response
// @Failure 400 {object} presenter.Response
// @Failure 429 {object} presenter.Response
// @Router  /api/inquiry/submit [post]
func (h *InquiryHandler) Submit(c *fiber.Ctx) error {
	var req submitInquiryRequest
	if err := bind(c, &req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	}
	in := inquiry.SubmitInput{
		FullName:     req.FullName,
		Email:        req.Email,
		Service:      req.Service,
		Requirements: req.Requirements,
	}
	if v := strings.TrimSpace(req.UserID); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return presenter.Error(c, http.StatusBadRequest, "Invalid user id")
		}
		in.UserID = &id
	}
	inq, err := h.uc.Submit(c.Context(), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return presenter.OK(c, http.StatusCreated, "Inquiry submitted successfully!", inq)
}

// List shows every inquiry to staff and admins, and only their own to clients.
// @Summary     List inquiries
// @Description Staff and admins see every inquiry, clients only their own.
// @Tags        inquiry
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} presenter.Response
// @Failure     401 {object} presenter.Response
// @Router      /api/inquiry/all [get]
func (h *InquiryHandler) List(c *fiber.Ctx) error {
	sess, _ := jwt.SessionFrom(c)
	items, err := h.uc.List(c.Context(), inquiry.Viewer{Role: sess.Role, Email: sess.Email})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return presenter.OK(c, http.StatusOK, "", items)
}

type statusRequest struct {
	Status string `json:"status" validate:"required"`
}

// @Summary  Change inquiry status
// @Tags     inquiry
// @Accept   json
// @Produce  json
// @Param    id path string true "Inquiry ID (UUID)"
// @Param    input body statusRequest true "Status"
// @Security BearerAuth
// @Success  200 {object} presenter.Response
// @Failure  400 {object} presenter.Response
// @Failure  401 {object} presenter.Response
// @Failure  403 {object} presenter.Response
// @Failure  404 {object} presenter.Response
// @Router   /api/inquiry/update-status/{id} [put]
func (h *InquiryHandler) UpdateStatus(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return presenter.Error(c, http.StatusBadRequest, "Invalid inquiry id")
	}
	var req statusRequest
	if err := bind(c, &req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	}
	inq, err := h.uc.UpdateStatus(c.Context(), id, req.Status)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return presenter.OK(c, http.StatusOK, "Status updated", inq)
}
