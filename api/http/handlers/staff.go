package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/crystalices/backend/api/http/presenter"
	"github.com/crystalices/backend/pkg/staff"
)

type StaffHandler struct {
	uc         staff.UseCase
	images     ImageStore
	backendURL string
	log        zerolog.Logger
}

func NewStaffHandler(uc staff.UseCase, images ImageStore, backendURL string, log zerolog.Logger) *StaffHandler {
	return &StaffHandler{uc: uc, images: images, backendURL: strings.TrimRight(backendURL, "/"), log: log}
}

type staffForm struct {
	Name     string `json:"name" form:"name" validate:"max=200"`
	Position string `json:"position" form:"position" validate:"max=200"`
	Email    string `json:"email" form:"email" validate:"omitempty,email,max=254"`
	Phone    string `json:"phone" form:"phone" validate:"max=32"`
	Bio      string `json:"bio" form:"bio" validate:"max=5000"`
}

// @Summary  List staff
// @Tags     staff
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} presenter.Response
// @Failure  401 {object} presenter.Response
// @Failure  403 {object} presenter.Response
// @Router   /api/admin/staff/all [get]
func (h *StaffHandler) List(c *fiber.Ctx) error {
	members, err := h.uc.List(c.Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	for i := range members {
		members[i].ImageURL = absoluteURL(h.backendURL, members[i].ImageURL)
	}
	return presenter.OK(c, http.StatusOK, "", members)
}

// @Summary  Add staff member
// @Tags     staff
// @Accept   mpfd
// @Produce  json
// @Param    name formData string true "Name"
// @Param    position formData string false "Position"
// @Param    email formData string false "Email"
// @Param    phone formData string false "Phone"
// @Param    bio formData string false "Bio"
// @Param    image formData file false "Photo (png, jpeg, webp, gif)"
// @Security BearerAuth
// @Success  201 {object} presenter.Response
// @Failure  400 {object} presenter.Response
// @Failure  401 {object} presenter.Response
// @Failure  403 {object} presenter.Response
// @Router   /api/admin/staff/add [post]
func (h *StaffHandler) Add(c *fiber.Ctx) error {
	var form staffForm
	if err := bind(c, &form); err != nil {
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	}
	image, err := saveUpload(c, h.images, "image")
	if err != nil {
		return respondError(c, h.log, err)
	}
	m, err := h.uc.Add(c.Context(), staff.Member{
		Name:     form.Name,
		Position: optional(form.Position),
		Email:    optional(form.Email),
		Phone:    optional(form.Phone),
		Bio:      optional(form.Bio),
		ImageURL: image,
	})
	if err != nil {
		discardUpload(h.images, image, h.log)
		return respondError(c, h.log, err)
	}
	m.ImageURL = absoluteURL(h.backendURL, m.ImageURL)
	return presenter.OK(c, http.StatusCreated, "Staff member added", m)
}

// @Summary  Delete staff member
// @Tags     staff
// @Produce  json
// @Param    id path string true "Staff member ID (UUID)"
// @Security BearerAuth
// @Success  200 {object} presenter.Response
// @Failure  400 {object} presenter.Response
// @Failure  401 {object} presenter.Response
// @Failure  403 {object} presenter.Response
// @Failure  404 {object} presenter.Response
// @Router   /api/admin/staff/delete/{id} [delete]
func (h *StaffHandler) Delete(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return presenter.Error(c, http.StatusBadRequest, "Invalid staff id")
	}
	removed, err := h.uc.Delete(c.Context(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	discardUpload(h.images, removed.ImageURL, h.log)
	return presenter.OK(c, http.StatusOK, "Staff member removed", nil)
}
