package handlers

import (
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/crystalices/backend/api/http/presenter"
	"github.com/crystalices/backend/pkg/equipment"
)

// ImageStore persists uploaded images and returns their public path.
type ImageStore interface {
	Save(fh *multipart.FileHeader) (string, error)
	Remove(publicPath string) error
}

type EquipmentHandler struct {
	uc         equipment.UseCase
	images     ImageStore
	backendURL string
	log        zerolog.Logger
}

func NewEquipmentHandler(uc equipment.UseCase, images ImageStore, backendURL string, log zerolog.Logger) *EquipmentHandler {
	return &EquipmentHandler{uc: uc, images: images, backendURL: strings.TrimRight(backendURL, "/"), log: log}
}

// equipmentForm is sent as multipart/form-data (with an optional "image" file) or JSON.
type equipmentForm struct {
	Name        string `json:"name" form:"name" validate:"max=200"`
	Category    string `json:"category" form:"category" validate:"max=100"`
	Brand       string `json:"brand" form:"brand" validate:"max=100"`
	Region      string `json:"region" form:"region" validate:"max=100"`
	DailyRate   string `json:"dailyRate" form:"dailyRate"`
	Description string `json:"description" form:"description" validate:"max=5000"`
	IsAvailable string `json:"isAvailable" form:"isAvailable"`
}

func (f equipmentForm) input() (equipment.Input, error) {
	in := equipment.Input{
		Name:        f.Name,
		Category:    f.Category,
		Brand:       optional(f.Brand),
		Region:      optional(f.Region),
		Description: optional(f.Description),
	}
	if v := strings.TrimSpace(f.DailyRate); v != "" {
		rate, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return equipment.Input{}, equipment.ErrValidation("Daily rate must be a number")
		}
		in.DailyRate = &rate
	}
	if v := strings.TrimSpace(f.IsAvailable); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return equipment.Input{}, equipment.ErrValidation("isAvailable must be true or false")
		}
		in.IsAvailable = &b
	}
	return in, nil
}

// @Summary List equipment
// @Tags    equipment
// @Produce json
// @Success 200 {object} presenter.Response
// @Router  /api/equipment/all [get]
// @Router  /api/admin/equipment/all [get]
func (h *EquipmentHandler) List(c *fiber.Ctx) error {
	items, err := h.uc.List(c.Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	for i := range items {
		items[i].ImageURL = absoluteURL(h.backendURL, items[i].ImageURL)
	}
	return presenter.OK(c, http.StatusOK, "", items)
}

// @Summary  Add equipment
// @Tags     equipment
// @Accept   mpfd
// @Produce  json
// @Param    name formData string false "Name"
// @Param    category formData string false "Category"
// @Param    brand formData string false "Brand"
// @Param    region formData string false "Region"
// @Param    dailyRate formData string false "Daily rate"
// @Param    description formData string false "Description"
// @Param    isAvailable formData string false "true or false"
// @Param    image formData file false "Photo (png, jpeg, webp, gif)"
// @Security BearerAuth
// @Success  201 {object} presenter.Response
// @Failure  400 {object} presenter.Response
// @Failure  401 {object} presenter.Response
// @Failure  403 {object} presenter.Response
// @Router   /api/equipment/add [post]
// @Router   /api/admin/equipment/add [post]
func (h *EquipmentHandler) Create(c *fiber.Ctx) error {
	var form equipmentForm
	if err := bind(c, &form); err != nil {
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	}
	in, err := form.input()
	if err != nil {
		return respondError(c, h.log, err)
	}
	image, err := h.saveImage(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	in.ImageURL = image

	item, err := h.uc.Create(c.Context(), in)
	if err != nil {
		h.discard(image)
		return respondError(c, h.log, err)
	}
	item.ImageURL = absoluteURL(h.backendURL, item.ImageURL)
	return presenter.OK(c, http.StatusCreated, "Equipment added successfully", item)
}

// Update replaces the image only when a new file is uploaded.
// @Summary     Update equipment
// @Description The stored photo is replaced only when a new file is uploaded.
// @Tags        equipment
// @Accept      mpfd
// @Produce     json
// @Param       id path string true "Equipment ID (UUID)"
// @Param       name formData string false "Name"
// @Param       category formData string false "Category"
// @Param       brand formData string false "Brand"
// @Param       region formData string false "Region"
// @Param       dailyRate formData string false "Daily rate"
// @Param       description formData string false "Description"
// @Param       isAvailable formData string false "true or false"
// @Param       image formData file false "Photo (png, jpeg, webp, gif)"
// @Security    BearerAuth
// @Success     200 {object} presenter.Response
// @Failure     400 {object} presenter.Response
// @Failure     401 {object} presenter.Response
// @Failure     403 {object} presenter.Response
// @Failure     404 {object} presenter.Response
// @Router      /api/equipment/update/{id} [put]
// @Router      /api/admin/equipment/update/{id} [put]
func (h *EquipmentHandler) Update(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return presenter.Error(c, http.StatusBadRequest, "Invalid equipment id")
	}
	var form equipmentForm
	if err := bind(c, &form); err != nil {
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	}
	in, err := form.input()
	if err != nil {
		return respondError(c, h.log, err)
	}
	current, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	image, err := h.saveImage(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	in.ImageURL = image

	item, err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		h.discard(image)
		return respondError(c, h.log, err)
	}
	if image != nil {
		h.discard(current.ImageURL)
	}
	item.ImageURL = absoluteURL(h.backendURL, item.ImageURL)
	return presenter.OK(c, http.StatusOK, "Equipment updated", item)
}

// @Summary  Delete equipment
// @Tags     equipment
// @Produce  json
// @Param    id path string true "Equipment ID (UUID)"
// @Security BearerAuth
// @Success  200 {object} presenter.Response
// @Failure  400 {object} presenter.Response
// @Failure  401 {object} presenter.Response
// @Failure  403 {object} presenter.Response
// @Failure  404 {object} presenter.Response
// @Router   /api/equipment/delete/{id} [delete]
// @Router   /api/admin/equipment/delete/{id} [delete]
func (h *EquipmentHandler) Delete(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return presenter.Error(c, http.StatusBadRequest, "Invalid equipment id")
	}
	current, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return respondError(c, h.log, err)
	}
	h.discard(current.ImageURL)
	return presenter.OK(c, http.StatusOK, "Equipment deleted", nil)
}

func (h *EquipmentHandler) saveImage(c *fiber.Ctx) (*string, error) {
	return saveUpload(c, h.images, "image")
}

func (h *EquipmentHandler) discard(image *string) {
	discardUpload(h.images, image, h.log)
}

// saveUpload stores the optional file field. No file (or a non-multipart body) yields nil.
func saveUpload(c *fiber.Ctx, store ImageStore, field string) (*string, error) {
	if store == nil {
		return nil, nil
	}
	fh, err := c.FormFile(field)
	if err != nil || fh == nil {
		return nil, nil
	}
	path, err := store.Save(fh)
	if err != nil {
		return nil, err
	}
	return &path, nil
}

func discardUpload(store ImageStore, image *string, log zerolog.Logger) {
	if store == nil || image == nil {
		return
	}
	if err := store.Remove(*image); err != nil {
		log.Warn().Err(err).Str("path", *image).Msg("remove orphaned upload")
	}
}

// absoluteURL prefixes stored "/uploads/..." paths with the public backend URL.
func absoluteURL(base string, path *string) *string {
	if path == nil || base == "" || !strings.HasPrefix(*path, "/") {
		return path
	}
	u := base + *path
	return &u
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
