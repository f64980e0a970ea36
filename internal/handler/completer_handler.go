package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/startupathon-api/internal/dto"
	"github.com/noah-isme/startupathon-api/internal/models"
	"github.com/noah-isme/startupathon-api/pkg/response"
)

type completerService interface {
	List(ctx context.Context) ([]models.Completer, error)
	Get(ctx context.Context, id string) (*models.Completer, error)
	Create(ctx context.Context, in dto.CompleterInput) (*models.Completer, error)
	Update(ctx context.Context, id string, in dto.CompleterInput) (*models.Completer, error)
	Delete(ctx context.Context, id string) error
}

// CompleterHandler exposes the admin completer endpoints.
type CompleterHandler struct {
	service   completerService
	maxUpload int64
}

// NewCompleterHandler constructs a CompleterHandler.
func NewCompleterHandler(svc completerService, maxUpload int64) *CompleterHandler {
	return &CompleterHandler{service: svc, maxUpload: maxUpload}
}

// List godoc
// @Summary List completers
// @Tags Admin Completers
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /admin/completers [get]
func (h *CompleterHandler) List(c *gin.Context) {
	completers, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, completers)
}

// Get godoc
// @Summary Get completer
// @Tags Admin Completers
// @Produce json
// @Security BearerAuth
// @Param id path string true "Completer ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/completers/{id} [get]
func (h *CompleterHandler) Get(c *gin.Context) {
	completer, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, completer)
}

// Create godoc
// @Summary Create completer
// @Tags Admin Completers
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param projectName formData string true "Project name"
// @Param profile formData string true "Founder name"
// @Param position formData string true "Position"
// @Param description formData string true "Description"
// @Param funding formData string true "Funding"
// @Param linkedinUrl formData string true "LinkedIn URL"
// @Param status formData string false "active or inactive"
// @Param visible formData boolean false "Visible on the public site"
// @Param profilePicture formData file false "Profile picture (max 3MB)"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /admin/completers [post]
func (h *CompleterHandler) Create(c *gin.Context) {
	in, err := h.decode(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	completer, err := h.service.Create(c.Request.Context(), *in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, completer)
}

// Update godoc
// @Summary Update completer
// @Tags Admin Completers
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Completer ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/completers/{id} [put]
func (h *CompleterHandler) Update(c *gin.Context) {
	in, err := h.decode(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	completer, err := h.service.Update(c.Request.Context(), c.Param("id"), *in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, completer)
}

// Delete godoc
// @Summary Delete completer
// @Tags Admin Completers
// @Produce json
// @Security BearerAuth
// @Param id path string true "Completer ID"
// @Success 200 {object} response.Envelope
// @Router /admin/completers/{id} [delete]
func (h *CompleterHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Ack(c, "Completer deleted successfully")
}

func (h *CompleterHandler) decode(c *gin.Context) (*dto.CompleterInput, error) {
	form, err := readForm(c, h.maxUpload)
	if err != nil {
		return nil, err
	}
	return dto.DecodeCompleter(form)
}
