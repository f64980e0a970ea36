package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/startupathon-api/internal/dto"
	"github.com/noah-isme/startupathon-api/internal/models"
	"github.com/noah-isme/startupathon-api/pkg/response"
)

type founderService interface {
	List(ctx context.Context) ([]models.Founder, error)
	Get(ctx context.Context, id string) (*models.Founder, error)
	Create(ctx context.Context, in dto.FounderInput) (*models.Founder, error)
	Update(ctx context.Context, id string, in dto.FounderInput) (*models.Founder, error)
	Delete(ctx context.Context, id string) error
}

// FounderHandler exposes the founders directory to admins.
type FounderHandler struct {
	service founderService
}

// NewFounderHandler constructs a FounderHandler.
func NewFounderHandler(svc founderService) *FounderHandler {
	return &FounderHandler{service: svc}
}

// List godoc
// @Summary List founders
// @Tags Admin Founders
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /admin/founders [get]
func (h *FounderHandler) List(c *gin.Context) {
	founders, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, founders)
}

// Get godoc
// @Summary Get founder
// @Tags Admin Founders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Founder ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/founders/{id} [get]
func (h *FounderHandler) Get(c *gin.Context) {
	founder, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, founder)
}

// Create godoc
// @Summary Create founder
// @Tags Admin Founders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /admin/founders [post]
func (h *FounderHandler) Create(c *gin.Context) {
	in, err := decodeFounder(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	founder, err := h.service.Create(c.Request.Context(), *in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, founder)
}

// Update godoc
// @Summary Update founder
// @Tags Admin Founders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Founder ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/founders/{id} [put]
func (h *FounderHandler) Update(c *gin.Context) {
	in, err := decodeFounder(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	founder, err := h.service.Update(c.Request.Context(), c.Param("id"), *in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, founder)
}

// Delete godoc
// @Summary Delete founder
// @Tags Admin Founders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Founder ID"
// @Success 200 {object} response.Envelope
// @Router /admin/founders/{id} [delete]
func (h *FounderHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Ack(c, "Founder deleted successfully")
}

func decodeFounder(c *gin.Context) (*dto.FounderInput, error) {
	form, err := readForm(c, 0)
	if err != nil {
		return nil, err
	}
	return dto.DecodeFounder(form)
}
