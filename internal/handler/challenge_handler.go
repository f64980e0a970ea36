package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/startupathon-api/internal/dto"
	"github.com/noah-isme/startupathon-api/internal/models"
	"github.com/noah-isme/startupathon-api/pkg/response"
)

type challengeService interface {
	List(ctx context.Context) ([]models.Challenge, error)
	Get(ctx context.Context, id string) (*models.Challenge, error)
	Create(ctx context.Context, in dto.ChallengeInput) (*models.Challenge, error)
	Update(ctx context.Context, id string, in dto.ChallengeInput) (*models.Challenge, error)
	Delete(ctx context.Context, id string) error
}

// ChallengeHandler exposes the admin challenge endpoints.
type ChallengeHandler struct {
	service   challengeService
	maxUpload int64
}

// NewChallengeHandler constructs a ChallengeHandler. maxUpload bounds multipart bodies.
func NewChallengeHandler(svc challengeService, maxUpload int64) *ChallengeHandler {
	return &ChallengeHandler{service: svc, maxUpload: maxUpload}
}

// List godoc
// @Summary List challenges
// @Description All challenges, hidden ones included, in creation order
// @Tags Admin Challenges
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /admin/challenges [get]
func (h *ChallengeHandler) List(c *gin.Context) {
	challenges, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, challenges)
}

// Get godoc
// @Summary Get challenge
// @Tags Admin Challenges
// @Produce json
// @Security BearerAuth
// @Param id path string true "Challenge ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/challenges/{id} [get]
func (h *ChallengeHandler) Get(c *gin.Context) {
	challenge, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, challenge)
}

// Create godoc
// @Summary Create challenge
// @Tags Admin Challenges
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Title"
// @Param funding formData string true "Funding"
// @Param deadline formData string true "Deadline (YYYY-MM-DD)"
// @Param description formData string true "Description"
// @Param visible formData boolean false "Visible on the public site"
// @Param image formData file false "Cover image (max 3MB)"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /admin/challenges [post]
func (h *ChallengeHandler) Create(c *gin.Context) {
	in, err := h.decode(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	challenge, err := h.service.Create(c.Request.Context(), *in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, challenge)
}

// Update godoc
// @Summary Update challenge
// @Description Absent fields are left unchanged; a new image replaces the old one
// @Tags Admin Challenges
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Challenge ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/challenges/{id} [put]
func (h *ChallengeHandler) Update(c *gin.Context) {
	in, err := h.decode(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	challenge, err := h.service.Update(c.Request.Context(), c.Param("id"), *in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, challenge)
}

// Delete godoc
// @Summary Delete challenge
// @Tags Admin Challenges
// @Produce json
// @Security BearerAuth
// @Param id path string true "Challenge ID"
// @Success 200 {object} response.Envelope
// @Router /admin/challenges/{id} [delete]
func (h *ChallengeHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Ack(c, "Challenge deleted successfully")
}

func (h *ChallengeHandler) decode(c *gin.Context) (*dto.ChallengeInput, error) {
	form, err := readForm(c, h.maxUpload)
	if err != nil {
		return nil, err
	}
	return dto.DecodeChallenge(form)
}
