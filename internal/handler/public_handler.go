package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/startupathon-api/internal/dto"
	"github.com/noah-isme/startupathon-api/internal/models"
	"github.com/noah-isme/startupathon-api/pkg/response"
)

type publicService interface {
	ListChallenges(ctx context.Context) ([]models.Challenge, error)
	GetChallenge(ctx context.Context, id string) (*models.Challenge, error)
	ListCompleters(ctx context.Context) ([]models.Completer, error)
	GetCompleter(ctx context.Context, id string) (*models.Completer, error)
	Subscribe(ctx context.Context, req dto.SubscriberRequest) (*models.Subscriber, error)
}

// PublicHandler serves the anonymous site.
type PublicHandler struct {
	service publicService
}

// NewPublicHandler constructs a PublicHandler.
func NewPublicHandler(svc publicService) *PublicHandler {
	return &PublicHandler{service: svc}
}

// ListChallenges godoc
// @Summary Visible challenges
// @Tags Public
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /challenges [get]
func (h *PublicHandler) ListChallenges(c *gin.Context) {
	challenges, err := h.service.ListChallenges(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, challenges)
}

// GetChallenge godoc
// @Summary Visible challenge
// @Tags Public
// @Produce json
// @Param id path string true "Challenge ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /challenges/{id} [get]
func (h *PublicHandler) GetChallenge(c *gin.Context) {
	challenge, err := h.service.GetChallenge(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, challenge)
}

// ListCompleters godoc
// @Summary Visible completers
// @Tags Public
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /completers [get]
func (h *PublicHandler) ListCompleters(c *gin.Context) {
	completers, err := h.service.ListCompleters(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, completers)
}

// GetCompleter godoc
// @Summary Visible completer
// @Tags Public
// @Produce json
// @Param id path string true "Completer ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /completers/{id} [get]
func (h *PublicHandler) GetCompleter(c *gin.Context) {
	completer, err := h.service.GetCompleter(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, completer)
}

// Subscribe godoc
// @Summary Subscribe to the newsletter
// @Tags Public
// @Accept json
// @Produce json
// @Param payload body dto.SubscriberRequest true "Subscriber"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /subscribers [post]
func (h *PublicHandler) Subscribe(c *gin.Context) {
	req, err := decodeSubscriber(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	subscriber, err := h.service.Subscribe(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, subscriber)
}
