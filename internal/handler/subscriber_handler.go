package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/startupathon-api/internal/dto"
	"github.com/noah-isme/startupathon-api/internal/models"
	appErrors "github.com/noah-isme/startupathon-api/pkg/errors"
	"github.com/noah-isme/startupathon-api/pkg/export"
	"github.com/noah-isme/startupathon-api/pkg/response"
)

type subscriberService interface {
	List(ctx context.Context, search string, page int) ([]models.Subscriber, *models.Pagination, error)
	Get(ctx context.Context, id string) (*models.Subscriber, error)
	Create(ctx context.Context, req dto.SubscriberRequest) (*models.Subscriber, error)
	Update(ctx context.Context, id string, req dto.SubscriberRequest) (*models.Subscriber, error)
	Delete(ctx context.Context, id string) error
	Export(ctx context.Context, search string) (*export.Dataset, error)
}

// SubscriberHandler exposes the admin subscriber endpoints.
type SubscriberHandler struct {
	service subscriberService
}

// NewSubscriberHandler constructs a SubscriberHandler.
func NewSubscriberHandler(svc subscriberService) *SubscriberHandler {
	return &SubscriberHandler{service: svc}
}

// List godoc
// @Summary List subscribers
// @Description Ten subscribers per page, newest first
// @Tags Admin Subscribers
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param search query string false "Email substring"
// @Success 200 {object} response.Envelope
// @Router /admin/subscribers [get]
func (h *SubscriberHandler) List(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	subscribers, pagination, err := h.service.List(c.Request.Context(), c.Query("search"), page)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, subscribers, pagination)
}

// Get godoc
// @Summary Get subscriber
// @Tags Admin Subscribers
// @Produce json
// @Security BearerAuth
// @Param id path string true "Subscriber ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/subscribers/{id} [get]
func (h *SubscriberHandler) Get(c *gin.Context) {
	subscriber, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, subscriber)
}

// Create godoc
// @Summary Create subscriber
// @Tags Admin Subscribers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.SubscriberRequest true "Subscriber"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /admin/subscribers [post]
func (h *SubscriberHandler) Create(c *gin.Context) {
	req, err := decodeSubscriber(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	subscriber, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, subscriber)
}

// Update godoc
// @Summary Update subscriber email
// @Tags Admin Subscribers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Subscriber ID"
// @Param payload body dto.SubscriberRequest true "Subscriber"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/subscribers/{id} [put]
func (h *SubscriberHandler) Update(c *gin.Context) {
	req, err := decodeSubscriber(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	subscriber, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, subscriber)
}

// Delete godoc
// @Summary Delete subscriber
// @Tags Admin Subscribers
// @Produce json
// @Security BearerAuth
// @Param id path string true "Subscriber ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/subscribers/{id} [delete]
func (h *SubscriberHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Ack(c, "Subscriber deleted successfully")
}

// Export godoc
// @Summary Export subscribers
// @Description Download every subscriber matching search as CSV or PDF
// @Tags Admin Subscribers
// @Produce text/csv
// @Produce application/pdf
// @Security BearerAuth
// @Param format query string false "csv (default) or pdf"
// @Param search query string false "Email substring"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /admin/subscribers/export [get]
func (h *SubscriberHandler) Export(c *gin.Context) {
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		response.Error(c, appErrors.WithFields(appErrors.ErrValidation, err.Error(), "format"))
		return
	}
	exporter, err := export.For(format)
	if err != nil {
		response.Error(c, err)
		return
	}

	data, err := h.service.Export(c.Request.Context(), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	filename := fmt.Sprintf("subscribers-%s%s", time.Now().UTC().Format("20060102"), exporter.Extension())
	c.Header("Content-Type", exporter.ContentType())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Status(http.StatusOK)
	if err := exporter.Write(c.Writer, *data); err != nil {
		_ = c.Error(err)
	}
}

func decodeSubscriber(c *gin.Context) (dto.SubscriberRequest, error) {
	form, err := readForm(c, 0)
	if err != nil {
		return dto.SubscriberRequest{}, err
	}
	return dto.DecodeSubscriber(form)
}
