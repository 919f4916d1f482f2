package contact

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/foundersof404/404founders/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type Handler struct {
	service  Service
	validate *validator.Validate
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

func NewHandler(service Service, logger *slog.Logger, metrics *metrics.Metrics) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(),
		logger:   logger,
		metrics:  metrics,
	}
}

// RegisterRoutes registers the public, unauthenticated contact form.
func (h *Handler) RegisterRoutes(router gin.IRouter) {
	router.POST("/api/contact", h.Submit)
}

// RegisterAdminRoutes registers the authenticated curation endpoints.
func (h *Handler) RegisterAdminRoutes(router gin.IRouter) {
	router.GET("/contacts", h.List)
	router.DELETE("/contacts/:id", h.Delete)
	router.PATCH("/contacts/:id/read", h.MarkRead)
}

// Submit accepts a visitor message. No rate limiting or spam filtering
// happens here.
func (h *Handler) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Name, email, and message are required"})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Message = strings.TrimSpace(req.Message)
	if err := h.validate.Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Name, email, and message are required"})
		return
	}

	contact := &Contact{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   optional(req.Phone),
		Company: optional(req.Company),
		Message: req.Message,
	}

	created, err := h.service.Submit(c.Request.Context(), contact)
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "failed to save contact", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to save contact message"})
		return
	}

	h.metrics.RecordContactSubmitted(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Message sent successfully",
		"id":      created.ID,
	})
}

// List returns one page of contacts, newest first. page and limit
// default to 1 and 10; limit is deliberately uncapped, matching the
// admin tool's single-operator threat model.
func (h *Handler) List(c *gin.Context) {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil {
		page = 1
	}
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil {
		limit = 10
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	contacts, total, err := h.service.List(c.Request.Context(), page, limit)
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "failed to list contacts", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error"})
		return
	}

	h.metrics.RecordContactsListViewed(c.Request.Context())

	totalPages := (total + limit - 1) / limit

	c.JSON(http.StatusOK, ListResponse{
		Contacts: contacts,
		Pagination: Pagination{
			CurrentPage:   page,
			TotalPages:    totalPages,
			TotalContacts: total,
			Limit:         limit,
		},
	})
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Contact not found"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err, "Failed to delete contact")
		return
	}

	h.logger.InfoContext(c.Request.Context(), "contact deleted", "id", id)
	h.metrics.RecordContactDeleted(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{"message": "Contact deleted successfully"})
}

func (h *Handler) MarkRead(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Contact not found"})
		return
	}

	if err := h.service.MarkRead(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err, "Failed to mark as read")
		return
	}

	h.metrics.RecordContactMarkedRead(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{"message": "Contact marked as read"})
}

func (h *Handler) handleServiceError(c *gin.Context, err error, fallback string) {
	if errors.Is(err, ErrContactNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Contact not found"})
		return
	}
	h.logger.ErrorContext(c.Request.Context(), "contact store error", "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"message": fallback})
}

// optional maps an empty form field to NULL.
func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
