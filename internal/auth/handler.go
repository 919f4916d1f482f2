package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/foundersof404/404founders/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type Handler struct {
	service  *Service
	validate *validator.Validate
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

func NewHandler(service *Service, logger *slog.Logger, metrics *metrics.Metrics) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(),
		logger:   logger,
		metrics:  metrics,
	}
}

func (h *Handler) RegisterRoutes(router gin.IRouter) {
	router.POST("/api/admin/login", h.Login)
}

// RegisterProtectedRoutes registers endpoints that sit behind Middleware.
func (h *Handler) RegisterProtectedRoutes(router gin.IRouter) {
	router.GET("/verify", h.Verify)
}

// Login authenticates an administrator and returns a 24h session token
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Username and password are required"})
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Password = strings.TrimSpace(req.Password)
	if err := h.validate.Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Username and password are required"})
		return
	}

	token, adminInfo, err := h.service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "login failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error"})
		return
	}

	h.logger.InfoContext(c.Request.Context(), "admin logged in", "username", adminInfo.Username)
	h.metrics.RecordAdminLogin(c.Request.Context())

	c.JSON(http.StatusOK, LoginResponse{
		Token:   token,
		Message: "Login successful",
		Admin:   adminInfo,
	})
}

// Verify reports the identity embedded in the presented token.
// Middleware has already validated the token by the time this runs.
func (h *Handler) Verify(c *gin.Context) {
	adminInfo, ok := AdminFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Access denied. No token provided."})
		return
	}

	c.JSON(http.StatusOK, VerifyResponse{
		Valid: true,
		Admin: adminInfo,
	})
}
