package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sahilk27/wattwise/internal/domain/models"
	authsvc "github.com/sahilk27/wattwise/internal/service/auth"
)

// ProfileHandler serves account details, profile edits, and login history.
type ProfileHandler struct {
	svc    *authsvc.Service
	logger *zap.Logger
}

// NewProfileHandler constructs the HTTP handler adapter.
func NewProfileHandler(svc *authsvc.Service, logger *zap.Logger) *ProfileHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileHandler{svc: svc, logger: logger}
}

// Get returns the authenticated user's account and profile.
func (h *ProfileHandler) Get(c *gin.Context) {
	user, err := h.svc.Profile(c.Request.Context(), usernameFrom(c))
	if errors.Is(err, models.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	if err != nil {
		h.logger.Error("failed to load profile", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return
	}

	c.JSON(http.StatusOK, user)
}

type updateProfileRequest struct {
	Email   string         `json:"email" binding:"required,email"`
	Profile models.Profile `json:"profile"`
}

// Update applies profile edits for the authenticated user.
func (h *ProfileHandler) Update(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	err := h.svc.UpdateProfile(c.Request.Context(), usernameFrom(c), req.Email, req.Profile)
	if errors.Is(err, models.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	if err != nil {
		h.logger.Error("failed to update profile", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update profile"})
		return
	}

	c.Status(http.StatusNoContent)
}

// Logins returns recent login events, newest first.
func (h *ProfileHandler) Logins(c *gin.Context) {
	events, err := h.svc.LoginHistory(c.Request.Context(), usernameFrom(c))
	if err != nil {
		h.logger.Error("failed to load login history", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load login history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"logins": events})
}
