package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ashurbayy/lifechip/internal/middleware"
	"github.com/ashurbayy/lifechip/internal/service"
)

// ContactHandler serves the public contact form.
type ContactHandler struct {
	contacts *service.ContactService
	logger   *zap.Logger
}

func NewContactHandler(contacts *service.ContactService, logger *zap.Logger) *ContactHandler {
	return &ContactHandler{
		contacts: contacts,
		logger:   logger,
	}
}

func (h *ContactHandler) RegisterRoutes(group *gin.RouterGroup, limiter *middleware.RateLimiter) {
	group.POST("/contact", limiter.Middleware(), h.Submit)
}

// Submit stores the message and acknowledges without echoing the record.
func (h *ContactHandler) Submit(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	if _, err := h.contacts.Submit(c.Request.Context(), req.Name, req.Email, req.Subject, req.Message); err != nil {
		h.logger.Error("contact submission failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Message sent successfully"})
}
