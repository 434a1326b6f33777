package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ashurbayy/lifechip/internal/middleware"
	"github.com/ashurbayy/lifechip/internal/service"
	"github.com/ashurbayy/lifechip/internal/session"
	"github.com/ashurbayy/lifechip/internal/store"
)

// ProfileHandler serves the authenticated medical-profile endpoints and the
// public emergency lookup.
type ProfileHandler struct {
	profiles *service.MedicalProfileService
	sessions *session.Manager
	logger   *zap.Logger
}

func NewProfileHandler(profiles *service.MedicalProfileService, sessions *session.Manager, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		profiles: profiles,
		sessions: sessions,
		logger:   logger,
	}
}

// RegisterRoutes mounts the profile endpoints under group. The emergency
// lookup takes an optional rate limiter since it is unauthenticated.
func (h *ProfileHandler) RegisterRoutes(group *gin.RouterGroup, emergencyLimiter *middleware.RateLimiter) {
	profile := group.Group("/medical-profile")
	profile.Use(middleware.SessionAuth(h.sessions))
	{
		profile.POST("", h.Create)
		profile.GET("", h.GetMine)
		profile.PUT("/:id", h.Update)
	}

	group.GET("/emergency/:chipId", emergencyLimiter.Middleware(), h.Emergency)
}

func (h *ProfileHandler) Create(c *gin.Context) {
	accountID, ok := middleware.AccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	var req CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	profile, err := h.profiles.Create(c.Request.Context(), accountID, service.CreateProfileInput{
		ChipID:            req.ChipID,
		BloodType:         req.BloodType,
		Allergies:         req.Allergies,
		Medications:       req.Medications,
		Conditions:        req.Conditions,
		EmergencyContacts: req.EmergencyContacts,
		Notes:             req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProfileExists):
			c.JSON(http.StatusBadRequest, gin.H{"message": "User already has a medical profile"})
		case errors.Is(err, service.ErrChipRegistered):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Chip ID is already registered"})
		default:
			h.logger.Error("create profile failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, profile)
}

func (h *ProfileHandler) GetMine(c *gin.Context) {
	accountID, ok := middleware.AccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	profile, err := h.profiles.GetByAccount(c.Request.Context(), accountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Medical profile not found"})
			return
		}
		h.logger.Error("get profile failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) Update(c *gin.Context) {
	accountID, ok := middleware.AccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	profileID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Medical profile not found"})
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	profile, err := h.profiles.Update(c.Request.Context(), profileID, accountID, req.Patch())
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Medical profile not found"})
		case errors.Is(err, service.ErrNotProfileOwner):
			c.JSON(http.StatusForbidden, gin.H{"message": "Not authorized to update this profile"})
		case errors.Is(err, service.ErrChipRegistered):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Chip ID is already registered"})
		default:
			h.logger.Error("update profile failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		}
		return
	}

	c.JSON(http.StatusOK, profile)
}

// Emergency is public: a chip id resolves to the medical subset only.
func (h *ProfileHandler) Emergency(c *gin.Context) {
	info, err := h.profiles.EmergencyLookup(c.Request.Context(), c.Param("chipId"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Medical profile not found"})
			return
		}
		h.logger.Error("emergency lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, info)
}
