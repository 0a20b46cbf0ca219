package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"banktaxi_sync/internal/middleware"
	"banktaxi_sync/internal/model"
	"banktaxi_sync/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DocumentHandler handles per-user document sync requests
type DocumentHandler struct {
	service service.DocumentService
}

// NewDocumentHandler creates a new DocumentHandler
func NewDocumentHandler(s service.DocumentService) *DocumentHandler {
	return &DocumentHandler{service: s}
}

func authUserID(c *gin.Context) (uuid.UUID, bool) {
	val, exists := c.Get(middleware.AuthUserIDKey)
	if !exists {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not found in context, ensure JWT middleware runs first"})
		return uuid.Nil, false
	}
	userID, ok := val.(uuid.UUID)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid user ID type in context"})
		return uuid.Nil, false
	}
	return userID, true
}

// getDocument returns a handler serving the stored payload for the given kind,
// creating it with the kind's default on first access
func (h *DocumentHandler) getDocument(kind string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := authUserID(c)
		if !ok {
			return
		}

		data, err := h.service.Get(c.Request.Context(), userID, kind)
		if err != nil {
			log.Printf("ERROR: loading %s document for user %s: %v", kind, userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load data"})
			return
		}

		c.Data(http.StatusOK, "application/json; charset=utf-8", data)
	}
}

// saveDocument returns a handler that replaces the stored payload for the
// given kind wholesale
func (h *DocumentHandler) saveDocument(kind string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := authUserID(c)
		if !ok {
			return
		}

		var req struct {
			Data json.RawMessage `json:"data"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Data is required"})
			return
		}

		if err := h.service.Save(c.Request.Context(), userID, kind, req.Data); err != nil {
			if errors.Is(err, service.ErrMissingPayload) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Data is required"})
				return
			}
			log.Printf("ERROR: saving %s document for user %s: %v", kind, userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save data"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": kind + " data saved"})
	}
}

// RegisterDocumentRoutes registers the protected document sync routes
func (h *DocumentHandler) RegisterDocumentRoutes(rg *gin.RouterGroup, jwtAuthMW gin.HandlerFunc) {
	protected := rg.Group("")
	protected.Use(jwtAuthMW)
	{
		protected.GET("/bank-data", h.getDocument(model.DocumentKindBank))
		protected.POST("/bank-data", h.saveDocument(model.DocumentKindBank))
		protected.GET("/taxi-data", h.getDocument(model.DocumentKindTaxi))
		protected.POST("/taxi-data", h.saveDocument(model.DocumentKindTaxi))
	}
}
