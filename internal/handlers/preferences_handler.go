package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/carecircleapp/carecircle-api/internal/models"
	"github.com/carecircleapp/carecircle-api/internal/store"
)

// GetNotificationPreferences returns the user's preference bag, falling
// back to the defaults when they never saved one.
func (h *Handler) GetNotificationPreferences(c *gin.Context) {
	userID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	user, err := h.Users.GetByID(context.TODO(), userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	prefs := models.DefaultNotificationPreferences()
	if user.NotificationPrefs != nil {
		prefs = *user.NotificationPrefs
	}

	c.JSON(http.StatusOK, prefs)
}

type UpdateNotificationPreferencesRequest struct {
	DoNotDisturb *bool `json:"doNotDisturb" binding:"required"`
	NewFeed      *bool `json:"newFeed" binding:"required"`
	NewActivity  *bool `json:"newActivity" binding:"required"`
	Invites      *bool `json:"invites" binding:"required"`
}

// UpdateNotificationPreferences replaces the whole preference bag. All four
// flags must be present and boolean; pointer fields distinguish a missing
// flag from an explicit false.
func (h *Handler) UpdateNotificationPreferences(c *gin.Context) {
	userID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateNotificationPreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All four preference flags are required and must be boolean"})
		return
	}

	prefs := models.NotificationPreferences{
		DoNotDisturb: *req.DoNotDisturb,
		NewFeed:      *req.NewFeed,
		NewActivity:  *req.NewActivity,
		Invites:      *req.Invites,
	}

	if _, err := h.Users.SetNotificationPreferences(context.TODO(), userID, prefs); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Notification preferences updated successfully",
		"preferences": prefs,
	})
}
