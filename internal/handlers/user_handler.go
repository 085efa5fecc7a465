package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/carecircleapp/carecircle-api/internal/models"
	"github.com/carecircleapp/carecircle-api/internal/store"
)

// objectIDParam parses the named path parameter as an ObjectID. On failure
// it writes a 400 response and returns ok=false.
func objectIDParam(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return primitive.NilObjectID, false
	}
	return id, true
}

func (h *Handler) GetUser(c *gin.Context) {
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

	c.JSON(http.StatusOK, user)
}

// UpdateUser applies a partial profile update. The request body is decoded
// into models.UserUpdate, which has no email field: an email key in the
// payload is silently dropped and the stored email never changes here.
func (h *Handler) UpdateUser(c *gin.Context) {
	userID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	var upd models.UserUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	user, err := h.Users.Update(context.TODO(), userID, upd)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *Handler) DeleteUser(c *gin.Context) {
	userID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	err := h.Users.Delete(context.TODO(), userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

// GetUserInfo returns just the display bits of a profile.
func (h *Handler) GetUserInfo(c *gin.Context) {
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

	c.JSON(http.StatusOK, gin.H{
		"fullName": user.FullName(),
		"imageUrl": user.ImageURL,
	})
}

type AdditionalUserInfoRequest struct {
	FirstName   string   `json:"firstName" binding:"required"`
	LastName    string   `json:"lastName" binding:"required"`
	DateOfBirth string   `json:"dateOfBirth" binding:"required"`
	Gender      string   `json:"gender" binding:"required"`
	Weight      *float64 `json:"weight" binding:"required"`
	Height      *float64 `json:"height" binding:"required"`
}

// ProvideAdditionalUserInfo fills in the onboarding fields. All six are
// required.
func (h *Handler) ProvideAdditionalUserInfo(c *gin.Context) {
	userID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	var req AdditionalUserInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All onboarding fields are required"})
		return
	}

	dob, err := time.Parse("2006-01-02", req.DateOfBirth)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid dateOfBirth, use YYYY-MM-DD"})
		return
	}

	upd := models.UserUpdate{
		FirstName:   &req.FirstName,
		LastName:    &req.LastName,
		DateOfBirth: &dob,
		Gender:      &req.Gender,
		Weight:      req.Weight,
		Height:      req.Height,
	}

	user, err := h.Users.Update(context.TODO(), userID, upd)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		log.Printf("ProvideAdditionalUserInfo: update failed for %s: %v", userID.Hex(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User info updated successfully", "user": user})
}

func (h *Handler) GetUserTasks(c *gin.Context) {
	userID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	tasks, err := h.Tasks.ListByAssignee(context.TODO(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, tasks)
}

func (h *Handler) GetUserNotifications(c *gin.Context) {
	userID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	notifications, err := h.Notifications.ListByUser(context.TODO(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, notifications)
}

// GetUserIDByClerkID resolves the external Clerk identity to our user id.
func (h *Handler) GetUserIDByClerkID(c *gin.Context) {
	clerkID := c.Param("clerkId")
	if clerkID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Clerk ID is required"})
		return
	}

	user, err := h.Users.GetByClerkID(context.TODO(), clerkID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"userId": user.ID.Hex()})
}
