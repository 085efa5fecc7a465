package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/carecircleapp/carecircle-api/internal/models"
	"github.com/carecircleapp/carecircle-api/internal/store"
)

// IsUserAdminOfGroup reports whether userID holds the admin role in the
// given group. It fails closed: a missing group or a lookup error counts
// as "not admin".
func IsUserAdminOfGroup(ctx context.Context, groups store.GroupStore, userID, groupID primitive.ObjectID) bool {
	group, err := groups.GetByID(ctx, groupID)
	if err != nil {
		return false
	}
	return group.HasAdmin(userID)
}

// CheckUserAdminStatus reports a user's membership and role in a group.
func (h *Handler) CheckUserAdminStatus(c *gin.Context) {
	userID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	groupID, err := primitive.ObjectIDFromHex(c.Param("groupId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID"})
		return
	}

	group, err := h.Groups.GetByID(context.TODO(), groupID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	member := group.FindMember(userID)
	resp := gin.H{
		"isAdmin":  member != nil && member.Role == models.RoleAdmin,
		"isMember": member != nil,
		"groupId":  groupID.Hex(),
	}
	if member != nil {
		resp["role"] = member.Role
	}

	c.JSON(http.StatusOK, resp)
}

type UpdateUserRoleRequest struct {
	Role    string `json:"role"`
	GroupID string `json:"groupId"`
}

// UpdateUserRole lets a group admin change another member's role. The role
// is validated before the admin check, and admins cannot change their own
// role through this endpoint.
func (h *Handler) UpdateUserRole(c *gin.Context) {
	userID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	targetUserID, err := primitive.ObjectIDFromHex(c.Param("targetUserId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid target user ID"})
		return
	}

	var req UpdateUserRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Role == "" || req.GroupID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "role and groupId are required"})
		return
	}
	groupID, err := primitive.ObjectIDFromHex(req.GroupID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID"})
		return
	}

	if !models.IsValidRole(req.Role) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Role must be one of admin, caregiver, carereceiver"})
		return
	}

	if userID == targetUserID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot change your own role"})
		return
	}

	if !IsUserAdminOfGroup(context.TODO(), h.Groups, userID, groupID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only group admins can change member roles"})
		return
	}

	group, err := h.Groups.GetByID(context.TODO(), groupID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	member := group.FindMember(targetUserID)
	if member == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Target user is not a member of this group"})
		return
	}

	member.Role = req.Role
	if err := h.Groups.Save(context.TODO(), group); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Role updated successfully",
		"updatedMember": gin.H{
			"userId":  targetUserID.Hex(),
			"role":    member.Role,
			"groupId": groupID.Hex(),
		},
	})
}

// GetUserGroup returns the user's primary group id.
func (h *Handler) GetUserGroup(c *gin.Context) {
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

	if user.GroupID == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User has no group"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"groupId": user.GroupID.Hex()})
}

// GetAllUserGroups returns the user's group ids plus the group names for
// display, primary group first.
func (h *Handler) GetAllUserGroups(c *gin.Context) {
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

	ids := user.GroupIDs()
	groups, err := h.Groups.GetManyByIDs(context.TODO(), ids)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// Re-order the batch result to match the id list.
	byID := make(map[primitive.ObjectID]models.Group, len(groups))
	for _, g := range groups {
		byID[g.ID] = g
	}

	groupIDs := make([]string, 0, len(ids))
	groupList := make([]gin.H, 0, len(ids))
	for _, id := range ids {
		groupIDs = append(groupIDs, id.Hex())
		if g, found := byID[id]; found {
			groupList = append(groupList, gin.H{"groupId": g.ID.Hex(), "name": g.Name})
		}
	}

	c.JSON(http.StatusOK, gin.H{"groupIds": groupIDs, "groups": groupList})
}

// GetAllGroups returns just the id list and summary flags, without names.
func (h *Handler) GetAllGroups(c *gin.Context) {
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

	ids := user.GroupIDs()
	groupIDs := make([]string, 0, len(ids))
	for _, id := range ids {
		groupIDs = append(groupIDs, id.Hex())
	}

	c.JSON(http.StatusOK, gin.H{
		"groupIds":            groupIDs,
		"totalGroups":         len(groupIDs),
		"hasAdditionalGroups": len(user.AdditionalGroups) > 0,
	})
}

// resolveTargetGroup picks the group a family query acts on: the groupId
// query override when supplied, else the user's primary group.
func resolveTargetGroup(c *gin.Context, user *models.User) (primitive.ObjectID, bool) {
	if override := c.Query("groupId"); override != "" {
		groupID, err := primitive.ObjectIDFromHex(override)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID"})
			return primitive.NilObjectID, false
		}
		return groupID, true
	}
	if user.GroupID == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User or group not found"})
		return primitive.NilObjectID, false
	}
	return *user.GroupID, true
}

// GetFamilyMembers assembles the roster for the target group: each group
// member's role and familial relation joined with their profile name and
// image. One batch lookup covers all profiles; members without a profile
// come back with an empty fullName.
func (h *Handler) GetFamilyMembers(c *gin.Context) {
	userID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	user, err := h.Users.GetByID(context.TODO(), userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User or group not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	groupID, ok := resolveTargetGroup(c, user)
	if !ok {
		return
	}

	group, err := h.Groups.GetByID(context.TODO(), groupID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User or group not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	memberIDs := make([]primitive.ObjectID, 0, len(group.Members))
	for _, m := range group.Members {
		memberIDs = append(memberIDs, m.UserID)
	}

	profiles, err := h.Users.GetManyByIDs(context.TODO(), memberIDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	byID := make(map[primitive.ObjectID]models.User, len(profiles))
	for _, p := range profiles {
		byID[p.ID] = p
	}

	members := make([]gin.H, 0, len(group.Members))
	for _, m := range group.Members {
		fullName := ""
		imageURL := ""
		if p, found := byID[m.UserID]; found {
			fullName = p.FullName()
			imageURL = p.ImageURL
		}
		members = append(members, gin.H{
			"userId":           m.UserID.Hex(),
			"role":             m.Role,
			"familialRelation": m.FamilialRelation,
			"fullName":         fullName,
			"imageUrl":         imageURL,
		})
	}

	c.JSON(http.StatusOK, members)
}

// GetCurrentUserFamilyRole returns the calling user's role in the target
// group.
func (h *Handler) GetCurrentUserFamilyRole(c *gin.Context) {
	userID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	user, err := h.Users.GetByID(context.TODO(), userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User or group not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	groupID, ok := resolveTargetGroup(c, user)
	if !ok {
		return
	}

	group, err := h.Groups.GetByID(context.TODO(), groupID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User or group not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	member := group.FindMember(userID)
	if member == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User is not a member of this group"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"role": member.Role, "groupId": groupID.Hex()})
}
