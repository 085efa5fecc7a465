package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Member roles within a group.
const (
	RoleAdmin        = "admin"
	RoleCaregiver    = "caregiver"
	RoleCarereceiver = "carereceiver"
)

// IsValidRole reports whether role is one of the three member roles.
func IsValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleCaregiver, RoleCarereceiver:
		return true
	}
	return false
}

type Group struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name    string             `bson:"name" json:"name"`
	Members []GroupMember      `bson:"members" json:"members"`
}

type GroupMember struct {
	UserID           primitive.ObjectID `bson:"user" json:"userId"`
	Role             string             `bson:"role" json:"role"`
	FamilialRelation string             `bson:"familialRelation,omitempty" json:"familialRelation,omitempty"`
}

// FindMember returns a pointer into the members slice for the entry whose
// user matches userID, or nil if the user is not a member. Linear scan;
// groups are family-sized.
func (g *Group) FindMember(userID primitive.ObjectID) *GroupMember {
	for i := range g.Members {
		if g.Members[i].UserID == userID {
			return &g.Members[i]
		}
	}
	return nil
}

// HasAdmin reports whether userID is a member of the group with the admin
// role.
func (g *Group) HasAdmin(userID primitive.ObjectID) bool {
	m := g.FindMember(userID)
	return m != nil && m.Role == RoleAdmin
}
