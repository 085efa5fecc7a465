package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID                primitive.ObjectID       `bson:"_id,omitempty" json:"id"`
	ClerkID           string                   `bson:"clerkId,omitempty" json:"clerkId,omitempty"`
	Email             string                   `bson:"email" json:"email"`
	Password          string                   `bson:"password,omitempty" json:"-"` // Hide from JSON responses
	FirstName         string                   `bson:"firstName" json:"firstName"`
	LastName          string                   `bson:"lastName" json:"lastName"`
	Phone             string                   `bson:"phone,omitempty" json:"phone,omitempty"`
	ImageURL          string                   `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	GroupID           *primitive.ObjectID      `bson:"groupId,omitempty" json:"groupId,omitempty"`
	AdditionalGroups  []GroupRef               `bson:"additionalGroups,omitempty" json:"additionalGroups,omitempty"`
	DateOfBirth       *time.Time               `bson:"dateOfBirth,omitempty" json:"dateOfBirth,omitempty"`
	Gender            string                   `bson:"gender,omitempty" json:"gender,omitempty"`
	Weight            float64                  `bson:"weight,omitempty" json:"weight,omitempty"`
	Height            float64                  `bson:"height,omitempty" json:"height,omitempty"`
	NotificationPrefs *NotificationPreferences `bson:"notificationPreferences,omitempty" json:"notificationPreferences,omitempty"`
}

// GroupRef is one entry of a user's additionalGroups list.
type GroupRef struct {
	GroupID primitive.ObjectID `bson:"groupId" json:"groupId"`
}

// FullName joins first and last name, trimming the result so a user with
// only one of the two set does not get stray whitespace.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// GroupIDs returns the user's group ids, primary group first, then the
// additional groups in stored order. No de-duplication.
func (u *User) GroupIDs() []primitive.ObjectID {
	ids := make([]primitive.ObjectID, 0, 1+len(u.AdditionalGroups))
	if u.GroupID != nil {
		ids = append(ids, *u.GroupID)
	}
	for _, g := range u.AdditionalGroups {
		ids = append(ids, g.GroupID)
	}
	return ids
}

type NotificationPreferences struct {
	DoNotDisturb bool `bson:"doNotDisturb" json:"doNotDisturb"`
	NewFeed      bool `bson:"newFeed" json:"newFeed"`
	NewActivity  bool `bson:"newActivity" json:"newActivity"`
	Invites      bool `bson:"invites" json:"invites"`
}

// DefaultNotificationPreferences is what a user who never touched their
// settings gets back.
func DefaultNotificationPreferences() NotificationPreferences {
	return NotificationPreferences{
		DoNotDisturb: false,
		NewFeed:      true,
		NewActivity:  true,
		Invites:      true,
	}
}

// UserUpdate carries the profile fields a client may change through the
// update endpoints. Email is deliberately absent: decoding a request body
// into this struct drops it, so email can never change through here.
type UserUpdate struct {
	FirstName   *string    `json:"firstName,omitempty"`
	LastName    *string    `json:"lastName,omitempty"`
	Phone       *string    `json:"phone,omitempty"`
	ImageURL    *string    `json:"imageUrl,omitempty"`
	DateOfBirth *time.Time `json:"dateOfBirth,omitempty"`
	Gender      *string    `json:"gender,omitempty"`
	Weight      *float64   `json:"weight,omitempty"`
	Height      *float64   `json:"height,omitempty"`
}
