package models

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestIsValidRole(t *testing.T) {
	for _, role := range []string{RoleAdmin, RoleCaregiver, RoleCarereceiver} {
		if !IsValidRole(role) {
			t.Errorf("IsValidRole(%q) = false, want true", role)
		}
	}
	for _, role := range []string{"", "owner", "Admin", "ADMIN"} {
		if IsValidRole(role) {
			t.Errorf("IsValidRole(%q) = true, want false", role)
		}
	}
}

func TestGroupFindMember(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()
	g := Group{Members: []GroupMember{
		{UserID: a, Role: RoleAdmin},
		{UserID: b, Role: RoleCaregiver, FamilialRelation: "daughter"},
	}}

	if m := g.FindMember(b); m == nil || m.FamilialRelation != "daughter" {
		t.Fatalf("FindMember(b) = %+v, want daughter entry", m)
	}
	if m := g.FindMember(primitive.NewObjectID()); m != nil {
		t.Fatalf("FindMember(unknown) = %+v, want nil", m)
	}

	// FindMember returns a pointer into the slice, so role edits stick.
	g.FindMember(b).Role = RoleCarereceiver
	if g.Members[1].Role != RoleCarereceiver {
		t.Fatalf("role edit through FindMember did not persist: %+v", g.Members[1])
	}
}

func TestGroupHasAdmin(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()
	g := Group{Members: []GroupMember{
		{UserID: a, Role: RoleAdmin},
		{UserID: b, Role: RoleCaregiver},
	}}

	if !g.HasAdmin(a) {
		t.Error("HasAdmin(admin) = false, want true")
	}
	if g.HasAdmin(b) {
		t.Error("HasAdmin(caregiver) = true, want false")
	}
	if g.HasAdmin(primitive.NewObjectID()) {
		t.Error("HasAdmin(non-member) = true, want false")
	}
}
