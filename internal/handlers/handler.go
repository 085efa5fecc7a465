package handlers

import (
	"github.com/carecircleapp/carecircle-api/internal/services"
	"github.com/carecircleapp/carecircle-api/internal/store"
)

// Handler bundles the stores and services the request handlers need.
// Stores are interfaces so tests can swap in fakes.
type Handler struct {
	Users           store.UserStore
	Groups          store.GroupStore
	Tasks           store.TaskStore
	Notifications   store.NotificationStore
	NotificationSvc *services.NotificationService
}

func NewHandler(users store.UserStore, groups store.GroupStore, tasks store.TaskStore, notifications store.NotificationStore, notificationSvc *services.NotificationService) *Handler {
	return &Handler{
		Users:           users,
		Groups:          groups,
		Tasks:           tasks,
		Notifications:   notifications,
		NotificationSvc: notificationSvc,
	}
}
