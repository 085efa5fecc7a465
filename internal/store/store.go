// Package store defines the typed persistence contracts the handlers work
// against, plus their MongoDB implementations. Handlers never touch a
// collection directly; they receive these interfaces so tests can substitute
// in-memory fakes.
package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/carecircleapp/carecircle-api/internal/models"
)

// ErrNotFound is returned when a looked-up document does not exist.
var ErrNotFound = errors.New("document not found")

// ErrDuplicateEmail is returned by UserStore.Create when the email is taken.
var ErrDuplicateEmail = errors.New("an account with this email already exists")

type UserStore interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByClerkID(ctx context.Context, clerkID string) (*models.User, error)
	// GetManyByIDs batch-loads users; missing ids are simply absent from the
	// result, in no guaranteed order.
	GetManyByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error)
	Create(ctx context.Context, u models.User) (models.User, error)
	// Update applies the set fields of upd and returns the updated document.
	Update(ctx context.Context, id primitive.ObjectID, upd models.UserUpdate) (*models.User, error)
	SetNotificationPreferences(ctx context.Context, id primitive.ObjectID, prefs models.NotificationPreferences) (*models.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type GroupStore interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Group, error)
	GetManyByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Group, error)
	// Save replaces the whole group document. Last write wins; role updates
	// racing on the same group are intentionally not serialized here.
	Save(ctx context.Context, g *models.Group) error
}

type TaskStore interface {
	// ListByAssignee returns the user's tasks sorted by ascending deadline.
	ListByAssignee(ctx context.Context, userID primitive.ObjectID) ([]models.Task, error)
}

type NotificationStore interface {
	// ListByUser returns the user's notifications, newest first.
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Notification, error)
}

// notFound maps the driver's no-documents sentinel onto ErrNotFound so
// handlers stay decoupled from the driver.
func notFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}
