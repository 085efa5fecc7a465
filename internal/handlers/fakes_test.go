package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/carecircleapp/carecircle-api/internal/handlers"
	"github.com/carecircleapp/carecircle-api/internal/models"
	"github.com/carecircleapp/carecircle-api/internal/services"
	"github.com/carecircleapp/carecircle-api/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// --- In-memory store fakes ---

type fakeUserStore struct {
	users map[primitive.ObjectID]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[primitive.ObjectID]*models.User)}
}

func (s *fakeUserStore) GetByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (s *fakeUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *fakeUserStore) GetByClerkID(_ context.Context, clerkID string) (*models.User, error) {
	for _, u := range s.users {
		if u.ClerkID == clerkID {
			copied := *u
			return &copied, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *fakeUserStore) GetManyByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	out := make([]models.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (s *fakeUserStore) Create(_ context.Context, u models.User) (models.User, error) {
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return models.User{}, store.ErrDuplicateEmail
		}
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	copied := u
	s.users[u.ID] = &copied
	return u, nil
}

func (s *fakeUserStore) Update(_ context.Context, id primitive.ObjectID, upd models.UserUpdate) (*models.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	if upd.FirstName != nil {
		u.FirstName = *upd.FirstName
	}
	if upd.LastName != nil {
		u.LastName = *upd.LastName
	}
	if upd.Phone != nil {
		u.Phone = *upd.Phone
	}
	if upd.ImageURL != nil {
		u.ImageURL = *upd.ImageURL
	}
	if upd.DateOfBirth != nil {
		dob := *upd.DateOfBirth
		u.DateOfBirth = &dob
	}
	if upd.Gender != nil {
		u.Gender = *upd.Gender
	}
	if upd.Weight != nil {
		u.Weight = *upd.Weight
	}
	if upd.Height != nil {
		u.Height = *upd.Height
	}
	copied := *u
	return &copied, nil
}

func (s *fakeUserStore) SetNotificationPreferences(_ context.Context, id primitive.ObjectID, prefs models.NotificationPreferences) (*models.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	u.NotificationPrefs = &prefs
	copied := *u
	return &copied, nil
}

func (s *fakeUserStore) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := s.users[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.users, id)
	return nil
}

type fakeGroupStore struct {
	groups map[primitive.ObjectID]*models.Group
}

func newFakeGroupStore() *fakeGroupStore {
	return &fakeGroupStore{groups: make(map[primitive.ObjectID]*models.Group)}
}

func (s *fakeGroupStore) GetByID(_ context.Context, id primitive.ObjectID) (*models.Group, error) {
	g, ok := s.groups[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *g
	copied.Members = append([]models.GroupMember(nil), g.Members...)
	return &copied, nil
}

func (s *fakeGroupStore) GetManyByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Group, error) {
	out := make([]models.Group, 0, len(ids))
	for _, id := range ids {
		if g, ok := s.groups[id]; ok {
			out = append(out, *g)
		}
	}
	return out, nil
}

func (s *fakeGroupStore) Save(_ context.Context, g *models.Group) error {
	if _, ok := s.groups[g.ID]; !ok {
		return store.ErrNotFound
	}
	copied := *g
	copied.Members = append([]models.GroupMember(nil), g.Members...)
	s.groups[g.ID] = &copied
	return nil
}

type fakeTaskStore struct {
	tasks []models.Task
}

func (s *fakeTaskStore) ListByAssignee(_ context.Context, userID primitive.ObjectID) ([]models.Task, error) {
	out := make([]models.Task, 0)
	for _, t := range s.tasks {
		if t.AssignedTo == userID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Deadline.Before(out[j].Deadline) })
	return out, nil
}

type fakeNotificationStore struct {
	notifications []models.Notification
}

func (s *fakeNotificationStore) ListByUser(_ context.Context, userID primitive.ObjectID) ([]models.Notification, error) {
	out := make([]models.Notification, 0)
	for _, n := range s.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// --- Test environment ---

type testEnv struct {
	handler       *handlers.Handler
	router        *gin.Engine
	users         *fakeUserStore
	groups        *fakeGroupStore
	tasks         *fakeTaskStore
	notifications *fakeNotificationStore
}

// newTestEnv wires a handler against in-memory stores and registers the
// same route table as cmd/api, minus the auth middleware.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	users := newFakeUserStore()
	groups := newFakeGroupStore()
	tasks := &fakeTaskStore{}
	notifications := &fakeNotificationStore{}
	h := handlers.NewHandler(users, groups, tasks, notifications, services.NewNotificationService())

	r := gin.New()
	r.POST("/auth/register", h.RegisterUser)
	r.POST("/auth/login", h.Login)
	r.GET("/api/user/:id", h.GetUser)
	r.PUT("/api/user/:id", h.UpdateUser)
	r.DELETE("/api/user/:id", h.DeleteUser)
	r.GET("/api/user/:id/info", h.GetUserInfo)
	r.POST("/api/user/:id/onboarding", h.ProvideAdditionalUserInfo)
	r.GET("/api/clerk/:clerkId", h.GetUserIDByClerkID)
	r.GET("/api/user/:id/tasks", h.GetUserTasks)
	r.GET("/api/user/:id/notifications", h.GetUserNotifications)
	r.GET("/api/user/:id/group", h.GetUserGroup)
	r.GET("/api/user/:id/groups", h.GetAllUserGroups)
	r.GET("/api/user/:id/group-ids", h.GetAllGroups)
	r.GET("/api/user/:id/family-members", h.GetFamilyMembers)
	r.GET("/api/user/:id/family-role", h.GetCurrentUserFamilyRole)
	r.GET("/api/user/:id/admin-status/:groupId", h.CheckUserAdminStatus)
	r.PUT("/api/user/:id/role/:targetUserId", h.UpdateUserRole)
	r.GET("/api/user/:id/notification-preferences", h.GetNotificationPreferences)
	r.PUT("/api/user/:id/notification-preferences", h.UpdateNotificationPreferences)

	return &testEnv{
		handler:       h,
		router:        r,
		users:         users,
		groups:        groups,
		tasks:         tasks,
		notifications: notifications,
	}
}

func (e *testEnv) addUser(t *testing.T, u models.User) models.User {
	t.Helper()
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	copied := u
	e.users.users[u.ID] = &copied
	return u
}

func (e *testEnv) addGroup(t *testing.T, g models.Group) models.Group {
	t.Helper()
	if g.ID.IsZero() {
		g.ID = primitive.NewObjectID()
	}
	copied := g
	copied.Members = append([]models.GroupMember(nil), g.Members...)
	e.groups.groups[g.ID] = &copied
	return g
}

func (e *testEnv) request(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeMap(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return out
}

func decodeList(t *testing.T, rec *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var out []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return out
}
