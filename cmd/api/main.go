package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/carecircleapp/carecircle-api/internal/handlers"
	"github.com/carecircleapp/carecircle-api/internal/middleware"
	"github.com/carecircleapp/carecircle-api/internal/services"
	"github.com/carecircleapp/carecircle-api/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables.")
	}
	log.Printf("MONGO_URI: %s", os.Getenv("MONGO_URI"))
	log.Printf("MONGO_DATABASE: %s", os.Getenv("MONGO_DATABASE"))
	log.Printf("API_PORT: %s", os.Getenv("API_PORT"))
	if os.Getenv("JWT_SECRET") != "" {
		log.Println("JWT_SECRET is SET.")
	} else {
		log.Println("JWT_SECRET is NOT SET.")
	}

	// --- Database Connection ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(os.Getenv("MONGO_URI")))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)
	db := client.Database(os.Getenv("MONGO_DATABASE"))
	log.Println("Successfully connected to MongoDB!")

	// --- Stores & Services ---
	users := store.NewMongoUserStore(db)
	groups := store.NewMongoGroupStore(db)
	tasks := store.NewMongoTaskStore(db)
	notifications := store.NewMongoNotificationStore(db)
	notificationSvc := services.NewNotificationService()

	h := handlers.NewHandler(users, groups, tasks, notifications, notificationSvc)

	// --- Gin Router ---
	r := gin.Default()

	corsOrigin := os.Getenv("CORS_ORIGIN")
	if corsOrigin == "" {
		corsOrigin = "https://carecircle-app.netlify.app"
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{corsOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	// --- Routes ---
	authRoutes := r.Group("/auth")
	{
		authRoutes.POST("/register", h.RegisterUser)
		authRoutes.POST("/login", h.Login)
	}

	apiRoutes := r.Group("/api")
	apiRoutes.Use(middleware.AuthMiddleware()) // Protect all /api routes
	{
		// User profile
		apiRoutes.GET("/user/:id", h.GetUser)
		apiRoutes.PUT("/user/:id", h.UpdateUser)
		apiRoutes.DELETE("/user/:id", h.DeleteUser)
		apiRoutes.GET("/user/:id/info", h.GetUserInfo)
		apiRoutes.POST("/user/:id/onboarding", h.ProvideAdditionalUserInfo)
		apiRoutes.GET("/clerk/:clerkId", h.GetUserIDByClerkID)

		// Tasks & notifications
		apiRoutes.GET("/user/:id/tasks", h.GetUserTasks)
		apiRoutes.GET("/user/:id/notifications", h.GetUserNotifications)

		// Groups & family
		apiRoutes.GET("/user/:id/group", h.GetUserGroup)
		apiRoutes.GET("/user/:id/groups", h.GetAllUserGroups)
		apiRoutes.GET("/user/:id/group-ids", h.GetAllGroups)
		apiRoutes.GET("/user/:id/family-members", h.GetFamilyMembers)
		apiRoutes.GET("/user/:id/family-role", h.GetCurrentUserFamilyRole)
		apiRoutes.GET("/user/:id/admin-status/:groupId", h.CheckUserAdminStatus)
		apiRoutes.PUT("/user/:id/role/:targetUserId", h.UpdateUserRole)

		// Notification preferences
		apiRoutes.GET("/user/:id/notification-preferences", h.GetNotificationPreferences)
		apiRoutes.PUT("/user/:id/notification-preferences", h.UpdateNotificationPreferences)
	}

	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080" // Default port
	}
	log.Printf("Starting server on port %s", port)
	r.Run(":" + port)
}
