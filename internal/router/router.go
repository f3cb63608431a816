package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/swolemates/backend/api/handler"
	"github.com/swolemates/backend/internal/metrics"
)

type Handlers struct {
	Auth          *apiHandler.AuthHandler
	Profile       *apiHandler.ProfileHandler
	Match         *apiHandler.MatchHandler
	Chat          *apiHandler.ChatHandler
	Workout       *apiHandler.WorkoutHandler
	Gym           *apiHandler.GymHandler
	Notification  *apiHandler.NotificationHandler
	Health        *apiHandler.HealthHandler
	EnableMetrics bool
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Liveness)
	r.GET("/ready", handlers.Health.Readiness)
	if handlers.EnableMetrics {
		r.GET("/metrics", metrics.Handler())
	}

	// Auth routes
	r.POST("/api/v1/auth/login", handlers.Auth.Login)
	r.POST("/api/v1/auth/refresh", handlers.Auth.Refresh)
	r.POST("/api/v1/auth/logout", handlers.Auth.Logout)

	// Protected routes
	r.GET("/api/v1/profile", authMiddleware(handlers.Profile.GetProfile))
	r.PUT("/api/v1/profile", authMiddleware(handlers.Profile.UpdateProfile))

	r.GET("/api/v1/candidates", authMiddleware(handlers.Match.GetCandidates))
	r.POST("/api/v1/swipe", authMiddleware(handlers.Match.Swipe))
	r.GET("/api/v1/matches", authMiddleware(handlers.Match.GetMatches))

	r.GET("/api/v1/messages/{user_id}", authMiddleware(handlers.Chat.GetConversation))
	r.POST("/api/v1/messages", authMiddleware(handlers.Chat.SendMessage))
	r.PUT("/api/v1/messages/{user_id}/read", authMiddleware(handlers.Chat.MarkRead))

	r.GET("/api/v1/workouts", authMiddleware(handlers.Workout.ListWorkouts))
	r.POST("/api/v1/workouts", authMiddleware(handlers.Workout.LogWorkout))
	r.GET("/api/v1/workouts/scheduled", authMiddleware(handlers.Workout.ListScheduled))
	r.POST("/api/v1/workouts/schedule", authMiddleware(handlers.Workout.ScheduleWorkout))

	r.GET("/api/v1/gyms/nearby", authMiddleware(handlers.Gym.GetNearby))
	r.GET("/api/v1/gyms/{id}", authMiddleware(handlers.Gym.GetGym))

	r.GET("/api/v1/notifications", authMiddleware(handlers.Notification.GetNotifications))
	r.PUT("/api/v1/notifications/{id}/read", authMiddleware(handlers.Notification.MarkRead))

	return r
}
