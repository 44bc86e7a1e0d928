// Package api assembles the HTTP surface: routing, middleware and the
// transport handlers under api/http.
package api

import (
	"github.com/gorilla/mux"

	httpHandlers "github.com/piyushKumar-1/betterbe/internal/api/http"
	"github.com/piyushKumar-1/betterbe/internal/api/recovery"
	"github.com/piyushKumar-1/betterbe/internal/auth"
	"github.com/piyushKumar-1/betterbe/internal/health"
	"github.com/piyushKumar-1/betterbe/internal/services"
	"github.com/piyushKumar-1/betterbe/internal/store"
)

// NewRouter creates the HTTP router with all API routes.
// Health endpoints are unauthenticated; everything under /api requires a
// bearer token resolved by the given authorizer.
func NewRouter(st store.Store, authorizer auth.Authorizer, pinger health.HealthPinger) *mux.Router {
	router := mux.NewRouter()

	// Global middlewares
	router.Use(recovery.Middleware)

	// Create domain services
	syncService := services.NewSyncService(st)
	habitService := services.NewHabitService(st)
	checkInService := services.NewCheckInService(st)
	goalService := services.NewGoalService(st)
	userService := services.NewUserService(st)

	// Create handlers
	healthHandler := httpHandlers.NewHealthHandler(pinger)
	syncHandler := httpHandlers.NewSyncHandler(syncService)
	habitHandler := httpHandlers.NewHabitHandler(habitService)
	checkInHandler := httpHandlers.NewCheckInHandler(checkInService)
	goalHandler := httpHandlers.NewGoalHandler(goalService)
	userHandler := httpHandlers.NewUserHandler(userService)

	// Health endpoints
	router.HandleFunc("/health", healthHandler.CheckHealth).Methods("GET")
	router.HandleFunc("/health/db", healthHandler.CheckStorageHealth).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()
	api.Use(auth.Middleware(authorizer))

	// Profile endpoints
	api.HandleFunc("/users/me", userHandler.Me).Methods("GET")
	api.HandleFunc("/users/me", userHandler.UpdateMe).Methods("PUT")

	// Habit endpoints
	api.HandleFunc("/habits", habitHandler.Create).Methods("POST")
	api.HandleFunc("/habits", habitHandler.List).Methods("GET")
	api.HandleFunc("/habits/{habitId}", habitHandler.Get).Methods("GET")
	api.HandleFunc("/habits/{habitId}", habitHandler.Update).Methods("PUT")
	api.HandleFunc("/habits/{habitId}", habitHandler.Delete).Methods("DELETE")
	api.HandleFunc("/habits/{habitId}/archive", habitHandler.Archive).Methods("POST")

	// Check-in endpoints
	api.HandleFunc("/checkins", checkInHandler.Upsert).Methods("POST")
	api.HandleFunc("/checkins", checkInHandler.List).Methods("GET")
	api.HandleFunc("/checkins/date/{date}", checkInHandler.ListForDate).Methods("GET")
	api.HandleFunc("/checkins/{checkInId}", checkInHandler.Update).Methods("PUT")
	api.HandleFunc("/checkins/{checkInId}", checkInHandler.Delete).Methods("DELETE")

	// Goal endpoints
	api.HandleFunc("/goals", goalHandler.Create).Methods("POST")
	api.HandleFunc("/goals", goalHandler.List).Methods("GET")
	api.HandleFunc("/goals/{goalId}", goalHandler.Get).Methods("GET")
	api.HandleFunc("/goals/{goalId}", goalHandler.Update).Methods("PUT")
	api.HandleFunc("/goals/{goalId}", goalHandler.Delete).Methods("DELETE")
	api.HandleFunc("/goals/{goalId}/habits", goalHandler.ListHabits).Methods("GET")
	api.HandleFunc("/goals/{goalId}/habits", goalHandler.LinkHabit).Methods("POST")
	api.HandleFunc("/goals/{goalId}/habits/{habitId}", goalHandler.UnlinkHabit).Methods("DELETE")

	// Sync endpoints
	api.HandleFunc("/sync/push", syncHandler.Push).Methods("POST")
	api.HandleFunc("/sync/pull", syncHandler.Pull).Methods("GET")
	api.HandleFunc("/sync/status", syncHandler.Status).Methods("GET")
	api.HandleFunc("/sync/enable", syncHandler.Enable).Methods("POST")
	api.HandleFunc("/sync/disable", syncHandler.Disable).Methods("POST")

	return router
}
