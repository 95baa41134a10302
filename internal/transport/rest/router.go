package rest

import (
	"net/http"
	"strings"

	"formforge/internal/service"
	"formforge/internal/transport/rest/handler"
	"formforge/internal/transport/rest/middleware"
	"formforge/internal/transport/ws"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService      *service.AuthService
	FormService      *service.FormService
	ResponseService  *service.ResponseService
	AnalyticsService *service.AnalyticsService
	GeneratorService *service.GeneratorService
	WSHub            *ws.Hub
	CORSOrigins      string
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	formHandler := handler.NewFormHandler(c.FormService)
	responseHandler := handler.NewResponseHandler(c.ResponseService)
	analyticsHandler := handler.NewAnalyticsHandler(c.AnalyticsService)
	aiHandler := handler.NewAIHandler(c.GeneratorService)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService, c.FormService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)
	submitLimiter := middleware.NewRateLimiter(5, 10)

	api := r.PathPrefix("/api").Subrouter()

	// Public routes
	api.HandleFunc("/auth/signup", authHandler.Signup).Methods("POST", "OPTIONS")
	api.HandleFunc("/auth/signin", authHandler.Signin).Methods("POST", "OPTIONS")
	// literal path, must match ahead of GET /forms/{id}
	api.Handle("/forms/bookmarked", authMW.RequireUser(http.HandlerFunc(formHandler.ListBookmarked))).Methods("GET", "OPTIONS")
	api.HandleFunc("/forms/{id}", formHandler.GetPublic).Methods("GET", "OPTIONS")
	api.Handle("/forms/{id}/submit", submitLimiter.Limit(http.HandlerFunc(responseHandler.Submit))).Methods("POST", "OPTIONS")

	// WebSocket live feed (owner token in query param)
	api.HandleFunc("/ws/forms/{id}/live", wsHandler.LiveFeed).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Authenticated routes
	userRoutes := api.NewRoute().Subrouter()
	userRoutes.Use(authMW.RequireUser)

	userRoutes.HandleFunc("/auth/me", authHandler.Me).Methods("GET", "OPTIONS")
	userRoutes.HandleFunc("/forms", formHandler.Create).Methods("POST", "OPTIONS")
	userRoutes.HandleFunc("/forms", formHandler.List).Methods("GET", "OPTIONS")
	userRoutes.HandleFunc("/forms/{id}", formHandler.Update).Methods("PUT", "OPTIONS")
	userRoutes.HandleFunc("/forms/{id}", formHandler.Delete).Methods("DELETE", "OPTIONS")
	userRoutes.HandleFunc("/forms/{id}/responses", responseHandler.List).Methods("GET", "OPTIONS")
	userRoutes.HandleFunc("/forms/{id}/analytics", analyticsHandler.Report).Methods("GET", "OPTIONS")
	userRoutes.HandleFunc("/forms/{id}/bookmark", formHandler.Bookmark).Methods("POST", "OPTIONS")
	userRoutes.Handle("/ai/generate-form", submitLimiter.Limit(http.HandlerFunc(aiHandler.GenerateForm))).Methods("POST", "OPTIONS")

	corsMW := cors.New(cors.Options{
		AllowedOrigins:   splitOrigins(c.CORSOrigins),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	return corsMW.Handler(r)
}

func splitOrigins(origins string) []string {
	if origins == "" || origins == "*" {
		return []string{"*"}
	}
	parts := strings.Split(origins, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
