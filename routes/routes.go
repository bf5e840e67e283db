package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"p9e.in/obstacle/handlers"
	"p9e.in/obstacle/middleware"
	"p9e.in/obstacle/utils"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes() http.Handler {
	r := mux.NewRouter()

	// =====================================================
	// Public Routes (no authentication)
	// =====================================================
	r.HandleFunc("/register", handlers.Register).Methods("POST")
	r.HandleFunc("/login", handlers.Login).Methods("POST")
	r.HandleFunc("/token", handlers.GetCurrentUser).Methods("GET")
	r.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(handlers.UploadDir()))),
	)

	// =====================================================
	// Protected API Routes (require JWT authentication)
	// =====================================================
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.JWTMiddleware)
	api.Use(middleware.RequestLog)

	// Obstacle reports
	api.Handle("/obstacles",
		middleware.RequireAction(utils.ActionView, handlers.ListObstacles)).Methods("GET")
	api.Handle("/obstacles",
		middleware.RequireAction(utils.ActionSubmit, handlers.CreateObstacle)).Methods("POST")
	api.Handle("/obstacles/export/excel",
		middleware.RequireAction(utils.ActionExport, handlers.ExportObstaclesExcel)).Methods("GET")
	api.Handle("/obstacles/export/csv",
		middleware.RequireAction(utils.ActionExport, handlers.ExportObstaclesCSV)).Methods("GET")
	api.Handle("/obstacles/{id:[0-9]+}",
		middleware.RequireAction(utils.ActionView, handlers.GetObstacle)).Methods("GET")
	api.Handle("/obstacles/{id:[0-9]+}",
		middleware.RequireAction(utils.ActionEdit, handlers.UpdateObstacle)).Methods("PUT")
	api.Handle("/obstacles/{id:[0-9]+}",
		middleware.RequireAction(utils.ActionDelete, handlers.DeleteObstacle)).Methods("DELETE")
	api.Handle("/obstacles/{id:[0-9]+}/approve",
		middleware.RequireAction(utils.ActionReview, handlers.ApproveObstacle)).Methods("POST")
	api.Handle("/obstacles/{id:[0-9]+}/decline",
		middleware.RequireAction(utils.ActionReview, handlers.DeclineObstacle)).Methods("POST")

	// Static type lookup
	api.Handle("/obstacle-types",
		middleware.RequireAction(utils.ActionView, handlers.ListObstacleTypes)).Methods("GET")

	// Map / pilot API
	api.Handle("/map/obstacles",
		middleware.RequireAction(utils.ActionView, handlers.MapObstacles)).Methods("GET")
	api.Handle("/map/obstacles/approved",
		middleware.RequireAction(utils.ActionView, handlers.ApprovedObstacles)).Methods("GET")
	api.Handle("/map/obstacles.geojson",
		middleware.RequireAction(utils.ActionView, handlers.MapObstaclesGeoJSON)).Methods("GET")

	// Photo uploads
	api.Handle("/upload",
		middleware.RequireAction(utils.ActionSubmit, handlers.UploadPhotoHandler)).Methods("POST")

	// =====================================================
	// Admin Routes (user management)
	// =====================================================
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireActionMW(utils.ActionManageUsers))
	admin.HandleFunc("/users", handlers.ListUsers).Methods("GET")
	admin.HandleFunc("/users/{id}", handlers.UpdateUser).Methods("PUT")
	admin.HandleFunc("/users/{id}", handlers.DeleteUser).Methods("DELETE")

	return r
}
