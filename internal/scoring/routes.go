package scoring

import (
	"github.com/gorilla/mux"
	"github.com/lumore-app/lumore-backend/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1/scoring").Subrouter()
	api.Use(authMiddleware.Authenticate)

	// Compatibility
	api.HandleFunc("/compatibility", handler.ComputeCompatibility).Methods("POST")
	api.HandleFunc("/compatibility/{userId}", handler.GetCompatibility).Methods("GET")

	// QCS
	api.HandleFunc("/qcs/sync", handler.SyncQCS).Methods("POST")
	api.HandleFunc("/qcs/resync/{userId}", handler.ResyncUserQCS).Methods("POST")
	api.HandleFunc("/qcs/{userId}", handler.GetQCS).Methods("GET")
}
