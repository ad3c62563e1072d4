package pairing

import (
	"github.com/gorilla/mux"
	"github.com/lumore-app/lumore-backend/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1/pairing").Subrouter()
	api.Use(authMiddleware.Authenticate)

	api.HandleFunc("/feed", handler.GetFeed).Methods("GET")
	api.HandleFunc("/limits", handler.GetLimits).Methods("GET")
}
