package pairing

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/lumore-app/lumore-backend/internal/auth"
	"github.com/lumore-app/lumore-backend/internal/common/utils"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// GetFeed handles GET /feed?page=&limit=
func (h *Handler) GetFeed(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	page := 1
	if p := r.URL.Query().Get("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			page = v
		}
	}

	limit := 0
	if l := r.URL.Query().Get("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil {
			limit = v
		}
	}

	feed, err := h.service.GetFeed(r.Context(), userID, page, limit)
	if err != nil {
		switch {
		case errors.Is(err, ErrDailyLimitReached):
			utils.RespondWithError(w, http.StatusTooManyRequests, err.Error())
		case errors.Is(err, ErrUsagePersistFailed):
			utils.RespondWithError(w, http.StatusInternalServerError, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to build pairing feed")
		}
		return
	}

	utils.RespondWithData(w, http.StatusOK, feed)
}

// GetLimits handles GET /limits
func (h *Handler) GetLimits(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	limits, err := h.service.GetLimits(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to get usage limits")
		return
	}

	utils.RespondWithData(w, http.StatusOK, limits)
}
