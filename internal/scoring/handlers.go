package scoring

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/lumore-app/lumore-backend/internal/auth"
	"github.com/lumore-app/lumore-backend/internal/common/utils"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// ComputeCompatibility handles POST /compatibility
func (h *Handler) ComputeCompatibility(w http.ResponseWriter, r *http.Request) {
	var dto CompatibilityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := utils.ValidateStruct(dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	response, err := h.service.ComputeCompatibility(r.Context(), dto.User1ID, dto.User2ID)
	if err != nil {
		respondScoringError(w, err)
		return
	}

	utils.RespondWithData(w, http.StatusOK, response)
}

// GetCompatibility handles GET /compatibility/{userId}: the caller against
// the target user.
func (h *Handler) GetCompatibility(w http.ResponseWriter, r *http.Request) {
	callerID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	targetID := mux.Vars(r)["userId"]
	if targetID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing user ID")
		return
	}

	response, err := h.service.ComputeCompatibility(r.Context(), callerID, targetID)
	if err != nil {
		respondScoringError(w, err)
		return
	}

	utils.RespondWithData(w, http.StatusOK, response)
}

// SyncQCS handles POST /qcs/sync with {action: "sync_all"}
func (h *Handler) SyncQCS(w http.ResponseWriter, r *http.Request) {
	var dto QCSSyncRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := utils.ValidateStruct(dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	report, err := h.service.SyncAllQCS(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to sync QCS scores")
		return
	}

	utils.RespondWithData(w, http.StatusOK, report)
}

// ResyncUserQCS handles POST /qcs/resync/{userId}
func (h *Handler) ResyncUserQCS(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	if userID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing user ID")
		return
	}

	detail, err := h.service.SyncUserQCS(r.Context(), userID)
	if err != nil {
		respondScoringError(w, err)
		return
	}

	utils.RespondWithData(w, http.StatusOK, detail)
}

// GetQCS handles GET /qcs/{userId}
func (h *Handler) GetQCS(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	if userID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing user ID")
		return
	}

	record, err := h.service.GetQCS(r.Context(), userID)
	if err != nil {
		respondScoringError(w, err)
		return
	}

	utils.RespondWithData(w, http.StatusOK, record)
}

func respondScoringError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidUserPair):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrProfileNotFound), errors.Is(err, ErrQCSNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Scoring failed")
	}
}
