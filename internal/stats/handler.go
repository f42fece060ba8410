package stats

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/noor-app/backend/internal/middleware"
	"github.com/noor-app/backend/internal/models"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GetStats handles GET /stats.
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	response, err := h.service.Aggregate(userID)
	if err != nil {
		log.Printf("[stats] aggregate failed for user %d: %v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load statistics"})
		return
	}

	writeJSON(w, http.StatusOK, response)
}

// RecordSession handles POST /study/sessions.
func (h *Handler) RecordSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	var req models.RecordSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	session, err := h.service.RecordSession(userID, req)
	if err != nil {
		if errors.Is(err, ErrInvalid) {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
			return
		}
		log.Printf("[stats] record session failed for user %d: %v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to record session"})
		return
	}

	writeJSON(w, http.StatusCreated, session)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
