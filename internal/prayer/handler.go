package prayer

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/noor-app/backend/internal/models"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GetTimes handles GET /prayer/times?city=&country=&method=.
func (h *Handler) GetTimes(w http.ResponseWriter, r *http.Request) {
	city := strings.TrimSpace(r.URL.Query().Get("city"))
	country := strings.TrimSpace(r.URL.Query().Get("country"))

	if city == "" || country == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "city and country are required"})
		return
	}

	method := DefaultMethod
	if raw := r.URL.Query().Get("method"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 || parsed > 23 {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "method must be a calculation method id"})
			return
		}
		method = parsed
	}

	result, err := h.service.Times(r.Context(), city, country, method)
	if err != nil {
		if errors.Is(err, ErrLocationNotFound) {
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Unknown city or country"})
			return
		}
		writeJSON(w, http.StatusBadGateway, models.ErrorResponse{Error: "Prayer times are temporarily unavailable"})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
