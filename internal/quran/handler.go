package quran

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/noor-app/backend/internal/middleware"
	"github.com/noor-app/backend/internal/models"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ListVerses handles GET /quran/verses?surah=.
func (h *Handler) ListVerses(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	surah, err := strconv.Atoi(r.URL.Query().Get("surah"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "surah query parameter is required"})
		return
	}

	verses, err := h.service.ListBySurah(userID, surah)
	if err != nil {
		if errors.Is(err, ErrInvalid) {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
			return
		}
		log.Printf("[quran] list verses failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load verses"})
		return
	}

	writeJSON(w, http.StatusOK, models.VerseListResponse{Verses: verses})
}

// MarkRead handles POST /quran/verses/{surah}/{verse}/read.
func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(userID int64, surah, verse int) (*models.VerseState, error) {
		var req models.MarkReadRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			req.ElapsedSeconds = 0
		}
		return h.service.MarkRead(userID, surah, verse, req.ElapsedSeconds)
	})
}

// MarkMemorized handles POST /quran/verses/{surah}/{verse}/memorize.
func (h *Handler) MarkMemorized(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(userID int64, surah, verse int) (*models.VerseState, error) {
		var req models.MarkMemorizedRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			req.ElapsedSeconds = 0
		}
		return h.service.MarkMemorized(userID, surah, verse, req.ElapsedSeconds)
	})
}

// ToggleFavorite handles POST /quran/verses/{surah}/{verse}/favorite.
func (h *Handler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(userID int64, surah, verse int) (*models.VerseState, error) {
		return h.service.ToggleFavorite(userID, surah, verse)
	})
}

// ResetMemorization handles POST /quran/verses/{surah}/{verse}/reset-memorization.
func (h *Handler) ResetMemorization(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(userID int64, surah, verse int) (*models.VerseState, error) {
		return h.service.ResetMemorization(userID, surah, verse)
	})
}

// AddPronunciation handles POST /quran/verses/{surah}/{verse}/pronunciation.
func (h *Handler) AddPronunciation(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(userID int64, surah, verse int) (*models.VerseState, error) {
		var req models.MarkReadRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			req.ElapsedSeconds = 0
		}
		return h.service.AddPronunciationTime(userID, surah, verse, req.ElapsedSeconds)
	})
}

// mutate factors out the shared path-var parsing and error mapping of the
// verse mutation endpoints.
func (h *Handler) mutate(w http.ResponseWriter, r *http.Request, fn func(userID int64, surah, verse int) (*models.VerseState, error)) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	vars := mux.Vars(r)
	surah, err := strconv.Atoi(vars["surah"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "surah must be a number"})
		return
	}
	verse, err := strconv.Atoi(vars["verse"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "verse must be a number"})
		return
	}

	state, err := fn(userID, surah, verse)
	if err != nil {
		if errors.Is(err, ErrInvalid) {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
			return
		}
		log.Printf("[quran] verse mutation failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to update verse"})
		return
	}

	writeJSON(w, http.StatusOK, state)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
