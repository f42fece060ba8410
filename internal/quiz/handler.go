package quiz

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/noor-app/backend/internal/metrics"
	"github.com/noor-app/backend/internal/middleware"
	"github.com/noor-app/backend/internal/models"
	"github.com/noor-app/backend/internal/stats"
)

// DefaultQuizSize is how many questions a quiz serves when the client does
// not ask for a specific count.
const DefaultQuizSize = 10

// DefaultGenerateCount is the batch size requested from the model when the
// client omits one.
const DefaultGenerateCount = 5

type Handler struct {
	store     *Store
	generator *Generator
	stats     *stats.Service
}

func NewHandler(store *Store, generator *Generator, statsService *stats.Service) *Handler {
	return &Handler{store: store, generator: generator, stats: statsService}
}

// GetQuiz handles GET /quiz?category=&count=.
func (h *Handler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category == "" {
		category = models.CategoryQuran
	}
	if !validCategory(category) {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Unknown quiz category"})
		return
	}

	count := DefaultQuizSize
	if raw := r.URL.Query().Get("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 50 {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "count must be between 1 and 50"})
			return
		}
		count = parsed
	}

	questions, err := h.store.PickQuestions(category, count)
	if err != nil {
		log.Printf("[quiz] pick questions failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load quiz"})
		return
	}
	if len(questions) == 0 {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "No questions available for this category yet"})
		return
	}

	writeJSON(w, http.StatusOK, models.QuizResponse{Questions: questions})
}

// Submit handles POST /quiz/submit.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	var req models.SubmitQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if req.Total < 1 || req.Score < 0 || req.Score > req.Total {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "score must be between 0 and total"})
		return
	}

	if _, err := h.store.InsertResult(userID, req.Score, req.Total); err != nil {
		log.Printf("[quiz] insert result failed for user %d: %v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to record quiz"})
		return
	}
	if err := h.stats.AddQuizResult(userID, req.Score); err != nil {
		log.Printf("[quiz] summary update failed for user %d: %v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to record quiz"})
		return
	}

	summary, err := h.stats.Summary(userID)
	if err != nil {
		log.Printf("[quiz] summary read failed for user %d: %v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to record quiz"})
		return
	}

	writeJSON(w, http.StatusOK, models.SubmitQuizResponse{
		TotalQuizzes: summary.TotalQuizzes,
		TotalPoints:  summary.TotalPoints,
		AverageScore: summary.AverageScore(),
	})
}

// Generate handles POST /quiz/generate.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if !validCategory(req.Category) {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Unknown quiz category"})
		return
	}
	if req.Difficulty == "" {
		req.Difficulty = "medium"
	}
	if req.Count == 0 {
		req.Count = DefaultGenerateCount
	}
	if req.Count < 1 || req.Count > 20 {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "count must be between 1 and 20"})
		return
	}

	batch, err := h.generator.GenerateBatch(r.Context(), req.Category, req.Difficulty, req.Count)
	if err != nil {
		metrics.QuizGenerations.WithLabelValues("error").Inc()
		var validationErr *ValidationError
		if errors.As(err, &validationErr) {
			log.Printf("[quiz] generated batch rejected: %v", err)
			writeJSON(w, http.StatusBadGateway, models.ErrorResponse{Error: "Generated questions failed validation"})
			return
		}
		log.Printf("[quiz] generation failed: %v", err)
		writeJSON(w, http.StatusBadGateway, models.ErrorResponse{Error: "Question generation failed"})
		return
	}

	inserted, err := h.store.InsertBatch(req.Category, req.Difficulty, h.generator.ModelName(), batch)
	if err != nil {
		metrics.QuizGenerations.WithLabelValues("error").Inc()
		log.Printf("[quiz] insert batch failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to store questions"})
		return
	}

	metrics.QuizGenerations.WithLabelValues("ok").Inc()
	writeJSON(w, http.StatusCreated, models.GenerateQuizResponse{
		Generated: inserted,
		ModelUsed: h.generator.ModelName(),
	})
}

func validCategory(category string) bool {
	switch category {
	case models.CategoryQuran, models.CategoryHadith, models.CategoryFiqh, models.CategorySeerah:
		return true
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
