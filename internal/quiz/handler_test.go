package quiz

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGenerateRejectsBadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `not json`},
		{"unknown category", `{"category": "astrology", "count": 5}`},
		{"count too large", `{"category": "quran", "count": 100}`},
		{"negative count", `{"category": "quran", "count": -1}`},
	}

	// Validation runs before any dependency is touched, so a zero handler
	// is enough to exercise the 400 paths.
	h := &Handler{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/quiz/generate", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.Generate(rec, req)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestGetQuizRejectsBadCount(t *testing.T) {
	h := &Handler{}
	for _, raw := range []string{"0", "-3", "51", "ten"} {
		req := httptest.NewRequest(http.MethodGet, "/quiz?category=quran&count="+raw, nil)
		rec := httptest.NewRecorder()
		h.GetQuiz(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("count=%s: status = %d, want %d", raw, rec.Code, http.StatusBadRequest)
		}
	}
}
