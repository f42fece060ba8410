package models

import "time"

type QuizQuestion struct {
	ID            int64     `json:"id"`
	Category      string    `json:"category"`
	Difficulty    string    `json:"difficulty"`
	Prompt        string    `json:"prompt"`
	Choices       []string  `json:"choices"`
	CorrectChoice string    `json:"correct_choice,omitempty"`
	Explanation   string    `json:"explanation,omitempty"`
	ModelUsed     string    `json:"-"`
	TimesServed   int       `json:"-"`
	CreatedAt     time.Time `json:"created_at"`
}

// Quiz categories.
const (
	CategoryQuran  = "quran"
	CategoryHadith = "hadith"
	CategoryFiqh   = "fiqh"
	CategorySeerah = "seerah"
)

type QuizResult struct {
	ID      int64     `json:"id"`
	UserID  int64     `json:"user_id"`
	Score   int       `json:"score"`
	Total   int       `json:"total"`
	TakenAt time.Time `json:"taken_at"`
}

type GenerateQuizRequest struct {
	Category   string `json:"category"`
	Difficulty string `json:"difficulty"`
	Count      int    `json:"count"`
}

type GenerateQuizResponse struct {
	Generated int    `json:"generated"`
	ModelUsed string `json:"model_used"`
}

type SubmitQuizRequest struct {
	Score int `json:"score"`
	Total int `json:"total"`
}

type SubmitQuizResponse struct {
	TotalQuizzes int     `json:"total_quizzes"`
	TotalPoints  int     `json:"total_points"`
	AverageScore float64 `json:"average_score"`
}

type QuizResponse struct {
	Questions []QuizQuestion `json:"questions"`
}
