package quiz

import (
	"context"
	"errors"
	"testing"
)

const validBatchJSON = `{
	"questions": [
		{
			"prompt": "How many surahs are in the Quran?",
			"choices": ["114", "99", "120", "110"],
			"correct_choice": "A",
			"explanation": "The Quran has 114 surahs."
		},
		{
			"prompt": "Which surah is recited in every unit of prayer?",
			"choices": ["Al-Ikhlas", "Al-Fatihah", "An-Nas", "Al-Asr"],
			"correct_choice": "B",
			"explanation": "Al-Fatihah is recited in every rak'ah."
		}
	]
}`

func TestParseResponseValid(t *testing.T) {
	batch, err := ParseResponse(validBatchJSON)
	if err != nil {
		t.Fatalf("ParseResponse returned error: %v", err)
	}
	if len(batch.Questions) != 2 {
		t.Fatalf("got %d questions, want 2", len(batch.Questions))
	}
	if batch.Questions[1].CorrectChoice != "B" {
		t.Errorf("correct choice = %q, want B", batch.Questions[1].CorrectChoice)
	}
}

func TestParseResponseStripsCodeFences(t *testing.T) {
	fenced := "```json\n" + validBatchJSON + "\n```"
	batch, err := ParseResponse(fenced)
	if err != nil {
		t.Fatalf("ParseResponse returned error for fenced input: %v", err)
	}
	if len(batch.Questions) != 2 {
		t.Errorf("got %d questions, want 2", len(batch.Questions))
	}

	bareFence := "```\n" + validBatchJSON + "\n```"
	if _, err := ParseResponse(bareFence); err != nil {
		t.Errorf("ParseResponse returned error for bare fence: %v", err)
	}
}

func TestParseResponseRejectsBadBatches(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not json", "the model apologizes instead of answering"},
		{"empty batch", `{"questions": []}`},
		{"missing prompt", `{"questions": [{"prompt": "", "choices": ["a","b","c","d"], "correct_choice": "A", "explanation": "x"}]}`},
		{"wrong choice count", `{"questions": [{"prompt": "q", "choices": ["a","b","c"], "correct_choice": "A", "explanation": "x"}]}`},
		{"invalid correct choice", `{"questions": [{"prompt": "q", "choices": ["a","b","c","d"], "correct_choice": "E", "explanation": "x"}]}`},
		{"empty explanation", `{"questions": [{"prompt": "q", "choices": ["a","b","c","d"], "correct_choice": "A", "explanation": " "}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseResponse(tt.input); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestParseResponseValidationErrorType(t *testing.T) {
	_, err := ParseResponse(`{"questions": []}`)
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Errorf("expected ValidationError, got %T: %v", err, err)
	}
}

func TestMockClientProducesValidBatch(t *testing.T) {
	client := NewMockClient()
	resp, err := client.Generate(context.Background(), "system", "user")
	if err != nil {
		t.Fatalf("mock generate failed: %v", err)
	}
	batch, err := ParseResponse(resp.Content)
	if err != nil {
		t.Fatalf("mock output failed validation: %v", err)
	}
	if len(batch.Questions) == 0 {
		t.Error("mock produced no questions")
	}
}
