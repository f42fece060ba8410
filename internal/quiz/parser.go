package quiz

import (
	"encoding/json"
	"fmt"
	"strings"
)

// GeneratedBatch is the JSON shape the model is asked to produce.
type GeneratedBatch struct {
	Questions []GeneratedQuestion `json:"questions"`
}

type GeneratedQuestion struct {
	Prompt        string   `json:"prompt"`
	Choices       []string `json:"choices"`
	CorrectChoice string   `json:"correct_choice"`
	Explanation   string   `json:"explanation"`
}

type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Errors, "; "))
}

// ParseResponse decodes a model response into a validated question batch.
// Models often wrap JSON in markdown code fences despite instructions not
// to, so fences are stripped first.
func ParseResponse(responseBody string) (*GeneratedBatch, error) {
	cleaned := stripCodeFences(responseBody)

	var batch GeneratedBatch
	if err := json.Unmarshal([]byte(cleaned), &batch); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	if err := validateBatch(&batch); err != nil {
		return nil, err
	}

	return &batch, nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimSpace(s)
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSpace(s)
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSuffix(s, "```")
		s = strings.TrimSpace(s)
	}
	return s
}

var validChoiceIDs = map[string]bool{"A": true, "B": true, "C": true, "D": true}

func validateBatch(batch *GeneratedBatch) error {
	var errs []string

	if len(batch.Questions) == 0 {
		return &ValidationError{Errors: []string{"no questions in batch"}}
	}

	for i, q := range batch.Questions {
		if strings.TrimSpace(q.Prompt) == "" {
			errs = append(errs, fmt.Sprintf("question %d: empty prompt", i))
		}
		if len(q.Choices) != 4 {
			errs = append(errs, fmt.Sprintf("question %d: %d choices, want 4", i, len(q.Choices)))
		}
		for j, choice := range q.Choices {
			if strings.TrimSpace(choice) == "" {
				errs = append(errs, fmt.Sprintf("question %d: empty choice %d", i, j))
			}
		}
		if !validChoiceIDs[q.CorrectChoice] {
			errs = append(errs, fmt.Sprintf("question %d: invalid correct choice %q", i, q.CorrectChoice))
		}
		if strings.TrimSpace(q.Explanation) == "" {
			errs = append(errs, fmt.Sprintf("question %d: empty explanation", i))
		}
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}
