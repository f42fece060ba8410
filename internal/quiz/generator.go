package quiz

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/packages/param"

	"github.com/noor-app/backend/internal/models"
)

// LLMClient is the interface both generator implementations satisfy.
type LLMClient interface {
	Generate(ctx context.Context, systemPrompt string, userPrompt string) (*LLMResponse, error)
}

// LLMResponse holds the raw response content and token usage.
type LLMResponse struct {
	Content      string
	PromptTokens int
	OutputTokens int
}

// Generator wraps an LLMClient and adds quiz-specific batch methods.
type Generator struct {
	llm   LLMClient
	model string
}

func NewGenerator(model string, mock bool) *Generator {
	if mock {
		log.Println("[quiz] generator using mock data")
		return &Generator{llm: NewMockClient(), model: "mock"}
	}
	if model == "" {
		model = "claude-sonnet-4-20250514"
	}
	log.Println("[quiz] generator using Anthropic API:", model)
	return &Generator{llm: NewAPIClient(model), model: model}
}

func (g *Generator) ModelName() string {
	return g.model
}

// GenerateBatch asks the model for a batch of multiple-choice questions in
// the given category and difficulty, then parses and validates the result.
func (g *Generator) GenerateBatch(ctx context.Context, category, difficulty string, count int) (*GeneratedBatch, error) {
	resp, err := g.llm.Generate(ctx, systemPrompt(), buildUserPrompt(category, difficulty, count))
	if err != nil {
		return nil, fmt.Errorf("generate quiz batch: %w", err)
	}

	batch, err := ParseResponse(resp.Content)
	if err != nil {
		return nil, fmt.Errorf("parse quiz response: %w", err)
	}
	return batch, nil
}

func systemPrompt() string {
	return `You are an expert in Islamic studies writing quiz questions for a learning app.
Write clear, factually accurate multiple-choice questions. Avoid sectarian
controversy; stick to widely agreed material. Respond with JSON only, no
markdown fences, matching exactly this shape:
{"questions": [{"prompt": "...", "choices": ["...", "...", "...", "..."], "correct_choice": "A", "explanation": "..."}]}
correct_choice is the letter A, B, C or D of the correct entry in choices.`
}

func buildUserPrompt(category, difficulty string, count int) string {
	topics := map[string]string{
		models.CategoryQuran:  "the Quran: its surahs, themes, revelation, and well-known verses",
		models.CategoryHadith: "well-known authentic hadith collections and their teachings",
		models.CategoryFiqh:   "everyday fiqh: prayer, fasting, zakat, and hajj fundamentals",
		models.CategorySeerah: "the life of the Prophet Muhammad and early Islamic history",
	}
	return fmt.Sprintf("Write %d %s-difficulty questions about %s.", count, difficulty, topics[category])
}

// ── APIClient ──────────────────────────────────────────────

type APIClient struct {
	client *anthropic.Client
	model  string
}

func NewAPIClient(model string) *APIClient {
	client := anthropic.NewClient(
		option.WithAPIKey(os.Getenv("ANTHROPIC_API_KEY")),
	)
	return &APIClient{client: &client, model: model}
}

func (c *APIClient) Generate(ctx context.Context, systemPrompt string, userPrompt string) (*LLMResponse, error) {
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   4096,
		Temperature: param.NewOpt(0.7),
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	}

	message, err := c.callWithRetry(ctx, params)
	if err != nil {
		return nil, err
	}

	var responseText string
	for _, block := range message.Content {
		if block.Type == "text" {
			responseText = block.Text
			break
		}
	}

	if responseText == "" {
		return nil, fmt.Errorf("no text content in API response")
	}

	return &LLMResponse{
		Content:      responseText,
		PromptTokens: int(message.Usage.InputTokens),
		OutputTokens: int(message.Usage.OutputTokens),
	}, nil
}

func (c *APIClient) callWithRetry(ctx context.Context, params anthropic.MessageNewParams) (*anthropic.Message, error) {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			sleepDuration := time.Duration(1<<uint(attempt)) * time.Second
			log.Printf("[quiz] retrying Anthropic API call in %v (attempt %d)", sleepDuration, attempt+1)
			time.Sleep(sleepDuration)
		}

		message, err := c.client.Messages.New(ctx, params)
		if err == nil {
			return message, nil
		}
		lastErr = err
		log.Printf("[quiz] Anthropic API attempt %d failed: %v", attempt+1, err)
	}
	return nil, fmt.Errorf("anthropic API failed after retries: %w", lastErr)
}

// ── MockClient ─────────────────────────────────────────────

type MockClient struct{}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) Generate(ctx context.Context, systemPrompt string, userPrompt string) (*LLMResponse, error) {
	return &LLMResponse{
		Content:      buildMockJSON(),
		PromptTokens: 400,
		OutputTokens: 900,
	}, nil
}

func buildMockJSON() string {
	prompts := []string{
		"How many surahs are in the Quran?",
		"Which surah is known as the heart of the Quran?",
		"What is the longest surah in the Quran?",
		"In which month was the Quran first revealed?",
		"Which surah is recited in every unit of prayer?",
	}
	answers := [][]string{
		{"114", "99", "120", "110"},
		{"Ya-Sin", "Al-Fatihah", "Al-Ikhlas", "Al-Mulk"},
		{"Al-Baqarah", "Al-Imran", "An-Nisa", "Al-Maidah"},
		{"Ramadan", "Shawwal", "Rajab", "Muharram"},
		{"Al-Fatihah", "Al-Ikhlas", "An-Nas", "Al-Asr"},
	}

	var b strings.Builder
	b.WriteString(`{"questions": [`)
	for i, prompt := range prompts {
		if i > 0 {
			b.WriteString(",")
		}
		q := GeneratedQuestion{
			Prompt:        prompt,
			Choices:       answers[i],
			CorrectChoice: "A",
			Explanation:   "Mock explanation for local development.",
		}
		raw, _ := json.Marshal(q)
		b.Write(raw)
	}
	b.WriteString("]}")
	return b.String()
}
