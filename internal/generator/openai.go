package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ismailsvc/stellar-bomb-backend/internal/puzzles"
	"github.com/ismailsvc/stellar-bomb-backend/pkg/logger"
)

const OpenAIAPIURL = "https://api.openai.com/v1/chat/completions"

// ErrRateLimited marks an HTTP 429 from the generator. Callers back off
// longer on this than on any other failure.
var ErrRateLimited = errors.New("rate limited by generator")

// ErrNotConfigured means no API key is set. The round starter treats this
// like any other generator failure and falls back to the catalog.
var ErrNotConfigured = errors.New("generator api key not configured")

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Client talks to the OpenAI chat-completions API to generate bug-fix puzzles
// and to validate submitted fixes for generated puzzles.
type Client struct {
	APIKey  string
	Model   string
	BaseURL string
	Cache   *Cache

	httpClient *http.Client
}

func NewClient(apiKey, model string, cache *Cache) *Client {
	if model == "" {
		model = "gpt-3.5-turbo"
	}
	return &Client{
		APIKey:     apiKey,
		Model:      model,
		BaseURL:    OpenAIAPIURL,
		Cache:      cache,
		httpClient: &http.Client{Timeout: 20 * time.Second},
	}
}

func (c *Client) complete(ctx context.Context, system, user string, temperature float64, maxTokens int) (string, error) {
	reqBody := chatRequest{
		Model: c.Model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", fmt.Errorf("openai: %w", ErrRateLimited)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("openai api failed with status: %d", resp.StatusCode)
	}

	var result chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	if len(result.Choices) == 0 || result.Choices[0].Message.Content == "" {
		return "", errors.New("empty response from openai")
	}

	logger.Debug().
		Dur("latency", time.Since(start)).
		Msg("OpenAI completion")

	return result.Choices[0].Message.Content, nil
}

const generateSystemPrompt = "You are an expert JavaScript teacher. Generate engaging coding puzzles with bugs."

func generateUserPrompt(d puzzles.Difficulty) string {
	return fmt.Sprintf(`Generate a JavaScript code puzzle for %s difficulty level.
The puzzle should have intentional bugs that the user needs to fix within 30 seconds.
Return the response in JSON format with this structure:
{
  "title": "Problem Name",
  "description": "Short description of what the code should do",
  "starterCode": "function buggyCode() { ... }",
  "expectedOutput": "What the fixed code should output or demonstrate"
}

Requirements:
- The starter code should have exactly 1-3 bugs
- Bugs should be logical (wrong operators, wrong conditions, etc)
- Code should be simple enough to fix in 30 seconds
- Include comments showing where the bugs are like // HATA
- The code should be valid JavaScript that can be tested`, d)
}

// Generate returns a puzzle for the difficulty, preferring the local cache
// over a network call. Rate limiting is distinguished via ErrRateLimited.
func (c *Client) Generate(ctx context.Context, d puzzles.Difficulty) (*puzzles.Puzzle, error) {
	if cached := c.Cache.RandomByDifficulty(d); cached != nil {
		return cached, nil
	}

	if c.APIKey == "" {
		return nil, ErrNotConfigured
	}

	content, err := c.complete(ctx, generateSystemPrompt, generateUserPrompt(d), 0.8, 500)
	if err != nil {
		return nil, err
	}

	raw, ok := extractJSON(content)
	if !ok {
		return nil, errors.New("could not parse JSON from generator response")
	}

	var payload struct {
		Title          string `json:"title"`
		Description    string `json:"description"`
		StarterCode    string `json:"starterCode"`
		ExpectedOutput string `json:"expectedOutput"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("invalid puzzle payload: %w", err)
	}

	if payload.Title == "" {
		payload.Title = "AI Generated Puzzle"
	}
	if payload.Description == "" {
		payload.Description = "Fix the bugs in this code"
	}

	p := puzzles.Puzzle{
		ID:             fmt.Sprintf("ai-%d", time.Now().UnixMilli()),
		Kind:           puzzles.KindGenerated,
		Title:          payload.Title,
		Description:    payload.Description,
		StarterCode:    payload.StarterCode,
		ExpectedOutput: payload.ExpectedOutput,
		Difficulty:     d,
	}

	c.Cache.Add(p)
	return &p, nil
}

const validateSystemPrompt = "You are a JavaScript code reviewer. Check if code is correctly fixed. Answer only with true or false."

// Validate asks the model whether the submitted code fixes the generated
// puzzle. Transport or parse failures surface as errors; the round treats
// those the same as an incorrect submission.
func (c *Client) Validate(ctx context.Context, userCode, starterCode, expectedOutput string) (bool, error) {
	if c.APIKey == "" {
		return false, ErrNotConfigured
	}

	prompt := fmt.Sprintf(`Check if the user fixed the JavaScript code correctly.

Original buggy code:
`+"```javascript\n%s\n```"+`

User's fixed code:
`+"```javascript\n%s\n```"+`

Expected behavior: %s

Answer ONLY with "true" if the code is correctly fixed, or "false" if it still has bugs.
Consider these fixes correct if:
1. The main bugs are fixed
2. The code would work as expected
3. The logic is sound

Respond with only: true or false`, starterCode, userCode, expectedOutput)

	content, err := c.complete(ctx, validateSystemPrompt, prompt, 0.2, 10)
	if err != nil {
		return false, err
	}

	return strings.EqualFold(strings.TrimSpace(content), "true"), nil
}

// extractJSON pulls the first top-level JSON object out of a completion that
// may be wrapped in prose or code fences.
func extractJSON(content string) (string, bool) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return content[start : end+1], true
}
