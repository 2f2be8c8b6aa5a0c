package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"

	"skill_tracker/internal/domain/model"
	"skill_tracker/internal/platform/logger"
	"skill_tracker/internal/platform/metrics"
)

var errNotConfigured = errors.New("advisor api key not configured")

type openAIClient struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
	log        *logger.Logger
}

// NewOpenAIClient returns a Client for any OpenAI-compatible chat
// completions endpoint. A nil httpClient uses a default client without a
// timeout; the caller's context bounds each call.
func NewOpenAIClient(apiKey, baseURL, modelName string, httpClient *http.Client, log *logger.Logger) Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &openAIClient{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      modelName,
		httpClient: httpClient,
		log:        log,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	ResponseFormat responseFormat `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// payload is the model's JSON object. Fields are decoded one at a time so a
// single malformed field only falls back to its own default.
type payload map[string]json.RawMessage

// field decodes key into T. It reports false when the key is missing, null
// or of the wrong type.
func field[T any](p payload, key string) (T, bool) {
	var v T
	raw, ok := p[key]
	if !ok || string(raw) == "null" {
		return v, false
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		var zero T
		return zero, false
	}
	return v, true
}

func stringsField(p payload, key string) []string {
	v, ok := field[[]string](p, key)
	if !ok || v == nil {
		return []string{}
	}
	return v
}

func (c *openAIClient) CheckSolution(ctx context.Context, in SolutionCheckInput) model.SolutionCheckResult {
	var p payload
	if err := c.complete(ctx, solutionSystemPrompt, buildSolutionPrompt(in), &p); err != nil {
		c.log.Error("Error checking solution", "error", err)
		metrics.AdvisorCalls.WithLabelValues("check_solution", "fallback").Inc()
		return SolutionFallback()
	}
	metrics.AdvisorCalls.WithLabelValues("check_solution", "ok").Inc()

	res := model.SolutionCheckResult{
		Feedback:    defaultFeedback,
		Suggestions: stringsField(p, "suggestions"),
	}
	if v, ok := field[bool](p, "isCorrect"); ok {
		res.IsCorrect = v
	}
	if v, ok := field[float64](p, "score"); ok {
		res.Score = clampScore(v)
	}
	if v, ok := field[string](p, "feedback"); ok && v != "" {
		res.Feedback = v
	}
	return res
}

func (c *openAIClient) CareerGuidance(ctx context.Context, in CareerGuidanceInput) model.CareerGuidance {
	var p payload
	if err := c.complete(ctx, guidanceSystemPrompt, buildGuidancePrompt(in), &p); err != nil {
		c.log.Error("Error generating career guidance", "error", err)
		metrics.AdvisorCalls.WithLabelValues("career_guidance", "fallback").Inc()
		return GuidanceFallback()
	}
	metrics.AdvisorCalls.WithLabelValues("career_guidance", "ok").Inc()

	g := model.CareerGuidance{
		Roadmap:         stringsField(p, "roadmap"),
		SuggestedSkills: stringsField(p, "suggestedSkills"),
		TimelineWeeks:   DefaultTimelineWeeks,
		Resources:       stringsField(p, "resources"),
	}
	if v, ok := field[float64](p, "timelineWeeks"); ok && v > 0 {
		g.TimelineWeeks = int(math.Round(v))
	}
	return g
}

// complete runs one JSON-mode chat completion and decodes the message
// content into out.
func (c *openAIClient) complete(ctx context.Context, system, user string, out any) error {
	if c.apiKey == "" {
		return errNotConfigured
	}

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		ResponseFormat: responseFormat{Type: "json_object"},
	})
	if err != nil {
		return fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("chat completions returned status %d: %s", resp.StatusCode, truncate(string(raw), 512))
	}

	var chat chatResponse
	if err := json.Unmarshal(raw, &chat); err != nil {
		return fmt.Errorf("decode chat response: %w", err)
	}
	if chat.Error != nil {
		return fmt.Errorf("api error: %s", chat.Error.Message)
	}
	if len(chat.Choices) == 0 {
		return errors.New("no choices returned")
	}

	content := cleanMarkdownJSON(chat.Choices[0].Message.Content)
	if content == "" {
		content = "{}"
	}
	if err := json.Unmarshal([]byte(content), out); err != nil {
		return fmt.Errorf("decode model output (length %d): %w", len(content), err)
	}
	return nil
}

// cleanMarkdownJSON strips a ```json fence some models wrap around output.
func cleanMarkdownJSON(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimSuffix(content, "```")
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
	}
	return strings.TrimSpace(content)
}

func clampScore(v float64) int {
	if math.IsNaN(v) {
		return 0
	}
	return int(math.Round(math.Max(0, math.Min(100, v))))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
