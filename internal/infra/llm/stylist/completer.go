package stylist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/yanqian/fitcheck/internal/infra/llm/chatgpt"
	"github.com/yanqian/fitcheck/pkg/metrics"
)

// ChatClient is the subset of the ChatGPT client the adapters need.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req chatgpt.ChatCompletionRequest) (chatgpt.ChatCompletionResponse, error)
}

// Config selects models and prompt limits.
type Config struct {
	AttributeModel      string
	RecommendModel      string
	FallbackModel       string
	Temperature         float32
	WardrobeTokenBudget int
	InlineImages        bool
}

// jsonCompleter runs a schema-constrained completion, moving to the next
// model only when the current one is unavailable to this account.
type jsonCompleter struct {
	client      ChatClient
	temperature float32
	logger      *slog.Logger
}

func (c jsonCompleter) complete(ctx context.Context, models []string, messages []chatgpt.Message, schemaName string, schema map[string]any) (string, error) {
	var (
		usage   metrics.TokenUsage
		lastErr error
	)
	for _, model := range models {
		req := chatgpt.ChatCompletionRequest{
			Model:    model,
			Messages: messages,
			ResponseFormat: &chatgpt.ResponseFormat{
				Type:       "json_schema",
				JSONSchema: &chatgpt.JSONSchema{Name: schemaName, Schema: schema, Strict: true},
			},
		}
		if acceptsTemperature(model) {
			temp := c.temperature
			req.Temperature = &temp
		}
		resp, err := c.client.CreateChatCompletion(ctx, req)
		if err != nil {
			if modelUnavailable(err) {
				c.logger.Warn("model unavailable, trying fallback", "model", model, "error", err)
				lastErr = err
				continue
			}
			return "", fmt.Errorf("%s completion on %s: %w", schemaName, model, err)
		}
		usage = usage.Add(resp.Usage)
		content := strings.TrimSpace(resp.FirstContent())
		if content == "" {
			return "", fmt.Errorf("%s completion on %s: empty response", schemaName, model)
		}
		c.logger.Debug("completion finished", append([]any{"schema", schemaName, "model", model}, usage.LogAttrs()...)...)
		return content, nil
	}
	if lastErr == nil {
		lastErr = errors.New("no models configured")
	}
	return "", fmt.Errorf("all models failed for %s: %w", schemaName, lastErr)
}

// acceptsTemperature reports whether the model accepts a custom temperature;
// the gpt-5 family only runs at its default.
func acceptsTemperature(model string) bool {
	return !strings.HasPrefix(strings.ToLower(model), "gpt-5")
}

func modelUnavailable(err error) bool {
	var apiErr *chatgpt.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	body := strings.ToLower(apiErr.Body)
	switch apiErr.StatusCode {
	case http.StatusNotFound:
		return true
	case http.StatusBadRequest, http.StatusForbidden:
		return strings.Contains(body, "model") &&
			(strings.Contains(body, "does not exist") || strings.Contains(body, "do not have access"))
	}
	return false
}

func modelChain(primary, fallback string) []string {
	models := make([]string, 0, 2)
	if p := strings.TrimSpace(primary); p != "" {
		models = append(models, p)
	}
	if f := strings.TrimSpace(fallback); f != "" && f != strings.TrimSpace(primary) {
		models = append(models, f)
	}
	return models
}

// stripFences tolerates replies wrapped in markdown code fences.
func stripFences(raw string) string {
	sanitized := strings.TrimSpace(raw)
	sanitized = strings.TrimPrefix(sanitized, "```json")
	sanitized = strings.TrimSuffix(sanitized, "```")
	sanitized = strings.Trim(sanitized, "`")
	return strings.TrimSpace(strings.TrimPrefix(sanitized, "json"))
}
