package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/produktlister/backend/internal/domain"
)

// Generation limits shared by the AI path and the deterministic fallbacks.
const (
	MaxTitleLen  = 80
	MaxBulletLen = 160
)

// Per-operation generation parameters.
const (
	titleMaxTokens      = 80
	titleTemperature    = 0.6
	bulletMaxTokens     = 300
	connectivityTokens  = 10
	errorBodyPreviewLen = 300
	connectivityPreview = 80
)

// Config holds the OpenRouter connection settings.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Timeout     time.Duration
	Temperature float64
	MaxTokens   int
}

// Client calls the OpenRouter chat-completion endpoint. Each operation makes
// exactly one bounded attempt and reports failures as typed errors; it keeps
// no error state between calls. It implements domain.TextGenerator.
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	model       string
	temperature float64
	maxTokens   int
	rateLimiter *rate.Limiter
	logger      *slog.Logger
}

// NewClient creates an OpenRouter client
func NewClient(cfg Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	// Stay well under the OpenRouter per-minute budget; burst covers the
	// three generation calls of a single product.
	limiter := rate.NewLimiter(rate.Limit(1), 5)

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		apiKey:      cfg.APIKey,
		baseURL:     cfg.BaseURL,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		rateLimiter: limiter,
		logger:      logger,
	}
}

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
	Error   *apiError    `json:"error,omitempty"`
	Choices []chatChoice `json:"choices"`
}

type apiError struct {
	Message string `json:"message"`
	Code    int    `json:"code,omitempty"`
}

type chatChoice struct {
	Message chatMessage `json:"message"`
}

// call executes one chat-completion request and returns the trimmed content.
// One attempt, no retry: a failed generation falls back deterministically at
// the caller, so retrying here would only add latency.
func (c *Client) call(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
	if c.apiKey == "" {
		return "", domain.ErrMissingAPIKey
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter error: %w", err)
	}

	payload, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("HTTP-Referer", "https://localhost")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrAIRequestFailed, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: HTTP %d: %s", domain.ErrAIRequestFailed, resp.StatusCode, preview(string(body), errorBodyPreviewLen))
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("%w: %s", domain.ErrAIRequestFailed, parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("%w: %s", domain.ErrMalformedResponse, preview(string(body), errorBodyPreviewLen))
	}

	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if content == "" {
		return "", domain.ErrEmptyContent
	}

	return content, nil
}

// GenerateTitle produces a German listing title of at most 80 characters.
func (c *Client) GenerateTitle(ctx context.Context, productName, brand, specs string) (string, error) {
	result, err := c.call(ctx, titlePrompt(productName, brand, specs), titleMaxTokens, titleTemperature)
	if err != nil {
		c.logger.Warn("title generation failed", "error", err)
		return "", err
	}

	result = strings.Trim(strings.TrimSpace(result), `"'`)
	return truncateRunes(result, MaxTitleLen), nil
}

// GenerateBulletPoints produces listing bullets parsed from the model's
// dash-prefixed lines, each capped at 160 characters and at most six in
// total. A response without a single bullet line is a malformed response.
func (c *Client) GenerateBulletPoints(ctx context.Context, productName, description string, specs map[string]string) ([]string, error) {
	result, err := c.call(ctx, bulletPrompt(productName, description, specs), bulletMaxTokens, c.temperature)
	if err != nil {
		c.logger.Warn("bullet generation failed", "error", err)
		return nil, err
	}

	var bullets []string
	for _, line := range strings.Split(result, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "•") && !strings.HasPrefix(line, "*") {
			continue
		}
		b := strings.TrimSpace(strings.TrimLeft(line, "-•* "))
		if b == "" {
			continue
		}
		bullets = append(bullets, truncateRunes(b, MaxBulletLen))
		if len(bullets) == 6 {
			break
		}
	}

	if len(bullets) == 0 {
		return nil, fmt.Errorf("%w: no bullet lines in %q", domain.ErrMalformedResponse, preview(result, errorBodyPreviewLen))
	}

	return bullets, nil
}

// GenerateHTMLDescription produces an HTML listing description. A response
// without a single angle bracket cannot be HTML and counts as malformed.
func (c *Client) GenerateHTMLDescription(ctx context.Context, productName, description string, bullets []string, specs map[string]string) (string, error) {
	result, err := c.call(ctx, htmlDescriptionPrompt(productName, description, bullets, specs), c.maxTokens, c.temperature)
	if err != nil {
		c.logger.Warn("description generation failed", "error", err)
		return "", err
	}

	if !strings.Contains(result, "<") {
		return "", fmt.Errorf("%w: response is not HTML-shaped", domain.ErrMalformedResponse)
	}

	return result, nil
}

// TestConnection sends a minimal prompt and reports the outcome as a
// structured status, so callers can surface API health without touching the
// main pipeline.
func (c *Client) TestConnection(ctx context.Context) domain.ConnectionStatus {
	result, err := c.call(ctx, connectivityPrompt, connectivityTokens, c.temperature)
	if err != nil {
		return domain.ConnectionStatus{Success: false, Message: err.Error()}
	}

	if strings.Contains(strings.ToLower(result), "ok") {
		return domain.ConnectionStatus{Success: true, Message: "API bağlantısı başarılı"}
	}

	return domain.ConnectionStatus{
		Success: true,
		Message: "API yanıtı alındı (beklenen 'OK' değil): " + preview(result, connectivityPreview),
	}
}

// preview flattens a string to a single line of at most n runes for log and
// error messages.
func preview(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	return truncateRunes(s, n)
}
