// Package openai provides the OpenAI-backed AI service: batched embeddings
// for similarity matching and chat-based base ingredient derivation for the
// offline backfill
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/forkcast/v2/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Client implements the AIService interface using the OpenAI API
type Client struct {
	apiKey         string
	baseURL        string
	embeddingModel string
	chatModel      string
	maxTokens      int
	temperature    float64
	client         *http.Client
	logger         *zap.Logger
}

// NewClient creates a new OpenAI client from configuration
func NewClient(cfg *config.Config, logger *zap.Logger) *Client {
	apiKey := cfg.AI.OpenAIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}

	baseURL := strings.TrimSuffix(cfg.AI.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}

	timeout := time.Duration(cfg.AI.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		apiKey:         apiKey,
		baseURL:        baseURL,
		embeddingModel: cfg.AI.EmbeddingModel,
		chatModel:      cfg.AI.ChatModel,
		maxTokens:      cfg.AI.MaxTokens,
		temperature:    cfg.AI.Temperature,
		client:         &http.Client{Timeout: timeout},
		logger:         logger.Named("openai-client"),
	}
}

// OpenAI API structures

type EmbeddingRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type EmbeddingData struct {
	Index     int       `json:"index"`
	Embedding []float64 `json:"embedding"`
}

type EmbeddingResponse struct {
	Data  []EmbeddingData `json:"data"`
	Usage Usage           `json:"usage"`
}

type ChatCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatCompletionResponse struct {
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage"`
}

type Choice struct {
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason"`
}

type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ComputeEmbeddings returns one vector per input text from a single batched
// API call, in input order. Empty input short-circuits without any network
// traffic. A response whose shape does not match the request is an error;
// it is never partially trusted.
func (c *Client) ComputeEmbeddings(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return [][]float64{}, nil
	}

	reqBody := EmbeddingRequest{
		Model: c.embeddingModel,
		Input: texts,
	}

	var response EmbeddingResponse
	if err := c.post(ctx, "/embeddings", reqBody, &response); err != nil {
		return nil, err
	}

	if len(response.Data) != len(texts) {
		return nil, fmt.Errorf("embedding response shape mismatch: requested %d, received %d", len(texts), len(response.Data))
	}

	vectors := make([][]float64, len(texts))
	for _, data := range response.Data {
		if data.Index < 0 || data.Index >= len(vectors) {
			return nil, fmt.Errorf("embedding response index %d out of range", data.Index)
		}
		vectors[data.Index] = data.Embedding
	}
	for i, v := range vectors {
		if v == nil {
			return nil, fmt.Errorf("embedding response missing vector for input %d", i)
		}
	}

	c.logger.Debug("Embeddings computed",
		zap.Int("texts", len(texts)),
		zap.Int("total_tokens", response.Usage.TotalTokens),
	)

	return vectors, nil
}

// DeriveBaseIngredients maps raw product names to their core food concept
// via one chat completion, one result per input in input order
func (c *Client) DeriveBaseIngredients(ctx context.Context, names []string) ([]string, error) {
	if len(names) == 0 {
		return []string{}, nil
	}

	reqBody := ChatCompletionRequest{
		Model: c.chatModel,
		Messages: []Message{
			{Role: "system", Content: baseIngredientSystemPrompt},
			{Role: "user", Content: buildBaseIngredientPrompt(names)},
		},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	}

	var response ChatCompletionResponse
	if err := c.post(ctx, "/chat/completions", reqBody, &response); err != nil {
		return nil, err
	}
	if len(response.Choices) == 0 {
		return nil, fmt.Errorf("chat completion returned no choices")
	}

	bases, err := parseBaseIngredientResponse(response.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}
	if len(bases) != len(names) {
		return nil, fmt.Errorf("base ingredient response shape mismatch: requested %d, received %d", len(names), len(bases))
	}

	c.logger.Debug("Base ingredients derived",
		zap.Int("names", len(names)),
		zap.Int("total_tokens", response.Usage.TotalTokens),
	)

	return bases, nil
}

const baseIngredientSystemPrompt = `You are a grocery data normalizer. For each product name you receive, identify the core food concept behind it, stripping brands, quantities and packaging (e.g. "Sainsbury's Whole Milk 2L" -> "whole milk").

CRITICAL: Respond with ONLY a valid JSON array of lowercase strings, one per input, in the same order as the inputs. No explanatory text, no markdown formatting.`

func buildBaseIngredientPrompt(names []string) string {
	var builder strings.Builder
	builder.WriteString("Product names:\n")
	for i, name := range names {
		fmt.Fprintf(&builder, "%d. %s\n", i+1, name)
	}
	return builder.String()
}

// parseBaseIngredientResponse extracts the JSON array from the model
// output, tolerating stray text around it
func parseBaseIngredientResponse(content string) ([]string, error) {
	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("no JSON array found in response")
	}

	var bases []string
	if err := json.Unmarshal([]byte(content[start:end+1]), &bases); err != nil {
		return nil, fmt.Errorf("failed to parse base ingredient response: %w", err)
	}
	return bases, nil
}

// post sends a JSON request to the API and decodes the JSON response
func (c *Client) post(ctx context.Context, path string, reqBody, out interface{}) error {
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+path, bytes.NewBuffer(jsonBody))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API error %d: %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
