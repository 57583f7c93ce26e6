// Package ollama provides a local AI provider for fully offline operation.
// It serves the same embedding and base-ingredient operations as the
// OpenAI client, backed by an Ollama instance.
package ollama

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

	"go.uber.org/zap"
)

const (
	defaultBaseURL        = "http://localhost:11434"
	defaultChatModel      = "llama3.2:3b"
	defaultEmbeddingModel = "nomic-embed-text"
)

// Client implements the AIService interface using the Ollama API
type Client struct {
	baseURL        string
	chatModel      string
	embeddingModel string
	client         *http.Client
	logger         *zap.Logger
}

// NewClient creates a new Ollama client. Host and models come from
// environment variables so a local setup needs no config file.
func NewClient(logger *zap.Logger) *Client {
	baseURL := os.Getenv("FORKCAST_OLLAMA_HOST")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	chatModel := os.Getenv("FORKCAST_OLLAMA_MODEL")
	if chatModel == "" {
		chatModel = defaultChatModel
	}

	embeddingModel := os.Getenv("FORKCAST_OLLAMA_EMBED_MODEL")
	if embeddingModel == "" {
		embeddingModel = defaultEmbeddingModel
	}

	timeout := 60 * time.Second
	if raw := os.Getenv("FORKCAST_OLLAMA_TIMEOUT"); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil {
			timeout = parsed
		}
	}

	logger.Info("Ollama client initialized",
		zap.String("base_url", baseURL),
		zap.String("chat_model", chatModel),
		zap.String("embedding_model", embeddingModel),
	)

	return &Client{
		baseURL:        strings.TrimSuffix(baseURL, "/"),
		chatModel:      chatModel,
		embeddingModel: embeddingModel,
		client:         &http.Client{Timeout: timeout},
		logger:         logger.Named("ollama-client"),
	}
}

// Ollama API structures

type EmbedRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type EmbedResponse struct {
	Embeddings [][]float64 `json:"embeddings"`
}

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Model    string                 `json:"model"`
	Messages []ChatMessage          `json:"messages"`
	Stream   bool                   `json:"stream"`
	Options  map[string]interface{} `json:"options,omitempty"`
}

type ChatResponse struct {
	Model   string      `json:"model"`
	Message ChatMessage `json:"message"`
	Done    bool        `json:"done"`
}

// HealthCheck verifies the Ollama service is reachable
func (c *Client) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/api/tags", nil)
	if err != nil {
		return fmt.Errorf("failed to create health check request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("ollama health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ollama health check failed with status %d", resp.StatusCode)
	}
	return nil
}

// ComputeEmbeddings returns one vector per input text from a single
// batched call, in input order. Empty input short-circuits without any
// network traffic.
func (c *Client) ComputeEmbeddings(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return [][]float64{}, nil
	}

	reqBody := EmbedRequest{
		Model: c.embeddingModel,
		Input: texts,
	}

	var response EmbedResponse
	if err := c.post(ctx, "/api/embed", reqBody, &response); err != nil {
		return nil, err
	}

	if len(response.Embeddings) != len(texts) {
		return nil, fmt.Errorf("embedding response shape mismatch: requested %d, received %d", len(texts), len(response.Embeddings))
	}

	c.logger.Debug("Embeddings computed", zap.Int("texts", len(texts)))
	return response.Embeddings, nil
}

// DeriveBaseIngredients maps raw product names to their core food concept
// via one chat completion, one result per input in input order
func (c *Client) DeriveBaseIngredients(ctx context.Context, names []string) ([]string, error) {
	if len(names) == 0 {
		return []string{}, nil
	}

	reqBody := ChatRequest{
		Model: c.chatModel,
		Messages: []ChatMessage{
			{Role: "system", Content: baseIngredientSystemPrompt},
			{Role: "user", Content: buildBaseIngredientPrompt(names)},
		},
		Stream: false,
		Options: map[string]interface{}{
			"temperature": 0.1,
		},
	}

	var response ChatResponse
	if err := c.post(ctx, "/api/chat", reqBody, &response); err != nil {
		return nil, err
	}
	if !response.Done {
		return nil, fmt.Errorf("incomplete response from ollama")
	}

	bases, err := parseBaseIngredientResponse(response.Message.Content)
	if err != nil {
		return nil, err
	}
	if len(bases) != len(names) {
		return nil, fmt.Errorf("base ingredient response shape mismatch: requested %d, received %d", len(names), len(bases))
	}

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
