package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/forkcast/v2/internal/infrastructure/config"
)

// ClientTestSuite tests the OpenAI client against a stub server
type ClientTestSuite struct {
	suite.Suite
	requests int64
}

func (suite *ClientTestSuite) newClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	atomic.StoreInt64(&suite.requests, 0)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&suite.requests, 1)
		handler(w, r)
	}))

	cfg := &config.Config{}
	cfg.AI = config.AIConfig{
		BaseURL:        server.URL,
		OpenAIKey:      "test-key",
		EmbeddingModel: "test-embedding",
		ChatModel:      "test-chat",
		MaxTokens:      500,
		Temperature:    0.1,
		TimeoutSeconds: 5,
	}

	return NewClient(cfg, zap.NewNop()), server
}

func (suite *ClientTestSuite) TestComputeEmbeddings_EmptyInput_NoNetworkCall() {
	// Arrange
	client, server := suite.newClient(func(w http.ResponseWriter, r *http.Request) {})
	defer server.Close()

	// Act
	vectors, err := client.ComputeEmbeddings(context.Background(), nil)

	// Assert
	suite.Require().NoError(err)
	suite.Empty(vectors)
	suite.Equal(int64(0), atomic.LoadInt64(&suite.requests))
}

func (suite *ClientTestSuite) TestComputeEmbeddings_SingleBatchedCall_PreservesOrder() {
	// Arrange: response data arrives out of order, indexes decide placement
	client, server := suite.newClient(func(w http.ResponseWriter, r *http.Request) {
		suite.Equal("/embeddings", r.URL.Path)
		suite.Equal("Bearer test-key", r.Header.Get("Authorization"))

		var req EmbeddingRequest
		suite.Require().NoError(json.NewDecoder(r.Body).Decode(&req))
		suite.Equal("test-embedding", req.Model)
		suite.Equal([]string{"chicken", "salt"}, req.Input)

		json.NewEncoder(w).Encode(EmbeddingResponse{
			Data: []EmbeddingData{
				{Index: 1, Embedding: []float64{0, 1}},
				{Index: 0, Embedding: []float64{1, 0}},
			},
		})
	})
	defer server.Close()

	// Act
	vectors, err := client.ComputeEmbeddings(context.Background(), []string{"chicken", "salt"})

	// Assert
	suite.Require().NoError(err)
	suite.Require().Len(vectors, 2)
	suite.Equal([]float64{1, 0}, vectors[0])
	suite.Equal([]float64{0, 1}, vectors[1])
	suite.Equal(int64(1), atomic.LoadInt64(&suite.requests))
}

func (suite *ClientTestSuite) TestComputeEmbeddings_ShapeMismatch_ReturnsError() {
	// Arrange
	client, server := suite.newClient(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(EmbeddingResponse{
			Data: []EmbeddingData{{Index: 0, Embedding: []float64{1}}},
		})
	})
	defer server.Close()

	// Act
	_, err := client.ComputeEmbeddings(context.Background(), []string{"chicken", "salt"})

	// Assert
	suite.Require().Error(err)
	suite.Contains(err.Error(), "shape mismatch")
}

func (suite *ClientTestSuite) TestComputeEmbeddings_APIError_ReturnsError() {
	// Arrange
	client, server := suite.newClient(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	})
	defer server.Close()

	// Act
	_, err := client.ComputeEmbeddings(context.Background(), []string{"chicken"})

	// Assert
	suite.Require().Error(err)
	suite.Contains(err.Error(), "429")
}

func (suite *ClientTestSuite) TestDeriveBaseIngredients_ParsesArrayFromProse() {
	// Arrange
	client, server := suite.newClient(func(w http.ResponseWriter, r *http.Request) {
		suite.Equal("/chat/completions", r.URL.Path)
		json.NewEncoder(w).Encode(ChatCompletionResponse{
			Choices: []Choice{{
				Message: Message{
					Role:    "assistant",
					Content: "Here you go:\n[\"whole milk\", \"salt\"]",
				},
			}},
		})
	})
	defer server.Close()

	// Act
	bases, err := client.DeriveBaseIngredients(context.Background(), []string{"Sainsbury's Whole Milk 2L", "Table Salt"})

	// Assert
	suite.Require().NoError(err)
	suite.Equal([]string{"whole milk", "salt"}, bases)
}

func (suite *ClientTestSuite) TestDeriveBaseIngredients_WrongCount_ReturnsError() {
	// Arrange
	client, server := suite.newClient(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ChatCompletionResponse{
			Choices: []Choice{{Message: Message{Content: `["whole milk"]`}}},
		})
	})
	defer server.Close()

	// Act
	_, err := client.DeriveBaseIngredients(context.Background(), []string{"a", "b"})

	// Assert
	suite.Require().Error(err)
	suite.Contains(err.Error(), "shape mismatch")
}

func TestClientTestSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}
