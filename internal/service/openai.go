package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"time"

	"propswipes/internal/config"
	"propswipes/internal/model"
	"propswipes/internal/utils"
)

// Failure taxonomy for the hosted-model path. Handlers map these onto HTTP
// status codes; none of them is retried internally.
var (
	// ErrAINotConfigured means no API key is present.
	ErrAINotConfigured = errors.New("smart search is not configured")
	// ErrAIRateLimited maps an upstream 429.
	ErrAIRateLimited = errors.New("the AI service is handling too many requests, please try again in a moment")
	// ErrAIPaymentRequired maps an upstream 402.
	ErrAIPaymentRequired = errors.New("the AI service quota has been exhausted")
	// ErrAIUnavailable covers every other non-2xx upstream response.
	ErrAIUnavailable = errors.New("the AI service request failed")
	// ErrNoToolCall means the model answered without a usable structured result.
	ErrNoToolCall = errors.New("could not extract search filters from the query")
)

// OpenAIClient handles OpenAI-compatible API interactions
type OpenAIClient struct {
	config     *config.OpenAIConfig
	httpClient *http.Client
}

// NewOpenAIClient creates a new OpenAI-compatible client
func NewOpenAIClient(cfg *config.OpenAIConfig) *OpenAIClient {
	return &OpenAIClient{
		config: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
	}
}

// IsEnabled returns whether the client is configured and ready
func (c *OpenAIClient) IsEnabled() bool {
	return c.config.Enabled
}

// ChatCompletionRequest represents a chat completion request
type ChatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Tools       []Tool        `json:"tools,omitempty"`
	ToolChoice  any           `json:"tool_choice,omitempty"`
}

// ChatMessage represents a single message in the conversation
type ChatMessage struct {
	Role      string     `json:"role"`
	Content   string     `json:"content"`
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`
}

// Tool declares a function the model may call
type Tool struct {
	Type     string       `json:"type"`
	Function ToolFunction `json:"function"`
}

// ToolFunction is the callable function description inside a Tool
type ToolFunction struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Parameters  map[string]any `json:"parameters,omitempty"`
}

// ToolCall is a function invocation returned by the model
type ToolCall struct {
	ID       string           `json:"id"`
	Type     string           `json:"type"`
	Function ToolCallFunction `json:"function"`
}

// ToolCallFunction carries the called function name and its JSON arguments
type ToolCallFunction struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// ChatCompletionResponse represents the API response
type ChatCompletionResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Created int64  `json:"created"`
	Model   string `json:"model"`
	Choices []struct {
		Index        int         `json:"index"`
		Message      ChatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// EmbeddingRequest represents an embedding request
type EmbeddingRequest struct {
	Model      string   `json:"model"`
	Input      []string `json:"input"`
	Dimensions int      `json:"dimensions,omitempty"`
}

// EmbeddingResponse represents the embedding API response
type EmbeddingResponse struct {
	Object string `json:"object"`
	Data   []struct {
		Object    string    `json:"object"`
		Embedding []float32 `json:"embedding"`
		Index     int       `json:"index"`
	} `json:"data"`
	Model string `json:"model"`
	Usage struct {
		PromptTokens int `json:"prompt_tokens"`
		TotalTokens  int `json:"total_tokens"`
	} `json:"usage"`
}

// ChatCompletion performs a chat completion request. Upstream failures are
// wrapped in the sentinel errors above so callers can map them to responses
// without inspecting status codes themselves.
func (c *OpenAIClient) ChatCompletion(ctx context.Context, req ChatCompletionRequest) (*ChatCompletionResponse, error) {
	if !c.config.Enabled {
		return nil, ErrAINotConfigured
	}

	if req.Model == "" {
		req.Model = c.config.ChatModel
	}
	if req.Temperature == 0 && c.config.ChatTemperature > 0 {
		req.Temperature = c.config.ChatTemperature
	}
	if req.MaxTokens == 0 && c.config.ChatMaxTokens > 0 {
		req.MaxTokens = c.config.ChatMaxTokens
	}

	reqBody, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/chat/completions", c.config.APIBase)
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.config.APIKey))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAIUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", ErrAIUnavailable, err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusTooManyRequests:
		return nil, fmt.Errorf("%w: %s", ErrAIRateLimited, string(body))
	case http.StatusPaymentRequired:
		return nil, fmt.Errorf("%w: %s", ErrAIPaymentRequired, string(body))
	default:
		return nil, fmt.Errorf("%w: status %d: %s", ErrAIUnavailable, resp.StatusCode, string(body))
	}

	var result ChatCompletionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return &result, nil
}

const extractFiltersTool = "extract_search_filters"

// extractFiltersToolSchema is the single function schema offered to the
// model; its shape mirrors model.SearchFilters with explicit min/max pairs.
func extractFiltersToolSchema() Tool {
	number := func(desc string) map[string]any {
		return map[string]any{"type": "number", "description": desc}
	}
	integer := func(desc string) map[string]any {
		return map[string]any{"type": "integer", "description": desc}
	}

	return Tool{
		Type: "function",
		Function: ToolFunction{
			Name:        extractFiltersTool,
			Description: "Extract structured property search filters from a natural language real estate query. Omit any field the query does not mention.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"property_type": map[string]any{
						"type":        "string",
						"enum":        []string{"residential", "commercial", "land", "condo", "apartment"},
						"description": "Kind of property being searched for",
					},
					"listing_type": map[string]any{
						"type":        "string",
						"enum":        []string{"for-sale", "rental"},
						"description": "Whether the user wants to buy or rent",
					},
					"bedrooms_min":    integer("Minimum number of bedrooms"),
					"bedrooms_max":    integer("Maximum number of bedrooms; equal to bedrooms_min for an exact count"),
					"bathrooms_min":   number("Minimum number of bathrooms, 0.5 increments allowed"),
					"bathrooms_max":   number("Maximum number of bathrooms"),
					"price_min":       number("Minimum price in dollars"),
					"price_max":       number("Maximum price in dollars"),
					"square_feet_min": number("Minimum interior or lot size in square feet; convert acres at 43560 sqft per acre"),
					"square_feet_max": number("Maximum size in square feet"),
					"year_built_min":  integer("Earliest acceptable build year; 'built in the last N years' means current year minus N"),
					"amenities": map[string]any{
						"type":        "array",
						"items":       map[string]any{"type": "string"},
						"description": "Requested amenities or features, e.g. pool, garage, waterfront",
					},
					"location": map[string]any{
						"type":        "string",
						"description": "City, neighborhood or area the user mentioned",
					},
				},
			},
		},
	}
}

// aiFilterPayload is the decoded tool-call argument object.
type aiFilterPayload struct {
	PropertyType  *string  `json:"property_type,omitempty"`
	ListingType   *string  `json:"listing_type,omitempty"`
	BedroomsMin   *int     `json:"bedrooms_min,omitempty"`
	BedroomsMax   *int     `json:"bedrooms_max,omitempty"`
	BathroomsMin  *float64 `json:"bathrooms_min,omitempty"`
	BathroomsMax  *float64 `json:"bathrooms_max,omitempty"`
	PriceMin      *float64 `json:"price_min,omitempty"`
	PriceMax      *float64 `json:"price_max,omitempty"`
	SquareFeetMin *float64 `json:"square_feet_min,omitempty"`
	SquareFeetMax *float64 `json:"square_feet_max,omitempty"`
	YearBuiltMin  *int     `json:"year_built_min,omitempty"`
	Amenities     []string `json:"amenities,omitempty"`
	Location      *string  `json:"location,omitempty"`
}

// ExtractFilters asks the model to call the filter-extraction function once
// and decodes the arguments. A response with no tool call is ErrNoToolCall.
func (c *OpenAIClient) ExtractFilters(ctx context.Context, query string) (*model.SearchFilters, error) {
	if !c.config.Enabled {
		return nil, ErrAINotConfigured
	}

	req := ChatCompletionRequest{
		Model: c.config.ChatModel,
		Messages: []ChatMessage{
			{Role: "system", Content: "You are a real estate search assistant. Extract structured search filters from the user's query by calling the provided function. Only include fields the user actually mentioned."},
			{Role: "user", Content: query},
		},
		Tools: []Tool{extractFiltersToolSchema()},
		ToolChoice: map[string]any{
			"type":     "function",
			"function": map[string]any{"name": extractFiltersTool},
		},
	}

	resp, err := c.ChatCompletion(ctx, req)
	if err != nil {
		return nil, err
	}

	if len(resp.Choices) == 0 || len(resp.Choices[0].Message.ToolCalls) == 0 {
		return nil, ErrNoToolCall
	}

	args := resp.Choices[0].Message.ToolCalls[0].Function.Arguments
	var payload aiFilterPayload
	if err := utils.ParseAIJSON(args, &payload); err != nil {
		log.Printf("Failed to parse tool-call arguments: %v (arguments: %s)", err, args)
		return nil, fmt.Errorf("%w: %v", ErrNoToolCall, err)
	}

	return payload.toFilters(), nil
}

// toFilters maps the payload onto SearchFilters, dropping values that break
// the non-negative finite invariant instead of failing the whole request.
func (p *aiFilterPayload) toFilters() *model.SearchFilters {
	f := &model.SearchFilters{
		PropertyType:  p.PropertyType,
		ListingType:   p.ListingType,
		BedroomsMin:   nonNegativeInt(p.BedroomsMin),
		BedroomsMax:   nonNegativeInt(p.BedroomsMax),
		BathroomsMin:  nonNegativeFloat(p.BathroomsMin),
		BathroomsMax:  nonNegativeFloat(p.BathroomsMax),
		PriceMin:      nonNegativeFloat(p.PriceMin),
		PriceMax:      nonNegativeFloat(p.PriceMax),
		SquareFeetMin: nonNegativeFloat(p.SquareFeetMin),
		SquareFeetMax: nonNegativeFloat(p.SquareFeetMax),
		YearBuiltMin:  p.YearBuiltMin,
		Amenities:     p.Amenities,
		Location:      p.Location,
	}
	return f
}

func nonNegativeInt(v *int) *int {
	if v == nil || *v < 0 {
		return nil
	}
	return v
}

func nonNegativeFloat(v *float64) *float64 {
	if v == nil || *v < 0 || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return nil
	}
	return v
}

// CreateEmbeddings creates embeddings for the given texts, batching requests
// per the configured batch size.
func (c *OpenAIClient) CreateEmbeddings(ctx context.Context, texts []string) ([][]float32, error) {
	if !c.config.Enabled {
		return nil, ErrAINotConfigured
	}

	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	allEmbeddings := make([][]float32, 0, len(texts))
	batchSize := c.config.BatchSize
	if batchSize <= 0 {
		batchSize = len(texts)
	}

	for i := 0; i < len(texts); i += batchSize {
		end := i + batchSize
		if end > len(texts) {
			end = len(texts)
		}

		embeddings, err := c.createEmbeddingBatch(ctx, texts[i:end])
		if err != nil {
			return nil, fmt.Errorf("failed to create embeddings for batch %d: %w", i/batchSize, err)
		}
		allEmbeddings = append(allEmbeddings, embeddings...)
	}

	return allEmbeddings, nil
}

// createEmbeddingBatch creates embeddings for a single batch
func (c *OpenAIClient) createEmbeddingBatch(ctx context.Context, texts []string) ([][]float32, error) {
	req := EmbeddingRequest{
		Model:      c.config.EmbeddingModel,
		Input:      texts,
		Dimensions: c.config.EmbeddingDimensions,
	}

	reqBody, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/embeddings", c.config.APIBase)
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.config.APIKey))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAIUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", ErrAIUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d: %s", ErrAIUnavailable, resp.StatusCode, string(body))
	}

	var result EmbeddingResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	embeddings := make([][]float32, len(texts))
	for _, item := range result.Data {
		if item.Index < len(embeddings) {
			embeddings[item.Index] = item.Embedding
		}
	}

	return embeddings, nil
}
