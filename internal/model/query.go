package model

// SearchRequest represents a search query request
type SearchRequest struct {
	Query string `json:"query" binding:"required"`
	// UserID, when present, excludes that user's own listings from results.
	UserID string `json:"userId,omitempty"`
	// CurrentFilters carries the client's active filter panel state
	// (smart search only; merged field-by-field under the model's values).
	CurrentFilters *ClientFilters `json:"currentFilters,omitempty"`
}

// SearchResponse represents a search result response
type SearchResponse struct {
	Properties []Listing      `json:"properties"`
	Criteria   *SearchFilters `json:"criteria"`
	Query      string         `json:"query"`
	SearchID   string         `json:"search_id,omitempty"`
	Took       int64          `json:"took_ms"` // Response time in milliseconds
}

// EmbeddingBatchRequest represents a batch embedding update request
type EmbeddingBatchRequest struct {
	Embeddings []EmbeddingItem `json:"embeddings" binding:"required"`
}

// EmbeddingItem represents a single embedding with listing info. Either the
// vector or the source text must be present; items carrying only text get
// their vector generated server-side.
type EmbeddingItem struct {
	ListingID string    `json:"listing_id" binding:"required"`
	Embedding []float32 `json:"embedding,omitempty"`
	Text      string    `json:"text,omitempty"`
}

// EmbeddingBatchResponse represents the response for batch embedding update
type EmbeddingBatchResponse struct {
	Success int      `json:"success"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors,omitempty"`
}

// FeedbackRequest represents a user swipe/action on a search result
type FeedbackRequest struct {
	SearchID  string `json:"search_id" binding:"required"`
	ListingID string `json:"listing_id" binding:"required"`
	Action    string `json:"action" binding:"required"` // like, pass, view_details, contact
}

// FeedbackResponse represents feedback response
type FeedbackResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
