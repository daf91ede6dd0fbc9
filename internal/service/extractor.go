package service

import (
	"context"

	"propswipes/internal/model"
)

// FilterExtractor turns a free-text search phrase into structured filters.
// The heuristic and the AI-backed extractors are interchangeable behind this
// interface; callers pick one per endpoint.
type FilterExtractor interface {
	Extract(ctx context.Context, query string) (*model.SearchFilters, error)
}
