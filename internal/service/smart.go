package service

import (
	"context"

	"propswipes/internal/model"
)

// SmartParser delegates filter extraction to the hosted model and reconciles
// the result with the client's active filter panel. It is a strict two-stage
// pipeline (one network call, then the merge) with no retry and no state
// between calls.
type SmartParser struct {
	client *OpenAIClient
}

// NewSmartParser creates a new smart parser
func NewSmartParser(client *OpenAIClient) *SmartParser {
	return &SmartParser{client: client}
}

var _ FilterExtractor = (*SmartParser)(nil)

// Extract implements FilterExtractor without UI filters to merge.
func (p *SmartParser) Extract(ctx context.Context, query string) (*model.SearchFilters, error) {
	return p.ExtractAndMerge(ctx, query, nil)
}

// ExtractAndMerge extracts filters through the hosted model and merges them
// over the client's current filter panel state. Model values win field by
// field; client values apply only where the model is silent and the client
// value differs from its "no constraint" sentinel.
func (p *SmartParser) ExtractAndMerge(ctx context.Context, query string, current *model.ClientFilters) (*model.SearchFilters, error) {
	if p.client == nil {
		return nil, ErrAINotConfigured
	}

	extracted, err := p.client.ExtractFilters(ctx, query)
	if err != nil {
		return nil, err
	}

	return MergeClientFilters(extracted, current), nil
}
