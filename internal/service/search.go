package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"propswipes/internal/model"
)

// Catalog is the listing store consumed by the search service. It is
// satisfied by repository.PostgresRepository and injected at construction.
type Catalog interface {
	SearchListings(ctx context.Context, filters *model.SearchFilters, requesterUserID string, limit int) ([]model.Listing, error)
	GetListingByID(ctx context.Context, id string) (*model.Listing, error)
	SimilarListings(ctx context.Context, id string, limit int) ([]model.Listing, error)
	BatchUpdateEmbeddings(ctx context.Context, items []model.EmbeddingItem) (int, []string)
	LogSearch(ctx context.Context, searchID, query string, criteria *model.SearchFilters, resultCount int, listingIDs []string, responseTimeMs int) error
	LogFeedback(ctx context.Context, searchID, listingID, action string) error
}

// SearchService handles search business logic
type SearchService struct {
	catalog      Catalog
	heuristic    *HeuristicParser
	smart        *SmartParser
	ai           *OpenAIClient
	resultLimit  int
	similarLimit int
}

// NewSearchService creates a new search service
func NewSearchService(
	catalog Catalog,
	heuristic *HeuristicParser,
	smart *SmartParser,
	ai *OpenAIClient,
	resultLimit, similarLimit int,
) *SearchService {
	return &SearchService{
		catalog:      catalog,
		heuristic:    heuristic,
		smart:        smart,
		ai:           ai,
		resultLimit:  resultLimit,
		similarLimit: similarLimit,
	}
}

// Search runs the deterministic keyword extractor over the query and
// executes the resulting catalog search.
func (s *SearchService) Search(ctx context.Context, req *model.SearchRequest) (*model.SearchResponse, error) {
	filters, err := s.heuristic.Extract(ctx, req.Query)
	if err != nil {
		return nil, err
	}
	return s.runSearch(ctx, req, filters)
}

// SearchSmart extracts filters through the hosted model, merges them with the
// client's active filter panel, and executes the catalog search. Upstream
// failures surface as the sentinel errors from the OpenAI client.
func (s *SearchService) SearchSmart(ctx context.Context, req *model.SearchRequest) (*model.SearchResponse, error) {
	filters, err := s.smart.ExtractAndMerge(ctx, req.Query, req.CurrentFilters)
	if err != nil {
		return nil, err
	}
	return s.runSearch(ctx, req, filters)
}

// runSearch is the shared back half of both search paths: catalog query,
// in-memory refinement, response assembly and non-blocking search logging.
func (s *SearchService) runSearch(ctx context.Context, req *model.SearchRequest, filters *model.SearchFilters) (*model.SearchResponse, error) {
	startTime := time.Now()

	listings, err := s.catalog.SearchListings(ctx, filters, req.UserID, s.resultLimit)
	if err != nil {
		return nil, err
	}

	if len(listings) > 0 {
		if filters.Location != nil {
			listings = RefineByLocation(listings, *filters.Location)
		}
		if len(filters.Amenities) > 0 {
			listings = RefineByAmenities(listings, filters.Amenities)
		}
	}

	searchID := uuid.NewString()
	took := time.Since(startTime).Milliseconds()

	// Log search (non-blocking)
	go func() {
		listingIDs := make([]string, len(listings))
		for i, l := range listings {
			listingIDs[i] = l.ID
		}
		_ = s.catalog.LogSearch(context.Background(), searchID, req.Query, filters, len(listings), listingIDs, int(took))
	}()

	return &model.SearchResponse{
		Properties: listings,
		Criteria:   filters,
		Query:      req.Query,
		SearchID:   searchID,
		Took:       took,
	}, nil
}

// GetListing retrieves a single listing by ID
func (s *SearchService) GetListing(ctx context.Context, id string) (*model.Listing, error) {
	return s.catalog.GetListingByID(ctx, id)
}

// SimilarListings returns the nearest neighbours of a listing by description
// embedding.
func (s *SearchService) SimilarListings(ctx context.Context, id string) ([]model.Listing, error) {
	return s.catalog.SimilarListings(ctx, id, s.similarLimit)
}

// UpdateEmbeddings stores embeddings for multiple listings. Items carrying
// only source text get their vector generated through the embeddings API
// first, which requires the AI client to be configured.
func (s *SearchService) UpdateEmbeddings(ctx context.Context, items []model.EmbeddingItem) (int, []string, error) {
	var pending []int
	var texts []string
	for i, item := range items {
		if len(item.Embedding) == 0 {
			if item.Text == "" {
				return 0, nil, fmt.Errorf("item %d: either embedding or text is required", i)
			}
			pending = append(pending, i)
			texts = append(texts, item.Text)
		}
	}

	if len(pending) > 0 {
		if s.ai == nil || !s.ai.IsEnabled() {
			return 0, nil, ErrAINotConfigured
		}
		vectors, err := s.ai.CreateEmbeddings(ctx, texts)
		if err != nil {
			return 0, nil, err
		}
		for j, idx := range pending {
			items[idx].Embedding = vectors[j]
		}
	}

	success, errs := s.catalog.BatchUpdateEmbeddings(ctx, items)
	return success, errs, nil
}

// LogFeedback records a user swipe/action against a logged search.
func (s *SearchService) LogFeedback(ctx context.Context, searchID, listingID, action string) error {
	return s.catalog.LogFeedback(ctx, searchID, listingID, action)
}
