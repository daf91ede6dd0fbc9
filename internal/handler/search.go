package handler

import (
	"errors"
	"log"
	"net/http"

	"propswipes/internal/model"
	"propswipes/internal/service"

	"github.com/gin-gonic/gin"
)

// SearchHandler handles search-related HTTP requests
type SearchHandler struct {
	searchService *service.SearchService
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(searchService *service.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// Search handles POST /api/v1/search, the deterministic keyword extractor.
func (h *SearchHandler) Search(c *gin.Context) {
	var req model.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	response, err := h.searchService.Search(c.Request.Context(), &req)
	if err != nil {
		log.Printf("Search failed: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, response)
}

// SearchSmart handles POST /api/v1/search/smart, the hosted-model extractor
// merged with the client's current filter panel.
func (h *SearchHandler) SearchSmart(c *gin.Context) {
	var req model.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	response, err := h.searchService.SearchSmart(c.Request.Context(), &req)
	if err != nil {
		log.Printf("Smart search failed: %v", err)
		c.JSON(smartSearchStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, response)
}

// smartSearchStatus maps the hosted-model failure taxonomy onto HTTP status
// codes. Database and extraction failures are client-visible 4xx; upstream
// service problems are 5xx except for the pass-through 429/402.
func smartSearchStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrAIRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, service.ErrAIPaymentRequired):
		return http.StatusPaymentRequired
	case errors.Is(err, service.ErrNoToolCall):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrAINotConfigured), errors.Is(err, service.ErrAIUnavailable):
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

// GetListing handles GET /api/v1/listings/:id
func (h *SearchHandler) GetListing(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing listing ID"})
		return
	}

	listing, err := h.searchService.GetListing(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get listing: " + err.Error()})
		return
	}

	if listing == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
		return
	}

	c.JSON(http.StatusOK, listing)
}

// SimilarListings handles GET /api/v1/listings/:id/similar
func (h *SearchHandler) SimilarListings(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing listing ID"})
		return
	}

	listings, err := h.searchService.SimilarListings(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get similar listings: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"properties": listings})
}
