package service

import (
	"strings"

	"propswipes/internal/model"
	"propswipes/internal/utils"
)

// In-memory refinement pass for predicates the catalog query cannot express:
// free-text location and amenity matching against denormalized listing text.

// RefineByLocation keeps listings whose city, state, address or description
// contains the location token, case-insensitively. A listing failing all
// four fields is dropped.
func RefineByLocation(listings []model.Listing, location string) []model.Listing {
	location = strings.TrimSpace(location)
	if location == "" {
		return listings
	}

	kept := make([]model.Listing, 0, len(listings))
	for _, l := range listings {
		if utils.ContainsFold(deref(l.City), location) ||
			utils.ContainsFold(deref(l.State), location) ||
			utils.ContainsFold(deref(l.Address), location) ||
			utils.ContainsFold(deref(l.Description), location) {
			kept = append(kept, l)
		}
	}
	return kept
}

// RefineByAmenities keeps listings where at least one requested amenity
// appears in the listing's amenity tags or description. Matching is
// case-insensitive substring containment with OR semantics; every requested
// amenity does not need to match.
func RefineByAmenities(listings []model.Listing, amenities []string) []model.Listing {
	if len(amenities) == 0 {
		return listings
	}

	kept := make([]model.Listing, 0, len(listings))
	for _, l := range listings {
		haystack := strings.Join(l.Amenities, " ") + " " + deref(l.Description)
		if utils.ContainsAnyFold(haystack, amenities) {
			kept = append(kept, l)
		}
	}
	return kept
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
