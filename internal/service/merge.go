package service

import (
	"strconv"
	"strings"

	"propswipes/internal/model"
)

// MergeClientFilters overlays model-extracted filters on the client's filter
// panel state. For every dimension the extracted value takes precedence; a
// client value fills the gap only when it differs from its unset sentinel.
// The client panel has no amenity or location concept, so those always come
// from the extraction.
func MergeClientFilters(extracted *model.SearchFilters, current *model.ClientFilters) *model.SearchFilters {
	merged := &model.SearchFilters{}
	if extracted != nil {
		*merged = *extracted
	}
	if current == nil {
		return merged
	}

	if merged.PropertyType == nil {
		if v := clientChoice(current.PropertyType); v != nil {
			merged.PropertyType = v
		}
	}
	if merged.ListingType == nil {
		if v := clientChoice(current.ListingType); v != nil {
			merged.ListingType = v
		}
	}
	if merged.BedroomsMin == nil {
		merged.BedroomsMin = clientBedrooms(current.Bedrooms)
	}
	if merged.BathroomsMin == nil {
		merged.BathroomsMin = clientBathrooms(current.Bathrooms)
	}
	if merged.PriceMin == nil && merged.PriceMax == nil {
		if lo, hi, ok := clientPriceRange(current.PriceRange); ok {
			merged.PriceMin = &lo
			merged.PriceMax = &hi
		}
	}

	return merged
}

// clientChoice returns the panel selection, or nil for the "any" sentinel.
func clientChoice(value string) *string {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "" || value == model.ClientFilterAny {
		return nil
	}
	return &value
}

// clientBedrooms parses the panel's bedroom choice. "studio" maps to a
// minimum of zero; "3" and "3+" both mean a minimum of three.
func clientBedrooms(value string) *int {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "" || value == model.ClientFilterAny {
		return nil
	}
	if value == model.ClientBedroomsStudio {
		zero := 0
		return &zero
	}
	n, err := strconv.Atoi(strings.TrimSuffix(value, "+"))
	if err != nil || n < 0 {
		return nil
	}
	return &n
}

// clientBathrooms parses the panel's bathroom choice, which allows half
// baths ("1.5", "2.5+").
func clientBathrooms(value string) *float64 {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "" || value == model.ClientFilterAny {
		return nil
	}
	n, err := strconv.ParseFloat(strings.TrimSuffix(value, "+"), 64)
	if err != nil || n < 0 {
		return nil
	}
	return &n
}

// clientPriceRange reads the panel's two-element price tuple. The default
// range is the panel's untouched state and carries no constraint.
func clientPriceRange(priceRange []float64) (float64, float64, bool) {
	if len(priceRange) != 2 {
		return 0, 0, false
	}
	lo, hi := priceRange[0], priceRange[1]
	if lo == model.ClientDefaultPriceMin && hi == model.ClientDefaultPriceMax {
		return 0, 0, false
	}
	if lo < 0 || hi < 0 {
		return 0, 0, false
	}
	return lo, hi, true
}
